package discord

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"camp_community_bot/internal/middleware"
	"camp_community_bot/internal/model"
	"camp_community_bot/internal/service"
)

var snowflakePattern = regexp.MustCompile(`^\d+$`)

// PersonalInfoHandler は参加者情報まわりの操作を処理します。
type PersonalInfoHandler struct {
	svc service.ParticipantService
	gw  Gateway
}

func NewPersonalInfoHandler(svc service.ParticipantService, gw Gateway) *PersonalInfoHandler {
	return &PersonalInfoHandler{svc: svc, gw: gw}
}

// Register は参加者情報モーダルの送信内容を登録し、ユーザ向けメッセージを返します。
func (h *PersonalInfoHandler) Register(ctx context.Context, discordAccountID, fullname, universityName string) (string, error) {
	req := &model.RegisterParticipantRequest{
		FullName:       fullname,
		UniversityName: universityName,
	}
	if _, err := h.svc.RegisterParticipant(ctx, discordAccountID, req); err != nil {
		var appErr *model.AppError
		if errors.As(err, &appErr) {
			return appErr.Detail.Message, nil
		}
		return "", err
	}
	return "参加者情報を登録しました！", nil
}

// BuildParticipantsCSV は参加者一覧をCSVとして組み立てます。
// Discord側で見つからないメンバーは表示名・ユーザ名を「不明」として出力します。
func (h *PersonalInfoHandler) BuildParticipantsCSV(ctx context.Context, guildID string) ([]byte, error) {
	logger := middleware.GetLogger(ctx)

	participants, err := h.svc.ListParticipants(ctx)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Write([]string{"氏名", "所属学校名", "DiscordID", "discord表示名", "discordユーザ名"})

	for _, p := range participants {
		displayName := "不明"
		username := "不明"

		member, err := h.gw.Member(ctx, guildID, p.DiscordAccountID)
		if err != nil {
			if !errors.Is(err, model.ErrNotFound) {
				return nil, err
			}
			logger.Warn("Participant not found in guild", "discord_account_id", p.DiscordAccountID)
		} else {
			displayName = member.DisplayName
			username = member.Username
		}

		w.Write([]string{p.FullName, p.UniversityName, p.DiscordAccountID, displayName, username})
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("BuildParticipantsCSV: %w", err)
	}
	return buf.Bytes(), nil
}

// RoleAssignment はロール付与CSVの1行分です。
type RoleAssignment struct {
	UserID string
	RoleID string
}

// ParseRoleAssignments は「userID,roleID」形式のCSVをパースします。
// 不正な行はエラーメッセージに積み、正常な行だけを返します（部分成功）。
func ParseRoleAssignments(input string) ([]RoleAssignment, []string) {
	var assignments []RoleAssignment
	var errorMessages []string

	for _, line := range strings.Split(input, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		fields := strings.Split(line, ",")
		if len(fields) != 2 {
			errorMessages = append(errorMessages, fmt.Sprintf("不正な値：%s", line))
			continue
		}

		userID := strings.TrimSpace(fields[0])
		roleID := strings.TrimSpace(fields[1])
		if !snowflakePattern.MatchString(userID) || !snowflakePattern.MatchString(roleID) {
			errorMessages = append(errorMessages, fmt.Sprintf("不正な値：%s, %s", userID, roleID))
			continue
		}

		assignments = append(assignments, RoleAssignment{UserID: userID, RoleID: roleID})
	}

	return assignments, errorMessages
}

// ApplyRoleAssignments はCSV入力をパースしてロールを付与し、ユーザ向けの結果メッセージを返します。
// 一部の行が失敗しても残りは処理し、失敗行をまとめて報告します。
func (h *PersonalInfoHandler) ApplyRoleAssignments(ctx context.Context, guildID, input string) (string, error) {
	logger := middleware.GetLogger(ctx)

	assignments, errorMessages := ParseRoleAssignments(input)

	for _, a := range assignments {
		if _, err := h.gw.Member(ctx, guildID, a.UserID); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				errorMessages = append(errorMessages, fmt.Sprintf("不明：%s, %s", a.UserID, a.RoleID))
				continue
			}
			return "", err
		}
		if _, err := h.gw.RoleName(ctx, guildID, a.RoleID); err != nil {
			if errors.Is(err, model.ErrNotFound) {
				errorMessages = append(errorMessages, fmt.Sprintf("不明：%s, %s", a.UserID, a.RoleID))
				continue
			}
			return "", err
		}

		if err := h.gw.AddMemberRole(ctx, guildID, a.UserID, a.RoleID); err != nil {
			logger.Error("Error adding role to member",
				"error", err,
				"user_id", a.UserID,
				"role_id", a.RoleID,
			)
			errorMessages = append(errorMessages, fmt.Sprintf("失敗：%s, %s", a.UserID, a.RoleID))
		}
	}

	if len(errorMessages) > 0 {
		return fmt.Sprintf("一部の値でエラーが発生しました。\n```\n%s\n```", strings.Join(errorMessages, "\n")), nil
	}
	return "ロールを追加しました！", nil
}
