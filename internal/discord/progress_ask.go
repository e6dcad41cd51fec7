package discord

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"camp_community_bot/internal/middleware"
	"camp_community_bot/internal/model"
	"camp_community_bot/internal/progress"
	"camp_community_bot/internal/service"

	"github.com/bwmarrin/discordgo"
)

const (
	askMessageHeader     = "## 【進捗確認】"
	summaryMessageHeader = "## 【進捗チェック】"
	creatingPlaceholder  = "進捗確認を作成中......"
)

var (
	channelMentionPattern = regexp.MustCompile(`<#(\d+)>`)
	idPattern             = regexp.MustCompile(`\d+`)
)

// ProgressAskHandler は進捗確認の作成とリアクション集計を処理します。
type ProgressAskHandler struct {
	svc      service.ProgressAskService
	gw       Gateway
	throttle *Throttle
}

func NewProgressAskHandler(svc service.ProgressAskService, gw Gateway, throttle *Throttle) *ProgressAskHandler {
	return &ProgressAskHandler{svc: svc, gw: gw, throttle: throttle}
}

// BasePanelEmbed は進捗確認ベースパネルのEmbedを組み立てます。
// このEmbedのフィールドが、作成モーダル送信時のパース対象になります。
func BasePanelEmbed(askChannelID, rolesMention string) *discordgo.MessageEmbed {
	return &discordgo.MessageEmbed{
		Title:       "進捗確認",
		Description: "進捗確認を行います。",
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "進捗確認を行うチャンネル",
				Value:  fmt.Sprintf("<#%s>", askChannelID),
				Inline: false,
			},
			{
				Name:   "対象者のロール",
				Value:  rolesMention,
				Inline: false,
			},
		},
	}
}

// ParseBasePanel はベースパネルのEmbedから対象チャンネルIDと対象ロールID一覧を取り出します。
func ParseBasePanel(embed *discordgo.MessageEmbed) (askChannelID string, roleIDs []string, err error) {
	if embed == nil || len(embed.Fields) < 2 {
		return "", nil, model.ErrInvalidInput
	}

	m := channelMentionPattern.FindStringSubmatch(embed.Fields[0].Value)
	if m == nil {
		return "", nil, model.ErrInvalidInput
	}
	askChannelID = m[1]

	roleIDs = idPattern.FindAllString(embed.Fields[1].Value, -1)
	if len(roleIDs) == 0 {
		return "", nil, model.ErrInvalidInput
	}

	return askChannelID, roleIDs, nil
}

// CreateProgressAskInput は作成モーダル送信をパースした入力です。
type CreateProgressAskInput struct {
	GuildID          string
	AskChannelID     string
	SummaryChannelID string // モーダルを開いたチャンネル（非公開側）
	RoleIDs          []string
	Title            string
	Contents         []string
}

// stepsEmbed は手順一覧のEmbedを組み立てます（公開側・サマリー側で共用）。
func stepsEmbed(title string, contents []string) *discordgo.MessageEmbed {
	lines := make([]string, 0, len(contents))
	for i, content := range contents {
		marker, _ := progress.Marker(i)
		lines = append(lines, fmt.Sprintf("%s %s", marker, content))
	}
	return &discordgo.MessageEmbed{
		Title: title,
		Fields: []*discordgo.MessageEmbedField{
			{
				Name:   "手順",
				Value:  strings.Join(lines, "\n"),
				Inline: false,
			},
		},
	}
}

// Create は進捗確認を作成します。
// 公開側・サマリー側のメッセージを送信し、レコードを保存したうえで
// 両メッセージを本来の内容に編集し、公開側へ手順分のリアクションを付けます。
func (h *ProgressAskHandler) Create(ctx context.Context, in CreateProgressAskInput) error {
	logger := middleware.GetLogger(ctx)

	// 手順数の上限チェックはメッセージ送信より前に行う
	if len(in.Contents) > progress.MarkerCount {
		return model.NewAppError(
			"TOO_MANY_CONTENTS",
			fmt.Sprintf("進捗確認の手順は%d個までしか登録できません。", progress.MarkerCount),
			"contents",
			model.ErrInvalidInput,
		)
	}

	askMessageID, err := h.gw.SendMessage(ctx, in.AskChannelID, creatingPlaceholder)
	if err != nil {
		return err
	}
	summaryMessageID, err := h.gw.SendMessage(ctx, in.SummaryChannelID, creatingPlaceholder)
	if err != nil {
		return err
	}

	ask, err := h.svc.CreateProgressAsk(ctx, &model.CreateProgressAskRequest{
		GuildID:          in.GuildID,
		AskChannelID:     in.AskChannelID,
		AskMessageID:     askMessageID,
		SummaryChannelID: in.SummaryChannelID,
		SummaryMessageID: summaryMessageID,
		RoleIDs:          in.RoleIDs,
		Contents:         in.Contents,
	})
	if err != nil {
		return err
	}

	steps := stepsEmbed(in.Title, in.Contents)

	if err := h.gw.EditMessage(ctx, in.AskChannelID, askMessageID, askMessageHeader, []*discordgo.MessageEmbed{steps}); err != nil {
		return err
	}

	// サマリーの初期状態は「誰も完了していない」進捗表
	roster, err := h.gw.RoleRoster(ctx, in.GuildID, in.RoleIDs)
	if err != nil {
		return err
	}
	table := progress.Aggregate(roster, nil, len(in.Contents))
	summary := progress.SummaryEmbed(table, len(in.Contents))

	if err := h.gw.EditMessage(ctx, in.SummaryChannelID, summaryMessageID, summaryMessageHeader,
		[]*discordgo.MessageEmbed{steps, summary}); err != nil {
		return err
	}

	for i := range in.Contents {
		marker, _ := progress.Marker(i)
		if err := h.gw.AddReaction(ctx, in.AskChannelID, askMessageID, marker); err != nil {
			return err
		}
	}

	logger.Info("Progress ask created",
		"progress_ask_id", ask.ProgressAskID.String(),
		"guild_id", in.GuildID,
		"ask_message_id", askMessageID,
		"contents", len(in.Contents),
	)
	return nil
}

// HandleReactionEvent はリアクションの追加・削除イベントを処理します。
// 現在のリアクション状態を取り直してサマリーを作り直すため、追加・削除どちらで
// 呼ばれても、また同じ状態で二重に呼ばれても結果は同じになります。
func (h *ProgressAskHandler) HandleReactionEvent(ctx context.Context, guildID, messageID, actorID, emoji string) error {
	logger := middleware.GetLogger(ctx)

	if !progress.IsMarker(emoji) {
		return nil
	}

	if !h.throttle.TryAcquire() {
		// 上限到達時は静かに落とす（ユーザへの通知はしない）
		logger.Warn("Reaction event dropped by throttle",
			"guild_id", guildID,
			"message_id", messageID,
			"actor_id", actorID,
		)
		return nil
	}
	defer h.throttle.Release()

	// レコードの取得が先。フェッチ対象のチャンネル・メッセージIDはレコードが持つ。
	ask, err := h.svc.GetProgressAsk(ctx, guildID, messageID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			// 進捗確認と無関係なメッセージへのリアクション
			return nil
		}
		return err
	}

	stepCount := len(ask.Contents)
	roleIDs := make([]string, 0, len(ask.Roles))
	for _, role := range ask.Roles {
		roleIDs = append(roleIDs, role.RoleID)
	}

	roster, err := h.gw.RoleRoster(ctx, guildID, roleIDs)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil
		}
		return err
	}

	reactions, err := h.gw.MessageReactions(ctx, guildID, ask.AskChannelID, ask.AskMessageID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil
		}
		return err
	}

	table := progress.Aggregate(roster, reactions, stepCount)
	summary := progress.SummaryEmbed(table, stepCount)

	embeds, err := h.gw.MessageEmbeds(ctx, ask.SummaryChannelID, ask.SummaryMessageID)
	if err != nil {
		if errors.Is(err, model.ErrNotFound) {
			return nil
		}
		return err
	}

	// embeds[0]は手順一覧、embeds[1]が進捗表。進捗表だけ差し替える。
	if len(embeds) >= 2 {
		embeds[1] = summary
	} else {
		embeds = append(embeds, summary)
	}

	return h.gw.EditMessage(ctx, ask.SummaryChannelID, ask.SummaryMessageID, summaryMessageHeader, embeds)
}
