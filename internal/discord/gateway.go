// Package discord はDiscordとのやり取りを担当するBotレイヤです。
// 実際のSDK呼び出しは Gateway インターフェースの背後に隔離し、
// ハンドラ本体はスナップショットに対する処理として書きます。
package discord

import (
	"context"
	"slices"

	"camp_community_bot/internal/progress"

	"github.com/bwmarrin/discordgo"
)

// MemberInfo はギルドメンバーの情報です。
type MemberInfo struct {
	ID          string
	DisplayName string // ニックネーム優先
	Username    string
	Bot         bool
	RoleIDs     []string
}

// Gateway はハンドラが必要とするDiscord操作だけを公開するインターフェースです。
// 対象が見つからない場合は model.ErrNotFound を返します。
type Gateway interface {
	// RoleRoster は対象ロールのスナップショット（ロール名と所属メンバー）を返します。
	RoleRoster(ctx context.Context, guildID string, roleIDs []string) ([]progress.Role, error)
	// RoleName はロール名を返します。
	RoleName(ctx context.Context, guildID, roleID string) (string, error)
	// Member はギルドメンバー1人を取得します（キャッシュ優先、なければフェッチ）。
	Member(ctx context.Context, guildID, userID string) (*MemberInfo, error)
	// AddMemberRole はメンバーにロールを付与します。
	AddMemberRole(ctx context.Context, guildID, userID, roleID string) error

	// MessageReactions はメッセージに付いているリアクションを、
	// 付けたユーザをメンバーとして解決した形で返します。
	MessageReactions(ctx context.Context, guildID, channelID, messageID string) ([]progress.Reaction, error)
	// MessageEmbeds はメッセージの現在のEmbed一覧を返します。
	MessageEmbeds(ctx context.Context, channelID, messageID string) ([]*discordgo.MessageEmbed, error)

	SendMessage(ctx context.Context, channelID, content string) (messageID string, err error)
	EditMessage(ctx context.Context, channelID, messageID, content string, embeds []*discordgo.MessageEmbed) error
	AddReaction(ctx context.Context, channelID, messageID, emoji string) error
}

// HasRole はメンバーが指定ロールに所属しているかを返します。
func (m *MemberInfo) HasRole(roleID string) bool {
	return slices.Contains(m.RoleIDs, roleID)
}

// AsProgressMember はMemberInfoを集計用のスナップショット型に変換します。
func (m *MemberInfo) AsProgressMember() progress.Member {
	return progress.Member{
		ID:          m.ID,
		DisplayName: m.DisplayName,
		Bot:         m.Bot,
		RoleIDs:     m.RoleIDs,
	}
}
