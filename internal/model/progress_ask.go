// internal/model/progress_ask.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ProgressAsk はひとつの進捗確認キャンペーンを表します。
// 公開側（リアクションを付けるメッセージ）と非公開側（サマリーメッセージ）の
// 位置情報のみを保持し、進捗状態そのものはDiscordのリアクションが持ちます。
type ProgressAsk struct {
	ProgressAskID    uuid.UUID      `gorm:"type:uuid;primaryKey" json:"progress_ask_id"`
	GuildID          string         `gorm:"not null;index:idx_guild_ask_message" json:"guild_id"`
	AskChannelID     string         `gorm:"not null" json:"ask_channel_id"`
	AskMessageID     string         `gorm:"not null;index:idx_guild_ask_message" json:"ask_message_id"`
	SummaryChannelID string         `gorm:"not null" json:"summary_channel_id"`
	SummaryMessageID string         `gorm:"not null" json:"summary_message_id"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"`

	// 関連 (Preload用)
	Contents []ProgressAskContent `gorm:"foreignKey:ProgressAskID" json:"contents"`
	Roles    []ProgressAskRole    `gorm:"foreignKey:ProgressAskID" json:"roles"`
}

func (ProgressAsk) TableName() string {
	return "progress_asks"
}

// ProgressAskContent は進捗確認の手順1件です。Position が手順番号（0始まり）。
type ProgressAskContent struct {
	ProgressAskContentID uuid.UUID      `gorm:"type:uuid;primaryKey" json:"progress_ask_content_id"`
	ProgressAskID        uuid.UUID      `gorm:"type:uuid;not null;index" json:"-"`
	Position             int            `gorm:"not null" json:"position"`
	Content              string         `gorm:"not null" json:"content"`
	CreatedAt            time.Time      `json:"created_at"`
	UpdatedAt            time.Time      `json:"updated_at"`
	DeletedAt            gorm.DeletedAt `gorm:"index" json:"-"`
}

func (ProgressAskContent) TableName() string {
	return "progress_ask_contents"
}

// ProgressAskRole は進捗をまとめる対象ロール1件です。
type ProgressAskRole struct {
	ProgressAskRoleID uuid.UUID      `gorm:"type:uuid;primaryKey" json:"progress_ask_role_id"`
	ProgressAskID     uuid.UUID      `gorm:"type:uuid;not null;index" json:"-"`
	RoleID            string         `gorm:"not null" json:"role_id"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	DeletedAt         gorm.DeletedAt `gorm:"index" json:"-"`
}

func (ProgressAskRole) TableName() string {
	return "progress_ask_roles"
}

// 進捗確認作成リクエストDTO（モーダル入力をパースしたもの）
type CreateProgressAskRequest struct {
	GuildID          string   `validate:"required"`
	AskChannelID     string   `validate:"required"`
	AskMessageID     string   `validate:"required"`
	SummaryChannelID string   `validate:"required"`
	SummaryMessageID string   `validate:"required"`
	RoleIDs          []string `validate:"required,min=1"`
	Contents         []string `validate:"required,min=1"`
}
