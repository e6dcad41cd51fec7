// internal/model/participant.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Participant はキャンプ参加者の基本情報を表します。
// DiscordAccountID ごとに1件（アプリケーション層のupsertで担保）。
type Participant struct {
	ParticipantID    uuid.UUID      `gorm:"type:uuid;primaryKey" json:"participant_id"`
	FullName         string         `gorm:"not null" json:"fullname"`        // 氏名（空白除去済み）
	UniversityName   string         `gorm:"not null" json:"university_name"` // 所属学校名（空白除去済み）
	DiscordAccountID string         `gorm:"not null;index" json:"discord_account_id"`
	CreatedAt        time.Time      `json:"created_at"`
	UpdatedAt        time.Time      `json:"updated_at"`
	DeletedAt        gorm.DeletedAt `gorm:"index" json:"-"` // 論理削除用
}

func (Participant) TableName() string {
	return "participants"
}

// 参加者登録リクエストDTO（モーダル入力）
type RegisterParticipantRequest struct {
	FullName       string `json:"fullname" validate:"required"`
	UniversityName string `json:"university_name" validate:"required"`
}
