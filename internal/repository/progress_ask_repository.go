//go:generate mockery --name ProgressAskRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"camp_community_bot/internal/middleware"
	"camp_community_bot/internal/model"

	"gorm.io/gorm"
)

// ProgressAskRepository インターフェース
//
// Create は親レコードを先に保存してIDを確定させてから、
// 手順・対象ロールの子レコードをまとめて保存します（呼び出し側のトランザクション内で実行すること）。
type ProgressAskRepository interface {
	Create(ctx context.Context, tx *gorm.DB, ask *model.ProgressAsk) error
	FindByAskMessage(ctx context.Context, db *gorm.DB, guildID, askMessageID string) (*model.ProgressAsk, error)
}

type gormProgressAskRepository struct{}

func NewGormProgressAskRepository() ProgressAskRepository {
	return &gormProgressAskRepository{}
}

func (r *gormProgressAskRepository) Create(ctx context.Context, tx *gorm.DB, ask *model.ProgressAsk) error {
	logger := middleware.GetLogger(ctx)

	// 子レコードは親のID確定後に入れるため、一旦退避する
	contents := ask.Contents
	roles := ask.Roles
	ask.Contents = nil
	ask.Roles = nil

	if result := tx.WithContext(ctx).Create(ask); result.Error != nil {
		logger.Error("Error creating progress ask in DB",
			"error", result.Error,
			"guild_id", ask.GuildID,
			"ask_message_id", ask.AskMessageID,
		)
		return fmt.Errorf("gormProgressAskRepository.Create: %w", result.Error)
	}

	for i := range contents {
		contents[i].ProgressAskID = ask.ProgressAskID
	}
	for i := range roles {
		roles[i].ProgressAskID = ask.ProgressAskID
	}

	if len(contents) > 0 {
		if result := tx.WithContext(ctx).Create(&contents); result.Error != nil {
			logger.Error("Error creating progress ask contents in DB",
				"error", result.Error,
				"progress_ask_id", ask.ProgressAskID.String(),
			)
			return fmt.Errorf("gormProgressAskRepository.Create contents: %w", result.Error)
		}
	}
	if len(roles) > 0 {
		if result := tx.WithContext(ctx).Create(&roles); result.Error != nil {
			logger.Error("Error creating progress ask roles in DB",
				"error", result.Error,
				"progress_ask_id", ask.ProgressAskID.String(),
			)
			return fmt.Errorf("gormProgressAskRepository.Create roles: %w", result.Error)
		}
	}

	ask.Contents = contents
	ask.Roles = roles
	return nil
}

func (r *gormProgressAskRepository) FindByAskMessage(ctx context.Context, db *gorm.DB, guildID, askMessageID string) (*model.ProgressAsk, error) {
	logger := middleware.GetLogger(ctx)
	var ask model.ProgressAsk
	result := db.WithContext(ctx).
		Preload("Contents", func(db *gorm.DB) *gorm.DB {
			return db.Order("position ASC")
		}).
		Preload("Roles").
		Where("guild_id = ? AND ask_message_id = ?", guildID, askMessageID).
		First(&ask)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding progress ask in DB",
			"error", result.Error,
			"guild_id", guildID,
			"ask_message_id", askMessageID,
		)
		return nil, fmt.Errorf("gormProgressAskRepository.FindByAskMessage: %w", result.Error)
	}
	return &ask, nil
}
