// internal/service/progress_ask_service.go
package service

import (
	"context"
	"fmt"

	"camp_community_bot/internal/middleware"
	"camp_community_bot/internal/model"
	"camp_community_bot/internal/progress"
	"camp_community_bot/internal/repository"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ProgressAskService interface {
	CreateProgressAsk(ctx context.Context, req *model.CreateProgressAskRequest) (*model.ProgressAsk, error)
	GetProgressAsk(ctx context.Context, guildID, askMessageID string) (*model.ProgressAsk, error)
}

type progressAskService struct {
	db      *gorm.DB
	askRepo repository.ProgressAskRepository
}

func NewProgressAskService(db *gorm.DB, askRepo repository.ProgressAskRepository) ProgressAskService {
	return &progressAskService{
		db:      db,
		askRepo: askRepo,
	}
}

func (s *progressAskService) CreateProgressAsk(ctx context.Context, req *model.CreateProgressAskRequest) (*model.ProgressAsk, error) {
	logger := middleware.GetLogger(ctx)

	if len(req.Contents) == 0 || len(req.RoleIDs) == 0 {
		return nil, model.ErrInvalidInput
	}
	// 手順数はマーカー絵文字の数（11個）まで。境界は含む。
	if len(req.Contents) > progress.MarkerCount {
		return nil, model.NewAppError(
			"TOO_MANY_CONTENTS",
			fmt.Sprintf("進捗確認の手順は%d個までしか登録できません。", progress.MarkerCount),
			"contents",
			model.ErrInvalidInput,
		)
	}

	ask := &model.ProgressAsk{
		ProgressAskID:    uuid.New(),
		GuildID:          req.GuildID,
		AskChannelID:     req.AskChannelID,
		AskMessageID:     req.AskMessageID,
		SummaryChannelID: req.SummaryChannelID,
		SummaryMessageID: req.SummaryMessageID,
	}
	for i, content := range req.Contents {
		ask.Contents = append(ask.Contents, model.ProgressAskContent{
			ProgressAskContentID: uuid.New(),
			Position:             i,
			Content:              content,
		})
	}
	for _, roleID := range req.RoleIDs {
		ask.Roles = append(ask.Roles, model.ProgressAskRole{
			ProgressAskRoleID: uuid.New(),
			RoleID:            roleID,
		})
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return s.askRepo.Create(ctx, tx, ask)
	})
	if err != nil {
		logger.Error("Transaction failed for CreateProgressAsk", "error", err)
		return nil, model.ErrInternalServer
	}

	return ask, nil
}

func (s *progressAskService) GetProgressAsk(ctx context.Context, guildID, askMessageID string) (*model.ProgressAsk, error) {
	ask, err := s.askRepo.FindByAskMessage(ctx, s.db, guildID, askMessageID)
	if err != nil {
		// ErrNotFoundはリポジトリで変換済み
		return nil, err
	}
	return ask, nil
}
