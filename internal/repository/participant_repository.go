//go:generate mockery --name ParticipantRepository --output ./mocks --outpkg mocks --case=underscore
package repository

import (
	"context"
	"errors"
	"fmt"

	"camp_community_bot/internal/middleware"
	"camp_community_bot/internal/model"

	"gorm.io/gorm"
)

// ParticipantRepository インターフェース
type ParticipantRepository interface {
	Create(ctx context.Context, tx *gorm.DB, participant *model.Participant) error
	FindByDiscordAccountID(ctx context.Context, db *gorm.DB, discordAccountID string) (*model.Participant, error)
	FindAll(ctx context.Context, db *gorm.DB) ([]*model.Participant, error)
	Update(ctx context.Context, tx *gorm.DB, participant *model.Participant) error
}

type gormParticipantRepository struct{}

func NewGormParticipantRepository() ParticipantRepository {
	return &gormParticipantRepository{}
}

func (r *gormParticipantRepository) Create(ctx context.Context, tx *gorm.DB, participant *model.Participant) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Create(participant)
	if result.Error != nil {
		logger.Error("Error creating participant in DB",
			"error", result.Error,
			"discord_account_id", participant.DiscordAccountID,
		)
		return fmt.Errorf("gormParticipantRepository.Create: %w", result.Error)
	}
	return nil
}

func (r *gormParticipantRepository) FindByDiscordAccountID(ctx context.Context, db *gorm.DB, discordAccountID string) (*model.Participant, error) {
	logger := middleware.GetLogger(ctx)
	var participant model.Participant
	result := db.WithContext(ctx).Where("discord_account_id = ?", discordAccountID).First(&participant)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, model.ErrNotFound
		}
		logger.Error("Error finding participant by discord account ID in DB",
			"error", result.Error,
			"discord_account_id", discordAccountID,
		)
		return nil, fmt.Errorf("gormParticipantRepository.FindByDiscordAccountID: %w", result.Error)
	}
	return &participant, nil
}

func (r *gormParticipantRepository) FindAll(ctx context.Context, db *gorm.DB) ([]*model.Participant, error) {
	logger := middleware.GetLogger(ctx)
	var participants []*model.Participant
	result := db.WithContext(ctx).Order("created_at ASC").Find(&participants)
	if result.Error != nil {
		logger.Error("Error finding all participants in DB", "error", result.Error)
		return nil, fmt.Errorf("gormParticipantRepository.FindAll: %w", result.Error)
	}
	return participants, nil
}

func (r *gormParticipantRepository) Update(ctx context.Context, tx *gorm.DB, participant *model.Participant) error {
	logger := middleware.GetLogger(ctx)
	result := tx.WithContext(ctx).Save(participant)
	if result.Error != nil {
		logger.Error("Error updating participant in DB",
			"error", result.Error,
			"participant_id", participant.ParticipantID.String(),
		)
		return fmt.Errorf("gormParticipantRepository.Update: %w", result.Error)
	}
	return nil
}
