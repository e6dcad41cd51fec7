// internal/service/participant_service.go
package service

import (
	"context"
	"errors"
	"strings"
	"unicode"

	"camp_community_bot/internal/middleware"
	"camp_community_bot/internal/model"
	"camp_community_bot/internal/repository"
	"camp_community_bot/internal/webutil"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ParticipantService interface {
	// RegisterParticipant は参加者情報を登録します。
	// 同じDiscordアカウントの登録が既にあれば上書き更新します（upsert）。
	RegisterParticipant(ctx context.Context, discordAccountID string, req *model.RegisterParticipantRequest) (*model.Participant, error)
	ListParticipants(ctx context.Context) ([]*model.Participant, error)
}

type participantService struct {
	db              *gorm.DB // トランザクション用にDB接続を持つ
	participantRepo repository.ParticipantRepository
}

func NewParticipantService(db *gorm.DB, participantRepo repository.ParticipantRepository) ParticipantService {
	return &participantService{
		db:              db,
		participantRepo: participantRepo,
	}
}

// NormalizeName は氏名・学校名から半角・全角を問わず全ての空白文字を取り除きます。
// 「山田 太郎」「〇〇　大学」のような入力ゆれを吸収するためです。
func NormalizeName(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func (s *participantService) RegisterParticipant(ctx context.Context, discordAccountID string, req *model.RegisterParticipantRequest) (*model.Participant, error) {
	logger := middleware.GetLogger(ctx)

	if discordAccountID == "" {
		return nil, model.ErrInvalidInput
	}

	// 正規化してからバリデーション（空白だけの入力は正規化で空文字列になり弾かれる）
	normalized := &model.RegisterParticipantRequest{
		FullName:       NormalizeName(req.FullName),
		UniversityName: NormalizeName(req.UniversityName),
	}
	if err := webutil.Validator.Struct(normalized); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			messages := webutil.TranslateValidationErrors(validationErrs)
			return nil, model.NewAppError("VALIDATION_ERROR", strings.Join(messages, "\n"), "", model.ErrInvalidInput)
		}
		return nil, model.ErrInvalidInput
	}

	var saved *model.Participant

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		existing, err := s.participantRepo.FindByDiscordAccountID(ctx, tx, discordAccountID)
		if err != nil && !errors.Is(err, model.ErrNotFound) {
			logger.Error("Error finding participant for upsert", "error", err)
			return model.ErrInternalServer
		}

		if existing == nil {
			participant := &model.Participant{
				ParticipantID:    uuid.New(),
				FullName:         normalized.FullName,
				UniversityName:   normalized.UniversityName,
				DiscordAccountID: discordAccountID,
			}
			if err := s.participantRepo.Create(ctx, tx, participant); err != nil {
				logger.Error("Error creating participant in transaction", "error", err)
				return model.ErrInternalServer
			}
			saved = participant
			return nil
		}

		existing.FullName = normalized.FullName
		existing.UniversityName = normalized.UniversityName
		if err := s.participantRepo.Update(ctx, tx, existing); err != nil {
			logger.Error("Error updating participant in transaction", "error", err)
			return model.ErrInternalServer
		}
		saved = existing
		return nil // コミット
	})

	if err != nil {
		return nil, err
	}
	return saved, nil
}

func (s *participantService) ListParticipants(ctx context.Context) ([]*model.Participant, error) {
	participants, err := s.participantRepo.FindAll(ctx, s.db)
	if err != nil {
		middleware.GetLogger(ctx).Error("Error listing participants", "error", err)
		return nil, model.ErrInternalServer
	}
	return participants, nil
}
