// internal/repository/participant_repository_test.go
package repository_test

import (
	"context"
	"testing"

	"camp_community_bot/internal/model"
	"camp_community_bot/internal/repository"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGormParticipantRepository_CreateAndFind(t *testing.T) {
	clearTables(t)
	ctx := context.Background()
	repo := repository.NewGormParticipantRepository()

	participant := &model.Participant{
		ParticipantID:    uuid.New(),
		FullName:         "山田太郎",
		UniversityName:   "〇〇大学",
		DiscordAccountID: "111111111111111111",
	}
	require.NoError(t, repo.Create(ctx, testDB, participant))

	t.Run("正常系: DiscordアカウントIDで取得できる", func(t *testing.T) {
		got, err := repo.FindByDiscordAccountID(ctx, testDB, "111111111111111111")
		require.NoError(t, err)
		assert.Equal(t, participant.ParticipantID, got.ParticipantID)
		assert.Equal(t, "山田太郎", got.FullName)
	})

	t.Run("異常系: 未登録のIDはErrNotFound", func(t *testing.T) {
		got, err := repo.FindByDiscordAccountID(ctx, testDB, "999999999999999999")
		assert.ErrorIs(t, err, model.ErrNotFound)
		assert.Nil(t, got)
	})
}

func TestGormParticipantRepository_Update(t *testing.T) {
	clearTables(t)
	ctx := context.Background()
	repo := repository.NewGormParticipantRepository()

	participant := &model.Participant{
		ParticipantID:    uuid.New(),
		FullName:         "山田太郎",
		UniversityName:   "〇〇大学",
		DiscordAccountID: "111111111111111111",
	}
	require.NoError(t, repo.Create(ctx, testDB, participant))

	participant.FullName = "山田次郎"
	participant.UniversityName = "△△大学"
	require.NoError(t, repo.Update(ctx, testDB, participant))

	got, err := repo.FindByDiscordAccountID(ctx, testDB, "111111111111111111")
	require.NoError(t, err)
	assert.Equal(t, "山田次郎", got.FullName)
	assert.Equal(t, "△△大学", got.UniversityName)

	// 上書きであって新規作成ではないこと
	all, err := repo.FindAll(ctx, testDB)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestGormParticipantRepository_FindAll(t *testing.T) {
	clearTables(t)
	ctx := context.Background()
	repo := repository.NewGormParticipantRepository()

	for _, p := range []*model.Participant{
		{ParticipantID: uuid.New(), FullName: "山田太郎", UniversityName: "〇〇大学", DiscordAccountID: "111"},
		{ParticipantID: uuid.New(), FullName: "鈴木花子", UniversityName: "△△大学", DiscordAccountID: "222"},
	} {
		require.NoError(t, repo.Create(ctx, testDB, p))
	}

	all, err := repo.FindAll(ctx, testDB)
	require.NoError(t, err)
	assert.Len(t, all, 2)
}

// 論理削除されたレコードは取得対象から外れること
func TestGormParticipantRepository_SoftDelete(t *testing.T) {
	clearTables(t)
	ctx := context.Background()
	repo := repository.NewGormParticipantRepository()

	participant := &model.Participant{
		ParticipantID:    uuid.New(),
		FullName:         "山田太郎",
		UniversityName:   "〇〇大学",
		DiscordAccountID: "111",
	}
	require.NoError(t, repo.Create(ctx, testDB, participant))
	require.NoError(t, testDB.Delete(participant).Error)

	got, err := repo.FindByDiscordAccountID(ctx, testDB, "111")
	assert.ErrorIs(t, err, model.ErrNotFound)
	assert.Nil(t, got)

	all, err := repo.FindAll(ctx, testDB)
	require.NoError(t, err)
	assert.Empty(t, all)
}
