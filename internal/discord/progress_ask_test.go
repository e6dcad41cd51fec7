package discord

import (
	"context"
	"fmt"
	"testing"

	"camp_community_bot/internal/model"
	"camp_community_bot/internal/progress"
	"camp_community_bot/internal/repository/mocks"
	"camp_community_bot/internal/service"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db
}

func TestParseBasePanel(t *testing.T) {
	tests := []struct {
		name        string
		embed       *discordgo.MessageEmbed
		wantChannel string
		wantRoles   []string
		wantErr     bool
	}{
		{
			name: "正常系: チャンネルメンションとロールメンションを読み取る",
			embed: &discordgo.MessageEmbed{
				Fields: []*discordgo.MessageEmbedField{
					{Name: "進捗確認を行うチャンネル", Value: "<#123456789>"},
					{Name: "対象者のロール", Value: "<@&111> <@&222>"},
				},
			},
			wantChannel: "123456789",
			wantRoles:   []string{"111", "222"},
		},
		{
			name:    "異常系: Embedがnil",
			embed:   nil,
			wantErr: true,
		},
		{
			name: "異常系: チャンネルメンションがない",
			embed: &discordgo.MessageEmbed{
				Fields: []*discordgo.MessageEmbedField{
					{Value: "ここにはメンションがない"},
					{Value: "<@&111>"},
				},
			},
			wantErr: true,
		},
		{
			name: "異常系: ロールが空",
			embed: &discordgo.MessageEmbed{
				Fields: []*discordgo.MessageEmbedField{
					{Value: "<#123>"},
					{Value: "なし"},
				},
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			channelID, roleIDs, err := ParseBasePanel(tt.embed)
			if tt.wantErr {
				assert.ErrorIs(t, err, model.ErrInvalidInput)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantChannel, channelID)
			assert.Equal(t, tt.wantRoles, roleIDs)
		})
	}
}

func TestProgressAskHandler_Create(t *testing.T) {
	ctx := context.Background()

	newHandler := func(t *testing.T, gw Gateway) (*ProgressAskHandler, *mocks.ProgressAskRepository) {
		mockRepo := new(mocks.ProgressAskRepository)
		svc := service.NewProgressAskService(setupTestDB(t), mockRepo)
		return NewProgressAskHandler(svc, gw, NewThrottle(4)), mockRepo
	}

	t.Run("正常系: 2メッセージ送信・編集・リアクション設置まで行う", func(t *testing.T) {
		gw := newFakeGateway()
		gw.roster = []progress.Role{
			{ID: "r1", Name: "チームA", Members: []progress.Member{
				{ID: "100", DisplayName: "alice", RoleIDs: []string{"r1"}},
			}},
		}
		h, mockRepo := newHandler(t, gw)
		mockRepo.On("Create", ctx, mock.AnythingOfType("*gorm.DB"), mock.AnythingOfType("*model.ProgressAsk")).
			Return(nil).Once()

		err := h.Create(ctx, CreateProgressAskInput{
			GuildID:          "g1",
			AskChannelID:     "ask-ch",
			SummaryChannelID: "sum-ch",
			RoleIDs:          []string{"r1"},
			Title:            "第1週",
			Contents:         []string{"環境構築", "課題提出"},
		})
		require.NoError(t, err)

		// プレースホルダが公開側・サマリー側に1通ずつ
		require.Len(t, gw.sentMessages, 2)
		assert.Equal(t, "ask-ch", gw.sentMessages[0].ChannelID)
		assert.Equal(t, creatingPlaceholder, gw.sentMessages[0].Content)
		assert.Equal(t, "sum-ch", gw.sentMessages[1].ChannelID)

		// 編集も2回（公開側→サマリー側）
		require.Len(t, gw.edits, 2)
		assert.Equal(t, askMessageHeader, gw.edits[0].Content)
		require.Len(t, gw.edits[0].Embeds, 1)
		assert.Equal(t, "第1週", gw.edits[0].Embeds[0].Title)
		assert.Contains(t, gw.edits[0].Embeds[0].Fields[0].Value, "0️⃣ 環境構築")
		assert.Contains(t, gw.edits[0].Embeds[0].Fields[0].Value, "1️⃣ 課題提出")

		assert.Equal(t, summaryMessageHeader, gw.edits[1].Content)
		require.Len(t, gw.edits[1].Embeds, 2)
		assert.Contains(t, gw.edits[1].Embeds[1].Fields[0].Value, "**alice**\n❌ ❌\n")

		// 手順分のリアクションが順番に付く
		assert.Equal(t, []string{"0️⃣", "1️⃣"}, gw.addedEmoji)
		mockRepo.AssertExpectations(t)
	})

	t.Run("異常系: 手順数が上限超過ならメッセージ送信すら行わない", func(t *testing.T) {
		gw := newFakeGateway()
		h, mockRepo := newHandler(t, gw)

		contents := make([]string, progress.MarkerCount+1)
		for i := range contents {
			contents[i] = fmt.Sprintf("手順%d", i+1)
		}
		err := h.Create(ctx, CreateProgressAskInput{
			GuildID:          "g1",
			AskChannelID:     "ask-ch",
			SummaryChannelID: "sum-ch",
			RoleIDs:          []string{"r1"},
			Contents:         contents,
		})

		assert.ErrorIs(t, err, model.ErrInvalidInput)
		assert.Empty(t, gw.sentMessages)
		mockRepo.AssertExpectations(t)
	})
}

func TestProgressAskHandler_HandleReactionEvent(t *testing.T) {
	ctx := context.Background()

	storedAsk := &model.ProgressAsk{
		GuildID:          "g1",
		AskChannelID:     "ask-ch",
		AskMessageID:     "ask-msg",
		SummaryChannelID: "sum-ch",
		SummaryMessageID: "sum-msg",
		Contents: []model.ProgressAskContent{
			{Position: 0, Content: "環境構築"},
			{Position: 1, Content: "課題提出"},
		},
		Roles: []model.ProgressAskRole{{RoleID: "r1"}},
	}

	alice := progress.Member{ID: "100", DisplayName: "alice", RoleIDs: []string{"r1"}}

	newHandler := func(t *testing.T, gw Gateway, setupMock func(*mocks.ProgressAskRepository)) *ProgressAskHandler {
		mockRepo := new(mocks.ProgressAskRepository)
		if setupMock != nil {
			setupMock(mockRepo)
		}
		svc := service.NewProgressAskService(setupTestDB(t), mockRepo)
		return NewProgressAskHandler(svc, gw, NewThrottle(4))
	}

	t.Run("正常系: サマリーの進捗Embedが置き換わる", func(t *testing.T) {
		gw := newFakeGateway()
		gw.roster = []progress.Role{{ID: "r1", Name: "チームA", Members: []progress.Member{alice}}}
		gw.reactions[messageKey("ask-ch", "ask-msg")] = []progress.Reaction{
			{Emoji: "0️⃣", Users: []progress.Member{alice}},
		}
		stepsOnly := &discordgo.MessageEmbed{Title: "第1週"}
		gw.embeds[messageKey("sum-ch", "sum-msg")] = []*discordgo.MessageEmbed{
			stepsOnly,
			{Title: "古い進捗"},
		}

		h := newHandler(t, gw, func(repo *mocks.ProgressAskRepository) {
			repo.On("FindByAskMessage", ctx, mock.AnythingOfType("*gorm.DB"), "g1", "ask-msg").
				Return(storedAsk, nil).Once()
		})

		err := h.HandleReactionEvent(ctx, "g1", "ask-msg", "100", "0️⃣")
		require.NoError(t, err)

		require.Len(t, gw.edits, 1)
		assert.Equal(t, "sum-ch", gw.edits[0].ChannelID)
		assert.Equal(t, "sum-msg", gw.edits[0].MessageID)
		assert.Equal(t, summaryMessageHeader, gw.edits[0].Content)
		require.Len(t, gw.edits[0].Embeds, 2)
		// 手順Embedはそのまま、進捗Embedだけ差し替え
		assert.Same(t, stepsOnly, gw.edits[0].Embeds[0])
		assert.Contains(t, gw.edits[0].Embeds[1].Fields[0].Value, "**alice**\n0️⃣ ❌\n")
	})

	t.Run("正常系: 進捗確認と無関係なメッセージへのリアクションは無視", func(t *testing.T) {
		gw := newFakeGateway()
		h := newHandler(t, gw, func(repo *mocks.ProgressAskRepository) {
			repo.On("FindByAskMessage", ctx, mock.AnythingOfType("*gorm.DB"), "g1", "other-msg").
				Return(nil, model.ErrNotFound).Once()
		})

		err := h.HandleReactionEvent(ctx, "g1", "other-msg", "100", "0️⃣")
		require.NoError(t, err)
		assert.Empty(t, gw.edits)
	})

	t.Run("正常系: マーカー以外の絵文字はレコード照会すら行わない", func(t *testing.T) {
		gw := newFakeGateway()
		h := newHandler(t, gw, nil) // リポジトリは呼ばれない

		err := h.HandleReactionEvent(ctx, "g1", "ask-msg", "100", "👍")
		require.NoError(t, err)
		assert.Empty(t, gw.edits)
	})

	t.Run("正常系: スロットルが満杯ならイベントを捨てる", func(t *testing.T) {
		gw := newFakeGateway()
		mockRepo := new(mocks.ProgressAskRepository)
		svc := service.NewProgressAskService(setupTestDB(t), mockRepo)

		throttle := NewThrottle(1)
		require.True(t, throttle.TryAcquire()) // 枠を埋めておく
		h := NewProgressAskHandler(svc, gw, throttle)

		err := h.HandleReactionEvent(ctx, "g1", "ask-msg", "100", "0️⃣")
		require.NoError(t, err)
		assert.Empty(t, gw.edits)
		mockRepo.AssertExpectations(t)
	})
}
