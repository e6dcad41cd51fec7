package discord

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"camp_community_bot/internal/middleware"
	"camp_community_bot/internal/model"
	"camp_community_bot/internal/service"

	"github.com/bwmarrin/discordgo"
)

const (
	commandCreatePersonalInfoButton = "create_personal_info_button"
	commandListParticipants         = "list_participants"
	commandAddRole                  = "add_role"
	commandCreateProgressAskBase    = "create_progress_ask_base"
)

const eventTimeout = 60 * time.Second

// Bot はDiscordセッションとハンドラ群を束ねます。
type Bot struct {
	session      *discordgo.Session
	gw           Gateway
	personalInfo *PersonalInfoHandler
	progressAsk  *ProgressAskHandler
	logger       *slog.Logger
}

func NewBot(token string, personalSvc service.ParticipantService, askSvc service.ProgressAskService, throttle *Throttle, logger *slog.Logger) (*Bot, error) {
	session, err := discordgo.New("Bot " + token)
	if err != nil {
		return nil, fmt.Errorf("discord.NewBot: %w", err)
	}
	session.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsGuildMessages |
		discordgo.IntentsGuildMessageReactions

	gw := NewSessionGateway(session)
	b := &Bot{
		session:      session,
		gw:           gw,
		personalInfo: NewPersonalInfoHandler(personalSvc, gw),
		progressAsk:  NewProgressAskHandler(askSvc, gw, throttle),
		logger:       logger,
	}

	session.AddHandler(b.onReady)
	session.AddHandler(b.onInteractionCreate)
	session.AddHandler(b.onReactionAdd)
	session.AddHandler(b.onReactionRemove)

	return b, nil
}

func (b *Bot) Start() error {
	if err := b.session.Open(); err != nil {
		return fmt.Errorf("discord.Bot.Start: %w", err)
	}
	return nil
}

func (b *Bot) Stop() error {
	return b.session.Close()
}

// eventContext はイベント処理用のcontextを作ります。
// イベントごとの属性を持ったロガーをcontextに載せます。
func (b *Bot) eventContext(event string, attrs ...any) (context.Context, context.CancelFunc) {
	logger := b.logger.With(append([]any{"event", event}, attrs...)...)
	ctx := middleware.WithLogger(context.Background(), logger)
	return context.WithTimeout(ctx, eventTimeout)
}

func (b *Bot) onReady(s *discordgo.Session, r *discordgo.Ready) {
	b.logger.Info("Bot is ready", "username", r.User.Username, "guilds", len(r.Guilds))

	adminOnly := int64(discordgo.PermissionAdministrator)
	commands := []*discordgo.ApplicationCommand{
		{
			Name:                     commandCreatePersonalInfoButton,
			Description:              "参加者情報の登録ボタンを設置します",
			DefaultMemberPermissions: &adminOnly,
		},
		{
			Name:                     commandListParticipants,
			Description:              "参加者一覧をCSVで出力します",
			DefaultMemberPermissions: &adminOnly,
		},
		{
			Name:                     commandAddRole,
			Description:              "CSV形式でロールを一括付与します",
			DefaultMemberPermissions: &adminOnly,
		},
		{
			Name:                     commandCreateProgressAskBase,
			Description:              "進捗確認のベースパネルを作成します",
			DefaultMemberPermissions: &adminOnly,
			Options: []*discordgo.ApplicationCommandOption{
				{
					Type:        discordgo.ApplicationCommandOptionChannel,
					Name:        "channel",
					Description: "進捗確認を行うチャンネル",
					Required:    true,
				},
				{
					Type:        discordgo.ApplicationCommandOptionString,
					Name:        "roles",
					Description: "対象ロールのメンション（スペース区切り）",
					Required:    true,
				},
			},
		},
	}

	for _, cmd := range commands {
		if _, err := s.ApplicationCommandCreate(r.User.ID, "", cmd); err != nil {
			b.logger.Error("Failed to register command", "command", cmd.Name, "error", err)
		}
	}
}

func (b *Bot) onInteractionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	ctx, cancel := b.eventContext("interaction", "guild_id", i.GuildID, "type", int(i.Type))
	defer cancel()
	logger := middleware.GetLogger(ctx)

	var err error
	switch i.Type {
	case discordgo.InteractionApplicationCommand:
		err = b.handleCommand(ctx, i)
	case discordgo.InteractionMessageComponent:
		err = b.handleComponent(ctx, i)
	case discordgo.InteractionModalSubmit:
		err = b.handleModalSubmit(ctx, i)
	default:
		return
	}
	if err != nil {
		logger.Error("Interaction handling failed", "error", err)
		b.respondEphemeral(ctx, i, "エラーが発生しました。時間をおいて再度お試しください。")
	}
}

func (b *Bot) handleCommand(ctx context.Context, i *discordgo.InteractionCreate) error {
	data := i.ApplicationCommandData()
	switch data.Name {
	case commandCreatePersonalInfoButton:
		return b.respond(ctx, i, &discordgo.InteractionResponseData{
			Content:    "以下のボタンから参加者情報を登録してください。",
			Components: PersonalInfoPanelComponents(),
		})

	case commandListParticipants:
		csv, err := b.personalInfo.BuildParticipantsCSV(ctx, i.GuildID)
		if err != nil {
			return err
		}
		return b.respond(ctx, i, &discordgo.InteractionResponseData{
			Flags: discordgo.MessageFlagsEphemeral,
			Files: []*discordgo.File{
				{
					Name:        "participants.csv",
					ContentType: "text/csv",
					Reader:      strings.NewReader(string(csv)),
				},
			},
		})

	case commandAddRole:
		return b.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseModal,
			Data: AddRoleModal(),
		}, discordgo.WithContext(ctx))

	case commandCreateProgressAskBase:
		var channelID string
		var rolesMention string
		for _, opt := range data.Options {
			switch opt.Name {
			case "channel":
				channelID = opt.ChannelValue(nil).ID
			case "roles":
				rolesMention = opt.StringValue()
			}
		}
		if !strings.Contains(rolesMention, "<@&") {
			b.respondEphemeral(ctx, i, "対象ロールはロールメンションで指定してください。")
			return nil
		}
		return b.respond(ctx, i, &discordgo.InteractionResponseData{
			Embeds:     []*discordgo.MessageEmbed{BasePanelEmbed(channelID, rolesMention)},
			Components: ProgressAskPanelComponents(),
		})
	}
	return nil
}

func (b *Bot) handleComponent(ctx context.Context, i *discordgo.InteractionCreate) error {
	switch i.MessageComponentData().CustomID {
	case CustomIDPersonalInfoButton:
		return b.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseModal,
			Data: PersonalInfoModal(),
		}, discordgo.WithContext(ctx))

	case CustomIDProgressAskButton:
		return b.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
			Type: discordgo.InteractionResponseModal,
			Data: ProgressAskModal(),
		}, discordgo.WithContext(ctx))
	}
	return nil
}

func (b *Bot) handleModalSubmit(ctx context.Context, i *discordgo.InteractionCreate) error {
	data := i.ModalSubmitData()
	switch data.CustomID {
	case CustomIDPersonalInfoModal:
		msg, err := b.personalInfo.Register(ctx, interactionUserID(i),
			ModalInputValue(data, "fullname"),
			ModalInputValue(data, "university_name"),
		)
		if err != nil {
			return err
		}
		b.respondEphemeral(ctx, i, msg)
		return nil

	case CustomIDAddRoleModal:
		msg, err := b.personalInfo.ApplyRoleAssignments(ctx, i.GuildID, ModalInputValue(data, "role_csv"))
		if err != nil {
			return err
		}
		b.respondEphemeral(ctx, i, msg)
		return nil

	case CustomIDProgressAskModal:
		return b.handleProgressAskModal(ctx, i, data)
	}
	return nil
}

func (b *Bot) handleProgressAskModal(ctx context.Context, i *discordgo.InteractionCreate, data discordgo.ModalSubmitInteractionData) error {
	// 作成先のチャンネル・ロールはベースパネルのEmbedから読み取る
	var baseEmbed *discordgo.MessageEmbed
	if i.Message != nil && len(i.Message.Embeds) > 0 {
		baseEmbed = i.Message.Embeds[0]
	}
	askChannelID, roleIDs, err := ParseBasePanel(baseEmbed)
	if err != nil {
		b.respondEphemeral(ctx, i, "ベースパネルの読み取りに失敗しました。パネルを作り直してください。")
		return nil
	}

	title := ModalInputValue(data, "title")
	contents := splitContents(ModalInputValue(data, "contents"))
	if len(contents) == 0 {
		b.respondEphemeral(ctx, i, "手順を1つ以上入力してください。")
		return nil
	}

	// 作成にはメッセージ送信やリアクション付与で数秒かかることがある
	if err := b.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseDeferredChannelMessageWithSource,
		Data: &discordgo.InteractionResponseData{Flags: discordgo.MessageFlagsEphemeral},
	}, discordgo.WithContext(ctx)); err != nil {
		return err
	}

	followup := "進捗確認を作成しました！"
	err = b.progressAsk.Create(ctx, CreateProgressAskInput{
		GuildID:          i.GuildID,
		AskChannelID:     askChannelID,
		SummaryChannelID: i.ChannelID,
		RoleIDs:          roleIDs,
		Title:            title,
		Contents:         contents,
	})
	if err != nil {
		var appErr *model.AppError
		if errors.As(err, &appErr) {
			followup = appErr.Detail.Message
		} else {
			middleware.GetLogger(ctx).Error("Failed to create progress ask", "error", err)
			followup = "進捗確認の作成に失敗しました。"
		}
	}

	_, err = b.session.FollowupMessageCreate(i.Interaction, true, &discordgo.WebhookParams{
		Content: followup,
		Flags:   discordgo.MessageFlagsEphemeral,
	}, discordgo.WithContext(ctx))
	return err
}

func (b *Bot) onReactionAdd(s *discordgo.Session, r *discordgo.MessageReactionAdd) {
	b.dispatchReaction("reaction_add", r.MessageReaction)
}

func (b *Bot) onReactionRemove(s *discordgo.Session, r *discordgo.MessageReactionRemove) {
	b.dispatchReaction("reaction_remove", r.MessageReaction)
}

func (b *Bot) dispatchReaction(event string, r *discordgo.MessageReaction) {
	// Bot自身のリアクション（初期設置分など）は無視する
	if b.session.State.User != nil && r.UserID == b.session.State.User.ID {
		return
	}
	if r.GuildID == "" {
		return
	}

	// イベントハンドラをブロックしないよう集計は別goroutineで行う
	go func() {
		ctx, cancel := b.eventContext(event,
			"guild_id", r.GuildID,
			"message_id", r.MessageID,
			"user_id", r.UserID,
		)
		defer cancel()

		if err := b.progressAsk.HandleReactionEvent(ctx, r.GuildID, r.MessageID, r.UserID, r.Emoji.APIName()); err != nil {
			middleware.GetLogger(ctx).Error("Reaction handling failed", "error", err)
		}
	}()
}

func (b *Bot) respond(ctx context.Context, i *discordgo.InteractionCreate, data *discordgo.InteractionResponseData) error {
	return b.session.InteractionRespond(i.Interaction, &discordgo.InteractionResponse{
		Type: discordgo.InteractionResponseChannelMessageWithSource,
		Data: data,
	}, discordgo.WithContext(ctx))
}

func (b *Bot) respondEphemeral(ctx context.Context, i *discordgo.InteractionCreate, content string) {
	err := b.respond(ctx, i, &discordgo.InteractionResponseData{
		Content: content,
		Flags:   discordgo.MessageFlagsEphemeral,
	})
	if err != nil {
		middleware.GetLogger(ctx).Error("Failed to respond to interaction", "error", err)
	}
}

func interactionUserID(i *discordgo.InteractionCreate) string {
	if i.Member != nil && i.Member.User != nil {
		return i.Member.User.ID
	}
	if i.User != nil {
		return i.User.ID
	}
	return ""
}

// splitContents はモーダルの複数行入力を手順のリストに分解します。空行は無視します。
func splitContents(input string) []string {
	var contents []string
	for _, line := range strings.Split(input, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		contents = append(contents, line)
	}
	return contents
}
