package discord

import (
	"context"
	"fmt"

	"camp_community_bot/internal/model"
	"camp_community_bot/internal/progress"

	"github.com/bwmarrin/discordgo"
)

// fakeGateway はテスト用のインメモリGatewayです。
// 送信・編集されたメッセージを記録し、あらかじめ仕込んだスナップショットを返します。
type fakeGateway struct {
	roster    []progress.Role
	roleNames map[string]string
	members   map[string]*MemberInfo
	reactions map[string][]progress.Reaction       // channelID:messageID -> reactions
	embeds    map[string][]*discordgo.MessageEmbed // channelID:messageID -> embeds

	sentMessages  []sentMessage
	edits         []editedMessage
	addedRoles    []string // "userID:roleID"
	addedEmoji    []string
	nextMessageID int
}

type sentMessage struct {
	ChannelID string
	Content   string
}

type editedMessage struct {
	ChannelID string
	MessageID string
	Content   string
	Embeds    []*discordgo.MessageEmbed
}

func newFakeGateway() *fakeGateway {
	return &fakeGateway{
		roleNames: make(map[string]string),
		members:   make(map[string]*MemberInfo),
		reactions: make(map[string][]progress.Reaction),
		embeds:    make(map[string][]*discordgo.MessageEmbed),
	}
}

func messageKey(channelID, messageID string) string {
	return channelID + ":" + messageID
}

func (g *fakeGateway) RoleRoster(ctx context.Context, guildID string, roleIDs []string) ([]progress.Role, error) {
	return g.roster, nil
}

func (g *fakeGateway) RoleName(ctx context.Context, guildID, roleID string) (string, error) {
	name, ok := g.roleNames[roleID]
	if !ok {
		return "", model.ErrNotFound
	}
	return name, nil
}

func (g *fakeGateway) Member(ctx context.Context, guildID, userID string) (*MemberInfo, error) {
	m, ok := g.members[userID]
	if !ok {
		return nil, model.ErrNotFound
	}
	return m, nil
}

func (g *fakeGateway) AddMemberRole(ctx context.Context, guildID, userID, roleID string) error {
	g.addedRoles = append(g.addedRoles, userID+":"+roleID)
	return nil
}

func (g *fakeGateway) MessageReactions(ctx context.Context, guildID, channelID, messageID string) ([]progress.Reaction, error) {
	return g.reactions[messageKey(channelID, messageID)], nil
}

func (g *fakeGateway) MessageEmbeds(ctx context.Context, channelID, messageID string) ([]*discordgo.MessageEmbed, error) {
	embeds, ok := g.embeds[messageKey(channelID, messageID)]
	if !ok {
		return nil, model.ErrNotFound
	}
	return embeds, nil
}

func (g *fakeGateway) SendMessage(ctx context.Context, channelID, content string) (string, error) {
	g.nextMessageID++
	id := fmt.Sprintf("msg-%d", g.nextMessageID)
	g.sentMessages = append(g.sentMessages, sentMessage{ChannelID: channelID, Content: content})
	return id, nil
}

func (g *fakeGateway) EditMessage(ctx context.Context, channelID, messageID, content string, embeds []*discordgo.MessageEmbed) error {
	g.edits = append(g.edits, editedMessage{
		ChannelID: channelID,
		MessageID: messageID,
		Content:   content,
		Embeds:    embeds,
	})
	g.embeds[messageKey(channelID, messageID)] = embeds
	return nil
}

func (g *fakeGateway) AddReaction(ctx context.Context, channelID, messageID, emoji string) error {
	g.addedEmoji = append(g.addedEmoji, emoji)
	return nil
}
