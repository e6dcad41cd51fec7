package discord

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"camp_community_bot/internal/middleware"
	"camp_community_bot/internal/model"
	"camp_community_bot/internal/progress"

	"github.com/bwmarrin/discordgo"
)

// sessionGateway は discordgo.Session を使った Gateway の実装です。
// 取得系はまずStateキャッシュを見て、なければAPIへフェッチします。
type sessionGateway struct {
	session *discordgo.Session
}

func NewSessionGateway(session *discordgo.Session) Gateway {
	return &sessionGateway{session: session}
}

// isNotFound はDiscord APIの404を判定します。
func isNotFound(err error) bool {
	var restErr *discordgo.RESTError
	if errors.As(err, &restErr) && restErr.Response != nil {
		return restErr.Response.StatusCode == http.StatusNotFound
	}
	return false
}

func (g *sessionGateway) guild(ctx context.Context, guildID string) (*discordgo.Guild, error) {
	if guild, err := g.session.State.Guild(guildID); err == nil {
		return guild, nil
	}
	guild, err := g.session.Guild(guildID, discordgo.WithContext(ctx))
	if err != nil {
		if isNotFound(err) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("sessionGateway.guild: %w", err)
	}
	return guild, nil
}

// guildMembers は全メンバーを取得します。Stateに載っていればそれを使い、
// なければ1000人ずつページングしてフェッチします。
func (g *sessionGateway) guildMembers(ctx context.Context, guildID string) ([]*discordgo.Member, error) {
	if guild, err := g.session.State.Guild(guildID); err == nil && len(guild.Members) > 0 {
		return guild.Members, nil
	}

	var members []*discordgo.Member
	after := ""
	for {
		page, err := g.session.GuildMembers(guildID, after, 1000, discordgo.WithContext(ctx))
		if err != nil {
			if isNotFound(err) {
				return nil, model.ErrNotFound
			}
			return nil, fmt.Errorf("sessionGateway.guildMembers: %w", err)
		}
		members = append(members, page...)
		if len(page) < 1000 {
			return members, nil
		}
		after = page[len(page)-1].User.ID
	}
}

func memberInfo(m *discordgo.Member) *MemberInfo {
	displayName := m.Nick
	if displayName == "" {
		displayName = m.User.Username
	}
	return &MemberInfo{
		ID:          m.User.ID,
		DisplayName: displayName,
		Username:    m.User.Username,
		Bot:         m.User.Bot,
		RoleIDs:     m.Roles,
	}
}

func (g *sessionGateway) RoleRoster(ctx context.Context, guildID string, roleIDs []string) ([]progress.Role, error) {
	guild, err := g.guild(ctx, guildID)
	if err != nil {
		return nil, err
	}

	roleNames := make(map[string]string, len(guild.Roles))
	for _, role := range guild.Roles {
		roleNames[role.ID] = role.Name
	}

	members, err := g.guildMembers(ctx, guildID)
	if err != nil {
		return nil, err
	}

	roster := make([]progress.Role, 0, len(roleIDs))
	for _, roleID := range roleIDs {
		role := progress.Role{ID: roleID, Name: roleNames[roleID]}
		for _, m := range members {
			info := memberInfo(m)
			if info.HasRole(roleID) {
				role.Members = append(role.Members, info.AsProgressMember())
			}
		}
		roster = append(roster, role)
	}
	return roster, nil
}

func (g *sessionGateway) RoleName(ctx context.Context, guildID, roleID string) (string, error) {
	guild, err := g.guild(ctx, guildID)
	if err != nil {
		return "", err
	}
	for _, role := range guild.Roles {
		if role.ID == roleID {
			return role.Name, nil
		}
	}
	return "", model.ErrNotFound
}

func (g *sessionGateway) Member(ctx context.Context, guildID, userID string) (*MemberInfo, error) {
	if m, err := g.session.State.Member(guildID, userID); err == nil {
		return memberInfo(m), nil
	}
	m, err := g.session.GuildMember(guildID, userID, discordgo.WithContext(ctx))
	if err != nil {
		if isNotFound(err) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("sessionGateway.Member: %w", err)
	}
	return memberInfo(m), nil
}

func (g *sessionGateway) AddMemberRole(ctx context.Context, guildID, userID, roleID string) error {
	if err := g.session.GuildMemberRoleAdd(guildID, userID, roleID, discordgo.WithContext(ctx)); err != nil {
		if isNotFound(err) {
			return model.ErrNotFound
		}
		return fmt.Errorf("sessionGateway.AddMemberRole: %w", err)
	}
	return nil
}

func (g *sessionGateway) MessageReactions(ctx context.Context, guildID, channelID, messageID string) ([]progress.Reaction, error) {
	logger := middleware.GetLogger(ctx)

	msg, err := g.session.ChannelMessage(channelID, messageID, discordgo.WithContext(ctx))
	if err != nil {
		if isNotFound(err) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("sessionGateway.MessageReactions: %w", err)
	}

	reactions := make([]progress.Reaction, 0, len(msg.Reactions))
	for _, r := range msg.Reactions {
		reaction := progress.Reaction{Emoji: r.Emoji.APIName()}

		after := ""
		for {
			users, err := g.session.MessageReactions(channelID, messageID, r.Emoji.APIName(), 100, "", after, discordgo.WithContext(ctx))
			if err != nil {
				return nil, fmt.Errorf("sessionGateway.MessageReactions users: %w", err)
			}
			for _, user := range users {
				if user.Bot {
					continue
				}
				info, err := g.Member(ctx, guildID, user.ID)
				if err != nil {
					if errors.Is(err, model.ErrNotFound) {
						// 既にギルドを抜けたユーザのリアクションは無視
						continue
					}
					return nil, err
				}
				reaction.Users = append(reaction.Users, info.AsProgressMember())
			}
			if len(users) < 100 {
				break
			}
			after = users[len(users)-1].ID
		}

		logger.Debug("Fetched reaction users",
			"emoji", reaction.Emoji,
			"users", len(reaction.Users),
		)
		reactions = append(reactions, reaction)
	}
	return reactions, nil
}

func (g *sessionGateway) MessageEmbeds(ctx context.Context, channelID, messageID string) ([]*discordgo.MessageEmbed, error) {
	msg, err := g.session.ChannelMessage(channelID, messageID, discordgo.WithContext(ctx))
	if err != nil {
		if isNotFound(err) {
			return nil, model.ErrNotFound
		}
		return nil, fmt.Errorf("sessionGateway.MessageEmbeds: %w", err)
	}
	return msg.Embeds, nil
}

func (g *sessionGateway) SendMessage(ctx context.Context, channelID, content string) (string, error) {
	msg, err := g.session.ChannelMessageSend(channelID, content, discordgo.WithContext(ctx))
	if err != nil {
		if isNotFound(err) {
			return "", model.ErrNotFound
		}
		return "", fmt.Errorf("sessionGateway.SendMessage: %w", err)
	}
	return msg.ID, nil
}

func (g *sessionGateway) EditMessage(ctx context.Context, channelID, messageID, content string, embeds []*discordgo.MessageEmbed) error {
	edit := discordgo.NewMessageEdit(channelID, messageID)
	edit.SetContent(content)
	edit.SetEmbeds(embeds)
	if _, err := g.session.ChannelMessageEditComplex(edit, discordgo.WithContext(ctx)); err != nil {
		if isNotFound(err) {
			return model.ErrNotFound
		}
		return fmt.Errorf("sessionGateway.EditMessage: %w", err)
	}
	return nil
}

func (g *sessionGateway) AddReaction(ctx context.Context, channelID, messageID, emoji string) error {
	if err := g.session.MessageReactionAdd(channelID, messageID, emoji, discordgo.WithContext(ctx)); err != nil {
		if isNotFound(err) {
			return model.ErrNotFound
		}
		return fmt.Errorf("sessionGateway.AddReaction: %w", err)
	}
	return nil
}
