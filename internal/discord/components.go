package discord

import (
	"github.com/bwmarrin/discordgo"
)

// ボタン・モーダルの CustomID。永続化されるため変更してはいけません。
const (
	CustomIDPersonalInfoButton = "personal_info_acquire_start"
	CustomIDPersonalInfoModal  = "personal_info_modal"
	CustomIDAddRoleModal       = "add_role_modal"
	CustomIDProgressAskButton  = "progress_ask:create"
	CustomIDProgressAskModal   = "progress_ask:modal"
)

// PersonalInfoPanelComponents は参加者情報入力パネルのボタンです。
func PersonalInfoPanelComponents() []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "参加者情報を入力する",
					Style:    discordgo.PrimaryButton,
					CustomID: CustomIDPersonalInfoButton,
				},
			},
		},
	}
}

// PersonalInfoModal は参加者情報入力モーダルです。
func PersonalInfoModal() *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		CustomID: CustomIDPersonalInfoModal,
		Title:    "参加者情報入力",
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:    "fullname",
						Label:       "氏名",
						Style:       discordgo.TextInputShort,
						Placeholder: "山田太郎",
						Required:    true,
					},
				},
			},
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:    "university_name",
						Label:       "所属学校名",
						Style:       discordgo.TextInputShort,
						Placeholder: "〇〇大学",
						Required:    true,
					},
				},
			},
		},
	}
}

// AddRoleModal はロール一括付与モーダルです。
func AddRoleModal() *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		CustomID: CustomIDAddRoleModal,
		Title:    "ロール追加",
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:    "role_csv",
						Label:       "対象ロールCSV",
						Style:       discordgo.TextInputParagraph,
						Placeholder: "userID,roleID",
						Required:    true,
					},
				},
			},
		},
	}
}

// ProgressAskPanelComponents は進捗確認ベースパネルのボタンです。
func ProgressAskPanelComponents() []discordgo.MessageComponent {
	return []discordgo.MessageComponent{
		discordgo.ActionsRow{
			Components: []discordgo.MessageComponent{
				discordgo.Button{
					Label:    "進捗確認を作成する",
					Style:    discordgo.PrimaryButton,
					CustomID: CustomIDProgressAskButton,
				},
			},
		},
	}
}

// ProgressAskModal は進捗確認作成モーダルです。
func ProgressAskModal() *discordgo.InteractionResponseData {
	return &discordgo.InteractionResponseData{
		CustomID: CustomIDProgressAskModal,
		Title:    "進捗確認の作成",
		Components: []discordgo.MessageComponent{
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:    "title",
						Label:       "タイトル",
						Style:       discordgo.TextInputShort,
						Placeholder: "〇〇をやろう！",
						Required:    true,
					},
				},
			},
			discordgo.ActionsRow{
				Components: []discordgo.MessageComponent{
					discordgo.TextInput{
						CustomID:    "contents",
						Label:       "手順",
						Style:       discordgo.TextInputParagraph,
						Placeholder: "１行に１つずつ手順を記入してください。",
						Required:    true,
					},
				},
			},
		},
	}
}

// ModalInputValue はモーダル送信データから指定CustomIDのテキスト入力値を取り出します。
func ModalInputValue(data discordgo.ModalSubmitInteractionData, customID string) string {
	for _, row := range data.Components {
		actionsRow, ok := row.(*discordgo.ActionsRow)
		if !ok {
			continue
		}
		for _, component := range actionsRow.Components {
			input, ok := component.(*discordgo.TextInput)
			if !ok {
				continue
			}
			if input.CustomID == customID {
				return input.Value
			}
		}
	}
	return ""
}
