package progress

import (
	"fmt"
	"slices"
	"strings"

	"github.com/bwmarrin/discordgo"
)

// missingMark は未完了の手順を表すグリフです。
const missingMark = "❌"

// MemberLine はメンバー1人分の進捗行を組み立てます。
// 位置iが完了していればマーカー絵文字、未完了なら❌を置いた固定幅の列になります。
func MemberLine(mp MemberProgress, stepCount int) string {
	marks := make([]string, 0, stepCount)
	for i := 0; i < stepCount; i++ {
		if slices.Contains(mp.Done, i) {
			marker, _ := Marker(i)
			marks = append(marks, marker)
		} else {
			marks = append(marks, missingMark)
		}
	}
	return fmt.Sprintf("**%s**\n%s\n", mp.DisplayName, strings.Join(marks, " "))
}

// SummaryEmbed は進捗表からサマリーEmbedを組み立てます。
// ロールごとに1フィールド、メンバーごとに1行です。メンバーのいないロールも
// 空のセクションとしてそのまま出します。
func SummaryEmbed(table []RoleProgress, stepCount int) *discordgo.MessageEmbed {
	embed := &discordgo.MessageEmbed{
		Title: "進捗確認",
	}

	for _, rp := range table {
		lines := make([]string, 0, len(rp.Members))
		for _, mp := range rp.Members {
			lines = append(lines, MemberLine(mp, stepCount))
		}
		embed.Fields = append(embed.Fields, &discordgo.MessageEmbedField{
			Name:   fmt.Sprintf("**【%s】**", rp.RoleName),
			Value:  strings.Join(lines, "\n"),
			Inline: true,
		})
	}

	return embed
}
