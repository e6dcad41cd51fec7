package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemberLine(t *testing.T) {
	tests := []struct {
		name      string
		mp        MemberProgress
		stepCount int
		want      string
	}{
		{
			name:      "正常系: 一部完了",
			mp:        MemberProgress{DisplayName: "alice", Done: []int{0, 2}},
			stepCount: 3,
			want:      "**alice**\n0️⃣ ❌ 2️⃣\n",
		},
		{
			name:      "正常系: 未着手",
			mp:        MemberProgress{DisplayName: "bob", Done: nil},
			stepCount: 3,
			want:      "**bob**\n❌ ❌ ❌\n",
		},
		{
			name:      "正常系: 全完了",
			mp:        MemberProgress{DisplayName: "carol", Done: []int{0, 1}},
			stepCount: 2,
			want:      "**carol**\n0️⃣ 1️⃣\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MemberLine(tt.mp, tt.stepCount))
		})
	}
}

func TestSummaryEmbed(t *testing.T) {
	table := []RoleProgress{
		{
			RoleName: "チームA",
			Members: []MemberProgress{
				{DisplayName: "alice", Done: []int{0}},
				{DisplayName: "bob", Done: nil},
			},
		},
		{
			RoleName: "チームB",
			Members:  nil,
		},
	}

	embed := SummaryEmbed(table, 2)

	assert.Equal(t, "進捗確認", embed.Title)
	require.Len(t, embed.Fields, 2)

	assert.Equal(t, "**【チームA】**", embed.Fields[0].Name)
	assert.Contains(t, embed.Fields[0].Value, "**alice**\n0️⃣ ❌\n")
	assert.Contains(t, embed.Fields[0].Value, "**bob**\n❌ ❌\n")
	assert.True(t, embed.Fields[0].Inline)

	// メンバー不在のロールも空フィールドとして残る
	assert.Equal(t, "**【チームB】**", embed.Fields[1].Name)
	assert.Equal(t, "", embed.Fields[1].Value)
}
