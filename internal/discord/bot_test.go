package discord

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitContents(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "正常系: 1行1手順に分解される",
			input: "環境構築\n課題提出",
			want:  []string{"環境構築", "課題提出"},
		},
		{
			name:  "正常系: 空行と前後の空白は無視される",
			input: "\n 環境構築 \n\n課題提出\n",
			want:  []string{"環境構築", "課題提出"},
		},
		{
			name:  "正常系: 空入力はnil",
			input: "   \n\n",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, splitContents(tt.input))
		})
	}
}
