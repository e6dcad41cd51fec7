package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMarker(t *testing.T) {
	tests := []struct {
		name   string
		index  int
		want   string
		wantOK bool
	}{
		{name: "正常系: 先頭のマーカー", index: 0, want: "0️⃣", wantOK: true},
		{name: "正常系: 末尾のマーカー", index: 10, want: "🔟", wantOK: true},
		{name: "異常系: 範囲外（上）", index: 11, want: "", wantOK: false},
		{name: "異常系: 範囲外（負数）", index: -1, want: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Marker(tt.index)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMarkerIndex(t *testing.T) {
	tests := []struct {
		name   string
		emoji  string
		want   int
		wantOK bool
	}{
		{name: "正常系: 数字絵文字", emoji: "3️⃣", want: 3, wantOK: true},
		{name: "正常系: 10の絵文字", emoji: "🔟", want: 10, wantOK: true},
		{name: "異常系: 対象外の絵文字", emoji: "🥸", want: 0, wantOK: false},
		{name: "異常系: 空文字列", emoji: "", want: 0, wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := MarkerIndex(tt.emoji)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

// MarkerとMarkerIndexが全インデックスで往復できること
func TestMarker_RoundTrip(t *testing.T) {
	for i := 0; i < MarkerCount; i++ {
		emoji, ok := Marker(i)
		assert.True(t, ok)

		back, ok := MarkerIndex(emoji)
		assert.True(t, ok)
		assert.Equal(t, i, back)
	}
}

func TestIsMarker(t *testing.T) {
	assert.True(t, IsMarker("0️⃣"))
	assert.True(t, IsMarker("🔟"))
	assert.False(t, IsMarker("👍"))
	assert.False(t, IsMarker("11"))
}
