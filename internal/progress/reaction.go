// Package progress は進捗確認のリアクション集計とサマリー生成を行います。
// Discordとの入出力は持たず、取得済みのスナップショットに対する純粋な変換のみです。
package progress

// indexedReactions は手順番号 0〜10 に対応するマーカー絵文字です。
// 並び順がそのまま手順番号になるため、変更してはいけません。
var indexedReactions = []string{
	"0️⃣",
	"1️⃣",
	"2️⃣",
	"3️⃣",
	"4️⃣",
	"5️⃣",
	"6️⃣",
	"7️⃣",
	"8️⃣",
	"9️⃣",
	"🔟",
}

// MarkerCount は登録できる手順数の上限です。
var MarkerCount = len(indexedReactions)

// Marker は手順番号に対応するマーカー絵文字を返します。
// 範囲外の番号には ok=false を返します。
func Marker(index int) (string, bool) {
	if index < 0 || index >= len(indexedReactions) {
		return "", false
	}
	return indexedReactions[index], true
}

// MarkerIndex はマーカー絵文字に対応する手順番号を返します。
// マーカーでない絵文字には ok=false を返します。
func MarkerIndex(emoji string) (int, bool) {
	for i, r := range indexedReactions {
		if r == emoji {
			return i, true
		}
	}
	return 0, false
}

// IsMarker は絵文字が進捗確認のマーカーかどうかを返します。
func IsMarker(emoji string) bool {
	_, ok := MarkerIndex(emoji)
	return ok
}
