package progress

import (
	"slices"
	"sort"
)

// Member はギルドメンバーのスナップショットです。
type Member struct {
	ID          string
	DisplayName string // ニックネーム優先の表示名
	Bot         bool
	RoleIDs     []string
}

// HasRole はメンバーが指定ロールに所属しているかを返します。
func (m Member) HasRole(roleID string) bool {
	return slices.Contains(m.RoleIDs, roleID)
}

// Role は集計対象ロールとその所属メンバーのスナップショットです。
type Role struct {
	ID      string
	Name    string
	Members []Member
}

// Reaction は進捗確認メッセージに付いたリアクション1種類分のスナップショットです。
type Reaction struct {
	Emoji string
	Users []Member
}

// MemberProgress はメンバー1人分の進捗です。Doneは完了手順番号の昇順リスト。
type MemberProgress struct {
	DisplayName string
	Done        []int
}

// RoleProgress はロール1つ分の進捗表です。Membersは表示順を保持します。
type RoleProgress struct {
	RoleName string
	Members  []MemberProgress
}

// Aggregate はリアクションのスナップショットからロール別・メンバー別の進捗表を作ります。
//
//   - マーカー以外のリアクションは無視する
//   - Botアカウントは無視する
//   - 対象ロールのメンバーはリアクションが無くても空の進捗で必ず載せる
//   - スナップショット取得後にロールへ参加したメンバーはリアクションから発見し次第追加する
//   - 複数の対象ロールに所属するメンバーはロールごとに独立して載せる
//
// 同じ入力に対して常に同じ出力を返します（メンバー順はロスター順、
// リアクションからの発見分は末尾に追加）。
func Aggregate(roles []Role, reactions []Reaction, stepCount int) []RoleProgress {
	// ロールごとの done集合 (displayName -> set of index) と表示順
	type roleTable struct {
		order []string
		done  map[string]map[int]struct{}
	}

	tables := make([]*roleTable, len(roles))
	for i, role := range roles {
		t := &roleTable{done: make(map[string]map[int]struct{})}
		for _, member := range role.Members {
			if member.Bot {
				continue
			}
			if _, ok := t.done[member.DisplayName]; !ok {
				t.order = append(t.order, member.DisplayName)
				t.done[member.DisplayName] = make(map[int]struct{})
			}
		}
		tables[i] = t
	}

	for _, reaction := range reactions {
		index, ok := MarkerIndex(reaction.Emoji)
		if !ok || index >= stepCount {
			// 進捗確認以外のリアクションは集計を乱さない
			continue
		}
		for _, user := range reaction.Users {
			if user.Bot {
				continue
			}
			for i, role := range roles {
				if !user.HasRole(role.ID) {
					continue
				}
				t := tables[i]
				if _, exists := t.done[user.DisplayName]; !exists {
					t.order = append(t.order, user.DisplayName)
					t.done[user.DisplayName] = make(map[int]struct{})
				}
				t.done[user.DisplayName][index] = struct{}{}
			}
		}
	}

	result := make([]RoleProgress, len(roles))
	for i, role := range roles {
		t := tables[i]
		rp := RoleProgress{RoleName: role.Name, Members: make([]MemberProgress, 0, len(t.order))}
		for _, name := range t.order {
			done := make([]int, 0, len(t.done[name]))
			for index := range t.done[name] {
				done = append(done, index)
			}
			sort.Ints(done)
			rp.Members = append(rp.Members, MemberProgress{DisplayName: name, Done: done})
		}
		result[i] = rp
	}
	return result
}
