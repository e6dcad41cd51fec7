package discord

// Throttle はリアクションイベント処理の同時実行数を抑えるカウンティングセマフォです。
// 上限に達している間に来たイベントは待たせずに捨てます（キューではなく入場制限）。
type Throttle struct {
	tokens chan struct{}
}

func NewThrottle(limit int) *Throttle {
	if limit <= 0 {
		limit = 1
	}
	return &Throttle{tokens: make(chan struct{}, limit)}
}

// TryAcquire は空きがあれば枠を確保してtrueを返します。満杯ならfalse。
func (t *Throttle) TryAcquire() bool {
	select {
	case t.tokens <- struct{}{}:
		return true
	default:
		return false
	}
}

// Release は確保した枠を返却します。確保していない状態で呼んでも何もしません。
func (t *Throttle) Release() {
	select {
	case <-t.tokens:
	default:
	}
}
