package game

// RevealCursor 是发牌阶段对外可见的游标状态
type RevealCursor struct {
	CurrentIndex      int  `json:"current_index"`
	CurrentPlayerSeen bool `json:"current_player_seen"`
	// 已经触发切换、正在等待前端翻牌动画结束
	Advancing bool `json:"advancing"`
}

// RevealSequencer 保证玩家逐个私下查看卡牌：
// 当前玩家没看过自己的牌之前，不能切换到下一位；一次切换只前进一位。
type RevealSequencer struct {
	total  int
	cursor RevealCursor
	done   bool
}

func NewRevealSequencer(playerCount int) *RevealSequencer {
	return &RevealSequencer{total: playerCount}
}

func (rs *RevealSequencer) Cursor() RevealCursor {
	return rs.cursor
}

func (rs *RevealSequencer) Done() bool {
	return rs.done
}

// Reveal 翻开当前玩家的卡牌，重复翻开是允许的
func (rs *RevealSequencer) Reveal(playerIndex int) error {
	if rs.done {
		return ErrRevealComplete
	}

	if playerIndex != rs.cursor.CurrentIndex {
		return ErrOutOfTurn
	}

	if rs.cursor.Advancing {
		return ErrAdvanceInFlight
	}

	rs.cursor.CurrentPlayerSeen = true

	return nil
}

// BeginAdvance 锁定输入，等待前端动画结束后调用 CompleteAdvance
func (rs *RevealSequencer) BeginAdvance() error {
	if rs.done {
		return ErrRevealComplete
	}

	if rs.cursor.Advancing {
		return ErrAdvanceInFlight
	}

	if !rs.cursor.CurrentPlayerSeen {
		return ErrCardNotSeen
	}

	rs.cursor.Advancing = true

	return nil
}

// CompleteAdvance 返回 true 表示最后一位玩家也已看完
func (rs *RevealSequencer) CompleteAdvance() (bool, error) {
	if rs.done {
		return false, ErrRevealComplete
	}

	if !rs.cursor.Advancing {
		return false, ErrNoAdvancePending
	}

	if rs.cursor.CurrentIndex >= rs.total-1 {
		rs.cursor.Advancing = false
		rs.done = true
		return true, nil
	}

	rs.cursor = RevealCursor{
		CurrentIndex: rs.cursor.CurrentIndex + 1,
	}

	return false, nil
}

// Advance 不需要动画时一步完成切换
func (rs *RevealSequencer) Advance() (bool, error) {
	if err := rs.BeginAdvance(); err != nil {
		return false, err
	}

	return rs.CompleteAdvance()
}
