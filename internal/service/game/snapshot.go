package game

// 展示层看到的玩家信息，身份和词语只在结束阶段公开
type PlayerView struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	IsAlive     bool     `json:"is_alive"`
	HasSeenCard bool     `json:"has_seen_card"`
	Role        RoleKind `json:"role,omitempty"`
	RoleLabel   string   `json:"role_label,omitempty"`
	Word        string   `json:"word,omitempty"`
}

// 当前轮到的玩家的卡牌，Word 只在该玩家翻开后才有值
type CardView struct {
	PlayerID   int    `json:"player_id"`
	PlayerName string `json:"player_name"`
	Word       string `json:"word,omitempty"`
}

type Snapshot struct {
	RoundID  string   `json:"round_id,omitempty"`
	Stage    string   `json:"stage"`
	Locale   string   `json:"locale"`
	Settings Settings `json:"settings"`

	Players     []PlayerView  `json:"players"`
	Cursor      *RevealCursor `json:"cursor,omitempty"`
	CurrentCard *CardView     `json:"current_card,omitempty"`

	Winner          *WinnerResult `json:"winner,omitempty"`
	AliveCount      int           `json:"alive_count"`
	EliminatedCount int           `json:"eliminated_count"`
}

func (gs *GameSession) Snapshot() Snapshot {
	snap := Snapshot{
		RoundID:  gs.roundID,
		Stage:    gs.stage,
		Locale:   gs.labeler.Locale(),
		Settings: gs.settings,
		Players:  make([]PlayerView, 0, len(gs.players)),
	}

	reveal := gs.stage == STAGE_FINISHED

	for _, p := range gs.players {
		view := PlayerView{
			ID:          p.ID,
			Name:        p.Name,
			IsAlive:     p.IsAlive,
			HasSeenCard: p.HasSeenCard,
		}

		if reveal {
			view.Role = p.Role
			view.RoleLabel = gs.labeler.RoleName(p.Role)
			view.Word = p.Word
		}

		if p.IsAlive {
			snap.AliveCount++
		} else {
			snap.EliminatedCount++
		}

		snap.Players = append(snap.Players, view)
	}

	if cursor, ok := gs.Cursor(); ok {
		snap.Cursor = &cursor

		current := gs.players[cursor.CurrentIndex]
		card := &CardView{
			PlayerID:   current.ID,
			PlayerName: current.Name,
		}

		// 切换进行中时卡牌正在翻回背面
		if cursor.CurrentPlayerSeen && !cursor.Advancing {
			card.Word = current.Word
		}

		snap.CurrentCard = card
	}

	switch gs.stage {
	case STAGE_PLAYING:
		snap.Winner = gs.EvaluateWinner()
	case STAGE_FINISHED:
		snap.Winner = gs.FinalResult()
	}

	return snap
}
