package game

import (
	"math/rand/v2"
	"testing"
)

func newTestRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func mustLabeler(t *testing.T, locale string) *Labeler {
	t.Helper()

	labeler, err := NewLabeler(locale)
	if err != nil {
		t.Fatalf("NewLabeler(%q) failed: %v", locale, err)
	}

	return labeler
}

func newTestSession(t *testing.T, seed uint64, settings Settings) *GameSession {
	t.Helper()

	rng := newTestRand(seed)

	bank, err := NewWordBank(DefaultWordPairs, rng)
	if err != nil {
		t.Fatalf("NewWordBank failed: %v", err)
	}

	return NewGameSession(bank, rng, mustLabeler(t, "zh-CN"), settings)
}

// dealAll 让每位玩家依次翻牌并切换，结束后应进入游戏阶段
func dealAll(t *testing.T, gs *GameSession) {
	t.Helper()

	for i := range len(gs.Players()) {
		if err := gs.Reveal(i); err != nil {
			t.Fatalf("reveal player %d: %v", i, err)
		}

		if err := gs.Advance(); err != nil {
			t.Fatalf("advance past player %d: %v", i, err)
		}
	}

	if gs.Stage() != STAGE_PLAYING {
		t.Fatalf("want stage %s after dealing, got %s", STAGE_PLAYING, gs.Stage())
	}
}

func idsWithRole(players []Player, role RoleKind) []int {
	ids := make([]int, 0)
	for _, p := range players {
		if p.Role == role {
			ids = append(ids, p.ID)
		}
	}

	return ids
}

func ptr(v int) *int {
	return &v
}
