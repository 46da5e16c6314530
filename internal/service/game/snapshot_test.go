package game

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestSnapshot_Setup(t *testing.T) {
	gs := newTestSession(t, 21, DefaultSettings())

	snap := gs.Snapshot()

	if snap.Stage != STAGE_SETUP || snap.RoundID != "" {
		t.Fatalf("unexpected setup snapshot %+v", snap)
	}
	if len(snap.Players) != 0 || snap.Cursor != nil || snap.CurrentCard != nil || snap.Winner != nil {
		t.Fatalf("setup snapshot must not carry round state: %+v", snap)
	}
	if snap.Locale != "zh-Hans" && snap.Locale != "zh-CN" {
		t.Fatalf("unexpected locale %q", snap.Locale)
	}
}

func TestSnapshot_HidesRolesUntilFinished(t *testing.T) {
	gs := newTestSession(t, 22, Settings{PlayerCount: 5, UndercoverCount: 1, MrWhiteCount: 1})

	if err := gs.StartNewRound(gs.Settings()); err != nil {
		t.Fatalf("start round: %v", err)
	}

	assertHidden := func(stage string) {
		t.Helper()

		snap := gs.Snapshot()
		for _, p := range snap.Players {
			if p.Role != "" || p.RoleLabel != "" || p.Word != "" {
				t.Fatalf("%s: player %d leaked its card: %+v", stage, p.ID, p)
			}
		}

		raw, err := json.Marshal(snap.Players)
		if err != nil {
			t.Fatalf("marshal players: %v", err)
		}
		if strings.Contains(string(raw), gs.Pair().Civilian) {
			t.Fatalf("%s: serialized roster leaked the civilian word", stage)
		}
	}

	assertHidden(STAGE_DEALING)
	dealAll(t, gs)
	assertHidden(STAGE_PLAYING)

	if err := gs.FinishRound(); err != nil {
		t.Fatalf("finish: %v", err)
	}

	snap := gs.Snapshot()
	players := gs.Players()

	for i, view := range snap.Players {
		if view.Role != players[i].Role || view.Word != players[i].Word {
			t.Fatalf("player %d not revealed after finish: %+v", i, view)
		}
		if view.RoleLabel == "" {
			t.Fatalf("player %d has no role label", i)
		}
	}
}

func TestSnapshot_CurrentCard(t *testing.T) {
	gs := newTestSession(t, 23, DefaultSettings())

	if err := gs.StartNewRound(gs.Settings()); err != nil {
		t.Fatalf("start round: %v", err)
	}

	snap := gs.Snapshot()
	if snap.CurrentCard == nil || snap.CurrentCard.PlayerID != 0 {
		t.Fatalf("want card for player 0, got %+v", snap.CurrentCard)
	}
	if snap.CurrentCard.Word != "" {
		t.Fatalf("word visible before reveal: %q", snap.CurrentCard.Word)
	}
	if snap.CurrentCard.PlayerName != "玩家 1" {
		t.Fatalf("unexpected player name %q", snap.CurrentCard.PlayerName)
	}

	if err := gs.Reveal(0); err != nil {
		t.Fatalf("reveal: %v", err)
	}

	snap = gs.Snapshot()
	if want := gs.Players()[0].Word; snap.CurrentCard.Word != want {
		t.Fatalf("want word %q after reveal, got %q", want, snap.CurrentCard.Word)
	}

	if err := gs.BeginAdvanceTransition(); err != nil {
		t.Fatalf("begin advance: %v", err)
	}

	snap = gs.Snapshot()
	if snap.CurrentCard.Word != "" || !snap.Cursor.Advancing {
		t.Fatalf("word must be hidden while advancing: %+v", snap.CurrentCard)
	}

	if err := gs.CompleteAdvanceTransition(); err != nil {
		t.Fatalf("complete advance: %v", err)
	}

	snap = gs.Snapshot()
	if snap.CurrentCard.PlayerID != 1 || snap.CurrentCard.Word != "" {
		t.Fatalf("want hidden card for player 1, got %+v", snap.CurrentCard)
	}
}

func TestSnapshot_Counts(t *testing.T) {
	gs := newTestSession(t, 24, Settings{PlayerCount: 7, UndercoverCount: 2, MrWhiteCount: 0})

	if err := gs.StartNewRound(gs.Settings()); err != nil {
		t.Fatalf("start round: %v", err)
	}
	dealAll(t, gs)

	civilians := idsWithRole(gs.Players(), ROLE_CIVILIAN)
	if err := gs.ToggleElimination(civilians[0]); err != nil {
		t.Fatalf("toggle: %v", err)
	}

	snap := gs.Snapshot()
	if snap.AliveCount != 6 || snap.EliminatedCount != 1 {
		t.Fatalf("want 6 alive and 1 eliminated, got %d/%d", snap.AliveCount, snap.EliminatedCount)
	}
	if snap.Cursor != nil || snap.CurrentCard != nil {
		t.Fatalf("playing snapshot must not carry a cursor")
	}
	if snap.Winner != nil {
		t.Fatalf("4 civilians vs 2 undercover should continue, got %+v", snap.Winner)
	}
}
