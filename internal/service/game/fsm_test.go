package game

import (
	"errors"
	"testing"
	"time"
)

func startMachine(t *testing.T, seed uint64, settings Settings) *GameMachine {
	t.Helper()

	doneCh := make(chan struct{})
	gm := NewGameMachine(newTestSession(t, seed, settings), doneCh)

	go gm.Start()
	t.Cleanup(func() { close(doneCh) })

	return gm
}

func send(t *testing.T, gm *GameMachine, req RequestWrapper) ResponseWrapper {
	t.Helper()

	replyCh := make(chan ResponseWrapper, 1)
	req.ReplyCh = replyCh

	gm.GetReqCh() <- req

	select {
	case resp := <-replyCh:
		return resp
	case <-time.After(2 * time.Second):
		t.Fatalf("no reply for %s", req.ReqType)
		return ResponseWrapper{}
	}
}

func mustSnapshot(t *testing.T, resp ResponseWrapper) Snapshot {
	t.Helper()

	if resp.RespType != RESP_GAME_STATE {
		t.Fatalf("want %s response, got %s (%s)", RESP_GAME_STATE, resp.RespType, resp.ErrMsg)
	}

	snap, ok := resp.Data.(Snapshot)
	if !ok {
		t.Fatalf("response data is %T, not Snapshot", resp.Data)
	}

	return snap
}

func recvPush(t *testing.T, ch <-chan ResponseWrapper) ResponseWrapper {
	t.Helper()

	select {
	case resp, ok := <-ch:
		if !ok {
			t.Fatalf("subscriber channel closed unexpectedly")
		}
		return resp
	case <-time.After(2 * time.Second):
		t.Fatalf("no push received")
		return ResponseWrapper{}
	}
}

func TestGameMachine_PlaysFullRound(t *testing.T) {
	gm := startMachine(t, 31, Settings{PlayerCount: 4, UndercoverCount: 1, MrWhiteCount: 0})

	snap := mustSnapshot(t, send(t, gm, WrapRequest(REQ_START_ROUND, &StartRoundRequest{})))
	if snap.Stage != STAGE_DEALING || len(snap.Players) != 4 {
		t.Fatalf("unexpected snapshot after start: %+v", snap)
	}

	for i := range 4 {
		mustSnapshot(t, send(t, gm, WrapRequest(REQ_REVEAL, &RevealRequest{PlayerIndex: ptr(i)})))
		mustSnapshot(t, send(t, gm, WrapRequest(REQ_BEGIN_ADVANCE, nil)))
		snap = mustSnapshot(t, send(t, gm, WrapRequest(REQ_COMPLETE_ADVANCE, nil)))
	}

	if snap.Stage != STAGE_PLAYING {
		t.Fatalf("want stage %s, got %s", STAGE_PLAYING, snap.Stage)
	}

	snap = mustSnapshot(t, send(t, gm, WrapRequest(REQ_TOGGLE_ELIMINATION, &ToggleEliminationRequest{PlayerID: ptr(0)})))
	if snap.EliminatedCount != 1 {
		t.Fatalf("want 1 eliminated, got %d", snap.EliminatedCount)
	}

	snap = mustSnapshot(t, send(t, gm, WrapRequest(REQ_FINISH_ROUND, nil)))
	if snap.Stage != STAGE_FINISHED || snap.Players[0].Role == "" {
		t.Fatalf("finish should reveal roles: %+v", snap)
	}

	snap = mustSnapshot(t, send(t, gm, WrapRequest(REQ_RESET_ROUND, nil)))
	if snap.Stage != STAGE_SETUP || len(snap.Players) != 0 {
		t.Fatalf("reset should return to setup: %+v", snap)
	}
}

func TestGameMachine_RejectsRequestsOutsideTheirStage(t *testing.T) {
	gm := startMachine(t, 32, DefaultSettings())

	tests := []RequestWrapper{
		WrapRequest(REQ_REVEAL, &RevealRequest{PlayerIndex: ptr(0)}),
		WrapRequest(REQ_ADVANCE, nil),
		WrapRequest(REQ_TOGGLE_ELIMINATION, &ToggleEliminationRequest{PlayerID: ptr(0)}),
		WrapRequest(REQ_FINISH_ROUND, nil),
		WrapRequest("Vote", nil),
	}

	for _, req := range tests {
		resp := send(t, gm, req)
		if resp.RespType != RESP_ERROR || !errors.Is(resp.Err, ErrUnsupportedReq) {
			t.Fatalf("%s in setup: want ErrUnsupportedReq, got %+v", req.ReqType, resp)
		}
	}

	mustSnapshot(t, send(t, gm, WrapRequest(REQ_START_ROUND, nil)))

	resp := send(t, gm, WrapRequest(REQ_REVEAL, &RevealRequest{PlayerIndex: ptr(3)}))
	if !errors.Is(resp.Err, ErrOutOfTurn) {
		t.Fatalf("want ErrOutOfTurn, got %+v", resp)
	}

	resp = send(t, gm, WrapRequest(REQ_UPDATE_SETTINGS, &UpdateSettingsRequest{}))
	if !errors.Is(resp.Err, ErrUnsupportedReq) {
		t.Fatalf("settings while dealing: want ErrUnsupportedReq, got %+v", resp)
	}

	snap := mustSnapshot(t, send(t, gm, WrapRequest(REQ_SNAPSHOT, nil)))
	if snap.Stage != STAGE_DEALING || snap.Players[3].HasSeenCard {
		t.Fatalf("rejected requests changed state: %+v", snap)
	}
}

func TestGameMachine_DecodesJSONPayloads(t *testing.T) {
	gm := startMachine(t, 33, DefaultSettings())

	req := RequestWrapper{
		ReqType: REQ_UPDATE_SETTINGS,
		Data:    mustMarshal(map[string]int{"player_count": 8, "undercover_count": 3}),
	}

	snap := mustSnapshot(t, send(t, gm, req))
	if want := (Settings{PlayerCount: 8, UndercoverCount: 3, MrWhiteCount: 0}); snap.Settings != want {
		t.Fatalf("want settings %+v, got %+v", want, snap.Settings)
	}

	req = RequestWrapper{
		ReqType: REQ_ADJUST_SETTINGS,
		Data:    mustMarshal(AdjustSettingsRequest{Adjust: ADJUST_INC_MR_WHITE}),
	}

	snap = mustSnapshot(t, send(t, gm, req))
	if snap.Settings.MrWhiteCount != 1 {
		t.Fatalf("want 1 mr white, got %d", snap.Settings.MrWhiteCount)
	}

	resp := send(t, gm, RequestWrapper{
		ReqType: REQ_ADJUST_SETTINGS,
		Data:    mustMarshal(AdjustSettingsRequest{Adjust: "Explode"}),
	})
	if !errors.Is(resp.Err, ErrUnsupportedReq) {
		t.Fatalf("unknown adjustment: want ErrUnsupportedReq, got %+v", resp)
	}

	resp = send(t, gm, RequestWrapper{ReqType: REQ_UPDATE_SETTINGS, Data: []byte(`{"player_count":`)})
	if !errors.Is(resp.Err, ErrUnsupportedReq) {
		t.Fatalf("malformed payload: want ErrUnsupportedReq, got %+v", resp)
	}
}

func TestGameMachine_StartRoundWithSettingsFromPlaying(t *testing.T) {
	gm := startMachine(t, 34, DefaultSettings())

	mustSnapshot(t, send(t, gm, WrapRequest(REQ_START_ROUND, nil)))

	for i := range 5 {
		mustSnapshot(t, send(t, gm, WrapRequest(REQ_REVEAL, &RevealRequest{PlayerIndex: ptr(i)})))
		mustSnapshot(t, send(t, gm, WrapRequest(REQ_ADVANCE, nil)))
	}

	next := Settings{PlayerCount: 7, UndercoverCount: 2, MrWhiteCount: 1}
	snap := mustSnapshot(t, send(t, gm, WrapRequest(REQ_START_ROUND, &StartRoundRequest{Settings: &next})))

	if snap.Stage != STAGE_DEALING || len(snap.Players) != 7 || snap.Settings != next {
		t.Fatalf("unexpected snapshot after restart: %+v", snap)
	}

	// 发牌阶段的处理器已经切换，游戏阶段的请求会被拒绝
	resp := send(t, gm, WrapRequest(REQ_TOGGLE_ELIMINATION, &ToggleEliminationRequest{PlayerID: ptr(0)}))
	if !errors.Is(resp.Err, ErrUnsupportedReq) {
		t.Fatalf("want ErrUnsupportedReq, got %+v", resp)
	}
}

func TestGameMachine_Subscribers(t *testing.T) {
	gm := startMachine(t, 35, DefaultSettings())

	pushCh := make(chan ResponseWrapper, 16)

	mustSnapshot(t, send(t, gm, WrapRequest(REQ_SUBSCRIBE, &SubscribeRequest{
		SubscriberID: "screen",
		RespCh:       pushCh,
	})))

	if snap := mustSnapshot(t, recvPush(t, pushCh)); snap.Stage != STAGE_SETUP {
		t.Fatalf("initial push should be the setup snapshot, got %s", snap.Stage)
	}

	mustSnapshot(t, send(t, gm, WrapRequest(REQ_SNAPSHOT, nil)))
	mustSnapshot(t, send(t, gm, WrapRequest(REQ_START_ROUND, nil)))

	// 快照查询不广播，下一条推送就是开局后的状态
	if snap := mustSnapshot(t, recvPush(t, pushCh)); snap.Stage != STAGE_DEALING {
		t.Fatalf("want broadcast of %s, got %s", STAGE_DEALING, snap.Stage)
	}

	// 被拒绝的请求不广播
	send(t, gm, WrapRequest(REQ_REVEAL, &RevealRequest{PlayerIndex: ptr(2)}))

	mustSnapshot(t, send(t, gm, WrapRequest(REQ_UNSUBSCRIBE, &UnsubscribeRequest{SubscriberID: "screen"})))

	select {
	case resp, ok := <-pushCh:
		if ok {
			t.Fatalf("unexpected push after unsubscribe: %+v", resp)
		}
	case <-time.After(2 * time.Second):
		t.Fatalf("subscriber channel not closed")
	}
}

func TestGameMachine_SubscribeRequiresChannel(t *testing.T) {
	gm := startMachine(t, 36, DefaultSettings())

	resp := send(t, gm, RequestWrapper{
		ReqType: REQ_SUBSCRIBE,
		Data:    mustMarshal(map[string]string{"subscriber_id": "remote"}),
	})

	if !errors.Is(resp.Err, ErrUnsupportedReq) {
		t.Fatalf("want ErrUnsupportedReq, got %+v", resp)
	}
}

func TestGameMachine_ClosesSubscribersOnExit(t *testing.T) {
	doneCh := make(chan struct{})
	gm := NewGameMachine(newTestSession(t, 37, DefaultSettings()), doneCh)

	exited := make(chan struct{})
	go func() {
		gm.Start()
		close(exited)
	}()

	pushCh := make(chan ResponseWrapper, 16)
	mustSnapshot(t, send(t, gm, WrapRequest(REQ_SUBSCRIBE, &SubscribeRequest{
		SubscriberID: "screen",
		RespCh:       pushCh,
	})))
	recvPush(t, pushCh)

	close(doneCh)

	select {
	case <-exited:
	case <-time.After(2 * time.Second):
		t.Fatalf("machine did not exit")
	}

	if _, ok := <-pushCh; ok {
		t.Fatalf("subscriber channel should be closed on exit")
	}
}

func TestGameMachine_RequiresPlayerInPayload(t *testing.T) {
	gm := startMachine(t, 38, DefaultSettings())

	mustSnapshot(t, send(t, gm, WrapRequest(REQ_START_ROUND, nil)))

	for _, req := range []RequestWrapper{
		{ReqType: REQ_REVEAL},
		{ReqType: REQ_REVEAL, Data: []byte(`{}`)},
	} {
		if resp := send(t, gm, req); !errors.Is(resp.Err, ErrMissingPlayer) {
			t.Fatalf("reveal without player: want ErrMissingPlayer, got %+v", resp)
		}
	}

	snap := mustSnapshot(t, send(t, gm, WrapRequest(REQ_SNAPSHOT, nil)))
	if snap.Players[0].HasSeenCard {
		t.Fatalf("reveal without player marked player 0")
	}

	for i := range 5 {
		mustSnapshot(t, send(t, gm, WrapRequest(REQ_REVEAL, &RevealRequest{PlayerIndex: ptr(i)})))
		mustSnapshot(t, send(t, gm, WrapRequest(REQ_ADVANCE, nil)))
	}

	for _, req := range []RequestWrapper{
		{ReqType: REQ_TOGGLE_ELIMINATION},
		{ReqType: REQ_TOGGLE_ELIMINATION, Data: []byte(`{}`)},
		WrapRequest(REQ_TOGGLE_ELIMINATION, &ToggleEliminationRequest{}),
	} {
		if resp := send(t, gm, req); !errors.Is(resp.Err, ErrMissingPlayer) {
			t.Fatalf("toggle without player: want ErrMissingPlayer, got %+v", resp)
		}
	}

	snap = mustSnapshot(t, send(t, gm, WrapRequest(REQ_SNAPSHOT, nil)))
	if snap.AliveCount != 5 || !snap.Players[0].IsAlive {
		t.Fatalf("toggle without player eliminated someone: %+v", snap.Players)
	}
}
