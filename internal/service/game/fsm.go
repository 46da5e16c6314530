package game

import (
	"time"

	"go.uber.org/zap"
)

// GameMachine 是游戏状态机，独占 GameSession 并串行处理所有请求
type GameMachine struct {
	ctx     *GameContext
	handler StageHandler
	// 这是所有调用方的请求汇总的通道
	reqCh chan RequestWrapper
	// 结束通道，用于通知游戏状态机退出事件循环
	doneCh chan struct{}

	createdAt time.Time
}

func NewGameMachine(session *GameSession, doneCh chan struct{}) *GameMachine {
	handler, err := NewStageHandler(session.Stage())
	if err != nil {
		// 新建的 session 一定处于已知阶段
		panic(err)
	}

	return &GameMachine{
		ctx:       NewGameContext(session),
		handler:   handler,
		reqCh:     make(chan RequestWrapper, 64),
		doneCh:    doneCh,
		createdAt: time.Now(),
	}
}

func (gm *GameMachine) GetReqCh() chan<- RequestWrapper {
	return gm.reqCh
}

func (gm *GameMachine) Start() {
	gm.handler.OnEnter(gm.ctx)

	for {
		select {
		case req := <-gm.reqCh:
			zap.L().Debug(
				"接收到请求",
				zap.String("request_type", req.ReqType),
				zap.String("stage", gm.handler.Stage()),
			)

			gm.handle(req)

		case <-gm.doneCh:
			zap.L().Info("收到退出信号，结束游戏状态机")

			gm.handler.OnExit(gm.ctx)
			gm.ctx.UnsubscribeAll()
			return
		}
	}
}

func (gm *GameMachine) handle(req RequestWrapper) {
	err := gm.handler.OnHandle(gm.ctx, req)
	if err != nil {
		// 被拒绝的操作不改变任何状态，只回复给请求方
		zap.L().Debug(
			"请求被忽略",
			zap.Error(err),
			zap.String("stage", gm.handler.Stage()),
			zap.String("request_type", req.ReqType),
		)

		reply(req, WrapErrResponse(err))
		return
	}

	if gm.ctx.Session.Stage() != gm.handler.Stage() {
		gm.switchStage()
	}

	snapResp := gm.ctx.SnapshotResp()

	reply(req, snapResp)

	switch req.ReqType {
	case REQ_SNAPSHOT, REQ_SUBSCRIBE, REQ_UNSUBSCRIBE:
		// 只读请求不需要广播
	default:
		gm.ctx.BroadcastResp(snapResp)
	}
}

func (gm *GameMachine) switchStage() {
	nextStage := gm.ctx.Session.Stage()

	newHandler, err := NewStageHandler(nextStage)
	if err != nil {
		zap.L().Error("未知的游戏阶段", zap.String("stage", nextStage))
		return
	}

	gm.handler.OnExit(gm.ctx)

	zap.L().Info(
		"游戏阶段切换",
		zap.String("from", gm.handler.Stage()),
		zap.String("to", nextStage),
	)

	gm.handler = newHandler
	gm.handler.OnEnter(gm.ctx)
}

func (gm *GameMachine) CreatedAt() time.Time {
	return gm.createdAt
}

func reply(req RequestWrapper, resp ResponseWrapper) {
	if req.ReplyCh == nil {
		return
	}

	select {
	case req.ReplyCh <- resp:
	default:
		zap.L().Warn(
			"回复请求失败：回复通道已满",
			zap.String("request_type", req.ReqType),
		)
	}
}
