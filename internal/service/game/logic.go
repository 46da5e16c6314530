package game

import (
	"fmt"

	"go.uber.org/zap"
)

// 每个阶段一个处理器，只接受本阶段有意义的请求。
// 阶段本身由 GameSession 决定，状态机在每次处理后比较两者并切换处理器。
type StageHandler interface {
	Stage() string

	OnEnter(ctx *GameContext)
	OnHandle(ctx *GameContext, req RequestWrapper) error
	OnExit(ctx *GameContext)
}

func NewStageHandler(stage string) (StageHandler, error) {
	switch stage {
	case STAGE_SETUP:
		return NewSetupStageHandler(), nil
	case STAGE_DEALING:
		return NewDealStageHandler(), nil
	case STAGE_PLAYING:
		return NewPlayStageHandler(), nil
	case STAGE_FINISHED:
		return NewFinishStageHandler(), nil
	default:
		return nil, fmt.Errorf("未知的游戏阶段: %s", stage)
	}
}

// 任何阶段都接受的请求：查询快照、订阅、取消订阅和重置
func onCommonRequest(ctx *GameContext, req RequestWrapper) (bool, error) {
	switch req.ReqType {
	case REQ_SNAPSHOT:
		return true, nil

	case REQ_RESET_ROUND:
		ctx.Session.ResetRound()
		return true, nil

	case REQ_SUBSCRIBE:
		sreq := TryUnwrapSubscribeRequest(req)
		if sreq == nil {
			return true, ErrUnsupportedReq
		}

		ctx.Subscribe(sreq.SubscriberID, sreq.RespCh)
		ctx.UnicastResp(sreq.SubscriberID, ctx.SnapshotResp())

		zap.L().Info("新的订阅者", zap.String("subscriber_id", sreq.SubscriberID))
		return true, nil

	case REQ_UNSUBSCRIBE:
		ureq := TryUnwrapUnsubscribeRequest(req)
		if ureq == nil {
			return true, ErrUnsupportedReq
		}

		ctx.Unsubscribe(ureq.SubscriberID)
		return true, nil
	}

	return false, nil
}

// 再来一局：游戏阶段和结束阶段共用
func onStartRound(ctx *GameContext, req RequestWrapper) (bool, error) {
	sreq := TryUnwrapStartRoundRequest(req)
	if sreq == nil {
		return false, nil
	}

	if sreq.Settings == nil {
		return true, ctx.Session.Replay()
	}

	return true, ctx.Session.StartNewRound(*sreq.Settings)
}

// 设置阶段是整个游戏最初始的阶段
type setupStageHandler struct{}

func NewSetupStageHandler() *setupStageHandler {
	return &setupStageHandler{}
}

func (ssh *setupStageHandler) Stage() string {
	return STAGE_SETUP
}

func (ssh *setupStageHandler) OnEnter(ctx *GameContext) {
	zap.L().Debug("进入设置阶段", zap.Any("settings", ctx.Session.Settings()))
}

func (ssh *setupStageHandler) OnHandle(ctx *GameContext, req RequestWrapper) error {
	if handled, err := onCommonRequest(ctx, req); handled {
		return err
	}

	if req := TryUnwrapUpdateSettingsRequest(req); req != nil {
		return applySettingsUpdate(ctx.Session, req)
	}

	if req := TryUnwrapAdjustSettingsRequest(req); req != nil {
		switch req.Adjust {
		case ADJUST_INC_UNDERCOVER:
			return ctx.Session.IncUndercover()
		case ADJUST_DEC_UNDERCOVER:
			return ctx.Session.DecUndercover()
		case ADJUST_INC_MR_WHITE:
			return ctx.Session.IncMrWhite()
		case ADJUST_DEC_MR_WHITE:
			return ctx.Session.DecMrWhite()
		default:
			return fmt.Errorf("%w: %s", ErrUnsupportedReq, req.Adjust)
		}
	}

	if handled, err := onStartRound(ctx, req); handled {
		return err
	}

	return ErrUnsupportedReq
}

func applySettingsUpdate(session *GameSession, req *UpdateSettingsRequest) error {
	if req.PlayerCount != nil {
		if err := session.SetPlayerCount(*req.PlayerCount); err != nil {
			return err
		}
	}

	next := session.Settings()
	if req.UndercoverCount != nil {
		next.UndercoverCount = *req.UndercoverCount
	}
	if req.MrWhiteCount != nil {
		next.MrWhiteCount = *req.MrWhiteCount
	}

	return session.UpdateSettings(next)
}

func (ssh *setupStageHandler) OnExit(ctx *GameContext) {
}

// 发牌阶段处理器
type dealStageHandler struct{}

func NewDealStageHandler() *dealStageHandler {
	return &dealStageHandler{}
}

func (dsh *dealStageHandler) Stage() string {
	return STAGE_DEALING
}

func (dsh *dealStageHandler) OnEnter(ctx *GameContext) {
	zap.L().Debug(
		"进入发牌阶段",
		zap.String("round_id", ctx.Session.RoundID()),
		zap.Int("player_count", len(ctx.Session.Players())),
	)
}

func (dsh *dealStageHandler) OnHandle(ctx *GameContext, req RequestWrapper) error {
	if handled, err := onCommonRequest(ctx, req); handled {
		return err
	}

	if req := TryUnwrapRevealRequest(req); req != nil {
		if req.PlayerIndex == nil {
			return ErrMissingPlayer
		}

		return ctx.Session.Reveal(*req.PlayerIndex)
	}

	switch req.ReqType {
	case REQ_BEGIN_ADVANCE:
		return ctx.Session.BeginAdvanceTransition()
	case REQ_COMPLETE_ADVANCE:
		return ctx.Session.CompleteAdvanceTransition()
	case REQ_ADVANCE:
		return ctx.Session.Advance()
	}

	return ErrUnsupportedReq
}

func (dsh *dealStageHandler) OnExit(ctx *GameContext) {
}

// 游戏阶段处理器
type playStageHandler struct{}

func NewPlayStageHandler() *playStageHandler {
	return &playStageHandler{}
}

func (psh *playStageHandler) Stage() string {
	return STAGE_PLAYING
}

func (psh *playStageHandler) OnEnter(ctx *GameContext) {
	zap.L().Debug("进入游戏阶段", zap.String("round_id", ctx.Session.RoundID()))
}

func (psh *playStageHandler) OnHandle(ctx *GameContext, req RequestWrapper) error {
	if handled, err := onCommonRequest(ctx, req); handled {
		return err
	}

	if req := TryUnwrapToggleEliminationRequest(req); req != nil {
		if req.PlayerID == nil {
			return ErrMissingPlayer
		}

		if err := ctx.Session.ToggleElimination(*req.PlayerID); err != nil {
			return err
		}

		if result := ctx.Session.EvaluateWinner(); result != nil {
			zap.L().Info(
				"已分出胜负",
				zap.String("round_id", ctx.Session.RoundID()),
				zap.String("winner", string(result.Winner)),
			)
		}

		return nil
	}

	if req.ReqType == REQ_FINISH_ROUND {
		return ctx.Session.FinishRound()
	}

	if handled, err := onStartRound(ctx, req); handled {
		return err
	}

	return ErrUnsupportedReq
}

func (psh *playStageHandler) OnExit(ctx *GameContext) {
}

// 结束阶段处理器
type finishStageHandler struct{}

func NewFinishStageHandler() *finishStageHandler {
	return &finishStageHandler{}
}

func (fsh *finishStageHandler) Stage() string {
	return STAGE_FINISHED
}

func (fsh *finishStageHandler) OnEnter(ctx *GameContext) {
	zap.L().Debug("进入结束阶段", zap.String("round_id", ctx.Session.RoundID()))
}

func (fsh *finishStageHandler) OnHandle(ctx *GameContext, req RequestWrapper) error {
	if handled, err := onCommonRequest(ctx, req); handled {
		return err
	}

	if handled, err := onStartRound(ctx, req); handled {
		return err
	}

	// 结束阶段只能重置或再来一局
	return ErrUnsupportedReq
}

func (fsh *finishStageHandler) OnExit(ctx *GameContext) {
}
