package http

import (
	"encoding/json"
	"errors"

	"undercover-local/internal/service"
	"undercover-local/internal/service/game"
	"undercover-local/internal/state"

	"github.com/kataras/iris/v12"
	"go.uber.org/zap"
)

func GetGame(appState *state.AppState) iris.Handler {
	return simpleAction(appState, game.REQ_SNAPSHOT)
}

func UpdateSettings(appState *state.AppState) iris.Handler {
	return func(ctx iris.Context) {
		var req game.UpdateSettingsRequest

		if err := ctx.ReadJSON(&req); err != nil {
			badRequest(ctx, err)
			return
		}

		respond(ctx, appState, game.WrapRequest(game.REQ_UPDATE_SETTINGS, &req))
	}
}

func AdjustSettings(appState *state.AppState) iris.Handler {
	return func(ctx iris.Context) {
		var req game.AdjustSettingsRequest

		if err := ctx.ReadJSON(&req); err != nil {
			badRequest(ctx, err)
			return
		}

		respond(ctx, appState, game.WrapRequest(game.REQ_ADJUST_SETTINGS, &req))
	}
}

// StartRound 请求体可以为空，此时沿用当前配置
func StartRound(appState *state.AppState) iris.Handler {
	return func(ctx iris.Context) {
		var req game.StartRoundRequest

		body, err := ctx.GetBody()
		if err != nil {
			badRequest(ctx, err)
			return
		}

		if len(body) > 0 {
			if err := json.Unmarshal(body, &req); err != nil {
				badRequest(ctx, err)
				return
			}
		}

		respond(ctx, appState, game.WrapRequest(game.REQ_START_ROUND, &req))
	}
}

func FinishRound(appState *state.AppState) iris.Handler {
	return simpleAction(appState, game.REQ_FINISH_ROUND)
}

func ResetRound(appState *state.AppState) iris.Handler {
	return simpleAction(appState, game.REQ_RESET_ROUND)
}

func Reveal(appState *state.AppState) iris.Handler {
	return func(ctx iris.Context) {
		var req game.RevealRequest

		if err := ctx.ReadJSON(&req); err != nil {
			badRequest(ctx, err)
			return
		}

		if req.PlayerIndex == nil {
			badRequest(ctx, game.ErrMissingPlayer)
			return
		}

		respond(ctx, appState, game.WrapRequest(game.REQ_REVEAL, &req))
	}
}

func Advance(appState *state.AppState) iris.Handler {
	return simpleAction(appState, game.REQ_ADVANCE)
}

func BeginAdvance(appState *state.AppState) iris.Handler {
	return simpleAction(appState, game.REQ_BEGIN_ADVANCE)
}

func CompleteAdvance(appState *state.AppState) iris.Handler {
	return simpleAction(appState, game.REQ_COMPLETE_ADVANCE)
}

func ToggleElimination(appState *state.AppState) iris.Handler {
	return func(ctx iris.Context) {
		id, err := ctx.Params().GetInt("id")
		if err != nil {
			badRequest(ctx, err)
			return
		}

		respond(ctx, appState, game.WrapRequest(
			game.REQ_TOGGLE_ELIMINATION,
			&game.ToggleEliminationRequest{PlayerID: &id},
		))
	}
}

func simpleAction(appState *state.AppState, reqType string) iris.Handler {
	return func(ctx iris.Context) {
		respond(ctx, appState, game.WrapRequest(reqType, nil))
	}
}

func respond(ctx iris.Context, appState *state.AppState, req game.RequestWrapper) {
	snap, err := appState.GameSvc.Do(req)
	if err != nil {
		status := statusFor(err)
		if status != iris.StatusConflict {
			zap.L().Warn(
				"处理请求失败",
				zap.String("request_type", req.ReqType),
				zap.Error(err),
			)
		}

		ctx.StatusCode(status)
		ctx.JSON(iris.Map{
			"error": err.Error(),
		})
		return
	}

	ctx.JSON(snap)
}

// 被游戏规则忽略的操作返回 409，状态没有变化
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrServiceClosed), errors.Is(err, service.ErrServiceBusy):
		return iris.StatusServiceUnavailable
	default:
		return iris.StatusConflict
	}
}

func badRequest(ctx iris.Context, err error) {
	zap.L().Debug("请求参数无效", zap.Error(err))

	ctx.StatusCode(iris.StatusBadRequest)
	ctx.JSON(iris.Map{
		"error": "请求参数无效",
	})
}
