package game

import (
	"encoding/json"
	"errors"

	"go.uber.org/zap"
)

// 请求类型
const (
	REQ_SNAPSHOT           = "Snapshot"
	REQ_UPDATE_SETTINGS    = "UpdateSettings"
	REQ_ADJUST_SETTINGS    = "AdjustSettings"
	REQ_START_ROUND        = "StartRound"
	REQ_REVEAL             = "Reveal"
	REQ_BEGIN_ADVANCE      = "BeginAdvance"
	REQ_COMPLETE_ADVANCE   = "CompleteAdvance"
	REQ_ADVANCE            = "Advance"
	REQ_TOGGLE_ELIMINATION = "ToggleElimination"
	REQ_FINISH_ROUND       = "FinishRound"
	REQ_RESET_ROUND        = "ResetRound"
	REQ_SUBSCRIBE          = "Subscribe"
	REQ_UNSUBSCRIBE        = "Unsubscribe"
)

type RequestWrapper struct {
	ReqType string          `json:"request_type"`
	Data    json.RawMessage `json:"data,omitempty"`

	// 进程内调用直接携带请求结构体指针，优先于 Data
	NativeData any `json:"-"`
	// 非空时状态机会把处理结果（快照或错误）回复到这里
	ReplyCh chan ResponseWrapper `json:"-"`
}

func WrapRequest(reqType string, data any) RequestWrapper {
	return RequestWrapper{
		ReqType:    reqType,
		NativeData: data,
	}
}

func tryUnwrap[T any](wrapper RequestWrapper, reqType string) *T {
	if wrapper.ReqType != reqType {
		return nil
	}

	if native, ok := wrapper.NativeData.(*T); ok && native != nil {
		return native
	}

	var req T

	// 没有负载的请求按零值处理，必填字段用指针表示，由处理器检查
	if len(wrapper.Data) == 0 {
		return &req
	}

	if err := json.Unmarshal(wrapper.Data, &req); err != nil {
		zap.L().Error(
			"Failed to unwrap request",
			zap.String("request_type", reqType),
			zap.Error(err),
		)
		return nil
	}

	return &req
}

func TryUnwrapUpdateSettingsRequest(wrapper RequestWrapper) *UpdateSettingsRequest {
	return tryUnwrap[UpdateSettingsRequest](wrapper, REQ_UPDATE_SETTINGS)
}

func TryUnwrapAdjustSettingsRequest(wrapper RequestWrapper) *AdjustSettingsRequest {
	return tryUnwrap[AdjustSettingsRequest](wrapper, REQ_ADJUST_SETTINGS)
}

func TryUnwrapStartRoundRequest(wrapper RequestWrapper) *StartRoundRequest {
	return tryUnwrap[StartRoundRequest](wrapper, REQ_START_ROUND)
}

func TryUnwrapRevealRequest(wrapper RequestWrapper) *RevealRequest {
	return tryUnwrap[RevealRequest](wrapper, REQ_REVEAL)
}

func TryUnwrapToggleEliminationRequest(wrapper RequestWrapper) *ToggleEliminationRequest {
	return tryUnwrap[ToggleEliminationRequest](wrapper, REQ_TOGGLE_ELIMINATION)
}

func TryUnwrapSubscribeRequest(wrapper RequestWrapper) *SubscribeRequest {
	if wrapper.ReqType != REQ_SUBSCRIBE {
		return nil
	}

	// 订阅必须携带通道，不能从 JSON 构造
	req, ok := wrapper.NativeData.(*SubscribeRequest)
	if !ok || req == nil || req.RespCh == nil {
		return nil
	}

	return req
}

func TryUnwrapUnsubscribeRequest(wrapper RequestWrapper) *UnsubscribeRequest {
	return tryUnwrap[UnsubscribeRequest](wrapper, REQ_UNSUBSCRIBE)
}

// 响应类型
const (
	RESP_ERROR      = "Error"
	RESP_GAME_STATE = "GameState"
)

type ResponseWrapper struct {
	RespType string `json:"response_type"`
	Data     any    `json:"data,omitempty"`
	ErrMsg   string `json:"error_message,omitempty"`

	// 保留原始错误，便于调用方用 errors.Is 判断
	Err error `json:"-"`
}

func WrapResponse(respType string, data any) ResponseWrapper {
	return ResponseWrapper{
		RespType: respType,
		Data:     data,
	}
}

func WrapErrResponse(err error) ResponseWrapper {
	if err == nil {
		err = errors.New("未知错误")
	}

	return ResponseWrapper{
		RespType: RESP_ERROR,
		ErrMsg:   err.Error(),
		Err:      err,
	}
}

func WrapSnapshot(snap Snapshot) ResponseWrapper {
	return WrapResponse(RESP_GAME_STATE, snap)
}
