package game

import "errors"

// 以下错误都表示"本次操作被忽略"，返回时状态没有任何变化
var (
	ErrWrongStage       = errors.New("当前阶段不支持该操作")
	ErrOutOfTurn        = errors.New("只能查看当前玩家的卡牌")
	ErrCardNotSeen      = errors.New("当前玩家尚未查看卡牌")
	ErrAdvanceInFlight  = errors.New("正在切换到下一位玩家")
	ErrNoAdvancePending = errors.New("没有进行中的切换")
	ErrRevealComplete   = errors.New("所有玩家均已查看卡牌")
	ErrUnknownPlayer    = errors.New("玩家不存在")
	ErrUnsupportedReq   = errors.New("当前阶段不支持该请求类型")
	ErrMissingPlayer    = errors.New("请求缺少玩家编号")
)
