package game

// 部分更新人数配置，未提供的字段保持不变。
// 总人数先生效，随后卧底人数会按新的总人数重新夹取。
type UpdateSettingsRequest struct {
	PlayerCount     *int `json:"player_count,omitempty"`
	UndercoverCount *int `json:"undercover_count,omitempty"`
	MrWhiteCount    *int `json:"mr_white_count,omitempty"`
}

// 对应设置界面上的 +/- 按钮
const (
	ADJUST_INC_UNDERCOVER = "IncUndercover"
	ADJUST_DEC_UNDERCOVER = "DecUndercover"
	ADJUST_INC_MR_WHITE   = "IncMrWhite"
	ADJUST_DEC_MR_WHITE   = "DecMrWhite"
)

type AdjustSettingsRequest struct {
	Adjust string `json:"adjust"`
}

// Settings 为空时沿用当前配置（再来一局）
type StartRoundRequest struct {
	Settings *Settings `json:"settings,omitempty"`
}

// 玩家编号必须显式给出，缺省时请求被拒绝，不会落到 0 号玩家身上
type RevealRequest struct {
	PlayerIndex *int `json:"player_index"`
}

type ToggleEliminationRequest struct {
	PlayerID *int `json:"player_id"`
}

// 订阅请求只在进程内使用，不经过 JSON
type SubscribeRequest struct {
	SubscriberID string
	RespCh       chan ResponseWrapper
}

type UnsubscribeRequest struct {
	SubscriberID string `json:"subscriber_id"`
}
