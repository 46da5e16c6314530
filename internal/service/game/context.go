package game

import (
	"go.uber.org/zap"
)

// GameContext 是状态机协程独占的上下文
type GameContext struct {
	Session *GameSession
	// 从订阅者 ID 到推送通道
	Subscribers map[string]chan ResponseWrapper
}

func NewGameContext(session *GameSession) *GameContext {
	return &GameContext{
		Session:     session,
		Subscribers: make(map[string]chan ResponseWrapper),
	}
}

func (gc *GameContext) Subscribe(subscriberID string, respCh chan ResponseWrapper) {
	// 同一个 ID 重复订阅时替换旧通道
	if old, ok := gc.Subscribers[subscriberID]; ok && old != respCh {
		close(old)
	}

	gc.Subscribers[subscriberID] = respCh
}

func (gc *GameContext) Unsubscribe(subscriberID string) {
	respCh, ok := gc.Subscribers[subscriberID]
	if !ok {
		zap.L().Warn(
			"订阅者不存在，无法取消订阅",
			zap.String("subscriber_id", subscriberID),
		)
		return
	}

	delete(gc.Subscribers, subscriberID)
	close(respCh)
}

func (gc *GameContext) UnsubscribeAll() {
	for id, respCh := range gc.Subscribers {
		delete(gc.Subscribers, id)
		close(respCh)
	}
}

func (gc *GameContext) BroadcastResp(resp ResponseWrapper) {
	for id, respCh := range gc.Subscribers {
		select {
		case respCh <- resp:
			zap.L().Debug(
				"成功发送广播响应",
				zap.String("subscriber_id", id),
				zap.String("response_type", resp.RespType),
			)
		default:
			zap.L().Warn(
				"发送广播响应失败：订阅者通道已满",
				zap.String("subscriber_id", id),
			)
		}
	}
}

func (gc *GameContext) UnicastResp(subscriberID string, resp ResponseWrapper) {
	respCh, ok := gc.Subscribers[subscriberID]
	if !ok {
		zap.L().Warn(
			"无法找到订阅者进行单播响应",
			zap.String("subscriber_id", subscriberID),
		)
		return
	}

	select {
	case respCh <- resp:
		zap.L().Debug(
			"发送单播响应成功",
			zap.String("subscriber_id", subscriberID),
			zap.String("response_type", resp.RespType),
		)
	default:
		zap.L().Warn(
			"发送单播响应失败：订阅者通道已满",
			zap.String("subscriber_id", subscriberID),
		)
	}
}

func (gc *GameContext) SnapshotResp() ResponseWrapper {
	return WrapSnapshot(gc.Session.Snapshot())
}
