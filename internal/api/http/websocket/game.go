package websocket

import (
	"encoding/json"
	"time"

	"undercover-local/internal/service/game"
	"undercover-local/internal/state"

	"github.com/gorilla/websocket"
	"github.com/kataras/iris/v12"
	"go.uber.org/zap"
)

// Connect 建立推送连接：每次状态变化都会推送 GameState 快照，
// 客户端也可以通过同一连接发送和 HTTP 接口相同的请求。
func Connect(appState *state.AppState) iris.Handler {
	return func(ctx iris.Context) {
		conn, err := upgrader.Upgrade(
			ctx.ResponseWriter(),
			ctx.Request(),
			nil,
		)
		if err != nil {
			zap.L().Error("升级到WebSocket失败", zap.Error(err))
			ctx.StatusCode(iris.StatusBadRequest)
			return
		}

		defer conn.Close()

		clientIP := ctx.RemoteAddr()

		conn.SetReadDeadline(time.Now().Add(HEARTBEAT_TIMEOUT))
		conn.SetPongHandler(keepAlive(conn))

		subscriberID, pushCh, err := appState.GameSvc.Subscribe()
		if err != nil {
			zap.L().Error(
				"订阅游戏状态失败",
				zap.String("client_ip", clientIP),
				zap.Error(err),
			)
			return
		}

		defer appState.GameSvc.Unsubscribe(subscriberID)

		zap.L().Info(
			"客户端已连接",
			zap.String("client_ip", clientIP),
			zap.String("subscriber_id", subscriberID),
		)

		// 只发给当前连接的回复（错误、快照查询）
		replyCh := make(chan game.ResponseWrapper, 8)

		// 写协程的退出信号
		writeDoneCh := make(chan struct{})
		defer close(writeDoneCh)

		go writeLoop(conn, clientIP, pushCh, replyCh, writeDoneCh)

		// 读取协程（主协程）
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(
					err,
					websocket.CloseGoingAway,
					websocket.CloseNormalClosure,
				) {
					zap.L().Error(
						"读取消息失败",
						zap.String("client_ip", clientIP),
						zap.Error(err),
					)
				}

				break
			}

			var wrapper game.RequestWrapper

			if err := json.Unmarshal(msg, &wrapper); err != nil {
				zap.L().Debug(
					"解析消息失败",
					zap.String("client_ip", clientIP),
					zap.Error(err),
				)

				sendReply(replyCh, game.WrapErrResponse(err))
				continue
			}

			// 订阅关系由连接本身管理
			if wrapper.ReqType == game.REQ_SUBSCRIBE || wrapper.ReqType == game.REQ_UNSUBSCRIBE {
				sendReply(replyCh, game.WrapErrResponse(game.ErrUnsupportedReq))
				continue
			}

			snap, err := appState.GameSvc.Do(wrapper)
			if err != nil {
				sendReply(replyCh, game.WrapErrResponse(err))
				continue
			}

			// 其余请求的结果会通过广播推送
			if wrapper.ReqType == game.REQ_SNAPSHOT {
				sendReply(replyCh, game.WrapSnapshot(snap))
			}
		}

		zap.L().Info(
			"客户端连接断开",
			zap.String("client_ip", clientIP),
			zap.String("subscriber_id", subscriberID),
		)
	}
}

func writeLoop(
	conn *websocket.Conn,
	clientIP string,
	pushCh <-chan game.ResponseWrapper,
	replyCh <-chan game.ResponseWrapper,
	writeDoneCh <-chan struct{},
) {
	ticker := time.NewTicker(HEARTBEAT_INTERVAL)
	defer ticker.Stop()

	// 写协程退出后关闭连接，让读协程也尽快退出
	defer conn.Close()

	write := func(resp game.ResponseWrapper) bool {
		conn.SetWriteDeadline(time.Now().Add(WRITE_TIMEOUT))

		if err := conn.WriteJSON(resp); err != nil {
			zap.L().Error(
				"发送消息失败",
				zap.String("client_ip", clientIP),
				zap.Error(err),
			)
			return false
		}

		return true
	}

	for {
		select {
		case <-writeDoneCh:
			zap.L().Debug("WebSocket写入协程退出", zap.String("client_ip", clientIP))
			return

		case <-ticker.C:
			conn.SetWriteDeadline(time.Now().Add(WRITE_TIMEOUT))

			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				zap.L().Error(
					"发送心跳失败",
					zap.String("client_ip", clientIP),
					zap.Error(err),
				)
				return
			}

		case resp, ok := <-pushCh:
			// 取消订阅或服务关闭
			if !ok {
				zap.L().Info("推送通道已关闭，退出写协程", zap.String("client_ip", clientIP))
				return
			}

			if !write(resp) {
				return
			}

		case resp := <-replyCh:
			if !write(resp) {
				return
			}
		}
	}
}

func sendReply(replyCh chan<- game.ResponseWrapper, resp game.ResponseWrapper) {
	select {
	case replyCh <- resp:
	default:
		zap.L().Warn("回复通道已满，丢弃回复", zap.String("response_type", resp.RespType))
	}
}
