package service

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"undercover-local/internal/config"
	"undercover-local/internal/service/game"

	"go.uber.org/zap"
)

var (
	ErrServiceClosed = errors.New("游戏服务已关闭")
	ErrServiceBusy   = errors.New("游戏服务繁忙，请稍后再试")
)

// 提交请求和等待回复的超时时间
const REQUEST_TIMEOUT = 5 * time.Second

// 订阅者推送通道的缓冲大小
const SUBSCRIBER_BUFFER = 16

// GameService 是本地唯一一局游戏的入口，所有请求都经过状态机串行处理
type GameService struct {
	reqCh chan<- game.RequestWrapper

	mu     sync.RWMutex
	closed bool
	doneCh chan struct{}
}

func NewGameService(cfg *config.AppConfig) (*GameService, error) {
	rng := game.NewRand()

	pairs := cfg.WordPairs
	if len(pairs) == 0 {
		pairs = game.DefaultWordPairs
	}

	bank, err := game.NewWordBank(pairs, rng)
	if err != nil {
		return nil, fmt.Errorf("加载词库失败: %w", err)
	}

	labeler, err := game.NewLabeler(cfg.Locale)
	if err != nil {
		return nil, err
	}

	session := game.NewGameSession(bank, rng, labeler, cfg.DefaultSettings)

	zap.L().Info(
		"游戏服务已创建",
		zap.Int("word_pairs", bank.Len()),
		zap.String("locale", labeler.Locale()),
	)

	return NewGameServiceWithSession(session), nil
}

func NewGameServiceWithSession(session *game.GameSession) *GameService {
	doneCh := make(chan struct{})

	machine := game.NewGameMachine(session, doneCh)

	go machine.Start()

	return &GameService{
		reqCh:  machine.GetReqCh(),
		doneCh: doneCh,
	}
}

func (gs *GameService) Close() {
	gs.mu.Lock()
	defer gs.mu.Unlock()

	if gs.closed {
		return
	}

	gs.closed = true
	close(gs.doneCh)
}

// Do 提交请求并等待状态机处理完成，返回处理后的快照。
// 被游戏规则拒绝的操作返回 game 包中的错误，状态不变。
func (gs *GameService) Do(req game.RequestWrapper) (game.Snapshot, error) {
	replyCh := make(chan game.ResponseWrapper, 1)
	req.ReplyCh = replyCh

	if err := gs.submit(req); err != nil {
		return game.Snapshot{}, err
	}

	resTimer := time.NewTimer(REQUEST_TIMEOUT)
	defer resTimer.Stop()

	select {
	case resp := <-replyCh:
		if resp.RespType == game.RESP_ERROR {
			return game.Snapshot{}, resp.Err
		}

		snap, ok := resp.Data.(game.Snapshot)
		if !ok {
			return game.Snapshot{}, fmt.Errorf("意外的响应类型: %s", resp.RespType)
		}

		return snap, nil

	case <-gs.doneCh:
		return game.Snapshot{}, ErrServiceClosed

	case <-resTimer.C:
		zap.L().Warn("请求响应超时", zap.String("request_type", req.ReqType))
		return game.Snapshot{}, ErrServiceBusy
	}
}

func (gs *GameService) Snapshot() (game.Snapshot, error) {
	return gs.Do(game.WrapRequest(game.REQ_SNAPSHOT, nil))
}

// Subscribe 返回的通道会先收到一份当前快照，之后每次状态变化都会收到新快照。
// 取消订阅或服务关闭时通道被关闭。
func (gs *GameService) Subscribe() (string, <-chan game.ResponseWrapper, error) {
	subscriberID := game.GenID()
	respCh := make(chan game.ResponseWrapper, SUBSCRIBER_BUFFER)

	req := game.WrapRequest(game.REQ_SUBSCRIBE, &game.SubscribeRequest{
		SubscriberID: subscriberID,
		RespCh:       respCh,
	})

	if err := gs.submit(req); err != nil {
		return "", nil, err
	}

	return subscriberID, respCh, nil
}

func (gs *GameService) Unsubscribe(subscriberID string) {
	req := game.WrapRequest(game.REQ_UNSUBSCRIBE, &game.UnsubscribeRequest{
		SubscriberID: subscriberID,
	})

	if err := gs.submit(req); err != nil {
		zap.L().Debug(
			"取消订阅失败",
			zap.String("subscriber_id", subscriberID),
			zap.Error(err),
		)
	}
}

func (gs *GameService) submit(req game.RequestWrapper) error {
	gs.mu.RLock()
	defer gs.mu.RUnlock()

	if gs.closed {
		return ErrServiceClosed
	}

	reqTimer := time.NewTimer(REQUEST_TIMEOUT)
	defer reqTimer.Stop()

	select {
	case gs.reqCh <- req:
		return nil

	case <-reqTimer.C:
		zap.L().Warn("状态机无法及时处理请求", zap.String("request_type", req.ReqType))
		return ErrServiceBusy
	}
}
