package game

import (
	"math/rand/v2"

	"go.uber.org/zap"
)

// 游戏分为 4 个阶段：
// 1. 设置阶段（Setup）：主持人调整总人数、卧底人数和白板人数
// 2. 发牌阶段（Dealing）：玩家依次私下查看自己的词语
// 3. 游戏阶段（Playing）：线下发言投票，主持人标记出局玩家
// 4. 结束阶段（Finished）：公开所有人的身份和词语
const (
	STAGE_SETUP    = "Setup"
	STAGE_DEALING  = "Dealing"
	STAGE_PLAYING  = "Playing"
	STAGE_FINISHED = "Finished"
)

// GameSession 持有一局游戏的全部状态。
// 它不是并发安全的，所有调用都应来自同一个协程（见 GameMachine）。
type GameSession struct {
	stage    string
	settings Settings

	roundID string
	pair    *WordPair
	players []Player
	seq     *RevealSequencer
	// 进入结束阶段时的胜负结果，此后名单不再变化
	final *WinnerResult

	bank    *WordBank
	rng     *rand.Rand
	labeler *Labeler
}

func NewGameSession(bank *WordBank, rng *rand.Rand, labeler *Labeler, settings Settings) *GameSession {
	return &GameSession{
		stage:    STAGE_SETUP,
		settings: settings.Clamp(),
		bank:     bank,
		rng:      rng,
		labeler:  labeler,
	}
}

func (gs *GameSession) Stage() string {
	return gs.stage
}

func (gs *GameSession) Settings() Settings {
	return gs.settings
}

func (gs *GameSession) RoundID() string {
	return gs.roundID
}

func (gs *GameSession) Labeler() *Labeler {
	return gs.labeler
}

// Pair 在设置阶段返回 nil
func (gs *GameSession) Pair() *WordPair {
	if gs.pair == nil {
		return nil
	}

	pair := *gs.pair
	return &pair
}

// Players 返回名单的副本
func (gs *GameSession) Players() []Player {
	return append([]Player(nil), gs.players...)
}

// Cursor 只在发牌阶段存在
func (gs *GameSession) Cursor() (RevealCursor, bool) {
	if gs.seq == nil {
		return RevealCursor{}, false
	}

	return gs.seq.Cursor(), true
}

func (gs *GameSession) UpdateSettings(settings Settings) error {
	return gs.mutateSettings(func(Settings) Settings {
		return settings.Clamp()
	})
}

func (gs *GameSession) SetPlayerCount(n int) error {
	return gs.mutateSettings(func(s Settings) Settings {
		return s.WithPlayerCount(n)
	})
}

func (gs *GameSession) IncUndercover() error {
	return gs.mutateSettings(Settings.IncUndercover)
}

func (gs *GameSession) DecUndercover() error {
	return gs.mutateSettings(Settings.DecUndercover)
}

func (gs *GameSession) IncMrWhite() error {
	return gs.mutateSettings(Settings.IncMrWhite)
}

func (gs *GameSession) DecMrWhite() error {
	return gs.mutateSettings(Settings.DecMrWhite)
}

// 人数配置只能在设置阶段修改，每次修改都会重新夹取边界
func (gs *GameSession) mutateSettings(next func(Settings) Settings) error {
	if gs.stage != STAGE_SETUP {
		return ErrWrongStage
	}

	gs.settings = next(gs.settings)

	return nil
}

// StartNewRound 抽词、分配身份并进入发牌阶段。
// 可以从设置阶段开始第一局，也可以在游戏或结束阶段用同样的配置再来一局。
func (gs *GameSession) StartNewRound(settings Settings) error {
	if gs.stage == STAGE_DEALING {
		return ErrWrongStage
	}

	gs.teardown()

	gs.settings = settings.Clamp()

	pair := gs.bank.PickRandomPair()
	gs.pair = &pair
	gs.players = AssignRoles(gs.settings, pair, gs.rng, gs.labeler)
	gs.seq = NewRevealSequencer(len(gs.players))
	gs.roundID = GenID()
	gs.stage = STAGE_DEALING

	zap.L().Info(
		"新一局开始",
		zap.String("round_id", gs.roundID),
		zap.Int("player_count", gs.settings.PlayerCount),
		zap.Int("undercover_count", gs.settings.UndercoverCount),
		zap.Int("mr_white_count", gs.settings.MrWhiteCount),
	)

	return nil
}

func (gs *GameSession) Replay() error {
	return gs.StartNewRound(gs.settings)
}

func (gs *GameSession) Reveal(playerIndex int) error {
	if gs.stage != STAGE_DEALING {
		return ErrWrongStage
	}

	if err := gs.seq.Reveal(playerIndex); err != nil {
		return err
	}

	gs.players[playerIndex].HasSeenCard = true

	return nil
}

func (gs *GameSession) BeginAdvanceTransition() error {
	if gs.stage != STAGE_DEALING {
		return ErrWrongStage
	}

	return gs.seq.BeginAdvance()
}

func (gs *GameSession) CompleteAdvanceTransition() error {
	if gs.stage != STAGE_DEALING {
		return ErrWrongStage
	}

	done, err := gs.seq.CompleteAdvance()
	if err != nil {
		return err
	}

	if done {
		gs.enterPlaying()
	}

	return nil
}

// Advance 即 BeginAdvanceTransition + CompleteAdvanceTransition
func (gs *GameSession) Advance() error {
	if gs.stage != STAGE_DEALING {
		return ErrWrongStage
	}

	done, err := gs.seq.Advance()
	if err != nil {
		return err
	}

	if done {
		gs.enterPlaying()
	}

	return nil
}

func (gs *GameSession) enterPlaying() {
	gs.seq = nil
	gs.stage = STAGE_PLAYING

	zap.L().Info("所有玩家已查看卡牌，进入游戏阶段", zap.String("round_id", gs.roundID))
}

// ToggleElimination 切换玩家的出局状态，再次切换即撤销
func (gs *GameSession) ToggleElimination(id int) error {
	if gs.stage != STAGE_PLAYING {
		return ErrWrongStage
	}

	if id < 0 || id >= len(gs.players) {
		return ErrUnknownPlayer
	}

	gs.players[id].IsAlive = !gs.players[id].IsAlive

	return nil
}

// EvaluateWinner 每次调用都根据当前名单重新计算，只在游戏阶段有结果
func (gs *GameSession) EvaluateWinner() *WinnerResult {
	if gs.stage != STAGE_PLAYING {
		return nil
	}

	return gs.labelled(EvaluateRoster(gs.players))
}

// FinalResult 结束阶段冻结的胜负结果，可能为 nil（未分胜负就公开身份）
func (gs *GameSession) FinalResult() *WinnerResult {
	if gs.stage != STAGE_FINISHED || gs.final == nil {
		return nil
	}

	result := *gs.final
	return &result
}

// FinishRound 公开所有人的身份，可以在分出胜负之前调用
func (gs *GameSession) FinishRound() error {
	if gs.stage != STAGE_PLAYING {
		return ErrWrongStage
	}

	gs.final = gs.EvaluateWinner()
	gs.stage = STAGE_FINISHED

	fields := []zap.Field{zap.String("round_id", gs.roundID)}
	if gs.final != nil {
		fields = append(fields, zap.String("winner", string(gs.final.Winner)))
	}

	zap.L().Info("本局结束，公开身份", fields...)

	return nil
}

// ResetRound 清空本局所有状态并回到设置阶段，人数配置保留
func (gs *GameSession) ResetRound() {
	gs.teardown()
	gs.stage = STAGE_SETUP

	zap.L().Info("已重置，回到设置阶段")
}

func (gs *GameSession) teardown() {
	gs.roundID = ""
	gs.pair = nil
	gs.players = nil
	gs.seq = nil
	gs.final = nil
}

func (gs *GameSession) labelled(result *WinnerResult) *WinnerResult {
	if result != nil {
		result.Label = gs.labeler.WinnerBanner(result.Winner)
	}

	return result
}

// EvaluateRoster 胜负规则：
// 内鬼（卧底 + 白板）全部出局则平民胜；存活内鬼数不少于存活平民数则内鬼胜；否则游戏继续。
// 卧底和白板同时存活时不区分具体是哪一方获胜。
func EvaluateRoster(players []Player) *WinnerResult {
	result := WinnerResult{}

	for _, p := range players {
		if !p.IsAlive {
			continue
		}

		result.AliveCount++

		switch p.Role {
		case ROLE_UNDERCOVER:
			result.AliveUndercover++
		case ROLE_MR_WHITE:
			result.AliveMrWhite++
		}
	}

	imposters := result.AliveUndercover + result.AliveMrWhite
	result.AliveCivilians = result.AliveCount - imposters

	switch {
	case imposters == 0:
		result.Winner = WINNER_CIVILIANS
	case imposters >= result.AliveCivilians:
		result.Winner = WINNER_IMPOSTERS
	default:
		return nil
	}

	return &result
}
