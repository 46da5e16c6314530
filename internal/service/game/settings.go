package game

// 人数配置的取值范围
const (
	MIN_PLAYERS    = 3
	MAX_PLAYERS    = 20
	MIN_UNDERCOVER = 1
	MIN_MR_WHITE   = 0
	MAX_MR_WHITE   = 1
)

type Settings struct {
	PlayerCount     int `json:"player_count" mapstructure:"player_count"`
	UndercoverCount int `json:"undercover_count" mapstructure:"undercover_count"`
	MrWhiteCount    int `json:"mr_white_count" mapstructure:"mr_white_count"`
}

func DefaultSettings() Settings {
	return Settings{
		PlayerCount:     5,
		UndercoverCount: 1,
		MrWhiteCount:    0,
	}
}

// MaxUndercover 卧底人数上限为总人数的一半（向下取整）
func MaxUndercover(playerCount int) int {
	return playerCount / 2
}

func (s Settings) CivilianCount() int {
	return s.PlayerCount - s.UndercoverCount - s.MrWhiteCount
}

// Clamp 把每个字段夹到合法区间内。
// 在 playerCount >= 3 时，floor(n/2) + 1 < n 恒成立，所以夹完之后至少有一个平民。
func (s Settings) Clamp() Settings {
	s.PlayerCount = clamp(s.PlayerCount, MIN_PLAYERS, MAX_PLAYERS)
	s.UndercoverCount = clamp(s.UndercoverCount, MIN_UNDERCOVER, MaxUndercover(s.PlayerCount))
	s.MrWhiteCount = clamp(s.MrWhiteCount, MIN_MR_WHITE, MAX_MR_WHITE)

	return s
}

func (s Settings) WithPlayerCount(n int) Settings {
	s.PlayerCount = n
	return s.Clamp()
}

func (s Settings) IncUndercover() Settings {
	s.UndercoverCount++
	return s.Clamp()
}

func (s Settings) DecUndercover() Settings {
	s.UndercoverCount--
	return s.Clamp()
}

func (s Settings) IncMrWhite() Settings {
	s.MrWhiteCount++
	return s.Clamp()
}

func (s Settings) DecMrWhite() Settings {
	s.MrWhiteCount--
	return s.Clamp()
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
