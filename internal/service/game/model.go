package game

// 玩家身份
type RoleKind string

const (
	ROLE_CIVILIAN   RoleKind = "Civilian"
	ROLE_UNDERCOVER RoleKind = "Undercover"
	ROLE_MR_WHITE   RoleKind = "MrWhite"
)

// 白板看到的占位词，永远不会是词库中的真实词语
const MR_WHITE_WORD = "???"

// IsImposter 卧底和白板合称为"内鬼"，只在胜负判定中使用
func (r RoleKind) IsImposter() bool {
	return r == ROLE_UNDERCOVER || r == ROLE_MR_WHITE
}

type WordPair struct {
	Civilian   string `json:"civilian" mapstructure:"civilian"`
	Undercover string `json:"undercover" mapstructure:"undercover"`
}

// 一局内的玩家，ID 即在名单中的下标，创建后不会增删或重排
type Player struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Role        RoleKind `json:"role,omitempty"`
	Word        string   `json:"word,omitempty"`
	IsAlive     bool     `json:"is_alive"`
	HasSeenCard bool     `json:"has_seen_card"`
}

// 胜负结果
type Winner string

const (
	WINNER_CIVILIANS Winner = "CiviliansWin"
	WINNER_IMPOSTERS Winner = "ImpostersWin"
)

type WinnerResult struct {
	Winner Winner `json:"winner"`
	Label  string `json:"label"`

	AliveCount      int `json:"alive_count"`
	AliveCivilians  int `json:"alive_civilians"`
	AliveUndercover int `json:"alive_undercover"`
	AliveMrWhite    int `json:"alive_mr_white"`
}
