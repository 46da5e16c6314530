package game

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// 文案的键同时也是英文文案
const (
	msgPlayerName   = "Player %d"
	msgCivilian     = "Civilian"
	msgUndercover   = "Undercover"
	msgMrWhite      = "Mr. White"
	msgCiviliansWin = "Civilians win!"
	msgImpostersWin = "Undercover / Mr. White win!"
)

// 第一个为默认语言
var supportedLocales = []language.Tag{
	language.SimplifiedChinese,
	language.English,
}

func init() {
	zh := language.SimplifiedChinese
	must(message.SetString(zh, msgPlayerName, "玩家 %d"))
	must(message.SetString(zh, msgCivilian, "平民"))
	must(message.SetString(zh, msgUndercover, "卧底"))
	must(message.SetString(zh, msgMrWhite, "白板"))
	must(message.SetString(zh, msgCiviliansWin, "平民胜利！"))
	must(message.SetString(zh, msgImpostersWin, "卧底/白板胜利！"))

	en := language.English
	must(message.SetString(en, msgPlayerName, msgPlayerName))
	must(message.SetString(en, msgCivilian, msgCivilian))
	must(message.SetString(en, msgUndercover, msgUndercover))
	must(message.SetString(en, msgMrWhite, msgMrWhite))
	must(message.SetString(en, msgCiviliansWin, msgCiviliansWin))
	must(message.SetString(en, msgImpostersWin, msgImpostersWin))
}

func must(err error) {
	if err != nil {
		panic("Failed to register message: " + err.Error())
	}
}

// Labeler 负责所有展示给玩家的文案：玩家名、身份名和胜利横幅
type Labeler struct {
	tag     language.Tag
	printer *message.Printer
}

// NewLabeler 按最接近的受支持语言构建，无法匹配时回退到简体中文
func NewLabeler(locale string) (*Labeler, error) {
	tag, err := language.Parse(locale)
	if err != nil {
		return nil, fmt.Errorf("无法解析语言 %q: %w", locale, err)
	}

	_, idx, conf := language.NewMatcher(supportedLocales).Match(tag)
	if conf == language.No {
		idx = 0
	}

	matched := supportedLocales[idx]

	return &Labeler{
		tag:     matched,
		printer: message.NewPrinter(matched),
	}, nil
}

func (l *Labeler) Locale() string {
	return l.tag.String()
}

// PlayerName 玩家编号从 1 开始
func (l *Labeler) PlayerName(id int) string {
	return l.printer.Sprintf(msgPlayerName, id+1)
}

func (l *Labeler) RoleName(role RoleKind) string {
	switch role {
	case ROLE_CIVILIAN:
		return l.printer.Sprintf(msgCivilian)
	case ROLE_UNDERCOVER:
		return l.printer.Sprintf(msgUndercover)
	case ROLE_MR_WHITE:
		return l.printer.Sprintf(msgMrWhite)
	default:
		return string(role)
	}
}

func (l *Labeler) WinnerBanner(winner Winner) string {
	switch winner {
	case WINNER_CIVILIANS:
		return l.printer.Sprintf(msgCiviliansWin)
	case WINNER_IMPOSTERS:
		return l.printer.Sprintf(msgImpostersWin)
	default:
		return string(winner)
	}
}
