package game

import (
	"errors"
	"fmt"
	"math/rand/v2"
)

// 内置词库，每一对都是相近但不相同的两个词
var DefaultWordPairs = []WordPair{
	{Civilian: "牛奶", Undercover: "豆浆"},
	{Civilian: "饺子", Undercover: "包子"},
	{Civilian: "眼镜", Undercover: "墨镜"},
	{Civilian: "蝴蝶", Undercover: "蜜蜂"},
	{Civilian: "火锅", Undercover: "麻辣烫"},
	{Civilian: "警察", Undercover: "保安"},
	{Civilian: "太阳", Undercover: "月亮"},
	{Civilian: "口红", Undercover: "唇膏"},
	{Civilian: "蛋糕", Undercover: "面包"},
	{Civilian: "手机", Undercover: "平板"},
	{Civilian: "橙子", Undercover: "橘子"},
	{Civilian: "地铁", Undercover: "公交"},
	{Civilian: "老虎", Undercover: "狮子"},
	{Civilian: "吉他", Undercover: "尤克里里"},
	{Civilian: "洗发水", Undercover: "护发素"},
	{Civilian: "微信", Undercover: "QQ"},
	{Civilian: "班主任", Undercover: "校长"},
	{Civilian: "情人节", Undercover: "七夕"},
	{Civilian: "可乐", Undercover: "雪碧"},
	{Civilian: "枕头", Undercover: "抱枕"},
	{Civilian: "油条", Undercover: "麻花"},
	{Civilian: "魔术师", Undercover: "杂技演员"},
	{Civilian: "保温杯", Undercover: "水杯"},
	{Civilian: "婚纱", Undercover: "礼服"},
	{Civilian: "近视", Undercover: "散光"},
	{Civilian: "玫瑰", Undercover: "月季"},
	{Civilian: "汉堡", Undercover: "三明治"},
	{Civilian: "篮球", Undercover: "排球"},
	{Civilian: "自行车", Undercover: "电动车"},
	{Civilian: "孙悟空", Undercover: "猪八戒"},
	{Civilian: "作家", Undercover: "编剧"},
	{Civilian: "冰箱", Undercover: "冰柜"},
	{Civilian: "牙刷", Undercover: "牙膏"},
	{Civilian: "高铁", Undercover: "动车"},
	{Civilian: "鼠标", Undercover: "键盘"},
	{Civilian: "饼干", Undercover: "薯片"},
	{Civilian: "围巾", Undercover: "披肩"},
	{Civilian: "散步", Undercover: "跑步"},
	{Civilian: "剪刀", Undercover: "指甲刀"},
	{Civilian: "辣椒", Undercover: "芥末"},
}

type WordBank struct {
	pairs []WordPair
	rng   *rand.Rand
}

// NewWordBank 校验词库后构建，校验失败说明词库配置有误
func NewWordBank(pairs []WordPair, rng *rand.Rand) (*WordBank, error) {
	if len(pairs) == 0 {
		return nil, errors.New("词库不能为空")
	}

	for i, p := range pairs {
		if p.Civilian == "" || p.Undercover == "" {
			return nil, fmt.Errorf("第 %d 组词语：平民词和卧底词不能为空", i+1)
		}

		if p.Civilian == p.Undercover {
			return nil, fmt.Errorf("第 %d 组词语：平民词和卧底词不能相同", i+1)
		}

		if p.Civilian == MR_WHITE_WORD || p.Undercover == MR_WHITE_WORD {
			return nil, fmt.Errorf("第 %d 组词语：不能使用白板占位词 %q", i+1, MR_WHITE_WORD)
		}
	}

	return &WordBank{
		pairs: append([]WordPair(nil), pairs...),
		rng:   rng,
	}, nil
}

func (wb *WordBank) Len() int {
	return len(wb.pairs)
}

func (wb *WordBank) PickRandomPair() WordPair {
	return wb.pairs[wb.rng.IntN(len(wb.pairs))]
}
