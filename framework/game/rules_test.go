package game

import "testing"

func TestCanPlay(t *testing.T) {
	top := Card{Color: ColorRed, Value: "5", Kind: KindNumber}

	tests := []struct {
		name         string
		card         Card
		currentColor Color
		want         bool
	}{
		{"万能牌随时可出", Card{Color: ColorBlack, Value: ValueWild, Kind: KindWild}, ColorRed, true},
		{"wild4 随时可出", Card{Color: ColorBlack, Value: ValueWild4, Kind: KindWild}, ColorBlue, true},
		{"颜色匹配指定色", Card{Color: ColorRed, Value: "9", Kind: KindNumber}, ColorRed, true},
		{"跨色同点", Card{Color: ColorGreen, Value: "5", Kind: KindNumber}, ColorRed, true},
		{"颜色点数均不符", Card{Color: ColorGreen, Value: "7", Kind: KindNumber}, ColorRed, false},
		{"指定色改变后按指定色判定", Card{Color: ColorBlue, Value: "3", Kind: KindNumber}, ColorBlue, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanPlay(tt.card, top, tt.currentColor); got != tt.want {
				t.Errorf("CanPlay(%+v) = %v, want %v", tt.card, got, tt.want)
			}
		})
	}
}

func TestResolveEffect(t *testing.T) {
	tests := []struct {
		name      string
		card      Card
		seatCount int
		want      cardEffect
	}{
		{"数字牌无效果", Card{Color: ColorRed, Value: "5", Kind: KindNumber}, 3, cardEffect{}},
		{"skip 跳过下家", Card{Color: ColorRed, Value: ValueSkip, Kind: KindSpecial}, 3, cardEffect{skipNext: true}},
		{"reverse 三人反向", Card{Color: ColorRed, Value: ValueReverse, Kind: KindSpecial}, 3, cardEffect{reverse: true}},
		{"reverse 两人等价跳过", Card{Color: ColorRed, Value: ValueReverse, Kind: KindSpecial}, 2, cardEffect{reverse: true, skipNext: true}},
		{"draw2 罚两张并跳过", Card{Color: ColorRed, Value: ValueDraw2, Kind: KindSpecial}, 3, cardEffect{drawCount: 2, skipNext: true}},
		{"wild4 罚四张并跳过", Card{Color: ColorBlack, Value: ValueWild4, Kind: KindWild}, 3, cardEffect{drawCount: 4, skipNext: true}},
		{"wild 无附带效果", Card{Color: ColorBlack, Value: ValueWild, Kind: KindWild}, 3, cardEffect{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := resolveEffect(tt.card, tt.seatCount); got != tt.want {
				t.Errorf("resolveEffect = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestNextIndex(t *testing.T) {
	tests := []struct {
		current, direction, seatCount, want int
	}{
		{0, DirForward, 3, 1},
		{2, DirForward, 3, 0},
		{0, DirBackward, 3, 2},
		{1, DirBackward, 3, 0},
		{1, DirForward, 2, 0},
	}

	for _, tt := range tests {
		if got := nextIndex(tt.current, tt.direction, tt.seatCount); got != tt.want {
			t.Errorf("nextIndex(%d, %d, %d) = %d, want %d",
				tt.current, tt.direction, tt.seatCount, got, tt.want)
		}
	}
}

func TestColorAfterPlay(t *testing.T) {
	wild := Card{Color: ColorBlack, Value: ValueWild, Kind: KindWild}

	if got := colorAfterPlay(wild, ColorBlue); got != ColorBlue {
		t.Errorf("万能牌应采用玩家指定色，got %s", got)
	}
	if got := colorAfterPlay(wild, ""); got != ColorRed {
		t.Errorf("未指定色应兜底为红色，got %s", got)
	}
	if got := colorAfterPlay(wild, ColorBlack); got != ColorRed {
		t.Errorf("非法指定色应兜底为红色，got %s", got)
	}

	number := Card{Color: ColorGreen, Value: "4", Kind: KindNumber}
	if got := colorAfterPlay(number, ColorBlue); got != ColorGreen {
		t.Errorf("普通牌应采用牌面色，got %s", got)
	}
}
