package game

import "testing"

func TestNewDeckComposition(t *testing.T) {
	deck := NewDeck()

	if len(deck) != 108 {
		t.Fatalf("整副牌应为 108 张，实际 %d", len(deck))
	}

	colorCount := make(map[Color]int)
	valueCount := make(map[string]int)
	for _, card := range deck {
		colorCount[card.Color]++
		valueCount[card.Value]++
	}

	// 每色 25 张：19 张数字（0 一张，1-9 各两张）+ 6 张功能牌
	for _, color := range playColors {
		if colorCount[color] != 25 {
			t.Errorf("颜色 %s 应有 25 张，实际 %d", color, colorCount[color])
		}
	}
	if colorCount[ColorBlack] != 8 {
		t.Errorf("黑色万能牌应有 8 张，实际 %d", colorCount[ColorBlack])
	}

	if valueCount["0"] != 4 {
		t.Errorf("0 应有 4 张，实际 %d", valueCount["0"])
	}
	for _, num := range []string{"1", "5", "9"} {
		if valueCount[num] != 8 {
			t.Errorf("%s 应有 8 张，实际 %d", num, valueCount[num])
		}
	}
	for _, special := range []string{ValueSkip, ValueReverse, ValueDraw2} {
		if valueCount[special] != 8 {
			t.Errorf("%s 应有 8 张，实际 %d", special, valueCount[special])
		}
	}
	if valueCount[ValueWild] != 4 || valueCount[ValueWild4] != 4 {
		t.Errorf("wild/wild4 应各 4 张，实际 %d/%d", valueCount[ValueWild], valueCount[ValueWild4])
	}
}

func TestDrawCards(t *testing.T) {
	deck := NewDeck()
	first := deck[0]

	drawn := DrawCards(&deck, 7)

	if len(drawn) != 7 {
		t.Fatalf("应抽到 7 张，实际 %d", len(drawn))
	}
	if len(deck) != 101 {
		t.Fatalf("牌堆应剩 101 张，实际 %d", len(deck))
	}
	if drawn[0] != first {
		t.Errorf("应从牌堆头部抽取")
	}
}

func TestReshuffleFromDiscard(t *testing.T) {
	deck := []Card{}
	discard := []Card{
		{Color: ColorRed, Value: "1", Kind: KindNumber},
		{Color: ColorBlue, Value: "2", Kind: KindNumber},
		{Color: ColorGreen, Value: "3", Kind: KindNumber},
	}
	top := discard[len(discard)-1]

	ReshuffleFromDiscard(&deck, &discard)

	if len(discard) != 1 || discard[0] != top {
		t.Fatalf("弃牌堆应只剩原堆顶 %+v，实际 %+v", top, discard)
	}
	if len(deck) != 2 {
		t.Fatalf("牌堆应有 2 张，实际 %d", len(deck))
	}
	for _, card := range deck {
		if card == top {
			t.Errorf("堆顶不应洗回牌堆")
		}
	}
}
