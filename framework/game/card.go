package game

import "math/rand/v2"

// Color 卡牌颜色
type Color string

const (
	ColorRed    Color = "red"
	ColorBlue   Color = "blue"
	ColorGreen  Color = "green"
	ColorYellow Color = "yellow"
	ColorBlack  Color = "black"
)

// Kind 卡牌类别
type Kind string

const (
	KindNumber  Kind = "number"
	KindSpecial Kind = "special"
	KindWild    Kind = "wild"
)

const (
	ValueSkip    = "skip"
	ValueReverse = "reverse"
	ValueDraw2   = "draw2"
	ValueWild    = "wild"
	ValueWild4   = "wild4"
)

// Card 一张卡牌，创建后不可变
// 线上协议沿用 type 字段名
type Card struct {
	Color Color  `json:"color" bson:"color"`
	Value string `json:"value" bson:"value"`
	Kind  Kind   `json:"type" bson:"type"`
}

// IsWild 是否为万能牌
func (c Card) IsWild() bool {
	return c.Kind == KindWild
}

// playColors 可作为指定颜色的四色，首位为万能牌未指定时的兜底色
var playColors = [...]Color{ColorRed, ColorBlue, ColorGreen, ColorYellow}

var numberValues = [...]string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9"}
var specialValues = [...]string{ValueSkip, ValueReverse, ValueDraw2}
var wildValues = [...]string{ValueWild, ValueWild4}

// NewDeck 构建一副完整的 108 张牌并洗牌
// 每色：一张 0、1-9 各两张、三种功能牌各两张；黑色万能牌各 4 张
func NewDeck() []Card {
	deck := make([]Card, 0, 108)

	for _, color := range playColors {
		deck = append(deck, Card{Color: color, Value: "0", Kind: KindNumber})
		for _, num := range numberValues[1:] {
			deck = append(deck, Card{Color: color, Value: num, Kind: KindNumber})
			deck = append(deck, Card{Color: color, Value: num, Kind: KindNumber})
		}
		for _, special := range specialValues {
			deck = append(deck, Card{Color: color, Value: special, Kind: KindSpecial})
			deck = append(deck, Card{Color: color, Value: special, Kind: KindSpecial})
		}
	}

	for _, wild := range wildValues {
		for i := 0; i < 4; i++ {
			deck = append(deck, Card{Color: ColorBlack, Value: wild, Kind: KindWild})
		}
	}

	shuffle(deck)
	return deck
}

// shuffle 原地洗牌（Fisher–Yates）
func shuffle(cards []Card) {
	for i := len(cards) - 1; i > 0; i-- {
		j := rand.IntN(i + 1)
		cards[i], cards[j] = cards[j], cards[i]
	}
}

// DrawCards 从牌堆头部抽取 n 张，原地缩短牌堆
// 调用方保证 n 不超过牌堆长度，牌堆可能见底时先 ReshuffleFromDiscard
func DrawCards(deck *[]Card, n int) []Card {
	drawn := make([]Card, n)
	copy(drawn, (*deck)[:n])
	*deck = (*deck)[n:]
	return drawn
}

// ReshuffleFromDiscard 牌堆耗尽时，保留弃牌堆顶，其余洗回牌堆
func ReshuffleFromDiscard(deck *[]Card, discard *[]Card) {
	top := (*discard)[len(*discard)-1]
	rest := make([]Card, len(*discard)-1)
	copy(rest, (*discard)[:len(*discard)-1])
	shuffle(rest)
	*deck = rest
	*discard = []Card{top}
}
