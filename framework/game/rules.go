package game

// CanPlay 判断一张牌是否可以压在当前弃牌堆顶
// 合法条件：万能牌、颜色匹配当前指定色、或点数与堆顶相同（跨色同点）
func CanPlay(card Card, topCard Card, currentColor Color) bool {
	if card.IsWild() {
		return true
	}
	if card.Color == currentColor {
		return true
	}
	if card.Value == topCard.Value {
		return true
	}
	return false
}

// cardEffect 一次合法出牌的副作用
type cardEffect struct {
	skipNext  bool // 下家被跳过
	drawCount int  // 下家罚抽张数
	reverse   bool // 方向反转
}

// resolveEffect 解析功能牌效果
// 两人局中 reverse 等价于 skip
func resolveEffect(card Card, seatCount int) cardEffect {
	var effect cardEffect
	switch card.Value {
	case ValueSkip:
		effect.skipNext = true
	case ValueReverse:
		effect.reverse = true
		if seatCount == 2 {
			effect.skipNext = true
		}
	case ValueDraw2:
		effect.drawCount = 2
		effect.skipNext = true
	case ValueWild4:
		effect.drawCount = 4
		effect.skipNext = true
	}
	return effect
}

// nextIndex 按方向计算下一个座位索引
func nextIndex(current, direction, seatCount int) int {
	return (current + direction + seatCount) % seatCount
}

// colorAfterPlay 出牌后的指定色
// 万能牌用玩家指定色，未指定时兜底为首位颜色；其余用牌面色
func colorAfterPlay(card Card, chosenColor Color) Color {
	if !card.IsWild() {
		return card.Color
	}
	for _, c := range playColors {
		if chosenColor == c {
			return c
		}
	}
	return playColors[0]
}
