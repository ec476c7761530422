package game

import (
	"fmt"
	"testing"
)

// activeSession 构造已开局的测试对局：弃牌堆顶为红 5，指定色红
func activeSession(hands ...[]Card) *Session {
	s := NewSession("room-test", 150000)
	for i, hand := range hands {
		s.Seats = append(s.Seats, &Seat{
			ConnID:   fmt.Sprintf("conn-%d", i),
			Username: fmt.Sprintf("player-%d", i),
			Hand:     hand,
		})
	}
	s.Status = StatusActive
	s.DiscardPile = []Card{{Color: ColorRed, Value: "5", Kind: KindNumber}}
	s.CurrentColor = ColorRed
	return s
}

// totalCards 牌堆 + 弃牌堆 + 所有手牌
func totalCards(s *Session) int {
	total := len(s.Deck) + len(s.DiscardPile)
	for _, seat := range s.Seats {
		total += len(seat.Hand)
	}
	return total
}

func TestStartDealsHands(t *testing.T) {
	s := NewSession("room-1", 150000)
	s.AddSeat("c1", "alice")
	s.AddSeat("c2", "bob")

	firstCard, err := s.Start()
	if err != nil {
		t.Fatalf("开局失败: %v", err)
	}

	for i, seat := range s.Seats {
		if len(seat.Hand) != InitialHand {
			t.Errorf("座位 %d 应有 %d 张手牌，实际 %d", i, InitialHand, len(seat.Hand))
		}
	}
	// 108 - 2*7 - 1 = 93
	if len(s.Deck) != 93 {
		t.Errorf("两人开局后牌堆应剩 93 张，实际 %d", len(s.Deck))
	}
	if len(s.DiscardPile) != 1 || s.DiscardPile[0] != firstCard {
		t.Errorf("弃牌堆应只有首牌")
	}
	if firstCard.IsWild() {
		t.Errorf("首牌不应为万能牌")
	}
	if s.CurrentColor != firstCard.Color {
		t.Errorf("指定色应为首牌颜色 %s，实际 %s", firstCard.Color, s.CurrentColor)
	}
	if s.Status != StatusActive {
		t.Errorf("开局后状态应为 active，实际 %s", s.Status)
	}
	if totalCards(s) != 108 {
		t.Errorf("牌总数应守恒为 108，实际 %d", totalCards(s))
	}
}

func TestStartRequiresTwoSeats(t *testing.T) {
	s := NewSession("room-1", 150000)
	s.AddSeat("c1", "alice")

	if _, err := s.Start(); err != ErrInsufficientPlayers {
		t.Fatalf("单人开局应返回 ErrInsufficientPlayers，实际 %v", err)
	}
}

func TestStartTwiceRejected(t *testing.T) {
	s := NewSession("room-1", 150000)
	s.AddSeat("c1", "alice")
	s.AddSeat("c2", "bob")
	if _, err := s.Start(); err != nil {
		t.Fatalf("开局失败: %v", err)
	}

	if _, err := s.Start(); err != ErrGameAlreadyStarted {
		t.Fatalf("重复开局应返回 ErrGameAlreadyStarted，实际 %v", err)
	}
}

func TestStartReshufflesWildFirstCard(t *testing.T) {
	s := NewSession("room-1", 150000)
	s.AddSeat("c1", "alice")
	s.AddSeat("c2", "bob")

	// 定制 16 张牌堆：前 14 张发给两人，翻牌时万能牌在堆顶
	deck := make([]Card, 0, 16)
	for i := 0; i < 14; i++ {
		deck = append(deck, Card{Color: ColorRed, Value: "1", Kind: KindNumber})
	}
	deck = append(deck, Card{Color: ColorBlack, Value: ValueWild, Kind: KindWild})
	deck = append(deck, Card{Color: ColorBlue, Value: "2", Kind: KindNumber})
	s.Deck = deck

	firstCard, err := s.Start()
	if err != nil {
		t.Fatalf("开局失败: %v", err)
	}
	if firstCard.IsWild() {
		t.Fatalf("翻到万能牌应重翻，首牌 %+v", firstCard)
	}
	// 万能牌洗回牌堆而不是丢弃
	if totalCards(s) != 16 {
		t.Errorf("牌总数应守恒为 16，实际 %d", totalCards(s))
	}
}

func TestAddSeatRoomFull(t *testing.T) {
	s := NewSession("room-1", 150000)
	for i := 0; i < MaxSeats; i++ {
		if _, err := s.AddSeat(fmt.Sprintf("c%d", i), fmt.Sprintf("p%d", i)); err != nil {
			t.Fatalf("第 %d 人加入失败: %v", i+1, err)
		}
	}

	if _, err := s.AddSeat("c5", "p5"); err != ErrRoomFull {
		t.Fatalf("第 5 人应返回 ErrRoomFull，实际 %v", err)
	}
}

func TestAddSeatAfterStart(t *testing.T) {
	s := NewSession("room-1", 150000)
	s.AddSeat("c1", "alice")
	s.AddSeat("c2", "bob")
	s.Start()

	if _, err := s.AddSeat("c3", "carol"); err != ErrGameAlreadyStarted {
		t.Fatalf("开局后加入应返回 ErrGameAlreadyStarted，实际 %v", err)
	}
}

func TestPlayCardNotYourTurn(t *testing.T) {
	s := activeSession(
		[]Card{{Color: ColorRed, Value: "3", Kind: KindNumber}},
		[]Card{{Color: ColorRed, Value: "7", Kind: KindNumber}},
	)

	if _, err := s.PlayCard(1, 0, ""); err != ErrNotYourTurn {
		t.Fatalf("非当前座位出牌应返回 ErrNotYourTurn，实际 %v", err)
	}
}

func TestPlayCardInvalidIndex(t *testing.T) {
	s := activeSession(
		[]Card{{Color: ColorRed, Value: "3", Kind: KindNumber}},
		[]Card{{Color: ColorRed, Value: "7", Kind: KindNumber}},
	)

	if _, err := s.PlayCard(0, 5, ""); err != ErrInvalidCard {
		t.Fatalf("索引越界应返回 ErrInvalidCard，实际 %v", err)
	}
	if _, err := s.PlayCard(0, -1, ""); err != ErrInvalidCard {
		t.Fatalf("负索引应返回 ErrInvalidCard，实际 %v", err)
	}
}

func TestPlayCardIllegal(t *testing.T) {
	s := activeSession(
		[]Card{{Color: ColorGreen, Value: "7", Kind: KindNumber}, {Color: ColorRed, Value: "3", Kind: KindNumber}},
		[]Card{{Color: ColorRed, Value: "7", Kind: KindNumber}},
	)

	// 绿 7 与堆顶红 5 颜色点数均不符
	if _, err := s.PlayCard(0, 0, ""); err != ErrInvalidCard {
		t.Fatalf("非法牌应返回 ErrInvalidCard，实际 %v", err)
	}
	if len(s.Seats[0].Hand) != 2 {
		t.Errorf("非法出牌不应改动手牌")
	}
}

func TestPlaySkipThreeSeats(t *testing.T) {
	s := activeSession(
		[]Card{{Color: ColorRed, Value: ValueSkip, Kind: KindSpecial}, {Color: ColorRed, Value: "1", Kind: KindNumber}},
		[]Card{{Color: ColorRed, Value: "7", Kind: KindNumber}},
		[]Card{{Color: ColorBlue, Value: "2", Kind: KindNumber}},
	)

	result, err := s.PlayCard(0, 0, "")
	if err != nil {
		t.Fatalf("出牌失败: %v", err)
	}
	if result.Winner != nil {
		t.Fatalf("不应即时获胜")
	}
	if s.CurrentPlayer != 2 {
		t.Errorf("三人局座位 0 出 skip 后应轮到座位 2，实际 %d", s.CurrentPlayer)
	}
}

func TestPlayReverseTwoSeats(t *testing.T) {
	s := activeSession(
		[]Card{{Color: ColorRed, Value: ValueReverse, Kind: KindSpecial}, {Color: ColorRed, Value: "1", Kind: KindNumber}},
		[]Card{{Color: ColorRed, Value: "7", Kind: KindNumber}},
	)

	if _, err := s.PlayCard(0, 0, ""); err != nil {
		t.Fatalf("出牌失败: %v", err)
	}
	if s.Direction != DirBackward {
		t.Errorf("方向应反转为 -1，实际 %d", s.Direction)
	}
	// 两人局 reverse 等价 skip，仍轮到出牌者
	if s.CurrentPlayer != 0 {
		t.Errorf("两人局出 reverse 后应仍轮到座位 0，实际 %d", s.CurrentPlayer)
	}
}

func TestPlayReverseThreeSeats(t *testing.T) {
	s := activeSession(
		[]Card{{Color: ColorRed, Value: ValueReverse, Kind: KindSpecial}, {Color: ColorRed, Value: "1", Kind: KindNumber}},
		[]Card{{Color: ColorRed, Value: "7", Kind: KindNumber}},
		[]Card{{Color: ColorBlue, Value: "2", Kind: KindNumber}},
	)

	if _, err := s.PlayCard(0, 0, ""); err != nil {
		t.Fatalf("出牌失败: %v", err)
	}
	if s.Direction != DirBackward {
		t.Errorf("方向应反转为 -1，实际 %d", s.Direction)
	}
	if s.CurrentPlayer != 2 {
		t.Errorf("三人局反向后应轮到座位 2，实际 %d", s.CurrentPlayer)
	}
}

func TestPlayDraw2Penalty(t *testing.T) {
	s := activeSession(
		[]Card{{Color: ColorRed, Value: ValueDraw2, Kind: KindSpecial}, {Color: ColorRed, Value: "1", Kind: KindNumber}},
		[]Card{{Color: ColorRed, Value: "7", Kind: KindNumber}},
		[]Card{{Color: ColorBlue, Value: "2", Kind: KindNumber}},
	)
	before := totalCards(s)

	result, err := s.PlayCard(0, 0, "")
	if err != nil {
		t.Fatalf("出牌失败: %v", err)
	}
	if result.PenaltyIdx != 1 {
		t.Errorf("被罚座位应为 1，实际 %d", result.PenaltyIdx)
	}
	if len(result.DrawnCards) != 2 {
		t.Errorf("应罚抽 2 张，实际 %d", len(result.DrawnCards))
	}
	if len(s.Seats[1].Hand) != 3 {
		t.Errorf("座位 1 手牌应为 3 张，实际 %d", len(s.Seats[1].Hand))
	}
	if s.CurrentPlayer != 2 {
		t.Errorf("罚抽后应跳过座位 1 轮到座位 2，实际 %d", s.CurrentPlayer)
	}
	if totalCards(s) != before {
		t.Errorf("牌总数应守恒，出牌前 %d，出牌后 %d", before, totalCards(s))
	}
}

func TestPlayWild4(t *testing.T) {
	s := activeSession(
		[]Card{{Color: ColorBlack, Value: ValueWild4, Kind: KindWild}, {Color: ColorRed, Value: "1", Kind: KindNumber}},
		[]Card{{Color: ColorRed, Value: "7", Kind: KindNumber}},
		[]Card{{Color: ColorBlue, Value: "2", Kind: KindNumber}},
	)

	result, err := s.PlayCard(0, 0, ColorGreen)
	if err != nil {
		t.Fatalf("出牌失败: %v", err)
	}
	if s.CurrentColor != ColorGreen {
		t.Errorf("指定色应为绿色，实际 %s", s.CurrentColor)
	}
	if len(result.DrawnCards) != 4 {
		t.Errorf("应罚抽 4 张，实际 %d", len(result.DrawnCards))
	}
	if s.CurrentPlayer != 2 {
		t.Errorf("罚抽后应跳过座位 1，实际轮到 %d", s.CurrentPlayer)
	}
}

func TestInstantWinOverridesEffect(t *testing.T) {
	s := activeSession(
		[]Card{{Color: ColorRed, Value: ValueDraw2, Kind: KindSpecial}},
		[]Card{{Color: ColorRed, Value: "7", Kind: KindNumber}},
	)

	result, err := s.PlayCard(0, 0, "")
	if err != nil {
		t.Fatalf("出牌失败: %v", err)
	}
	if result.Winner == nil || result.Winner.Username != "player-0" {
		t.Fatalf("打出最后一张即时获胜，实际 %+v", result.Winner)
	}
	if s.Status != StatusFinished {
		t.Errorf("获胜后状态应为 finished，实际 %s", s.Status)
	}
	// 即时获胜不结算罚抽
	if result.PenaltyIdx != -1 || len(s.Seats[1].Hand) != 1 {
		t.Errorf("即时获胜不应结算功能牌效果")
	}
}

func TestDrawOneReportsPlayability(t *testing.T) {
	s := activeSession(
		[]Card{{Color: ColorRed, Value: "3", Kind: KindNumber}},
		[]Card{{Color: ColorRed, Value: "7", Kind: KindNumber}},
	)
	s.Deck = []Card{{Color: ColorRed, Value: "9", Kind: KindNumber}, {Color: ColorGreen, Value: "1", Kind: KindNumber}}

	drawn, canPlay, idx := s.DrawOne(0)
	if drawn.Value != "9" || !canPlay {
		t.Errorf("摸到红 9 应可打出，实际 %+v canPlay=%v", drawn, canPlay)
	}
	if idx != 1 {
		t.Errorf("新牌应在手牌末尾索引 1，实际 %d", idx)
	}

	s.CurrentPlayer = 1
	drawn, canPlay, _ = s.DrawOne(1)
	if drawn.Value != "1" || canPlay {
		t.Errorf("摸到绿 1 不应可打出，实际 %+v canPlay=%v", drawn, canPlay)
	}
}

func TestUnoFlagLifecycle(t *testing.T) {
	s := activeSession(
		[]Card{{Color: ColorRed, Value: "3", Kind: KindNumber}, {Color: ColorRed, Value: "4", Kind: KindNumber}},
		[]Card{{Color: ColorRed, Value: "7", Kind: KindNumber}},
	)

	if s.CallUno(0) {
		t.Errorf("手牌两张不应允许报 UNO")
	}

	if !s.CallUno(1) {
		t.Errorf("手牌一张应允许报 UNO")
	}
	if !s.Seats[1].HasCalledUno {
		t.Errorf("报 UNO 后标记应置位")
	}

	// 摸牌后手牌离开 1 张，标记清除
	s.ForceDraw(1)
	if s.Seats[1].HasCalledUno {
		t.Errorf("手牌变为 2 张后 UNO 标记应清除")
	}
}

func TestFewestCardsWinnerTieBreak(t *testing.T) {
	s := activeSession(
		make([]Card, 3),
		make([]Card, 1),
		make([]Card, 1),
	)

	winner := s.FewestCardsWinner()
	if winner != s.Seats[1] {
		t.Fatalf("手牌 [3,1,1] 平手应取最先入座者座位 1，实际 %s", winner.Username)
	}
}

// 离席不调整 CurrentPlayer，与上线版本保持一致
func TestRemoveSeatKeepsTurnPointer(t *testing.T) {
	s := activeSession(
		[]Card{{Color: ColorRed, Value: "3", Kind: KindNumber}},
		[]Card{{Color: ColorRed, Value: "7", Kind: KindNumber}},
		[]Card{{Color: ColorBlue, Value: "2", Kind: KindNumber}},
	)
	s.CurrentPlayer = 2

	seat, ok := s.RemoveSeatByConn("conn-0")
	if !ok || seat.Username != "player-0" {
		t.Fatalf("应移除座位 0")
	}
	if s.CurrentPlayer != 2 {
		t.Fatalf("移除座位不应调整 CurrentPlayer，实际 %d", s.CurrentPlayer)
	}

	// 指针暂时越界，但取模推进后回到合法范围
	s.AdvanceTurn(false)
	if s.CurrentPlayer < 0 || s.CurrentPlayer >= len(s.Seats) {
		t.Errorf("推进后指针应回到合法范围，实际 %d", s.CurrentPlayer)
	}
}

func TestDrawWithReshuffleWhenDeckLow(t *testing.T) {
	s := activeSession(
		[]Card{{Color: ColorRed, Value: "3", Kind: KindNumber}},
		[]Card{{Color: ColorRed, Value: "7", Kind: KindNumber}},
	)
	s.Deck = []Card{{Color: ColorGreen, Value: "1", Kind: KindNumber}}
	s.DiscardPile = []Card{
		{Color: ColorBlue, Value: "2", Kind: KindNumber},
		{Color: ColorYellow, Value: "8", Kind: KindNumber},
		{Color: ColorRed, Value: "5", Kind: KindNumber},
	}
	before := totalCards(s)

	drawn := s.drawWithReshuffle(2)
	if len(drawn) != 2 {
		t.Fatalf("应抽到 2 张，实际 %d", len(drawn))
	}
	if len(s.DiscardPile) != 1 || s.DiscardPile[0].Value != "5" {
		t.Errorf("洗回后弃牌堆应只剩原堆顶红 5，实际 %+v", s.DiscardPile)
	}
	if totalCards(s)+len(drawn) != before {
		t.Errorf("牌总数应守恒")
	}
}

// 随机走若干步，牌总数任何时刻都守恒
func TestCardConservationRandomPlayout(t *testing.T) {
	s := NewSession("room-1", 150000)
	s.AddSeat("c1", "alice")
	s.AddSeat("c2", "bob")
	s.AddSeat("c3", "carol")
	if _, err := s.Start(); err != nil {
		t.Fatalf("开局失败: %v", err)
	}

	for step := 0; step < 200 && s.Status == StatusActive; step++ {
		seat := s.Seats[s.CurrentPlayer]
		played := false
		for i, card := range seat.Hand {
			if CanPlay(card, s.TopCard(), s.CurrentColor) {
				if _, err := s.PlayCard(s.CurrentPlayer, i, ColorRed); err != nil {
					t.Fatalf("第 %d 步出牌失败: %v", step, err)
				}
				played = true
				break
			}
		}
		if !played {
			s.DrawOne(s.CurrentPlayer)
			s.AdvanceTurn(false)
		}

		if totalCards(s) != 108 {
			t.Fatalf("第 %d 步后牌总数为 %d，应守恒 108", step, totalCards(s))
		}
	}
}
