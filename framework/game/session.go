package game

import (
	"time"

	"uno/framework/game/share"
)

// Status 对局状态机：waiting -> active -> finished，finished 为终态
type Status string

const (
	StatusWaiting  Status = "waiting"
	StatusActive   Status = "active"
	StatusFinished Status = "finished"
)

const (
	MaxSeats    = 4
	MinSeats    = 2
	InitialHand = 7
	DirForward  = 1
	DirBackward = -1
)

// Seat 一个参与者座位
type Seat struct {
	ConnID       string
	Username     string
	Hand         []Card
	HasCalledUno bool
}

// Session 一个房间的权威对局状态
// 仅允许在调度循环内读写，不加锁
type Session struct {
	RoomCode            string
	Seats               []*Seat // 加入顺序即出牌顺序
	Deck                []Card
	DiscardPile         []Card
	CurrentPlayer       int
	Direction           int
	CurrentColor        Color
	Status              Status
	GameTimeRemainingMs int64
	GameStartedAt       time.Time
}

// NewSession 创建等待中的对局，牌堆已洗好
func NewSession(roomCode string, gameTimeLimitMs int64) *Session {
	return &Session{
		RoomCode:            roomCode,
		Seats:               make([]*Seat, 0, MaxSeats),
		Deck:                NewDeck(),
		DiscardPile:         make([]Card, 0, 108),
		CurrentPlayer:       0,
		Direction:           DirForward,
		Status:              StatusWaiting,
		GameTimeRemainingMs: gameTimeLimitMs,
	}
}

// AddSeat 玩家加入房间
func (s *Session) AddSeat(connID, username string) (*Seat, error) {
	if len(s.Seats) >= MaxSeats {
		return nil, ErrRoomFull
	}
	if s.Status == StatusActive {
		return nil, ErrGameAlreadyStarted
	}

	seat := &Seat{ConnID: connID, Username: username, Hand: []Card{}}
	s.Seats = append(s.Seats, seat)
	return seat, nil
}

// SeatIndexByConn 按连接 ID 查座位索引，不在房间返回 -1
func (s *Session) SeatIndexByConn(connID string) int {
	for i, seat := range s.Seats {
		if seat.ConnID == connID {
			return i
		}
	}
	return -1
}

// RemoveSeatByConn 移除座位，返回被移除的座位
// 注意：不调整 CurrentPlayer，行为与上线版本保持一致，
// 对局中离席可能导致某个座位被跳过或重复行动
func (s *Session) RemoveSeatByConn(connID string) (*Seat, bool) {
	idx := s.SeatIndexByConn(connID)
	if idx < 0 {
		return nil, false
	}
	seat := s.Seats[idx]
	s.Seats = append(s.Seats[:idx], s.Seats[idx+1:]...)
	return seat, true
}

// Start 开局：每座位发 7 张，翻出首张非万能牌作弃牌堆底，指定色随之确定
// 翻到万能牌时将其洗回牌堆重翻，保证 108 张守恒
func (s *Session) Start() (Card, error) {
	if s.Status != StatusWaiting {
		return Card{}, ErrGameAlreadyStarted
	}
	if len(s.Seats) < MinSeats {
		return Card{}, ErrInsufficientPlayers
	}

	for _, seat := range s.Seats {
		seat.Hand = DrawCards(&s.Deck, InitialHand)
	}

	var firstCard Card
	for {
		firstCard = DrawCards(&s.Deck, 1)[0]
		if !firstCard.IsWild() {
			break
		}
		s.Deck = append(s.Deck, firstCard)
		shuffle(s.Deck)
	}

	s.DiscardPile = append(s.DiscardPile, firstCard)
	s.CurrentColor = firstCard.Color
	s.Status = StatusActive
	s.GameStartedAt = time.Now()
	return firstCard, nil
}

// TopCard 弃牌堆顶
func (s *Session) TopCard() Card {
	return s.DiscardPile[len(s.DiscardPile)-1]
}

// CurrentSeat 当前行动座位
func (s *Session) CurrentSeat() *Seat {
	return s.Seats[s.CurrentPlayer]
}

// PlayResult 一次合法出牌的结果
type PlayResult struct {
	Card       Card
	Winner     *Seat  // 非空表示即时获胜，后续效果不再结算
	PenaltyIdx int    // 被罚抽的座位索引，-1 表示无
	DrawnCards []Card // 罚抽到的牌
}

// PlayCard 当前座位出牌
// 校验回合与合法性，结算功能牌效果并推进回合
func (s *Session) PlayCard(seatIdx, cardIndex int, chosenColor Color) (*PlayResult, error) {
	if seatIdx != s.CurrentPlayer {
		return nil, ErrNotYourTurn
	}
	seat := s.Seats[seatIdx]
	if cardIndex < 0 || cardIndex >= len(seat.Hand) {
		return nil, ErrInvalidCard
	}

	card := seat.Hand[cardIndex]
	if !CanPlay(card, s.TopCard(), s.CurrentColor) {
		return nil, ErrInvalidCard
	}

	seat.Hand = append(seat.Hand[:cardIndex], seat.Hand[cardIndex+1:]...)
	s.DiscardPile = append(s.DiscardPile, card)
	s.CurrentColor = colorAfterPlay(card, chosenColor)
	s.touchHand(seat)

	result := &PlayResult{Card: card, PenaltyIdx: -1}

	// 即时获胜覆盖一切待结算效果
	if len(seat.Hand) == 0 {
		s.Status = StatusFinished
		result.Winner = seat
		return result, nil
	}

	effect := resolveEffect(card, len(s.Seats))
	if effect.reverse {
		s.Direction *= -1
	}

	next := nextIndex(s.CurrentPlayer, s.Direction, len(s.Seats))
	if effect.drawCount > 0 {
		penalized := s.Seats[next]
		drawn := s.drawWithReshuffle(effect.drawCount)
		penalized.Hand = append(penalized.Hand, drawn...)
		s.touchHand(penalized)
		result.PenaltyIdx = next
		result.DrawnCards = drawn
	}

	if effect.skipNext {
		s.CurrentPlayer = nextIndex(next, s.Direction, len(s.Seats))
	} else {
		s.CurrentPlayer = next
	}

	return result, nil
}

// DrawOne 当前座位主动摸一张牌，不推进回合
// 返回摸到的牌、是否可立即打出、及其在手牌中的索引
func (s *Session) DrawOne(seatIdx int) (Card, bool, int) {
	seat := s.Seats[seatIdx]
	drawn := s.drawWithReshuffle(1)[0]
	seat.Hand = append(seat.Hand, drawn)
	s.touchHand(seat)

	canPlay := CanPlay(drawn, s.TopCard(), s.CurrentColor)
	return drawn, canPlay, len(seat.Hand) - 1
}

// ForceDraw 回合超时强制摸一张牌
func (s *Session) ForceDraw(seatIdx int) Card {
	seat := s.Seats[seatIdx]
	drawn := s.drawWithReshuffle(1)[0]
	seat.Hand = append(seat.Hand, drawn)
	s.touchHand(seat)
	return drawn
}

// AdvanceTurn 推进一个座位，skip 为真时跳过下家
func (s *Session) AdvanceTurn(skip bool) {
	s.CurrentPlayer = nextIndex(s.CurrentPlayer, s.Direction, len(s.Seats))
	if skip {
		s.CurrentPlayer = nextIndex(s.CurrentPlayer, s.Direction, len(s.Seats))
	}
}

// CallUno 手牌恰好剩一张时报 UNO
func (s *Session) CallUno(seatIdx int) bool {
	seat := s.Seats[seatIdx]
	if len(seat.Hand) != 1 {
		return false
	}
	seat.HasCalledUno = true
	return true
}

// FewestCardsWinner 按最少手牌判定赢家，平手取最先入座者
func (s *Session) FewestCardsWinner() *Seat {
	winner := s.Seats[0]
	for _, seat := range s.Seats[1:] {
		if len(seat.Hand) < len(winner.Hand) {
			winner = seat
		}
	}
	return winner
}

// SeatSummaries 所有座位的对外摘要
func (s *Session) SeatSummaries() []share.SeatSummary {
	summaries := make([]share.SeatSummary, 0, len(s.Seats))
	for _, seat := range s.Seats {
		summaries = append(summaries, share.SeatSummary{
			Username:  seat.Username,
			CardCount: len(seat.Hand),
		})
	}
	return summaries
}

// drawWithReshuffle 保证可抽 n 张，不足时先把弃牌堆洗回
func (s *Session) drawWithReshuffle(n int) []Card {
	if len(s.Deck) < n {
		ReshuffleFromDiscard(&s.Deck, &s.DiscardPile)
	}
	return DrawCards(&s.Deck, n)
}

// touchHand 手牌数量离开 1 时清除 UNO 标记
func (s *Session) touchHand(seat *Seat) {
	if len(seat.Hand) != 1 {
		seat.HasCalledUno = false
	}
}
