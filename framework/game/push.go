package game

import "uno/framework/game/share"

// 携带卡牌的下行载荷，字段名与线上协议一致

type GameStartedPayload struct {
	Hand           []Card              `json:"hand"`
	TopCard        Card                `json:"topCard"`
	CurrentColor   Color               `json:"currentColor"`
	CurrentPlayer  int                 `json:"currentPlayer"`
	Players        []share.SeatSummary `json:"players"`
	GameTimeLimit  int64               `json:"gameTimeLimit"`
	NormalTurnTime int64               `json:"normalTurnTime"`
	FastTurnTime   int64               `json:"fastTurnTime"`
}

type CardPlayedPayload struct {
	PlayedCard   Card                `json:"playedCard"`
	CurrentColor Color               `json:"currentColor"`
	Players      []share.SeatSummary `json:"players"`
}

type HandUpdatePayload struct {
	Hand []Card `json:"hand"`
}

type CardsDrawnPayload struct {
	Cards []Card `json:"cards"`
	Count int    `json:"count"`
}

type CardDrawnWithOptionsPayload struct {
	Card           Card `json:"card"`
	CanPlay        bool `json:"canPlay"`
	DrawnCardIndex int  `json:"drawnCardIndex"`
}

type AutoDrawTimeoutPayload struct {
	Card Card `json:"card"`
}
