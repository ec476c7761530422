package game

import "errors"

// 对局内协议错误，调度器转换为 error/room-full 等事件下发
var (
	ErrRoomFull            = errors.New("room is full")
	ErrGameAlreadyStarted  = errors.New("game already started")
	ErrInsufficientPlayers = errors.New("need at least 2 players")
	ErrNotYourTurn         = errors.New("not your turn")
	ErrInvalidCard         = errors.New("invalid card")
)
