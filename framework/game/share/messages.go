package share

import "encoding/json"

// 客户端上行事件
const (
	EventJoinRoom      = "join-room"
	EventStartGame     = "start-game"
	EventPlayCard      = "play-card"
	EventDrawCard      = "draw-card"
	EventKeepDrawnCard = "keep-drawn-card"
	EventCallUno       = "call-uno"
	EventDisconnect    = "disconnect" // 连接层合成，不来自客户端
)

// 服务端下行事件
const (
	EventRoomFull             = "room-full"
	EventGameAlreadyStarted   = "game-already-started"
	EventPlayerJoined         = "player-joined"
	EventJoinedSuccessfully   = "joined-successfully"
	EventGameStarted          = "game-started"
	EventTurnChange           = "turn-change"
	EventCardPlayed           = "card-played"
	EventHandUpdate           = "hand-update"
	EventCardsDrawn           = "cards-drawn"
	EventCardDrawnWithOptions = "card-drawn-with-options"
	EventPlayersUpdate        = "players-update"
	EventUnoCalled            = "uno-called"
	EventGameTimeUpdate       = "game-time-update"
	EventTurnTimerStart       = "turn-timer-start"
	EventTurnTimeUpdate       = "turn-time-update"
	EventAutoDrawTimeout      = "auto-draw-timeout"
	EventPlayerTimeout        = "player-timeout"
	EventGameOver             = "game-over"
	EventPlayerLeft           = "player-left"
	EventError                = "error"
)

// Envelope 下行消息封包
type Envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data,omitempty"`
}

// InboundFrame 上行消息封包，data 延迟解析
type InboundFrame struct {
	Event string          `json:"event"`
	Data  json.RawMessage `json:"data,omitempty"`
}

// ClientEvent 连接层投递给调度循环的事件
type ClientEvent struct {
	ConnID string
	Event  string
	Data   json.RawMessage
}

// Client 一条可下发消息的客户端连接
type Client interface {
	ID() string
	Emit(event string, data any) error
}

// ClientHub 按连接 ID 查找客户端
type ClientHub interface {
	Client(connID string) (Client, bool)
}

// 上行事件载荷

type JoinRoomReq struct {
	RoomCode string `json:"roomCode"`
	Username string `json:"username"`
}

type RoomReq struct {
	RoomCode string `json:"roomCode"`
}

type PlayCardReq struct {
	RoomCode    string `json:"roomCode"`
	CardIndex   int    `json:"cardIndex"`
	ChosenColor string `json:"chosenColor,omitempty"`
}

// 下行事件载荷

// SeatSummary 对外可见的座位摘要（不暴露手牌）
type SeatSummary struct {
	Username  string `json:"username"`
	CardCount int    `json:"cardCount"`
}

type PlayerJoinedPayload struct {
	Players    []SeatSummary `json:"players"`
	GameStatus string        `json:"gameStatus"`
}

type JoinedSuccessfullyPayload struct {
	RoomCode    string `json:"roomCode"`
	PlayerCount int    `json:"playerCount"`
}

type TurnChangePayload struct {
	CurrentPlayer int    `json:"currentPlayer"`
	Username      string `json:"username"`
}

type GameTimePayload struct {
	TimeRemaining int64 `json:"timeRemaining"`
	IsFastMode    bool  `json:"isFastMode"`
}

type TurnTimePayload struct {
	TimeRemaining int64 `json:"timeRemaining"`
}

type UsernamePayload struct {
	Username string `json:"username"`
}

type GameOverPayload struct {
	Winner string `json:"winner"`
	Reason string `json:"reason"`
}

type PlayerLeftPayload struct {
	Username string        `json:"username"`
	Players  []SeatSummary `json:"players"`
}

type PlayersUpdatePayload struct {
	Players []SeatSummary `json:"players"`
}

type ErrorPayload struct {
	Message string `json:"message"`
}
