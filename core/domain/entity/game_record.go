package entity

import (
	"time"

	"uno/framework/game"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// GameRecord 对局快照（聚合根）
// 开局时整体镜像 Session 落库，room_code 唯一；
// created_at 上的 TTL 索引实现保留窗口，到期自动删除
type GameRecord struct {
	ID            primitive.ObjectID `bson:"_id"`
	MatchNo       int64              `bson:"match_no"` // redis 自增的局号
	RoomCode      string             `bson:"room_code"`
	Players       []SeatState        `bson:"players"`
	Deck          []game.Card        `bson:"deck"`
	DiscardPile   []game.Card        `bson:"discard_pile"`
	CurrentPlayer int                `bson:"current_player"`
	Direction     int                `bson:"direction"`
	CurrentColor  string             `bson:"current_color"`
	GameStatus    string             `bson:"game_status"`
	Winner        string             `bson:"winner,omitempty"`
	CreatedAt     time.Time          `bson:"created_at"`
}

// SeatState 座位快照
type SeatState struct {
	ConnID       string      `bson:"conn_id"`
	Username     string      `bson:"username"`
	Hand         []game.Card `bson:"hand"`
	HasCalledUno bool        `bson:"has_called_uno"`
}

// NewGameRecord 从权威 Session 构建快照
func NewGameRecord(s *game.Session) *GameRecord {
	players := make([]SeatState, 0, len(s.Seats))
	for _, seat := range s.Seats {
		players = append(players, SeatState{
			ConnID:       seat.ConnID,
			Username:     seat.Username,
			Hand:         append([]game.Card(nil), seat.Hand...),
			HasCalledUno: seat.HasCalledUno,
		})
	}

	return &GameRecord{
		ID:            primitive.NewObjectID(),
		RoomCode:      s.RoomCode,
		Players:       players,
		Deck:          append([]game.Card(nil), s.Deck...),
		DiscardPile:   append([]game.Card(nil), s.DiscardPile...),
		CurrentPlayer: s.CurrentPlayer,
		Direction:     s.Direction,
		CurrentColor:  string(s.CurrentColor),
		GameStatus:    string(s.Status),
		CreatedAt:     time.Now(),
	}
}

// GameCounts 按状态聚合的对局数量
type GameCounts struct {
	Total    int64 `json:"totalGames"`
	Active   int64 `json:"activeGames"`
	Finished int64 `json:"finishedGames"`
	Waiting  int64 `json:"waitingGames"`
}

// ActiveGameSummary 活跃对局的对外摘要
type ActiveGameSummary struct {
	RoomCode   string   `json:"roomCode"`
	Players    []string `json:"players"`
	GameStatus string   `json:"gameStatus"`
}
