package entity

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// PlayerRecord 玩家战绩记录
type PlayerRecord struct {
	ID          primitive.ObjectID `bson:"_id" json:"id"`
	Username    string             `bson:"username" json:"username"`
	GamesPlayed int                `bson:"games_played" json:"gamesPlayed"`
	GamesWon    int                `bson:"games_won" json:"gamesWon"`
	CreatedAt   time.Time          `bson:"created_at" json:"createdAt"`
}

// NewPlayerRecord 创建新玩家记录
func NewPlayerRecord(username string) *PlayerRecord {
	return &PlayerRecord{
		ID:        primitive.NewObjectID(),
		Username:  username,
		CreatedAt: time.Now(),
	}
}

// WinRate 胜率百分比，保留两位小数；未打过返回 "0"
func (p *PlayerRecord) WinRate() string {
	if p.GamesPlayed == 0 {
		return "0"
	}
	return fmt.Sprintf("%.2f", float64(p.GamesWon)/float64(p.GamesPlayed)*100)
}
