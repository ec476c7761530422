package repository

import (
	"context"

	"uno/core/domain/entity"
)

// PlayerRepository 玩家战绩仓储
type PlayerRepository interface {
	// FindByUsername 查询玩家，不存在返回 ErrPlayerNotFound
	FindByUsername(ctx context.Context, username string) (*entity.PlayerRecord, error)
	// Upsert 按用户名取回记录，不存在时创建
	Upsert(ctx context.Context, username string) (*entity.PlayerRecord, error)
	// IncrementStats 赛后累计场次与胜场，玩家不存在返回 ErrPlayerNotFound
	IncrementStats(ctx context.Context, username string, won bool) (*entity.PlayerRecord, error)
	// Leaderboard 排行榜：胜场降序，平手按场次少者靠前，取前 limit 名
	Leaderboard(ctx context.Context, limit int64) ([]entity.PlayerRecord, error)
	// EnsureIndexes 建立用户名唯一索引
	EnsureIndexes(ctx context.Context) error
}
