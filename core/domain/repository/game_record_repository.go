package repository

import (
	"context"

	"uno/core/domain/entity"
)

// GameRecordRepository 对局快照仓储
type GameRecordRepository interface {
	// Save 按房间号 upsert 快照（同一房间重开覆盖旧快照）
	Save(ctx context.Context, record *entity.GameRecord) error
	// FindActive 活跃对局摘要，最多 limit 条
	FindActive(ctx context.Context, limit int64) ([]entity.ActiveGameSummary, error)
	// CountByStatus 按状态聚合对局数量
	CountByStatus(ctx context.Context) (*entity.GameCounts, error)
	// EnsureIndexes 建立唯一索引与 TTL 保留窗口索引
	EnsureIndexes(ctx context.Context, retentionSeconds int32) error
}
