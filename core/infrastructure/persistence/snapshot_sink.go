package persistence

import (
	"context"
	"time"

	"uno/common/log"
	"uno/core/domain/entity"
	"uno/core/domain/repository"
	"uno/framework/game"
)

// SnapshotSink 开局快照出口
// fire-and-forget：落库在独立协程内进行，不重试、不反馈给对局逻辑
type SnapshotSink struct {
	records repository.GameRecordRepository
}

func NewSnapshotSink(records repository.GameRecordRepository) *SnapshotSink {
	return &SnapshotSink{records: records}
}

// MatchStarted 在调度循环内被调用，必须立刻返回
// 快照在这里同步构建（状态仍一致），写库异步
func (s *SnapshotSink) MatchStarted(sess *game.Session) {
	record := entity.NewGameRecord(sess)

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := s.records.Save(ctx, record); err != nil {
			log.Warn("房间 %s 开局快照落库失败: %v", record.RoomCode, err)
		}
	}()
}
