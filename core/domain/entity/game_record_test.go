package entity

import (
	"testing"

	"uno/framework/game"
)

func TestNewGameRecordSnapshotsSession(t *testing.T) {
	s := game.NewSession("room-9", 150000)
	s.AddSeat("c1", "alice")
	s.AddSeat("c2", "bob")
	if _, err := s.Start(); err != nil {
		t.Fatalf("开局失败: %v", err)
	}

	record := NewGameRecord(s)

	if record.RoomCode != "room-9" {
		t.Errorf("房间号应为 room-9，实际 %q", record.RoomCode)
	}
	if record.GameStatus != string(game.StatusActive) {
		t.Errorf("状态应为 active，实际 %q", record.GameStatus)
	}
	if len(record.Players) != 2 {
		t.Fatalf("应快照 2 个座位，实际 %d", len(record.Players))
	}
	for i, p := range record.Players {
		if len(p.Hand) != game.InitialHand {
			t.Errorf("座位 %d 手牌应 %d 张，实际 %d", i, game.InitialHand, len(p.Hand))
		}
	}
	if record.ID.IsZero() || record.CreatedAt.IsZero() {
		t.Errorf("应生成 ObjectID 与创建时间")
	}

	// 快照独立于 Session，后续出牌不应影响已落库内容
	deckBefore := len(record.Deck)
	s.ForceDraw(0)
	if len(record.Deck) != deckBefore {
		t.Errorf("快照牌堆不应随对局变化")
	}
}
