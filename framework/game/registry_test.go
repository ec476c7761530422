package game

import "testing"

func newTestCountdown() *Countdown {
	return &Countdown{done: make(chan struct{})}
}

func TestRegistryPutGetRemove(t *testing.T) {
	r := NewRegistry()
	s := NewSession("room-1", 150000)

	r.Put(s)
	if got, ok := r.Get("room-1"); !ok || got != s {
		t.Fatalf("应能按房间号取回会话")
	}
	if r.Len() != 1 {
		t.Errorf("房间数应为 1，实际 %d", r.Len())
	}

	r.Remove("room-1")
	if _, ok := r.Get("room-1"); ok {
		t.Errorf("移除后不应再能取到房间")
	}
}

// 替换回合计时器时必须先取消旧句柄，避免旧计时器对新回合触发
func TestSetTurnClockCancelsPrevious(t *testing.T) {
	r := NewRegistry()
	old := newTestCountdown()
	next := newTestCountdown()

	r.SetTurnClock("room-1", old)
	r.SetTurnClock("room-1", next)

	if !old.Stopped() {
		t.Errorf("旧回合计时器应被取消")
	}
	if next.Stopped() {
		t.Errorf("新回合计时器不应被取消")
	}
}

func TestRemoveCancelsBothClocks(t *testing.T) {
	r := NewRegistry()
	s := NewSession("room-1", 150000)
	turn := newTestCountdown()
	game := newTestCountdown()

	r.Put(s)
	r.SetTurnClock("room-1", turn)
	r.SetGameClock("room-1", game)

	r.Remove("room-1")

	if !turn.Stopped() || !game.Stopped() {
		t.Errorf("移除房间应同时取消两类计时器")
	}
}

func TestCancelClockIdempotent(t *testing.T) {
	r := NewRegistry()
	c := newTestCountdown()

	r.SetTurnClock("room-1", c)
	r.CancelTurnClock("room-1")
	r.CancelTurnClock("room-1")

	if !c.Stopped() {
		t.Errorf("计时器应已取消")
	}
}

func TestRoomsReturnsAll(t *testing.T) {
	r := NewRegistry()
	r.Put(NewSession("room-1", 150000))
	r.Put(NewSession("room-2", 150000))

	if got := len(r.Rooms()); got != 2 {
		t.Errorf("应列出 2 个房间，实际 %d", got)
	}
}
