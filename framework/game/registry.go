package game

// Registry 房间注册表
// 唯一持有 roomCode -> Session 映射与两类倒计时句柄，
// 计时器句柄按房间号存放而不内嵌在 Session 里，移除房间前必须先取消计时器。
// 仅允许在调度循环内访问，因此不加锁。
type Registry struct {
	rooms      map[string]*Session
	turnClocks map[string]*Countdown
	gameClocks map[string]*Countdown
}

// NewRegistry 创建空注册表
func NewRegistry() *Registry {
	return &Registry{
		rooms:      make(map[string]*Session),
		turnClocks: make(map[string]*Countdown),
		gameClocks: make(map[string]*Countdown),
	}
}

// Get 查找房间
func (r *Registry) Get(roomCode string) (*Session, bool) {
	s, ok := r.rooms[roomCode]
	return s, ok
}

// Put 登记房间
func (r *Registry) Put(s *Session) {
	r.rooms[s.RoomCode] = s
}

// Remove 移除房间并取消其全部计时器
// 对局结束或全员离席时调用，防止计时器对已销毁的房间触发
func (r *Registry) Remove(roomCode string) {
	r.CancelTurnClock(roomCode)
	r.CancelGameClock(roomCode)
	delete(r.rooms, roomCode)
}

// SetTurnClock 登记回合计时器，先取消上一个
// 任何推进回合的事件都必须经由这里替换句柄，避免旧计时器对新回合触发
func (r *Registry) SetTurnClock(roomCode string, c *Countdown) {
	r.CancelTurnClock(roomCode)
	r.turnClocks[roomCode] = c
}

// SetGameClock 登记整局计时器，先取消上一个
func (r *Registry) SetGameClock(roomCode string, c *Countdown) {
	r.CancelGameClock(roomCode)
	r.gameClocks[roomCode] = c
}

// CancelTurnClock 取消回合计时器
func (r *Registry) CancelTurnClock(roomCode string) {
	if c, ok := r.turnClocks[roomCode]; ok {
		c.Stop()
		delete(r.turnClocks, roomCode)
	}
}

// CancelGameClock 取消整局计时器
func (r *Registry) CancelGameClock(roomCode string) {
	if c, ok := r.gameClocks[roomCode]; ok {
		c.Stop()
		delete(r.gameClocks, roomCode)
	}
}

// Rooms 所有房间列表（副本）
func (r *Registry) Rooms() []*Session {
	rooms := make([]*Session, 0, len(r.rooms))
	for _, s := range r.rooms {
		rooms = append(rooms, s)
	}
	return rooms
}

// Len 房间数量
func (r *Registry) Len() int {
	return len(r.rooms)
}
