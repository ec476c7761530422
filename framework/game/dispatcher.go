package game

import (
	"encoding/json"
	"time"

	"uno/common/log"
	"uno/framework/game/share"
)

// Options 对局时间参数（毫秒），零值字段取默认
type Options struct {
	GameTimeLimitMs     int64
	NormalTurnTimeMs    int64
	FastTurnTimeMs      int64
	FastModeThresholdMs int64
	TickInterval        time.Duration // 测试注入用，默认 1s
}

func (o *Options) fillDefaults() {
	if o.GameTimeLimitMs == 0 {
		o.GameTimeLimitMs = 150000
	}
	if o.NormalTurnTimeMs == 0 {
		o.NormalTurnTimeMs = 20000
	}
	if o.FastTurnTimeMs == 0 {
		o.FastTurnTimeMs = 10000
	}
	if o.FastModeThresholdMs == 0 {
		o.FastModeThresholdMs = 60000
	}
	if o.TickInterval == 0 {
		o.TickInterval = time.Second
	}
}

// SnapshotSink 开局快照的落库出口
// 实现方自行异步化，对局逻辑不等待写入结果
type SnapshotSink interface {
	MatchStarted(s *Session)
}

// Dispatcher 连接事件调度器
// 单协程消费连接事件与计时器回调，对 Session 的全部修改都发生在这个协程内，
// 事件之间按到达顺序串行执行
type Dispatcher struct {
	registry *Registry
	hub      share.ClientHub
	sink     SnapshotSink
	opts     Options

	timerChan chan func()
	quit      chan struct{}
}

// NewDispatcher 创建调度器
// sink 可为 nil，表示不落库
func NewDispatcher(registry *Registry, hub share.ClientHub, sink SnapshotSink, opts Options) *Dispatcher {
	opts.fillDefaults()
	return &Dispatcher{
		registry:  registry,
		hub:       hub,
		sink:      sink,
		opts:      opts,
		timerChan: make(chan func(), 256),
		quit:      make(chan struct{}),
	}
}

// Post 把计时器回调排入调度循环
func (d *Dispatcher) Post(fn func()) {
	select {
	case d.timerChan <- fn:
	case <-d.quit:
	}
}

// Run 调度循环（阻塞），inbound 关闭或 Close 后退出
func (d *Dispatcher) Run(inbound <-chan *share.ClientEvent) {
	for {
		select {
		case <-d.quit:
			return
		case fn := <-d.timerChan:
			d.safely(fn)
		case ev, ok := <-inbound:
			if !ok {
				return
			}
			d.safely(func() { d.handle(ev) })
		}
	}
}

// Close 停止调度循环
func (d *Dispatcher) Close() {
	close(d.quit)
}

// safely 单个事件的失败不能波及其他房间
func (d *Dispatcher) safely(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			log.Error("事件处理 panic: %v", r)
		}
	}()
	fn()
}

// handle 事件表分发
func (d *Dispatcher) handle(ev *share.ClientEvent) {
	switch ev.Event {
	case share.EventJoinRoom:
		var req share.JoinRoomReq
		if err := json.Unmarshal(ev.Data, &req); err != nil {
			d.emitError(ev.ConnID, "bad payload")
			return
		}
		d.handleJoin(ev.ConnID, req)
	case share.EventStartGame:
		d.handleStart(ev.ConnID, d.roomReq(ev))
	case share.EventPlayCard:
		var req share.PlayCardReq
		if err := json.Unmarshal(ev.Data, &req); err != nil {
			d.emitError(ev.ConnID, "bad payload")
			return
		}
		d.handlePlay(ev.ConnID, req)
	case share.EventDrawCard:
		d.handleDraw(ev.ConnID, d.roomReq(ev))
	case share.EventKeepDrawnCard:
		d.handleKeep(ev.ConnID, d.roomReq(ev))
	case share.EventCallUno:
		d.handleUno(ev.ConnID, d.roomReq(ev))
	case share.EventDisconnect:
		d.handleDisconnect(ev.ConnID)
	default:
		log.Debug("未知事件 %s，连接 %s", ev.Event, ev.ConnID)
	}
}

func (d *Dispatcher) roomReq(ev *share.ClientEvent) string {
	var req share.RoomReq
	_ = json.Unmarshal(ev.Data, &req)
	return req.RoomCode
}

// handleJoin 加入房间，房间不存在时懒创建
func (d *Dispatcher) handleJoin(connID string, req share.JoinRoomReq) {
	if req.Username == "" || req.RoomCode == "" {
		d.emitError(connID, "Username is required")
		return
	}

	s, ok := d.registry.Get(req.RoomCode)
	if !ok {
		s = NewSession(req.RoomCode, d.opts.GameTimeLimitMs)
		d.registry.Put(s)
		log.Info("创建房间 %s", req.RoomCode)
	}

	_, err := s.AddSeat(connID, req.Username)
	switch err {
	case ErrRoomFull:
		d.emitTo(connID, share.EventRoomFull, nil)
		return
	case ErrGameAlreadyStarted:
		d.emitTo(connID, share.EventGameAlreadyStarted, nil)
		return
	}

	log.Info("玩家 %s 加入房间 %s，当前 %d 人", req.Username, req.RoomCode, len(s.Seats))
	d.broadcast(s, share.EventPlayerJoined, &share.PlayerJoinedPayload{
		Players:    s.SeatSummaries(),
		GameStatus: string(s.Status),
	})
	d.emitTo(connID, share.EventJoinedSuccessfully, &share.JoinedSuccessfullyPayload{
		RoomCode:    req.RoomCode,
		PlayerCount: len(s.Seats),
	})
}

// handleStart 开局：发牌、翻首牌、开双计时器、异步落库快照
func (d *Dispatcher) handleStart(connID, roomCode string) {
	s, ok := d.registry.Get(roomCode)
	if !ok || len(s.Seats) < MinSeats {
		d.emitError(connID, "Need at least 2 players")
		return
	}

	firstCard, err := s.Start()
	if err == ErrGameAlreadyStarted {
		d.emitTo(connID, share.EventGameAlreadyStarted, nil)
		return
	}
	if err != nil {
		d.emitError(connID, "Need at least 2 players")
		return
	}

	log.Info("房间 %s 开局，%d 人，首牌 %s %s", roomCode, len(s.Seats), firstCard.Color, firstCard.Value)

	if d.sink != nil {
		d.sink.MatchStarted(s)
	}

	summaries := s.SeatSummaries()
	for _, seat := range s.Seats {
		d.emitTo(seat.ConnID, share.EventGameStarted, &GameStartedPayload{
			Hand:           seat.Hand,
			TopCard:        firstCard,
			CurrentColor:   s.CurrentColor,
			CurrentPlayer:  s.CurrentPlayer,
			Players:        summaries,
			GameTimeLimit:  d.opts.GameTimeLimitMs,
			NormalTurnTime: d.opts.NormalTurnTimeMs,
			FastTurnTime:   d.opts.FastTurnTimeMs,
		})
	}

	d.broadcastTurnChange(s)
	d.startGameClock(s)
	d.startTurnClock(s)
}

// handlePlay 出牌
func (d *Dispatcher) handlePlay(connID string, req share.PlayCardReq) {
	s, ok := d.registry.Get(req.RoomCode)
	if !ok {
		return
	}

	seatIdx := s.SeatIndexByConn(connID)
	if seatIdx < 0 || seatIdx != s.CurrentPlayer {
		d.emitError(connID, "Not your turn!")
		return
	}

	result, err := s.PlayCard(seatIdx, req.CardIndex, Color(req.ChosenColor))
	if err != nil {
		d.emitError(connID, "Invalid card!")
		return
	}

	if result.Winner != nil {
		d.finishGame(s, result.Winner.Username, "All cards played!")
		return
	}

	if result.PenaltyIdx >= 0 {
		d.emitTo(s.Seats[result.PenaltyIdx].ConnID, share.EventCardsDrawn, &CardsDrawnPayload{
			Cards: result.DrawnCards,
			Count: len(result.DrawnCards),
		})
	}

	d.broadcast(s, share.EventCardPlayed, &CardPlayedPayload{
		PlayedCard:   result.Card,
		CurrentColor: s.CurrentColor,
		Players:      s.SeatSummaries(),
	})
	d.broadcastTurnChange(s)
	for _, seat := range s.Seats {
		d.emitTo(seat.ConnID, share.EventHandUpdate, &HandUpdatePayload{Hand: seat.Hand})
	}

	d.startTurnClock(s)
}

// handleDraw 摸一张牌但不立即过回合，等待玩家决定打出还是保留
// 注意：决定窗口内回合计时器继续走，超时会对同一座位再强制摸一张，
// 与上线版本行为一致
func (d *Dispatcher) handleDraw(connID, roomCode string) {
	s, ok := d.registry.Get(roomCode)
	if !ok {
		return
	}

	seatIdx := s.SeatIndexByConn(connID)
	if seatIdx < 0 || seatIdx != s.CurrentPlayer {
		return
	}

	drawn, canPlay, handIdx := s.DrawOne(seatIdx)

	d.emitTo(connID, share.EventCardDrawnWithOptions, &CardDrawnWithOptionsPayload{
		Card:           drawn,
		CanPlay:        canPlay,
		DrawnCardIndex: handIdx,
	})
	d.emitTo(connID, share.EventHandUpdate, &HandUpdatePayload{Hand: s.Seats[seatIdx].Hand})
	d.broadcast(s, share.EventPlayersUpdate, &share.PlayersUpdatePayload{Players: s.SeatSummaries()})
}

// handleKeep 保留摸到的牌，过回合（无跳过、无罚抽、不改色）
func (d *Dispatcher) handleKeep(connID, roomCode string) {
	s, ok := d.registry.Get(roomCode)
	if !ok {
		return
	}

	seatIdx := s.SeatIndexByConn(connID)
	if seatIdx < 0 || seatIdx != s.CurrentPlayer {
		return
	}

	s.AdvanceTurn(false)
	d.broadcastTurnChange(s)
	d.startTurnClock(s)
}

// handleUno 报 UNO
func (d *Dispatcher) handleUno(connID, roomCode string) {
	s, ok := d.registry.Get(roomCode)
	if !ok {
		return
	}

	seatIdx := s.SeatIndexByConn(connID)
	if seatIdx < 0 {
		return
	}

	if s.CallUno(seatIdx) {
		d.broadcast(s, share.EventUnoCalled, &share.UsernamePayload{
			Username: s.Seats[seatIdx].Username,
		})
	}
}

// handleDisconnect 连接断开，把该连接从所有房间移除
// 空房间立刻销毁并取消计时器
func (d *Dispatcher) handleDisconnect(connID string) {
	for _, s := range d.registry.Rooms() {
		seat, ok := s.RemoveSeatByConn(connID)
		if !ok {
			continue
		}

		log.Info("玩家 %s 断开，离开房间 %s", seat.Username, s.RoomCode)
		if len(s.Seats) == 0 {
			d.registry.Remove(s.RoomCode)
			continue
		}
		d.broadcast(s, share.EventPlayerLeft, &share.PlayerLeftPayload{
			Username: seat.Username,
			Players:  s.SeatSummaries(),
		})
	}
}

// startTurnClock 为当前座位启动回合倒计时，先替换掉旧句柄
// 整局剩余时间低于阈值时进入快速模式
func (d *Dispatcher) startTurnClock(s *Session) {
	fast := s.GameTimeRemainingMs < d.opts.FastModeThresholdMs
	turnTimeMs := d.opts.NormalTurnTimeMs
	if fast {
		turnTimeMs = d.opts.FastTurnTimeMs
	}

	d.broadcast(s, share.EventTurnTimerStart, &share.GameTimePayload{
		TimeRemaining: turnTimeMs,
		IsFastMode:    fast,
	})

	roomCode := s.RoomCode
	c := StartCountdown(d, d.opts.TickInterval, int(turnTimeMs/1000),
		func(n int) {
			if cur, ok := d.registry.Get(roomCode); ok {
				d.broadcast(cur, share.EventTurnTimeUpdate, &share.TurnTimePayload{
					TimeRemaining: turnTimeMs - int64(n)*1000,
				})
			}
		},
		func() {
			d.onTurnTimeout(roomCode)
		})
	d.registry.SetTurnClock(roomCode, c)
}

// onTurnTimeout 回合超时：强制摸一张并过回合（无跳过）
func (d *Dispatcher) onTurnTimeout(roomCode string) {
	s, ok := d.registry.Get(roomCode)
	if !ok {
		return
	}

	seat := s.CurrentSeat()
	drawn := s.ForceDraw(s.CurrentPlayer)
	log.Debug("房间 %s 座位 %d 超时自动摸牌", roomCode, s.CurrentPlayer)

	d.emitTo(seat.ConnID, share.EventAutoDrawTimeout, &AutoDrawTimeoutPayload{Card: drawn})
	d.emitTo(seat.ConnID, share.EventHandUpdate, &HandUpdatePayload{Hand: seat.Hand})
	d.broadcast(s, share.EventPlayerTimeout, &share.UsernamePayload{Username: seat.Username})

	s.AdvanceTurn(false)
	d.broadcastTurnChange(s)
	d.broadcast(s, share.EventPlayersUpdate, &share.PlayersUpdatePayload{Players: s.SeatSummaries()})
	d.startTurnClock(s)
}

// startGameClock 启动整局倒计时
func (d *Dispatcher) startGameClock(s *Session) {
	limit := d.opts.GameTimeLimitMs
	s.GameTimeRemainingMs = limit
	roomCode := s.RoomCode

	c := StartCountdown(d, d.opts.TickInterval, int(limit/1000),
		func(n int) {
			cur, ok := d.registry.Get(roomCode)
			if !ok {
				return
			}
			cur.GameTimeRemainingMs = limit - int64(n)*1000
			d.broadcast(cur, share.EventGameTimeUpdate, &share.GameTimePayload{
				TimeRemaining: cur.GameTimeRemainingMs,
				IsFastMode:    cur.GameTimeRemainingMs < d.opts.FastModeThresholdMs,
			})
		},
		func() {
			cur, ok := d.registry.Get(roomCode)
			if !ok {
				return
			}
			cur.GameTimeRemainingMs = 0
			winner := cur.FewestCardsWinner()
			d.finishGame(cur, winner.Username, "Time Up! Winner by least cards.")
		})
	d.registry.SetGameClock(roomCode, c)
}

// finishGame 终局：广播结果并销毁房间（计时器随之取消）
func (d *Dispatcher) finishGame(s *Session, winner, reason string) {
	s.Status = StatusFinished
	log.Info("房间 %s 结束，赢家 %s（%s）", s.RoomCode, winner, reason)
	d.broadcast(s, share.EventGameOver, &share.GameOverPayload{
		Winner: winner,
		Reason: reason,
	})
	d.registry.Remove(s.RoomCode)
}

func (d *Dispatcher) broadcastTurnChange(s *Session) {
	d.broadcast(s, share.EventTurnChange, &share.TurnChangePayload{
		CurrentPlayer: s.CurrentPlayer,
		Username:      s.CurrentSeat().Username,
	})
}

// broadcast 给房间内每个座位下发
func (d *Dispatcher) broadcast(s *Session, event string, data any) {
	for _, seat := range s.Seats {
		d.emitTo(seat.ConnID, event, data)
	}
}

// emitTo 给单个连接下发，连接不在线时静默丢弃
func (d *Dispatcher) emitTo(connID, event string, data any) {
	client, ok := d.hub.Client(connID)
	if !ok {
		return
	}
	if err := client.Emit(event, data); err != nil {
		log.Warn("下发 %s 到连接 %s 失败: %v", event, connID, err)
	}
}

func (d *Dispatcher) emitError(connID, message string) {
	d.emitTo(connID, share.EventError, &share.ErrorPayload{Message: message})
}
