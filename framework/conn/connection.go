package conn

import (
	"encoding/json"
	"sync"
	"time"

	"uno/common/log"
	"uno/framework/game/share"

	"github.com/gorilla/websocket"
)

var (
	pongWait             = 60 * time.Second
	writeWait            = 10 * time.Second
	pingInterval         = (pongWait * 9) / 10
	maxMessageSize int64 = 4096
)

// LongConnection 一条 websocket 长连接
// 读写各一协程，下行经 WriteChan 串行化
type LongConnection struct {
	ConnID     string
	Conn       *websocket.Conn
	manager    *Manager
	WriteChan  chan []byte
	pingTicker *time.Ticker
	closeChan  chan struct{}
	closeOnce  sync.Once
}

func newLongConnection(connID string, conn *websocket.Conn, manager *Manager) *LongConnection {
	return &LongConnection{
		ConnID:    connID,
		Conn:      conn,
		manager:   manager,
		WriteChan: make(chan []byte, 64),
		closeChan: make(chan struct{}),
	}
}

func (con *LongConnection) Run() {
	go con.readMessage()
	go con.writeMessage()
	con.Conn.SetPongHandler(con.PongHandler)
}

// ID 连接标识
func (con *LongConnection) ID() string {
	return con.ConnID
}

// Emit 下发一条事件封包
func (con *LongConnection) Emit(event string, data any) error {
	buf, err := json.Marshal(&share.Envelope{Event: event, Data: data})
	if err != nil {
		return err
	}
	select {
	case con.WriteChan <- buf:
		return nil
	case <-con.closeChan:
		return websocket.ErrCloseSent
	}
}

func (con *LongConnection) writeMessage() {
	con.pingTicker = time.NewTicker(pingInterval)

	for {
		select {
		case message := <-con.WriteChan:
			if err := con.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				log.Error("客户端[%s] SetWriteDeadline err: %+v", con.ConnID, err)
			}
			if err := con.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Error("客户端[%s] write stream err: %+v", con.ConnID, err)
			}
		case <-con.pingTicker.C:
			if err := con.Conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				log.Error("客户端[%s] ping SetWriteDeadline err: %+v", con.ConnID, err)
			}
			if err := con.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Error("客户端[%s] ping err: %+v", con.ConnID, err)
				con.Close()
			}
		case <-con.closeChan:
			log.Info("客户端[%s] writeMessage stopped", con.ConnID)
			return
		}
	}
}

func (con *LongConnection) readMessage() {
	defer func() {
		log.Info("客户端[%s] 读协程停止", con.ConnID)
		con.manager.removeClient(con)
	}()
	con.Conn.SetReadLimit(maxMessageSize)
	if err := con.Conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		log.Error("SetReadDeadline err: %v", err)
		return
	}
	for {
		select {
		case <-con.closeChan:
			log.Info("客户端[%s] 检测到关闭信号", con.ConnID)
			return
		default:
			messageType, message, err := con.Conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
					log.Error("客户端[%s] 异常错误: %v", con.ConnID, err)
				}
				return
			}
			if messageType != websocket.TextMessage {
				log.Error("不支持的流类型: %d", messageType)
				continue
			}

			var frame share.InboundFrame
			if err := json.Unmarshal(message, &frame); err != nil || frame.Event == "" {
				log.Warn("客户端[%s] 非法封包: %s", con.ConnID, string(message))
				continue
			}
			select {
			case con.manager.events <- &share.ClientEvent{ConnID: con.ConnID, Event: frame.Event, Data: frame.Data}:
			case <-con.closeChan:
				return
			}
		}
	}
}

func (con *LongConnection) PongHandler(data string) error {
	return con.Conn.SetReadDeadline(time.Now().Add(pongWait))
}

func (con *LongConnection) Close() {
	// 确保只执行一次
	con.closeOnce.Do(func() {
		close(con.closeChan)
		if con.Conn != nil {
			_ = con.Conn.Close()
		}
		if con.pingTicker != nil {
			con.pingTicker.Stop()
		}
		log.Info("客户端[%s] 连接关闭", con.ConnID)
	})
}
