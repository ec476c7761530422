package conn

import (
	"net/http"
	"sync"

	"uno/common/log"
	"uno/framework/game/share"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

var websocketUpgrade = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:    4096,
	WriteBufferSize:   4096,
	EnableCompression: true,
}

// Manager websocket 连接管理器
// 维护 connID -> 连接映射，把上行封包与断开事件投递到同一条事件通道，
// 由调度循环按到达顺序消费
type Manager struct {
	mu      sync.RWMutex
	clients map[string]*LongConnection
	events  chan *share.ClientEvent

	server    *http.Server
	closeOnce sync.Once
}

func NewManager() *Manager {
	return &Manager{
		clients: make(map[string]*LongConnection),
		events:  make(chan *share.ClientEvent, 2048),
	}
}

// Events 上行事件通道，调度循环从这里消费
func (m *Manager) Events() <-chan *share.ClientEvent {
	return m.events
}

// Client 按连接 ID 查找客户端
func (m *Manager) Client(connID string) (share.Client, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	con, ok := m.clients[connID]
	return con, ok
}

// Run 启动 websocket 服务（阻塞）
func (m *Manager) Run(addr string) error {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", m.upgradeFunc)
	m.server = &http.Server{Addr: addr, Handler: mux}

	log.Info("websocket manager 监听 %s", addr)
	err := m.server.ListenAndServe()
	if err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (m *Manager) upgradeFunc(w http.ResponseWriter, r *http.Request) {
	wsConn, err := websocketUpgrade.Upgrade(w, r, nil)
	if err != nil {
		log.Error("websocket 升级失败: %v", err)
		return
	}

	con := newLongConnection(uuid.NewString(), wsConn, m)

	m.mu.Lock()
	m.clients[con.ConnID] = con
	m.mu.Unlock()

	log.Info("客户端[%s] 已连接", con.ConnID)
	con.Run()
}

// removeClient 连接退出时调用，注销并向调度循环合成断开事件
func (m *Manager) removeClient(con *LongConnection) {
	m.mu.Lock()
	_, ok := m.clients[con.ConnID]
	delete(m.clients, con.ConnID)
	m.mu.Unlock()

	con.Close()
	if ok {
		m.events <- &share.ClientEvent{ConnID: con.ConnID, Event: share.EventDisconnect}
	}
}

// Close 关闭全部连接与监听
func (m *Manager) Close() {
	m.closeOnce.Do(func() {
		if m.server != nil {
			_ = m.server.Close()
		}
		m.mu.Lock()
		for _, con := range m.clients {
			con.Close()
		}
		m.clients = make(map[string]*LongConnection)
		m.mu.Unlock()
	})
}
