package handler

import (
	"Memehub/config"
	"Memehub/middleware"
	"Memehub/pkg/context"
	"Memehub/pkg/socket"

	"github.com/gin-gonic/gin"
)

// WebSocket 点赞通知推送，匿名连接也可以订阅
type WebSocket struct {
	Config *config.Config
	Hub    *socket.Hub
}

func (w *WebSocket) RegisterRouter(r gin.IRouter) {
	r.GET("/ws", middleware.OptionalAuth([]byte(w.Config.Jwt.Secret)), w.Serve)
}

func (w *WebSocket) Serve(c *gin.Context) {
	userID, _ := context.GetUserID(c)
	socket.ServeWs(w.Hub, c.Writer, c.Request, userID)
}
