package handler

import (
	"crypto/subtle"
	"net/http"

	"Memehub/config"
	"Memehub/pkg/context"
	"Memehub/pkg/log"
	"Memehub/pkg/response"
	"Memehub/service"
	"Memehub/types"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const hookSecretHeader = "X-Hook-Secret"

// Hook 接收平台推送的 memes 生命周期事件
type Hook struct {
	Config *config.Config
	Sync   service.ISynchronizer
}

func (h *Hook) RegisterRouter(r gin.IRouter) {
	r.POST("/hooks/memes", context.Wrap(h.Memes))
}

func (h *Hook) Memes(c *gin.Context) error {
	secret := h.Config.Hook.Secret
	got := c.GetHeader(hookSecretHeader)
	if secret == "" || subtle.ConstantTimeCompare([]byte(secret), []byte(got)) != 1 {
		return response.NewError(http.StatusUnauthorized, "invalid hook secret")
	}

	var ev types.LifecycleEvent
	if err := c.ShouldBindJSON(&ev); err != nil {
		return response.NewError(http.StatusBadRequest, "invalid event").WithDetails(err)
	}

	n, err := h.Sync.Handle(c.Request.Context(), &ev)
	if err != nil {
		log.L.Error("queue lifecycle event", zap.String("event", ev.Event), zap.Error(err))
		return response.NewError(http.StatusInternalServerError, "queue event failed").WithDetails(err)
	}
	response.Success(c, &types.HookResp{Queued: n})
	return nil
}
