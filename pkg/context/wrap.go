package context

import (
	"Memehub/pkg/log"
	"Memehub/pkg/response"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const (
	CtxUserID = "user_id"
	CtxRole   = "role"
)

type HandlerFunc func(*gin.Context) error

func Wrap(h func(*gin.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := h(c); err != nil {

			// 如果已经写过响应，直接返回
			if c.Writer.Written() {
				return
			}
			// 业务错误
			var be *response.BizError
			if errors.As(err, &be) {
				if be.Status() >= http.StatusInternalServerError {
					log.L.Error("request failed", zap.String("path", c.FullPath()), zap.Error(be))
				}
				response.FailError(c, be)
				return
			}
			log.L.Error("unhandled error", zap.String("path", c.FullPath()), zap.Error(err))
			c.JSON(http.StatusInternalServerError, response.Response{
				Code: http.StatusInternalServerError,
				Msg:  err.Error(),
			})
		}
	}
}

// GetUserID 当前登录用户，未登录返回错误
func GetUserID(c *gin.Context) (string, error) {
	v, ok := c.Get(CtxUserID)
	if !ok {
		return "", errors.New("user_id 不存在")
	}

	uid, ok := v.(string)
	if !ok {
		return "", errors.New("user_id 类型错误")
	}
	if uid == "" {
		return "", errors.New("user_id 为空")
	}

	return uid, nil
}

func GetRole(c *gin.Context) string {
	return c.GetString(CtxRole)
}
