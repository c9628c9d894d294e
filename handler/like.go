package handler

import (
	"net/http"
	"strconv"

	"Memehub/config"
	"Memehub/middleware"
	"Memehub/pkg/context"
	"Memehub/pkg/response"
	"Memehub/service"
	"Memehub/types"

	"github.com/gin-gonic/gin"
)

type Like struct {
	Config      *config.Config
	LikeService service.ILikeService
}

func (l *Like) RegisterRouter(r gin.IRouter) {
	secret := []byte(l.Config.Jwt.Secret)
	like := r.Group("/like-manager")
	like.POST("/toggle", middleware.OptionalAuth(secret), context.Wrap(l.Toggle)) // 点赞/取消
	like.GET("/status/:meme_id", middleware.Auth(secret), context.Wrap(l.Status))
}

func (l *Like) Toggle(c *gin.Context) error {
	var req types.ToggleLikeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, service.ErrInvalidArgument.Error()).WithDetails(err)
	}
	// 未登录按缺少 user_id 处理
	userID, _ := context.GetUserID(c)

	res, err := l.LikeService.Toggle(c.Request.Context(), uint64(req.MemeID), userID)
	if err != nil {
		return likeError(err)
	}
	response.Success(c, res)
	return nil
}

func (l *Like) Status(c *gin.Context) error {
	memeID, err := strconv.ParseUint(c.Param("meme_id"), 10, 64)
	if err != nil || memeID == 0 {
		return response.NewError(http.StatusBadRequest, "invalid meme_id")
	}
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, "authentication required")
	}

	res, err := l.LikeService.Status(c.Request.Context(), memeID, userID)
	if err != nil {
		return likeError(err)
	}
	response.Success(c, res)
	return nil
}
