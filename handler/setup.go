package handler

import (
	"Memehub/config"
	"Memehub/middleware"
	"Memehub/pkg/context"
	"Memehub/pkg/jwt"
	"Memehub/pkg/response"
	"Memehub/service"
	"Memehub/types"

	"github.com/gin-gonic/gin"
)

type SearchSetup struct {
	Config       *config.Config
	SetupService service.ISetupService
}

func (s *SearchSetup) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(s.Config.Jwt.Secret))
	admin := middleware.RequireRole(jwt.RoleAdmin)

	setup := r.Group("/search-setup")
	setup.POST("/meilisearch", authorize, admin, context.Wrap(s.Setup))
	setup.GET("/meilisearch/status", context.Wrap(s.Status))
	setup.POST("/meilisearch/outbox/retry", authorize, admin, context.Wrap(s.RetryDead))
}

// Setup 配置索引并全量导入
func (s *SearchSetup) Setup(c *gin.Context) error {
	res, err := s.SetupService.Setup(c.Request.Context())
	if err != nil {
		return engineError("search index setup failed", err)
	}
	response.Success(c, res)
	return nil
}

func (s *SearchSetup) Status(c *gin.Context) error {
	res, err := s.SetupService.Status(c.Request.Context())
	if err != nil {
		return engineError("cannot reach search engine", err)
	}
	response.Success(c, res)
	return nil
}

func (s *SearchSetup) RetryDead(c *gin.Context) error {
	n, err := s.SetupService.RetryDead(c.Request.Context())
	if err != nil {
		return err
	}
	response.Success(c, &types.RetryDeadResp{Requeued: n})
	return nil
}
