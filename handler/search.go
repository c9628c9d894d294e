package handler

import (
	"net/http"

	"Memehub/pkg/context"
	"Memehub/pkg/response"
	"Memehub/service"
	"Memehub/types"

	"github.com/gin-gonic/gin"
)

type Search struct {
	SearchService service.ISearchService
}

func (s *Search) RegisterRouter(r gin.IRouter) {
	search := r.Group("/search")
	search.GET("/memes", context.Wrap(s.Search))
	search.GET("/memes/suggest", context.Wrap(s.Suggest))
}

func (s *Search) Search(c *gin.Context) error {
	var req types.SearchReq
	if err := c.ShouldBindQuery(&req); err != nil {
		return response.NewError(http.StatusBadRequest, "invalid query").WithDetails(err)
	}

	res, err := s.SearchService.Search(c.Request.Context(), &req)
	if err != nil {
		return searchError("search failed", err)
	}
	response.Success(c, res)
	return nil
}

// Suggest 标题前缀联想
func (s *Search) Suggest(c *gin.Context) error {
	var req types.SuggestReq
	if err := c.ShouldBindQuery(&req); err != nil {
		return response.NewError(http.StatusBadRequest, "invalid query").WithDetails(err)
	}

	limit := service.ClampLimit(req.Limit, types.DefaultSuggestLimit, types.MaxSuggestLimit)
	suggestions, err := s.SearchService.Suggest(c.Request.Context(), req.Q, limit)
	if err != nil {
		return searchError("suggest failed", err)
	}
	response.Success(c, &types.SuggestResp{Suggestions: suggestions})
	return nil
}
