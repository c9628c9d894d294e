package handler

import (
	"errors"
	"net/http"

	"Memehub/pkg/response"
	"Memehub/service"
)

const setupHint = "search index is not ready, call POST /search-setup/meilisearch to initialise the index"

// likeError 点赞相关的业务错误转成 HTTP 状态码
func likeError(err error) error {
	switch {
	case errors.Is(err, service.ErrInvalidArgument):
		return response.NewError(http.StatusBadRequest, err.Error())
	case errors.Is(err, service.ErrMemeNotFound):
		return response.NewError(http.StatusNotFound, err.Error())
	case errors.Is(err, service.ErrLikeConflict):
		return response.NewError(http.StatusConflict, err.Error())
	case errors.Is(err, service.ErrTooFrequent):
		return response.NewError(http.StatusTooManyRequests, err.Error())
	}
	return response.NewError(http.StatusInternalServerError, "internal server error").WithDetails(err)
}

// engineError 搜索引擎的错误统一按 503 返回
func engineError(msg string, err error) error {
	return response.NewError(http.StatusServiceUnavailable, msg).WithDetails(err)
}

// searchError 引擎不可用或索引不存在时提示先初始化索引，引擎拒绝的查询按 400 返回
func searchError(msg string, err error) error {
	if errors.Is(err, service.ErrInvalidQuery) {
		return response.NewError(http.StatusBadRequest, err.Error())
	}
	if errors.Is(err, service.ErrIndexNotFound) || errors.Is(err, service.ErrEngineUnavailable) {
		return engineError(setupHint, err)
	}
	return engineError(msg, err)
}
