package service

import (
	"errors"

	"Memehub/pkg/meili"
)

var (
	ErrInvalidArgument = errors.New("meme_id and user_id are required")
	ErrMemeNotFound    = errors.New("meme not found")
	// ErrLikeConflict 同一 (meme, user) 并发插入触发唯一键冲突
	ErrLikeConflict = errors.New("like changed concurrently, retry")
	ErrTooFrequent  = errors.New("operation too frequent, retry later")

	ErrIndexNotFound     = meili.ErrIndexNotFound
	ErrEngineUnavailable = meili.ErrUnavailable
	ErrInvalidQuery      = meili.ErrInvalidRequest
)
