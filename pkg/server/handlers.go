package server

import (
	"Memehub/handler"
)

type Handlers struct {
	Like        *handler.Like
	SearchSetup *handler.SearchSetup
	Search      *handler.Search
	Hook        *handler.Hook
	WebSocket   *handler.WebSocket
}
