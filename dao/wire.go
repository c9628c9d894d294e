//go:build wireinject

package dao

import (
	"Memehub/dao/cache"

	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	NewTx,
	NewMemeDAO,
	NewMemeLikeDAO,
	NewUserDAO,
	NewTagDAO,
	NewIndexOutboxDAO,

	cache.NewRedisLock,
	wire.Bind(new(cache.Locker), new(*cache.RedisLock)),
)
