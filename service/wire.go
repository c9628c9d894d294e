package service

import (
	"github.com/google/wire"
)

var ProviderSet = wire.NewSet(
	wire.Struct(new(DocumentBuilder), "*"),

	wire.Struct(new(Notifier), "*"),
	wire.Bind(new(INotifier), new(*Notifier)),

	wire.Struct(new(LikeService), "*"),
	wire.Bind(new(ILikeService), new(*LikeService)),

	wire.Struct(new(Synchronizer), "*"),
	wire.Bind(new(ISynchronizer), new(*Synchronizer)),

	wire.Struct(new(SetupService), "*"),
	wire.Bind(new(ISetupService), new(*SetupService)),

	wire.Struct(new(SearchService), "*"),
	wire.Bind(new(ISearchService), new(*SearchService)),

	wire.Struct(new(OutboxWorker), "*"),
)
