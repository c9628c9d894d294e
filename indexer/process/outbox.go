package process

import (
	"context"
	"errors"

	"Memehub/service"
)

// OutboxSubscribe 把 search_index_outbox 落到搜索引擎
type OutboxSubscribe struct {
	Worker *service.OutboxWorker
}

func (s *OutboxSubscribe) Init() error {
	return nil
}

func (s *OutboxSubscribe) Setup(ctx context.Context) error {
	if err := s.Worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}
