package dao

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

type txKey struct{}

// Repo 通用的单表操作，事务中自动使用 ctx 携带的 tx
type Repo[T any] struct {
	Db *gorm.DB
}

func NewRepo[T any](db *gorm.DB) Repo[T] {
	return Repo[T]{Db: db}
}

// Conn 当前上下文可用的连接
func (r *Repo[T]) Conn(ctx context.Context) *gorm.DB {
	if tx, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return tx
	}
	return r.Db.WithContext(ctx)
}

func (r *Repo[T]) Model(ctx context.Context) *gorm.DB {
	return r.Conn(ctx).Model(new(T))
}

// FindById 不存在时返回 gorm.ErrRecordNotFound
func (r *Repo[T]) FindById(ctx context.Context, id any) (*T, error) {
	var item T
	if err := r.Conn(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *Repo[T]) FindByWhere(ctx context.Context, where string, args ...any) (*T, error) {
	var item T
	if err := r.Conn(ctx).Where(where, args...).First(&item).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

func (r *Repo[T]) FindCount(ctx context.Context, where string, args ...any) (int64, error) {
	var count int64
	err := r.Model(ctx).Where(where, args...).Count(&count).Error
	return count, err
}

func (r *Repo[T]) IsExist(ctx context.Context, where string, args ...any) (bool, error) {
	var one int
	err := r.Model(ctx).Select("1").Where(where, args...).Limit(1).Scan(&one).Error
	if err != nil {
		return false, err
	}
	return one == 1, nil
}

func (r *Repo[T]) Create(ctx context.Context, item *T) error {
	return r.Conn(ctx).Create(item).Error
}

// Tx 开启事务，fn 内通过 ctx 调用的 dao 方法共用同一个 tx
type Tx struct {
	Db *gorm.DB
}

func NewTx(db *gorm.DB) *Tx {
	return &Tx{Db: db}
}

func (t *Tx) Do(ctx context.Context, fn func(ctx context.Context) error) error {
	// 已在事务中则直接复用
	if _, ok := ctx.Value(txKey{}).(*gorm.DB); ok {
		return fn(ctx)
	}
	return t.Db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(context.WithValue(ctx, txKey{}, tx))
	})
}

// IsNotFound gorm.ErrRecordNotFound 判断
func IsNotFound(err error) bool {
	return errors.Is(err, gorm.ErrRecordNotFound)
}
