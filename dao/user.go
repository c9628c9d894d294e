package dao

import (
	"Memehub/models"
	"context"

	"gorm.io/gorm"
)

type UserDAO struct {
	Repo[models.User]
}

func NewUserDAO(db *gorm.DB) *UserDAO {
	return &UserDAO{Repo: NewRepo[models.User](db)}
}

// FindByID 不存在返回 nil, nil
func (d *UserDAO) FindByID(ctx context.Context, id string) (*models.User, error) {
	var items []models.User
	if err := d.Conn(ctx).Where("id = ?", id).Limit(1).Find(&items).Error; err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, nil
	}
	return &items[0], nil
}

// FindByIDs id -> 用户
func (d *UserDAO) FindByIDs(ctx context.Context, ids []string) (map[string]*models.User, error) {
	out := make(map[string]*models.User, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	var items []models.User
	if err := d.Conn(ctx).Where("id IN ?", ids).Find(&items).Error; err != nil {
		return nil, err
	}
	for i := range items {
		out[items[i].ID] = &items[i]
	}
	return out, nil
}
