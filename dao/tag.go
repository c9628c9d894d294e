package dao

import (
	"Memehub/models"
	"context"

	"gorm.io/gorm"
)

type TagDAO struct {
	Repo[models.Tag]
}

func NewTagDAO(db *gorm.DB) *TagDAO {
	return &TagDAO{Repo: NewRepo[models.Tag](db)}
}

type memeTagName struct {
	MemeID uint64
	Name   string
}

// NamesByMemeIDs meme id -> 标签名，按关联创建顺序
func (d *TagDAO) NamesByMemeIDs(ctx context.Context, memeIDs []uint64) (map[uint64][]string, error) {
	out := make(map[uint64][]string, len(memeIDs))
	if len(memeIDs) == 0 {
		return out, nil
	}

	var rows []memeTagName
	err := d.Conn(ctx).Table("memes_tags").
		Select("memes_tags.memes_id AS meme_id, tags.name AS name").
		Joins("JOIN tags ON tags.id = memes_tags.tags_id").
		Where("memes_tags.memes_id IN ?", memeIDs).
		Order("memes_tags.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, r := range rows {
		if r.Name == "" {
			continue
		}
		out[r.MemeID] = append(out[r.MemeID], r.Name)
	}
	return out, nil
}
