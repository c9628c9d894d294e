package models

type Tag struct {
	ID   uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Name string `gorm:"column:name;size:64;not null" json:"name"`
}

func (Tag) TableName() string { return "tags" }

// MemeTag memes 与 tags 的多对多关联表
type MemeTag struct {
	ID     uint64 `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	MemeID uint64 `gorm:"column:memes_id;not null;index" json:"memes_id"`
	TagID  uint64 `gorm:"column:tags_id;not null;index" json:"tags_id"`
}

func (MemeTag) TableName() string { return "memes_tags" }
