package models

import (
	"database/sql/driver"
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	MemeStatusPublished = "published"
	MemeStatusDraft     = "draft"
	MemeStatusArchived  = "archived"
)

// Meme 对应 CMS 的 memes 集合
type Meme struct {
	ID          uint64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	Status      string     `gorm:"column:status;size:32;not null;default:draft;index" json:"status"`
	Title       string     `gorm:"column:title;size:255" json:"title"`
	Description string     `gorm:"column:description;type:text" json:"description"`
	Likes       Counter    `gorm:"column:likes;not null;default:0" json:"likes"`
	Views       Counter    `gorm:"column:views;not null;default:0" json:"views"`
	UserCreated *string    `gorm:"column:user_created;size:36;index" json:"user_created"`
	DateCreated *time.Time `gorm:"column:date_created" json:"date_created"`
	DateUpdated *time.Time `gorm:"column:date_updated" json:"date_updated"`
}

func (Meme) TableName() string { return "memes" }

func (m *Meme) Published() bool {
	return m != nil && m.Status == MemeStatusPublished
}

// Counter 计数列，历史数据里可能存了非数字，读取时一律按 0 处理
type Counter int64

func (c *Counter) Scan(value any) error {
	*c = 0
	switch v := value.(type) {
	case nil:
	case int64:
		*c = Counter(v)
	case int32:
		*c = Counter(v)
	case int:
		*c = Counter(v)
	case uint64:
		*c = Counter(v)
	case float64:
		*c = Counter(v)
	case []byte:
		*c = ParseCounter(string(v))
	case string:
		*c = ParseCounter(v)
	default:
		*c = ParseCounter(fmt.Sprint(v))
	}
	return nil
}

func (c Counter) Value() (driver.Value, error) {
	return int64(c), nil
}

func (Counter) GormDataType() string {
	return "bigint"
}

// ParseCounter 取前导整数部分，解析失败返回 0
func ParseCounter(s string) Counter {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0
	}
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Counter(n)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return Counter(f)
	}
	// "12abc" 这类脏数据取前导数字
	end := 0
	for end < len(s) && (s[end] >= '0' && s[end] <= '9' || end == 0 && s[end] == '-') {
		end++
	}
	n, err := strconv.ParseInt(s[:end], 10, 64)
	if err != nil {
		return 0
	}
	return Counter(n)
}
