package service

import (
	"context"
	"strings"

	"Memehub/dao"
	"Memehub/models"
)

const documentCollection = "memes"

// SearchDocument 索引中的 meme 文档，可随时由数据库重建
type SearchDocument struct {
	ID                uint64   `json:"id"`
	Title             string   `json:"title"`
	SearchableContent string   `json:"searchable_content"`
	Tags              []string `json:"tags"`
	Creator           string   `json:"creator"`
	CreatorID         string   `json:"creator_id"`
	Likes             int64    `json:"likes"`
	Views             int64    `json:"views"`
	Status            string   `json:"status"`
	// DateCreated unix 秒，便于数值过滤与排序
	DateCreated int64  `json:"date_created"`
	Collection  string `json:"collection"`
}

// ToDocument 未发布的 meme 返回 nil，调用方据此从索引删除
// 增量同步与全量导入共用这一规则
func ToDocument(m *models.Meme, creator *models.User, tags []string) *SearchDocument {
	if !m.Published() {
		return nil
	}
	if tags == nil {
		tags = []string{}
	}

	doc := &SearchDocument{
		ID:                m.ID,
		Title:             m.Title,
		SearchableContent: m.Title + " " + m.Description,
		Tags:              tags,
		Creator:           strings.TrimSpace(creator.DisplayName()),
		Likes:             int64(m.Likes),
		Views:             int64(m.Views),
		Status:            m.Status,
		Collection:        documentCollection,
	}
	if m.UserCreated != nil {
		doc.CreatorID = *m.UserCreated
	}
	if m.DateCreated != nil {
		doc.DateCreated = m.DateCreated.Unix()
	}
	return doc
}

// DocumentBuilder 从数据库读取 meme 及其作者、标签并组装文档
type DocumentBuilder struct {
	MemeDAO *dao.MemeDAO
	UserDAO *dao.UserDAO
	TagDAO  *dao.TagDAO
}

// BuildDocument meme 不存在或未发布时返回 nil, nil
func (b *DocumentBuilder) BuildDocument(ctx context.Context, memeID uint64) (*SearchDocument, error) {
	meme, err := b.MemeDAO.FindByID(ctx, memeID)
	if err != nil {
		return nil, err
	}
	if meme == nil || !meme.Published() {
		return nil, nil
	}
	docs, err := b.BuildDocuments(ctx, []models.Meme{*meme})
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, nil
	}
	return &docs[0], nil
}

// BuildDocuments 批量组装，跳过未发布的 meme
func (b *DocumentBuilder) BuildDocuments(ctx context.Context, memes []models.Meme) ([]SearchDocument, error) {
	var (
		ids     = make([]uint64, 0, len(memes))
		userIDs = make([]string, 0, len(memes))
		seen    = make(map[string]struct{})
	)
	for i := range memes {
		if !memes[i].Published() {
			continue
		}
		ids = append(ids, memes[i].ID)
		if uid := memes[i].UserCreated; uid != nil && *uid != "" {
			if _, ok := seen[*uid]; !ok {
				seen[*uid] = struct{}{}
				userIDs = append(userIDs, *uid)
			}
		}
	}
	if len(ids) == 0 {
		return []SearchDocument{}, nil
	}

	users, err := b.UserDAO.FindByIDs(ctx, userIDs)
	if err != nil {
		return nil, err
	}
	tags, err := b.TagDAO.NamesByMemeIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	docs := make([]SearchDocument, 0, len(ids))
	for i := range memes {
		m := &memes[i]
		var creator *models.User
		if m.UserCreated != nil {
			creator = users[*m.UserCreated]
		}
		if doc := ToDocument(m, creator, tags[m.ID]); doc != nil {
			docs = append(docs, *doc)
		}
	}
	return docs, nil
}
