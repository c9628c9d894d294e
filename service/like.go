package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"Memehub/config"
	"Memehub/dao"
	"Memehub/dao/cache"
	"Memehub/models"
	"Memehub/pkg/log"
	"Memehub/types"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

var _ ILikeService = (*LikeService)(nil)

type ILikeService interface {
	Toggle(ctx context.Context, memeID uint64, userID string) (*types.ToggleLikeResponse, error)
	Status(ctx context.Context, memeID uint64, userID string) (*types.LikeStatusResponse, error)
}

type LikeService struct {
	Config      *config.Config
	Tx          *dao.Tx
	MemeDAO     *dao.MemeDAO
	MemeLikeDAO *dao.MemeLikeDAO
	UserDAO     *dao.UserDAO
	OutboxDAO   *dao.IndexOutboxDAO
	Locker      cache.Locker
	Notifier    INotifier
}

func likeLockKey(memeID uint64, userID string) string {
	return fmt.Sprintf("lock:meme:like:%d:%s", memeID, userID)
}

// Toggle 已点赞则取消，否则点赞
// 点赞记录、计数与索引变更在同一事务内提交，计数按点赞表重新统计
func (s *LikeService) Toggle(ctx context.Context, memeID uint64, userID string) (*types.ToggleLikeResponse, error) {
	if memeID == 0 || userID == "" {
		return nil, ErrInvalidArgument
	}

	// 1. 分布式锁，同一用户对同一 meme 的操作串行
	lockKey := likeLockKey(memeID, userID)
	token, ok, err := s.Locker.Lock(ctx, lockKey, s.Config.Redis.LockTTL)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, ErrTooFrequent
	}
	defer func() {
		if err := s.Locker.Unlock(context.WithoutCancel(ctx), lockKey, token); err != nil {
			log.L.Warn("release like lock", zap.String("key", lockKey), zap.Error(err))
		}
	}()

	meme, err := s.MemeDAO.FindByID(ctx, memeID)
	if err != nil {
		return nil, err
	}
	if meme == nil {
		return nil, ErrMemeNotFound
	}

	// 2. 事务内切换点赞状态并重算计数
	var (
		action string
		likes  int64
	)
	err = s.Tx.Do(ctx, func(ctx context.Context) error {
		removed, err := s.MemeLikeDAO.Remove(ctx, memeID, userID)
		if err != nil {
			return err
		}
		if removed > 0 {
			action = types.ActionUnliked
		} else {
			if err := s.MemeLikeDAO.Add(ctx, memeID, userID); err != nil {
				if errors.Is(err, gorm.ErrDuplicatedKey) {
					return ErrLikeConflict
				}
				return err
			}
			action = types.ActionLiked
		}

		if likes, err = s.MemeDAO.RecomputeLikes(ctx, memeID); err != nil {
			return err
		}
		return s.OutboxDAO.Enqueue(ctx, &models.IndexOutbox{
			MemeID: memeID,
			Op:     models.OutboxOpUpsert,
			Source: models.SourceLike,
		})
	})
	if err != nil {
		return nil, err
	}

	// 3. 通知，失败不影响结果
	s.notify(ctx, memeID, userID, action)

	message := "meme liked"
	if action == types.ActionUnliked {
		message = "like removed"
	}
	return &types.ToggleLikeResponse{
		Success: true,
		Action:  action,
		Message: message,
		Data: types.ToggleLikeData{
			MemeID:       memeID,
			UserID:       userID,
			LikesCount:   likes,
			UserHasLiked: action == types.ActionLiked,
		},
	}, nil
}

func (s *LikeService) notify(ctx context.Context, memeID uint64, userID string, action string) {
	if s.Notifier == nil {
		return
	}
	meme, err := s.MemeDAO.FindByID(ctx, memeID)
	if err != nil || meme == nil {
		log.L.Warn("reload meme for notification", zap.Uint64("meme_id", memeID), zap.Error(err))
		return
	}

	msg := &types.LikeNotification{
		Type:   "like_event",
		Action: action,
		Meme: types.NotifyMeme{
			ID:    meme.ID,
			Title: meme.Title,
			Likes: int64(meme.Likes),
		},
		Timestamp: time.Now().UTC().Format(time.RFC3339),
	}
	if meme.UserCreated != nil {
		if author, err := s.UserDAO.FindByID(ctx, *meme.UserCreated); err == nil && author != nil {
			msg.Meme.Author = &types.NotifyAuthor{ID: author.ID, FirstName: author.FirstName, LastName: author.LastName}
		}
	}
	if user, err := s.UserDAO.FindByID(ctx, userID); err == nil && user != nil {
		msg.User = types.NotifyUser{Name: user.DisplayName(), Email: user.Email}
	}

	s.Notifier.LikeChanged(ctx, msg)
}

func (s *LikeService) Status(ctx context.Context, memeID uint64, userID string) (*types.LikeStatusResponse, error) {
	meme, err := s.MemeDAO.FindByID(ctx, memeID)
	if err != nil {
		return nil, err
	}
	if meme == nil {
		return nil, ErrMemeNotFound
	}

	liked, err := s.MemeLikeDAO.IsLiked(ctx, memeID, userID)
	if err != nil {
		return nil, err
	}
	return &types.LikeStatusResponse{
		MemeID:       memeID,
		UserHasLiked: liked,
		TotalLikes:   int64(meme.Likes),
	}, nil
}
