package types

const (
	ActionLiked   = "liked"
	ActionUnliked = "unliked"
)

// ToggleLikeRequest 点赞/取消点赞
type ToggleLikeRequest struct {
	MemeID ID `json:"meme_id"`
}

type ToggleLikeData struct {
	MemeID       uint64 `json:"meme_id"`
	UserID       string `json:"user_id"`
	LikesCount   int64  `json:"likes_count"`
	UserHasLiked bool   `json:"user_has_liked"`
}

type ToggleLikeResponse struct {
	Success bool           `json:"success"`
	Action  string         `json:"action"`
	Message string         `json:"message"`
	Data    ToggleLikeData `json:"data"`
}

// LikeStatusResponse 当前用户对 meme 的点赞状态
type LikeStatusResponse struct {
	MemeID       uint64 `json:"meme_id"`
	UserHasLiked bool   `json:"user_has_liked"`
	TotalLikes   int64  `json:"total_likes"`
}

type NotifyAuthor struct {
	ID        string `json:"id,omitempty"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type NotifyMeme struct {
	ID     uint64        `json:"id"`
	Title  string        `json:"title"`
	Likes  int64         `json:"likes"`
	Author *NotifyAuthor `json:"author"`
}

type NotifyUser struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// LikeNotification 推送给 websocket 与 MQ 的点赞事件
type LikeNotification struct {
	Type      string     `json:"type"`
	Action    string     `json:"action"`
	Meme      NotifyMeme `json:"meme"`
	User      NotifyUser `json:"user"`
	Timestamp string     `json:"timestamp"`
}
