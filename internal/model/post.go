package model

import "time"

// 帖子类型
const (
	PostTypeText  = "text"
	PostTypeMedia = "media"
	PostTypeLink  = "link"
)

// 帖子状态，只有 approved 的帖子对其他用户可见
const (
	PostStatusDraft    = "draft"
	PostStatusPending  = "pending"
	PostStatusApproved = "approved"
	PostStatusRejected = "rejected"
)

type Post struct {
	ID           int        `json:"id"`
	UserID       int        `json:"user_id"`
	Title        string     `json:"title"`
	PostType     string     `json:"post_type"`
	Content      string     `json:"content"`
	MediaURL     string     `json:"media_url,omitempty"`
	Link         string     `json:"link,omitempty"`
	Tags         []string   `json:"tags"`
	Status       string     `json:"status"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`
	User         *User      `json:"user,omitempty"`
	LikeCount    int        `json:"like_count"`
	CommentCount int        `json:"comment_count"`
	ShareCount   int        `json:"share_count"`
	IsLiked      bool       `json:"is_liked"`
	Comments     []*Comment `json:"comments,omitempty"`
}

// ValidPostType 检查帖子类型是否合法
func ValidPostType(t string) bool {
	return t == PostTypeText || t == PostTypeMedia || t == PostTypeLink
}
