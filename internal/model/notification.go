package model

import "time"

// 通知类型
const (
	NotificationTypeLike    = "like"
	NotificationTypeComment = "comment"
	NotificationTypeShare   = "share"
	NotificationTypeFollow  = "follow"
)

// Notification 只能由内容变更的副作用创建，客户端不能直接创建。
// 生命周期：created(unread) → read → deleted。
type Notification struct {
	ID          int       `json:"id"`
	RecipientID int       `json:"recipient_id"`
	SenderID    int       `json:"sender_id"`
	Type        string    `json:"notification_type"`
	PostID      *int      `json:"post_id,omitempty"`
	CommentID   *int      `json:"comment_id,omitempty"`
	IsRead      bool      `json:"is_read"`
	CreatedAt   time.Time `json:"created_at"`
	Sender      *User     `json:"sender,omitempty"`
	PostTitle   string    `json:"post_title,omitempty"`
}
