package model

import "time"

// Like (user, post) 唯一对，重复点赞返回已有记录
type Like struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	PostID    int       `json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

type Comment struct {
	ID        int        `json:"id"`
	UserID    int        `json:"user_id"`
	PostID    int        `json:"post_id"`
	ParentID  *int       `json:"parent_id,omitempty"`
	Content   string     `json:"content"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	User      *User      `json:"user,omitempty"`
	Replies   []*Comment `json:"replies,omitempty"`
}

// Share 不唯一，同一用户可多次分享同一帖子
type Share struct {
	ID        int       `json:"id"`
	UserID    int       `json:"user_id"`
	PostID    int       `json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}

// Follow (follower, following) 唯一对，禁止自己关注自己
type Follow struct {
	ID          int       `json:"id"`
	FollowerID  int       `json:"follower_id"`
	FollowingID int       `json:"following_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// PostView 帖子浏览回执，每个 (user, post) 只记录一次
type PostView struct {
	ID       int       `json:"id"`
	UserID   int       `json:"user_id"`
	PostID   int       `json:"post_id"`
	ViewedAt time.Time `json:"viewed_at"`
}
