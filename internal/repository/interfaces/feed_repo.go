package interfaces

import (
	"time"

	"social-network-backend/internal/model"
)

// FeedRepository 定义了信息流三个层级的查询接口。
// 三个查询的过滤条件互斥，保证同一帖子不会出现在多个层级中。
type FeedRepository interface {
	// FollowedUnseen 关注作者的未读已批准帖子，按创建时间倒序
	FollowedUnseen(userID, limit int) ([]*model.Post, error)
	// FollowedSeen 关注作者的已读已批准帖子，按创建时间倒序
	FollowedSeen(userID, limit int) ([]*model.Post, error)
	// TrendingCandidates 未关注作者在 since 之后发布的未读已批准帖子，
	// 带点赞/评论/分享计数，排序由调用方按热度完成
	TrendingCandidates(userID int, since time.Time) ([]*model.Post, error)
}
