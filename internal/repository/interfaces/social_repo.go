package interfaces

import "social-network-backend/internal/model"

// SocialRepository 定义了点赞、评论、分享、关注和浏览回执的数据库操作接口。
// 所有带通知参数的创建操作必须在同一事务内完成：要么行和通知一起提交，要么都不提交。
type SocialRepository interface {
	// CreateLike 幂等创建点赞；唯一键冲突时返回已有记录且不产生通知
	CreateLike(like *model.Like, notif *model.Notification) (created bool, err error)
	FindLike(userID, postID int) (*model.Like, error)
	DeleteLike(userID, postID int) error

	CreateComment(comment *model.Comment, notifs []*model.Notification) error
	FindCommentByID(id int) (*model.Comment, error)
	UpdateComment(comment *model.Comment) error
	// DeleteCommentTree 递归删除评论及其所有后代回复，返回删除的行数
	DeleteCommentTree(id int) (int, error)
	ListCommentsByPost(postID int) ([]*model.Comment, error)

	CreateShare(share *model.Share, notif *model.Notification) error

	// CreateFollow 幂等创建关注；唯一键冲突时返回已有记录且不产生通知
	CreateFollow(follow *model.Follow, notif *model.Notification) (created bool, err error)
	FindFollow(followerID, followingID int) (*model.Follow, error)
	DeleteFollow(followerID, followingID int) error
	IsFollowing(followerID, followingID int) (bool, error)
	Followers(userID, page, pageSize int) ([]*model.User, error)
	Following(userID, page, pageSize int) ([]*model.User, error)
	FollowerCount(userID int) (int, error)
	FollowingCount(userID int) (int, error)

	// CreateView 记录浏览回执，重复浏览静默忽略
	CreateView(view *model.PostView) error
}
