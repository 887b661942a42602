package interfaces

import "social-network-backend/internal/model"

// PostRepository 定义了帖子相关的数据库操作接口
type PostRepository interface {
	Create(post *model.Post) error
	FindByID(id int) (*model.Post, error)
	Update(post *model.Post) error
	UpdateStatus(id int, status string) error
	Delete(id int) error
	ListApproved(page, pageSize int) ([]*model.Post, int, error)
	ListByUser(userID int, includeUnapproved bool, page, pageSize int) ([]*model.Post, int, error)
	ListByStatus(status string, page, pageSize int) ([]*model.Post, int, error)
	// Counts 返回帖子当前的点赞、评论、分享数，用于每次请求重新计算热度
	Counts(postID int) (likes, comments, shares int, err error)
	IsLikedBy(postID, userID int) (bool, error)
}
