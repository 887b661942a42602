package service

import (
	"social-network-backend/internal/errors"
	"social-network-backend/internal/model"
	"social-network-backend/internal/repository/interfaces"
	"social-network-backend/internal/util"

	"go.uber.org/zap"
)

// AdminServiceInterface 定义后台审核相关的方法
type AdminServiceInterface interface {
	ListPostsByStatus(status string, page, pageSize int) ([]*model.Post, int, error)
	ReviewPost(postID int, approve bool) (*model.Post, error)
}

type AdminService struct {
	postRepo interfaces.PostRepository
}

var _ AdminServiceInterface = (*AdminService)(nil)

func NewAdminService(postRepo interfaces.PostRepository) *AdminService {
	return &AdminService{postRepo: postRepo}
}

func (s *AdminService) ListPostsByStatus(status string, page, pageSize int) ([]*model.Post, int, error) {
	switch status {
	case model.PostStatusDraft, model.PostStatusPending, model.PostStatusApproved, model.PostStatusRejected:
	default:
		return nil, 0, errors.New(errors.ErrValidation, "无效的帖子状态: "+status)
	}
	if page < 1 {
		page = 1
	}

	posts, total, err := s.postRepo.ListByStatus(status, page, pageSize)
	if err != nil {
		return nil, 0, errors.Wrap(errors.ErrDatabase, "查询帖子列表失败", err)
	}
	return posts, total, nil
}

// ReviewPost 审核待发布的帖子，通过或驳回
func (s *AdminService) ReviewPost(postID int, approve bool) (*model.Post, error) {
	post, err := s.postRepo.FindByID(postID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询帖子失败", err)
	}
	if post == nil {
		return nil, errors.New(errors.ErrPostNotFound, "帖子不存在")
	}
	if post.Status != model.PostStatusPending {
		return nil, errors.New(errors.ErrValidation, "只有待审核的帖子可以被审核")
	}

	status := model.PostStatusRejected
	if approve {
		status = model.PostStatusApproved
	}

	if err := s.postRepo.UpdateStatus(postID, status); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "更新帖子状态失败", err)
	}
	post.Status = status

	util.Logger.Info("帖子审核完成", zap.Int("post_id", postID), zap.String("status", status))
	return post, nil
}
