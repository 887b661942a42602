package service

import (
	"social-network-backend/internal/errors"
	"social-network-backend/internal/model"
	"social-network-backend/internal/repository/interfaces"
	"social-network-backend/internal/util"

	"go.uber.org/zap"
)

// PostServiceInterface 定义帖子服务的方法
type PostServiceInterface interface {
	CreatePost(post *model.Post) error
	GetPost(postID, viewerID int) (*model.Post, error)
	UpdatePost(userID int, post *model.Post) (*model.Post, error)
	DeletePost(userID, postID int) error
	ListApproved(viewerID, page, pageSize int) ([]*model.Post, int, error)
	ListByUser(targetUserID, viewerID, page, pageSize int) ([]*model.Post, int, error)
}

type PostService struct {
	postRepo   interfaces.PostRepository
	socialRepo interfaces.SocialRepository
}

var _ PostServiceInterface = (*PostService)(nil)

func NewPostService(postRepo interfaces.PostRepository, socialRepo interfaces.SocialRepository) *PostService {
	return &PostService{
		postRepo:   postRepo,
		socialRepo: socialRepo,
	}
}

func validatePost(post *model.Post) error {
	if post.Title == "" {
		return errors.New(errors.ErrValidation, "标题不能为空")
	}
	if !model.ValidPostType(post.PostType) {
		return errors.New(errors.ErrValidation, "无效的帖子类型: "+post.PostType)
	}
	switch post.PostType {
	case model.PostTypeMedia:
		if post.MediaURL == "" {
			return errors.New(errors.ErrValidation, "媒体帖子必须包含媒体地址")
		}
	case model.PostTypeLink:
		if post.Link == "" {
			return errors.New(errors.ErrValidation, "链接帖子必须包含链接")
		}
	}
	return nil
}

func (s *PostService) CreatePost(post *model.Post) error {
	if err := validatePost(post); err != nil {
		return err
	}

	if post.Status == "" {
		post.Status = model.PostStatusApproved
	}
	if post.Status != model.PostStatusDraft && post.Status != model.PostStatusApproved {
		return errors.New(errors.ErrValidation, "新帖子状态只能是 draft 或 approved")
	}

	if err := s.postRepo.Create(post); err != nil {
		return errors.Wrap(errors.ErrDatabase, "创建帖子失败", err)
	}
	return nil
}

// annotate 填充实时计数和点赞状态，热度分数不落库
func (s *PostService) annotate(post *model.Post, viewerID int) error {
	likes, comments, shares, err := s.postRepo.Counts(post.ID)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "统计帖子计数失败", err)
	}
	post.LikeCount = likes
	post.CommentCount = comments
	post.ShareCount = shares

	if viewerID > 0 {
		liked, err := s.postRepo.IsLikedBy(post.ID, viewerID)
		if err != nil {
			return errors.Wrap(errors.ErrDatabase, "查询点赞状态失败", err)
		}
		post.IsLiked = liked
	}
	return nil
}

// GetPost 返回帖子详情：计数、点赞状态和评论树，并记录浏览回执。
// 未批准的帖子只对作者可见。
func (s *PostService) GetPost(postID, viewerID int) (*model.Post, error) {
	post, err := s.postRepo.FindByID(postID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询帖子失败", err)
	}
	if post == nil {
		return nil, errors.New(errors.ErrPostNotFound, "帖子不存在")
	}
	if post.Status != model.PostStatusApproved && post.UserID != viewerID {
		return nil, errors.New(errors.ErrPostNotFound, "帖子不存在")
	}

	if err := s.annotate(post, viewerID); err != nil {
		return nil, err
	}

	comments, err := s.socialRepo.ListCommentsByPost(postID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询评论失败", err)
	}
	post.Comments = BuildCommentTree(comments)

	// 浏览自己的帖子不产生回执
	if viewerID > 0 && viewerID != post.UserID {
		view := &model.PostView{UserID: viewerID, PostID: postID}
		if err := s.socialRepo.CreateView(view); err != nil {
			util.Logger.Warn("记录浏览回执失败", zap.Error(err),
				zap.Int("post_id", postID), zap.Int("user_id", viewerID))
		}
	}

	return post, nil
}

// UpdatePost 仅作者可更新
func (s *PostService) UpdatePost(userID int, post *model.Post) (*model.Post, error) {
	existing, err := s.postRepo.FindByID(post.ID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询帖子失败", err)
	}
	if existing == nil {
		return nil, errors.New(errors.ErrPostNotFound, "帖子不存在")
	}
	if existing.UserID != userID {
		return nil, errors.New(errors.ErrForbidden, "只有作者可以修改帖子")
	}

	existing.Title = post.Title
	existing.PostType = post.PostType
	existing.Content = post.Content
	existing.MediaURL = post.MediaURL
	existing.Link = post.Link
	existing.Tags = post.Tags

	if err := validatePost(existing); err != nil {
		return nil, err
	}

	if err := s.postRepo.Update(existing); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "更新帖子失败", err)
	}
	return existing, nil
}

// DeletePost 仅作者可删除
func (s *PostService) DeletePost(userID, postID int) error {
	existing, err := s.postRepo.FindByID(postID)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "查询帖子失败", err)
	}
	if existing == nil {
		return errors.New(errors.ErrPostNotFound, "帖子不存在")
	}
	if existing.UserID != userID {
		return errors.New(errors.ErrForbidden, "只有作者可以删除帖子")
	}

	if err := s.postRepo.Delete(postID); err != nil {
		return errors.Wrap(errors.ErrDatabase, "删除帖子失败", err)
	}
	return nil
}

func (s *PostService) ListApproved(viewerID, page, pageSize int) ([]*model.Post, int, error) {
	if page < 1 {
		page = 1
	}
	posts, total, err := s.postRepo.ListApproved(page, pageSize)
	if err != nil {
		return nil, 0, errors.Wrap(errors.ErrDatabase, "查询帖子列表失败", err)
	}
	for _, post := range posts {
		if err := s.annotate(post, viewerID); err != nil {
			return nil, 0, err
		}
	}
	return posts, total, nil
}

// ListByUser 查看某用户的帖子，作者本人可见未批准的帖子
func (s *PostService) ListByUser(targetUserID, viewerID, page, pageSize int) ([]*model.Post, int, error) {
	if page < 1 {
		page = 1
	}
	includeUnapproved := targetUserID == viewerID
	posts, total, err := s.postRepo.ListByUser(targetUserID, includeUnapproved, page, pageSize)
	if err != nil {
		return nil, 0, errors.Wrap(errors.ErrDatabase, "查询帖子列表失败", err)
	}
	for _, post := range posts {
		if err := s.annotate(post, viewerID); err != nil {
			return nil, 0, err
		}
	}
	return posts, total, nil
}
