package service

import (
	"social-network-backend/internal/errors"
	"social-network-backend/internal/model"
	"social-network-backend/internal/repository/interfaces"
	"social-network-backend/internal/util"

	"go.uber.org/zap"
)

// SocialServiceInterface 定义点赞、评论、分享、关注和浏览回执的方法
type SocialServiceInterface interface {
	LikePost(userID, postID int) (*model.Like, bool, error)
	UnlikePost(userID, postID int) error
	CreateComment(userID, postID int, parentID *int, content string) (*model.Comment, error)
	UpdateComment(userID, commentID int, content string) (*model.Comment, error)
	DeleteComment(userID, commentID int) (int, error)
	ListComments(postID int) ([]*model.Comment, error)
	SharePost(userID, postID int) (*model.Share, error)
	FollowUser(followerID, followingID int) (*model.Follow, bool, error)
	UnfollowUser(followerID, followingID int) error
	GetFollowStatus(followerID, followingID int) (bool, error)
	GetFollowers(userID, page, pageSize int) ([]*model.User, int, error)
	GetFollowing(userID, page, pageSize int) ([]*model.User, int, error)
	RecordView(userID, postID int) error
}

type SocialService struct {
	socialRepo interfaces.SocialRepository
	postRepo   interfaces.PostRepository
	userRepo   interfaces.UserRepository
}

var _ SocialServiceInterface = (*SocialService)(nil)

func NewSocialService(socialRepo interfaces.SocialRepository, postRepo interfaces.PostRepository, userRepo interfaces.UserRepository) *SocialService {
	return &SocialService{
		socialRepo: socialRepo,
		postRepo:   postRepo,
		userRepo:   userRepo,
	}
}

// 互动只允许发生在已批准的帖子上
func (s *SocialService) findApprovedPost(postID int) (*model.Post, error) {
	post, err := s.postRepo.FindByID(postID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询帖子失败", err)
	}
	if post == nil {
		return nil, errors.New(errors.ErrPostNotFound, "帖子不存在")
	}
	if post.Status != model.PostStatusApproved {
		return nil, errors.New(errors.ErrPostNotApproved, "帖子尚未发布")
	}
	return post, nil
}

// LikePost 幂等点赞。只有真正创建点赞的请求才会给作者发通知，
// 给自己的帖子点赞不发通知。返回是否为新建。
func (s *SocialService) LikePost(userID, postID int) (*model.Like, bool, error) {
	post, err := s.findApprovedPost(postID)
	if err != nil {
		return nil, false, err
	}

	like := &model.Like{UserID: userID, PostID: postID}
	var notif *model.Notification
	if post.UserID != userID {
		notif = &model.Notification{
			RecipientID: post.UserID,
			SenderID:    userID,
			Type:        model.NotificationTypeLike,
			PostID:      &postID,
		}
	}

	created, err := s.socialRepo.CreateLike(like, notif)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrDatabase, "点赞失败", err)
	}

	if created {
		util.Logger.Info("帖子被点赞", zap.Int("post_id", postID), zap.Int("user_id", userID))
	}
	return like, created, nil
}

// UnlikePost 取消不存在的点赞静默成功
func (s *SocialService) UnlikePost(userID, postID int) error {
	if err := s.socialRepo.DeleteLike(userID, postID); err != nil {
		return errors.Wrap(errors.ErrDatabase, "取消点赞失败", err)
	}
	return nil
}

// CreateComment 创建评论或回复。父评论必须属于同一帖子。
// 通知规则：帖子作者收到通知（评论者不是作者时），
// 回复时父评论作者也收到通知（父评论作者不是评论者也不是帖子作者时），
// 每条评论最多产生两条通知。
func (s *SocialService) CreateComment(userID, postID int, parentID *int, content string) (*model.Comment, error) {
	if content == "" {
		return nil, errors.New(errors.ErrValidation, "评论内容不能为空")
	}

	post, err := s.findApprovedPost(postID)
	if err != nil {
		return nil, err
	}

	var parent *model.Comment
	if parentID != nil {
		parent, err = s.socialRepo.FindCommentByID(*parentID)
		if err != nil {
			return nil, errors.Wrap(errors.ErrDatabase, "查询父评论失败", err)
		}
		if parent == nil {
			return nil, errors.New(errors.ErrCommentNotFound, "父评论不存在")
		}
		if parent.PostID != postID {
			return nil, errors.New(errors.ErrValidation, "父评论不属于该帖子")
		}
	}

	comment := &model.Comment{
		UserID:   userID,
		PostID:   postID,
		ParentID: parentID,
		Content:  content,
	}

	var notifs []*model.Notification
	if post.UserID != userID {
		notifs = append(notifs, &model.Notification{
			RecipientID: post.UserID,
			SenderID:    userID,
			Type:        model.NotificationTypeComment,
			PostID:      &postID,
		})
	}
	if parent != nil && parent.UserID != userID && parent.UserID != post.UserID {
		notifs = append(notifs, &model.Notification{
			RecipientID: parent.UserID,
			SenderID:    userID,
			Type:        model.NotificationTypeComment,
			PostID:      &postID,
		})
	}

	if err := s.socialRepo.CreateComment(comment, notifs); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "创建评论失败", err)
	}

	util.Logger.Info("评论创建成功",
		zap.Int("comment_id", comment.ID),
		zap.Int("post_id", postID),
		zap.Int("notifications", len(notifs)))
	return comment, nil
}

// UpdateComment 仅评论作者可修改
func (s *SocialService) UpdateComment(userID, commentID int, content string) (*model.Comment, error) {
	if content == "" {
		return nil, errors.New(errors.ErrValidation, "评论内容不能为空")
	}

	comment, err := s.socialRepo.FindCommentByID(commentID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询评论失败", err)
	}
	if comment == nil {
		return nil, errors.New(errors.ErrCommentNotFound, "评论不存在")
	}
	if comment.UserID != userID {
		return nil, errors.New(errors.ErrForbidden, "只有作者可以修改评论")
	}

	comment.Content = content
	if err := s.socialRepo.UpdateComment(comment); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "更新评论失败", err)
	}
	return comment, nil
}

// DeleteComment 评论作者或帖子作者可删除，连同所有后代回复一起删除，
// 返回删除的评论数
func (s *SocialService) DeleteComment(userID, commentID int) (int, error) {
	comment, err := s.socialRepo.FindCommentByID(commentID)
	if err != nil {
		return 0, errors.Wrap(errors.ErrDatabase, "查询评论失败", err)
	}
	if comment == nil {
		return 0, errors.New(errors.ErrCommentNotFound, "评论不存在")
	}

	if comment.UserID != userID {
		post, err := s.postRepo.FindByID(comment.PostID)
		if err != nil {
			return 0, errors.Wrap(errors.ErrDatabase, "查询帖子失败", err)
		}
		if post == nil || post.UserID != userID {
			return 0, errors.New(errors.ErrForbidden, "没有权限删除该评论")
		}
	}

	deleted, err := s.socialRepo.DeleteCommentTree(commentID)
	if err != nil {
		return 0, errors.Wrap(errors.ErrDatabase, "删除评论失败", err)
	}

	util.Logger.Info("评论已删除", zap.Int("comment_id", commentID), zap.Int("deleted", deleted))
	return deleted, nil
}

func (s *SocialService) ListComments(postID int) ([]*model.Comment, error) {
	if _, err := s.findApprovedPost(postID); err != nil {
		return nil, err
	}

	comments, err := s.socialRepo.ListCommentsByPost(postID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询评论失败", err)
	}
	return BuildCommentTree(comments), nil
}

// SharePost 分享不去重，每次分享都创建新记录；分享自己的帖子不发通知
func (s *SocialService) SharePost(userID, postID int) (*model.Share, error) {
	post, err := s.findApprovedPost(postID)
	if err != nil {
		return nil, err
	}

	share := &model.Share{UserID: userID, PostID: postID}
	var notif *model.Notification
	if post.UserID != userID {
		notif = &model.Notification{
			RecipientID: post.UserID,
			SenderID:    userID,
			Type:        model.NotificationTypeShare,
			PostID:      &postID,
		}
	}

	if err := s.socialRepo.CreateShare(share, notif); err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "分享失败", err)
	}

	util.Logger.Info("帖子被分享", zap.Int("post_id", postID), zap.Int("user_id", userID))
	return share, nil
}

// FollowUser 幂等关注。不允许关注自己。只有真正建立关注的请求才发通知。
func (s *SocialService) FollowUser(followerID, followingID int) (*model.Follow, bool, error) {
	if followerID == followingID {
		return nil, false, errors.New(errors.ErrValidation, "不能关注自己")
	}

	target, err := s.userRepo.FindByID(followingID)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrDatabase, "查询用户失败", err)
	}
	if target == nil {
		return nil, false, errors.New(errors.ErrUserNotFound, "用户不存在")
	}

	follow := &model.Follow{FollowerID: followerID, FollowingID: followingID}
	notif := &model.Notification{
		RecipientID: followingID,
		SenderID:    followerID,
		Type:        model.NotificationTypeFollow,
	}

	created, err := s.socialRepo.CreateFollow(follow, notif)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrDatabase, "关注失败", err)
	}

	if created {
		util.Logger.Info("建立关注",
			zap.Int("follower_id", followerID),
			zap.Int("following_id", followingID))
	}
	return follow, created, nil
}

// UnfollowUser 取消不存在的关注静默成功
func (s *SocialService) UnfollowUser(followerID, followingID int) error {
	if err := s.socialRepo.DeleteFollow(followerID, followingID); err != nil {
		return errors.Wrap(errors.ErrDatabase, "取消关注失败", err)
	}
	return nil
}

func (s *SocialService) GetFollowStatus(followerID, followingID int) (bool, error) {
	following, err := s.socialRepo.IsFollowing(followerID, followingID)
	if err != nil {
		return false, errors.Wrap(errors.ErrDatabase, "查询关注状态失败", err)
	}
	return following, nil
}

func (s *SocialService) GetFollowers(userID, page, pageSize int) ([]*model.User, int, error) {
	users, err := s.socialRepo.Followers(userID, page, pageSize)
	if err != nil {
		return nil, 0, errors.Wrap(errors.ErrDatabase, "查询粉丝列表失败", err)
	}
	total, err := s.socialRepo.FollowerCount(userID)
	if err != nil {
		return nil, 0, errors.Wrap(errors.ErrDatabase, "统计粉丝数失败", err)
	}
	return users, total, nil
}

func (s *SocialService) GetFollowing(userID, page, pageSize int) ([]*model.User, int, error) {
	users, err := s.socialRepo.Following(userID, page, pageSize)
	if err != nil {
		return nil, 0, errors.Wrap(errors.ErrDatabase, "查询关注列表失败", err)
	}
	total, err := s.socialRepo.FollowingCount(userID)
	if err != nil {
		return nil, 0, errors.Wrap(errors.ErrDatabase, "统计关注数失败", err)
	}
	return users, total, nil
}

// RecordView 记录浏览回执，自己的帖子不记录
func (s *SocialService) RecordView(userID, postID int) error {
	post, err := s.findApprovedPost(postID)
	if err != nil {
		return err
	}
	if post.UserID == userID {
		return nil
	}

	view := &model.PostView{UserID: userID, PostID: postID}
	if err := s.socialRepo.CreateView(view); err != nil {
		return errors.Wrap(errors.ErrDatabase, "记录浏览回执失败", err)
	}
	return nil
}
