package social

import (
	"strconv"

	"social-network-backend/internal/errors"
	"social-network-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// SocialHandler 处理点赞、评论、分享、关注相关的请求
type SocialHandler struct {
	socialService service.SocialServiceInterface
}

func NewSocialHandler(socialService service.SocialServiceInterface) *SocialHandler {
	return &SocialHandler{socialService: socialService}
}

func postIDParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrValidation, "无效的帖子ID"))
		return 0, false
	}
	return id, true
}

// LikePost 点赞，重复点赞返回已有记录
func (h *SocialHandler) LikePost(c *gin.Context) {
	postID, ok := postIDParam(c)
	if !ok {
		return
	}
	userID := c.GetInt("user_id")

	like, created, err := h.socialService.LikePost(userID, postID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	message := "已点赞"
	if !created {
		message = "已点赞过该帖子"
	}
	errors.HandleSuccess(c, like, message)
}

func (h *SocialHandler) UnlikePost(c *gin.Context) {
	postID, ok := postIDParam(c)
	if !ok {
		return
	}
	userID := c.GetInt("user_id")

	if err := h.socialService.UnlikePost(userID, postID); err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, nil, "已取消点赞")
}

type createCommentRequest struct {
	Content  string `json:"content" binding:"required,max=2000"`
	ParentID *int   `json:"parent_id"`
}

// CreateComment 评论或回复
func (h *SocialHandler) CreateComment(c *gin.Context) {
	postID, ok := postIDParam(c)
	if !ok {
		return
	}
	userID := c.GetInt("user_id")

	var req createCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "无效的请求参数", err))
		return
	}

	comment, err := h.socialService.CreateComment(userID, postID, req.ParentID, req.Content)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, comment, "评论成功")
}

func (h *SocialHandler) ListComments(c *gin.Context) {
	postID, ok := postIDParam(c)
	if !ok {
		return
	}

	comments, err := h.socialService.ListComments(postID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, comments, "")
}

type updateCommentRequest struct {
	Content string `json:"content" binding:"required,max=2000"`
}

func (h *SocialHandler) UpdateComment(c *gin.Context) {
	commentID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrValidation, "无效的评论ID"))
		return
	}
	userID := c.GetInt("user_id")

	var req updateCommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "无效的请求参数", err))
		return
	}

	comment, err := h.socialService.UpdateComment(userID, commentID, req.Content)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, comment, "评论已更新")
}

// DeleteComment 删除评论及其所有回复
func (h *SocialHandler) DeleteComment(c *gin.Context) {
	commentID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrValidation, "无效的评论ID"))
		return
	}
	userID := c.GetInt("user_id")

	deleted, err := h.socialService.DeleteComment(userID, commentID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, gin.H{"deleted": deleted}, "评论已删除")
}

// SharePost 分享帖子，不去重
func (h *SocialHandler) SharePost(c *gin.Context) {
	postID, ok := postIDParam(c)
	if !ok {
		return
	}
	userID := c.GetInt("user_id")

	share, err := h.socialService.SharePost(userID, postID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, share, "分享成功")
}

// RecordView 主动上报浏览回执
func (h *SocialHandler) RecordView(c *gin.Context) {
	postID, ok := postIDParam(c)
	if !ok {
		return
	}
	userID := c.GetInt("user_id")

	if err := h.socialService.RecordView(userID, postID); err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, nil, "")
}

func userIDParam(c *gin.Context) (int, bool) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrValidation, "无效的用户ID"))
		return 0, false
	}
	return id, true
}

// FollowUser 关注用户，重复关注返回已有记录
func (h *SocialHandler) FollowUser(c *gin.Context) {
	followingID, ok := userIDParam(c)
	if !ok {
		return
	}
	followerID := c.GetInt("user_id")

	follow, created, err := h.socialService.FollowUser(followerID, followingID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}

	message := "关注成功"
	if !created {
		message = "已关注该用户"
	}
	errors.HandleSuccess(c, follow, message)
}

func (h *SocialHandler) UnfollowUser(c *gin.Context) {
	followingID, ok := userIDParam(c)
	if !ok {
		return
	}
	followerID := c.GetInt("user_id")

	if err := h.socialService.UnfollowUser(followerID, followingID); err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, nil, "已取消关注")
}

func (h *SocialHandler) FollowStatus(c *gin.Context) {
	followingID, ok := userIDParam(c)
	if !ok {
		return
	}
	followerID := c.GetInt("user_id")

	following, err := h.socialService.GetFollowStatus(followerID, followingID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, gin.H{"following": following}, "")
}

func (h *SocialHandler) Followers(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	users, total, err := h.socialService.GetFollowers(userID, page, pageSize)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, gin.H{"users": users, "total": total, "page": page}, "")
}

func (h *SocialHandler) Following(c *gin.Context) {
	userID, ok := userIDParam(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	users, total, err := h.socialService.GetFollowing(userID, page, pageSize)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, gin.H{"users": users, "total": total, "page": page}, "")
}
