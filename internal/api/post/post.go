package post

import (
	"strconv"

	"social-network-backend/internal/errors"
	"social-network-backend/internal/model"
	"social-network-backend/internal/service"
	"social-network-backend/internal/storage"
	"social-network-backend/internal/util"

	"github.com/gin-gonic/gin"
)

// PostHandler 处理帖子相关的请求
type PostHandler struct {
	postService service.PostServiceInterface
	storage     storage.Storage
}

func NewPostHandler(postService service.PostServiceInterface, st storage.Storage) *PostHandler {
	return &PostHandler{postService: postService, storage: st}
}

type createPostRequest struct {
	Title    string   `json:"title" binding:"required,max=200"`
	PostType string   `json:"post_type" binding:"required,oneof=text media link"`
	Content  string   `json:"content"`
	MediaURL string   `json:"media_url"`
	Link     string   `json:"link"`
	Tags     []string `json:"tags"`
	Status   string   `json:"status" binding:"omitempty,oneof=draft approved"`
}

func (h *PostHandler) CreatePost(c *gin.Context) {
	userID := c.GetInt("user_id")

	var req createPostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "无效的请求参数", err))
		return
	}

	post := &model.Post{
		UserID:   userID,
		Title:    req.Title,
		PostType: req.PostType,
		Content:  req.Content,
		MediaURL: req.MediaURL,
		Link:     req.Link,
		Tags:     req.Tags,
		Status:   req.Status,
	}

	if err := h.postService.CreatePost(post); err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, post, "帖子创建成功")
}

// UploadMedia 上传帖子媒体文件，返回可填入 media_url 的地址
func (h *PostHandler) UploadMedia(c *gin.Context) {
	file, err := c.FormFile("media")
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrValidation, "缺少媒体文件"))
		return
	}

	filename := util.GenerateUniqueFilename(file.Filename)
	url, err := h.storage.UploadFile(file, "posts/"+filename)
	if err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrInternal, "上传媒体失败", err))
		return
	}
	errors.HandleSuccess(c, gin.H{"url": url}, "上传成功")
}

// GetPost 帖子详情，登录用户访问时会记录浏览回执
func (h *PostHandler) GetPost(c *gin.Context) {
	postID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrValidation, "无效的帖子ID"))
		return
	}

	viewerID := c.GetInt("user_id")
	post, err := h.postService.GetPost(postID, viewerID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, post, "")
}

type updatePostRequest struct {
	Title    string   `json:"title" binding:"required,max=200"`
	PostType string   `json:"post_type" binding:"required,oneof=text media link"`
	Content  string   `json:"content"`
	MediaURL string   `json:"media_url"`
	Link     string   `json:"link"`
	Tags     []string `json:"tags"`
}

func (h *PostHandler) UpdatePost(c *gin.Context) {
	userID := c.GetInt("user_id")
	postID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrValidation, "无效的帖子ID"))
		return
	}

	var req updatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "无效的请求参数", err))
		return
	}

	post := &model.Post{
		ID:       postID,
		Title:    req.Title,
		PostType: req.PostType,
		Content:  req.Content,
		MediaURL: req.MediaURL,
		Link:     req.Link,
		Tags:     req.Tags,
	}

	updated, err := h.postService.UpdatePost(userID, post)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, updated, "帖子已更新")
}

func (h *PostHandler) DeletePost(c *gin.Context) {
	userID := c.GetInt("user_id")
	postID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrValidation, "无效的帖子ID"))
		return
	}

	if err := h.postService.DeletePost(userID, postID); err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, nil, "帖子已删除")
}

// ListPosts 已批准的帖子列表
func (h *PostHandler) ListPosts(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	viewerID := c.GetInt("user_id")

	posts, total, err := h.postService.ListApproved(viewerID, page, pageSize)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, gin.H{"posts": posts, "total": total, "page": page}, "")
}

// ListUserPosts 某用户的帖子，作者本人可见未批准的
func (h *PostHandler) ListUserPosts(c *gin.Context) {
	targetID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrValidation, "无效的用户ID"))
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))
	viewerID := c.GetInt("user_id")

	posts, total, err := h.postService.ListByUser(targetID, viewerID, page, pageSize)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, gin.H{"posts": posts, "total": total, "page": page}, "")
}
