package admin

import (
	"strconv"

	"social-network-backend/internal/errors"
	"social-network-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// AdminHandler 处理后台管理相关的请求
type AdminHandler struct {
	adminService service.AdminServiceInterface
	userService  service.UserServiceInterface
}

func NewAdminHandler(adminService service.AdminServiceInterface, userService service.UserServiceInterface) *AdminHandler {
	return &AdminHandler{adminService: adminService, userService: userService}
}

// ListPosts 按状态查看帖子，用于审核队列
func (h *AdminHandler) ListPosts(c *gin.Context) {
	status := c.DefaultQuery("status", "pending")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	posts, total, err := h.adminService.ListPostsByStatus(status, page, pageSize)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, gin.H{"posts": posts, "total": total, "page": page}, "")
}

type reviewRequest struct {
	Approve bool `json:"approve"`
}

// ReviewPost 审核帖子，通过或驳回
func (h *AdminHandler) ReviewPost(c *gin.Context) {
	postID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrValidation, "无效的帖子ID"))
		return
	}

	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "无效的请求参数", err))
		return
	}

	post, err := h.adminService.ReviewPost(postID, req.Approve)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, post, "审核完成")
}

// ListUsers 用户列表
func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	users, total, err := h.userService.GetUsers(page, pageSize)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, gin.H{"users": users, "total": total, "page": page}, "")
}

type updateRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=user moderator admin"`
}

// UpdateUserRole 调整用户角色
func (h *AdminHandler) UpdateUserRole(c *gin.Context) {
	userID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrValidation, "无效的用户ID"))
		return
	}

	var req updateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		errors.HandleError(c, errors.Wrap(errors.ErrValidation, "无效的请求参数", err))
		return
	}

	if err := h.userService.UpdateUserRole(userID, req.Role); err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, nil, "角色已更新")
}
