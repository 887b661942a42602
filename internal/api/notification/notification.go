package notification

import (
	"strconv"

	"social-network-backend/internal/errors"
	"social-network-backend/internal/service"

	"github.com/gin-gonic/gin"
)

// NotificationHandler 处理通知相关的请求
type NotificationHandler struct {
	notifService service.NotificationServiceInterface
}

func NewNotificationHandler(notifService service.NotificationServiceInterface) *NotificationHandler {
	return &NotificationHandler{notifService: notifService}
}

// ListNotifications 通知列表，unread_only=true 时只返回未读
func (h *NotificationHandler) ListNotifications(c *gin.Context) {
	userID := c.GetInt("user_id")
	unreadOnly := c.Query("unread_only") == "true"
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))

	notifications, err := h.notifService.ListNotifications(userID, unreadOnly, page, pageSize)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, notifications, "")
}

// MarkRead 标记单条通知已读
func (h *NotificationHandler) MarkRead(c *gin.Context) {
	userID := c.GetInt("user_id")
	notificationID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrValidation, "无效的通知ID"))
		return
	}

	if err := h.notifService.MarkRead(userID, notificationID); err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, nil, "已标记已读")
}

// MarkAllRead 标记全部已读，返回实际标记的条数
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	userID := c.GetInt("user_id")

	count, err := h.notifService.MarkAllRead(userID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, gin.H{"marked": count}, "已全部标记已读")
}

// UnreadCount 未读通知数
func (h *NotificationHandler) UnreadCount(c *gin.Context) {
	userID := c.GetInt("user_id")

	count, err := h.notifService.UnreadCount(userID)
	if err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, gin.H{"count": count}, "")
}

// DeleteNotification 删除通知
func (h *NotificationHandler) DeleteNotification(c *gin.Context) {
	userID := c.GetInt("user_id")
	notificationID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		errors.HandleError(c, errors.New(errors.ErrValidation, "无效的通知ID"))
		return
	}

	if err := h.notifService.DeleteNotification(userID, notificationID); err != nil {
		errors.HandleError(c, err)
		return
	}
	errors.HandleSuccess(c, nil, "通知已删除")
}
