package interfaces

import "social-network-backend/internal/model"

// NotificationRepository 定义了通知的数据库操作接口。
// 通知的创建发生在 SocialRepository 的事务内，这里只负责读取和状态流转。
type NotificationRepository interface {
	FindByID(id int) (*model.Notification, error)
	// ListByRecipient 按创建时间倒序返回收件人的通知
	ListByRecipient(userID int, unreadOnly bool, page, pageSize int) ([]*model.Notification, error)
	MarkRead(id int) error
	// MarkAllRead 将收件人所有未读通知标记为已读，返回受影响的行数
	MarkAllRead(userID int) (int64, error)
	CountUnread(userID int) (int, error)
	Delete(id int) error
}
