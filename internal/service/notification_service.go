package service

import (
	"social-network-backend/internal/errors"
	"social-network-backend/internal/model"
	"social-network-backend/internal/repository/interfaces"
)

// NotificationServiceInterface 定义通知服务的方法。
// 通知由互动副作用创建，这里只负责读取和状态流转。
type NotificationServiceInterface interface {
	ListNotifications(userID int, unreadOnly bool, page, pageSize int) ([]*model.Notification, error)
	MarkRead(userID, notificationID int) error
	MarkAllRead(userID int) (int64, error)
	UnreadCount(userID int) (int, error)
	DeleteNotification(userID, notificationID int) error
}

type NotificationService struct {
	notifRepo interfaces.NotificationRepository
}

var _ NotificationServiceInterface = (*NotificationService)(nil)

func NewNotificationService(notifRepo interfaces.NotificationRepository) *NotificationService {
	return &NotificationService{notifRepo: notifRepo}
}

func (s *NotificationService) ListNotifications(userID int, unreadOnly bool, page, pageSize int) ([]*model.Notification, error) {
	if page < 1 {
		page = 1
	}
	notifications, err := s.notifRepo.ListByRecipient(userID, unreadOnly, page, pageSize)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询通知失败", err)
	}
	return notifications, nil
}

// findOwned 只有收件人可以操作通知
func (s *NotificationService) findOwned(userID, notificationID int) (*model.Notification, error) {
	notif, err := s.notifRepo.FindByID(notificationID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询通知失败", err)
	}
	if notif == nil {
		return nil, errors.New(errors.ErrNotificationNotFound, "通知不存在")
	}
	if notif.RecipientID != userID {
		return nil, errors.New(errors.ErrForbidden, "没有权限操作该通知")
	}
	return notif, nil
}

// MarkRead 重复标记已读静默成功
func (s *NotificationService) MarkRead(userID, notificationID int) error {
	notif, err := s.findOwned(userID, notificationID)
	if err != nil {
		return err
	}
	if notif.IsRead {
		return nil
	}

	if err := s.notifRepo.MarkRead(notificationID); err != nil {
		return errors.Wrap(errors.ErrDatabase, "标记通知已读失败", err)
	}
	return nil
}

// MarkAllRead 返回实际标记的条数
func (s *NotificationService) MarkAllRead(userID int) (int64, error) {
	count, err := s.notifRepo.MarkAllRead(userID)
	if err != nil {
		return 0, errors.Wrap(errors.ErrDatabase, "批量标记通知已读失败", err)
	}
	return count, nil
}

func (s *NotificationService) UnreadCount(userID int) (int, error) {
	count, err := s.notifRepo.CountUnread(userID)
	if err != nil {
		return 0, errors.Wrap(errors.ErrDatabase, "统计未读通知失败", err)
	}
	return count, nil
}

func (s *NotificationService) DeleteNotification(userID, notificationID int) error {
	if _, err := s.findOwned(userID, notificationID); err != nil {
		return err
	}

	if err := s.notifRepo.Delete(notificationID); err != nil {
		return errors.Wrap(errors.ErrDatabase, "删除通知失败", err)
	}
	return nil
}
