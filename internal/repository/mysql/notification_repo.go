package mysql

import (
	"database/sql"

	"social-network-backend/internal/model"
	"social-network-backend/internal/util"

	"go.uber.org/zap"
)

type notificationRepository struct {
	db *sql.DB
}

func NewNotificationRepository(db *sql.DB) *notificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) FindByID(id int) (*model.Notification, error) {
	var n model.Notification
	err := r.db.QueryRow(`
        SELECT id, recipient_id, sender_id, notification_type, post_id, comment_id, is_read, created_at
        FROM notifications WHERE id = ?`, id).Scan(
		&n.ID, &n.RecipientID, &n.SenderID, &n.Type,
		&n.PostID, &n.CommentID, &n.IsRead, &n.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &n, nil
}

// ListByRecipient 按创建时间倒序返回通知，附带发送者信息和帖子标题
func (r *notificationRepository) ListByRecipient(userID int, unreadOnly bool, page, pageSize int) ([]*model.Notification, error) {
	offset := (page - 1) * pageSize
	query := `
        SELECT n.id, n.recipient_id, n.sender_id, n.notification_type, n.post_id, n.comment_id,
               n.is_read, n.created_at,
               u.username, u.avatar_url,
               COALESCE(p.title, '')
        FROM notifications n
        LEFT JOIN users u ON n.sender_id = u.id
        LEFT JOIN posts p ON n.post_id = p.id
        WHERE n.recipient_id = ?`
	if unreadOnly {
		query += ` AND n.is_read = false`
	}
	query += `
        ORDER BY n.created_at DESC
        LIMIT ? OFFSET ?`

	rows, err := r.db.Query(query, userID, pageSize, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var notifications []*model.Notification
	for rows.Next() {
		var n model.Notification
		var sender model.User
		err := rows.Scan(
			&n.ID, &n.RecipientID, &n.SenderID, &n.Type, &n.PostID, &n.CommentID,
			&n.IsRead, &n.CreatedAt,
			&sender.Username, &sender.AvatarURL,
			&n.PostTitle,
		)
		if err != nil {
			return nil, err
		}
		sender.ID = n.SenderID
		n.Sender = &sender
		notifications = append(notifications, &n)
	}

	return notifications, rows.Err()
}

func (r *notificationRepository) MarkRead(id int) error {
	_, err := r.db.Exec(`UPDATE notifications SET is_read = true WHERE id = ?`, id)
	if err != nil {
		util.Logger.Error("标记通知已读失败", zap.Error(err), zap.Int("notification_id", id))
	}
	return err
}

// MarkAllRead 批量标记已读，返回实际变更的行数
func (r *notificationRepository) MarkAllRead(userID int) (int64, error) {
	result, err := r.db.Exec(`UPDATE notifications SET is_read = true WHERE recipient_id = ? AND is_read = false`, userID)
	if err != nil {
		util.Logger.Error("批量标记通知已读失败", zap.Error(err), zap.Int("user_id", userID))
		return 0, err
	}
	return result.RowsAffected()
}

func (r *notificationRepository) CountUnread(userID int) (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM notifications WHERE recipient_id = ? AND is_read = false`, userID).Scan(&count)
	return count, err
}

func (r *notificationRepository) Delete(id int) error {
	_, err := r.db.Exec(`DELETE FROM notifications WHERE id = ?`, id)
	if err != nil {
		util.Logger.Error("删除通知失败", zap.Error(err), zap.Int("notification_id", id))
	}
	return err
}
