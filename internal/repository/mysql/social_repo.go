package mysql

import (
	"database/sql"
	"strings"

	"social-network-backend/internal/model"
	"social-network-backend/internal/util"

	"go.uber.org/zap"
)

type socialRepository struct {
	db *sql.DB
}

func NewSocialRepository(db *sql.DB) *socialRepository {
	return &socialRepository{db: db}
}

func isDuplicateEntry(err error) bool {
	return err != nil && strings.Contains(err.Error(), "Duplicate entry")
}

// insertNotification 在调用方的事务内写入通知，保证行创建与通知发射一起提交
func insertNotification(tx *sql.Tx, n *model.Notification) error {
	query := `INSERT INTO notifications
		(recipient_id, sender_id, notification_type, post_id, comment_id, is_read, created_at)
		VALUES (?, ?, ?, ?, ?, false, NOW())`

	result, err := tx.Exec(query, n.RecipientID, n.SenderID, n.Type, n.PostID, n.CommentID)
	if err != nil {
		return err
	}
	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	n.ID = int(id)
	return nil
}

// CreateLike 尝试插入点赞，唯一键 (user_id, post_id) 冲突时返回已有记录。
// 只有赢得插入的一方在同一事务内发射通知，重复请求不产生副作用。
func (r *socialRepository) CreateLike(like *model.Like, notif *model.Notification) (bool, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	query := `INSERT INTO likes (user_id, post_id, created_at) VALUES (?, ?, NOW())`
	result, err := tx.Exec(query, like.UserID, like.PostID)
	if err != nil {
		if isDuplicateEntry(err) {
			existing, ferr := r.FindLike(like.UserID, like.PostID)
			if ferr != nil {
				return false, ferr
			}
			if existing != nil {
				*like = *existing
				return false, nil
			}
		}
		return false, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return false, err
	}
	like.ID = int(id)

	if notif != nil {
		if err := insertNotification(tx, notif); err != nil {
			util.Logger.Error("写入点赞通知失败", zap.Error(err))
			return false, err
		}
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}
	return true, nil
}

func (r *socialRepository) FindLike(userID, postID int) (*model.Like, error) {
	var like model.Like
	err := r.db.QueryRow(`
        SELECT id, user_id, post_id, created_at FROM likes
        WHERE user_id = ? AND post_id = ?`, userID, postID).Scan(
		&like.ID, &like.UserID, &like.PostID, &like.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &like, nil
}

// DeleteLike 删除不存在的点赞静默成功
func (r *socialRepository) DeleteLike(userID, postID int) error {
	_, err := r.db.Exec(`DELETE FROM likes WHERE user_id = ? AND post_id = ?`, userID, postID)
	if err != nil {
		util.Logger.Error("删除点赞失败", zap.Error(err))
	}
	return err
}

func (r *socialRepository) CreateComment(comment *model.Comment, notifs []*model.Notification) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	query := `INSERT INTO comments (user_id, post_id, parent_id, content, created_at, updated_at)
		VALUES (?, ?, ?, ?, NOW(), NOW())`

	result, err := tx.Exec(query, comment.UserID, comment.PostID, comment.ParentID, comment.Content)
	if err != nil {
		util.Logger.Error("创建评论失败", zap.Error(err))
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	comment.ID = int(id)

	for _, n := range notifs {
		n.CommentID = &comment.ID
		if err := insertNotification(tx, n); err != nil {
			util.Logger.Error("写入评论通知失败", zap.Error(err))
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	util.Logger.Info("评论创建成功",
		zap.Int("comment_id", comment.ID),
		zap.Int("notifications", len(notifs)))
	return nil
}

func (r *socialRepository) FindCommentByID(id int) (*model.Comment, error) {
	var comment model.Comment
	err := r.db.QueryRow(`
        SELECT id, user_id, post_id, parent_id, content, created_at, updated_at
        FROM comments WHERE id = ?`, id).Scan(
		&comment.ID, &comment.UserID, &comment.PostID, &comment.ParentID,
		&comment.Content, &comment.CreatedAt, &comment.UpdatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &comment, nil
}

func (r *socialRepository) UpdateComment(comment *model.Comment) error {
	_, err := r.db.Exec(`UPDATE comments SET content = ?, updated_at = NOW() WHERE id = ?`,
		comment.Content, comment.ID)
	return err
}

// DeleteCommentTree 逐层收集后代回复再一次性删除，不依赖数据库级联，
// 保证不会留下孤儿回复
func (r *socialRepository) DeleteCommentTree(id int) (int, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	all := []int{id}
	frontier := []int{id}
	for len(frontier) > 0 {
		placeholders := strings.TrimSuffix(strings.Repeat("?,", len(frontier)), ",")
		args := make([]interface{}, len(frontier))
		for i, v := range frontier {
			args[i] = v
		}

		rows, err := tx.Query(`SELECT id FROM comments WHERE parent_id IN (`+placeholders+`)`, args...)
		if err != nil {
			return 0, err
		}

		var next []int
		for rows.Next() {
			var childID int
			if err := rows.Scan(&childID); err != nil {
				rows.Close()
				return 0, err
			}
			next = append(next, childID)
		}
		rows.Close()
		if err := rows.Err(); err != nil {
			return 0, err
		}

		all = append(all, next...)
		frontier = next
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(all)), ",")
	args := make([]interface{}, len(all))
	for i, v := range all {
		args[i] = v
	}

	// 同一事务内清理指向被删评论的通知，不留孤儿
	if _, err := tx.Exec(`DELETE FROM notifications WHERE comment_id IN (`+placeholders+`)`, args...); err != nil {
		util.Logger.Error("清理评论通知失败", zap.Error(err), zap.Int("comment_id", id))
		return 0, err
	}

	result, err := tx.Exec(`DELETE FROM comments WHERE id IN (`+placeholders+`)`, args...)
	if err != nil {
		util.Logger.Error("删除评论树失败", zap.Error(err), zap.Int("comment_id", id))
		return 0, err
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}

	util.Logger.Info("评论树删除成功",
		zap.Int("comment_id", id),
		zap.Int64("removed", affected))
	return int(affected), nil
}

func (r *socialRepository) ListCommentsByPost(postID int) ([]*model.Comment, error) {
	query := `
        SELECT c.id, c.user_id, c.post_id, c.parent_id, c.content, c.created_at, c.updated_at,
               u.username, u.email, u.avatar_url, u.bio
        FROM comments c
        LEFT JOIN users u ON c.user_id = u.id
        WHERE c.post_id = ?
        ORDER BY c.created_at ASC`

	rows, err := r.db.Query(query, postID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var comments []*model.Comment
	for rows.Next() {
		var comment model.Comment
		var user model.User
		err := rows.Scan(
			&comment.ID, &comment.UserID, &comment.PostID, &comment.ParentID,
			&comment.Content, &comment.CreatedAt, &comment.UpdatedAt,
			&user.Username, &user.Email, &user.AvatarURL, &user.Bio,
		)
		if err != nil {
			return nil, err
		}
		user.ID = comment.UserID
		comment.User = &user
		comments = append(comments, &comment)
	}

	return comments, rows.Err()
}

// CreateShare 分享不唯一，每次都创建新行；作者不是分享者时在同一事务内发射通知
func (r *socialRepository) CreateShare(share *model.Share, notif *model.Notification) error {
	tx, err := r.db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	result, err := tx.Exec(`INSERT INTO shares (user_id, post_id, created_at) VALUES (?, ?, NOW())`,
		share.UserID, share.PostID)
	if err != nil {
		util.Logger.Error("创建分享失败", zap.Error(err))
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	share.ID = int(id)

	if notif != nil {
		if err := insertNotification(tx, notif); err != nil {
			util.Logger.Error("写入分享通知失败", zap.Error(err))
			return err
		}
	}

	return tx.Commit()
}

// CreateFollow 尝试插入关注，唯一键 (follower_id, following_id) 冲突时返回已有记录
func (r *socialRepository) CreateFollow(follow *model.Follow, notif *model.Notification) (bool, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	query := `INSERT INTO follows (follower_id, following_id, created_at) VALUES (?, ?, NOW())`
	result, err := tx.Exec(query, follow.FollowerID, follow.FollowingID)
	if err != nil {
		if isDuplicateEntry(err) {
			existing, ferr := r.FindFollow(follow.FollowerID, follow.FollowingID)
			if ferr != nil {
				return false, ferr
			}
			if existing != nil {
				*follow = *existing
				return false, nil
			}
		}
		return false, err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return false, err
	}
	follow.ID = int(id)

	if notif != nil {
		if err := insertNotification(tx, notif); err != nil {
			util.Logger.Error("写入关注通知失败", zap.Error(err))
			return false, err
		}
	}

	if err := tx.Commit(); err != nil {
		return false, err
	}

	util.Logger.Info("关注创建成功",
		zap.Int("follower_id", follow.FollowerID),
		zap.Int("following_id", follow.FollowingID))
	return true, nil
}

func (r *socialRepository) FindFollow(followerID, followingID int) (*model.Follow, error) {
	var follow model.Follow
	err := r.db.QueryRow(`
        SELECT id, follower_id, following_id, created_at FROM follows
        WHERE follower_id = ? AND following_id = ?`, followerID, followingID).Scan(
		&follow.ID, &follow.FollowerID, &follow.FollowingID, &follow.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &follow, nil
}

func (r *socialRepository) DeleteFollow(followerID, followingID int) error {
	_, err := r.db.Exec(`DELETE FROM follows WHERE follower_id = ? AND following_id = ?`,
		followerID, followingID)
	if err != nil {
		util.Logger.Error("删除关注失败", zap.Error(err))
	}
	return err
}

func (r *socialRepository) IsFollowing(followerID, followingID int) (bool, error) {
	var exists bool
	err := r.db.QueryRow(`
        SELECT EXISTS(
            SELECT 1 FROM follows
            WHERE follower_id = ? AND following_id = ?
        )
    `, followerID, followingID).Scan(&exists)
	return exists, err
}

func (r *socialRepository) Followers(userID, page, pageSize int) ([]*model.User, error) {
	offset := (page - 1) * pageSize
	query := `
        SELECT u.id, u.username, u.email, u.avatar_url, u.bio
        FROM users u
        JOIN follows f ON u.id = f.follower_id
        WHERE f.following_id = ?
        ORDER BY f.created_at DESC
        LIMIT ? OFFSET ?`

	return r.listUsers(query, userID, pageSize, offset)
}

func (r *socialRepository) Following(userID, page, pageSize int) ([]*model.User, error) {
	offset := (page - 1) * pageSize
	query := `
        SELECT u.id, u.username, u.email, u.avatar_url, u.bio
        FROM users u
        JOIN follows f ON u.id = f.following_id
        WHERE f.follower_id = ?
        ORDER BY f.created_at DESC
        LIMIT ? OFFSET ?`

	return r.listUsers(query, userID, pageSize, offset)
}

func (r *socialRepository) listUsers(query string, args ...interface{}) ([]*model.User, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*model.User
	for rows.Next() {
		var user model.User
		if err := rows.Scan(&user.ID, &user.Username, &user.Email, &user.AvatarURL, &user.Bio); err != nil {
			return nil, err
		}
		users = append(users, &user)
	}

	return users, rows.Err()
}

func (r *socialRepository) FollowerCount(userID int) (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM follows WHERE following_id = ?`, userID).Scan(&count)
	return count, err
}

func (r *socialRepository) FollowingCount(userID int) (int, error) {
	var count int
	err := r.db.QueryRow(`SELECT COUNT(*) FROM follows WHERE follower_id = ?`, userID).Scan(&count)
	return count, err
}

// CreateView 浏览回执只记录一次，重复插入由唯一键静默吸收
func (r *socialRepository) CreateView(view *model.PostView) error {
	result, err := r.db.Exec(`INSERT IGNORE INTO post_views (user_id, post_id, viewed_at) VALUES (?, ?, NOW())`,
		view.UserID, view.PostID)
	if err != nil {
		util.Logger.Error("记录浏览回执失败", zap.Error(err))
		return err
	}
	if id, err := result.LastInsertId(); err == nil && id > 0 {
		view.ID = int(id)
	}
	return nil
}
