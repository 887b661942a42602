package mysql

import (
	"database/sql"
	"encoding/json"

	"social-network-backend/internal/model"
	"social-network-backend/internal/util"

	"go.uber.org/zap"
)

type postRepository struct {
	db *sql.DB
}

func NewPostRepository(db *sql.DB) *postRepository {
	return &postRepository{db: db}
}

// tags 以 JSON 数组存储在单列中
func encodeTags(tags []string) (string, error) {
	if tags == nil {
		tags = []string{}
	}
	data, err := json.Marshal(tags)
	return string(data), err
}

func decodeTags(raw string, post *model.Post) {
	if raw == "" {
		post.Tags = []string{}
		return
	}
	if err := json.Unmarshal([]byte(raw), &post.Tags); err != nil {
		post.Tags = []string{}
	}
}

func (r *postRepository) Create(post *model.Post) error {
	tags, err := encodeTags(post.Tags)
	if err != nil {
		return err
	}

	if post.Status == "" {
		post.Status = model.PostStatusApproved
	}

	query := `INSERT INTO posts (user_id, title, post_type, content, media_url, link, tags, status, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())`

	result, err := r.db.Exec(query,
		post.UserID, post.Title, post.PostType, post.Content,
		post.MediaURL, post.Link, tags, post.Status)
	if err != nil {
		util.Logger.Error("创建帖子失败", zap.Error(err))
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	post.ID = int(id)

	util.Logger.Info("帖子创建成功", zap.Int("post_id", post.ID))
	return nil
}

func (r *postRepository) FindByID(id int) (*model.Post, error) {
	query := `
        SELECT p.id, p.user_id, p.title, p.post_type, p.content, p.media_url, p.link, p.tags, p.status,
               p.created_at, p.updated_at,
               u.username, u.email, u.avatar_url, u.bio
        FROM posts p
        LEFT JOIN users u ON p.user_id = u.id
        WHERE p.id = ?`

	var post model.Post
	var user model.User
	var tags string
	err := r.db.QueryRow(query, id).Scan(
		&post.ID, &post.UserID, &post.Title, &post.PostType, &post.Content,
		&post.MediaURL, &post.Link, &tags, &post.Status,
		&post.CreatedAt, &post.UpdatedAt,
		&user.Username, &user.Email, &user.AvatarURL, &user.Bio,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	decodeTags(tags, &post)
	user.ID = post.UserID
	post.User = &user
	return &post, nil
}

func (r *postRepository) Update(post *model.Post) error {
	tags, err := encodeTags(post.Tags)
	if err != nil {
		return err
	}

	query := `UPDATE posts SET title = ?, post_type = ?, content = ?, media_url = ?, link = ?, tags = ?, updated_at = NOW()
		WHERE id = ?`
	_, err = r.db.Exec(query, post.Title, post.PostType, post.Content, post.MediaURL, post.Link, tags, post.ID)
	if err != nil {
		util.Logger.Error("更新帖子失败", zap.Error(err), zap.Int("post_id", post.ID))
		return err
	}
	return nil
}

func (r *postRepository) UpdateStatus(id int, status string) error {
	query := `UPDATE posts SET status = ?, updated_at = NOW() WHERE id = ?`
	_, err := r.db.Exec(query, status, id)
	if err != nil {
		util.Logger.Error("更新帖子状态失败", zap.Error(err), zap.Int("post_id", id))
		return err
	}
	util.Logger.Info("帖子状态已更新", zap.Int("post_id", id), zap.String("status", status))
	return nil
}

func (r *postRepository) Delete(id int) error {
	_, err := r.db.Exec(`DELETE FROM posts WHERE id = ?`, id)
	if err != nil {
		util.Logger.Error("删除帖子失败", zap.Error(err), zap.Int("post_id", id))
		return err
	}
	util.Logger.Info("帖子删除成功", zap.Int("post_id", id))
	return nil
}

func (r *postRepository) listPosts(countQuery, query string, args ...interface{}) ([]*model.Post, int, error) {
	var total int
	countArgs := args[:len(args)-2] // 去掉 LIMIT/OFFSET 参数
	if err := r.db.QueryRow(countQuery, countArgs...).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var posts []*model.Post
	for rows.Next() {
		var post model.Post
		var user model.User
		var tags string
		err := rows.Scan(
			&post.ID, &post.UserID, &post.Title, &post.PostType, &post.Content,
			&post.MediaURL, &post.Link, &tags, &post.Status,
			&post.CreatedAt, &post.UpdatedAt,
			&user.Username, &user.Email, &user.AvatarURL, &user.Bio,
		)
		if err != nil {
			return nil, 0, err
		}
		decodeTags(tags, &post)
		user.ID = post.UserID
		post.User = &user
		posts = append(posts, &post)
	}

	return posts, total, rows.Err()
}

const postSelect = `
        SELECT p.id, p.user_id, p.title, p.post_type, p.content, p.media_url, p.link, p.tags, p.status,
               p.created_at, p.updated_at,
               u.username, u.email, u.avatar_url, u.bio
        FROM posts p
        LEFT JOIN users u ON p.user_id = u.id`

func (r *postRepository) ListApproved(page, pageSize int) ([]*model.Post, int, error) {
	offset := (page - 1) * pageSize
	countQuery := `SELECT COUNT(*) FROM posts WHERE status = ?`
	query := postSelect + `
        WHERE p.status = ?
        ORDER BY p.created_at DESC
        LIMIT ? OFFSET ?`

	return r.listPosts(countQuery, query, model.PostStatusApproved, pageSize, offset)
}

func (r *postRepository) ListByUser(userID int, includeUnapproved bool, page, pageSize int) ([]*model.Post, int, error) {
	offset := (page - 1) * pageSize

	if includeUnapproved {
		countQuery := `SELECT COUNT(*) FROM posts WHERE user_id = ?`
		query := postSelect + `
        WHERE p.user_id = ?
        ORDER BY p.created_at DESC
        LIMIT ? OFFSET ?`
		return r.listPosts(countQuery, query, userID, pageSize, offset)
	}

	countQuery := `SELECT COUNT(*) FROM posts WHERE user_id = ? AND status = 'approved'`
	query := postSelect + `
        WHERE p.user_id = ? AND p.status = 'approved'
        ORDER BY p.created_at DESC
        LIMIT ? OFFSET ?`
	return r.listPosts(countQuery, query, userID, pageSize, offset)
}

func (r *postRepository) ListByStatus(status string, page, pageSize int) ([]*model.Post, int, error) {
	offset := (page - 1) * pageSize
	countQuery := `SELECT COUNT(*) FROM posts WHERE status = ?`
	query := postSelect + `
        WHERE p.status = ?
        ORDER BY p.created_at DESC
        LIMIT ? OFFSET ?`

	return r.listPosts(countQuery, query, status, pageSize, offset)
}

// Counts 实时统计计数，热度分数每次请求重新计算，不落库
func (r *postRepository) Counts(postID int) (likes, comments, shares int, err error) {
	query := `
        SELECT
            (SELECT COUNT(*) FROM likes WHERE post_id = ?),
            (SELECT COUNT(*) FROM comments WHERE post_id = ?),
            (SELECT COUNT(*) FROM shares WHERE post_id = ?)`
	err = r.db.QueryRow(query, postID, postID, postID).Scan(&likes, &comments, &shares)
	return
}

func (r *postRepository) IsLikedBy(postID, userID int) (bool, error) {
	var exists bool
	err := r.db.QueryRow(`
        SELECT EXISTS(
            SELECT 1 FROM likes
            WHERE post_id = ? AND user_id = ?
        )
    `, postID, userID).Scan(&exists)
	return exists, err
}
