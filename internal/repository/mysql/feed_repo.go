package mysql

import (
	"database/sql"
	"time"

	"social-network-backend/internal/model"
)

type feedRepository struct {
	db *sql.DB
}

func NewFeedRepository(db *sql.DB) *feedRepository {
	return &feedRepository{db: db}
}

// 三个层级的过滤条件互斥：关注/未关注、已读/未读，
// 同一帖子不会出现在多个层级中，自己的帖子在任何层级都被排除。

func (r *feedRepository) FollowedUnseen(userID, limit int) ([]*model.Post, error) {
	query := postSelect + `
        JOIN follows f ON p.user_id = f.following_id AND f.follower_id = ?
        WHERE p.status = 'approved'
          AND p.user_id != ?
          AND NOT EXISTS (
              SELECT 1 FROM post_views v WHERE v.post_id = p.id AND v.user_id = ?
          )
        ORDER BY p.created_at DESC
        LIMIT ?`

	return r.queryPosts(query, userID, userID, userID, limit)
}

func (r *feedRepository) FollowedSeen(userID, limit int) ([]*model.Post, error) {
	query := postSelect + `
        JOIN follows f ON p.user_id = f.following_id AND f.follower_id = ?
        WHERE p.status = 'approved'
          AND p.user_id != ?
          AND EXISTS (
              SELECT 1 FROM post_views v WHERE v.post_id = p.id AND v.user_id = ?
          )
        ORDER BY p.created_at DESC
        LIMIT ?`

	return r.queryPosts(query, userID, userID, userID, limit)
}

func (r *feedRepository) queryPosts(query string, args ...interface{}) ([]*model.Post, error) {
	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
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
			return nil, err
		}
		decodeTags(tags, &post)
		user.ID = post.UserID
		post.User = &user
		posts = append(posts, &post)
	}

	return posts, rows.Err()
}

// TrendingCandidates 返回 since 之后发布的未关注作者的未读帖子，
// 带实时计数。热度排序在服务层按请求重新计算，这里不排序不截断。
func (r *feedRepository) TrendingCandidates(userID int, since time.Time) ([]*model.Post, error) {
	query := `
        SELECT p.id, p.user_id, p.title, p.post_type, p.content, p.media_url, p.link, p.tags, p.status,
               p.created_at, p.updated_at,
               u.username, u.email, u.avatar_url, u.bio,
               (SELECT COUNT(*) FROM likes l WHERE l.post_id = p.id) AS like_count,
               (SELECT COUNT(*) FROM comments c WHERE c.post_id = p.id) AS comment_count,
               (SELECT COUNT(*) FROM shares s WHERE s.post_id = p.id) AS share_count
        FROM posts p
        LEFT JOIN users u ON p.user_id = u.id
        WHERE p.status = 'approved'
          AND p.created_at >= ?
          AND p.user_id != ?
          AND NOT EXISTS (
              SELECT 1 FROM follows f WHERE f.follower_id = ? AND f.following_id = p.user_id
          )
          AND NOT EXISTS (
              SELECT 1 FROM post_views v WHERE v.post_id = p.id AND v.user_id = ?
          )`

	rows, err := r.db.Query(query, since, userID, userID, userID)
	if err != nil {
		return nil, err
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
			&post.LikeCount, &post.CommentCount, &post.ShareCount,
		)
		if err != nil {
			return nil, err
		}
		decodeTags(tags, &post)
		user.ID = post.UserID
		post.User = &user
		posts = append(posts, &post)
	}

	return posts, rows.Err()
}
