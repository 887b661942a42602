package mysql

import (
	"crypto/rand"
	"database/sql"
	"fmt"
	"math/big"
	"strings"

	"social-network-backend/internal/model"
	"social-network-backend/internal/util"

	"go.uber.org/zap"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *userRepository {
	return &userRepository{db: db}
}

const userColumns = `id, username, email, password_hash, avatar_url, bio, role,
	email_verified, is_oauth_user, username_set, created_at, updated_at, deleted_at`

func scanUser(row *sql.Row) (*model.User, error) {
	var user model.User
	err := row.Scan(
		&user.ID, &user.Username, &user.Email, &user.PasswordHash,
		&user.AvatarURL, &user.Bio, &user.Role,
		&user.EmailVerified, &user.IsOAuthUser, &user.UsernameSet,
		&user.CreatedAt, &user.UpdatedAt, &user.DeletedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) Create(user *model.User) error {
	query := `INSERT INTO users
		(username, email, password_hash, avatar_url, bio, role, email_verified, is_oauth_user, username_set, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, NOW(), NOW())`

	if user.Role == "" {
		user.Role = model.RoleUser
	}

	result, err := r.db.Exec(query,
		user.Username, user.Email, user.PasswordHash,
		user.AvatarURL, user.Bio, user.Role,
		user.EmailVerified, user.IsOAuthUser, user.UsernameSet)
	if err != nil {
		util.Logger.Error("创建用户失败", zap.Error(err))
		return err
	}

	id, err := result.LastInsertId()
	if err != nil {
		return err
	}
	user.ID = int(id)
	return nil
}

func (r *userRepository) FindByID(id int) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = ? AND deleted_at IS NULL`
	return scanUser(r.db.QueryRow(query, id))
}

func (r *userRepository) FindByEmail(email string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = ? AND deleted_at IS NULL`
	return scanUser(r.db.QueryRow(query, email))
}

func (r *userRepository) FindByUsername(username string) (*model.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE username = ? AND deleted_at IS NULL`
	return scanUser(r.db.QueryRow(query, username))
}

// disambiguateUsername 给占位用户名加随机数字后缀，避开用户名唯一键
func disambiguateUsername(base string) string {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return base + "0"
	}
	return fmt.Sprintf("%s%06d", base, n.Int64())
}

// GetOrCreateByEmail 按邮箱获取或创建用户。依赖 email 唯一索引，
// 并发重复创建时由数据库裁决，失败方读取已有行。
// 占位用户名撞了用户名唯一键时换后缀重试，邮箱冲突才算已存在。
func (r *userRepository) GetOrCreateByEmail(email, defaultUsername string) (*model.User, bool, error) {
	user, err := r.FindByEmail(email)
	if err != nil {
		return nil, false, err
	}
	if user != nil {
		return user, false, nil
	}

	user = &model.User{
		Username: defaultUsername,
		Email:    email,
		Role:     model.RoleUser,
	}
	for attempt := 0; attempt < 3; attempt++ {
		err := r.Create(user)
		if err == nil {
			return user, true, nil
		}
		if !strings.Contains(err.Error(), "Duplicate entry") {
			return nil, false, err
		}

		existing, ferr := r.FindByEmail(email)
		if ferr != nil {
			return nil, false, ferr
		}
		if existing != nil {
			return existing, false, nil
		}

		// 邮箱未占用说明撞的是用户名唯一键，换个占位用户名重试
		user.Username = disambiguateUsername(defaultUsername)
	}
	return nil, false, fmt.Errorf("生成占位用户名失败: %s", defaultUsername)
}

func (r *userRepository) Update(user *model.User) error {
	query := `UPDATE users SET username = ?, email = ?, password_hash = ?, avatar_url = ?, bio = ?, role = ?,
		email_verified = ?, is_oauth_user = ?, username_set = ?, deleted_at = ?, updated_at = NOW()
		WHERE id = ?`

	_, err := r.db.Exec(query,
		user.Username, user.Email, user.PasswordHash,
		user.AvatarURL, user.Bio, user.Role,
		user.EmailVerified, user.IsOAuthUser, user.UsernameSet,
		user.DeletedAt, user.ID)
	if err != nil {
		util.Logger.Error("更新用户失败", zap.Error(err), zap.Int("user_id", user.ID))
		return err
	}
	return nil
}

func (r *userRepository) FindAll(page, pageSize int) ([]*model.User, error) {
	offset := (page - 1) * pageSize
	query := `SELECT ` + userColumns + ` FROM users WHERE deleted_at IS NULL
		ORDER BY created_at DESC LIMIT ? OFFSET ?`

	rows, err := r.db.Query(query, pageSize, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*model.User
	for rows.Next() {
		var user model.User
		err := rows.Scan(
			&user.ID, &user.Username, &user.Email, &user.PasswordHash,
			&user.AvatarURL, &user.Bio, &user.Role,
			&user.EmailVerified, &user.IsOAuthUser, &user.UsernameSet,
			&user.CreatedAt, &user.UpdatedAt, &user.DeletedAt,
		)
		if err != nil {
			return nil, err
		}
		users = append(users, &user)
	}

	return users, rows.Err()
}

func (r *userRepository) Count() (int, error) {
	var count int
	err := r.db.QueryRow("SELECT COUNT(*) FROM users WHERE deleted_at IS NULL").Scan(&count)
	return count, err
}
