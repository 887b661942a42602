package interfaces

import "social-network-backend/internal/model"

// UserRepository 定义了用户相关的数据库操作接口
type UserRepository interface {
	Create(user *model.User) error
	FindByID(id int) (*model.User, error)
	FindByEmail(email string) (*model.User, error)
	FindByUsername(username string) (*model.User, error)
	// GetOrCreateByEmail 按邮箱获取用户，不存在则创建；返回是否新建
	GetOrCreateByEmail(email, defaultUsername string) (*model.User, bool, error)
	Update(user *model.User) error
	FindAll(page, pageSize int) ([]*model.User, error)
	Count() (int, error)
}
