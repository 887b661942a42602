package interfaces

import "social-network-backend/internal/model"

// InterestRepository 定义了兴趣分类相关的数据库操作接口
type InterestRepository interface {
	ListCategories() ([]*model.Category, error)
	ListSubCategories(categoryID int) ([]*model.SubCategory, error)
	FindSubCategoryByID(id int) (*model.SubCategory, error)
	// CreateUserInterest 幂等创建用户兴趣；唯一键冲突时返回已有记录
	CreateUserInterest(interest *model.UserInterest) (created bool, err error)
	ListUserInterests(userID int) ([]*model.UserInterest, error)
	DeleteUserInterest(userID, id int) error
}
