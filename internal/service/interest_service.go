package service

import (
	"social-network-backend/internal/errors"
	"social-network-backend/internal/model"
	"social-network-backend/internal/repository/interfaces"
)

// InterestServiceInterface 定义兴趣分类服务的方法
type InterestServiceInterface interface {
	ListCategories() ([]*model.Category, error)
	ListSubCategories(categoryID int) ([]*model.SubCategory, error)
	AddUserInterest(userID, subCategoryID int) (*model.UserInterest, bool, error)
	ListUserInterests(userID int) ([]*model.UserInterest, error)
	RemoveUserInterest(userID, interestID int) error
}

type InterestService struct {
	interestRepo interfaces.InterestRepository
}

var _ InterestServiceInterface = (*InterestService)(nil)

func NewInterestService(interestRepo interfaces.InterestRepository) *InterestService {
	return &InterestService{interestRepo: interestRepo}
}

func (s *InterestService) ListCategories() ([]*model.Category, error) {
	categories, err := s.interestRepo.ListCategories()
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询分类失败", err)
	}
	return categories, nil
}

func (s *InterestService) ListSubCategories(categoryID int) ([]*model.SubCategory, error) {
	subs, err := s.interestRepo.ListSubCategories(categoryID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询子分类失败", err)
	}
	return subs, nil
}

// AddUserInterest 幂等添加兴趣，返回是否为新建
func (s *InterestService) AddUserInterest(userID, subCategoryID int) (*model.UserInterest, bool, error) {
	sub, err := s.interestRepo.FindSubCategoryByID(subCategoryID)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrDatabase, "查询子分类失败", err)
	}
	if sub == nil {
		return nil, false, errors.New(errors.ErrResourceNotFound, "子分类不存在")
	}

	interest := &model.UserInterest{UserID: userID, SubCategoryID: subCategoryID}
	created, err := s.interestRepo.CreateUserInterest(interest)
	if err != nil {
		return nil, false, errors.Wrap(errors.ErrDatabase, "添加兴趣失败", err)
	}
	interest.SubCategory = sub
	return interest, created, nil
}

func (s *InterestService) ListUserInterests(userID int) ([]*model.UserInterest, error) {
	interests, err := s.interestRepo.ListUserInterests(userID)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询兴趣失败", err)
	}
	return interests, nil
}

func (s *InterestService) RemoveUserInterest(userID, interestID int) error {
	if err := s.interestRepo.DeleteUserInterest(userID, interestID); err != nil {
		return errors.Wrap(errors.ErrResourceNotFound, "兴趣不存在", err)
	}
	return nil
}
