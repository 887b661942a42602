package service

import (
	"testing"

	"social-network-backend/internal/errors"
	"social-network-backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func newPostService() (*PostService, *MockPostRepository, *MockSocialRepository) {
	postRepo := new(MockPostRepository)
	socialRepo := new(MockSocialRepository)
	return NewPostService(postRepo, socialRepo), postRepo, socialRepo
}

func TestCreatePostValidation(t *testing.T) {
	svc, _, _ := newPostService()

	err := svc.CreatePost(&model.Post{UserID: 1, PostType: model.PostTypeText})
	assert.True(t, errors.Is(err, errors.ErrValidation), "缺少标题")

	err = svc.CreatePost(&model.Post{UserID: 1, Title: "t", PostType: "video"})
	assert.True(t, errors.Is(err, errors.ErrValidation), "非法类型")

	err = svc.CreatePost(&model.Post{UserID: 1, Title: "t", PostType: model.PostTypeMedia})
	assert.True(t, errors.Is(err, errors.ErrValidation), "媒体帖子缺少媒体地址")

	err = svc.CreatePost(&model.Post{UserID: 1, Title: "t", PostType: model.PostTypeLink})
	assert.True(t, errors.Is(err, errors.ErrValidation), "链接帖子缺少链接")
}

func TestCreatePostDefaultStatus(t *testing.T) {
	svc, postRepo, _ := newPostService()

	postRepo.On("Create", mock.MatchedBy(func(p *model.Post) bool {
		return p.Status == model.PostStatusApproved
	})).Return(nil)

	err := svc.CreatePost(&model.Post{UserID: 1, Title: "t", PostType: model.PostTypeText})

	assert.NoError(t, err)
	postRepo.AssertExpectations(t)
}

func TestGetPostHidesUnapprovedFromOthers(t *testing.T) {
	svc, postRepo, _ := newPostService()

	draft := &model.Post{ID: 10, UserID: 1, Title: "t", PostType: model.PostTypeText, Status: model.PostStatusDraft}
	postRepo.On("FindByID", 10).Return(draft, nil)

	// 其他用户看不到未批准的帖子
	_, err := svc.GetPost(10, 2)

	assert.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrPostNotFound))
}

func TestGetPostDraftVisibleToAuthor(t *testing.T) {
	svc, postRepo, socialRepo := newPostService()

	draft := &model.Post{ID: 10, UserID: 1, Title: "t", PostType: model.PostTypeText, Status: model.PostStatusDraft}
	postRepo.On("FindByID", 10).Return(draft, nil)
	postRepo.On("Counts", 10).Return(0, 0, 0, nil)
	postRepo.On("IsLikedBy", 10, 1).Return(false, nil)
	socialRepo.On("ListCommentsByPost", 10).Return([]*model.Comment{}, nil)

	post, err := svc.GetPost(10, 1)

	assert.NoError(t, err)
	assert.Equal(t, 10, post.ID)
	// 作者浏览自己的帖子不产生回执
	socialRepo.AssertNotCalled(t, "CreateView", mock.Anything)
}

func TestGetPostRecordsViewReceipt(t *testing.T) {
	svc, postRepo, socialRepo := newPostService()

	post := &model.Post{ID: 10, UserID: 1, Title: "t", PostType: model.PostTypeText, Status: model.PostStatusApproved}
	postRepo.On("FindByID", 10).Return(post, nil)
	postRepo.On("Counts", 10).Return(2, 1, 0, nil)
	postRepo.On("IsLikedBy", 10, 2).Return(true, nil)
	socialRepo.On("ListCommentsByPost", 10).Return([]*model.Comment{}, nil)
	socialRepo.On("CreateView", mock.MatchedBy(func(v *model.PostView) bool {
		return v.UserID == 2 && v.PostID == 10
	})).Return(nil)

	got, err := svc.GetPost(10, 2)

	assert.NoError(t, err)
	assert.Equal(t, 2, got.LikeCount)
	assert.Equal(t, 1, got.CommentCount)
	assert.True(t, got.IsLiked)
	socialRepo.AssertExpectations(t)
}

func TestUpdatePostForbiddenForOthers(t *testing.T) {
	svc, postRepo, _ := newPostService()

	existing := &model.Post{ID: 10, UserID: 1, Title: "t", PostType: model.PostTypeText, Status: model.PostStatusApproved}
	postRepo.On("FindByID", 10).Return(existing, nil)

	_, err := svc.UpdatePost(2, &model.Post{ID: 10, Title: "new", PostType: model.PostTypeText})

	assert.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrForbidden))
	postRepo.AssertNotCalled(t, "Update", mock.Anything)
}

func TestDeletePostForbiddenForOthers(t *testing.T) {
	svc, postRepo, _ := newPostService()

	existing := &model.Post{ID: 10, UserID: 1, Title: "t", PostType: model.PostTypeText, Status: model.PostStatusApproved}
	postRepo.On("FindByID", 10).Return(existing, nil)

	err := svc.DeletePost(2, 10)

	assert.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrForbidden))
	postRepo.AssertNotCalled(t, "Delete", mock.Anything)
}
