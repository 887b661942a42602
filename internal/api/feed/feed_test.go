package feed

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"social-network-backend/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockFeedService struct {
	mock.Mock
}

func (m *MockFeedService) GetFeed(userID, page int) ([]*model.Post, int, error) {
	args := m.Called(userID, page)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]*model.Post), args.Int(1), args.Error(2)
}

func setupRouter(handler *FeedHandler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.GET("/api/feed", func(c *gin.Context) {
		c.Set("user_id", 1)
		handler.GetFeed(c)
	})
	return router
}

func TestGetFeedHandler(t *testing.T) {
	mockService := new(MockFeedService)
	handler := NewFeedHandler(mockService)
	router := setupRouter(handler)

	posts := []*model.Post{
		{ID: 3, UserID: 2, Title: "第一篇", Status: model.PostStatusApproved},
		{ID: 2, UserID: 2, Title: "第二篇", Status: model.PostStatusApproved},
	}
	mockService.On("GetFeed", 1, 1).Return(posts, 2, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/feed", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			Posts []json.RawMessage `json:"posts"`
			Total int               `json:"total"`
			Page  int               `json:"page"`
		} `json:"data"`
	}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 2, resp.Data.Total)
	assert.Equal(t, 1, resp.Data.Page)
	assert.Len(t, resp.Data.Posts, 2)
}

func TestGetFeedHandlerMalformedPage(t *testing.T) {
	mockService := new(MockFeedService)
	handler := NewFeedHandler(mockService)
	router := setupRouter(handler)

	mockService.On("GetFeed", 1, 1).Return([]*model.Post{}, 0, nil)

	// 非法页码回退到第一页
	req := httptest.NewRequest(http.MethodGet, "/api/feed?page=abc", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertCalled(t, "GetFeed", 1, 1)
}

func TestGetFeedHandlerNegativePage(t *testing.T) {
	mockService := new(MockFeedService)
	handler := NewFeedHandler(mockService)
	router := setupRouter(handler)

	mockService.On("GetFeed", 1, 1).Return([]*model.Post{}, 0, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/feed?page=-2", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	mockService.AssertCalled(t, "GetFeed", 1, 1)
}
