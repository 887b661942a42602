package service

import (
	"fmt"
	"testing"
	"time"

	"social-network-backend/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestEngagementScore(t *testing.T) {
	assert.Equal(t, 0, EngagementScore(0, 0, 0))
	assert.Equal(t, 1, EngagementScore(1, 0, 0))
	assert.Equal(t, 2, EngagementScore(0, 1, 0))
	assert.Equal(t, 3, EngagementScore(0, 0, 1))
	// 3 赞 + 2 评论 + 1 分享 = 3 + 4 + 3
	assert.Equal(t, 10, EngagementScore(3, 2, 1))
}

func makePost(id, userID int, createdAt time.Time) *model.Post {
	return &model.Post{
		ID:        id,
		UserID:    userID,
		Title:     fmt.Sprintf("post-%d", id),
		PostType:  model.PostTypeText,
		Status:    model.PostStatusApproved,
		CreatedAt: createdAt,
	}
}

func newFeedService(pageSize int) (*FeedService, *MockFeedRepository, *MockPostRepository, *MockSocialRepository) {
	feedRepo := new(MockFeedRepository)
	postRepo := new(MockPostRepository)
	socialRepo := new(MockSocialRepository)
	return NewFeedService(feedRepo, postRepo, socialRepo, pageSize), feedRepo, postRepo, socialRepo
}

func stubAnnotation(postRepo *MockPostRepository, socialRepo *MockSocialRepository, viewerID int) {
	postRepo.On("Counts", mock.AnythingOfType("int")).Return(0, 0, 0, nil)
	postRepo.On("IsLikedBy", mock.AnythingOfType("int"), viewerID).Return(false, nil)
	socialRepo.On("ListCommentsByPost", mock.AnythingOfType("int")).Return([]*model.Comment{}, nil)
}

func TestGetFeedTierOrder(t *testing.T) {
	svc, feedRepo, postRepo, socialRepo := newFeedService(10)

	now := time.Now()
	// 关注的作者有两篇未读、一篇已读，另有一篇未关注作者的热门帖子
	unseen := []*model.Post{
		makePost(11, 2, now.Add(-1*time.Hour)),
		makePost(10, 2, now.Add(-2*time.Hour)),
	}
	seen := []*model.Post{
		makePost(9, 3, now.Add(-30*time.Minute)),
	}
	trendingPost := makePost(20, 4, now.Add(-3*time.Hour))
	trendingPost.LikeCount = 2
	trendingPost.CommentCount = 1
	trendingPost.ShareCount = 1 // 热度 2+2+3=7

	feedRepo.On("FollowedUnseen", 1, tierFollowedUnseenCap).Return(unseen, nil)
	feedRepo.On("FollowedSeen", 1, tierFollowedSeenCap).Return(seen, nil)
	feedRepo.On("TrendingCandidates", 1, mock.AnythingOfType("time.Time")).
		Return([]*model.Post{trendingPost}, nil)
	stubAnnotation(postRepo, socialRepo, 1)

	posts, total, err := svc.GetFeed(1, 1)

	assert.NoError(t, err)
	assert.Equal(t, 4, total)
	assert.Len(t, posts, 4)
	// 层级严格拼接：关注未读 → 关注已读 → 热门
	assert.Equal(t, 11, posts[0].ID)
	assert.Equal(t, 10, posts[1].ID)
	assert.Equal(t, 9, posts[2].ID)
	assert.Equal(t, 20, posts[3].ID)
}

func TestGetFeedNoFollows(t *testing.T) {
	svc, feedRepo, postRepo, socialRepo := newFeedService(10)

	now := time.Now()
	trending := []*model.Post{
		makePost(5, 7, now.Add(-time.Hour)),
	}

	feedRepo.On("FollowedUnseen", 1, tierFollowedUnseenCap).Return([]*model.Post{}, nil)
	feedRepo.On("FollowedSeen", 1, tierFollowedSeenCap).Return([]*model.Post{}, nil)
	feedRepo.On("TrendingCandidates", 1, mock.AnythingOfType("time.Time")).Return(trending, nil)
	stubAnnotation(postRepo, socialRepo, 1)

	posts, total, err := svc.GetFeed(1, 1)

	assert.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, posts, 1)
	assert.Equal(t, 5, posts[0].ID)
}

func TestGetFeedTrendingRanking(t *testing.T) {
	svc, feedRepo, postRepo, socialRepo := newFeedService(10)

	now := time.Now()
	older := makePost(1, 5, now.Add(-48*time.Hour))
	older.LikeCount = 5 // 热度 5
	newer := makePost(2, 6, now.Add(-1*time.Hour))
	newer.LikeCount = 5 // 热度 5，同分按时间倒序排前
	hot := makePost(3, 7, now.Add(-72*time.Hour))
	hot.ShareCount = 4 // 热度 12

	feedRepo.On("FollowedUnseen", 1, tierFollowedUnseenCap).Return([]*model.Post{}, nil)
	feedRepo.On("FollowedSeen", 1, tierFollowedSeenCap).Return([]*model.Post{}, nil)
	feedRepo.On("TrendingCandidates", 1, mock.AnythingOfType("time.Time")).
		Return([]*model.Post{older, newer, hot}, nil)
	stubAnnotation(postRepo, socialRepo, 1)

	posts, _, err := svc.GetFeed(1, 1)

	assert.NoError(t, err)
	assert.Len(t, posts, 3)
	assert.Equal(t, 3, posts[0].ID)
	assert.Equal(t, 2, posts[1].ID)
	assert.Equal(t, 1, posts[2].ID)
}

func TestGetFeedTrendingCap(t *testing.T) {
	svc, feedRepo, postRepo, socialRepo := newFeedService(20)

	now := time.Now()
	var candidates []*model.Post
	for i := 1; i <= 15; i++ {
		p := makePost(i, 100+i, now.Add(-time.Duration(i)*time.Hour))
		p.LikeCount = i
		candidates = append(candidates, p)
	}

	feedRepo.On("FollowedUnseen", 1, tierFollowedUnseenCap).Return([]*model.Post{}, nil)
	feedRepo.On("FollowedSeen", 1, tierFollowedSeenCap).Return([]*model.Post{}, nil)
	feedRepo.On("TrendingCandidates", 1, mock.AnythingOfType("time.Time")).Return(candidates, nil)
	stubAnnotation(postRepo, socialRepo, 1)

	posts, total, err := svc.GetFeed(1, 1)

	assert.NoError(t, err)
	assert.Equal(t, tierTrendingCap, total)
	assert.Len(t, posts, tierTrendingCap)
	// 热度最高的排在最前
	assert.Equal(t, 15, posts[0].ID)
}

func TestGetFeedPagination(t *testing.T) {
	svc, feedRepo, postRepo, socialRepo := newFeedService(10)

	now := time.Now()
	var unseen []*model.Post
	for i := 1; i <= 12; i++ {
		unseen = append(unseen, makePost(i, 2, now.Add(-time.Duration(i)*time.Minute)))
	}

	feedRepo.On("FollowedUnseen", 1, tierFollowedUnseenCap).Return(unseen, nil)
	feedRepo.On("FollowedSeen", 1, tierFollowedSeenCap).Return([]*model.Post{}, nil)
	feedRepo.On("TrendingCandidates", 1, mock.AnythingOfType("time.Time")).Return([]*model.Post{}, nil)
	stubAnnotation(postRepo, socialRepo, 1)

	page1, total, err := svc.GetFeed(1, 1)
	assert.NoError(t, err)
	assert.Equal(t, 12, total)
	assert.Len(t, page1, 10)
	assert.Equal(t, 1, page1[0].ID)

	page2, total, err := svc.GetFeed(1, 2)
	assert.NoError(t, err)
	assert.Equal(t, 12, total)
	assert.Len(t, page2, 2)
	assert.Equal(t, 11, page2[0].ID)

	// 超出范围的页码返回空页，总数不变
	page5, total, err := svc.GetFeed(1, 5)
	assert.NoError(t, err)
	assert.Equal(t, 12, total)
	assert.Empty(t, page5)
}

func TestGetFeedTrendingWindow(t *testing.T) {
	svc, feedRepo, _, _ := newFeedService(10)

	feedRepo.On("FollowedUnseen", 1, tierFollowedUnseenCap).Return([]*model.Post{}, nil)
	feedRepo.On("FollowedSeen", 1, tierFollowedSeenCap).Return([]*model.Post{}, nil)
	// 热门候选的时间窗口为最近 7 天
	feedRepo.On("TrendingCandidates", 1, mock.MatchedBy(func(since time.Time) bool {
		expected := time.Now().Add(-trendingWindow)
		return since.Sub(expected).Abs() < time.Minute
	})).Return([]*model.Post{}, nil)

	posts, total, err := svc.GetFeed(1, 1)

	assert.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, posts)
	feedRepo.AssertExpectations(t)
}

func TestGetFeedInvalidPageFallsBack(t *testing.T) {
	svc, feedRepo, postRepo, socialRepo := newFeedService(10)

	now := time.Now()
	unseen := []*model.Post{makePost(1, 2, now)}

	feedRepo.On("FollowedUnseen", 1, tierFollowedUnseenCap).Return(unseen, nil)
	feedRepo.On("FollowedSeen", 1, tierFollowedSeenCap).Return([]*model.Post{}, nil)
	feedRepo.On("TrendingCandidates", 1, mock.AnythingOfType("time.Time")).Return([]*model.Post{}, nil)
	stubAnnotation(postRepo, socialRepo, 1)

	// 页码不合法时回退到第一页
	posts, total, err := svc.GetFeed(1, -3)
	assert.NoError(t, err)
	assert.Equal(t, 1, total)
	assert.Len(t, posts, 1)
}

func TestGetFeedItemsCarryCommentTree(t *testing.T) {
	svc, feedRepo, postRepo, socialRepo := newFeedService(10)

	now := time.Now()
	unseen := []*model.Post{makePost(1, 2, now)}

	feedRepo.On("FollowedUnseen", 1, tierFollowedUnseenCap).Return(unseen, nil)
	feedRepo.On("FollowedSeen", 1, tierFollowedSeenCap).Return([]*model.Post{}, nil)
	feedRepo.On("TrendingCandidates", 1, mock.AnythingOfType("time.Time")).Return([]*model.Post{}, nil)

	postRepo.On("Counts", 1).Return(0, 3, 0, nil)
	postRepo.On("IsLikedBy", 1, 1).Return(false, nil)
	flat := []*model.Comment{
		{ID: 1, PostID: 1, Content: "顶层评论"},
		{ID: 2, PostID: 1, ParentID: intPtr(1), Content: "回复"},
		{ID: 3, PostID: 1, Content: "另一条顶层评论"},
	}
	socialRepo.On("ListCommentsByPost", 1).Return(flat, nil)

	posts, _, err := svc.GetFeed(1, 1)

	assert.NoError(t, err)
	assert.Len(t, posts, 1)
	// 信息流条目携带顶层评论树
	assert.Len(t, posts[0].Comments, 2)
	assert.Equal(t, 1, posts[0].Comments[0].ID)
	assert.Len(t, posts[0].Comments[0].Replies, 1)
}

func TestBuildCommentTree(t *testing.T) {
	parent1 := &model.Comment{ID: 1, PostID: 1, Content: "顶层评论"}
	reply1 := &model.Comment{ID: 2, PostID: 1, ParentID: intPtr(1), Content: "回复"}
	reply2 := &model.Comment{ID: 3, PostID: 1, ParentID: intPtr(2), Content: "回复的回复"}
	parent2 := &model.Comment{ID: 4, PostID: 1, Content: "另一条顶层评论"}

	tree := BuildCommentTree([]*model.Comment{parent1, reply1, reply2, parent2})

	assert.Len(t, tree, 2)
	assert.Equal(t, 1, tree[0].ID)
	assert.Equal(t, 4, tree[1].ID)
	assert.Len(t, tree[0].Replies, 1)
	assert.Equal(t, 2, tree[0].Replies[0].ID)
	assert.Len(t, tree[0].Replies[0].Replies, 1)
	assert.Equal(t, 3, tree[0].Replies[0].Replies[0].ID)
}

func intPtr(i int) *int {
	return &i
}
