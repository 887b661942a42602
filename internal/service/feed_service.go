package service

import (
	"sort"
	"time"

	"social-network-backend/internal/errors"
	"social-network-backend/internal/model"
	"social-network-backend/internal/repository/interfaces"
	"social-network-backend/internal/util"

	"go.uber.org/zap"
)

// 信息流各层级的容量上限
const (
	tierFollowedUnseenCap = 20
	tierFollowedSeenCap   = 10
	tierTrendingCap       = 10
	trendingWindow        = 7 * 24 * time.Hour
)

// 热度权重：分享 > 评论 > 点赞
const (
	likeWeight    = 1
	commentWeight = 2
	shareWeight   = 3
)

// EngagementScore 计算帖子的热度分数。纯函数，每次请求重新计算，不缓存。
func EngagementScore(likes, comments, shares int) int {
	return likes*likeWeight + comments*commentWeight + shares*shareWeight
}

// FeedServiceInterface 定义信息流服务的方法
type FeedServiceInterface interface {
	GetFeed(userID, page int) ([]*model.Post, int, error)
}

type FeedService struct {
	feedRepo   interfaces.FeedRepository
	postRepo   interfaces.PostRepository
	socialRepo interfaces.SocialRepository
	pageSize   int
}

var _ FeedServiceInterface = (*FeedService)(nil)

func NewFeedService(feedRepo interfaces.FeedRepository, postRepo interfaces.PostRepository, socialRepo interfaces.SocialRepository, pageSize int) *FeedService {
	if pageSize <= 0 {
		pageSize = 10
	}
	return &FeedService{
		feedRepo:   feedRepo,
		postRepo:   postRepo,
		socialRepo: socialRepo,
		pageSize:   pageSize,
	}
}

// GetFeed 组装三个层级并返回指定页。
// 层级顺序严格拼接：关注未读 → 关注已读 → 热门。
// 页码不合法时回退到第一页，返回整个信息流的总条数。
func (s *FeedService) GetFeed(userID, page int) ([]*model.Post, int, error) {
	feed, err := s.compose(userID)
	if err != nil {
		return nil, 0, err
	}

	total := len(feed)
	if page < 1 {
		page = 1
	}

	start := (page - 1) * s.pageSize
	if start >= total {
		return []*model.Post{}, total, nil
	}
	end := start + s.pageSize
	if end > total {
		end = total
	}
	pageItems := feed[start:end]

	// 只注解当前页的帖子，避免整个信息流的计数查询
	for _, post := range pageItems {
		if err := s.annotate(post, userID); err != nil {
			return nil, 0, err
		}
	}

	return pageItems, total, nil
}

func (s *FeedService) compose(userID int) ([]*model.Post, error) {
	unseen, err := s.feedRepo.FollowedUnseen(userID, tierFollowedUnseenCap)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询关注未读帖子失败", err)
	}

	seen, err := s.feedRepo.FollowedSeen(userID, tierFollowedSeenCap)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询关注已读帖子失败", err)
	}

	trending, err := s.trending(userID)
	if err != nil {
		return nil, err
	}

	feed := make([]*model.Post, 0, len(unseen)+len(seen)+len(trending))
	feed = append(feed, unseen...)
	feed = append(feed, seen...)
	feed = append(feed, trending...)

	util.Logger.Debug("信息流组装完成",
		zap.Int("user_id", userID),
		zap.Int("unseen", len(unseen)),
		zap.Int("seen", len(seen)),
		zap.Int("trending", len(trending)))
	return feed, nil
}

// trending 取 7 天窗口内的候选帖子，按热度倒序、同分按时间倒序，截断到上限
func (s *FeedService) trending(userID int) ([]*model.Post, error) {
	since := time.Now().Add(-trendingWindow)
	candidates, err := s.feedRepo.TrendingCandidates(userID, since)
	if err != nil {
		return nil, errors.Wrap(errors.ErrDatabase, "查询热门候选帖子失败", err)
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		si := EngagementScore(candidates[i].LikeCount, candidates[i].CommentCount, candidates[i].ShareCount)
		sj := EngagementScore(candidates[j].LikeCount, candidates[j].CommentCount, candidates[j].ShareCount)
		if si != sj {
			return si > sj
		}
		return candidates[i].CreatedAt.After(candidates[j].CreatedAt)
	})

	if len(candidates) > tierTrendingCap {
		candidates = candidates[:tierTrendingCap]
	}
	return candidates, nil
}

func (s *FeedService) annotate(post *model.Post, viewerID int) error {
	likes, comments, shares, err := s.postRepo.Counts(post.ID)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "统计帖子计数失败", err)
	}
	post.LikeCount = likes
	post.CommentCount = comments
	post.ShareCount = shares

	liked, err := s.postRepo.IsLikedBy(post.ID, viewerID)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "查询点赞状态失败", err)
	}
	post.IsLiked = liked

	// 信息流条目携带顶层评论树
	flat, err := s.socialRepo.ListCommentsByPost(post.ID)
	if err != nil {
		return errors.Wrap(errors.ErrDatabase, "查询评论失败", err)
	}
	post.Comments = BuildCommentTree(flat)
	return nil
}

// BuildCommentTree 把平铺的评论列表组装成树。
// 输入按创建时间升序，输出保持同一层级内的时间顺序。
func BuildCommentTree(comments []*model.Comment) []*model.Comment {
	byID := make(map[int]*model.Comment, len(comments))
	for _, c := range comments {
		byID[c.ID] = c
	}

	var roots []*model.Comment
	for _, c := range comments {
		if c.ParentID == nil {
			roots = append(roots, c)
			continue
		}
		parent, ok := byID[*c.ParentID]
		if !ok {
			// 父评论不在列表中时按顶层处理
			roots = append(roots, c)
			continue
		}
		parent.Replies = append(parent.Replies, c)
	}
	return roots
}
