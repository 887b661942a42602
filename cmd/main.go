package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"social-network-backend/config"
	"social-network-backend/internal/api/admin"
	"social-network-backend/internal/api/feed"
	"social-network-backend/internal/api/interest"
	"social-network-backend/internal/api/notification"
	"social-network-backend/internal/api/post"
	"social-network-backend/internal/api/social"
	"social-network-backend/internal/api/user"
	"social-network-backend/internal/cache"
	"social-network-backend/internal/middleware"
	"social-network-backend/internal/repository/mysql"
	"social-network-backend/internal/service"
	"social-network-backend/internal/storage"
	"social-network-backend/internal/util"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	_ "github.com/go-sql-driver/mysql"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	config.Init()
	util.InitLogger(config.AppConfig.LogLevel)
	defer util.Logger.Sync()

	// 注册自定义验证器
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		if err := v.RegisterValidation("username", util.ValidateUsername); err != nil {
			util.Logger.Fatal("注册验证器失败", zap.Error(err))
		}
	}

	db, err := initDB()
	if err != nil {
		util.Logger.Fatal("数据库连接失败", zap.Error(err))
	}
	defer db.Close()

	redisCache, err := cache.NewCache()
	if err != nil {
		util.Logger.Fatal("Redis 连接失败", zap.Error(err))
	}
	defer redisCache.Close()

	fileStorage, err := storage.NewStorage()
	if err != nil {
		util.Logger.Fatal("初始化存储失败", zap.Error(err))
	}

	// 仓储层
	userRepo := mysql.NewUserRepository(db)
	postRepo := mysql.NewPostRepository(db)
	socialRepo := mysql.NewSocialRepository(db)
	feedRepo := mysql.NewFeedRepository(db)
	notifRepo := mysql.NewNotificationRepository(db)
	interestRepo := mysql.NewInterestRepository(db)

	// 服务层
	emailService := service.NewEmailService()
	userService := service.NewUserService(userRepo, redisCache, emailService, service.NewVerifierRegistry())
	postService := service.NewPostService(postRepo, socialRepo)
	socialService := service.NewSocialService(socialRepo, postRepo, userRepo)
	feedService := service.NewFeedService(feedRepo, postRepo, socialRepo, config.AppConfig.FeedPageSize)
	notifService := service.NewNotificationService(notifRepo)
	interestService := service.NewInterestService(interestRepo)
	adminService := service.NewAdminService(postRepo)

	// 处理器
	authHandler := user.NewAuthHandler(userService)
	profileHandler := user.NewProfileHandler(userService, fileStorage)
	postHandler := post.NewPostHandler(postService, fileStorage)
	socialHandler := social.NewSocialHandler(socialService)
	feedHandler := feed.NewFeedHandler(feedService)
	notifHandler := notification.NewNotificationHandler(notifService)
	interestHandler := interest.NewInterestHandler(interestService)
	adminHandler := admin.NewAdminHandler(adminService, userService)

	router := setupRouter(authHandler, profileHandler, postHandler, socialHandler,
		feedHandler, notifHandler, interestHandler, adminHandler, userService)

	srv := &http.Server{
		Addr:    ":8080",
		Handler: router,
	}

	go func() {
		util.Logger.Info("服务器启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			util.Logger.Fatal("服务器启动失败", zap.Error(err))
		}
	}()

	// 优雅关闭
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	util.Logger.Info("收到关闭信号，开始优雅关闭")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		util.Logger.Error("服务器关闭失败", zap.Error(err))
	}
	util.Logger.Info("服务器已关闭")
}

func initDB() (*sql.DB, error) {
	cfg := config.AppConfig
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)

	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(10)
	db.SetConnMaxLifetime(5 * time.Minute)

	if err := db.Ping(); err != nil {
		return nil, err
	}

	util.Logger.Info("数据库连接成功", zap.String("host", cfg.DBHost), zap.String("db", cfg.DBName))
	return db, nil
}

func setupRouter(
	authHandler *user.AuthHandler,
	profileHandler *user.ProfileHandler,
	postHandler *post.PostHandler,
	socialHandler *social.SocialHandler,
	feedHandler *feed.FeedHandler,
	notifHandler *notification.NotificationHandler,
	interestHandler *interest.InterestHandler,
	adminHandler *admin.AdminHandler,
	userService service.UserServiceInterface,
) *gin.Engine {
	router := gin.New()
	router.Use(middleware.RecoveryMiddleware())
	router.Use(middleware.MetricsMiddleware())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{config.AppConfig.FrontendURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.Static("/uploads", config.AppConfig.LocalStoragePath)

	auth := middleware.AuthMiddleware(userService)
	optionalAuth := middleware.OptionalAuthMiddleware(userService)

	api := router.Group("/api")
	{
		// 认证
		authGroup := api.Group("/auth")
		{
			authGroup.POST("/send-otp", authHandler.SendOTP)
			authGroup.POST("/verify-otp", authHandler.VerifyOTP)
			authGroup.POST("/set-credentials", authHandler.SetCredentials)
			authGroup.POST("/login", authHandler.Login)
			authGroup.POST("/oauth", authHandler.OAuthLogin)
			authGroup.POST("/refresh-token", authHandler.RefreshToken)
			authGroup.POST("/logout", auth, authHandler.Logout)
		}

		// 用户资料
		userGroup := api.Group("/users")
		{
			userGroup.GET("/me", auth, profileHandler.Me)
			userGroup.PUT("/me", auth, profileHandler.UpdateProfile)
			userGroup.POST("/me/avatar", auth, profileHandler.UploadAvatar)
			userGroup.DELETE("/me", auth, profileHandler.DeleteAccount)
			userGroup.GET("/:id", optionalAuth, profileHandler.GetUser)
			userGroup.GET("/:id/posts", optionalAuth, postHandler.ListUserPosts)

			// 关注
			userGroup.POST("/:id/follow", auth, socialHandler.FollowUser)
			userGroup.DELETE("/:id/follow", auth, socialHandler.UnfollowUser)
			userGroup.GET("/:id/follow-status", auth, socialHandler.FollowStatus)
			userGroup.GET("/:id/followers", optionalAuth, socialHandler.Followers)
			userGroup.GET("/:id/following", optionalAuth, socialHandler.Following)
		}

		// 帖子
		postGroup := api.Group("/posts")
		{
			postGroup.GET("", optionalAuth, postHandler.ListPosts)
			postGroup.POST("", auth, postHandler.CreatePost)
			postGroup.POST("/media", auth, postHandler.UploadMedia)
			postGroup.GET("/:id", optionalAuth, postHandler.GetPost)
			postGroup.PUT("/:id", auth, postHandler.UpdatePost)
			postGroup.DELETE("/:id", auth, postHandler.DeletePost)

			// 互动
			postGroup.POST("/:id/like", auth, socialHandler.LikePost)
			postGroup.DELETE("/:id/like", auth, socialHandler.UnlikePost)
			postGroup.POST("/:id/comments", auth, socialHandler.CreateComment)
			postGroup.GET("/:id/comments", optionalAuth, socialHandler.ListComments)
			postGroup.POST("/:id/share", auth, socialHandler.SharePost)
			postGroup.POST("/:id/view", auth, socialHandler.RecordView)
		}

		// 评论
		commentGroup := api.Group("/comments", auth)
		{
			commentGroup.PUT("/:id", socialHandler.UpdateComment)
			commentGroup.DELETE("/:id", socialHandler.DeleteComment)
		}

		// 信息流
		api.GET("/feed", auth, feedHandler.GetFeed)

		// 通知
		notifGroup := api.Group("/notifications", auth)
		{
			notifGroup.GET("", notifHandler.ListNotifications)
			notifGroup.GET("/unread-count", notifHandler.UnreadCount)
			notifGroup.PATCH("/read-all", notifHandler.MarkAllRead)
			notifGroup.PATCH("/:id/read", notifHandler.MarkRead)
			notifGroup.DELETE("/:id", notifHandler.DeleteNotification)
		}

		// 兴趣分类
		interestGroup := api.Group("/interests")
		{
			interestGroup.GET("/categories", interestHandler.ListCategories)
			interestGroup.GET("/categories/:id/subcategories", interestHandler.ListSubCategories)
			interestGroup.GET("/me", auth, interestHandler.ListMyInterests)
			interestGroup.POST("/me", auth, interestHandler.AddInterest)
			interestGroup.DELETE("/me/:id", auth, interestHandler.RemoveInterest)
		}

		// 后台管理
		adminGroup := api.Group("/admin", auth)
		{
			adminGroup.GET("/posts", middleware.ModeratorMiddleware(userService), adminHandler.ListPosts)
			adminGroup.PATCH("/posts/:id/review", middleware.ModeratorMiddleware(userService), adminHandler.ReviewPost)
			adminGroup.GET("/users", middleware.AdminMiddleware(userService), adminHandler.ListUsers)
			adminGroup.PATCH("/users/:id/role", middleware.AdminMiddleware(userService), adminHandler.UpdateUserRole)
		}
	}

	return router
}
