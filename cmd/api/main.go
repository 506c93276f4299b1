package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"hotel/internal/config"
	"hotel/internal/database"
	"hotel/internal/events"
	"hotel/internal/middleware"
	"hotel/internal/modules/admin"
	"hotel/internal/modules/auth"
	"hotel/internal/modules/blog"
	"hotel/internal/modules/message"
	"hotel/internal/modules/payment"
	"hotel/internal/modules/reservation"
	"hotel/internal/modules/room"
	"hotel/internal/modules/stats"
	"hotel/internal/modules/testimonial"
	jwtsvc "hotel/internal/pkg/jwt"
	"hotel/internal/repository"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	logger, err := newLogger(cfg)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()
	loggerf := middleware.Loggerf(logger)

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("database connect failed", zap.Error(err))
	}
	if err := database.Migrate(db); err != nil {
		logger.Fatal("database migrate failed", zap.Error(err))
	}

	rdb := config.NewRedisClient(cfg.Redis)
	if rdb == nil {
		logger.Info("redis unavailable, rate limiting disabled")
	} else {
		defer func() { _ = rdb.Close() }()
	}

	var publisher events.Publisher = events.Nop{}
	if cfg.RabbitMQURL != "" {
		amqpPub := events.NewAMQPPublisher(cfg.RabbitMQURL, cfg.EventsExchange)
		defer func() { _ = amqpPub.Close() }()
		publisher = amqpPub
		logger.Info("publishing domain events", zap.String("exchange", cfg.EventsExchange))
	}

	userRepo := repository.NewUserRepository(db)
	roomRepo := repository.NewRoomRepository(db)
	reservationRepo := repository.NewReservationRepository(db)
	paymentRepo := repository.NewPaymentRepository(db)
	messageRepo := repository.NewMessageRepository(db)
	blogRepo := repository.NewBlogPostRepository(db)
	testimonialRepo := repository.NewTestimonialRepository(db)
	reportRepo := repository.NewReportRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTTTL)

	authHandler := auth.NewHandler(auth.NewService(userRepo, j, loggerf))
	adminHandler := admin.NewHandler(admin.NewService(userRepo, loggerf))
	roomHandler := room.NewHandler(room.NewService(roomRepo, loggerf))
	reservationHandler := reservation.NewHandler(reservation.NewService(reservationRepo, roomRepo, publisher, loggerf))
	paymentHandler := payment.NewHandler(payment.NewService(paymentRepo, reservationRepo, publisher, loggerf), loggerf)
	statsHandler := stats.NewHandler(stats.NewService(reportRepo, loggerf))
	blogHandler := blog.NewHandler(blog.NewService(blogRepo, loggerf))
	testimonialHandler := testimonial.NewHandler(testimonial.NewService(testimonialRepo, loggerf))

	hub := message.NewHub()
	defer hub.Close()
	messageHandler := message.NewHandler(message.NewService(messageRepo, userRepo, hub, loggerf))
	wsHandler := message.NewWSHandler(hub, j, loggerf)

	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(
		middleware.RequestID(),
		middleware.ErrorLogger(logger),
		middleware.RequestLogger(logger),
		middleware.CORS(cfg.CORSOrigins),
	)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := r.Group("/api/v1")
	v1.Use(middleware.OptionalJWT(j), middleware.RateLimit(cfg.RateLimit, rdb))
	{
		// public
		authHandler.RegisterPublicRoutes(v1)
		roomHandler.RegisterPublicRoutes(v1)
		reservationHandler.RegisterPublicRoutes(v1)
		v1.GET("/ws/messages", wsHandler.HandleWebSocket)

		protected := v1.Group("")
		protected.Use(middleware.JWTAuth(j))
		{
			authHandler.RegisterProtectedRoutes(protected)
			roomHandler.RegisterProtectedRoutes(protected)
			reservationHandler.RegisterRoutes(protected)
			paymentHandler.RegisterProtectedRoutes(protected)
			messageHandler.RegisterRoutes(protected)
			statsHandler.RegisterRoutes(protected)
		}

		blogHandler.RegisterRoutes(v1, protected)
		testimonialHandler.RegisterRoutes(v1, protected)

		adminGroup := protected.Group("/admin")
		adminGroup.Use(middleware.AdminOrManager())
		{
			adminHandler.RegisterRoutes(adminGroup)
		}
	}

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("http server listening", zap.String("addr", srv.Addr), zap.String("env", cfg.AppEnv))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("http server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("graceful shutdown failed", zap.Error(err))
	}
}

func newLogger(cfg *config.Config) (*zap.Logger, error) {
	if cfg.IsProduction() {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
