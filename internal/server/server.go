package server

import (
	"context"
	"net/http"

	"coachslot/internal/auth"
	"coachslot/internal/booking"
	"coachslot/internal/config"
	"coachslot/internal/email"
	"coachslot/internal/trainer"
	"coachslot/internal/user"
	"coachslot/internal/wallet"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Server struct {
	router *gin.Engine
	http   *http.Server
	db     *sqlx.DB
	config *config.Config
	email  *email.Service
}

func New(db *sqlx.DB, cfg *config.Config, emailService *email.Service) *Server {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLoggingMiddleware())
	router.Use(MetricsMiddleware())
	router.Use(corsMiddleware())
	router.Use(RateLimitMiddleware(20, 40))

	userHandler := user.NewHandler(db, cfg.JWTSecret)
	trainerHandler := trainer.NewHandler(db)
	walletHandler := wallet.NewHandler(db)
	bookingHandler := booking.NewHandler(db, walletHandler.Service(), emailService)

	public := router.Group("/auth")
	{
		public.POST("/register", userHandler.Register)
		public.POST("/login", userHandler.Login)
		public.POST("/refresh", userHandler.RefreshToken)
	}

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)
	protected := router.Group("/")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", userHandler.GetMe)

		protected.GET("/trainers", trainerHandler.ListTrainers)
		protected.GET("/trainers/:trainerID", trainerHandler.GetTrainer)
		protected.GET("/trainers/:trainerID/availability", trainerHandler.GetAvailability)

		protected.POST("/trainers/:trainerID/bookings", bookingHandler.Reserve)
		protected.POST("/bookings/:bookingID/cancel", bookingHandler.Cancel)
		protected.GET("/bookings", bookingHandler.ListMyBookings)

		protected.GET("/wallet", walletHandler.GetWallet)
		protected.POST("/wallet/topup", walletHandler.TopUp)
		protected.GET("/wallet/transactions", walletHandler.GetTransactions)
	}

	trainerOnly := router.Group("/trainer")
	trainerOnly.Use(authMiddleware, auth.RequireRole(auth.RoleTrainer))
	{
		trainerOnly.PUT("/profile", trainerHandler.UpsertProfile)
		trainerOnly.PUT("/availability", trainerHandler.SetAvailability)
		trainerOnly.GET("/bookings", bookingHandler.ListTrainerBookings)
	}

	admin := router.Group("/admin")
	admin.Use(authMiddleware, auth.RequireRole(auth.RoleAdmin))
	{
		admin.GET("/analytics/bookings", bookingHandler.GetBookingAnalytics)
	}

	router.GET("/health", Health)
	router.GET("/metrics", Metrics())
	router.GET("/test-email", TestEmail(emailService))
	SetupSwagger(router)

	return &Server{
		router: router,
		db:     db,
		config: cfg,
		email:  emailService,
	}
}

func (s *Server) Start(port string) error {
	s.http = &http.Server{
		Addr:    ":" + port,
		Handler: s.router,
	}
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}

func (s *Server) Router() *gin.Engine {
	return s.router
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	}
}
