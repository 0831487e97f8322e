package server

import (
	"context"
	"net/http"
	"time"

	"tutorslot/internal/auth"
	"tutorslot/internal/booking"
	"tutorslot/internal/config"
	"tutorslot/internal/email"
	"tutorslot/internal/student"
	"tutorslot/internal/ticket"
	"tutorslot/internal/tutor"
	"tutorslot/internal/user"

	"github.com/gin-contrib/cors"
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
	router.Use(RateLimitMiddleware(20, 40))
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Origin", "Content-Type", "Accept", "Authorization"},
		ExposeHeaders:   []string{"Content-Disposition"},
		MaxAge:          12 * time.Hour,
	}))

	userHandler := user.NewHandler(db, cfg.JWTSecret)
	studentHandler := student.NewHandler(db)
	ticketHandler := ticket.NewHandler(db)

	tutorRepo := tutor.NewRepository(db)
	tutorHandler := tutor.NewHandler(tutor.NewService(tutorRepo))

	bookingService := booking.NewService(
		booking.NewRepository(db),
		student.NewRepository(db),
		tutorRepo,
		user.NewRepository(db),
		emailService,
	)
	bookingHandler := booking.NewHandler(bookingService)

	public := router.Group("/auth")
	{
		public.POST("/register", userHandler.Register)
		public.POST("/login", userHandler.Login)
		public.POST("/refresh", userHandler.Refresh)
	}

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)

	protected := router.Group("/")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", userHandler.GetMe)
	}

	api := router.Group("/api")
	api.Use(authMiddleware)
	{
		api.GET("/tutors", tutorHandler.ListTutors)
		api.GET("/tutors/available", tutorHandler.FindAvailable)

		api.GET("/students", studentHandler.ListStudents)
		api.POST("/students", studentHandler.CreateStudent)
		api.GET("/students/:studentID", studentHandler.GetStudent)

		api.POST("/bookings", bookingHandler.Create)
		api.GET("/bookings", bookingHandler.List)
		api.GET("/bookings/:bookingID", bookingHandler.Get)
		api.DELETE("/bookings/:bookingID", bookingHandler.Cancel)
		api.POST("/bookings/:bookingID/report", bookingHandler.SaveReport)
		api.GET("/bookings/:bookingID/report/pdf", bookingHandler.ReportPDF)

		api.GET("/tickets/balance", ticketHandler.GetBalance)
		api.GET("/tickets/history", ticketHandler.ListEntries)
		api.POST("/tickets/purchase", ticketHandler.Purchase)
	}

	tutorOnly := router.Group("/api/tutor")
	tutorOnly.Use(authMiddleware, auth.RequireRole("tutor"))
	{
		tutorOnly.GET("/shifts", tutorHandler.ListShifts)
		tutorOnly.POST("/shifts", tutorHandler.RegisterShifts)
		tutorOnly.GET("/shifts/:date", tutorHandler.ListShiftsByDate)
	}

	admin := router.Group("/admin")
	admin.Use(authMiddleware, auth.RequireRole("admin"))
	{
		admin.POST("/tutors", tutorHandler.CreateTutor)
		admin.GET("/tutors", tutorHandler.ListTutors)
		admin.POST("/tickets/add", ticketHandler.AddTickets)
		admin.POST("/tickets/reset", ticketHandler.ResetTickets)
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
