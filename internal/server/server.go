package server

import (
	"context"
	"net/http"
	"time"

	"rocketfist/internal/auth"
	"rocketfist/internal/billing"
	"rocketfist/internal/class"
	"rocketfist/internal/config"
	"rocketfist/internal/email"
	"rocketfist/internal/gym"
	"rocketfist/internal/member"
	"rocketfist/internal/registration"
	"rocketfist/internal/schedule"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

// Handlers groups the feature handlers mounted by NewRouter.
type Handlers struct {
	Gym          *gym.Handler
	Class        *class.Handler
	Schedule     *schedule.Handler
	Registration *registration.Handler
	Member       *member.Handler
	Billing      *billing.Handler
}

type Server struct {
	router   *gin.Engine
	http     *http.Server
	schedule schedule.Service
}

func New(database *sqlx.DB, cfg *config.Config, emailService *email.Service) *Server {
	gymService := gym.NewService(gym.NewRepository(database))
	classService := class.NewService(class.NewRepository(database), gymService)
	scheduleService := schedule.NewService(
		schedule.NewRepository(database),
		gymService,
		classService,
		emailService,
		cfg.ExpansionWeeksAhead,
	)
	registrationService := registration.NewService(registration.NewRepository(database), gymService, emailService)
	memberService := member.NewService(member.NewRepository(database), gymService)
	billingService := billing.NewService(billing.NewRepository(database), gymService, cfg.DefaultCurrency)

	handlers := Handlers{
		Gym:          gym.NewHandler(gymService),
		Class:        class.NewHandler(classService),
		Schedule:     schedule.NewHandler(scheduleService),
		Registration: registration.NewHandler(registrationService),
		Member:       member.NewHandler(memberService),
		Billing:      billing.NewHandler(billingService),
	}
	checks := map[string]Check{
		"database": database.PingContext,
		"redis":    emailService.Ping,
	}

	router := NewRouter(cfg, handlers, checks)

	return &Server{
		router: router,
		http: &http.Server{
			Addr:              ":" + cfg.Port,
			Handler:           router,
			ReadHeaderTimeout: 10 * time.Second,
		},
		schedule: scheduleService,
	}
}

// NewRouter mounts every route. Reads of gyms, classes, schedules and plans
// are public; registering and cancelling need any valid token; everything
// else needs a staff role.
func NewRouter(cfg *config.Config, h Handlers, checks map[string]Check) *gin.Engine {
	router := gin.New()
	router.Use(
		gin.Recovery(),
		RequestLoggingMiddleware(),
		MetricsMiddleware(),
		corsMiddleware(),
		RateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst),
	)

	router.GET("/health", Health(checks))
	router.GET("/metrics", Metrics())
	SetupSwagger(router)

	public := router.Group("/gyms")
	{
		public.GET("", h.Gym.ListGyms)
		public.GET("/:gymID", h.Gym.GetGym)
		public.GET("/:gymID/classes", h.Class.ListClasses)
		public.GET("/:gymID/classes/:classID", h.Class.GetClass)
		public.GET("/:gymID/schedule", h.Schedule.GetSchedule)
		public.GET("/:gymID/schedule/today", h.Schedule.Today)
		public.GET("/:gymID/plans", h.Billing.ListPlans)
	}

	authMiddleware := auth.AuthMiddleware(cfg.JWTSecret)

	members := router.Group("/gyms/:gymID", authMiddleware)
	{
		members.POST("/instances/:instanceID/registrations", h.Registration.Register)
		members.POST("/registrations/:registrationID/cancel", h.Registration.Cancel)
	}

	staff := router.Group("/gyms/:gymID", authMiddleware, auth.RequireRole(auth.StaffRoles...))
	{
		staff.GET("/members", h.Member.ListMembers)
		staff.GET("/members/:memberID", h.Member.GetMember)
		staff.GET("/stats/revenue", h.Billing.GetRevenue)

		staff.POST("/classes", h.Class.CreateClass)
		staff.PATCH("/classes/:classID", h.Class.UpdateClass)
		staff.PUT("/classes/:classID/patterns", h.Class.ReplacePatterns)
		staff.POST("/classes/:classID/expand", h.Schedule.ExpandClass)

		staff.POST("/instances", h.Schedule.CreateInstance)
		staff.GET("/instances/:instanceID/roster", h.Registration.GetRoster)
		staff.POST("/instances/:instanceID/cancel", h.Schedule.CancelInstance)
		staff.POST("/instances/:instanceID/complete", h.Schedule.CompleteInstance)

		staff.POST("/registrations/:registrationID/check-in", h.Registration.CheckIn)
		staff.POST("/registrations/:registrationID/no-show", h.Registration.NoShow)
	}

	owners := router.Group("/gyms", authMiddleware, auth.RequireRole(auth.RoleOwner, auth.RoleAdmin))
	{
		owners.POST("", h.Gym.CreateGym)
	}

	return router
}

// Schedule exposes the schedule service for the expansion job.
func (s *Server) Schedule() schedule.Service {
	return s.schedule
}

func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start() error {
	return s.http.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}
