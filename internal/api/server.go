package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/limbo/timely/internal/service"
)

type Server struct {
	mx              *chi.Mux
	userService     service.UserServiceI
	categoryService service.CategoryServiceI
	activityService service.ActivityServiceI
	reportService   service.ReportServiceI
	trendService    service.TrendServiceI
	jwtService      JWTServiceI
}

type ServicesList struct {
	UserService     service.UserServiceI
	CategoryService service.CategoryServiceI
	ActivityService service.ActivityServiceI
	ReportService   service.ReportServiceI
	TrendService    service.TrendServiceI
	JwtService      JWTServiceI
}

func New(servicesOptions *ServicesList) *Server {
	return &Server{
		mx:              chi.NewMux(),
		userService:     servicesOptions.UserService,
		categoryService: servicesOptions.CategoryService,
		activityService: servicesOptions.ActivityService,
		reportService:   servicesOptions.ReportService,
		trendService:    servicesOptions.TrendService,
		jwtService:      servicesOptions.JwtService,
	}
}

func (s *Server) Run(address string) error {
	s.mountRoutes()
	return http.ListenAndServe(address, s.mx)
}

func (s *Server) mountRoutes() {
	s.mx.Use(s.RequestIDMiddleware, s.SettingUpLoggerMiddleware)
	s.mx.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", s.Register)
		r.Post("/auth/login", s.Login)
		r.Get("/activities/moods", s.MoodChoices)
		r.Group(func(r chi.Router) {
			r.Use(s.AuthMiddleware, s.LoggerExtensionMiddleware)
			r.Post("/auth/logout", s.Logout)
			r.Get("/users/me", s.Me)
			r.Route("/activities", func(r chi.Router) {
				r.Post("/", s.CreateActivity)
				r.Get("/", s.GetActivities)
				r.Get("/{id}", s.GetActivity)
				r.Put("/{id}", s.UpdateActivity)
				r.Delete("/{id}", s.DeleteActivity)
			})
			r.Route("/categories", func(r chi.Router) {
				r.Post("/", s.CreateCategory)
				r.Get("/", s.GetCategories)
				r.Put("/{id}", s.UpdateCategory)
				r.Delete("/{id}", s.DeleteCategory)
			})
			r.Route("/reports", func(r chi.Router) {
				r.Get("/daily", s.DailyReport)
				r.Get("/weekly", s.WeeklyReport)
				r.Get("/monthly", s.MonthlyReport)
				r.Get("/trends", s.CategoryTrends)
			})
		})
	})
}
