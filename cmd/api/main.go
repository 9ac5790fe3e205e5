// @title Time-tracker API
// @description API for personal time-tracking app "Timely"
// @BasePath /api/v1
// @schemes http
package main

import (
	"log"

	"github.com/limbo/timely/internal/api"
	"github.com/limbo/timely/internal/repository"
	"github.com/limbo/timely/internal/service"
	"github.com/limbo/timely/pkg/cleanup"
	"github.com/limbo/timely/pkg/config"
	jwtservice "github.com/limbo/timely/pkg/jwt_service"
)

func init() {
	service.InitValidator()
}

func main() {
	cfg := config.New()
	dbCfg := repository.PGCfg{
		Address:  cfg.GetString("POSTGRES_DB_ADDRESS"),
		Username: cfg.GetString("POSTGRES_USER"),
		Password: cfg.GetString("POSTGRES_PASSWORD"),
		DB:       cfg.GetString("POSTGRES_DB"),
	}
	activitiesRepo := repository.NewActivitiesRepo(&dbCfg)
	categoriesRepo := repository.NewCategoriesRepo(&dbCfg)
	serv := api.New(&api.ServicesList{
		UserService:     service.NewUserService(repository.NewUsersRepo(&dbCfg)),
		CategoryService: service.NewCategoryService(categoriesRepo),
		ActivityService: service.NewActivityService(activitiesRepo, categoriesRepo),
		ReportService:   service.NewReportService(activitiesRepo),
		TrendService:    service.NewTrendService(activitiesRepo, categoriesRepo),
		JwtService:      jwtservice.New(cfg.GetString("JWT_SECRET")),
	})
	defer cleanup.CleanUp()
	err := serv.Run(cfg.GetString("API_ADDRESS"))
	if err != nil {
		log.Println("Server error: " + err.Error())
	}
}
