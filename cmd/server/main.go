package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // .env loader for local development
	"github.com/labstack/echo/v4" // Echo web framework
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/okandemir/student-info-api/internal/config"
	"github.com/okandemir/student-info-api/internal/database"
	"github.com/okandemir/student-info-api/internal/handler"
	"github.com/okandemir/student-info-api/internal/middleware"
	"github.com/okandemir/student-info-api/internal/queue"
	"github.com/okandemir/student-info-api/internal/repository"
	"github.com/okandemir/student-info-api/internal/router"
)

func main() {
	// Local development reads configuration from a .env file; in containers
	// the variables come from the environment and the file is absent.
	_ = godotenv.Load()

	cfg := config.Load() // fatals when JWT_SECRET or DB settings are missing

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	defer db.Close()

	// Redis is optional: a nil client disables caching and rate limiting.
	rdb := config.NewRedisClient()
	if rdb == nil {
		log.Println("redis unavailable; cache and rate limiting disabled")
	}
	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)
	loginLimiter := middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb)

	// Background audit consumer; reconnects on its own if the broker drops.
	queue.StartAuditConsumer()

	users := repository.NewUserRepo(db)
	students := repository.NewStudentRepo(db)
	teachers := repository.NewTeacherRepo(db)
	courses := repository.NewCourseRepo(db)
	grades := repository.NewGradeRepo(db)
	attendances := repository.NewAttendanceRepo(db)
	stats := repository.NewStatsRepo(db)

	e := echo.New()
	e.HideBanner = true
	e.Use(echomw.Recover())
	e.Use(echomw.Logger())
	e.Use(echomw.CORS())
	e.Use(echomw.SecureWithConfig(echomw.SecureConfig{
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "DENY",
	}))

	router.RegisterRoutes(e)
	router.RegisterUsers(e,
		handler.NewAuthHandler(cfg, users),
		handler.NewUserHandler(users),
		cfg.JWTSecret, loginLimiter)
	router.RegisterRoster(e,
		handler.NewStudentHandler(students),
		handler.NewTeacherHandler(teachers),
		handler.NewCourseHandler(courses),
		handler.NewGradeHandler(grades),
		handler.NewAttendanceHandler(attendances),
		handler.NewStatsHandler(stats),
		cfg.JWTSecret, cacheMW)

	addr := ":" + cfg.Port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env)

	if err := e.Start(addr); err != nil {
		log.Fatal(err)
	}
}
