package main

import (
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/venueflow/portal-backend/internal/config"
	"github.com/venueflow/portal-backend/internal/handler"
	"github.com/venueflow/portal-backend/internal/middleware"
	"github.com/venueflow/portal-backend/internal/migration"
	"github.com/venueflow/portal-backend/internal/routes"
	"github.com/venueflow/portal-backend/internal/service"
	"github.com/venueflow/portal-backend/pkg/jwt"
	pkglogger "github.com/venueflow/portal-backend/pkg/logger"
	pkgredis "github.com/venueflow/portal-backend/pkg/redis"
)

// getConfigPath returns config file path based on APP_ENV environment variable
func getConfigPath() string {
	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	return fmt.Sprintf("configs/config.%s.yaml", env)
}

func main() {
	dotenvFiles := config.LoadDotEnv()

	env := os.Getenv("APP_ENV")
	if env == "" {
		env = "local"
	}
	pkglogger.InitStructured(env)
	zlog := pkglogger.GetLogger()
	zlog.Info().Str("env", env).Strs("dotenv", dotenvFiles).Msg("starting portal-backend")

	configPath := getConfigPath()
	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// MySQL
	db, err := initDB(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	zlog.Info().Msg("connected to MySQL")
	if err := migration.Run(db); err != nil {
		log.Fatalf("Migration failed: %v", err)
	}

	// Redis (optional; the API degrades to uncached, unlimited mode)
	redisClient, err := pkgredis.NewClient(
		cfg.Redis.Host,
		cfg.Redis.Port,
		cfg.Redis.Password,
		cfg.Redis.DB,
		cfg.Redis.PoolSize,
	)
	if err != nil {
		zlog.Warn().Err(err).Msg("Redis unavailable, continuing without cache")
		redisClient = nil
	} else {
		zlog.Info().Msg("connected to Redis")
	}

	jwtManager := jwt.NewManager(cfg.JWT.Secret)

	// Services
	contentService := service.NewContentService(db)
	versionService := service.NewVersionService(db, contentService)
	lockService := service.NewLockService(db,
		time.Duration(cfg.CMS.LockDurationMinutes)*time.Minute)
	activityLogger := middleware.NewActivityLogger(db)

	// Background sweep so abandoned locks don't linger between acquires.
	// Failures are logged and swallowed; a sweep must never take the
	// process down.
	sweepEvery := time.Duration(cfg.CMS.LockSweepMinutes) * time.Minute
	go func() {
		ticker := time.NewTicker(sweepEvery)
		defer ticker.Stop()
		for range ticker.C {
			n, err := lockService.CleanupExpired()
			if err != nil {
				zlog.Warn().Err(err).Msg("lock sweep failed")
				continue
			}
			middleware.CountExpiredLocksReaped(n)
			if n > 0 {
				zlog.Info().Int64("removed", n).Msg("expired content locks removed")
			}
		}
	}()

	// Router
	if !cfg.IsDevelopment() {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())

	allowOrigins := cfg.CORS.AllowOrigins
	if allowOrigins == "" {
		allowOrigins = "http://localhost:3000"
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     splitAndTrim(allowOrigins, ","),
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Request-ID"},
		AllowCredentials: true,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		ExposeHeaders:    []string{"X-Request-ID", "X-RateLimit-Remaining", "X-Cache"},
		MaxAge:           86400 * time.Second,
	}))

	router.Use(middleware.SecurityHeaders())
	router.Use(middleware.Metrics())
	router.Use(middleware.RequestLogger())

	if redisClient != nil && !cfg.IsDevelopment() {
		router.Use(middleware.RateLimit(redisClient, middleware.DefaultRateLimitConfig()))
	}

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": "portal-backend",
			"time":    time.Now().Unix(),
		})
	})

	h := routes.Handlers{
		Content:  handler.NewContentHandler(contentService, activityLogger, redisClient),
		Versions: handler.NewVersionHandler(versionService, activityLogger, redisClient),
		Locks:    handler.NewLockHandler(lockService, activityLogger),
		Public:   handler.NewPublicHandler(contentService),
		Activity: handler.NewActivityHandler(activityLogger),
	}
	publicTTL := time.Duration(cfg.CMS.PublicCacheTTLSecond) * time.Second
	routes.Setup(router, h, jwtManager, redisClient, publicTTL)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	zlog.Info().Str("addr", addr).Msg("server listening")
	if err := router.Run(addr); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}

// splitAndTrim splits a string by delimiter and trims spaces
func splitAndTrim(s, delimiter string) []string {
	parts := []string{}
	for _, part := range strings.Split(s, delimiter) {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}

// initDB opens the MySQL connection pool
func initDB(cfg *config.Config) (*gorm.DB, error) {
	mysqlCfg, err := mysqldriver.ParseDSN(cfg.Database.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("parse DSN: %w", err)
	}

	db, err := gorm.Open(mysql.Open(mysqlCfg.FormatDSN()), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	return db, nil
}
