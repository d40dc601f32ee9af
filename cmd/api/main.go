package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/attendly/attendly-backend-go/internal/config"
	appHTTP "github.com/attendly/attendly-backend-go/internal/handler/http"
	"github.com/attendly/attendly-backend-go/internal/pkg/cache"
	"github.com/attendly/attendly-backend-go/internal/pkg/clock"
	"github.com/attendly/attendly-backend-go/internal/pkg/cron"
	"github.com/attendly/attendly-backend-go/internal/pkg/database"
	"github.com/attendly/attendly-backend-go/internal/pkg/jwt"
	"github.com/attendly/attendly-backend-go/internal/pkg/oauth"
	"github.com/attendly/attendly-backend-go/internal/repository/postgresql"

	"github.com/attendly/attendly-backend-go/internal/domain/attendance"
	attendanceService "github.com/attendly/attendly-backend-go/internal/service/attendance"
	authService "github.com/attendly/attendly-backend-go/internal/service/auth"
	dashboardService "github.com/attendly/attendly-backend-go/internal/service/dashboard"
	reportService "github.com/attendly/attendly-backend-go/internal/service/report"
)

const dashboardCacheTTL = 60 * time.Second

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		os.Exit(1)
	}

	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		os.Exit(1)
	}
	defer db.Close()

	officeStart, err := attendance.ParseOfficeStart(cfg.Attendance.OfficeStart)
	if err != nil {
		fmt.Println("Error parsing office start:", err)
		os.Exit(1)
	}

	userRepo := postgresql.NewUserRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	refreshTokenRepo := postgresql.NewRefreshTokenRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration, cfg.JWT.RefreshExpiration)
	googleService := oauth.NewGoogleService(cfg.OAuth2Google.ClientID, cfg.OAuth2Google.ClientSecret, cfg.OAuth2Google.RedirectURL, cfg.OAuth2Google.Scopes)

	redisClient := cache.NewRedisClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	if redisClient == nil && cfg.Redis.Addr != "" {
		slog.Warn("Redis unreachable, dashboard caching disabled", "addr", cfg.Redis.Addr)
	}
	dashboardCache := cache.New(redisClient, dashboardCacheTTL)

	clk := clock.System()

	txRunner := func(ctx context.Context, fn func(ctx context.Context) error) error {
		return postgresql.WithTransaction(ctx, db, fn)
	}

	authSvc := authService.NewAuthService(userRepo, refreshTokenRepo, jwtService, googleService, clk, txRunner)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, userRepo, dashboardCache, clk, officeStart)
	dashboardSvc := dashboardService.NewDashboardService(attendanceRepo, userRepo, dashboardCache, clk)
	reportSvc := reportService.NewReportService(attendanceSvc, clk)

	authHandler := appHTTP.NewAuthHandler(authSvc, jwtService)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc)
	dashboardHandler := appHTTP.NewDashboardHandler(dashboardSvc)
	reportHandler := appHTTP.NewReportHandler(reportSvc)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			AllowedOrigins: cfg.App.AllowedOrigins,
			Env:            cfg.App.Env,
		},
		jwtService,
		authHandler,
		attendanceHandler,
		dashboardHandler,
		reportHandler,
	)

	scheduler := cron.NewScheduler()
	cron.NewAttendanceJobs(attendanceRepo, userRepo, refreshTokenRepo, clk).RegisterJobs(scheduler)
	scheduler.Start()
	defer scheduler.Stop()

	port := fmt.Sprintf(":%d", cfg.App.Port)
	server := &http.Server{
		Addr:              port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		slog.Info("Server running", "addr", port, "env", cfg.App.Env)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Println("Server error:", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("Shutting down")
	_ = server.Close()
}
