package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/sync/errgroup"

	"github.com/rajasreeit/crm-backend-go/internal/config"
	appHTTP "github.com/rajasreeit/crm-backend-go/internal/handler/http"
	"github.com/rajasreeit/crm-backend-go/internal/pkg/clock"
	"github.com/rajasreeit/crm-backend-go/internal/pkg/database"
	"github.com/rajasreeit/crm-backend-go/internal/pkg/jwt"
	"github.com/rajasreeit/crm-backend-go/internal/pkg/metrics"
	"github.com/rajasreeit/crm-backend-go/internal/pkg/storage"
	"github.com/rajasreeit/crm-backend-go/internal/repository/postgresql"
	serviceAuth "github.com/rajasreeit/crm-backend-go/internal/service/auth"
	employeeService "github.com/rajasreeit/crm-backend-go/internal/service/employee"
	enquiryService "github.com/rajasreeit/crm-backend-go/internal/service/enquiry"
	"github.com/rajasreeit/crm-backend-go/internal/service/file"
	leaveService "github.com/rajasreeit/crm-backend-go/internal/service/leave"
	punchService "github.com/rajasreeit/crm-backend-go/internal/service/punch"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	punchRepo := postgresql.NewPunchRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	adminRepo := postgresql.NewAdminRepository(db)
	leaveRepo := postgresql.NewLeaveRepository(db)
	enquiryRepo := postgresql.NewEnquiryRepository(db)

	jwtService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)
	appMetrics := metrics.New()

	var fileStorage storage.FileStorage
	switch cfg.Storage.Type {
	case "local":
		fileStorage, err = storage.NewLocalStorage(
			cfg.Storage.BasePath,
			cfg.Storage.BaseURL,
		)
		if err != nil {
			log.Fatal("Failed to initialize local storage:", err)
		}
	default:
		log.Fatal("Unsupported storage type: ", cfg.Storage.Type)
	}

	fileService := file.NewFileService(fileStorage)
	engine := punchService.NewEngine(punchRepo, employeeRepo, fileService, clock.System(), appMetrics)
	queries := punchService.NewQueryService(punchRepo, employeeRepo)
	authSvc := serviceAuth.NewAuthService(adminRepo, employeeRepo, jwtService, appMetrics)
	employeeSvc := employeeService.NewEmployeeService(employeeRepo)
	leaveSvc := leaveService.NewLeaveService(leaveRepo, employeeRepo)
	enquirySvc := enquiryService.NewEnquiryService(enquiryRepo, employeeRepo)

	authHandler := appHTTP.NewAuthHandler(authSvc)
	punchHandler := appHTTP.NewPunchHandler(engine, queries)
	employeeHandler := appHTTP.NewEmployeeHandler(employeeSvc)
	leaveHandler := appHTTP.NewLeaveHandler(leaveSvc)
	enquiryHandler := appHTTP.NewEnquiryHandler(enquirySvc)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			Env:      cfg.App.Env,
			LogLevel: parseLogLevel(cfg.App.LogLevel),
		},
		jwtService,
		authHandler,
		punchHandler,
		employeeHandler,
		leaveHandler,
		enquiryHandler,
	)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	apiServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	metricsMux := http.NewServeMux()
	metricsMux.Handle("/metrics", promhttp.Handler())
	metricsServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.MetricsPort),
		Handler: metricsMux,
	}

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		fmt.Printf("Server running at http://localhost%s\n", apiServer.Addr)
		if err := apiServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		if err := metricsServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := apiServer.Shutdown(shutdownCtx); err != nil {
			slog.Error("API server shutdown", "error", err)
		}
		return metricsServer.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		fmt.Println("Server error:", err)
	}
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
