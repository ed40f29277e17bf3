package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/cmlabs-hris/dakokun-backend-go/internal/config"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/domain/request"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/fixtures"
	appHTTP "github.com/cmlabs-hris/dakokun-backend-go/internal/handler/http"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/pkg/logger"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/pkg/mq"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/repository/memory"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/dakokun-backend-go/internal/service/attendance"
	authService "github.com/cmlabs-hris/dakokun-backend-go/internal/service/auth"
	"github.com/cmlabs-hris/dakokun-backend-go/internal/service/directory"
	reportService "github.com/cmlabs-hris/dakokun-backend-go/internal/service/report"
	requestService "github.com/cmlabs-hris/dakokun-backend-go/internal/service/request"
	"github.com/go-chi/chi/v5"
	"golang.org/x/crypto/bcrypt"
)

// Server wraps the HTTP server, its router and the resources it owns.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	db         *database.DB
	broker     *mq.MQ
	logger     *slog.Logger
}

type repositories struct {
	users       user.UserRepository
	timeEntries attendance.TimeEntryRepository
	requests    request.RequestRepository
}

// openRepositories builds the configured persistence backend. The memory
// backend starts with the demo data loaded.
func openRepositories(ctx context.Context, cfg *config.Config, loc *time.Location) (repositories, *database.DB, error) {
	switch cfg.Database.Backend {
	case config.StorageBackendMemory:
		data := fixtures.Demo(time.Now(), loc)
		if err := fixtures.HashDemoPasswords(data.Users, bcrypt.DefaultCost); err != nil {
			return repositories{}, nil, fmt.Errorf("hash demo passwords: %w", err)
		}
		store := memory.NewSeededStore(data)
		return repositories{
			users:       store.Users(),
			timeEntries: store.TimeEntries(),
			requests:    store.Requests(),
		}, nil, nil
	case config.StorageBackendPostgres:
		dsn := cfg.DatabaseURL()
		if cfg.Database.AutoMigrate {
			if err := database.MigrateUp(dsn); err != nil {
				return repositories{}, nil, err
			}
		}
		db, err := database.NewPostgreSQLDB(ctx, dsn)
		if err != nil {
			return repositories{}, nil, fmt.Errorf("connect to database: %w", err)
		}
		return repositories{
			users:       postgresql.NewUserRepository(db),
			timeEntries: postgresql.NewTimeEntryRepository(db),
			requests:    postgresql.NewRequestRepository(db),
		}, db, nil
	default:
		return repositories{}, nil, fmt.Errorf("unsupported storage backend %q", cfg.Database.Backend)
	}
}

// OpenBroker connects the configured event backend.
func OpenBroker(cfg *config.Config) (*mq.MQ, error) {
	switch cfg.MQ.Backend {
	case config.MQBackendRabbitMQ:
		client, err := mq.NewRabbitMQClient(cfg.MQ.RabbitMQ)
		if err != nil {
			return nil, fmt.Errorf("connect to rabbitmq: %w", err)
		}
		return mq.New(client, cfg.MQ.RabbitMQ.QueuePrefix), nil
	default:
		return mq.New(mq.NoopBackend{}, cfg.MQ.RabbitMQ.QueuePrefix), nil
	}
}

// New wires repositories, services and handlers for cfg.
func New(ctx context.Context, cfg *config.Config, log *slog.Logger) (*Server, error) {
	if log == nil {
		log = slog.Default()
	}
	loc, err := cfg.Location()
	if err != nil {
		return nil, err
	}

	repos, db, err := openRepositories(ctx, cfg, loc)
	if err != nil {
		return nil, err
	}

	broker, err := OpenBroker(cfg)
	if err != nil {
		if db != nil {
			db.Close()
		}
		return nil, err
	}

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	directoryService := directory.NewDirectoryService(repos.users)
	attendanceSvc := attendanceService.NewAttendanceService(repos.timeEntries, directoryService, loc, log)
	requestSvc := requestService.NewRequestService(repos.requests, directoryService,
		requestService.WithPublisher(broker),
		requestService.WithLogger(log),
	)
	reportSvc := reportService.NewReportService(attendanceSvc, loc, log)
	authSvc := authService.NewAuthService(repos.users, JWTService, log)

	router := appHTTP.NewRouter(appHTTP.RouterOptions{
		Logger:         log,
		LogLevel:       logger.ParseLevel(cfg.App.LogLevel),
		AllowedOrigins: cfg.App.CORSAllowedOrigins,
	}, JWTService, appHTTP.Handlers{
		Auth:       appHTTP.NewAuthHandler(authSvc),
		Attendance: appHTTP.NewAttendanceHandler(attendanceSvc, loc, time.Now),
		Report:     appHTTP.NewReportHandler(reportSvc, time.Now),
		Directory:  appHTTP.NewDirectoryHandler(directoryService),
		Request:    appHTTP.NewRequestHandler(requestSvc, directoryService),
	})

	port := cfg.App.Port
	if port == 0 {
		port = 8080
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
		db:         db,
		broker:     broker,
		logger:     log,
	}, nil
}

// Router exposes the chi router.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server until Shutdown is called.
func (s *Server) Start() error {
	s.logger.Info("http server listening", slog.String("addr", s.httpServer.Addr))
	if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown drains in-flight requests, then releases the broker and database.
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.httpServer.Shutdown(ctx)
	if s.broker != nil {
		if closeErr := s.broker.Close(); closeErr != nil {
			s.logger.Warn("close broker", slog.Any("error", closeErr))
		}
	}
	if s.db != nil {
		s.db.Close()
	}
	return err
}
