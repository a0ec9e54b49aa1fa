// internal/app/server.go
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"bizcare-service/internal/config"
	"bizcare-service/internal/db"
	contractHandler "bizcare-service/internal/handlers/contract"
	customerHandler "bizcare-service/internal/handlers/customer"
	wsHandler "bizcare-service/internal/handlers/websocket"
	"bizcare-service/internal/middleware"
	"bizcare-service/internal/pkg/clock"
	"bizcare-service/internal/pkg/jwt"
	"bizcare-service/internal/pkg/ratelimit"
	"bizcare-service/internal/pkg/session"
	"bizcare-service/internal/repository/postgres"
	contractsvc "bizcare-service/internal/service/contract"
	customersvc "bizcare-service/internal/service/customer"
	sequencesvc "bizcare-service/internal/service/sequence"
	"bizcare-service/internal/websocket"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type Server struct {
	cfg    config.AppConfig
	engine *gin.Engine
	http   *http.Server
	logger *zap.Logger

	// Written by Start, read by Shutdown.
	mu     sync.Mutex
	closed bool
	pool   *pgxpool.Pool
	redis  *redis.Client
	stop   context.CancelFunc
}

func NewServer(cfg config.AppConfig, logger *zap.Logger) (*Server, error) {
	engine, err := newEngine(cfg)
	if err != nil {
		return nil, err
	}
	return &Server{
		cfg:    cfg,
		engine: engine,
		http: &http.Server{
			Addr:    cfg.HTTPAddr,
			Handler: engine,
		},
		logger: logger,
	}, nil
}

// newEngine builds the gin engine. Forwarding headers are honored only from
// the configured proxies; with none, the client IP is the socket peer.
func newEngine(cfg config.AppConfig) (*gin.Engine, error) {
	engine := gin.New()
	if err := engine.SetTrustedProxies(cfg.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}
	return engine, nil
}

// keep records a resource for Shutdown. It reports false once Shutdown has
// run, in which case the caller owns the resource.
func (s *Server) keep(set func()) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	set()
	return true
}

// Start connects the backing stores, wires the HTTP surface and serves until
// Shutdown is called. Start after Shutdown returns nil without serving.
func (s *Server) Start(ctx context.Context) error {
	logger := s.logger
	s.mu.Lock()
	closed := s.closed
	s.mu.Unlock()
	if closed {
		return nil
	}

	// ----- PostgreSQL -----
	pool, err := db.ConnectDB(ctx, db.PostgresConfig{
		URL:      s.cfg.DatabaseURL,
		MaxConns: s.cfg.DBMaxConns,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	if !s.keep(func() { s.pool = pool }) {
		pool.Close()
		return nil
	}
	logger.Info("connected to PostgreSQL")

	// ----- Redis -----
	redisClient, err := db.NewRedisClient(ctx, db.RedisConfig{
		Addr:     s.cfg.RedisAddr,
		Password: s.cfg.RedisPass,
		DB:       0,
		PoolSize: 10,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}
	if !s.keep(func() { s.redis = redisClient }) {
		_ = redisClient.Close()
		return nil
	}
	logger.Info("connected to Redis", zap.String("addr", s.cfg.RedisAddr))

	// ----- JWT Verifier -----
	verifier, err := jwt.LoadVerifier(s.cfg.JWT)
	if err != nil {
		return fmt.Errorf("failed to load JWT verifier: %w", err)
	}

	blacklist := session.NewBlacklist(redisClient)
	rateLimiter := ratelimit.NewRateLimiter(redisClient, s.cfg.RateLimitRequests, s.cfg.RateLimitWindow)

	// ----- WebSocket Hub -----
	hubCtx, stopHub := context.WithCancel(context.Background())
	if !s.keep(func() { s.stop = stopHub }) {
		stopHub()
		return nil
	}
	hub := websocket.NewHub(logger)
	go hub.Run(hubCtx)

	// ----- Repositories -----
	dbWrapper := postgres.NewDB(pool)
	contractRepo := postgres.NewContractRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	activityRepo := postgres.NewActivityRepository(pool)
	sequenceRepo := postgres.NewSequenceRepository()

	// ----- Services -----
	allocator := sequencesvc.NewAllocator(sequenceRepo, logger)
	resolver := customersvc.NewResolver(customerRepo, allocator, logger)
	customerService := customersvc.NewCustomerService(customerRepo, activityRepo, logger)
	contractService := contractsvc.NewContractService(
		dbWrapper,
		contractRepo,
		activityRepo,
		resolver,
		allocator,
		hub,
		clock.System{},
		logger,
	)

	// ----- Middlewares -----
	authMiddleware := middleware.NewAuthMiddleware(verifier, blacklist, logger)

	s.engine.Use(
		middleware.RequestID(),
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingMiddleware(logger),
		middleware.CORS(middleware.DefaultCORSConfig(s.cfg.CORSAllowedOrigins)),
	)

	// ----- Router -----
	SetupRouter(s.engine, logger, &Handlers{
		ContractHandler: contractHandler.NewContractHandler(contractService),
		CustomerHandler: customerHandler.NewCustomerHandler(customerService),
		WSHandler:       wsHandler.NewWebSocketHandler(hub, s.cfg.CORSAllowedOrigins, logger),
		AuthMiddleware:  authMiddleware,
		Limiter:         rateLimiter,
		RateLimit:       s.cfg.RateLimitRequests,
	})

	// ----- Start HTTP -----
	logger.Info("server running", zap.String("addr", s.cfg.HTTPAddr))

	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server failed: %w", err)
	}
	return nil
}

// Shutdown drains HTTP requests, then stops the hub and closes the stores.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	s.closed = true
	pool, redisClient, stop := s.pool, s.redis, s.stop
	s.pool, s.redis, s.stop = nil, nil, nil
	s.mu.Unlock()

	var shutdownErr error
	if err := s.http.Shutdown(ctx); err != nil {
		shutdownErr = fmt.Errorf("failed to shut down http server: %w", err)
	}
	if stop != nil {
		stop()
	}
	if redisClient != nil {
		if err := redisClient.Close(); err != nil {
			s.logger.Warn("failed to close Redis client", zap.Error(err))
		}
	}
	if pool != nil {
		pool.Close()
	}
	return shutdownErr
}
