package bootstrap

import (
	"context"
	"time"

	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/rdsdata"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/protolab/prototype-portal/config"
	"github.com/protolab/prototype-portal/internal/auth"
	"github.com/protolab/prototype-portal/internal/auth/middleware"
	"github.com/protolab/prototype-portal/internal/datamode"
	"github.com/protolab/prototype-portal/internal/domain"
	"github.com/protolab/prototype-portal/internal/generation"
	"github.com/protolab/prototype-portal/internal/repository/memory"
	"github.com/protolab/prototype-portal/internal/repository/rdb"
	"github.com/protolab/prototype-portal/internal/service"
	"github.com/protolab/prototype-portal/internal/store"
)

// App holds every long-lived dependency of the portal process.
type App struct {
	Executor      store.Executor
	Mode          *datamode.State
	Generation    *generation.Client
	Mock          *memory.Store
	Stats         *store.Stats
	Services      *service.Services
	Tokens        *auth.TokenManager
	MockAuth      auth.Provider
	RealAuth      auth.Provider
	TokenFallback middleware.TokenVerifier

	pool  *pgxpool.Pool
	redis *redis.Client
}

// NewApp wires the portal. Missing or unreachable optional backends (real
// store, redis, generation, Firebase) are logged and replaced by their
// disabled or in-memory counterparts.
func NewApp(ctx context.Context, cfg *config.Config, log *zap.Logger) (*App, error) {
	a := &App{Stats: &store.Stats{}}

	a.Executor, a.pool = OpenExecutor(ctx, cfg.Store, log)
	exec := a.Executor

	modeStore, redisClient := OpenModeStore(ctx, cfg.Redis, log)
	a.redis = redisClient
	a.Mode = datamode.Restore(ctx, modeStore, log)

	gen, err := generation.New(ctx, cfg.Generation, log)
	if err != nil {
		log.Warn("generation client unavailable, continuing without it", zap.Error(err))
		gen = generation.Disabled()
	}
	a.Generation = gen

	a.Mock = memory.NewStore()
	mockRepos := a.Mock.Repositories()
	a.Services = service.New(service.Sources{
		Mock:          mockRepos,
		Real:          rdb.NewRepositories(exec),
		RealAvailable: exec.Available(),
		Stats:         a.Stats,
	}, gen, log)

	a.Tokens = auth.NewTokenManager(cfg.Auth)
	mockAuth, err := auth.NewMockProvider(mockRepos.Users, cfg.Auth.MockPassword, log)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.MockAuth = mockAuth

	fb, err := auth.InitializeFirebase(ctx, cfg.Firebase)
	if err != nil {
		log.Warn("firebase unavailable, real-mode tokens disabled", zap.Error(err))
	}
	var verifier auth.IDTokenVerifier
	if fb != nil {
		verifier = fb
	}
	users := a.Services.Users
	firebaseAuth := auth.NewFirebaseProvider(verifier, func(ctx context.Context, email string) (domain.User, error) {
		return users.FindByEmail(ctx, false, email)
	})
	a.RealAuth = firebaseAuth
	if verifier != nil {
		a.TokenFallback = firebaseAuth
	}

	log.Info("portal wired",
		zap.Bool("real_store", exec.Available()),
		zap.String("data_mode", string(a.Mode.Mode())),
		zap.String("generation", gen.Provider()),
		zap.Bool("firebase", verifier != nil),
	)
	return a, nil
}

// OpenExecutor builds the executor for the configured driver. Incomplete
// configuration, an unreachable Postgres or unusable AWS settings yield
// store.Unavailable.
func OpenExecutor(ctx context.Context, cfg config.StoreConfig, log *zap.Logger) (store.Executor, *pgxpool.Pool) {
	if !cfg.RealConfigured() {
		log.Info("real store not configured, serving mock data only", zap.String("driver", cfg.Driver))
		return store.Unavailable{}, nil
	}

	switch cfg.Driver {
	case "postgres":
		pool, err := OpenDB(ctx, DBOptions{DSN: cfg.DSN, MaxConns: cfg.MaxConns})
		if err != nil {
			log.Warn("postgres unreachable, serving mock data only", zap.Error(err))
			return store.Unavailable{}, nil
		}
		return store.NewPostgresExecutor(pool, log), pool
	default:
		awsCfg, err := awscfg.LoadDefaultConfig(ctx, awscfg.WithRegion(cfg.Region))
		if err != nil {
			log.Warn("aws config unusable, serving mock data only", zap.Error(err))
			return store.Unavailable{}, nil
		}
		return store.NewRDSDataExecutor(rdsdata.NewFromConfig(awsCfg), store.RDSDataOptions{
			ResourceARN: cfg.ResourceARN,
			SecretARN:   cfg.SecretARN,
			Database:    cfg.Database,
		}, log), nil
	}
}

// OpenModeStore returns the redis-backed data-mode store when redis is
// configured and answers, and an in-memory store otherwise.
func OpenModeStore(ctx context.Context, cfg config.RedisConfig, log *zap.Logger) (datamode.Store, *redis.Client) {
	if cfg.Addr == "" {
		return datamode.NewMemoryStore(), nil
	}

	client := redis.NewClient(&redis.Options{Addr: cfg.Addr, Password: cfg.Password, DB: cfg.DB})
	pctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pctx).Err(); err != nil {
		log.Warn("redis unreachable, data mode will not survive restarts", zap.String("addr", cfg.Addr), zap.Error(err))
		_ = client.Close()
		return datamode.NewMemoryStore(), nil
	}
	return datamode.NewRedisStore(client, cfg.Prefix), client
}

func (a *App) Close() {
	if a.pool != nil {
		a.pool.Close()
	}
	if a.redis != nil {
		_ = a.redis.Close()
	}
}
