package cli

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/beka-birhanu/maze-runner/api"
	api_i "github.com/beka-birhanu/maze-runner/api/i"
	"github.com/beka-birhanu/maze-runner/api/identity"
	mazeapi "github.com/beka-birhanu/maze-runner/api/mazes"
	runapi "github.com/beka-birhanu/maze-runner/api/runs"
	"github.com/beka-birhanu/maze-runner/config"
	"github.com/beka-birhanu/maze-runner/infrastruture/cache"
	logger "github.com/beka-birhanu/maze-runner/infrastruture/log"
	"github.com/beka-birhanu/maze-runner/infrastruture/repo"
	"github.com/beka-birhanu/maze-runner/infrastruture/sortedstorage"
	"github.com/beka-birhanu/maze-runner/infrastruture/token"
	"github.com/beka-birhanu/maze-runner/service"
	"github.com/beka-birhanu/maze-runner/service/i"
)

const (
	storeMongo  = "mongo"
	storeSQLite = "sqlite"

	connectTimeout = 30 * time.Second
)

// server holds the dependencies of the HTTP API.
type server struct {
	cfg       *config.Config
	debug     bool
	appLogger *logger.Logger

	mongoClient    *mongo.Client
	redisClient    *redis.Client
	sqliteRuns     *repo.SQLiteRunRepo
	sqliteAccounts *repo.SQLiteAccountRepo

	accountRepo   i.AccountRepo
	runRepo       i.RunRepo
	pathCache     i.PathCache
	leaderboard   i.Leaderboard
	jwtTokenizer  i.Tokenizer
	authService   i.Authenticator
	runnerService *service.RunnerService
	controllers   []api_i.Controller
	router        *api.Router
}

func serveCmd(a *app) *cobra.Command {
	var store string

	c := &cobra.Command{
		Use:   "serve",
		Short: "Serve the maze runner HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if store != storeMongo && store != storeSQLite {
				return fmt.Errorf("unknown run store %q (expected %s|%s)", store, storeMongo, storeSQLite)
			}

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := cfg.ValidateServer(store == storeMongo); err != nil {
				return err
			}

			s := &server{cfg: cfg, debug: a.debug || cfg.Debug}
			defer s.close()
			return s.run(cmd.Context(), store)
		},
	}

	c.Flags().StringVar(&store, "store", storeMongo, "where accounts and runs are kept: mongo (DB_*) or sqlite (SQLITE_PATH)")
	return c
}

func (s *server) run(ctx context.Context, store string) error {
	var err error
	if s.appLogger, err = newLogger("APP", config.ColorGreen, os.Stdout, s.debug); err != nil {
		return err
	}

	connectCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()

	// Initialize dependencies
	if store == storeMongo {
		if err := s.initMongo(connectCtx); err != nil {
			return err
		}
	}
	if err := s.initAccountRepo(connectCtx, store); err != nil {
		return err
	}
	if err := s.initRunRepo(store); err != nil {
		return err
	}
	if err := s.initRedis(connectCtx); err != nil {
		return err
	}
	if err := s.initPathCache(); err != nil {
		return err
	}
	s.initLeaderboard()
	s.initJWTTokenizer()
	if err := s.initAuthService(); err != nil {
		return err
	}
	if err := s.initRunnerService(); err != nil {
		return err
	}
	s.initControllers()
	s.initRouter()

	gin.SetMode(s.cfg.GinMode)
	s.appLogger.Info(fmt.Sprintf("Listening on %s", s.cfg.RESTAddr()))

	// Run HTTP server until interrupted
	sigCtx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := s.router.Run(sigCtx); err != nil {
		s.appLogger.Error(fmt.Sprintf("Starting server: %v", err))
		return err
	}
	s.appLogger.Info("Server stopped")
	return nil
}

func (s *server) initMongo(ctx context.Context) error {
	clientOptions := options.Client().ApplyURI(s.cfg.MongoURI())
	var err error
	s.mongoClient, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		s.appLogger.Error(fmt.Sprintf("Failed to connect to MongoDB: %v", err))
		return err
	}
	if err = s.mongoClient.Ping(ctx, nil); err != nil {
		s.appLogger.Error(fmt.Sprintf("MongoDB ping failed: %v", err))
		return err
	}
	s.appLogger.Info("Connected to MongoDB")
	return nil
}

func (s *server) initAccountRepo(ctx context.Context, store string) error {
	if store == storeSQLite {
		var err error
		s.sqliteAccounts, err = repo.NewSQLiteAccountRepo(s.cfg.SQLitePath)
		if err != nil {
			s.appLogger.Error(fmt.Sprintf("Opening SQLite account store: %v", err))
			return err
		}
		s.accountRepo = s.sqliteAccounts
		s.appLogger.Info(fmt.Sprintf("Account repository initialized (SQLite %s)", s.cfg.SQLitePath))
		return nil
	}

	accounts := repo.NewAccountRepo(s.mongoClient, s.cfg.DBName, "accounts")
	if err := accounts.EnsureIndexes(ctx); err != nil {
		s.appLogger.Error(fmt.Sprintf("Creating account indexes: %v", err))
		return err
	}
	s.accountRepo = accounts
	s.appLogger.Info("Account repository initialized (MongoDB)")
	return nil
}

func (s *server) initRunRepo(store string) error {
	if store == storeSQLite {
		var err error
		s.sqliteRuns, err = repo.NewSQLiteRunRepo(s.cfg.SQLitePath)
		if err != nil {
			s.appLogger.Error(fmt.Sprintf("Opening SQLite run store: %v", err))
			return err
		}
		s.runRepo = s.sqliteRuns
		s.appLogger.Info(fmt.Sprintf("Run repository initialized (SQLite %s)", s.cfg.SQLitePath))
		return nil
	}

	s.runRepo = repo.NewMongoRunRepo(s.mongoClient, s.cfg.DBName, "runs")
	s.appLogger.Info("Run repository initialized (MongoDB)")
	return nil
}

func (s *server) initRedis(ctx context.Context) error {
	if s.cfg.RedisAddr == "" {
		s.appLogger.Warning("REDIS_ADDR is not set, path cache and leaderboard are disabled")
		return nil
	}

	s.redisClient = redis.NewClient(&redis.Options{
		Addr:     s.cfg.RedisAddr,
		Password: s.cfg.RedisPassword,
		DB:       s.cfg.RedisDB,
	})
	if err := s.redisClient.Ping(ctx).Err(); err != nil {
		s.appLogger.Error(fmt.Sprintf("Redis ping failed: %v", err))
		return err
	}
	s.appLogger.Info("Connected to Redis")
	return nil
}

func (s *server) initPathCache() error {
	if s.redisClient == nil {
		return nil
	}

	cacheLogger, err := newLogger("CACHE", config.ColorCyan, os.Stdout, s.debug)
	if err != nil {
		s.appLogger.Error(err.Error())
		return err
	}
	s.pathCache = cache.NewRedisPathCache(s.redisClient, s.cfg.PathCacheTTL, cacheLogger)
	s.appLogger.Info("Path cache initialized")
	return nil
}

func (s *server) initLeaderboard() {
	if s.redisClient == nil {
		return
	}
	s.leaderboard = sortedstorage.NewRedisLeaderboard(s.redisClient, s.cfg.BoardTTL)
	s.appLogger.Info("Leaderboard initialized")
}

func (s *server) initJWTTokenizer() {
	s.jwtTokenizer = token.NewJwtService(s.cfg.JWTSecret, s.cfg.JWTIssuer)
	s.appLogger.Info("JWT Tokenizer initialized")
}

func (s *server) initAuthService() error {
	authLogger, err := newLogger("AUTH", config.ColorMagenta, os.Stdout, s.debug)
	if err != nil {
		s.appLogger.Error(err.Error())
		return err
	}
	s.authService = service.NewAuth(s.accountRepo, s.jwtTokenizer, s.cfg.TokenTTL, authLogger)
	s.appLogger.Info("Auth service initialized")
	return nil
}

func (s *server) initRunnerService() error {
	runnerLogger, err := newLogger("RUNNER", config.ColorBlue, os.Stdout, s.debug)
	if err != nil {
		s.appLogger.Error(err.Error())
		return err
	}

	s.runnerService = service.NewRunnerService(runnerLogger, &service.RunnerOptions{
		Runs:        s.runRepo,
		Accounts:    s.accountRepo,
		Cache:       s.pathCache,
		Leaderboard: s.leaderboard,
	})
	s.appLogger.Info("Runner service initialized")
	return nil
}

func (s *server) initControllers() {
	s.controllers = []api_i.Controller{
		identity.NewIdentityServer(s.authService),
		runapi.NewRunController(s.runnerService),
		mazeapi.NewMazeController(s.runnerService),
	}
	s.appLogger.Info("Controllers initialized")
}

func (s *server) initRouter() {
	s.router = api.NewRouter(api.Config{
		Addr:                    s.cfg.RESTAddr(),
		BaseURL:                 "/api",
		Controllers:             s.controllers,
		AuthorizationMiddleware: identity.Authoriz(s.jwtTokenizer),
	})
	s.appLogger.Info("Router initialized")
}

func (s *server) close() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if s.mongoClient != nil {
		_ = s.mongoClient.Disconnect(ctx)
	}
	if s.redisClient != nil {
		_ = s.redisClient.Close()
	}
	if s.sqliteRuns != nil {
		_ = s.sqliteRuns.Close()
	}
	if s.sqliteAccounts != nil {
		_ = s.sqliteAccounts.Close()
	}
}
