package app

import (
	"context"

	trmpgx "github.com/avito-tech/go-transaction-manager/drivers/pgxv5/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2"
	"github.com/avito-tech/go-transaction-manager/trm/v2/manager"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	gameAPI "mini_casino/internal/api/game"
	sceneAPI "mini_casino/internal/api/scene"
	statsAPI "mini_casino/internal/api/stats"
	"mini_casino/internal/config"
	"mini_casino/internal/config/env"
	"mini_casino/internal/logger"
	"mini_casino/internal/repository"
	"mini_casino/internal/repository/kv_repo/memory"
	"mini_casino/internal/repository/kv_repo/postgres"
	kvRedis "mini_casino/internal/repository/kv_repo/redis"
	"mini_casino/internal/repository/kv_repo/sqlite"
	"mini_casino/internal/repository/stats_repo"
	"mini_casino/internal/repository/txless"
	"mini_casino/internal/scheduler"
	"mini_casino/internal/service"
	"mini_casino/internal/service/display"
	"mini_casino/internal/service/ledger"
	"mini_casino/internal/service/roulette"
	"mini_casino/internal/service/scene"
	"mini_casino/internal/service/session"
	"mini_casino/internal/service/slots"
	"mini_casino/internal/texture"
	"mini_casino/pkg/random"
)

type ServiceProvider struct {
	// Закрываются в обратном порядке в Close
	closers []func()

	log *zap.Logger

	// Configs
	logCfg     config.LogConfig
	sessionCfg config.SessionConfig
	storageCfg config.StorageConfig
	gameCfg    config.GameConfig

	//TXManager
	txManager trm.Manager

	// Storage
	pgConfig  config.PGConfig
	dbClient  *pgxpool.Pool
	sqliteCfg config.SQLiteConfig
	redisCfg  config.RedisConfig
	kvRepo    repository.KVRepository
	statsRepo repository.StatsRepository

	// Session bits
	sched        *scheduler.Scheduler
	rng          random.Source
	ledgerServ   service.LedgerService
	displayServ  service.DisplayService
	sceneServ    service.SceneService
	rouletteServ service.RouletteService
	slotsServ    service.SlotsService
	sessionServ  service.SessionService

	// Handlers
	textures  *texture.Cache
	gameHand  *gameAPI.Handler
	sceneHand *sceneAPI.Handler
	statsHand *statsAPI.Handler

	// Router and HTTP config
	httpCfg config.HTTPConfig
	router  chi.Router
}

func newServiceProvider() *ServiceProvider {
	return &ServiceProvider{}
}

func (sp *ServiceProvider) addCloser(fn func()) {
	sp.closers = append(sp.closers, fn)
}

// Close Освобождает ресурсы в порядке, обратном созданию
func (sp *ServiceProvider) Close() {
	for i := len(sp.closers) - 1; i >= 0; i-- {
		sp.closers[i]()
	}
	sp.closers = nil
}

func (sp *ServiceProvider) LogCfg() config.LogConfig {
	if sp.logCfg == nil {
		cfg, err := env.NewLogConfig()
		if err != nil {
			panic("failed to get log config: " + err.Error())
		}
		sp.logCfg = cfg
	}
	return sp.logCfg
}

func (sp *ServiceProvider) Logger() *zap.Logger {
	if sp.log == nil {
		l, err := logger.New(sp.LogCfg())
		if err != nil {
			panic("failed to create logger: " + err.Error())
		}
		sp.log = l
		sp.addCloser(func() { _ = l.Sync() })
	}
	return sp.log
}

func (sp *ServiceProvider) SessionCfg() config.SessionConfig {
	if sp.sessionCfg == nil {
		cfg, err := env.NewSessionConfig()
		if err != nil {
			panic("failed to get session config: " + err.Error())
		}
		sp.sessionCfg = cfg
	}
	return sp.sessionCfg
}

func (sp *ServiceProvider) StorageCfg() config.StorageConfig {
	if sp.storageCfg == nil {
		cfg, err := env.NewStorageConfig()
		if err != nil {
			panic("failed to get storage config: " + err.Error())
		}
		sp.storageCfg = cfg
	}
	return sp.storageCfg
}

func (sp *ServiceProvider) GameCfg() config.GameConfig {
	if sp.gameCfg == nil {
		cfg, err := env.NewGameConfigFromYAML(env.GameConfigPath())
		if err != nil {
			panic("failed to get game config: " + err.Error())
		}
		sp.gameCfg = cfg
	}
	return sp.gameCfg
}

func (sp *ServiceProvider) PgConfig() config.PGConfig {
	if sp.pgConfig == nil {
		cfg, err := env.NewPGConfig()
		if err != nil {
			panic("failed to get database config: " + err.Error())
		}
		sp.pgConfig = cfg
	}
	return sp.pgConfig
}

func (sp *ServiceProvider) DBClient(ctx context.Context) *pgxpool.Pool {
	if sp.dbClient == nil {
		dbc, err := pgxpool.New(ctx, sp.PgConfig().DSN())
		if err != nil {
			panic("failed to create db pool: " + err.Error())
		}
		err = dbc.Ping(ctx)
		if err != nil {
			panic("failed to ping db: " + err.Error())
		}
		err = postgres.Migrate(ctx, dbc)
		if err != nil {
			panic("failed to migrate db: " + err.Error())
		}
		sp.dbClient = dbc
		sp.addCloser(dbc.Close)
	}
	return sp.dbClient
}

func (sp *ServiceProvider) SQLiteCfg() config.SQLiteConfig {
	if sp.sqliteCfg == nil {
		cfg, err := env.NewSQLiteConfig()
		if err != nil {
			panic("failed to get sqlite config: " + err.Error())
		}
		sp.sqliteCfg = cfg
	}
	return sp.sqliteCfg
}

func (sp *ServiceProvider) RedisCfg() config.RedisConfig {
	if sp.redisCfg == nil {
		cfg, err := env.NewRedisConfig()
		if err != nil {
			panic("failed to get redis config: " + err.Error())
		}
		sp.redisCfg = cfg
	}
	return sp.redisCfg
}

// TXManager Транзакции есть только у postgres, остальным хватает пустого менеджера
func (sp *ServiceProvider) TXManager(ctx context.Context) trm.Manager {
	if sp.txManager == nil {
		if sp.StorageCfg().Driver() != config.StoragePostgres {
			sp.txManager = txless.NewManager()
			return sp.txManager
		}

		m, err := manager.New(trmpgx.NewDefaultFactory(sp.DBClient(ctx)))
		if err != nil {
			panic("failed to create tx manager: " + err.Error())
		}
		sp.txManager = m
	}

	return sp.txManager
}

func (sp *ServiceProvider) KVRepository(ctx context.Context) repository.KVRepository {
	if sp.kvRepo == nil {
		switch sp.StorageCfg().Driver() {
		case config.StorageMemory:
			sp.kvRepo = memory.NewKVRepository()
		case config.StorageSQLite:
			r, cleanup, err := sqlite.NewKVRepository(ctx, sp.SQLiteCfg().Path())
			if err != nil {
				panic("failed to open sqlite storage: " + err.Error())
			}
			sp.addCloser(cleanup)
			sp.kvRepo = r
		case config.StoragePostgres:
			sp.kvRepo = postgres.NewKVRepository(sp.DBClient(ctx))
		case config.StorageRedis:
			rdb, cleanup, err := kvRedis.NewClient(ctx, sp.RedisCfg())
			if err != nil {
				panic("failed to connect redis: " + err.Error())
			}
			sp.addCloser(cleanup)
			sp.kvRepo = kvRedis.NewKVRepository(rdb)
		default:
			panic("unknown storage driver: " + sp.StorageCfg().Driver())
		}
		sp.Logger().Info("storage ready", zap.String("driver", sp.StorageCfg().Driver()))
	}
	return sp.kvRepo
}

func (sp *ServiceProvider) StatsRepository() repository.StatsRepository {
	if sp.statsRepo == nil {
		sp.statsRepo = stats_repo.NewStatsRepository(0)
	}
	return sp.statsRepo
}

func (sp *ServiceProvider) Scheduler() *scheduler.Scheduler {
	if sp.sched == nil {
		s, err := scheduler.New(sp.SessionCfg().SchedulerPoolSize(), sp.Logger())
		if err != nil {
			panic("failed to create scheduler: " + err.Error())
		}
		sp.sched = s
	}
	return sp.sched
}

func (sp *ServiceProvider) Random() random.Source {
	if sp.rng == nil {
		sp.rng = random.NewDefault(sp.SessionCfg().RandomSeed())
	}
	return sp.rng
}

func (sp *ServiceProvider) LedgerService(ctx context.Context) service.LedgerService {
	if sp.ledgerServ == nil {
		sp.ledgerServ = ledger.NewLedgerService(
			sp.GameCfg().Ledger(),
			sp.KVRepository(ctx),
			sp.TXManager(ctx),
			sp.Logger(),
		)
	}
	return sp.ledgerServ
}

func (sp *ServiceProvider) DisplayService() service.DisplayService {
	if sp.displayServ == nil {
		sp.displayServ = display.NewDisplayService(sp.Logger())
	}
	return sp.displayServ
}

func (sp *ServiceProvider) SceneService() service.SceneService {
	if sp.sceneServ == nil {
		sp.sceneServ = scene.NewSceneService(sp.GameCfg().Scene())
	}
	return sp.sceneServ
}

func (sp *ServiceProvider) RouletteService(ctx context.Context) service.RouletteService {
	if sp.rouletteServ == nil {
		sp.rouletteServ = roulette.NewRouletteService(roulette.Deps{
			Cfg:       sp.GameCfg().Roulette(),
			Ledger:    sp.LedgerService(ctx),
			Display:   sp.DisplayService(),
			Stats:     sp.StatsRepository(),
			Scheduler: sp.Scheduler(),
			Rand:      sp.Random(),
			Log:       sp.Logger(),
		})
	}
	return sp.rouletteServ
}

func (sp *ServiceProvider) SlotsService(ctx context.Context) service.SlotsService {
	if sp.slotsServ == nil {
		sp.slotsServ = slots.NewSlotsService(slots.Deps{
			Cfg:       sp.GameCfg().Slots(),
			Ledger:    sp.LedgerService(ctx),
			Display:   sp.DisplayService(),
			Scene:     sp.SceneService(),
			Stats:     sp.StatsRepository(),
			Scheduler: sp.Scheduler(),
			Rand:      sp.Random(),
			Log:       sp.Logger(),
		})
	}
	return sp.slotsServ
}

func (sp *ServiceProvider) SessionService(ctx context.Context) service.SessionService {
	if sp.sessionServ == nil {
		sp.sessionServ = session.NewSessionService(session.Deps{
			Ledger:    sp.LedgerService(ctx),
			Roulette:  sp.RouletteService(ctx),
			Slots:     sp.SlotsService(ctx),
			Display:   sp.DisplayService(),
			Scene:     sp.SceneService(),
			Scheduler: sp.Scheduler(),
			FPS:       sp.GameCfg().Scene().FPS(),
			Log:       sp.Logger(),
		})
	}
	return sp.sessionServ
}

func (sp *ServiceProvider) Textures() *texture.Cache {
	if sp.textures == nil {
		sp.textures = texture.NewCache(sp.GameCfg().Scene().TextureSize())
	}
	return sp.textures
}

func (sp *ServiceProvider) GameHandler(ctx context.Context) *gameAPI.Handler {
	if sp.gameHand == nil {
		sp.gameHand = gameAPI.NewHandler(gameAPI.HandlerDeps{
			Serv: sp.SessionService(ctx),
			Log:  sp.Logger(),
		})
	}
	return sp.gameHand
}

func (sp *ServiceProvider) SceneHandler() *sceneAPI.Handler {
	if sp.sceneHand == nil {
		sp.sceneHand = sceneAPI.NewHandler(sceneAPI.HandlerDeps{
			Serv:     sp.SceneService(),
			Textures: sp.Textures(),
			Log:      sp.Logger(),
		})
	}
	return sp.sceneHand
}

func (sp *ServiceProvider) StatsHandler() *statsAPI.Handler {
	if sp.statsHand == nil {
		sp.statsHand = statsAPI.NewHandler(statsAPI.HandlerDeps{Repo: sp.StatsRepository()})
	}
	return sp.statsHand
}

func (sp *ServiceProvider) HTTPCfg() config.HTTPConfig {
	if sp.httpCfg == nil {
		cfg, err := env.NewHTTPConfig()
		if err != nil {
			panic("failed to get http config: " + err.Error())
		}
		sp.httpCfg = cfg
	}

	return sp.httpCfg
}

func (sp *ServiceProvider) Router(ctx context.Context) chi.Router {
	if sp.router == nil {
		r := chi.NewRouter()
		r.Use(middleware.Recoverer)

		// CORS middleware
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins:   []string{"*"},
			AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
			AllowedHeaders:   []string{"Accept", "Content-Type"},
			AllowCredentials: false,
			MaxAge:           60 * 15,
		}))

		// Game endpoints
		gameHandler := sp.GameHandler(ctx)
		r.Post("/roulette/play", gameHandler.Roulette)
		r.Post("/slots/play", gameHandler.Slots)
		r.Get("/state", gameHandler.State)

		// Scene endpoints
		sceneHandler := sp.SceneHandler()
		r.Get("/scene", sceneHandler.Scene)
		r.Get("/textures/{label}.png", sceneHandler.Texture)

		r.Get("/stats", sp.StatsHandler().Stats)
		r.Handle("/metrics", promhttp.Handler())

		sp.router = r
	}

	return sp.router
}
