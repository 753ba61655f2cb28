package app

import (
	"context"
	"errors"
	"fmt"
	"time"

	"skill-match/internal/config"
	"skill-match/internal/database"
	"skill-match/internal/database/migration"
	dbpostgres "skill-match/internal/database/postgres"
	"skill-match/internal/database/seeder"
	"skill-match/internal/infrastructure/cache"
	applog "skill-match/internal/logger"
	"skill-match/internal/pkg/jwt"
	"skill-match/internal/repository"
	"skill-match/internal/usecase"
	"skill-match/internal/ws"

	"go.uber.org/zap"
)

// Container owns the long lived dependencies shared by the server and the
// importer.
type Container struct {
	Config config.Config
	Logger *zap.Logger

	DB    database.DB
	Cache *cache.Redis
	Hub   *ws.Hub
	JWT   jwt.Service

	Users      *repository.PostgresUserRepository
	UserSkills *repository.PostgresUserSkillRepository
	Jobs       *repository.PostgresJobRepository

	Auth      *usecase.Auth
	User      *usecase.User
	UserSkill *usecase.UserSkill
	Catalog   *usecase.Catalog
	Matching  *usecase.Matching
}

func NewContainer(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Container, error) {
	logger = applog.OrNop(logger)

	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	db, err := dbpostgres.Connect(connectCtx, cfg.Database)
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	c := &Container{Config: cfg, Logger: logger, DB: db}

	if err := c.prepareDatabase(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	c.Cache = cache.NewRedis(ctx, cfg.Redis, logger)
	c.Hub = ws.NewHub(logger)
	c.JWT = jwt.NewHMACService(cfg.JWT.AccessSecret, cfg.JWT.RefreshSecret, cfg.JWT.AccessExpiresIn, cfg.JWT.RefreshExpiresIn)

	c.Users = repository.NewPostgresUserRepository(db)
	c.UserSkills = repository.NewPostgresUserSkillRepository(db)
	c.Jobs = repository.NewPostgresJobRepository(db)

	c.Auth = usecase.NewAuthUsecase(c.Users, c.JWT)
	c.User = usecase.NewUserUsecase(c.Users, c.UserSkills)
	c.UserSkill = usecase.NewUserSkillUsecase(c.UserSkills)
	c.Catalog = usecase.NewCatalogUsecase(c.Jobs, c.Cache, ws.NewNotifier(c.Hub), cfg.Redis.TTL, logger)
	c.Matching = usecase.NewMatchingUsecase(c.UserSkills, c.Catalog)

	return c, nil
}

func (c *Container) prepareDatabase(ctx context.Context) error {
	dbCfg := c.Config.Database
	if dbCfg.RunMigrations {
		r := migration.Runner{Dir: dbCfg.MigrationsDir, Logger: c.Logger.Named("migration")}
		if err := r.Run(ctx, c.DB.SQLDB()); err != nil {
			return fmt.Errorf("run migrations: %w", err)
		}
	}
	if dbCfg.RunSeeders {
		r := seeder.Runner{Seeders: seeder.Defaults(), Logger: c.Logger.Named("seeder")}
		if err := r.Run(ctx, c.DB); err != nil {
			return fmt.Errorf("run seeders: %w", err)
		}
	}
	return nil
}

func (c *Container) Close() error {
	if c == nil {
		return nil
	}

	var errs []error
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close cache: %w", err))
		}
	}
	if c.DB != nil {
		if err := c.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close database: %w", err))
		}
	}
	return errors.Join(errs...)
}
