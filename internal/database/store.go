package database

import (
	"context"
	"fmt"

	"rapidreads/internal/config"
	"rapidreads/internal/repositories"

	"go.uber.org/zap"
)

// Open connects the configured backend and returns its repositories.
// The returned store must be closed once the server has stopped.
func Open(ctx context.Context, cfg config.Store, log *zap.Logger) (*repositories.Store, error) {
	switch cfg.Driver {
	case config.DriverMongo:
		client, db, err := ConnectMongo(ctx, cfg.MongoURI, cfg.MongoDatabase)
		if err != nil {
			return nil, err
		}
		if err := EnsureMongoIndexes(ctx, db); err != nil {
			_ = client.Disconnect(context.Background())
			return nil, err
		}
		log.Info("Connected to MongoDB", zap.String("database", cfg.MongoDatabase))
		return repositories.NewMongoStore(db, func(ctx context.Context) error {
			if err := client.Disconnect(ctx); err != nil {
				return fmt.Errorf("failed to disconnect from MongoDB: %w", err)
			}
			return nil
		}), nil

	case config.DriverSQLite, config.DriverPostgres:
		db, err := OpenGORM(cfg.Driver, cfg.DSN)
		if err != nil {
			return nil, err
		}
		log.Info("Connected to SQL database", zap.String("driver", cfg.Driver))
		return repositories.NewGORMStore(db, func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		}), nil

	case config.DriverMemory:
		log.Warn("Using in-memory store; data is lost on restart")
		return repositories.NewMemoryStore(), nil

	default:
		return nil, fmt.Errorf("unsupported store driver %q", cfg.Driver)
	}
}
