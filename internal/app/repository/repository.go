package repository

import (
	"Contact-Search/internal/app/config"
	"Contact-Search/internal/app/ds"
	"Contact-Search/internal/app/dsn"
	"Contact-Search/internal/app/redis"
	"context"
	"errors"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Repository struct {
	db          *gorm.DB
	redisClient *redis.Client
	Contact     ContactStore
	Dataset     *DatasetRepository
}

func NewRepository(cfg *config.Config) (*Repository, error) {
	ctx := context.Background()

	// Инициализируем MinIO клиент
	minioClient, err := InitMinIOClient(cfg)
	if err != nil {
		return nil, err
	}
	dataset := NewDatasetRepository(minioClient, cfg.MinioBucket, cfg.DatasetObject)

	repo := &Repository{Dataset: dataset}

	switch cfg.SearchBackend {
	case config.BackendPostgres:
		db, err := gorm.Open(postgres.Open(dsn.FromEnv()), &gorm.Config{})
		if err != nil {
			return nil, err
		}
		repo.db = db
		repo.Contact = NewContactRepository(db)
	case config.BackendSnapshot:
		contacts, err := loadSnapshot(ctx, cfg, dataset)
		if err != nil {
			return nil, err
		}
		repo.Contact = NewSnapshotRepository(contacts)
		logrus.Infof("Snapshot backend loaded: %d contacts", len(contacts))
	default:
		return nil, fmt.Errorf("unknown search backend %q", cfg.SearchBackend)
	}

	// Инициализируем Redis клиент
	redisClient, err := redis.NewClient(cfg)
	if err != nil {
		logrus.Warnf("Failed to initialize Redis client: %v", err)
		// Продолжаем без Redis, статистика запросов будет пустой
	} else {
		repo.redisClient = redisClient
	}

	return repo, nil
}

// loadSnapshot берет датасет из MinIO, а если его там нет - с диска
func loadSnapshot(ctx context.Context, cfg *config.Config, dataset *DatasetRepository) ([]ds.Contact, error) {
	if dataset.Configured() {
		contacts, err := dataset.Load(ctx)
		if err == nil {
			return contacts, nil
		}
		if !errors.Is(err, ErrDatasetNotFound) {
			return nil, err
		}
		logrus.Warnf("Dataset object not found in MinIO, falling back to %s", cfg.DatasetPath)
	}
	return LoadDatasetFile(cfg.DatasetPath)
}

// GetRedisClient возвращает Redis клиент
func (r *Repository) GetRedisClient() *redis.Client {
	return r.redisClient
}

// Close закрывает все соединения
func (r *Repository) Close() {
	if r.redisClient != nil {
		if err := r.redisClient.Close(); err != nil {
			logrus.Errorf("Error closing Redis client: %v", err)
		}
	}
	if r.db != nil {
		if sqlDB, err := r.db.DB(); err == nil {
			if err := sqlDB.Close(); err != nil {
				logrus.Errorf("Error closing database: %v", err)
			}
		}
	}
}
