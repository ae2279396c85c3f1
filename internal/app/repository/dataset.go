package repository

import (
	"Contact-Search/internal/app/config"
	"Contact-Search/internal/app/ds"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/sirupsen/logrus"
)

const datasetContentType = "application/json"

var (
	ErrStorageNotConfigured = errors.New("dataset storage is not configured")
	ErrDatasetNotFound      = errors.New("dataset object not found")
	ErrInvalidDataset       = errors.New("invalid dataset")
)

// DatasetRepository хранит JSON датасета контактов в MinIO
type DatasetRepository struct {
	minioClient *minio.Client
	bucket      string
	object      string
}

func NewDatasetRepository(minioClient *minio.Client, bucket, object string) *DatasetRepository {
	return &DatasetRepository{
		minioClient: minioClient,
		bucket:      bucket,
		object:      object,
	}
}

// Configured сообщает, подключено ли объектное хранилище
func (r *DatasetRepository) Configured() bool {
	return r != nil && r.minioClient != nil
}

// Load читает и разбирает датасет из бакета
func (r *DatasetRepository) Load(ctx context.Context) ([]ds.Contact, error) {
	if !r.Configured() {
		return nil, ErrStorageNotConfigured
	}

	obj, err := r.minioClient.GetObject(ctx, r.bucket, r.object, minio.GetObjectOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to get dataset object: %w", err)
	}
	defer obj.Close()

	contacts, err := DecodeDataset(obj)
	if err != nil {
		var resp minio.ErrorResponse
		if errors.As(err, &resp) && resp.Code == "NoSuchKey" {
			return nil, ErrDatasetNotFound
		}
		return nil, err
	}
	return contacts, nil
}

// Store проверяет датасет и сохраняет его в бакет
func (r *DatasetRepository) Store(ctx context.Context, data []byte) ([]ds.Contact, error) {
	if !r.Configured() {
		return nil, ErrStorageNotConfigured
	}

	contacts, err := DecodeDataset(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	_, err = r.minioClient.PutObject(ctx, r.bucket, r.object, bytes.NewReader(data), int64(len(data)), minio.PutObjectOptions{
		ContentType: datasetContentType,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to store dataset: %w", err)
	}

	logrus.Infof("Dataset stored in MinIO: %s/%s (%d contacts)", r.bucket, r.object, len(contacts))
	return contacts, nil
}

// DecodeDataset разбирает JSON-массив контактов
func DecodeDataset(reader io.Reader) ([]ds.Contact, error) {
	var records []ds.ContactRecord
	if err := json.NewDecoder(reader).Decode(&records); err != nil {
		var resp minio.ErrorResponse
		if errors.As(err, &resp) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", ErrInvalidDataset, err)
	}
	return ds.ContactsFromRecords(records), nil
}

// LoadDatasetFile читает датасет с диска
func LoadDatasetFile(path string) ([]ds.Contact, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open dataset %s: %w", path, err)
	}
	defer file.Close()

	return DecodeDataset(file)
}

// InitMinIOClient создает клиент MinIO и бакет датасета.
// Пустой MinioEndpoint означает, что хранилище не используется.
func InitMinIOClient(cfg *config.Config) (*minio.Client, error) {
	if cfg.MinioEndpoint == "" {
		return nil, nil
	}

	minioClient, err := minio.New(cfg.MinioEndpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(cfg.MinioAccessKey, cfg.MinioSecretKey, ""),
		Secure: cfg.MinioUseSSL,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create MinIO client: %w", err)
	}

	ctx := context.Background()

	// Создаем bucket если не существует
	exists, err := minioClient.BucketExists(ctx, cfg.MinioBucket)
	if err != nil {
		return nil, fmt.Errorf("failed to check bucket existence: %w", err)
	}

	if !exists {
		err = minioClient.MakeBucket(ctx, cfg.MinioBucket, minio.MakeBucketOptions{})
		if err != nil {
			return nil, fmt.Errorf("failed to create bucket: %w", err)
		}
	}

	logrus.Info("MinIO client initialized successfully")
	return minioClient, nil
}
