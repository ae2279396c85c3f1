// cmd/migrate/migrate_contacts.go
package main

import (
	"Contact-Search/internal/app/config"
	"Contact-Search/internal/app/ds"
	"Contact-Search/internal/app/dsn"
	"Contact-Search/internal/app/repository"
	"context"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	fmt.Println("=== Contacts Migration ===")

	// Подключение к базе данных
	db, err := gorm.Open(postgres.Open(dsn.FromEnv()), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	startTime := time.Now()

	// 1. Проверяем подключение
	fmt.Println("1. Checking database connection...")
	var result int
	db.Raw("SELECT 1").Scan(&result)
	if result == 1 {
		fmt.Println("   ✓ Database connection successful")
	} else {
		log.Fatal("   ✗ Database connection failed")
	}

	// 2. Создаем таблицу contacts
	fmt.Println("2. Creating contacts table...")
	if err := db.AutoMigrate(&ds.Contact{}); err != nil {
		log.Fatal("Failed to create contacts table:", err)
	}
	fmt.Println("   ✓ Table 'contacts' created/verified")

	// 3. Включаем расширение триграмм
	fmt.Println("3. Enabling pg_trgm extension...")
	if err := db.Exec("CREATE EXTENSION IF NOT EXISTS pg_trgm").Error; err != nil {
		log.Printf("Warning: could not enable pg_trgm extension: %v", err)
	} else {
		fmt.Println("   ✓ pg_trgm extension enabled")
	}

	// 4. Триграммные индексы под LOWER(col) LIKE
	fmt.Println("4. Creating search indexes...")
	for i, field := range ds.SearchFields {
		sql := fmt.Sprintf(
			"CREATE INDEX IF NOT EXISTS idx_contacts_%s_trgm ON contacts USING gin (lower(%s) gin_trgm_ops)",
			field, field)
		idxStart := time.Now()
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("   ⚠️  Index %d (%s): %v", i+1, field, err)
		} else {
			fmt.Printf("   ✓ Index %d (%s) created in %v\n", i+1, field, time.Since(idxStart))
		}
	}

	// 5. Импортируем датасет
	fmt.Println("5. Importing dataset...")
	contacts, source, err := loadDataset()
	if err != nil {
		log.Fatal("Failed to load dataset:", err)
	}
	if err := repository.NewContactRepository(db).Replace(context.Background(), contacts); err != nil {
		log.Fatal("Failed to import dataset:", err)
	}
	fmt.Printf("   ✓ Imported %d contacts from %s\n", len(contacts), source)

	// 6. Обновляем статистику
	fmt.Println("6. Updating statistics...")
	if err := db.Exec("ANALYZE contacts").Error; err != nil {
		log.Printf("Warning analyzing table: %v", err)
	} else {
		fmt.Println("   ✓ Statistics updated")
	}

	var total int64
	db.Model(&ds.Contact{}).Count(&total)
	fmt.Printf("   Total contacts: %d\n", total)

	fmt.Println("\n=== Migration Completed ===")
	fmt.Printf("Total time: %v\n", time.Since(startTime))

	fmt.Println("\nTry it:")
	fmt.Println("   GET /search?query=acme&offset=0")
	fmt.Println("   GET /search?query=paris&field=city&offset=0")
}

// loadDataset берет датасет из MinIO, если он настроен, иначе с диска
func loadDataset() ([]ds.Contact, string, error) {
	useSSL, _ := strconv.ParseBool(getEnv("MINIO_USE_SSL", "false"))
	cfg := &config.Config{
		MinioEndpoint:  getEnv("MINIO_ENDPOINT", ""),
		MinioAccessKey: getEnv("MINIO_ACCESS_KEY", "minio"),
		MinioSecretKey: getEnv("MINIO_SECRET_KEY", "minio124"),
		MinioUseSSL:    useSSL,
		MinioBucket:    getEnv("MINIO_BUCKET", "contacts"),
		DatasetObject:  getEnv("DATASET_OBJECT", "mock-contacts.json"),
	}

	minioClient, err := repository.InitMinIOClient(cfg)
	if err != nil {
		return nil, "", err
	}

	dataset := repository.NewDatasetRepository(minioClient, cfg.MinioBucket, cfg.DatasetObject)
	if dataset.Configured() {
		contacts, err := dataset.Load(context.Background())
		if err == nil {
			return contacts, fmt.Sprintf("minio://%s/%s", cfg.MinioBucket, cfg.DatasetObject), nil
		}
		log.Printf("Warning: dataset not loaded from MinIO: %v", err)
	}

	path := getEnv("DATASET_PATH", "data/mock-contacts.json")
	contacts, err := repository.LoadDatasetFile(path)
	return contacts, path, err
}

func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}
