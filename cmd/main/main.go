package main

import (
	"Contact-Search/internal/app/config"
	"Contact-Search/internal/app/repository"
	"Contact-Search/internal/pkg"

	_ "Contact-Search/docs"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// @title Contact Search API
// @version 1.0
// @description Paged contact search backing the infinite-scroll results grid

// @contact.name API Support
// @contact.url http://localhost:8080

// @license.name MIT
// @license.url https://opensource.org/licenses/MIT

// @host localhost:8080
// @BasePath /

// @tag.name Search
// @tag.description Contact search and grid layout
// @tag.name Stats
// @tag.description Search query statistics
// @tag.name Dataset
// @tag.description Contacts dataset management
func main() {
	// Загружаем конфигурацию
	conf, err := config.NewConfig()
	if err != nil {
		logrus.Fatalf("error loading config: %v", err)
	}
	conf.ApplyLogLevel()

	router := gin.New()
	router.Use(gin.Recovery())

	// Инициализируем репозиторий
	repo, err := repository.NewRepository(conf)
	if err != nil {
		logrus.Fatalf("error initializing repository: %v", err)
	}

	// Создаем приложение с конфигурацией
	application := pkg.NewApp(conf, router, repo)

	// Запускаем приложение
	application.RunApp()
}
