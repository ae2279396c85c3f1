package handler

import (
	"Contact-Search/internal/app/config"
	"Contact-Search/internal/app/middleware"
	"Contact-Search/internal/app/repository"
	"Contact-Search/web"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// RegisterHandlers регистрирует все обработчики
func RegisterHandlers(router *gin.Engine, repo *repository.Repository, conf *config.Config) {
	router.Use(middleware.RequestID(), middleware.RequestLogger())

	router.SetHTMLTemplate(web.Templates())
	router.StaticFS("/static", web.Static())

	// Создаем хендлеры
	pageHandler := NewPageHandler(conf.BlockSize)
	searchHandler := NewSearchHandler(repo, conf.BlockSize)
	statsHandler := NewStatsHandler(repo)
	datasetHandler := NewDatasetHandler(repo)

	// Страница и API поиска
	router.GET("/", pageHandler.Index)
	router.GET("/search", searchHandler.Search)

	apiRouter := router.Group("/api")
	{
		apiRouter.GET("/columns", searchHandler.Columns)
		apiRouter.GET("/stats/queries", statsHandler.TopQueries)
		apiRouter.DELETE("/stats/queries", statsHandler.ResetQueries)
		apiRouter.POST("/dataset", datasetHandler.UploadDataset)
	}

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
}
