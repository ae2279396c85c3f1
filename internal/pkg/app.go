package pkg

import (
	"Contact-Search/internal/app/config"
	"Contact-Search/internal/app/handler"
	"Contact-Search/internal/app/repository"
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type Application struct {
	Config     *config.Config
	Router     *gin.Engine
	Repository *repository.Repository
}

func NewApp(c *config.Config, r *gin.Engine, repo *repository.Repository) *Application {
	return &Application{
		Config:     c,
		Router:     r,
		Repository: repo,
	}
}

// RunApp регистрирует обработчики и запускает сервер до SIGINT/SIGTERM
func (a *Application) RunApp() {
	logrus.Info("Server start up")

	handler.RegisterHandlers(a.Router, a.Repository, a.Config)

	serverAddress := fmt.Sprintf("%s:%d", a.Config.ServiceHost, a.Config.ServicePort)
	server := &http.Server{
		Addr:    serverAddress,
		Handler: a.Router,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		logrus.Infof("Listening on %s", serverAddress)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.Fatal(err)
		}
	}()

	<-ctx.Done()
	logrus.Info("Shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.Config.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logrus.Errorf("Server shutdown failed: %v", err)
	}

	a.Repository.Close()
	logrus.Info("Server down")
}
