package handler

import (
	"Contact-Search/internal/app/ds"
	"Contact-Search/internal/app/redis"
	"Contact-Search/internal/app/repository"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const maxTopQueries = 100

type StatsHandler struct {
	repo *repository.Repository
}

func NewStatsHandler(repo *repository.Repository) *StatsHandler {
	return &StatsHandler{
		repo: repo,
	}
}

// TopQueries godoc
// @Summary Most frequent search queries
// @Description Returns the most frequent non-empty search queries; empty when Redis is unavailable
// @Tags Stats
// @Produce json
// @Param limit query int false "Number of entries" default(10)
// @Success 200 {array} ds.QueryStat
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/stats/queries [get]
func (h *StatsHandler) TopQueries(ctx *gin.Context) {
	limit := redis.DefaultTopQueries
	if limitStr := ctx.Query("limit"); limitStr != "" {
		parsed, err := strconv.Atoi(limitStr)
		if err != nil || parsed <= 0 || parsed > maxTopQueries {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid limit parameter"})
			return
		}
		limit = parsed
	}

	client := h.repo.GetRedisClient()
	if client == nil {
		ctx.JSON(http.StatusOK, []ds.QueryStat{})
		return
	}

	stats, err := client.TopQueries(ctx.Request.Context(), limit)
	if err != nil {
		logrus.Error("Failed to get query stats: ", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get query stats"})
		return
	}

	ctx.JSON(http.StatusOK, stats)
}

// ResetQueries godoc
// @Summary Reset query statistics
// @Tags Stats
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /api/stats/queries [delete]
func (h *StatsHandler) ResetQueries(ctx *gin.Context) {
	client := h.repo.GetRedisClient()
	if client != nil {
		if err := client.ResetQueryStats(ctx.Request.Context()); err != nil {
			logrus.Error("Failed to reset query stats: ", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reset query stats"})
			return
		}
	}

	ctx.JSON(http.StatusOK, gin.H{"message": "Query stats reset"})
}
