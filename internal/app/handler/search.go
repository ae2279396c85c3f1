package handler

import (
	"Contact-Search/internal/app/ds"
	"Contact-Search/internal/app/repository"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

type SearchHandler struct {
	repo        *repository.Repository
	defaultSize int
}

func NewSearchHandler(repo *repository.Repository, blockSize int) *SearchHandler {
	return &SearchHandler{
		repo:        repo,
		defaultSize: blockSize,
	}
}

// Search godoc
// @Summary Search contacts
// @Description Case-insensitive substring search over contacts, one page at a time
// @Tags Search
// @Produce json
// @Param query query string false "Search text; empty returns all contacts"
// @Param field query string false "Restrict to one field" Enums(job_history, company, email, city, country, name)
// @Param size query int false "Page size" default(20) maximum(1000)
// @Param offset query int false "Zero-based page index" default(0)
// @Success 200 {object} ds.SearchResponse
// @Failure 400 {object} map[string]string
// @Failure 422 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Router /search [get]
func (h *SearchHandler) Search(ctx *gin.Context) {
	params := repository.SearchParams{
		Query: ctx.Query("query"),
		Size:  h.defaultSize,
	}

	if field, ok := ctx.GetQuery("field"); ok {
		if !ds.IsSearchField(field) {
			ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid field parameter"})
			return
		}
		params.Field = field
	}

	var err error
	if sizeStr := ctx.Query("size"); sizeStr != "" {
		params.Size, err = strconv.Atoi(sizeStr)
		if err != nil || params.Size <= 0 || params.Size > ds.MaxPageSize {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid size parameter"})
			return
		}
	}

	if offsetStr := ctx.Query("offset"); offsetStr != "" {
		params.Offset, err = strconv.Atoi(offsetStr)
		if err != nil || params.Offset < 0 {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid offset parameter"})
			return
		}
	}

	results, total, err := h.repo.Contact.Search(ctx.Request.Context(), params)
	switch {
	case errors.Is(err, repository.ErrOffsetOutOfRange):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Offset is out of range"})
		return
	case errors.Is(err, repository.ErrUnknownField):
		ctx.JSON(http.StatusUnprocessableEntity, gin.H{"error": "Invalid field parameter"})
		return
	case errors.Is(err, repository.ErrInvalidPage):
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid size or offset parameter"})
		return
	case err != nil:
		logrus.Error("Failed to search contacts: ", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to search contacts"})
		return
	}

	if countsAsNewSearch(params) && h.repo.GetRedisClient() != nil {
		if err := h.repo.GetRedisClient().IncrQuery(ctx.Request.Context(), params.Query); err != nil {
			logrus.Warn("Failed to record search query: ", err)
		}
	}

	ctx.JSON(http.StatusOK, ds.SearchResponse{
		Results: results,
		Total:   total,
	})
}

// Прокрутка запрашивает следующие блоки того же поиска, в статистику идёт только первый
func countsAsNewSearch(params repository.SearchParams) bool {
	return params.Query != "" && params.Offset == 0
}

// Columns godoc
// @Summary Result table columns
// @Description Column definitions of the results grid
// @Tags Search
// @Produce json
// @Success 200 {array} ds.ColumnDef
// @Router /api/columns [get]
func (h *SearchHandler) Columns(ctx *gin.Context) {
	ctx.JSON(http.StatusOK, ds.ColumnDefs)
}
