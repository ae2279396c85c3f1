package handler

import (
	"Contact-Search/internal/app/repository"
	"bytes"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// Ограничение на размер загружаемого датасета
const maxDatasetBytes = 32 << 20

type DatasetHandler struct {
	repo *repository.Repository
}

func NewDatasetHandler(repo *repository.Repository) *DatasetHandler {
	return &DatasetHandler{
		repo: repo,
	}
}

// UploadDataset godoc
// @Summary Replace the contacts dataset
// @Description Stores a JSON array of contacts in object storage and reloads the search backend
// @Tags Dataset
// @Accept multipart/form-data
// @Produce json
// @Param dataset formData file true "Contacts JSON"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 500 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /api/dataset [post]
func (h *DatasetHandler) UploadDataset(ctx *gin.Context) {
	if !h.repo.Dataset.Configured() {
		ctx.JSON(http.StatusServiceUnavailable, gin.H{"error": "Dataset storage is not configured"})
		return
	}

	fileHeader, err := ctx.FormFile("dataset")
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Dataset file is required"})
		return
	}
	if fileHeader.Size > maxDatasetBytes {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Dataset file is too large"})
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read dataset file"})
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read dataset file"})
		return
	}

	contacts, err := repository.DecodeDataset(bytes.NewReader(data))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid dataset"})
		return
	}

	// Сначала поиск, затем бакет: в бакет попадает только загруженный датасет
	if err := h.repo.Contact.Replace(ctx.Request.Context(), contacts); err != nil {
		logrus.Error("Failed to reload contacts: ", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to reload contacts"})
		return
	}

	if _, err := h.repo.Dataset.Store(ctx.Request.Context(), data); err != nil {
		logrus.Errorf("Dataset with %d contacts is live but was not stored in MinIO, it will be lost on restart: %v", len(contacts), err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to store dataset"})
		return
	}

	logrus.Infof("Dataset reloaded: %d contacts", len(contacts))
	ctx.JSON(http.StatusOK, gin.H{"message": "Dataset uploaded successfully", "total": len(contacts)})
}
