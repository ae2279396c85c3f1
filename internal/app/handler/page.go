package handler

import (
	"Contact-Search/internal/app/ds"
	"net/http"

	"github.com/gin-gonic/gin"
)

const pageTitle = "Contact Search"

// gridConfig параметры таблицы, которые страница получает от сервера
type gridConfig struct {
	BlockSize int            `json:"blockSize"`
	Columns   []ds.ColumnDef `json:"columns"`
}

type PageHandler struct {
	blockSize int
}

func NewPageHandler(blockSize int) *PageHandler {
	return &PageHandler{
		blockSize: blockSize,
	}
}

// Index отдает страницу поиска с таблицей результатов
func (h *PageHandler) Index(ctx *gin.Context) {
	ctx.HTML(http.StatusOK, "search.html", gin.H{
		"Title":  pageTitle,
		"Fields": ds.SearchFields,
		"GridConfig": gridConfig{
			BlockSize: h.blockSize,
			Columns:   ds.ColumnDefs,
		},
	})
}
