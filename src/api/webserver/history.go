package webserver

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/verilens/verilens/src/cache"
)

// History exposes recently issued verdicts for review.
type History struct {
	store *cache.HistoryStore
}

func NewHistory(store *cache.HistoryStore) History {
	return History{store: store}
}

func (h History) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	records, err := h.store.Recent(limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load history"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"verdicts": records})
}
