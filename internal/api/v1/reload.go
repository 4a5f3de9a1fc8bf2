package v1

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"sanggwon/internal/dataset"
)

// Reload 원본 파일을 다시 읽는다. 실패하면 기존 데이터를 계속 사용한다.
// POST /api/reload
func (h *Handler) Reload(c *gin.Context) {
	if _, err := h.cache.Reload(); err != nil {
		status := http.StatusInternalServerError
		var dfe *dataset.DataFormatError
		if errors.As(err, &dfe) {
			status = http.StatusUnprocessableEntity
		}
		c.JSON(status, gin.H{
			"error":   "재로딩 실패: " + err.Error(),
			"current": h.cache.Report(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{"report": h.cache.Report()})
}
