package v1

import (
	"fmt"
	"log"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	"sanggwon/internal/exporter"
	"sanggwon/internal/model"
)

func buildExportContentDisposition(p model.Period) string {
	return fmt.Sprintf("attachment; filename=\"%s\"; filename*=UTF-8''%s",
		exporter.FileName(p), url.PathEscape(exporter.DisplayFileName(p)))
}

// ExportGrowth 순위 결과 엑셀 다운로드
// GET /api/growth/export?year=2024&quarter=3
func (h *Handler) ExportGrowth(c *gin.Context) {
	req, items, ok := h.rank(c)
	if !ok {
		return
	}

	f, info, err := exporter.Export(exporter.Ranking{
		Recent:   req.recent,
		Previous: req.previous,
		Options:  req.opts,
		Records:  items,
		Source:   h.cache.Report().Source,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "내보내기 실패: " + err.Error()})
		return
	}
	defer f.Close()

	c.Header("Content-Disposition", buildExportContentDisposition(req.recent))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("X-Export-Id", info.ID)

	if err := f.Write(c.Writer); err != nil {
		log.Printf("export %s write failed: %v", info.ID, err)
	}
}
