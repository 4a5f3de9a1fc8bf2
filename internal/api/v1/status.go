package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"sanggwon/internal/dataset"
	"sanggwon/internal/model"
)

// StatusResponse 시스템 상태 응답
type StatusResponse struct {
	Loaded         bool               `json:"loaded"`
	Report         dataset.LoadReport `json:"report"`
	Rows           int                `json:"rows"`
	PeriodCount    int                `json:"periodCount"`
	Latest         *model.Period      `json:"latest,omitempty"`
	TopN           int                `json:"topN"`
	JoinPolicy     string             `json:"joinPolicy"`
	ZeroBasePolicy string             `json:"zeroBasePolicy"`
	Reload         *ReloadStatus      `json:"reload,omitempty"`
}

// ReloadStatus 자동 재로딩 상태
type ReloadStatus struct {
	Schedule  string     `json:"schedule"`
	Next      *time.Time `json:"next,omitempty"`
	LastRun   *time.Time `json:"lastRun,omitempty"`
	LastError string     `json:"lastError,omitempty"`
}

func (h *Handler) reloadStatus() *ReloadStatus {
	if h.schedule == nil {
		return nil
	}
	rs := &ReloadStatus{Schedule: h.schedule.Spec()}
	if next := h.schedule.Next(); !next.IsZero() {
		rs.Next = &next
	}
	if at, err := h.schedule.LastRun(); !at.IsZero() {
		rs.LastRun = &at
		if err != nil {
			rs.LastError = err.Error()
		}
	}
	return rs
}

// GetStatus 시스템 상태
// GET /api/status
func (h *Handler) GetStatus(c *gin.Context) {
	resp := StatusResponse{
		Loaded:         h.cache.Loaded(),
		TopN:           h.ranking.TopN,
		JoinPolicy:     string(h.ranking.Join),
		ZeroBasePolicy: string(h.ranking.ZeroBase),
		Reload:         h.reloadStatus(),
	}
	if !resp.Loaded {
		c.JSON(http.StatusOK, resp)
		return
	}

	t, ok := h.table(c)
	if !ok {
		return
	}
	resp.Report = h.cache.Report()
	resp.Rows = t.Len()
	resp.PeriodCount = len(t.Periods())
	if latest, ok := t.Latest(); ok {
		resp.Latest = &latest
	}

	c.JSON(http.StatusOK, resp)
}
