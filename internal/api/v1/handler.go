package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"sanggwon/internal/chart"
	"sanggwon/internal/dataset"
	"sanggwon/internal/growth"
)

// ReloadSchedule 자동 재로딩 상태
type ReloadSchedule interface {
	Spec() string
	Next() time.Time
	LastRun() (time.Time, error)
}

// Handler V1 API 처리기
type Handler struct {
	cache    *dataset.Cache
	ranking  growth.Options
	charts   *chart.Renderer
	schedule ReloadSchedule // 없으면 nil
}

// NewHandler V1 API 처리기 생성
func NewHandler(cache *dataset.Cache, ranking growth.Options, charts *chart.Renderer) *Handler {
	if charts == nil {
		charts = chart.NewRenderer()
	}
	return &Handler{
		cache:   cache,
		ranking: ranking,
		charts:  charts,
	}
}

// SetReloadSchedule 자동 재로딩 상태 연결 (서버 시작 전에 호출)
func (h *Handler) SetReloadSchedule(schedule ReloadSchedule) {
	h.schedule = schedule
}

// RegisterRoutes V1 API 라우트 등록
func (h *Handler) RegisterRoutes(router *gin.RouterGroup) {
	// 상태
	router.GET("/status", h.GetStatus)
	// 선택 가능한 연도/분기
	router.GET("/periods", h.ListPeriods)

	// 성장률 순위
	router.GET("/growth", h.GetGrowth)
	router.GET("/growth/chart.png", h.GetGrowthChart)
	router.GET("/growth/export", h.ExportGrowth)

	// 원본 재로딩
	router.POST("/reload", h.Reload)
}

// table 캐시된 테이블, 실패하면 503 응답 후 ok=false
func (h *Handler) table(c *gin.Context) (*dataset.Table, bool) {
	t, err := h.cache.Get()
	if err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "데이터를 불러오지 못했습니다: " + err.Error()})
		return nil, false
	}
	return t, true
}
