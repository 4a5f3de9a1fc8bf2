package v1

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"sanggwon/internal/dataset"
	"sanggwon/internal/growth"
	"sanggwon/internal/model"
)

// growthQuery 순위 조회 파라미터 (연도/분기를 생략하면 가장 최근 분기)
type growthQuery struct {
	Year     *int   `form:"year"`
	Quarter  *int   `form:"quarter"`
	Top      *int   `form:"top" binding:"omitempty,min=1,max=1000"`
	Join     string `form:"join" binding:"omitempty,oneof=cross_product first_match sum"`
	ZeroBase string `form:"zeroBase" binding:"omitempty,oneof=exclude flag"`
}

type growthResponse struct {
	Recent          model.Period         `json:"recent"`
	Previous        model.Period         `json:"previous"`
	RecentLabel     string               `json:"recentLabel"`
	PreviousLabel   string               `json:"previousLabel"`
	HasPreviousData bool                 `json:"hasPreviousData"`
	TopN            int                  `json:"topN"`
	JoinPolicy      string               `json:"joinPolicy"`
	ZeroBasePolicy  string               `json:"zeroBasePolicy"`
	Items           []model.GrowthRecord `json:"items"`
	Summary         growth.Summary       `json:"summary"`
}

// rankingRequest 해석된 조회 조건
type rankingRequest struct {
	table    *dataset.Table
	recent   model.Period
	previous model.Period
	opts     growth.Options
}

// resolveRanking 파라미터 해석, 실패하면 4xx 응답 후 ok=false
func (h *Handler) resolveRanking(c *gin.Context, t *dataset.Table) (rankingRequest, bool) {
	var q growthQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "요청 파라미터 오류: " + err.Error()})
		return rankingRequest{}, false
	}

	var recent model.Period
	switch {
	case q.Year == nil && q.Quarter == nil:
		latest, ok := t.Latest()
		if !ok {
			c.JSON(http.StatusNotFound, gin.H{"error": "데이터가 없습니다"})
			return rankingRequest{}, false
		}
		recent = latest
	case q.Year == nil || q.Quarter == nil:
		c.JSON(http.StatusBadRequest, gin.H{"error": "연도와 분기를 함께 지정해야 합니다"})
		return rankingRequest{}, false
	default:
		recent = model.Period{Year: *q.Year, Quarter: *q.Quarter}
	}

	opts := h.ranking
	if q.Top != nil {
		opts.TopN = *q.Top
	}
	if q.Join != "" {
		opts.Join = growth.JoinPolicy(q.Join)
	}
	if q.ZeroBase != "" {
		opts.ZeroBase = growth.ZeroBasePolicy(q.ZeroBase)
	}

	return rankingRequest{
		table:    t,
		recent:   recent,
		previous: growth.PreviousPeriod(recent),
		opts:     opts,
	}, true
}

// rank 순위 계산, 실패하면 응답 후 ok=false
func (h *Handler) rank(c *gin.Context) (rankingRequest, []model.GrowthRecord, bool) {
	t, ok := h.table(c)
	if !ok {
		return rankingRequest{}, nil, false
	}
	req, ok := h.resolveRanking(c, t)
	if !ok {
		return rankingRequest{}, nil, false
	}

	items, err := growth.RankGrowth(t, req.recent, req.previous, req.opts)
	if err != nil {
		var perr *growth.InvalidPeriodError
		switch {
		case errors.As(err, &perr), errors.Is(err, growth.ErrInvalidTopN), errors.Is(err, growth.ErrUnknownPolicy):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "성장률 계산 실패: " + err.Error()})
		}
		return rankingRequest{}, nil, false
	}
	return req, items, true
}

// GetGrowth 전분기 대비 매출 증가율 TOP N
// GET /api/growth?year=2024&quarter=3&top=10
func (h *Handler) GetGrowth(c *gin.Context) {
	req, items, ok := h.rank(c)
	if !ok {
		return
	}

	c.JSON(http.StatusOK, growthResponse{
		Recent:          req.recent,
		Previous:        req.previous,
		RecentLabel:     req.recent.Label(),
		PreviousLabel:   req.previous.Label(),
		HasPreviousData: req.table.HasPeriod(req.previous),
		TopN:            req.opts.TopN,
		JoinPolicy:      string(req.opts.Join),
		ZeroBasePolicy:  string(req.opts.ZeroBase),
		Items:           items,
		Summary:         growth.Summarize(items),
	})
}

// GetGrowthChart 증가율 막대 차트 (PNG)
// GET /api/growth/chart.png
func (h *Handler) GetGrowthChart(c *gin.Context) {
	req, items, ok := h.rank(c)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := h.charts.GrowthBarPNG(&buf, h.charts.Title(req.recent, req.opts.TopN), items); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "차트 생성 실패: " + err.Error()})
		return
	}
	c.Header("Cache-Control", "no-cache")
	c.Data(http.StatusOK, "image/png", buf.Bytes())
}
