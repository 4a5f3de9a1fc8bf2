package v1

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sanggwon/internal/model"
)

type periodsResponse struct {
	Years    []int          `json:"years"`
	Quarters []int          `json:"quarters"`
	Items    []model.Period `json:"items"`
	Latest   *model.Period  `json:"latest,omitempty"`
}

// ListPeriods 데이터에 존재하는 연도/분기
// GET /api/periods
func (h *Handler) ListPeriods(c *gin.Context) {
	t, ok := h.table(c)
	if !ok {
		return
	}

	resp := periodsResponse{
		Years:    t.Years(),
		Quarters: t.Quarters(),
		Items:    t.Periods(),
	}
	if resp.Years == nil {
		resp.Years = []int{}
		resp.Quarters = []int{}
		resp.Items = []model.Period{}
	}
	if latest, ok := t.Latest(); ok {
		resp.Latest = &latest
	}

	c.JSON(http.StatusOK, resp)
}
