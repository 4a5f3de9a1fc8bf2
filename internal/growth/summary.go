package growth

import (
	"sort"

	"sanggwon/internal/model"
)

// Summary 순위 결과 요약 (증가율이 정의된 레코드 기준)
type Summary struct {
	Count     int                 `json:"count"`
	Undefined int                 `json:"undefined"`
	Mean      float64             `json:"mean"`
	Median    float64             `json:"median"`
	Best      *model.GrowthRecord `json:"best,omitempty"`
	Worst     *model.GrowthRecord `json:"worst,omitempty"`
}

// Summarize 순위 결과 요약
func Summarize(records []model.GrowthRecord) Summary {
	s := Summary{Count: len(records)}

	var values []float64
	for i := range records {
		r := records[i]
		if r.Undefined {
			s.Undefined++
			continue
		}
		values = append(values, r.GrowthPct)
		if s.Best == nil || r.GrowthPct > s.Best.GrowthPct {
			best := r
			s.Best = &best
		}
		if s.Worst == nil || r.GrowthPct < s.Worst.GrowthPct {
			worst := r
			s.Worst = &worst
		}
	}
	if len(values) == 0 {
		return s
	}

	// 누적 평균, 합계가 float64 범위를 넘지 않도록
	for i, v := range values {
		s.Mean += (v - s.Mean) / float64(i+1)
	}

	sort.Float64s(values)
	mid := len(values) / 2
	if len(values)%2 == 0 {
		s.Median = values[mid-1]/2 + values[mid]/2
	} else {
		s.Median = values[mid]
	}
	return s
}
