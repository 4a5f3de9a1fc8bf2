package model

import (
	"encoding/json"
	"math"
)

// GrowthRecord 상권별 전분기 대비 매출 증가율
//
// 최근 분기와 직전 분기 양쪽에 모두 존재하는 상권 코드에 대해서만 만들어진다.
type GrowthRecord struct {
	DistrictCode  string  `json:"districtCode"`
	DistrictName  string  `json:"districtName"` // 최근 분기 기준
	RecentSales   float64 `json:"recentSales"`
	PreviousSales float64 `json:"previousSales"`
	GrowthPct     float64 `json:"growthPct"`
	// Undefined 직전 분기 매출이 0이라 증가율을 정의할 수 없음 (GrowthPct 는 0)
	Undefined bool `json:"undefined"`
}

// MarshalJSON 정의되지 않은 증가율은 null 로 직렬화
func (g GrowthRecord) MarshalJSON() ([]byte, error) {
	type alias GrowthRecord
	out := struct {
		alias
		GrowthPct *float64 `json:"growthPct"`
	}{alias: alias(g)}
	if !g.Undefined {
		v := g.GrowthPct
		out.GrowthPct = &v
	}
	return json.Marshal(out)
}

// GrowthPercent (recent - previous) / previous * 100
// previous 가 0 이거나 결과가 유한하지 않으면 ok=false
func GrowthPercent(recent, previous float64) (pct float64, ok bool) {
	if previous == 0 {
		return 0, false
	}
	pct = (recent - previous) / previous * 100
	if math.IsNaN(pct) || math.IsInf(pct, 0) {
		return 0, false
	}
	return pct, true
}
