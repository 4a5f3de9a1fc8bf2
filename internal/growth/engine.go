package growth

import (
	"sort"

	"sanggwon/internal/model"
)

// DefaultTopN 화면에 보여주는 기본 순위 수
const DefaultTopN = 10

// Slicer 분기별 레코드를 돌려주는 테이블
type Slicer interface {
	Slice(p model.Period) []model.Record
}

// Options 순위 계산 옵션
type Options struct {
	TopN     int
	Join     JoinPolicy
	ZeroBase ZeroBasePolicy
}

// DefaultOptions TopN 10, cross_product, exclude
func DefaultOptions() Options {
	return Options{
		TopN:     DefaultTopN,
		Join:     JoinCrossProduct,
		ZeroBase: ZeroBaseExclude,
	}
}

// PreviousPeriod 선택한 분기의 직전 분기
func PreviousPeriod(p model.Period) model.Period {
	return p.Previous()
}

// RankGrowth 두 분기를 상권 코드로 조인해 증가율 상위 TopN 을 반환
//
// 양쪽 분기에 모두 있는 상권만 포함된다. 결과는 증가율 내림차순이며 같은 값은 조인 순서를 유지한다.
// 어느 한쪽 분기가 비어 있으면 빈 결과를 돌려준다.
func RankGrowth(table Slicer, recent, previous model.Period, opts Options) ([]model.GrowthRecord, error) {
	if err := validatePeriod("recent", recent); err != nil {
		return nil, err
	}
	if err := validatePeriod("previous", previous); err != nil {
		return nil, err
	}
	if opts.TopN <= 0 {
		return nil, ErrInvalidTopN
	}
	join, err := ParseJoinPolicy(string(opts.Join))
	if err != nil {
		return nil, err
	}
	zeroBase, err := ParseZeroBasePolicy(string(opts.ZeroBase))
	if err != nil {
		return nil, err
	}

	recentRows := table.Slice(recent)
	previousRows := table.Slice(previous)
	if len(recentRows) == 0 || len(previousRows) == 0 {
		return []model.GrowthRecord{}, nil
	}

	switch join {
	case JoinFirstMatch:
		recentRows = firstPerDistrict(recentRows)
		previousRows = firstPerDistrict(previousRows)
	case JoinSum:
		recentRows = sumPerDistrict(recentRows)
		previousRows = sumPerDistrict(previousRows)
	}

	out := innerJoin(recentRows, previousRows, zeroBase)

	sort.SliceStable(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.Undefined != b.Undefined {
			return !a.Undefined
		}
		if a.Undefined {
			return false
		}
		return a.GrowthPct > b.GrowthPct
	})

	if len(out) > opts.TopN {
		out = out[:opts.TopN]
	}
	return out, nil
}

// innerJoin 최근 분기 순서, 그 안에서 직전 분기 순서로 짝을 만든다
func innerJoin(recentRows, previousRows []model.Record, zeroBase ZeroBasePolicy) []model.GrowthRecord {
	byCode := make(map[string][]model.Record, len(previousRows))
	for _, r := range previousRows {
		if r.DistrictCode == "" {
			continue
		}
		byCode[r.DistrictCode] = append(byCode[r.DistrictCode], r)
	}

	out := make([]model.GrowthRecord, 0, len(recentRows))
	for _, cur := range recentRows {
		if cur.DistrictCode == "" {
			continue
		}
		for _, prev := range byCode[cur.DistrictCode] {
			g := model.GrowthRecord{
				DistrictCode:  cur.DistrictCode,
				DistrictName:  cur.DistrictName,
				RecentSales:   cur.TotalSales,
				PreviousSales: prev.TotalSales,
			}
			pct, ok := model.GrowthPercent(cur.TotalSales, prev.TotalSales)
			if !ok {
				if zeroBase == ZeroBaseExclude {
					continue
				}
				g.Undefined = true
			} else {
				g.GrowthPct = pct
			}
			out = append(out, g)
		}
	}
	return out
}

// firstPerDistrict 코드별 첫 행
func firstPerDistrict(rows []model.Record) []model.Record {
	seen := make(map[string]struct{}, len(rows))
	out := make([]model.Record, 0, len(rows))
	for _, r := range rows {
		if _, ok := seen[r.DistrictCode]; ok {
			continue
		}
		seen[r.DistrictCode] = struct{}{}
		out = append(out, r)
	}
	return out
}

// sumPerDistrict 코드별 매출 합계, 이름은 첫 행 기준
func sumPerDistrict(rows []model.Record) []model.Record {
	pos := make(map[string]int, len(rows))
	out := make([]model.Record, 0, len(rows))
	for _, r := range rows {
		if i, ok := pos[r.DistrictCode]; ok {
			out[i].TotalSales += r.TotalSales
			continue
		}
		pos[r.DistrictCode] = len(out)
		r.ServiceCode = ""
		r.ServiceName = ""
		out = append(out, r)
	}
	return out
}
