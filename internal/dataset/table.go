package dataset

import (
	"sort"

	"sanggwon/internal/model"
)

// Table 검증을 마친 레코드 모음
//
// 생성 후에는 변경되지 않으므로 여러 요청이 잠금 없이 공유할 수 있다.
type Table struct {
	records []model.Record
	periods []model.Period
}

// NewTable 레코드를 복사해 테이블 생성 (입력 순서 유지)
func NewTable(records []model.Record) *Table {
	cp := make([]model.Record, len(records))
	copy(cp, records)

	seen := make(map[model.Period]struct{})
	var periods []model.Period
	for _, r := range cp {
		p := r.Period()
		if _, ok := seen[p]; ok {
			continue
		}
		seen[p] = struct{}{}
		periods = append(periods, p)
	}
	sort.Slice(periods, func(i, j int) bool { return periods[i].Before(periods[j]) })

	return &Table{records: cp, periods: periods}
}

// Len 레코드 수
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.records)
}

// At i 번째 레코드
func (t *Table) At(i int) model.Record {
	return t.records[i]
}

// Records 전체 레코드 사본
func (t *Table) Records() []model.Record {
	if t == nil {
		return nil
	}
	out := make([]model.Record, len(t.records))
	copy(out, t.records)
	return out
}

// Slice 해당 분기 레코드 (테이블 순서)
func (t *Table) Slice(p model.Period) []model.Record {
	if t == nil {
		return nil
	}
	var out []model.Record
	for _, r := range t.records {
		if r.Year == p.Year && r.Quarter == p.Quarter {
			out = append(out, r)
		}
	}
	return out
}

// Periods 데이터에 존재하는 분기 (오름차순)
func (t *Table) Periods() []model.Period {
	if t == nil {
		return nil
	}
	out := make([]model.Period, len(t.periods))
	copy(out, t.periods)
	return out
}

// HasPeriod 해당 분기 데이터가 있는지
func (t *Table) HasPeriod(p model.Period) bool {
	if t == nil {
		return false
	}
	for _, it := range t.periods {
		if it == p {
			return true
		}
	}
	return false
}

// Years 연도 목록 (오름차순, 중복 제거)
func (t *Table) Years() []int {
	var out []int
	for _, p := range t.Periods() {
		if len(out) == 0 || out[len(out)-1] != p.Year {
			out = append(out, p.Year)
		}
	}
	return out
}

// Quarters 분기 목록 (오름차순, 중복 제거)
func (t *Table) Quarters() []int {
	set := make(map[int]struct{})
	for _, p := range t.Periods() {
		set[p.Quarter] = struct{}{}
	}
	out := make([]int, 0, len(set))
	for q := range set {
		out = append(out, q)
	}
	sort.Ints(out)
	return out
}

// Latest 가장 최근 분기, 데이터가 없으면 ok=false
func (t *Table) Latest() (model.Period, bool) {
	if t == nil || len(t.periods) == 0 {
		return model.Period{}, false
	}
	return t.periods[len(t.periods)-1], true
}
