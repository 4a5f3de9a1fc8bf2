package dataset

import (
	"strings"

	"github.com/xuri/excelize/v2"

	"sanggwon/internal/model"
)

// SheetMatch 시트 헤더가 필수 컬럼과 얼마나 맞는지
type SheetMatch struct {
	Sheet      string
	Matched    int
	Confidence float64 // Matched / len(RequiredColumns)
}

// normalizeColumnName BOM, 앞뒤 공백 제거, 중간 공백은 밑줄로
// "상권 코드" 처럼 내려받은 도구마다 다른 표기를 같은 이름으로 맞춘다
func normalizeColumnName(name string) string {
	name = strings.TrimPrefix(name, "\ufeff")
	name = strings.TrimSpace(name)
	return strings.Join(strings.Fields(name), "_")
}

// matchHeader 헤더 한 줄 평가
func matchHeader(sheet string, header []string) SheetMatch {
	present := make(map[string]bool, len(header))
	for _, h := range header {
		present[normalizeColumnName(h)] = true
	}

	m := SheetMatch{Sheet: sheet}
	for _, col := range model.RequiredColumns {
		if present[col] {
			m.Matched++
		}
	}
	m.Confidence = float64(m.Matched) / float64(len(model.RequiredColumns))
	return m
}

// RecognizeSheet 필수 컬럼을 가장 많이 가진 시트 (동률이면 앞쪽 시트)
// 어느 시트도 필수 컬럼을 하나도 갖지 않으면 첫 시트를 돌려준다
func RecognizeSheet(f *excelize.File) (SheetMatch, bool) {
	list := f.GetSheetList()
	if len(list) == 0 {
		return SheetMatch{}, false
	}

	best := SheetMatch{Sheet: list[0]}
	for _, name := range list {
		header, err := firstRow(f, name)
		if err != nil {
			continue
		}
		m := matchHeader(name, header)
		if m.Matched > best.Matched {
			best = m
		}
		if m.Matched == len(model.RequiredColumns) {
			break
		}
	}
	return best, true
}

func firstRow(f *excelize.File, sheet string) ([]string, error) {
	rows, err := f.Rows(sheet)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	if !rows.Next() {
		return nil, rows.Error()
	}
	return rows.Columns()
}
