package exporter

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"

	"sanggwon/internal/growth"
	"sanggwon/internal/model"
)

const (
	rankingSheet   = "성장률 TOP"
	conditionSheet = "조회 조건"
)

// 화면과 같은 컬럼 라벨
var rankingHeaders = []string{"순위", "상권_코드", "상권명", "최근 매출", "이전 매출", "매출_증가율"}

// Ranking 내보낼 순위 결과
type Ranking struct {
	Recent   model.Period
	Previous model.Period
	Options  growth.Options
	Records  []model.GrowthRecord
	Source   string // 원본 파일명
}

// ExportInfo 생성된 파일 정보
type ExportInfo struct {
	ID          string
	FileName    string
	GeneratedAt time.Time
}

// FileName 다운로드 파일명 (ASCII)
func FileName(p model.Period) string {
	return fmt.Sprintf("district-growth-%d-Q%d.xlsx", p.Year, p.Quarter)
}

// DisplayFileName 다운로드 파일명 (한글)
func DisplayFileName(p model.Period) string {
	return fmt.Sprintf("%d년 %d분기 매출 성장 상권.xlsx", p.Year, p.Quarter)
}

// Export 순위 결과를 엑셀 워크북으로 만든다
// 호출자가 반환된 파일을 Close 해야 한다
func Export(r Ranking) (*excelize.File, ExportInfo, error) {
	info := ExportInfo{
		ID:          uuid.New().String(),
		FileName:    FileName(r.Recent),
		GeneratedAt: time.Now(),
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", rankingSheet); err != nil {
		_ = f.Close()
		return nil, info, errors.Wrap(err, "rename sheet")
	}

	if err := writeRankingSheet(f, r); err != nil {
		_ = f.Close()
		return nil, info, err
	}
	if err := writeConditionSheet(f, r, info); err != nil {
		_ = f.Close()
		return nil, info, err
	}

	f.SetActiveSheet(0)
	return f, info, nil
}

func writeRankingSheet(f *excelize.File, r Ranking) error {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"DCE6F1"}, Pattern: 1},
	})
	if err != nil {
		return errors.Wrap(err, "create header style")
	}
	amountStyle, err := f.NewStyle(&excelize.Style{NumFmt: 3}) // #,##0
	if err != nil {
		return errors.Wrap(err, "create amount style")
	}
	rateStyle, err := f.NewStyle(&excelize.Style{NumFmt: 4}) // #,##0.00
	if err != nil {
		return errors.Wrap(err, "create rate style")
	}

	header := make([]interface{}, len(rankingHeaders))
	for i, h := range rankingHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(rankingSheet, "A1", &header); err != nil {
		return errors.Wrap(err, "write header")
	}
	if err := f.SetCellStyle(rankingSheet, "A1", "F1", headerStyle); err != nil {
		return errors.Wrap(err, "style header")
	}

	for i, g := range r.Records {
		row := []interface{}{i + 1, g.DistrictCode, g.DistrictName, g.RecentSales, g.PreviousSales, nil}
		if g.Undefined {
			row[5] = "정의 불가"
		} else {
			row[5] = g.GrowthPct
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(rankingSheet, cell, &row); err != nil {
			return errors.Wrapf(err, "write row %d", i+2)
		}
	}

	if n := len(r.Records); n > 0 {
		last := n + 1
		if err := f.SetCellStyle(rankingSheet, "D2", fmt.Sprintf("E%d", last), amountStyle); err != nil {
			return errors.Wrap(err, "style amounts")
		}
		if err := f.SetCellStyle(rankingSheet, "F2", fmt.Sprintf("F%d", last), rateStyle); err != nil {
			return errors.Wrap(err, "style rates")
		}
	}

	widths := map[string]float64{"A": 6, "B": 12, "C": 24, "D": 18, "E": 18, "F": 14}
	for col, w := range widths {
		if err := f.SetColWidth(rankingSheet, col, col, w); err != nil {
			return errors.Wrap(err, "set column width")
		}
	}
	return nil
}

func writeConditionSheet(f *excelize.File, r Ranking, info ExportInfo) error {
	if _, err := f.NewSheet(conditionSheet); err != nil {
		return errors.Wrap(err, "create condition sheet")
	}

	rows := [][]interface{}{
		{"항목", "값"},
		{"최근 분기", r.Recent.Label()},
		{"이전 분기", r.Previous.Label()},
		{"TOP N", r.Options.TopN},
		{"조인 방식", string(r.Options.Join)},
		{"직전 매출 0 처리", string(r.Options.ZeroBase)},
		{"원본 파일", r.Source},
		{"생성 시각", info.GeneratedAt.Format("2006-01-02 15:04:05")},
		{"내보내기 ID", info.ID},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		rr := row
		if err := f.SetSheetRow(conditionSheet, cell, &rr); err != nil {
			return errors.Wrapf(err, "write condition row %d", i+1)
		}
	}
	return f.SetColWidth(conditionSheet, "A", "B", 24)
}
