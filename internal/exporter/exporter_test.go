package exporter

import (
	"bytes"
	"testing"

	"github.com/xuri/excelize/v2"

	"sanggwon/internal/growth"
	"sanggwon/internal/model"
)

func TestExport(t *testing.T) {
	recent := model.Period{Year: 2024, Quarter: 1}
	f, info, err := Export(Ranking{
		Recent:   recent,
		Previous: recent.Previous(),
		Options:  growth.DefaultOptions(),
		Records: []model.GrowthRecord{
			{DistrictCode: "A", DistrictName: "상권A", RecentSales: 1000, PreviousSales: 500, GrowthPct: 100},
			{DistrictCode: "C", DistrictName: "상권C", RecentSales: 200, PreviousSales: 0, Undefined: true},
		},
		Source: "sales.csv",
	})
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	defer f.Close()

	if info.ID == "" || info.FileName != "district-growth-2024-Q1.xlsx" {
		t.Errorf("info = %+v", info)
	}

	// 한 번 직렬화했다가 다시 읽어 확인
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("Write failed: %v", err)
	}
	wb, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("OpenReader failed: %v", err)
	}
	defer wb.Close()

	if got := wb.GetSheetList(); len(got) != 2 || got[0] != rankingSheet || got[1] != conditionSheet {
		t.Fatalf("sheets = %v", got)
	}

	rows, err := wb.GetRows(rankingSheet)
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("rows = %d, want 3", len(rows))
	}
	if rows[0][1] != "상권_코드" || rows[0][5] != "매출_증가율" {
		t.Errorf("header = %v", rows[0])
	}
	if rows[1][1] != "A" || rows[1][2] != "상권A" {
		t.Errorf("row 1 = %v", rows[1])
	}
	if rows[2][5] != "정의 불가" {
		t.Errorf("undefined growth cell = %q", rows[2][5])
	}

	v, err := wb.GetCellValue(rankingSheet, "F2", excelize.Options{RawCellValue: true})
	if err != nil || v != "100" {
		t.Errorf("F2 raw = %q (%v), want 100", v, err)
	}

	prev, _ := wb.GetCellValue(conditionSheet, "B3")
	if prev != "2023년 4분기" {
		t.Errorf("previous period cell = %q", prev)
	}
}

func TestExport_Empty(t *testing.T) {
	f, _, err := Export(Ranking{Recent: model.Period{Year: 2024, Quarter: 2}, Options: growth.DefaultOptions()})
	if err != nil {
		t.Fatalf("Export failed: %v", err)
	}
	defer f.Close()

	rows, err := f.GetRows(rankingSheet)
	if err != nil {
		t.Fatalf("GetRows failed: %v", err)
	}
	if len(rows) != 1 {
		t.Errorf("empty ranking should only have the header, got %d rows", len(rows))
	}
}

func TestFileNames(t *testing.T) {
	p := model.Period{Year: 2025, Quarter: 4}
	if got := FileName(p); got != "district-growth-2025-Q4.xlsx" {
		t.Errorf("FileName = %s", got)
	}
	if got := DisplayFileName(p); got != "2025년 4분기 매출 성장 상권.xlsx" {
		t.Errorf("DisplayFileName = %s", got)
	}
}
