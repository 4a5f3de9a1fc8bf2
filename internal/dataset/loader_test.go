package dataset

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/korean"

	"sanggwon/internal/model"
)

const testHeader = "기준_년_코드,기준_분기_코드,상권_구분_코드,상권_코드,상권_이름,서비스_업종_코드,서비스_업종_코드_명,총_매출_금액\n"

func sampleCSV() string {
	return testHeader +
		"2024,2,A,3110001,이태원역,CS100001,한식음식점,500\n" +
		"2024,3,A,3110001,이태원역,CS100001,한식음식점,1000\n" +
		"2024,3,A,3110002,홍대입구,,한식음식점,700\n" + // 업종 코드 없음: 제외
		"2024,3,A,3110003,신촌,CS100002,중식음식점,\n" + // 매출 없음: 제외
		"2024,3,A,3110004,성수,CS100001,한식음식점,\"1,250.5\"\n" +
		"\n" +
		",3,A,3110005,강남,CS100001,한식음식점,100\n" // 연도 없음: 제외
}

func encodeCP949(t *testing.T, s string) []byte {
	t.Helper()
	b, err := korean.EUCKR.NewEncoder().Bytes([]byte(s))
	if err != nil {
		t.Fatalf("encode cp949: %v", err)
	}
	return b
}

func TestParseCSV_CP949(t *testing.T) {
	table, report, err := ParseCSV(bytes.NewReader(encodeCP949(t, sampleCSV())), "sample.csv", "cp949")
	if err != nil {
		t.Fatalf("ParseCSV failed: %v", err)
	}

	if table.Len() != 3 {
		t.Fatalf("Len = %d, want 3", table.Len())
	}
	if report.TotalRows != 6 || report.KeptRows != 3 || report.DroppedRows != 3 {
		t.Errorf("report = %+v", report)
	}
	if report.Encoding != "cp949" || report.Format != "csv" || report.ID == "" {
		t.Errorf("report meta = %+v", report)
	}

	first := table.At(0)
	want := model.Record{
		Year: 2024, Quarter: 2, ServiceCode: "CS100001", ServiceName: "한식음식점",
		DistrictCode: "3110001", DistrictName: "이태원역", TotalSales: 500,
	}
	if first != want {
		t.Errorf("first record = %+v, want %+v", first, want)
	}
	if got := table.At(2).TotalSales; got != 1250.5 {
		t.Errorf("thousand separator sales = %v, want 1250.5", got)
	}
}

func TestParseCSV_UTF8WithBOM(t *testing.T) {
	src := "\ufeff" + sampleCSV()
	table, report, err := ParseCSV(strings.NewReader(src), "sample.csv", "utf-8")
	if err != nil {
		t.Fatalf("ParseCSV failed: %v", err)
	}
	if table.Len() != 3 || report.Encoding != "utf-8" {
		t.Errorf("Len = %d encoding = %s", table.Len(), report.Encoding)
	}
}

func TestParseCSV_MissingColumns(t *testing.T) {
	src := "기준_년_코드,기준_분기_코드,상권_코드,상권_이름\n2024,1,A,B\n"
	_, _, err := ParseCSV(strings.NewReader(src), "bad.csv", "utf-8")

	var dfe *DataFormatError
	if !errors.As(err, &dfe) {
		t.Fatalf("want DataFormatError, got %v", err)
	}
	if len(dfe.Missing) != 2 {
		t.Errorf("missing = %v, want 서비스_업종_코드 and 총_매출_금액", dfe.Missing)
	}
	if !strings.Contains(dfe.Error(), model.ColTotalSales) {
		t.Errorf("error should name missing column: %s", dfe.Error())
	}
}

func TestParseCSV_InvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		row    string
		column string
	}{
		{"매출이 숫자가 아님", "2024,3,A,1,이름,CS1,업종,abc\n", model.ColTotalSales},
		{"매출 무한대", "2024,3,A,1,이름,CS1,업종,inf\n", model.ColTotalSales},
		{"음수 매출", "2024,3,A,1,이름,CS1,업종,-100\n", model.ColTotalSales},
		{"소문자 na 는 결측 아님", "2024,3,A,1,이름,CS1,업종,na\n", model.ColTotalSales},
		{"연도가 숫자가 아님", "이천,3,A,1,이름,CS1,업종,10\n", model.ColYear},
		{"분기 범위 초과", "2024,5,A,1,이름,CS1,업종,10\n", model.ColQuarter},
		{"분기 소수", "2024,2.5,A,1,이름,CS1,업종,10\n", model.ColQuarter},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := testHeader + "2024,2,A,1,이름,CS1,업종,10\n" + tt.row
			_, _, err := ParseCSV(strings.NewReader(src), "bad.csv", "utf-8")

			var dfe *DataFormatError
			if !errors.As(err, &dfe) {
				t.Fatalf("want DataFormatError, got %v", err)
			}
			if dfe.Column != tt.column {
				t.Errorf("column = %q, want %q", dfe.Column, tt.column)
			}
			if dfe.Row != 3 {
				t.Errorf("row = %d, want 3", dfe.Row)
			}
		})
	}
}

func TestParseCSV_NAMarkers(t *testing.T) {
	tests := []struct {
		name string
		row  string
	}{
		{"매출 NA", "2024,3,A,2,이름,CS1,업종,NA\n"},
		{"매출 NaN", "2024,3,A,2,이름,CS1,업종,NaN\n"},
		{"매출 null", "2024,3,A,2,이름,CS1,업종,null\n"},
		{"매출 N/A", "2024,3,A,2,이름,CS1,업종,N/A\n"},
		{"매출 #N/A", "2024,3,A,2,이름,CS1,업종,#N/A\n"},
		{"연도 NULL", "NULL,3,A,2,이름,CS1,업종,10\n"},
		{"분기 None", "2024,None,A,2,이름,CS1,업종,10\n"},
		{"업종 코드 <NA>", "2024,3,A,2,이름,<NA>,업종,10\n"},
		{"앞뒤 공백", "2024,3,A,2,이름,CS1,업종, nan \n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := testHeader + "2024,3,A,1,이름,CS1,업종,10\n" + tt.row
			table, report, err := ParseCSV(strings.NewReader(src), "na.csv", "utf-8")
			if err != nil {
				t.Fatalf("missing marker should drop the row, got %v", err)
			}
			if table.Len() != 1 || report.KeptRows != 1 || report.DroppedRows != 1 {
				t.Errorf("len=%d kept=%d dropped=%d, want 1/1/1", table.Len(), report.KeptRows, report.DroppedRows)
			}
		})
	}
}

func TestParseCSV_ZeroSalesKept(t *testing.T) {
	src := testHeader + "2024,3,A,1,이름,CS1,업종,0\n"
	table, _, err := ParseCSV(strings.NewReader(src), "zero.csv", "utf-8")
	if err != nil {
		t.Fatalf("ParseCSV failed: %v", err)
	}
	if table.Len() != 1 || table.At(0).TotalSales != 0 {
		t.Errorf("zero sales should be kept")
	}
}

func TestParseCSV_FloatYear(t *testing.T) {
	src := testHeader + "2024.0,1.0,A,1,이름,CS1,업종,10\n"
	table, _, err := ParseCSV(strings.NewReader(src), "float.csv", "utf-8")
	if err != nil {
		t.Fatalf("ParseCSV failed: %v", err)
	}
	if p := table.At(0).Period(); p != (model.Period{Year: 2024, Quarter: 1}) {
		t.Errorf("period = %v", p)
	}
}

func TestParseCSV_EmptyAndUnsupported(t *testing.T) {
	var dfe *DataFormatError
	if _, _, err := ParseCSV(strings.NewReader(""), "empty.csv", "utf-8"); !errors.As(err, &dfe) {
		t.Errorf("empty source: want DataFormatError, got %v", err)
	}
	if _, _, err := ParseCSV(strings.NewReader(sampleCSV()), "x.csv", "latin-9"); !errors.As(err, &dfe) {
		t.Errorf("unsupported encoding: want DataFormatError, got %v", err)
	}
}

func TestLoad_FromFiles(t *testing.T) {
	dir := t.TempDir()

	csvPath := filepath.Join(dir, "sales.csv")
	if err := os.WriteFile(csvPath, encodeCP949(t, sampleCSV()), 0644); err != nil {
		t.Fatalf("write csv: %v", err)
	}
	table, report, err := Load(LoadOptions{Path: csvPath})
	if err != nil {
		t.Fatalf("Load csv failed: %v", err)
	}
	if table.Len() != 3 || report.Encoding != DefaultEncoding || report.LoadedAt.IsZero() {
		t.Errorf("Len = %d report = %+v", table.Len(), report)
	}

	xlsxPath := filepath.Join(dir, "sales.xlsx")
	writeWorkbook(t, xlsxPath)
	table, report, err = Load(LoadOptions{Path: xlsxPath})
	if err != nil {
		t.Fatalf("Load xlsx failed: %v", err)
	}
	if table.Len() != 2 || report.Format != "xlsx" {
		t.Errorf("Len = %d report = %+v", table.Len(), report)
	}

	var dfe *DataFormatError
	if _, _, err := Load(LoadOptions{Path: filepath.Join(dir, "nope.csv")}); !errors.As(err, &dfe) {
		t.Errorf("missing file: want DataFormatError, got %v", err)
	}
	if _, _, err := Load(LoadOptions{}); !errors.As(err, &dfe) {
		t.Errorf("empty path: want DataFormatError, got %v", err)
	}
}

func writeWorkbook(t *testing.T, path string) {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	rows := [][]interface{}{
		{"기준_년_코드", "기준_분기_코드", "상권_코드", "상권_이름", "서비스_업종_코드", "총_매출_금액"},
		{2024, 1, "3110001", "이태원역", "CS100001", 1000},
		{2024, 1, "3110002", "홍대입구", "", 500},
		{2023, 4, "3110001", "이태원역", "CS100001", 800.5},
	}
	for i, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, i+1)
		r := row
		if err := f.SetSheetRow("Sheet1", cell, &r); err != nil {
			t.Fatalf("SetSheetRow failed: %v", err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		t.Fatalf("SaveAs failed: %v", err)
	}
}

func TestParseWorkbook(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wb.xlsx")
	writeWorkbook(t, path)

	f, err := excelize.OpenFile(path)
	if err != nil {
		t.Fatalf("OpenFile failed: %v", err)
	}
	defer f.Close()

	table, report, err := ParseWorkbook(f, "wb.xlsx", "")
	if err != nil {
		t.Fatalf("ParseWorkbook failed: %v", err)
	}
	if report.DroppedRows != 1 {
		t.Errorf("dropped = %d, want 1", report.DroppedRows)
	}
	if got := table.At(1).TotalSales; got != 800.5 {
		t.Errorf("sales = %v, want 800.5", got)
	}

	var dfe *DataFormatError
	if _, _, err := ParseWorkbook(f, "wb.xlsx", "없는시트"); !errors.As(err, &dfe) {
		t.Errorf("unknown sheet: want DataFormatError, got %v", err)
	}
}
