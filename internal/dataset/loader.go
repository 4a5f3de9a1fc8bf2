package dataset

import (
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"

	"sanggwon/internal/model"
)

// LoadOptions 로딩 옵션
type LoadOptions struct {
	Path     string
	Encoding string // cp949 / euc-kr / utf-8 (CSV 전용)
	Sheet    string // xlsx 시트명, 비어 있으면 필수 컬럼이 있는 시트를 찾는다
}

// LoadReport 로딩 결과 요약
type LoadReport struct {
	ID          string        `json:"id"`
	Source      string        `json:"source"`
	Format      string        `json:"format"`
	Encoding    string        `json:"encoding,omitempty"`
	TotalRows   int           `json:"totalRows"`
	KeptRows    int           `json:"keptRows"`
	DroppedRows int           `json:"droppedRows"`
	LoadedAt    time.Time     `json:"loadedAt"`
	Duration    time.Duration `json:"duration"`
}

// Load 파일 확장자에 따라 CSV 또는 xlsx 로딩
func Load(opts LoadOptions) (*Table, LoadReport, error) {
	if strings.TrimSpace(opts.Path) == "" {
		return nil, LoadReport{}, &DataFormatError{Err: errors.New("source path is empty")}
	}

	start := time.Now()
	var (
		table  *Table
		report LoadReport
		err    error
	)
	switch strings.ToLower(filepath.Ext(opts.Path)) {
	case ".xlsx", ".xlsm":
		table, report, err = LoadXLSX(opts.Path, opts.Sheet)
	default:
		table, report, err = LoadCSV(opts.Path, opts.Encoding)
	}
	if err != nil {
		return nil, LoadReport{}, err
	}

	report.LoadedAt = start
	report.Duration = time.Since(start)
	return table, report, nil
}

// rowReader 헤더 이후의 행을 순서대로 돌려준다. 끝이면 io.EOF.
type rowReader func() ([]string, error)

// columnIndex 필수 컬럼 위치
type columnIndex struct {
	year, quarter, serviceCode, serviceName, districtCode, districtName, sales int
}

// resolveColumns 헤더에서 필수 컬럼 위치를 찾는다
func resolveColumns(source string, header []string) (columnIndex, error) {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		h = normalizeColumnName(h)
		if _, dup := pos[h]; !dup {
			pos[h] = i
		}
	}

	var missing []string
	for _, col := range model.RequiredColumns {
		if _, ok := pos[col]; !ok {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return columnIndex{}, &DataFormatError{Source: source, Row: 1, Missing: missing}
	}

	idx := columnIndex{
		year:         pos[model.ColYear],
		quarter:      pos[model.ColQuarter],
		serviceCode:  pos[model.ColServiceCode],
		serviceName:  -1,
		districtCode: pos[model.ColDistrictCode],
		districtName: pos[model.ColDistrictName],
		sales:        pos[model.ColTotalSales],
	}
	if i, ok := pos[model.ColServiceName]; ok {
		idx.serviceName = i
	}
	return idx, nil
}

func cell(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// buildRecord 한 행을 Record 로 변환
// 필수 값이 비어 있거나 결측 표기면 keep=false, 값이 있으나 해석할 수 없거나 음수 매출이면 에러
func buildRecord(source string, rowNo int, idx columnIndex, row []string) (rec model.Record, keep bool, err error) {
	yearText := cell(row, idx.year)
	quarterText := cell(row, idx.quarter)
	serviceCode := cell(row, idx.serviceCode)
	salesText := cell(row, idx.sales)

	if isMissing(yearText) || isMissing(quarterText) || isMissing(serviceCode) || isMissing(salesText) {
		return model.Record{}, false, nil
	}

	year, err := parseInteger(yearText)
	if err != nil || year <= 0 || year > model.MaxYear {
		return model.Record{}, false, &DataFormatError{Source: source, Row: rowNo, Column: model.ColYear,
			Err: errors.Errorf("invalid year %q", yearText)}
	}
	quarter, err := parseInteger(quarterText)
	if err != nil || quarter < 1 || quarter > 4 {
		return model.Record{}, false, &DataFormatError{Source: source, Row: rowNo, Column: model.ColQuarter,
			Err: errors.Errorf("invalid quarter %q", quarterText)}
	}
	sales, err := parseAmount(salesText)
	if err != nil {
		return model.Record{}, false, &DataFormatError{Source: source, Row: rowNo, Column: model.ColTotalSales, Err: err}
	}
	if sales < 0 {
		return model.Record{}, false, &DataFormatError{Source: source, Row: rowNo, Column: model.ColTotalSales,
			Err: errors.Errorf("negative sales amount %q", salesText)}
	}

	return model.Record{
		Year:         year,
		Quarter:      quarter,
		ServiceCode:  serviceCode,
		ServiceName:  cell(row, idx.serviceName),
		DistrictCode: cell(row, idx.districtCode),
		DistrictName: cell(row, idx.districtName),
		TotalSales:   sales,
	}, true, nil
}

// missingMarkers 빈 칸과 같이 취급하는 결측 표기 (pandas read_csv 기본값과 같음, 대소문자 구분)
var missingMarkers = map[string]struct{}{
	"#N/A": {}, "#N/A N/A": {}, "#NA": {}, "-1.#IND": {}, "-1.#QNAN": {}, "-NaN": {}, "-nan": {},
	"1.#IND": {}, "1.#QNAN": {}, "<NA>": {}, "N/A": {}, "NA": {}, "NULL": {}, "NaN": {}, "None": {},
	"n/a": {}, "nan": {}, "null": {},
}

// isMissing 빈 값이거나 결측 표기
func isMissing(s string) bool {
	if s == "" {
		return true
	}
	_, ok := missingMarkers[s]
	return ok
}

// parseInteger "2024" 또는 "2024.0" 형태 허용
func parseInteger(s string) (int, error) {
	if v, err := strconv.Atoi(s); err == nil {
		return v, nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || math.IsInf(f, 0) {
		return 0, errors.Errorf("not an integer: %q", s)
	}
	return int(f), nil
}

// parseAmount 천 단위 구분자 허용, 유한한 값만 허용
func parseAmount(s string) (float64, error) {
	v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64)
	if err != nil {
		return 0, errors.Wrapf(err, "invalid sales amount %q", s)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, errors.Errorf("sales amount is not finite: %q", s)
	}
	return v, nil
}

// buildTable 헤더와 나머지 행으로 테이블 생성
func buildTable(source string, header []string, next rowReader, isEOF func(error) bool) (*Table, LoadReport, error) {
	idx, err := resolveColumns(source, header)
	if err != nil {
		return nil, LoadReport{}, err
	}

	report := LoadReport{
		ID:     uuid.New().String(),
		Source: source,
	}

	var records []model.Record
	rowNo := 1
	for {
		row, err := next()
		if err != nil {
			if isEOF(err) {
				break
			}
			return nil, LoadReport{}, &DataFormatError{Source: source, Row: rowNo + 1, Err: err}
		}
		rowNo++
		if isBlankRow(row) {
			continue
		}
		report.TotalRows++

		rec, keep, err := buildRecord(source, rowNo, idx, row)
		if err != nil {
			return nil, LoadReport{}, err
		}
		if !keep {
			report.DroppedRows++
			continue
		}
		records = append(records, rec)
	}

	report.KeptRows = len(records)
	return NewTable(records), report, nil
}

func isBlankRow(row []string) bool {
	for _, v := range row {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
