package dataset

import (
	"io"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/xuri/excelize/v2"
)

// LoadXLSX 엑셀 파일 로딩
func LoadXLSX(path, sheet string) (*Table, LoadReport, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, LoadReport{}, &DataFormatError{Source: path, Err: errors.Wrap(err, "open workbook")}
	}
	defer f.Close()

	return ParseWorkbook(f, filepath.Base(path), sheet)
}

// ParseWorkbook 열린 워크북에서 시트 하나를 해석
func ParseWorkbook(f *excelize.File, source, sheet string) (*Table, LoadReport, error) {
	if sheet == "" {
		m, ok := RecognizeSheet(f)
		if !ok {
			return nil, LoadReport{}, &DataFormatError{Source: source, Err: errors.New("workbook has no sheets")}
		}
		sheet = m.Sheet
	}

	rows, err := f.Rows(sheet)
	if err != nil {
		return nil, LoadReport{}, &DataFormatError{Source: source, Err: errors.Wrapf(err, "open sheet %s", sheet)}
	}
	defer rows.Close()

	next := func() ([]string, error) {
		if !rows.Next() {
			if err := rows.Error(); err != nil {
				return nil, err
			}
			return nil, io.EOF
		}
		return rows.Columns()
	}

	header, err := next()
	if err != nil {
		if err == io.EOF {
			return nil, LoadReport{}, &DataFormatError{Source: source, Row: 1, Err: errors.New("empty sheet")}
		}
		return nil, LoadReport{}, &DataFormatError{Source: source, Row: 1, Err: errors.Wrap(err, "read header")}
	}

	table, report, err := buildTable(source, header, next, func(err error) bool { return err == io.EOF })
	if err != nil {
		return nil, LoadReport{}, err
	}
	report.Format = "xlsx"
	return table, report, nil
}
