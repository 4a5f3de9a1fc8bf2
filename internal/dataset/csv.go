package dataset

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/encoding/korean"
	"golang.org/x/text/transform"
)

// DefaultEncoding 서울 열린데이터광장 CSV 기본 인코딩
const DefaultEncoding = "cp949"

// NormalizeEncoding 인코딩 이름 정규화, 지원하지 않으면 ok=false
func NormalizeEncoding(name string) (string, bool) {
	n := strings.ToLower(strings.TrimSpace(name))
	switch n {
	case "":
		return DefaultEncoding, true
	case "cp949", "ms949", "euc-kr", "euckr", "uhc":
		return n, true
	case "utf-8", "utf8":
		return "utf-8", true
	}
	return "", false
}

// decodeReader 인코딩에 맞는 디코딩 리더
func decodeReader(r io.Reader, encoding string) (io.Reader, string, error) {
	enc, ok := NormalizeEncoding(encoding)
	if !ok {
		return nil, "", errors.Errorf("unsupported encoding %q", encoding)
	}
	if enc == "utf-8" {
		return r, enc, nil
	}
	// EUC-KR 디코더는 CP949 확장 문자까지 처리한다
	return transform.NewReader(r, korean.EUCKR.NewDecoder()), enc, nil
}

// LoadCSV 파일에서 CSV 로딩
func LoadCSV(path, encoding string) (*Table, LoadReport, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, LoadReport{}, &DataFormatError{Source: path, Err: errors.Wrap(err, "open source")}
	}
	defer f.Close()

	return ParseCSV(f, filepath.Base(path), encoding)
}

// ParseCSV 리더에서 CSV 해석
func ParseCSV(r io.Reader, source, encoding string) (*Table, LoadReport, error) {
	decoded, enc, err := decodeReader(r, encoding)
	if err != nil {
		return nil, LoadReport{}, &DataFormatError{Source: source, Err: err}
	}

	reader := csv.NewReader(decoded)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, LoadReport{}, &DataFormatError{Source: source, Row: 1, Err: errors.New("empty source")}
		}
		return nil, LoadReport{}, &DataFormatError{Source: source, Row: 1, Err: errors.Wrap(err, "read header")}
	}

	table, report, err := buildTable(source, header, reader.Read, func(err error) bool { return err == io.EOF })
	if err != nil {
		return nil, LoadReport{}, err
	}
	report.Format = "csv"
	report.Encoding = enc
	return table, report, nil
}
