package dataset

import (
	"fmt"
	"strings"
)

// DataFormatError 원본 파일을 읽거나 해석할 수 없음 (치명적)
type DataFormatError struct {
	Source  string
	Row     int      // 1부터 시작하는 파일 행 번호 (헤더 포함), 0 이면 행과 무관
	Column  string   // 문제가 된 컬럼
	Missing []string // 헤더에 없는 필수 컬럼
	Err     error
}

func (e *DataFormatError) Error() string {
	var b strings.Builder
	b.WriteString("data format error")
	if e.Source != "" {
		fmt.Fprintf(&b, " in %s", e.Source)
	}
	if e.Row > 0 {
		fmt.Fprintf(&b, " at row %d", e.Row)
	}
	if e.Column != "" {
		fmt.Fprintf(&b, " column %q", e.Column)
	}
	if len(e.Missing) > 0 {
		fmt.Fprintf(&b, ": missing required columns %s", strings.Join(e.Missing, ", "))
	}
	if e.Err != nil {
		b.WriteString(": ")
		b.WriteString(e.Err.Error())
	}
	return b.String()
}

func (e *DataFormatError) Unwrap() error {
	return e.Err
}
