package model

import "fmt"

// MaxYear 허용되는 최대 연도
const MaxYear = 9999

// Period 기준 연도/분기
type Period struct {
	Year    int `json:"year"`
	Quarter int `json:"quarter"`
}

// Valid 연도 1..9999, 분기 1..4
func (p Period) Valid() bool {
	return p.Year > 0 && p.Year <= MaxYear && p.Quarter >= 1 && p.Quarter <= 4
}

// Previous 직전 분기
// 1분기의 직전 분기는 전년도 4분기이다. 데이터에 해당 연도가 없는지는 확인하지 않는다.
func (p Period) Previous() Period {
	if p.Quarter > 1 {
		return Period{Year: p.Year, Quarter: p.Quarter - 1}
	}
	return Period{Year: p.Year - 1, Quarter: 4}
}

// Before p 가 o 보다 앞선 분기인지
func (p Period) Before(o Period) bool {
	if p.Year != o.Year {
		return p.Year < o.Year
	}
	return p.Quarter < o.Quarter
}

func (p Period) String() string {
	return fmt.Sprintf("%dQ%d", p.Year, p.Quarter)
}

// Label 화면 표시용 (예: 2024년 3분기)
func (p Period) Label() string {
	return fmt.Sprintf("%d년 %d분기", p.Year, p.Quarter)
}
