package model

// 원본 CSV 컬럼명 (서울시 상권분석서비스 추정매출)
const (
	ColYear         = "기준_년_코드"
	ColQuarter      = "기준_분기_코드"
	ColServiceCode  = "서비스_업종_코드"
	ColServiceName  = "서비스_업종_코드_명"
	ColDistrictCode = "상권_코드"
	ColDistrictName = "상권_이름"
	ColTotalSales   = "총_매출_금액"
)

// RequiredColumns 로딩 시 반드시 존재해야 하는 컬럼
var RequiredColumns = []string{
	ColYear,
	ColQuarter,
	ColServiceCode,
	ColDistrictCode,
	ColDistrictName,
	ColTotalSales,
}

// Record 원본 테이블의 한 행
type Record struct {
	Year         int     `json:"year"`
	Quarter      int     `json:"quarter"`
	ServiceCode  string  `json:"serviceCode"`
	ServiceName  string  `json:"serviceName,omitempty"`
	DistrictCode string  `json:"districtCode"`
	DistrictName string  `json:"districtName"`
	TotalSales   float64 `json:"totalSales"`
}

// Period 반환
func (r Record) Period() Period {
	return Period{Year: r.Year, Quarter: r.Quarter}
}
