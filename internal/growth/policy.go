package growth

import "fmt"

// JoinPolicy 한 분기 안에 같은 상권 코드가 여러 행일 때의 조인 방식
type JoinPolicy string

const (
	// JoinCrossProduct 같은 코드의 행을 모두 짝지어 쌍마다 레코드 생성
	JoinCrossProduct JoinPolicy = "cross_product"
	// JoinFirstMatch 분기마다 코드별 첫 행만 사용
	JoinFirstMatch JoinPolicy = "first_match"
	// JoinSum 분기마다 코드별 매출 합계 사용
	JoinSum JoinPolicy = "sum"
)

// ZeroBasePolicy 직전 분기 매출이 0인 경우의 처리
type ZeroBasePolicy string

const (
	// ZeroBaseExclude 순위에서 제외
	ZeroBaseExclude ZeroBasePolicy = "exclude"
	// ZeroBaseFlag Undefined 로 표시하고 순위 맨 뒤에 둔다
	ZeroBaseFlag ZeroBasePolicy = "flag"
)

// ParseJoinPolicy 빈 문자열은 기본값(cross_product)
func ParseJoinPolicy(s string) (JoinPolicy, error) {
	switch JoinPolicy(s) {
	case "":
		return JoinCrossProduct, nil
	case JoinCrossProduct, JoinFirstMatch, JoinSum:
		return JoinPolicy(s), nil
	}
	return "", fmt.Errorf("%w: join policy %q", ErrUnknownPolicy, s)
}

// ParseZeroBasePolicy 빈 문자열은 기본값(exclude)
func ParseZeroBasePolicy(s string) (ZeroBasePolicy, error) {
	switch ZeroBasePolicy(s) {
	case "":
		return ZeroBaseExclude, nil
	case ZeroBaseExclude, ZeroBaseFlag:
		return ZeroBasePolicy(s), nil
	}
	return "", fmt.Errorf("%w: zero base policy %q", ErrUnknownPolicy, s)
}
