package growth

import (
	"errors"
	"fmt"

	"sanggwon/internal/model"
)

var (
	// ErrInvalidTopN TopN 은 1 이상이어야 한다
	ErrInvalidTopN = errors.New("topN must be positive")
	// ErrUnknownPolicy 지원하지 않는 조인/0 기준값 정책
	ErrUnknownPolicy = errors.New("unknown policy")
)

// InvalidPeriodError 잘못된 연도/분기 선택
type InvalidPeriodError struct {
	Role   string // recent / previous
	Period model.Period
}

func (e *InvalidPeriodError) Error() string {
	return fmt.Sprintf("invalid %s period: year=%d quarter=%d (year must be 1..%d, quarter 1..4)",
		e.Role, e.Period.Year, e.Period.Quarter, model.MaxYear)
}

func validatePeriod(role string, p model.Period) error {
	if !p.Valid() {
		return &InvalidPeriodError{Role: role, Period: p}
	}
	return nil
}
