package advice

import (
	"context"

	"github.com/shopspring/decimal"
)

// StubClient is a canned advice client for tests.
type StubClient struct {
	Advice         string
	ScheduleValues []decimal.Decimal
	ScheduleErr    error
}

func NewStubClient() *StubClient {
	return &StubClient{Advice: "stub advice"}
}

func (s *StubClient) GetAdvice(ctx context.Context, req AdviceRequest) string {
	return s.Advice
}

func (s *StubClient) GenerateSchedule(ctx context.Context, target decimal.Decimal, months int) ([]decimal.Decimal, error) {
	if s.ScheduleErr != nil {
		return nil, s.ScheduleErr
	}
	return s.ScheduleValues, nil
}
