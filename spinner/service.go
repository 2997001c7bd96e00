package spinner

import "context"

// ValueSource supplies the prize value set
type ValueSource interface {
	FetchValueSet(ctx context.Context) ([]int, error)
}

// ResultService is the authoritative source of prize values and spin outcomes
// Implementations own their timeout and retry policy
type ResultService interface {
	ValueSource
	Spin(ctx context.Context) (int, error)
}
