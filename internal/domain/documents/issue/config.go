package issue

import "invetra/internal/core/numerator"

const (
	// NumberPrefix for generated document numbers (ISS-YYYYMMDD-0001).
	NumberPrefix = "ISS"

	// NumeratorStrategy defines the numbering strategy for this document type.
	NumeratorStrategy = numerator.StrategyStrict
)
