package transfer

import "invetra/internal/core/numerator"

const (
	// NumberPrefix for generated document numbers (TRF-YYYYMMDD-0001).
	NumberPrefix = "TRF"

	// NumeratorStrategy defines the numbering strategy for this document type.
	NumeratorStrategy = numerator.StrategyStrict
)
