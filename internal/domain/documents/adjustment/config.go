package adjustment

import "invetra/internal/core/numerator"

const (
	// NumberPrefix for generated document numbers (ADJ-YYYYMMDD-0001).
	NumberPrefix = "ADJ"

	// NumeratorStrategy defines the numbering strategy for this document type.
	// Adjustments are audit-relevant, so we use Strict strategy.
	NumeratorStrategy = numerator.StrategyStrict
)
