package receipt

import "invetra/internal/core/numerator"

const (
	// NumberPrefix for generated document numbers (RCV-YYYYMMDD-0001).
	NumberPrefix = "RCV"

	// NumeratorStrategy defines the numbering strategy for this document type.
	// Receipts are primary accounting documents, so we use Strict strategy.
	NumeratorStrategy = numerator.StrategyStrict
)
