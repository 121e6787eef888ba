package service

const (
	MaxPrincipal         = 1_000_000_000.0 // 1 billón
	MaxAnnualRatePercent = 1000.0          // 1000% anual
	MaxTermYears         = 50              // 600 meses
	MinTermYears         = 1

	// Tolerancia por línea al comparar la suma de capital con el principal
	RoundingTolerance = 0.01
)
