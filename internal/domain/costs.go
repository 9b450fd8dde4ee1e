package domain

// The pricing inputs for one request: which vehicle class carries the
// cargo, how heavy it is, and the tariff coefficients. Supplied by the
// caller or derived from configuration; immutable per request.
type CostFactors struct {
	Vehicle               VehicleType
	CargoWeightKg         float64
	BaseRatePerKm         float64
	PerKgSurcharge        float64
	TrafficSurchargePerKm float64
}

// Blends normalized cost and normalized duration into a composite score.
// Both weights must be non-negative and sum to 1.0.
type RankWeights struct {
	Cost float64
	Time float64
}
