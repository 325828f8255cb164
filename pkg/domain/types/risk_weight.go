package types

import "github.com/m-mizutani/goerr/v2"

// RiskWeight is the authoring-time severity ordinal of an obligation.
// 3 is the highest severity.
type RiskWeight int

const (
	RiskWeightLow    RiskWeight = 1
	RiskWeightMedium RiskWeight = 2
	RiskWeightHigh   RiskWeight = 3
)

// IsValid checks if the risk weight is within the 1-3 ordinal range
func (w RiskWeight) IsValid() bool {
	return w >= RiskWeightLow && w <= RiskWeightHigh
}

// Validate returns an error when the risk weight is out of range
func (w RiskWeight) Validate() error {
	if !w.IsValid() {
		return goerr.New("risk weight must be between 1 and 3", goerr.V("weight", int(w)))
	}
	return nil
}
