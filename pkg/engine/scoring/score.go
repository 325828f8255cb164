package scoring

import (
	"math"

	"github.com/sheqworks/themis/pkg/domain/types"
)

// statusMultipliers feed the risk-score formula. A compliant or
// not-applicable answer carries no residual risk.
var statusMultipliers = map[types.ComplianceStatus]float64{
	types.ComplianceYes:           0,
	types.CompliancePartial:       0.5,
	types.ComplianceNo:            1,
	types.ComplianceNotApplicable: 0,
}

// GapLevel classifies the compliance shortfall for one obligation. Total
// over the status × weight domain:
//
//	na      any   green
//	yes     any   green
//	partial 1,2   yellow
//	partial 3     red
//	no      1     yellow
//	no      2,3   red
func GapLevel(status types.ComplianceStatus, weight types.RiskWeight) types.GapLevel {
	switch status {
	case types.ComplianceNotApplicable, types.ComplianceYes:
		return types.GapGreen
	case types.CompliancePartial:
		if weight == types.RiskWeightHigh {
			return types.GapRed
		}
		return types.GapYellow
	default: // no
		if weight == types.RiskWeightLow {
			return types.GapYellow
		}
		return types.GapRed
	}
}

// RiskScore computes the numeric residual risk for one obligation:
// round(weight * multiplier * 33.33), which spans 0..100 over the domain.
func RiskScore(status types.ComplianceStatus, weight types.RiskWeight) int {
	mult, ok := statusMultipliers[status]
	if !ok {
		mult = 1
	}
	return int(math.Round(float64(weight) * mult * 33.33))
}

// Score evaluates one obligation answer. Unanswered obligations must be
// scored by the caller as ComplianceNo: the conservative default is that an
// unaddressed duty is an unmet duty.
func Score(status types.ComplianceStatus, weight types.RiskWeight) (types.GapLevel, int) {
	return GapLevel(status, weight), RiskScore(status, weight)
}
