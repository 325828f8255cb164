package model

import (
	"github.com/sheqworks/themis/pkg/domain/types"
)

// Profile is the company's self-description collected during intake.
// It is immutable once an assessment starts scoring.
type Profile struct {
	WorkplaceType      types.WorkplaceType   `json:"workplace_type"`
	EmployeeThreshold  types.EmployeeBracket `json:"employee_threshold"`
	HasContractor      bool                  `json:"has_contractor"`
	MainActivity       []string              `json:"main_activity"`
	MachineLevel       types.MachineLevel    `json:"machine_level"`
	RiskProcess        []string              `json:"risk_process"`
	EnvironmentAspect  []string              `json:"environment_aspect"`
	EnergyUse          []string              `json:"energy_use"`
	PublicHealthAspect []string              `json:"public_health_aspect"`
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// HasMainActivity reports whether the given activity was selected
func (p *Profile) HasMainActivity(activity string) bool {
	return containsString(p.MainActivity, activity)
}

// HasRiskProcess reports whether the given hazardous process was selected
func (p *Profile) HasRiskProcess(process string) bool {
	return containsString(p.RiskProcess, process)
}

// HasEnvironmentAspect reports whether the given environmental aspect was selected
func (p *Profile) HasEnvironmentAspect(aspect string) bool {
	return containsString(p.EnvironmentAspect, aspect)
}

// HasEnergyUse reports whether the given energy-use flag was selected
func (p *Profile) HasEnergyUse(use string) bool {
	return containsString(p.EnergyUse, use)
}

// HasPublicHealthAspect reports whether the given public-health flag was selected
func (p *Profile) HasPublicHealthAspect(aspect string) bool {
	return containsString(p.PublicHealthAspect, aspect)
}

// Clone returns a deep copy of the profile
func (p *Profile) Clone() *Profile {
	if p == nil {
		return nil
	}
	copied := *p
	copied.MainActivity = append([]string(nil), p.MainActivity...)
	copied.RiskProcess = append([]string(nil), p.RiskProcess...)
	copied.EnvironmentAspect = append([]string(nil), p.EnvironmentAspect...)
	copied.EnergyUse = append([]string(nil), p.EnergyUse...)
	copied.PublicHealthAspect = append([]string(nil), p.PublicHealthAspect...)
	return &copied
}
