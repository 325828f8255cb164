package tagging

import (
	"github.com/sheqworks/themis/pkg/domain/model"
	"github.com/sheqworks/themis/pkg/domain/types"
)

// Questionnaire option texts referenced by the rule table. The intake UI
// stores the selected options verbatim, so the rules match on them verbatim.
const (
	activityProduction   = "ผลิต / แปรรูปสินค้า"
	activityMaintenance  = "ซ่อมบำรุง / ประกอบ"
	activityStorage      = "เก็บ / ขนส่งสินค้า"
	activityConstruction = "ก่อสร้าง / รื้อถอน"

	processMining         = "เหมืองแร่"
	processHotWork        = "งานเชื่อม / ตัด / เจียร"
	processConfinedSpace  = "งานในที่อับอากาศ"
	processWorkAtHeight   = "งานบนที่สูง"
	processChemical       = "ผลิต ใช้หรือจัดเก็บสารเคมี"
	processPressureVessel = "หม้อไอน้ำ / ภาชนะรับแรงดัน"
	processHighVoltage    = "งานที่เกี่ยวข้องกับไฟฟ้าแรงสูง"
	processLifting        = "งานยก เคลื่อนย้าย วัตถุหนัก"

	envWastewater     = "มีน้ำเสียจากกระบวนการผลิต/บริการ"
	envHazardousWaste = "มีของเสียอันตราย"
	envAirEmission    = "มีฝุ่น ควัน กลิ่น หรือปล่อง"
	envNoiseVibration = "มีเสียงดัง/แรงสั่นสะเทือน"

	energyBoiler      = "หม้อไอน้ำ (Boiler)"
	energyGenerator   = "เครื่องกำเนิดไฟฟ้า"
	energyFuelStorage = "ถังเก็บเชื้อเพลิง / ก๊าซ"
	energyHighUse     = "ใช้พลังงานไฟฟ้าปริมาณสูง"

	healthFoodHandling  = "มีโรงอาหาร / ครัว / การปรุงอาหาร"
	healthAccommodation = "มีหอพักหรือที่พักพนักงาน"
	healthHazard        = "มีการสัมผัสปัจจัยเสี่ยงต่อสุขภาพ"
)

// rule pairs a profile predicate with the tags it contributes. Rules are
// independent and not mutually exclusive; the derived set is the union of
// every matching rule.
type rule struct {
	when func(p *model.Profile) bool
	tags []types.Tag
}

func employeeAtLeast(brackets ...types.EmployeeBracket) func(p *model.Profile) bool {
	return func(p *model.Profile) bool {
		for _, b := range brackets {
			if p.EmployeeThreshold == b {
				return true
			}
		}
		return false
	}
}

var rules = []rule{
	// Workplace type
	{func(p *model.Profile) bool { return p.WorkplaceType == types.WorkplaceFactory }, []types.Tag{"factory", "manufacturing"}},
	{func(p *model.Profile) bool { return p.WorkplaceType == types.WorkplaceOffice }, []types.Tag{"office"}},
	{func(p *model.Profile) bool { return p.WorkplaceType == types.WorkplaceConstruction }, []types.Tag{"construction"}},
	{func(p *model.Profile) bool { return p.WorkplaceType == types.WorkplaceWarehouse }, []types.Tag{"warehouse", "logistics"}},
	{func(p *model.Profile) bool { return p.WorkplaceType == types.WorkplaceLaboratory }, []types.Tag{"laboratory"}},

	// Employee count, cumulative thresholds
	{employeeAtLeast(types.Employee50to99, types.Employee100to199, types.Employee200orMore), []types.Tag{"employee_50plus"}},
	{employeeAtLeast(types.Employee100to199, types.Employee200orMore), []types.Tag{"employee_100plus"}},
	{employeeAtLeast(types.Employee200orMore), []types.Tag{"employee_200plus"}},

	// Contractor
	{func(p *model.Profile) bool { return p.HasContractor }, []types.Tag{"has_contractor"}},

	// Main activities
	{func(p *model.Profile) bool { return p.HasMainActivity(activityProduction) }, []types.Tag{"production"}},
	{func(p *model.Profile) bool { return p.HasMainActivity(activityMaintenance) }, []types.Tag{"maintenance"}},
	{func(p *model.Profile) bool { return p.HasMainActivity(activityStorage) }, []types.Tag{"storage", "transport"}},
	{func(p *model.Profile) bool { return p.HasMainActivity(activityConstruction) }, []types.Tag{"construction"}},

	// Machinery
	{func(p *model.Profile) bool { return p.MachineLevel == types.MachineOver75HP }, []types.Tag{"factory_act", "heavy_machinery"}},
	{func(p *model.Profile) bool { return p.MachineLevel != "" && p.MachineLevel != types.MachineNone }, []types.Tag{"has_machinery"}},

	// Hazardous processes
	{func(p *model.Profile) bool { return p.HasRiskProcess(processMining) }, []types.Tag{"mining"}},
	{func(p *model.Profile) bool { return p.HasRiskProcess(processHotWork) }, []types.Tag{"hot_work"}},
	{func(p *model.Profile) bool { return p.HasRiskProcess(processConfinedSpace) }, []types.Tag{"confined_space"}},
	{func(p *model.Profile) bool { return p.HasRiskProcess(processWorkAtHeight) }, []types.Tag{"work_at_height"}},
	{func(p *model.Profile) bool { return p.HasRiskProcess(processChemical) }, []types.Tag{"chemical", "hazmat"}},
	{func(p *model.Profile) bool { return p.HasRiskProcess(processPressureVessel) }, []types.Tag{"pressure_vessel", "boiler"}},
	{func(p *model.Profile) bool { return p.HasRiskProcess(processHighVoltage) }, []types.Tag{"high_voltage"}},
	{func(p *model.Profile) bool { return p.HasRiskProcess(processLifting) }, []types.Tag{"manual_handling", "lifting"}},

	// Environmental aspects
	{func(p *model.Profile) bool { return p.HasEnvironmentAspect(envWastewater) }, []types.Tag{"wastewater"}},
	{func(p *model.Profile) bool { return p.HasEnvironmentAspect(envHazardousWaste) }, []types.Tag{"hazardous_waste"}},
	{func(p *model.Profile) bool { return p.HasEnvironmentAspect(envAirEmission) }, []types.Tag{"air_emission"}},
	{func(p *model.Profile) bool { return p.HasEnvironmentAspect(envNoiseVibration) }, []types.Tag{"noise_vibration"}},

	// Energy use
	{func(p *model.Profile) bool { return p.HasEnergyUse(energyBoiler) }, []types.Tag{"boiler"}},
	{func(p *model.Profile) bool { return p.HasEnergyUse(energyGenerator) }, []types.Tag{"generator"}},
	{func(p *model.Profile) bool { return p.HasEnergyUse(energyFuelStorage) }, []types.Tag{"fuel_storage"}},
	{func(p *model.Profile) bool { return p.HasEnergyUse(energyHighUse) }, []types.Tag{"high_energy_user"}},

	// Public health
	{func(p *model.Profile) bool { return p.HasPublicHealthAspect(healthFoodHandling) }, []types.Tag{"food_handling"}},
	{func(p *model.Profile) bool { return p.HasPublicHealthAspect(healthAccommodation) }, []types.Tag{"worker_accommodation"}},
	{func(p *model.Profile) bool { return p.HasPublicHealthAspect(healthHazard) }, []types.Tag{"health_hazard"}},
}

// Derive maps a company profile to its applicability tags. Pure and total:
// empty or unknown profile fields simply match no rule and contribute no
// tags. The result is deduplicated and keeps rule-table order for stability.
func Derive(p *model.Profile) []types.Tag {
	if p == nil {
		return nil
	}

	var tags []types.Tag
	for _, r := range rules {
		if r.when(p) {
			tags = append(tags, r.tags...)
		}
	}

	return types.UniqueTags(tags)
}

// Vocabulary returns every tag the rule table can emit, deduplicated
func Vocabulary() []types.Tag {
	var tags []types.Tag
	for _, r := range rules {
		tags = append(tags, r.tags...)
	}
	return types.UniqueTags(tags)
}
