package types

import "fmt"

// EmployeeBracket is the ordered employee-count bracket from the intake
// questionnaire.
type EmployeeBracket string

const (
	EmployeeUnder10   EmployeeBracket = "<10"
	Employee10to49    EmployeeBracket = "10-49"
	Employee50to99    EmployeeBracket = "50-99"
	Employee100to199  EmployeeBracket = "100-199"
	Employee200orMore EmployeeBracket = ">=200"
)

// AllEmployeeBrackets returns the brackets in ascending order
func AllEmployeeBrackets() []EmployeeBracket {
	return []EmployeeBracket{
		EmployeeUnder10,
		Employee10to49,
		Employee50to99,
		Employee100to199,
		Employee200orMore,
	}
}

// IsValid checks if the employee bracket is valid
func (b EmployeeBracket) IsValid() bool {
	switch b {
	case EmployeeUnder10,
		Employee10to49,
		Employee50to99,
		Employee100to199,
		Employee200orMore:
		return true
	default:
		return false
	}
}

// Midpoint maps the bracket to a representative head count used when
// evaluating employee-count threshold clauses. An unknown bracket maps to 0
// so every threshold clause fails rather than matching spuriously.
func (b EmployeeBracket) Midpoint() int {
	switch b {
	case EmployeeUnder10:
		return 5
	case Employee10to49:
		return 30
	case Employee50to99:
		return 75
	case Employee100to199:
		return 150
	case Employee200orMore:
		return 250
	default:
		return 0
	}
}

// String returns the string representation of the employee bracket
func (b EmployeeBracket) String() string {
	return string(b)
}

// ParseEmployeeBracket parses a string into an EmployeeBracket
func ParseEmployeeBracket(s string) (EmployeeBracket, error) {
	b := EmployeeBracket(s)
	if !b.IsValid() {
		return "", fmt.Errorf("invalid employee bracket: %s", s)
	}
	return b, nil
}

// WorkplaceType is the questionnaire's workplace classification. Values are
// the original Thai questionnaire answers; they are stored verbatim.
type WorkplaceType string

const (
	WorkplaceFactory      WorkplaceType = "โรงงาน / สถานที่ผลิต"
	WorkplaceOffice       WorkplaceType = "สำนักงาน / ออฟฟิศ"
	WorkplaceConstruction WorkplaceType = "หน้างานก่อสร้าง"
	WorkplaceWarehouse    WorkplaceType = "คลังสินค้า / ศูนย์กระจายสินค้า"
	WorkplaceLaboratory   WorkplaceType = "ห้องปฏิบัติการ"
)

// String returns the string representation of the workplace type
func (w WorkplaceType) String() string {
	return string(w)
}

// MachineLevel is the questionnaire's machinery power bracket.
type MachineLevel string

const (
	MachineNone     MachineLevel = "ไม่มีเครื่องจักร"
	MachineUnder75  MachineLevel = "เครื่องจักรไม่เกิน 75 แรงม้า"
	MachineOver75HP MachineLevel = "เครื่องจักรเกิน 75 แรงม้า"
)

// String returns the string representation of the machine level
func (m MachineLevel) String() string {
	return string(m)
}
