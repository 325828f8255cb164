package recommend

import (
	"strings"

	"github.com/sheqworks/themis/pkg/domain/types"
)

// fallbackText is returned for categories outside the known taxonomy rather
// than failing the scoring pass.
const fallbackText = "กรุณาปรึกษาผู้เชี่ยวชาญ"

const evidenceLabel = "หลักฐานที่ต้องจัดเตรียม"

// templates maps (category, gap level) to remediation text. The table is
// authored data, kept inline so every entry is reviewable rule-by-rule.
var templates = map[types.Category]map[types.GapLevel]string{
	types.CategorySafety: {
		types.GapRed:    "ต้องดำเนินการทันที: จัดทำแผนความปลอดภัยและดำเนินการตามกฎหมาย ติดต่อเจ้าหน้าที่ความปลอดภัย (จป.) เพื่อประเมินความเสี่ยงและออกมาตรการป้องกัน",
		types.GapYellow: "ควรปรับปรุง: ทบทวนและปรับปรุงขั้นตอนการทำงานให้สมบูรณ์ จัดทำเอกสารหลักฐานให้ครบถ้วน",
		types.GapGreen:  "ดำเนินการถูกต้องแล้ว: รักษามาตรฐานและทบทวนเป็นประจำทุกปี",
	},
	types.CategoryEnvironment: {
		types.GapRed:    "ต้องดำเนินการทันที: ติดต่อหน่วยงานสิ่งแวดล้อม ขอใบอนุญาตที่จำเป็น และดำเนินการบำบัดของเสียตามมาตรฐาน",
		types.GapYellow: "ควรปรับปรุง: ทบทวนระบบบำบัดและการจัดการของเสีย จัดทำรายงานให้ครบถ้วน",
		types.GapGreen:  "ดำเนินการถูกต้องแล้ว: ติดตามการเปลี่ยนแปลงกฎหมายสิ่งแวดล้อมอย่างสม่ำเสมอ",
	},
	types.CategoryLabor: {
		types.GapRed:    "ต้องดำเนินการทันที: ปรับปรุงสัญญาจ้าง สวัสดิการ และขั้นตอนตาม พ.ร.บ. คุ้มครองแรงงาน",
		types.GapYellow: "ควรปรับปรุง: ทบทวนนโยบายและขั้นตอนด้านแรงงาน จัดทำบันทึกให้สมบูรณ์",
		types.GapGreen:  "ดำเนินการถูกต้องแล้ว: ติดตามการปรับปรุงกฎหมายแรงงาน",
	},
	types.CategoryEnergy: {
		types.GapRed:    "ต้องดำเนินการทันที: ตรวจสอบและขอใบอนุญาตจากกรมโรงงาน/กรมพลังงาน",
		types.GapYellow: "ควรปรับปรุง: จัดทำแผนการใช้พลังงานและบำรุงรักษาอุปกรณ์",
		types.GapGreen:  "ดำเนินการถูกต้องแล้ว: ทบทวนประสิทธิภาพพลังงานประจำปี",
	},
	types.CategoryQuality: {
		types.GapRed:    "ต้องดำเนินการทันที: จัดทำระบบควบคุมคุณภาพตามมาตรฐานที่กำหนด",
		types.GapYellow: "ควรปรับปรุง: ทบทวนกระบวนการควบคุมคุณภาพและปรับปรุงเอกสาร",
		types.GapGreen:  "ดำเนินการถูกต้องแล้ว: ดำเนินการ continuous improvement ต่อไป",
	},
	types.CategoryPublicHealth: {
		types.GapRed:    "ต้องดำเนินการทันที: ติดต่อสำนักงานสาธารณสุข ขอใบอนุญาตที่จำเป็น",
		types.GapYellow: "ควรปรับปรุง: ปรับปรุงสุขลักษณะสถานที่และจัดทำมาตรการสุขาภิบาล",
		types.GapGreen:  "ดำเนินการถูกต้องแล้ว: รักษาความสะอาดและตรวจสอบสุขลักษณะอย่างสม่ำเสมอ",
	},
}

// Recommend resolves the remediation text for a scored obligation. Unknown
// categories get a generic consult-an-expert fallback. For non-green levels
// with outstanding evidence, the evidence list is appended as a labeled
// addendum; green items have nothing left to evidence.
func Recommend(category types.Category, level types.GapLevel, requiredEvidence []string) string {
	byLevel, ok := templates[category]
	if !ok {
		return fallbackText
	}

	text := byLevel[level]
	if level == types.GapGreen {
		return text
	}

	if len(requiredEvidence) > 0 {
		text += "\n\n" + evidenceLabel + ": " + strings.Join(requiredEvidence, ", ")
	}
	return text
}
