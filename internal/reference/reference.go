// Package reference holds the static lookup tables used by booking forms and
// immigration reports.
package reference

import (
	"strings"

	"github.com/example/frontdesk/internal/persistence"
)

// OptionGroup is a labelled set of selectable values.
type OptionGroup struct {
	Label   string
	Options []string
}

// Nationalities lists the selectable guest nationalities.
var Nationalities = []string{"American", "British", "Canadian", "Australian", "German", "French", "Japanese", "Chinese", "Korean"}

var nationalityCodes = map[string]string{
	"American":   "USA",
	"British":    "GBR",
	"Canadian":   "CAN",
	"Australian": "AUS",
	"German":     "DEU",
	"French":     "FRA",
	"Japanese":   "JPN",
	"Chinese":    "CHN",
	"Korean":     "KOR",
}

// NationalityCode returns the three-letter code for a nationality. Unknown
// values fall back to their first three characters upper-cased.
func NationalityCode(nationality string) string {
	if code, ok := nationalityCodes[nationality]; ok {
		return code
	}
	runes := []rune(nationality)
	if len(runes) > 3 {
		runes = runes[:3]
	}
	return strings.ToUpper(string(runes))
}

// GenderCode maps a gender to the single-letter immigration code. Anything
// other than Male is reported as F.
func GenderCode(g persistence.Gender) string {
	if g == persistence.GenderMale {
		return "M"
	}
	return "F"
}

// DefaultVisaType is assigned to newly registered travelers.
const DefaultVisaType = "Tourist Visa (TR)"

// VisaTypes is the closed list of visa categories.
var VisaTypes = []string{
	"Visa Exemption (ยกเว้นวีซ่า)",
	"Visa on Arrival (VOA)",
	DefaultVisaType,
	"Non-Immigrant (NON-B)",
	"Non-Immigrant (NON-ED)",
	"Non-Immigrant (NON-O)",
	"Non-Immigrant (NON-O-A)",
	"LTR Visa",
	"SMART Visa",
	"อื่นๆ (Others)",
}

// PortsOfEntry groups the immigration checkpoints by entry channel.
var PortsOfEntry = []OptionGroup{
	{
		Label: "✈️ Airports (ช่องทางอนุญาตทางอากาศ)",
		Options: []string{
			"ท่าอากาศยานสุวรรณภูมิ (Suvarnabhumi Airport)",
			"ท่าอากาศยานดอนเมือง (Don Mueang International Airport)",
			"ท่าอากาศยานเชียงใหม่ (Chiangmai International Airport)",
			"ท่าอากาศยานภูเก็ต (Phuket International Airport)",
			"ท่าอากาศยานหาดใหญ่ (Hatyai International Airport)",
			"ท่าอากาศยานอู่ตะภา (U Tapao Airport)",
			"ท่าอากาศยานสมุย (Samui Airport)",
			"ท่าอากาศยานกระบี่ (Krabi Airport)",
			"ท่าอากาศยานเชียงราย (Chiangrai Airport)",
			"ท่าอากาศยานสุราษฎร์ธานี (Surat Thani Airport)",
			"ท่าอากาศยานสุโขทัย (Sukhothai International Airport)",
		},
	},
	{
		Label: "🚗 Land Border Checkpoints (ช่องทางอนุญาตทางบก)",
		Options: []string{
			"ด่าน ตม. สะเดา (สงขลา)",
			"ด่าน ตม. หนองคาย",
			"ด่าน ตม. อรัญประเทศ (สระแก้ว)",
			"ด่าน ตม. แม่สาย (เชียงราย)",
			"ด่าน ตม. เบตง (ยะลา)",
			"ด่าน ตม. ปาดังเบซาร์ (สงขลา)",
			"ด่าน ตม. สุไหงโก-ลก (นราธิวาส)",
			"ด่าน ตม. เชียงแสน (เชียงราย)",
			"ด่าน ตม. เชียงของ (เชียงราย)",
			"ด่าน ตม. มุกดาหาร",
			"ด่าน ตม. ตาก (แม่สอด)",
			"ด่าน ตม. คลองใหญ่ (ตราด)",
			"ด่าน ตม. ช่องจอม (สุรินทร์)",
			"ด่าน ตม. ภูสิงห์ (ศรีสะเกษ)",
			"ด่าน ตม. ท่าลี่ (เลย)",
			"ด่าน ตม. นครพนม",
			"ด่าน ตม. บึงกาฬ",
		},
	},
	{
		Label: "🚢 Sea/River Ports (ช่องทางอนุญาตทางน้ำ)",
		Options: []string{
			"ท่าเรือกรุงเทพ (Bangkok Harbour)",
			"ท่าเรือแหลมฉบัง (ชลบุรี)",
			"ท่าเรือศรีราชา (ชลบุรี)",
			"ท่าเรือมาบตาพุด (ระยอง)",
			"ท่าเรือสมุย (สุราษฎร์ธานี)",
			"ท่าเรือภูเก็ต",
			"ท่าเรือสตูล (ด่าน ตม. ตำมะลัง)",
			"ท่าเรือสงขลา",
			"ท่าเรือกระบี่",
		},
	},
}

// AllPortsOfEntry flattens PortsOfEntry in catalog order.
func AllPortsOfEntry() []string {
	var out []string
	for _, group := range PortsOfEntry {
		out = append(out, group.Options...)
	}
	return out
}

// IsVisaType reports whether v is one of VisaTypes.
func IsVisaType(v string) bool {
	for _, candidate := range VisaTypes {
		if candidate == v {
			return true
		}
	}
	return false
}
