package resolve

import "sort"

// Informal device vocabulary mapped to the words used in formal
// classification names.
var defaultSynonyms = map[string][]string{
	// Body systems
	"heart":   {"cardiac", "cardiovascular"},
	"cardiac": {"cardiac", "cardiovascular"},
	"kidney":  {"renal"},
	"lung":    {"pulmonary"},
	"lungs":   {"pulmonary"},
	"brain":   {"neurological"},
	"nerve":   {"neurological"},
	"stomach": {"gastrointestinal"},
	"gut":     {"gastrointestinal"},
	"skin":    {"dermal", "cutaneous"},
	"eye":     {"ophthalmic"},
	"eyes":    {"ophthalmic"},
	"ear":     {"ear", "otologic"},
	"bone":    {"bone", "orthopedic"},
	"tooth":   {"dental", "tooth"},
	"teeth":   {"dental", "tooth"},
	"dentist": {"dental"},
	"womb":    {"uterine"},
	"bladder": {"urinary", "bladder"},

	// Diagnostics and imaging
	"xray":        {"x-ray", "radiographic"},
	"x-ray":       {"x-ray", "radiographic"},
	"ct":          {"computed tomography"},
	"mri":         {"magnetic resonance"},
	"ultrasound":  {"ultrasonic"},
	"sonogram":    {"ultrasonic", "imaging"},
	"ekg":         {"electrocardiograph"},
	"ecg":         {"electrocardiograph"},
	"eeg":         {"electroencephalograph"},
	"temperature": {"thermometer"},
	"fever":       {"thermometer"},
	"sugar":       {"glucose"},
	"diabetes":    {"glucose"},
	"diabetic":    {"glucose"},
	"glucometer":  {"blood glucose", "test system"},
	"oxygen":      {"oxygen", "oximeter"},
	"pulse":       {"pulse", "oximeter"},
	"pregnancy":   {"pregnancy", "hcg"},
	"covid":       {"sars-cov-2", "coronavirus"},

	// Therapy and implants
	"pacemaker":   {"pacemaker", "pulse generator"},
	"defib":       {"defibrillator"},
	"implant":     {"implant", "prosthesis"},
	"replacement": {"prosthesis"},
	"knee":        {"knee", "prosthesis"},
	"hip":         {"hip", "prosthesis"},
	"breathing":   {"ventilator", "respiratory"},
	"breathe":     {"ventilator", "respiratory"},
	"cpap":        {"ventilator", "continuous"},
	"insulin":     {"insulin", "infusion pump"},
	"iv":          {"intravascular"},
	"drip":        {"intravascular", "administration"},
	"shot":        {"syringe", "hypodermic"},
	"needle":      {"needle", "hypodermic"},
	"bandage":     {"dressing", "wound"},
	"plaster":     {"dressing", "wound"},
	"stitches":    {"suture"},
	"glue":        {"adhesive", "tissue"},
	"contacts":    {"contact lens"},
	"glasses":     {"spectacle"},
	"hearing":     {"hearing", "aid"},
	"wheelchair":  {"wheelchair"},
	"walker":      {"walker", "mechanical"},
	"condom":      {"condom"},
	"tens":        {"stimulator", "transcutaneous", "nerve"},
	"massager":    {"massager", "vibrator"},
	"laser":       {"laser", "surgical"},
	"scalpel":     {"scalpel", "blade"},
	"tube":        {"tube", "catheter"},
	"bp":          {"blood pressure"},
	"sphygmo":     {"sphygmomanometer"},
}

// DefaultSynonyms returns the built-in synonym table.
func DefaultSynonyms() *SynonymTable {
	return NewSynonymTable(defaultSynonyms)
}

func sortedKeys(m map[string][]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
