package payroll

import (
	"strings"
)

// Payee carries the fields the payout ordering is built on. Every export
// sorts its rows with ComparePayees so re-exports are deterministic and
// auditable.
type Payee struct {
	Occupation string
	Rank       string
	Grade      string
	Name       string
}

// Unknown categories, ranks and grades sort after every known value instead
// of erroring; the directory is maintained by hand and drifts.
const unknownPriority = 999

// Employment categories in payout order. The category is derived from the
// occupation text; only police and military carry a rank hierarchy.
type category int

const (
	categoryPolice category = iota + 1
	categoryMilitary
	categoryCivilServant
	categoryGovContract
	categoryPartnerDoctor
	categoryHonorary
	categoryUnknown category = unknownPriority
)

var categoryKeywords = []struct {
	keyword string
	cat     category
}{
	{"polri", categoryPolice},
	{"police", categoryPolice},
	{"tni", categoryMilitary},
	{"military", categoryMilitary},
	{"pns", categoryCivilServant},
	{"civil servant", categoryCivilServant},
	{"pppk", categoryGovContract},
	{"contract", categoryGovContract},
	{"mitra", categoryPartnerDoctor},
	{"partner", categoryPartnerDoctor},
	{"honorer", categoryHonorary},
	{"honorary", categoryHonorary},
}

func categoryOf(occupation string) category {
	occ := strings.ToLower(occupation)
	for _, ck := range categoryKeywords {
		if strings.Contains(occ, ck.keyword) {
			return ck.cat
		}
	}
	return categoryUnknown
}

func (c category) rankBearing() bool {
	return c == categoryPolice || c == categoryMilitary
}

// Police ranks, senior first.
var policeRanks = []string{
	"IRJEN", "BRIGJEN", "KOMBES", "AKBP", "KOMPOL",
	"AKP", "IPTU", "IPDA",
	"AIPTU", "AIPDA", "BRIPKA", "BRIGADIR", "BRIPTU", "BRIPDA",
	"ABRIP", "ABRIPTU", "ABRIPDA",
	"BHARAKA", "BHARATU", "BHARADA",
}

// Military ranks, senior first.
var militaryRanks = []string{
	"KOLONEL", "LETKOL", "MAYOR",
	"KAPTEN", "LETTU", "LETDA",
	"PELTU", "PELDA", "SERMA", "SERKA", "SERTU", "SERDA",
	"KOPKA", "KOPTU", "KOPDA", "PRAKA", "PRATU", "PRADA",
}

// Long-form and legacy spellings seen in uploads, mapped to table entries.
var rankAliases = map[string]string{
	"BRIGPOL":         "BRIGADIR",
	"LETNAN KOLONEL":  "LETKOL",
	"LETNAN SATU":     "LETTU",
	"LETNAN DUA":      "LETDA",
	"SERSAN MAYOR":    "SERMA",
	"SERSAN KEPALA":   "SERKA",
	"SERSAN SATU":     "SERTU",
	"SERSAN DUA":      "SERDA",
	"KOPRAL KEPALA":   "KOPKA",
	"KOPRAL SATU":     "KOPTU",
	"KOPRAL DUA":      "KOPDA",
	"PRAJURIT KEPALA": "PRAKA",
	"PRAJURIT SATU":   "PRATU",
	"PRAJURIT DUA":    "PRADA",
}

var (
	policePriority   = buildPriority(policeRanks)
	militaryPriority = buildPriority(militaryRanks)
	gradePriority    = buildPriority(grades)
)

// Golongan codes, senior first. Shared by every category.
var grades = []string{
	"IV/E", "IV/D", "IV/C", "IV/B", "IV/A",
	"III/D", "III/C", "III/B", "III/A",
	"II/D", "II/C", "II/B", "II/A",
	"I/D", "I/C", "I/B", "I/A",
}

func buildPriority(ordered []string) map[string]int {
	m := make(map[string]int, len(ordered))
	for i, v := range ordered {
		m[v] = i + 1
	}
	return m
}

func normalizeRank(rank string) string {
	r := strings.ToUpper(strings.TrimSpace(rank))
	r = strings.Join(strings.Fields(r), " ")
	if canonical, ok := rankAliases[r]; ok {
		return canonical
	}
	return r
}

func rankPriorityOf(cat category, rank string) int {
	var table map[string]int
	switch cat {
	case categoryPolice:
		table = policePriority
	case categoryMilitary:
		table = militaryPriority
	default:
		return unknownPriority
	}
	if p, ok := table[normalizeRank(rank)]; ok {
		return p
	}
	return unknownPriority
}

func gradePriorityOf(grade string) int {
	g := strings.ToUpper(strings.TrimSpace(grade))
	if p, ok := gradePriority[g]; ok {
		return p
	}
	return unknownPriority
}

// ComparePayees is a strict total order: employment category, then rank for
// the rank-bearing categories, then grade, then name ascending.
func ComparePayees(a, b Payee) int {
	catA, catB := categoryOf(a.Occupation), categoryOf(b.Occupation)
	if catA != catB {
		return int(catA) - int(catB)
	}
	if catA.rankBearing() {
		if d := rankPriorityOf(catA, a.Rank) - rankPriorityOf(catB, b.Rank); d != 0 {
			return d
		}
	}
	if d := gradePriorityOf(a.Grade) - gradePriorityOf(b.Grade); d != 0 {
		return d
	}
	return strings.Compare(a.Name, b.Name)
}
