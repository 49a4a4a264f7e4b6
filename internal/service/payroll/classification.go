package payroll

import (
	"strings"

	"github.com/Bee-255/keu-backend-go/internal/domain/employee"
)

var medicalKeywords = []string{"doctor", "dr.", "specialist", "dokter", "spesialis"}

// ResolveClassification places a payee into exactly one payout category.
// Sources are tried in a fixed priority cascade and the first recognized
// value wins:
//  1. the directory's classification field
//  2. the classification given on the imported row
//  3. an occupation keyword heuristic on the directory occupation
//  4. the same heuristic on the imported occupation text
//
// Anything unresolved falls back to paramedical.
func ResolveClassification(dirClassification, rowClassification, dirOccupation, rowOccupation string) employee.Classification {
	if c, ok := parseClassification(dirClassification); ok {
		return c
	}
	if c, ok := parseClassification(rowClassification); ok {
		return c
	}
	if looksMedical(dirOccupation) {
		return employee.ClassificationMedical
	}
	if looksMedical(rowOccupation) {
		return employee.ClassificationMedical
	}
	return employee.ClassificationParamedical
}

func parseClassification(s string) (employee.Classification, bool) {
	v := strings.ToLower(strings.TrimSpace(s))
	switch {
	case v == "":
		return "", false
	// "paramedical"/"paramedis" contain the medical substrings, so they
	// must be checked first.
	case strings.HasPrefix(v, "paramedi"):
		return employee.ClassificationParamedical, true
	case strings.HasPrefix(v, "medi"):
		return employee.ClassificationMedical, true
	}
	return "", false
}

func looksMedical(occupation string) bool {
	occ := strings.ToLower(occupation)
	for _, kw := range medicalKeywords {
		if strings.Contains(occ, kw) {
			return true
		}
	}
	return false
}
