package payroll

import (
	"strings"

	"github.com/shopspring/decimal"
)

// WithholdingRate is the flat service-fee withholding applied to senior grade
// bands and partner doctors. This is deliberately a two-tier rule, not a
// progressive tax table.
var WithholdingRate = decimal.NewFromFloat(0.025)

var partnerDoctorKeywords = []string{"doctor partner", "dokter mitra", "mitra dokter"}

// TaxRateFor returns 2.5% when the grade is in band III or IV, or when the
// occupation marks the employee as a partner doctor; 0% otherwise.
func TaxRateFor(grade, occupation string) decimal.Decimal {
	g := strings.ToUpper(strings.TrimSpace(grade))
	if strings.HasPrefix(g, "III") || strings.HasPrefix(g, "IV") {
		return WithholdingRate
	}
	occ := strings.ToLower(occupation)
	for _, kw := range partnerDoctorKeywords {
		if strings.Contains(occ, kw) {
			return WithholdingRate
		}
	}
	return decimal.Zero
}
