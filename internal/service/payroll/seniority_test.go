package payroll

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategoryOf(t *testing.T) {
	tests := []struct {
		occupation string
		want       category
	}{
		{"Anggota POLRI", categoryPolice},
		{"police officer", categoryPolice},
		{"TNI AD", categoryMilitary},
		{"PNS Administrasi", categoryCivilServant},
		{"PPPK Perawat", categoryGovContract},
		{"Dokter Mitra", categoryPartnerDoctor},
		{"Tenaga Honorer", categoryHonorary},
		{"Konsultan", categoryUnknown},
		{"", categoryUnknown},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, categoryOf(tt.occupation), "occupation %q", tt.occupation)
	}
}

func TestNormalizeRankAliases(t *testing.T) {
	assert.Equal(t, "BRIGADIR", normalizeRank("Brigpol"))
	assert.Equal(t, "LETKOL", normalizeRank("  letnan   kolonel "))
	assert.Equal(t, "SERMA", normalizeRank("Sersan Mayor"))
	assert.Equal(t, "AKBP", normalizeRank("akbp"))
}

func TestComparePayeesCategoryBeforeEverything(t *testing.T) {
	police := Payee{Occupation: "POLRI", Rank: "BHARADA", Grade: "I/A", Name: "Zainal"}
	honorary := Payee{Occupation: "Honorer", Grade: "IV/A", Name: "Aan"}

	assert.Negative(t, ComparePayees(police, honorary))
	assert.Positive(t, ComparePayees(honorary, police))
}

func TestComparePayeesRankWithinPolice(t *testing.T) {
	senior := Payee{Occupation: "POLRI", Rank: "AKBP", Name: "Budi"}
	junior := Payee{Occupation: "POLRI", Rank: "BRIPDA", Name: "Adi"}
	unknown := Payee{Occupation: "POLRI", Rank: "MYSTERY", Name: "Cak"}

	assert.Negative(t, ComparePayees(senior, junior))
	assert.Negative(t, ComparePayees(junior, unknown), "unknown rank sorts last")
}

func TestComparePayeesGradeThenName(t *testing.T) {
	a := Payee{Occupation: "PNS", Grade: "IV/A", Name: "Dewi"}
	b := Payee{Occupation: "PNS", Grade: "III/D", Name: "Agus"}
	c := Payee{Occupation: "PNS", Grade: "III/D", Name: "Bagus"}

	assert.Negative(t, ComparePayees(a, b), "senior grade first")
	assert.Negative(t, ComparePayees(b, c), "name breaks grade ties")
}

func TestComparePayeesReflexive(t *testing.T) {
	p := Payee{Occupation: "TNI", Rank: "SERKA", Grade: "II/C", Name: "Eko"}
	assert.Zero(t, ComparePayees(p, p))
}

// Sorting any permutation of the same payees must yield the same order.
func TestComparePayeesDeterministicOrder(t *testing.T) {
	base := []Payee{
		{Occupation: "POLRI", Rank: "KOMPOL", Grade: "III/C", Name: "Farid"},
		{Occupation: "POLRI", Rank: "BRIPKA", Grade: "II/D", Name: "Gilang"},
		{Occupation: "TNI", Rank: "MAYOR", Grade: "IV/A", Name: "Hadi"},
		{Occupation: "PNS", Grade: "III/A", Name: "Indah"},
		{Occupation: "PNS", Grade: "III/A", Name: "Joko"},
		{Occupation: "PPPK", Grade: "II/A", Name: "Kiki"},
		{Occupation: "Dokter Mitra", Grade: "", Name: "Lina"},
		{Occupation: "Honorer", Grade: "", Name: "Maman"},
	}

	sorted := make([]Payee, len(base))
	copy(sorted, base)
	sort.Slice(sorted, func(i, j int) bool { return ComparePayees(sorted[i], sorted[j]) < 0 })

	rng := rand.New(rand.NewSource(42))
	for trial := 0; trial < 10; trial++ {
		shuffled := make([]Payee, len(base))
		copy(shuffled, base)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })
		sort.Slice(shuffled, func(i, j int) bool { return ComparePayees(shuffled[i], shuffled[j]) < 0 })

		assert.Equal(t, sorted, shuffled)
	}
}
