package payroll

import (
	"math/rand"
	"testing"

	"github.com/Bee-255/keu-backend-go/internal/domain/employee"
	"github.com/Bee-255/keu-backend-go/internal/domain/payroll"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestNormalizeBank(t *testing.T) {
	assert.Equal(t, "bank mandiri", normalizeBank("  Bank   MANDIRI "))
	assert.Equal(t, "bri", normalizeBank("BRI"))
}

// Aggregating the same line set in any input order must yield identical
// groups with identical rounded totals.
func TestAggregateByAccountOrderIndependent(t *testing.T) {
	index := map[string]employee.DirectoryEntry{}
	lines := []payroll.LineItem{
		{EmployeeIdentifier: "1", Name: "Agus", Occupation: "PNS", BankName: "BRI",
			AccountNumber: "111", AccountHolderName: "Agus", NetAmount: decimal.NewFromFloat(100.3)},
		{EmployeeIdentifier: "1", Name: "Agus", Occupation: "PNS", BankName: "bri",
			AccountNumber: "111", AccountHolderName: "Agus", NetAmount: decimal.NewFromFloat(200.3)},
		{EmployeeIdentifier: "2", Name: "Bunga", Occupation: "PNS", BankName: "BRI",
			AccountNumber: "222", AccountHolderName: "Bunga", NetAmount: decimal.NewFromFloat(50.2)},
		{EmployeeIdentifier: "3", Name: "Candra", Occupation: "PNS", BankName: "BNI",
			AccountNumber: "333", AccountHolderName: "Candra", NetAmount: decimal.NewFromInt(75)},
	}

	base := aggregateByAccount(lines, "BRI", index)
	assert.Len(t, base, 2)
	// 100.3 + 200.3 = 300.6, rounded once at aggregation time.
	assert.True(t, decimal.NewFromInt(301).Equal(base[0].Net), "got %s", base[0].Net)

	rng := rand.New(rand.NewSource(7))
	for trial := 0; trial < 10; trial++ {
		shuffled := make([]payroll.LineItem, len(lines))
		copy(shuffled, lines)
		rng.Shuffle(len(shuffled), func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] })

		assert.Equal(t, base, aggregateByAccount(shuffled, "BRI", index))
	}
}

func TestAggregateCashKeysOnPayeeIdentity(t *testing.T) {
	index := map[string]employee.DirectoryEntry{}
	lines := []payroll.LineItem{
		{EmployeeIdentifier: "1", Name: "Agus", Occupation: "Honorer", NetAmount: decimal.NewFromInt(100)},
		{EmployeeIdentifier: "1", Name: "Agus", Occupation: "Honorer", NetAmount: decimal.NewFromInt(150)},
		{EmployeeIdentifier: "2", Name: "Agus", Occupation: "Honorer", NetAmount: decimal.NewFromInt(999)},
		{EmployeeIdentifier: "3", Name: "Bunga", Occupation: "Honorer", BankName: "BRI",
			AccountNumber: "222", NetAmount: decimal.NewFromInt(500)},
	}

	groups := aggregateCash(lines, index)
	assert.Len(t, groups, 2, "same name but different identifier stays separate; banked lines excluded")
	assert.True(t, decimal.NewFromInt(250).Equal(groups[0].Net))
	assert.True(t, decimal.NewFromInt(999).Equal(groups[1].Net))
}

// A bank cell holding only whitespace normalizes to empty, so the payee must
// land on the cash list and never silently drop out of both lists.
func TestWhitespaceBankNameCountsAsCash(t *testing.T) {
	index := map[string]employee.DirectoryEntry{}
	lines := []payroll.LineItem{
		{EmployeeIdentifier: "1", Name: "Agus", Occupation: "Honorer", BankName: "   ",
			NetAmount: decimal.NewFromInt(100)},
		{EmployeeIdentifier: "2", Name: "Bunga", Occupation: "PNS", BankName: "BRI",
			AccountNumber: "222", AccountHolderName: "Bunga", NetAmount: decimal.NewFromInt(500)},
	}

	cash := aggregateCash(lines, index)
	assert.Len(t, cash, 1)
	assert.Equal(t, "Agus", cash[0].Payee.Name)

	banked := aggregateByAccount(lines, "BRI", index)
	assert.Len(t, banked, 1)
	assert.Equal(t, "Bunga", banked[0].Payee.Name)
}
