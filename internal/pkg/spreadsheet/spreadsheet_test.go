package spreadsheet

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestNormalizeHeader(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Payment Label", "payment_label"},
		{" PAYMENT-LABEL ", "payment_label"},
		{"'gross_amount'", "gross_amount"},
		{"NRP/NIP/NIK", "nrp_nip_nik"},
		{"period", "period"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeHeader(tt.in), "input %q", tt.in)
	}
}

func TestParseAndColumnLookup(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	header := []interface{}{"Period", "Payment Label", "NRP/NIP/NIK", "Gross Amount"}
	require.NoError(t, f.SetSheetRow(sheet, "A1", &header))
	row := []interface{}{"2026-08", "Jasa Pelayanan", "198801012010011001", 1000000}
	require.NoError(t, f.SetSheetRow(sheet, "A2", &row))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())

	table, err := Parse(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)

	assert.Equal(t, 0, table.Column("period"))
	assert.Equal(t, 1, table.Column("label", "payment_label"))
	assert.Equal(t, 2, table.Column("employee_identifier", "nrp_nip_nik"))
	assert.Equal(t, -1, table.Column("deduction"))

	require.Len(t, table.Rows, 1)
	assert.Equal(t, "Jasa Pelayanan", Cell(table.Rows[0], 1))
	assert.Equal(t, "", Cell(table.Rows[0], 99), "short rows are tolerated")
}

func TestParseRejectsHeaderOnlyWorkbook(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	header := []interface{}{"Period"}
	require.NoError(t, f.SetSheetRow(sheet, "A1", &header))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	require.NoError(t, f.Close())

	_, err = Parse(bytes.NewReader(buf.Bytes()))
	assert.ErrorIs(t, err, ErrEmptyWorkbook)
}

func TestWorkbookRoundTrip(t *testing.T) {
	f, err := NewWorkbook("First", "Second")
	require.NoError(t, err)

	require.NoError(t, BoldRow(f, "First", 1, []interface{}{"A", "B"}))
	require.NoError(t, SetRow(f, "Second", 1, []interface{}{"C"}))

	content, err := Bytes(f)
	require.NoError(t, err)

	reopened, err := excelize.OpenReader(bytes.NewReader(content))
	require.NoError(t, err)
	defer reopened.Close()

	assert.Equal(t, "First", reopened.GetSheetName(0))
	rows, err := reopened.GetRows("Second")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "C", rows[0][0])
}

func TestSlug(t *testing.T) {
	assert.Equal(t, "jasa-pelayanan-agustus", Slug("Jasa Pelayanan (Agustus)"))
	assert.Equal(t, "bri", Slug(" BRI "))
	assert.Equal(t, "", Slug("???"))
}
