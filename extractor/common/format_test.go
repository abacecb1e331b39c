package common

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestConfig(t *testing.T) {
	t.Helper()
	viper.Reset()
	require.NoError(t, ReadDefaultConfig())
}

func TestLoadFormat_Generic(t *testing.T) {
	setupTestConfig(t)

	f, err := LoadFormat("generic", false)
	require.NoError(t, err)

	assert.Equal(t, "generic", f.Name)
	assert.Equal(t, LayoutSixColumn, f.Layout)
	assert.Equal(t, AmountSigned, f.AmountRule)
	assert.Equal(t, "0.00", f.MissingBalance)
	assert.Equal(t, "Closing Balance", f.ClosingLabel)
	require.NotNil(t, f.Transaction)
	require.NotNil(t, f.TransactionWithoutBalance)
	require.NotNil(t, f.ClosingBalance)
	require.NotNil(t, f.PageBoundary)

	assert.True(t, f.PageBoundary.MatchString("Please check your entries"))
	assert.True(t, f.PageBoundary.MatchString("• Keep your PIN safe"))
}

func TestLoadFormat_CaseInsensitiveName(t *testing.T) {
	setupTestConfig(t)

	_, err := LoadFormat("GENERIC", false)
	assert.NoError(t, err)
}

func TestLoadFormat_BankLegacyOverrides(t *testing.T) {
	setupTestConfig(t)

	f, err := LoadFormat("bank", true)
	require.NoError(t, err)

	assert.True(t, f.Legacy)
	assert.Equal(t, LayoutSixColumn, f.Layout)
	assert.Equal(t, AmountDebitCredit, f.AmountRule)
	assert.Equal(t, "2 Jan 2006", f.DateFormat)
	assert.Nil(t, f.TransactionWithoutBalance)
	assert.GreaterOrEqual(t, f.Transaction.SubexpIndex("debit"), 0)
	// inherited from the base format
	require.NotNil(t, f.PageBoundary)
	assert.True(t, f.PageBoundary.MatchString("Page 2 of 3"))
}

func TestLoadFormat_Unknown(t *testing.T) {
	setupTestConfig(t)

	_, err := LoadFormat("nosuchbank", false)
	assert.ErrorIs(t, err, ErrUnknownFormat)
	assert.Contains(t, err.Error(), "bank, generic")
}

func TestLoadFormat_NoLegacy(t *testing.T) {
	setupTestConfig(t)

	_, err := LoadFormat("generic", true)
	assert.ErrorIs(t, err, ErrNoLegacyLayout)
}

func TestLoadFormat_BadPattern(t *testing.T) {
	viper.Reset()
	viper.SetConfigType("yaml")
	require.NoError(t, viper.ReadConfig(bytes.NewBufferString(`
statement:
  BROKEN:
    layout: six_column
    patterns:
      transaction: '(unclosed'
`)))

	_, err := LoadFormat("broken", false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "transaction")
}

func TestLoadFormat_CustomFormat(t *testing.T) {
	viper.Reset()
	viper.SetConfigType("yaml")
	require.NoError(t, viper.ReadConfig(strings.NewReader(`
statement:
  CARD:
    layout: four_column
    patterns:
      date_format: '02/01/2006'
      transaction: '(?P<received>\d{2}/\d{2})\s+(?P<processed>\d{2}/\d{2})\s+(?P<description>.+?)\s+(?P<amount>-?[\d,.]+)$'
`)))

	f, err := LoadFormat("card", false)
	require.NoError(t, err)
	assert.Nil(t, f.ClosingBalance)
	assert.Nil(t, f.PageBoundary)
	assert.Equal(t, "02/01/2006", f.DateFormat)
}

func TestParseLayout(t *testing.T) {
	l, err := ParseLayout(" Four_Column ")
	require.NoError(t, err)
	assert.Equal(t, LayoutFourColumn, l)

	_, err = ParseLayout("wide")
	assert.ErrorIs(t, err, ErrUnknownLayout)
}

func TestFormats(t *testing.T) {
	setupTestConfig(t)
	assert.Equal(t, []string{"bank", "generic"}, Formats())
}
