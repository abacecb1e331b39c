package common

import (
	"bytes"

	"github.com/spf13/viper"
)

// DefaultConfigYAML is used when no config file is found. Additional formats
// can be declared under "statement" in a user config with the same keys.
const DefaultConfigYAML = `
statement:
  GENERIC:
    layout: six_column
    missing_balance: '0.00'
    patterns:
      date_format: '02-Jan-2006'
      closing_label: 'Closing Balance'
      closing_balance: '(?P<label>Closing Balance)\s+(?P<balance>[0-9.,-]+)'
      transaction: '(?P<received>[0-9]{2}-[A-Z][a-z]{2})\s+(?P<processed>[0-9]{2}-[A-Z][a-z]{2})\s{2,}(?P<description>.+?)\s{2,}(?P<amount>[0-9.,-]+)\s+(?P<balance>[0-9.,-]+)'
      transaction_without_balance: '(?P<received>[0-9]{2}-[A-Z][a-z]{2})\s+(?P<processed>[0-9]{2}-[A-Z][a-z]{2})\s{2,}(?P<description>.+?)\s{2,}(?P<amount>[0-9.,-]+)'
      page_boundary: '(Page|Statement continues over|Bank of Queensland|Please check your|Remember to retain|mebank|Account security tips|•)'
  BANK:
    layout: six_column
    missing_balance: ''
    patterns:
      date_format: '02 Jan 2006'
      closing_label: 'Closing Balance'
      closing_balance: '(?P<label>Closing Balance)\s+(?P<balance>[0-9.,-]+)'
      transaction: '(?P<received>[0-9]{2} [A-Z][a-z]{2})\s+(?P<processed>[0-9]{2} [A-Z][a-z]{2})\s{2,}(?P<description>.+?)\s{2,}(?P<amount>[0-9.,-]+)\s+(?P<balance>[0-9.,-]+)'
      transaction_without_balance: '(?P<received>[0-9]{2} [A-Z][a-z]{2})\s+(?P<processed>[0-9]{2} [A-Z][a-z]{2})\s{2,}(?P<description>.+?)\s{2,}(?P<amount>[0-9.,-]+)'
      page_boundary: '(Page [0-9]+ of [0-9]+|Continued on next page|Transactions continued|Important information|Enquiries|•)'
    legacy:
      date_format: '2 Jan 2006'
      amount_rule: debit_credit
      transaction: '(?P<received>[0-9]{1,2} [A-Z][a-z]{2})\s+(?P<processed>[0-9]{1,2} [A-Z][a-z]{2})\s{2,}(?P<description>.+?)\s{2,}(?P<debit>[0-9.,-]+)\s+(?P<credit>[0-9.,-]+)\s+(?P<balance>[0-9.,-]+)'
`

// ReadDefaultConfig loads DefaultConfigYAML into viper.
func ReadDefaultConfig() error {
	viper.SetConfigType("yaml")
	return viper.ReadConfig(bytes.NewBufferString(DefaultConfigYAML))
}
