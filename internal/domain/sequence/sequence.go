// internal/domain/sequence/sequence.go
package sequence

import (
	"fmt"
	"strings"
)

const width = 6

// Sequence names one counter row in code_sequences. Table and Column point at
// the legacy codes the counter is seeded from on first use.
type Sequence struct {
	Name   string
	Prefix string
	Table  string
	Column string
}

// Customer codes and contract customer-numbers share the "CO" prefix but
// count independently, so their suffixes are unrelated.
var (
	CustomerCode = Sequence{
		Name:   "customer_code",
		Prefix: "CO",
		Table:  "customers",
		Column: "customer_code",
	}
	ContractCustomerNumber = Sequence{
		Name:   "contract_customer_number",
		Prefix: "CO",
		Table:  "contracts",
		Column: "customer_number",
	}
)

const ContractNumberPrefix = "CT"

// Format renders n as prefix plus a 6 digit zero-padded number.
func Format(prefix string, n int64) string {
	return fmt.Sprintf("%s%0*d", prefix, width, n)
}

// ContractNumberFor swaps the customer-number prefix for "CT", keeping the suffix.
func ContractNumberFor(customerNumber string) string {
	if len(customerNumber) < 2 {
		return ContractNumberPrefix
	}
	return ContractNumberPrefix + customerNumber[2:]
}

// Suffix returns the numeric part of code, or "" when code lacks prefix.
func Suffix(code, prefix string) string {
	if !strings.HasPrefix(code, prefix) {
		return ""
	}
	return code[len(prefix):]
}
