package statement

// amountMode determines how amounts are extracted from a row.
type amountMode int

const (
	// amountSigned means one signed column: negative values are debits.
	amountSigned amountMode = iota
	// amountSplit means separate debit and credit columns.
	amountSplit
)

// Profile describes the column layout of one bank's CSV statement export.
// Supporting a new bank is adding a Profile here.
type Profile struct {
	Bank       string
	DateCol    string
	DateFormat string
	DescCol    string
	AmountMode amountMode
	AmountCol  string // used when AmountMode == amountSigned
	DebitCol   string // used when AmountMode == amountSplit
	CreditCol  string // used when AmountMode == amountSplit
}

// requiredCols returns the columns that must appear in the header row.
func (p Profile) requiredCols() []string {
	cols := []string{p.DateCol, p.DescCol}

	switch p.AmountMode {
	case amountSigned:
		cols = append(cols, p.AmountCol)
	case amountSplit:
		cols = append(cols, p.DebitCol, p.CreditCol)
	}

	return cols
}

var profiles = map[string]Profile{
	"millennium": {
		Bank:       "millennium",
		DateCol:    "Data valor",
		DateFormat: "02-01-2006",
		DescCol:    "Descrição",
		AmountMode: amountSigned,
		AmountCol:  "Montante",
	},
	"santander": {
		Bank:       "santander",
		DateCol:    "Data",
		DateFormat: "02/01/2006",
		DescCol:    "Descritivo",
		AmountMode: amountSplit,
		DebitCol:   "Débito",
		CreditCol:  "Crédito",
	},
}
