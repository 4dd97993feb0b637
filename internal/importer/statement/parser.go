package statement

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/rjcosta/brickerp/internal/bankimport"
	"github.com/rjcosta/brickerp/internal/charset"
)

// Parser reads one bank's CSV statement export and produces bank entry
// params. Statement files carry preamble rows (account header, balances)
// before the column header, so the parser scans for a row containing the
// profile's required columns and treats everything after it as data.
type Parser struct {
	profile Profile
}

func NewParser(bank string) *Parser {
	return &Parser{profile: profiles[bank]}
}

// colIndex maps column names to their position in the header row.
type colIndex map[string]int

func (p *Parser) Parse(r io.Reader) ([]bankimport.CreateParams, error) {
	if p.profile.Bank == "" {
		return nil, fmt.Errorf("no statement profile configured")
	}

	utf8r, err := charset.NewUTF8Reader(r)
	if err != nil {
		return nil, fmt.Errorf("detect encoding: %w", err)
	}

	reader := csv.NewReader(utf8r)
	reader.Comma = ';'
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read csv: %w", err)
	}

	cols, headerIdx := p.findHeader(rows)
	if cols == nil {
		return nil, fmt.Errorf("no %s statement header found", p.profile.Bank)
	}

	return p.parseRows(cols, rows[headerIdx+1:])
}

// findHeader scans for the first row containing every required column.
func (p *Parser) findHeader(rows [][]string) (colIndex, int) {
	required := p.profile.requiredCols()

	for rowIdx, row := range rows {
		cols := make(colIndex)

		for i, cell := range row {
			if name := strings.TrimSpace(cell); name != "" {
				cols[name] = i
			}
		}

		found := 0

		for _, name := range required {
			if _, ok := cols[name]; ok {
				found++
			}
		}

		if found == len(required) {
			return cols, rowIdx
		}
	}

	return nil, 0
}

func (p *Parser) parseRows(cols colIndex, rows [][]string) ([]bankimport.CreateParams, error) {
	dateIdx := cols[p.profile.DateCol]
	descIdx := cols[p.profile.DescCol]

	var params []bankimport.CreateParams

	for _, row := range rows {
		date, ok := p.parseDate(row, dateIdx)
		if !ok {
			// Footer or summary row.
			continue
		}

		amount, direction, ok := p.parseAmount(cols, row)
		if !ok {
			continue
		}

		params = append(params, bankimport.CreateParams{
			Date:      date,
			Amount:    amount,
			Direction: direction,
			Reference: cellValue(row, descIdx),
			Bank:      p.profile.Bank,
		})
	}

	return params, nil
}

func (p *Parser) parseDate(row []string, idx int) (time.Time, bool) {
	s := cellValue(row, idx)
	if s == "" {
		return time.Time{}, false
	}

	t, err := time.Parse(p.profile.DateFormat, s)
	if err != nil {
		return time.Time{}, false
	}

	return t, true
}

func (p *Parser) parseAmount(cols colIndex, row []string) (int64, bankimport.Direction, bool) {
	switch p.profile.AmountMode {
	case amountSigned:
		return parseSignedAmount(row, cols[p.profile.AmountCol])
	case amountSplit:
		return parseSplitAmount(row, cols[p.profile.DebitCol], cols[p.profile.CreditCol])
	}

	return 0, "", false
}

// parseSignedAmount handles a single signed amount column.
func parseSignedAmount(row []string, idx int) (int64, bankimport.Direction, bool) {
	s := cellValue(row, idx)
	if s == "" {
		return 0, "", false
	}

	cents, err := parseEuropeanAmount(s)
	if err != nil || cents == 0 {
		return 0, "", false
	}

	if cents < 0 {
		return -cents, bankimport.DirectionDebit, true
	}

	return cents, bankimport.DirectionCredit, true
}

// parseSplitAmount handles separate debit/credit columns.
func parseSplitAmount(row []string, debitIdx, creditIdx int) (int64, bankimport.Direction, bool) {
	if s := cellValue(row, debitIdx); s != "" {
		cents, err := parseEuropeanAmount(s)
		if err == nil && cents != 0 {
			return abs(cents), bankimport.DirectionDebit, true
		}
	}

	if s := cellValue(row, creditIdx); s != "" {
		cents, err := parseEuropeanAmount(s)
		if err == nil && cents != 0 {
			return abs(cents), bankimport.DirectionCredit, true
		}
	}

	return 0, "", false
}

// cellValue safely gets a trimmed cell value from a row.
func cellValue(row []string, idx int) string {
	if idx < 0 || idx >= len(row) {
		return ""
	}

	return strings.TrimSpace(row[idx])
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}

	return n
}
