package importer

import (
	"io"

	"github.com/rjcosta/brickerp/internal/bankimport"
)

// Bank identifies a supported statement export format.
type Bank string

const (
	BankMillennium Bank = "millennium"
	BankSantander  Bank = "santander"
)

type Importer interface {
	Parse(r io.Reader) ([]bankimport.CreateParams, error)
}
