package importer

import (
	"fmt"
	"io"

	"github.com/rjcosta/brickerp/internal/bankimport"
	"github.com/rjcosta/brickerp/internal/importer/statement"
)

type Service struct {
	millennium Importer
	santander  Importer
}

func NewService() *Service {
	return &Service{
		millennium: statement.NewParser(string(BankMillennium)),
		santander:  statement.NewParser(string(BankSantander)),
	}
}

func (s *Service) Import(bank Bank, r io.Reader) ([]bankimport.CreateParams, error) {
	var importer Importer

	switch bank {
	case BankMillennium:
		importer = s.millennium
	case BankSantander:
		importer = s.santander
	default:
		return nil, fmt.Errorf("unknown bank: %s", bank)
	}

	return importer.Parse(r)
}
