package statement_test

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/rjcosta/brickerp/internal/bankimport"
	"github.com/rjcosta/brickerp/internal/importer/statement"
)

func date(y, m, d int) time.Time {
	return time.Date(y, time.Month(m), d, 0, 0, 0, 0, time.UTC)
}

func TestParser_Millennium(t *testing.T) {
	csv := `Consulta de movimentos - 31-03-2024
Conta;1234567 - EUR
Saldo disponível;12.500,00 EUR

Data lanc.;Data valor;Descrição;Montante;Saldo
15-03-2024;15-03-2024;TRANSF SEPA JOAO SILVA;650,00;13.150,00
20-03-2024;20-03-2024;PAGAMENTO FORNECEDOR;-1.200,50;11.949,50
`

	p := statement.NewParser("millennium")
	params, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, params, 2)

	assert.Equal(t, date(2024, 3, 15), params[0].Date)
	assert.Equal(t, "TRANSF SEPA JOAO SILVA", params[0].Reference)
	assert.Equal(t, int64(65000), params[0].Amount)
	assert.Equal(t, bankimport.DirectionCredit, params[0].Direction)
	assert.Equal(t, "millennium", params[0].Bank)

	assert.Equal(t, date(2024, 3, 20), params[1].Date)
	assert.Equal(t, int64(120050), params[1].Amount)
	assert.Equal(t, bankimport.DirectionDebit, params[1].Direction)
}

func TestParser_Santander(t *testing.T) {
	csv := `Consulta de movimentos
Conta;PT50 0038 0000 1234

Data;Data valor;Descritivo;Débito;Crédito;Saldo
10/03/2024;10/03/2024;TRF MARIA SANTOS; ;450,00;5.450,00
12/03/2024;12/03/2024;DD EDP COMERCIAL;88,20; ;5.361,80
 ; ; ; ;Página 1/1 ;
`

	p := statement.NewParser("santander")
	params, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, params, 2)

	assert.Equal(t, date(2024, 3, 10), params[0].Date)
	assert.Equal(t, "TRF MARIA SANTOS", params[0].Reference)
	assert.Equal(t, int64(45000), params[0].Amount)
	assert.Equal(t, bankimport.DirectionCredit, params[0].Direction)

	assert.Equal(t, date(2024, 3, 12), params[1].Date)
	assert.Equal(t, int64(8820), params[1].Amount)
	assert.Equal(t, bankimport.DirectionDebit, params[1].Direction)
}

func TestParser_Windows1252Input(t *testing.T) {
	csv := `Data lanc.;Data valor;Descrição;Montante;Saldo
05-03-2024;05-03-2024;TRANSF JOÃO GONÇALVES;300,00;1.300,00
`

	encoded, err := charmap.Windows1252.NewEncoder().Bytes([]byte(csv))
	require.NoError(t, err)

	p := statement.NewParser("millennium")
	params, err := p.Parse(bytes.NewReader(encoded))
	require.NoError(t, err)
	require.Len(t, params, 1)

	assert.Equal(t, "TRANSF JOÃO GONÇALVES", params[0].Reference)
	assert.Equal(t, int64(30000), params[0].Amount)
}

func TestParser_NoHeader(t *testing.T) {
	p := statement.NewParser("millennium")
	_, err := p.Parse(strings.NewReader("just;some;cells\n1;2;3\n"))
	assert.Error(t, err)
}

func TestParser_UnknownBank(t *testing.T) {
	p := statement.NewParser("nonexistent")
	_, err := p.Parse(strings.NewReader(""))
	assert.Error(t, err)
}
