package statement

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEuropeanAmount(t *testing.T) {
	tests := []struct {
		in      string
		want    int64
		wantErr bool
	}{
		{in: "1.234,56", want: 123456},
		{in: "-588,74", want: -58874},
		{in: "10,00", want: 1000},
		{in: "0,01", want: 1},
		{in: "8.608,52", want: 860852},
		{in: "1.000.000,00", want: 100000000},
		{in: "42", want: 4200},
		{in: " 64,00 ", want: 6400},
		{in: "abc", wantErr: true},
		{in: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseEuropeanAmount(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
