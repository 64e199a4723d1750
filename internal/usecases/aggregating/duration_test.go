package aggregating

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDurationSeconds(t *testing.T) {
	tests := []struct {
		name     string
		raw      any
		expected float64
	}{
		{name: "hora, minuto e segundo", raw: "01:02:03", expected: 3723},
		{name: "minuto e segundo sem hora", raw: "0:30", expected: 30},
		{name: "número em texto", raw: "45", expected: 45},
		{name: "texto vazio", raw: "", expected: 0},
		{name: "nulo", raw: nil, expected: 0},
		{name: "texto inválido", raw: "garbage", expected: 0},
		{name: "milissegundos nos segundos", raw: "00:01:30.500", expected: 90.5},
		{name: "espaços nas pontas", raw: "  00:00:45 ", expected: 45},
		{name: "minutos fora da faixa são aceitos", raw: "1:90:00", expected: 9000},
		{name: "partes inválidas viram zero", raw: "xx:02:yy", expected: 120},
		{name: "bytes do driver", raw: []byte("00:02:00"), expected: 120},
		{name: "float", raw: 12.5, expected: 12.5},
		{name: "inteiro", raw: int64(90), expected: 90},
		{name: "prefixo numérico", raw: "45s", expected: 45},
		{name: "segundos negativos passam direto", raw: "00:01:-10", expected: 50},
		{name: "minuto e segundo com milissegundos", raw: "01:30.5", expected: 90.5},
		{name: "minutos acima de 59 sem hora", raw: "90:00", expected: 5400},
		{name: "coluna TIME do driver", raw: time.Date(0, 1, 1, 0, 1, 30, 0, time.UTC), expected: 90},
		{name: "coluna TIME com fração", raw: time.Date(0, 1, 1, 1, 0, 0, 250000000, time.UTC), expected: 3600.25},
		{name: "tipo desconhecido", raw: struct{}{}, expected: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.expected, ParseDurationSeconds(tt.raw), 0.0001)
		})
	}
}

func TestParseDurationSeconds_HoraMaiorQueInt64(t *testing.T) {
	seconds := ParseDurationSeconds("99999999999999999999:00:00")

	assert.InEpsilon(t, 1e20*3600, seconds, 1e-9)
}
