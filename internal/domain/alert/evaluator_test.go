package alert_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/farmacia-pos/internal/domain/alert"
)

// ──────────────────────────────────────────────────────────────────────────────
// La evaluación de prioridad es una función pura sobre (stock, umbral):
//
//	stock == 0          -> HIGH
//	stock <= 30% umbral -> HIGH
//	stock <= 60% umbral -> MEDIUM
//	en otro caso        -> LOW
//
// Con umbral 10: 0 y 3 son HIGH, 5 y 6 son MEDIUM, 7..10 son LOW.
// ──────────────────────────────────────────────────────────────────────────────

func TestEvaluate_FronterasConUmbralDiez(t *testing.T) {
	cases := []struct {
		name     string
		stock    int
		expected alert.Priority
	}{
		{"agotado", 0, alert.PriorityHigh},
		{"en el 30 por ciento", 3, alert.PriorityHigh},
		{"justo sobre el 30 por ciento", 4, alert.PriorityMedium},
		{"a mitad del umbral", 5, alert.PriorityMedium},
		{"en el 60 por ciento", 6, alert.PriorityMedium},
		{"justo sobre el 60 por ciento", 7, alert.PriorityLow},
		{"en el umbral exacto", 10, alert.PriorityLow},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := alert.Evaluate(tc.stock, 10)
			assert.Equal(t, tc.expected, got,
				"stock=%d umbral=10 debe evaluar a %s", tc.stock, tc.expected)
		})
	}
}

func TestEvaluate_StockCeroSiempreEsHigh(t *testing.T) {
	// stock 0 es HIGH sin importar el umbral, incluso umbral 0.
	assert.Equal(t, alert.PriorityHigh, alert.Evaluate(0, 0))
	assert.Equal(t, alert.PriorityHigh, alert.Evaluate(0, 1))
	assert.Equal(t, alert.PriorityHigh, alert.Evaluate(0, 1000))
}

func TestEvaluate_UmbralUno(t *testing.T) {
	// Con umbral 1 la única observación de stock bajo distinta de cero es 1,
	// que cae sobre el 60% y por tanto es LOW.
	assert.Equal(t, alert.PriorityLow, alert.Evaluate(1, 1))
}
