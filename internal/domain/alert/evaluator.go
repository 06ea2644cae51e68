// Package alert contiene la evaluación pura de prioridad de alertas de stock
// bajo. No tiene dependencias de persistencia ni de otras entidades.
package alert

// Priority clasifica la urgencia de una alerta de stock bajo.
type Priority string

const (
	PriorityHigh   Priority = "HIGH"
	PriorityMedium Priority = "MEDIUM"
	PriorityLow    Priority = "LOW"
)

// Evaluate mapea stock actual y umbral a una prioridad:
//
//	stock == 0            -> HIGH
//	stock <= 30% umbral   -> HIGH
//	stock <= 60% umbral   -> MEDIUM
//	en otro caso          -> LOW
//
// Solo tiene sentido cuando stock <= umbral (predicado de stock bajo);
// el caller debe verificarlo antes de invocar.
func Evaluate(currentStock, threshold int) Priority {
	switch {
	case currentStock == 0:
		return PriorityHigh
	case float64(currentStock) <= float64(threshold)*0.3:
		return PriorityHigh
	case float64(currentStock) <= float64(threshold)*0.6:
		return PriorityMedium
	default:
		return PriorityLow
	}
}
