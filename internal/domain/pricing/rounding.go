// Package pricing implementa los calculadores puros de estrategias
// promocionales (descuento, combo, regalo). Servicios de dominio sin I/O:
// totales sobre cualquier entrada numérica, nunca retornan error ni hacen
// panic. Todo valor monetario de salida pasa por RoundMoney.
package pricing

import "github.com/shopspring/decimal"

// RoundMoney redondea a 2 decimales (mitad lejos de cero). Es la única
// política de redondeo del motor; mantenerla centralizada garantiza que todos
// los calculadores produzcan la misma precisión al centavo.
func RoundMoney(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
