package service

import (
	"github.com/shopspring/decimal"

	"github.com/raydan90s/smileops-pedidos/internal/model"
)

// FuenteCantidad selects which quantity feeds the subtotal of each line.
type FuenteCantidad int

const (
	// PorCantidadSolicitada uses the requested quantity (normal mode).
	PorCantidadSolicitada FuenteCantidad = iota
	// PorCantidadRecibida uses the received quantity (receipt/invoice mode);
	// lines with no received quantity contribute zero.
	PorCantidadRecibida
)

// Totales are the derived amounts of a line ledger, split by tax bracket.
// All math is exact decimal; rounding to 2 places happens only at render time.
type Totales struct {
	SubtotalTarifaCero decimal.Decimal
	SubtotalGravado    decimal.Decimal
	Subtotal           decimal.Decimal
	TotalIVA           decimal.Decimal
	Total              decimal.Decimal
}

var cien = decimal.NewFromInt(100)

// CalcularTotales derives the totals of a ledger. descuento is applied only by
// the invoice path; everyone else passes decimal.Zero.
func CalcularTotales(lineas []model.LineaPedido, fuente FuenteCantidad, descuento decimal.Decimal) Totales {
	t := Totales{
		SubtotalTarifaCero: decimal.Zero,
		SubtotalGravado:    decimal.Zero,
		TotalIVA:           decimal.Zero,
	}

	for _, l := range lineas {
		precio := decimal.Zero
		if l.PrecioUnitario != nil {
			precio = *l.PrecioUnitario
		}

		cantidad := l.CantidadSolicitada
		if fuente == PorCantidadRecibida {
			if l.CantidadRecibida == nil {
				cantidad = decimal.Zero
			} else {
				cantidad = *l.CantidadRecibida
			}
		}

		subtotalLinea := cantidad.Mul(precio)
		if l.IVAPorcentaje.IsZero() {
			t.SubtotalTarifaCero = t.SubtotalTarifaCero.Add(subtotalLinea)
		} else {
			t.SubtotalGravado = t.SubtotalGravado.Add(subtotalLinea)
			t.TotalIVA = t.TotalIVA.Add(subtotalLinea.Mul(l.IVAPorcentaje).Div(cien))
		}
	}

	t.Subtotal = t.SubtotalTarifaCero.Add(t.SubtotalGravado)
	t.Total = t.Subtotal.Add(t.TotalIVA).Sub(descuento)
	return t
}
