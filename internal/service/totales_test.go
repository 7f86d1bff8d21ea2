package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/raydan90s/smileops-pedidos/internal/model"
)

// ── Shared test helpers ──────────────────────────────────────────────────────

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// lineaPrueba builds a line; precio/recibida accept "" for unset.
func lineaPrueba(codigo, cantidad, precio, iva, recibida string) model.LineaPedido {
	l := model.LineaPedido{
		LocalID:            uuid.New(),
		InventarioID:       int64(len(codigo)) + 100,
		Codigo:             codigo,
		Nombre:             "Producto " + codigo,
		UnidadMedida:       "unidad",
		CantidadSolicitada: dec(cantidad),
		IVAPorcentaje:      dec(iva),
	}
	if precio != "" {
		l.PrecioUnitario = decPtr(precio)
	}
	if recibida != "" {
		l.CantidadRecibida = decPtr(recibida)
	}
	return l
}

// ── CalcularTotales ──────────────────────────────────────────────────────────

func TestCalcularTotalesEscenarioCotizacion(t *testing.T) {
	// Two quoted lines: 3 × 2.00 at 15% plus 1 × 5.00 at 0%.
	lineas := []model.LineaPedido{
		lineaPrueba("P1", "3", "2.00", "15", ""),
		lineaPrueba("P2", "1", "5.00", "0", ""),
	}

	tot := CalcularTotales(lineas, PorCantidadSolicitada, decimal.Zero)

	assert.Equal(t, "6.00", tot.SubtotalGravado.StringFixed(2))
	assert.Equal(t, "5.00", tot.SubtotalTarifaCero.StringFixed(2))
	assert.Equal(t, "11.00", tot.Subtotal.StringFixed(2))
	assert.Equal(t, "0.90", tot.TotalIVA.StringFixed(2))
	assert.Equal(t, "11.90", tot.Total.StringFixed(2))
}

func TestCalcularTotalesPropiedadesDeSuma(t *testing.T) {
	lineas := []model.LineaPedido{
		lineaPrueba("A", "7", "1.37", "15", ""),
		lineaPrueba("B", "2", "0.95", "0", ""),
		lineaPrueba("C", "13", "4.10", "12", ""),
		lineaPrueba("D", "1", "120.00", "0", ""),
	}

	tot := CalcularTotales(lineas, PorCantidadSolicitada, decimal.Zero)

	// subtotal == cero + gravado, total == subtotal + iva (sin descuento)
	assert.True(t, tot.Subtotal.Equal(tot.SubtotalTarifaCero.Add(tot.SubtotalGravado)))
	assert.True(t, tot.Total.Equal(tot.Subtotal.Add(tot.TotalIVA)))
}

func TestCalcularTotalesUsaCantidadRecibida(t *testing.T) {
	lineas := []model.LineaPedido{
		lineaPrueba("P1", "10", "2.00", "0", "4"), // pidió 10, llegaron 4
	}

	tot := CalcularTotales(lineas, PorCantidadRecibida, decimal.Zero)
	assert.Equal(t, "8.00", tot.Total.StringFixed(2))

	// Normal mode keeps using the requested quantity.
	tot = CalcularTotales(lineas, PorCantidadSolicitada, decimal.Zero)
	assert.Equal(t, "20.00", tot.Total.StringFixed(2))
}

func TestCalcularTotalesRecibidaSinRegistrarCuentaCero(t *testing.T) {
	lineas := []model.LineaPedido{
		lineaPrueba("P1", "10", "2.00", "0", ""),
	}
	tot := CalcularTotales(lineas, PorCantidadRecibida, decimal.Zero)
	assert.True(t, tot.Total.IsZero())
}

func TestCalcularTotalesAplicaDescuento(t *testing.T) {
	lineas := []model.LineaPedido{
		lineaPrueba("P1", "3", "2.00", "15", "3"),
	}
	tot := CalcularTotales(lineas, PorCantidadRecibida, dec("1.50"))
	// 6.00 + 0.90 - 1.50
	assert.Equal(t, "5.40", tot.Total.StringFixed(2))
}

func TestCalcularTotalesSinPrecioCuentaCero(t *testing.T) {
	// Pending stage: no quoted prices yet.
	lineas := []model.LineaPedido{
		lineaPrueba("P1", "10", "", "0", ""),
	}
	tot := CalcularTotales(lineas, PorCantidadSolicitada, decimal.Zero)
	assert.True(t, tot.Total.IsZero())
}
