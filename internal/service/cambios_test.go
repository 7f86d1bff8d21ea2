package service

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raydan90s/smileops-pedidos/internal/apierror"
	"github.com/raydan90s/smileops-pedidos/internal/model"
)

func reglaDe(t *testing.T, err error) *apierror.ErrorValidacion {
	t.Helper()
	var ev *apierror.ErrorValidacion
	require.ErrorAs(t, err, &ev)
	return ev
}

// ── ConstruirGuardar ─────────────────────────────────────────────────────────

func TestConstruirGuardarPayloadDeCreacion(t *testing.T) {
	tipo, bodega := int64(3), int64(7)
	p := &model.Pedido{TipoPedidoID: &tipo, BodegaDestinoID: &bodega}
	linea := lineaPrueba("P1", "10", "", "0", "")
	linea.InventarioID = 42

	req, err := ConstruirGuardar(p, []model.LineaPedido{linea}, "", 9)
	require.NoError(t, err)

	data, err := json.Marshal(req)
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(data, &body))
	assert.EqualValues(t, 3, body["iid_tipo_pedido"])
	assert.EqualValues(t, 7, body["iid_bodega_destino"])

	detalles, ok := body["detalles"].([]interface{})
	require.True(t, ok)
	require.Len(t, detalles, 1)
	detalle := detalles[0].(map[string]interface{})
	assert.EqualValues(t, 42, detalle["iid_inventario"])
	assert.EqualValues(t, "10", detalle["cantidad_solicitada"])
}

func TestConstruirGuardarRechazos(t *testing.T) {
	tipo, bodega := int64(3), int64(7)
	lineaOK := lineaPrueba("P1", "10", "", "0", "")

	t.Run("sin tipo de pedido", func(t *testing.T) {
		p := &model.Pedido{BodegaDestinoID: &bodega}
		_, err := ConstruirGuardar(p, []model.LineaPedido{lineaOK}, "", 9)
		assert.Equal(t, ReglaTipoPedido, reglaDe(t, err).Regla)
	})

	t.Run("sin bodega destino", func(t *testing.T) {
		p := &model.Pedido{TipoPedidoID: &tipo}
		_, err := ConstruirGuardar(p, []model.LineaPedido{lineaOK}, "", 9)
		assert.Equal(t, ReglaBodegaDestino, reglaDe(t, err).Regla)
	})

	t.Run("sin lineas", func(t *testing.T) {
		p := &model.Pedido{TipoPedidoID: &tipo, BodegaDestinoID: &bodega}
		_, err := ConstruirGuardar(p, nil, "", 9)
		assert.Equal(t, ReglaSinLineas, reglaDe(t, err).Regla)
	})

	t.Run("cantidad no positiva nombra la linea", func(t *testing.T) {
		p := &model.Pedido{TipoPedidoID: &tipo, BodegaDestinoID: &bodega}
		mala := lineaPrueba("P7", "0", "", "0", "")
		_, err := ConstruirGuardar(p, []model.LineaPedido{lineaOK, mala}, "", 9)
		ev := reglaDe(t, err)
		assert.Equal(t, ReglaCantidad, ev.Regla)
		assert.Equal(t, "P7", ev.Campo)
	})
}

// ── ConstruirCotizacion ──────────────────────────────────────────────────────

func TestConstruirCotizacion(t *testing.T) {
	proveedor := int64(4)
	lineas := []model.LineaPedido{
		lineaPrueba("P1", "3", "2.00", "15", ""),
		lineaPrueba("P2", "1", "5.00", "0", ""),
	}

	req, err := ConstruirCotizacion(&proveedor, lineas, "cotizado hoy")
	require.NoError(t, err)
	assert.EqualValues(t, 4, req.ProveedorID)
	require.Len(t, req.Detalles, 2)
	assert.Equal(t, "2.00", req.Detalles[0].PrecioUnitario.StringFixed(2))
	assert.Equal(t, "15", req.Detalles[0].IVAPorcentaje.String())
}

func TestConstruirCotizacionRechazos(t *testing.T) {
	proveedor := int64(4)

	t.Run("sin proveedor", func(t *testing.T) {
		_, err := ConstruirCotizacion(nil, []model.LineaPedido{lineaPrueba("P1", "1", "2.00", "0", "")}, "")
		assert.Equal(t, ReglaProveedor, reglaDe(t, err).Regla)
	})

	t.Run("linea sin precio", func(t *testing.T) {
		_, err := ConstruirCotizacion(&proveedor, []model.LineaPedido{lineaPrueba("P1", "1", "", "0", "")}, "")
		ev := reglaDe(t, err)
		assert.Equal(t, ReglaPrecio, ev.Regla)
		assert.Equal(t, "P1", ev.Campo)
	})

	t.Run("precio cero", func(t *testing.T) {
		_, err := ConstruirCotizacion(&proveedor, []model.LineaPedido{lineaPrueba("P1", "1", "0", "0", "")}, "")
		assert.Equal(t, ReglaPrecio, reglaDe(t, err).Regla)
	})
}

// ── ConstruirRechazo ─────────────────────────────────────────────────────────

func TestConstruirRechazoExigeMotivo(t *testing.T) {
	_, err := ConstruirRechazo("no")
	assert.Equal(t, ReglaMotivo, reglaDe(t, err).Regla)

	req, err := ConstruirRechazo("precios fuera de presupuesto")
	require.NoError(t, err)
	assert.Equal(t, "precios fuera de presupuesto", req.Motivo)
}

// ── ConstruirRecepcion ───────────────────────────────────────────────────────

func TestConstruirRecepcion(t *testing.T) {
	lineas := []model.LineaPedido{
		lineaPrueba("P1", "10", "2.00", "0", "8"),
	}
	fecha := time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC)

	req, err := ConstruirRecepcion(5, fecha, lineas, "")
	require.NoError(t, err)
	assert.EqualValues(t, 5, req.UsuarioRecibeID)
	assert.Equal(t, "2026-08-29", req.Fecha)
	require.Len(t, req.Detalles, 1)
	assert.Equal(t, "8", req.Detalles[0].CantidadRecibida.String())
}

func TestConstruirRecepcionBloqueaCantidadSinRegistrar(t *testing.T) {
	lineas := []model.LineaPedido{
		lineaPrueba("P1", "10", "2.00", "0", "8"),
		lineaPrueba("P2", "4", "1.00", "0", ""), // sin cantidad recibida
	}

	_, err := ConstruirRecepcion(5, time.Now(), lineas, "")
	ev := reglaDe(t, err)
	assert.Equal(t, ReglaCantidadRecibida, ev.Regla)
	assert.Equal(t, "P2", ev.Campo)
	assert.Contains(t, ev.Error(), "cantidad recibida")
}

// ── ConstruirFactura ─────────────────────────────────────────────────────────

func facturaPrueba() *model.FacturaPedido {
	return &model.FacturaPedido{
		EntidadID:    2,
		Numero:       "001-001-000000123",
		FechaEmision: time.Date(2026, 8, 29, 0, 0, 0, 0, time.UTC),
	}
}

func TestConstruirFacturaEspejaTotalesDelLibro(t *testing.T) {
	lineas := []model.LineaPedido{
		lineaPrueba("P1", "3", "2.00", "15", "3"),
		lineaPrueba("P2", "1", "5.00", "0", "1"),
	}

	req, err := ConstruirFactura(facturaPrueba(), lineas)
	require.NoError(t, err)
	assert.Equal(t, "11.00", req.Subtotal.StringFixed(2))
	assert.Equal(t, "0.90", req.IVA.StringFixed(2))
	assert.Equal(t, "11.90", req.Total.StringFixed(2))
}

func TestConstruirFacturaRechazos(t *testing.T) {
	lineas := []model.LineaPedido{lineaPrueba("P1", "1", "2.00", "0", "1")}

	t.Run("sin emisor", func(t *testing.T) {
		f := facturaPrueba()
		f.EntidadID = 0
		_, err := ConstruirFactura(f, lineas)
		assert.Equal(t, ReglaFactura, reglaDe(t, err).Regla)
	})

	t.Run("sin numero", func(t *testing.T) {
		f := facturaPrueba()
		f.Numero = ""
		_, err := ConstruirFactura(f, lineas)
		assert.Equal(t, ReglaFactura, reglaDe(t, err).Regla)
	})

	t.Run("sin fecha", func(t *testing.T) {
		f := facturaPrueba()
		f.FechaEmision = time.Time{}
		_, err := ConstruirFactura(f, lineas)
		assert.Equal(t, ReglaFactura, reglaDe(t, err).Regla)
	})

	t.Run("clave de acceso invalida", func(t *testing.T) {
		f := facturaPrueba()
		f.ClaveAcceso = "12345"
		_, err := ConstruirFactura(f, lineas)
		assert.Equal(t, ReglaClaveAcceso, reglaDe(t, err).Regla)
	})
}
