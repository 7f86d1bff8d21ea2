package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/raydan90s/smileops-pedidos/internal/model"
)

func productoPrueba(codigo string, iva string) model.Producto {
	return model.Producto{
		ID:            int64(len(codigo)) + 100,
		Codigo:        codigo,
		Nombre:        "Producto " + codigo,
		UnidadMedida:  "unidad",
		IVAPorcentaje: dec(iva),
	}
}

func pedidoPrueba(lineas ...model.LineaPedido) *model.Pedido {
	tipo, bodega := int64(3), int64(7)
	return &model.Pedido{
		ID:              15,
		Estado:          model.EstadoPendiente,
		TipoPedidoID:    &tipo,
		BodegaDestinoID: &bodega,
		Observaciones:   "urgente",
		Lineas:          lineas,
	}
}

func TestLibroAgregarYQuitar(t *testing.T) {
	libro := NuevoLibro(pedidoPrueba())

	id, err := libro.Agregar(productoPrueba("P1", "15"), dec("10"))
	require.NoError(t, err)
	require.Len(t, libro.Lineas(), 1)
	assert.Equal(t, "P1", libro.Lineas()[0].Codigo)
	assert.Equal(t, "15", libro.Lineas()[0].IVAPorcentaje.String())

	require.NoError(t, libro.Quitar(id))
	assert.Empty(t, libro.Lineas())

	assert.ErrorIs(t, libro.Quitar(id), ErrLineaNoEncontrada)
}

func TestLibroAgregarRechazaDuplicadoPorCodigo(t *testing.T) {
	libro := NuevoLibro(pedidoPrueba())

	_, err := libro.Agregar(productoPrueba("P1", "0"), dec("1"))
	require.NoError(t, err)

	_, err = libro.Agregar(productoPrueba("P1", "0"), dec("2"))
	assert.ErrorIs(t, err, ErrLineaDuplicada)
	assert.Len(t, libro.Lineas(), 1)
}

func TestLibroAgregarRechazaCantidadNoPositiva(t *testing.T) {
	libro := NuevoLibro(pedidoPrueba())

	_, err := libro.Agregar(productoPrueba("P1", "0"), decimal.Zero)
	assert.Error(t, err)

	_, err = libro.Agregar(productoPrueba("P1", "0"), dec("-3"))
	assert.Error(t, err)
	assert.Empty(t, libro.Lineas())
}

func TestLibroEditarLineaInexistente(t *testing.T) {
	libro := NuevoLibro(pedidoPrueba())
	assert.ErrorIs(t, libro.EditarCantidad(uuid.New(), dec("1")), ErrLineaNoEncontrada)
	assert.ErrorIs(t, libro.EditarPrecio(uuid.New(), dec("1")), ErrLineaNoEncontrada)
	assert.ErrorIs(t, libro.EditarCantidadRecibida(uuid.New(), dec("1")), ErrLineaNoEncontrada)
}

// ── Dirty check ──────────────────────────────────────────────────────────────

func TestCambiosPendientesEsReflexivo(t *testing.T) {
	p := pedidoPrueba(
		lineaPrueba("P1", "10", "2.00", "15", ""),
		lineaPrueba("P2", "1", "", "0", ""),
	)
	libro := NuevoLibro(p)

	// An unmodified ledger never reports pending changes.
	assert.False(t, libro.CambiosPendientes(p.Snapshot()))
}

func TestCambiosPendientesDetectaCadaDiferencia(t *testing.T) {
	base := func() (*Libro, *model.PedidoSnapshot) {
		p := pedidoPrueba(lineaPrueba("P1", "10", "2.00", "15", ""))
		return NuevoLibro(p), p.Snapshot()
	}

	t.Run("linea agregada", func(t *testing.T) {
		libro, snap := base()
		_, err := libro.Agregar(productoPrueba("P9", "0"), dec("1"))
		require.NoError(t, err)
		assert.True(t, libro.CambiosPendientes(snap))
	})

	t.Run("linea eliminada", func(t *testing.T) {
		libro, snap := base()
		require.NoError(t, libro.Quitar(libro.Lineas()[0].LocalID))
		assert.True(t, libro.CambiosPendientes(snap))
	})

	t.Run("cantidad cambiada", func(t *testing.T) {
		libro, snap := base()
		require.NoError(t, libro.EditarCantidad(libro.Lineas()[0].LocalID, dec("11")))
		assert.True(t, libro.CambiosPendientes(snap))
	})

	t.Run("precio cambiado", func(t *testing.T) {
		libro, snap := base()
		require.NoError(t, libro.EditarPrecio(libro.Lineas()[0].LocalID, dec("2.50")))
		assert.True(t, libro.CambiosPendientes(snap))
	})

	t.Run("observaciones cambiadas", func(t *testing.T) {
		libro, snap := base()
		libro.EditarObservaciones("ya no tan urgente")
		assert.True(t, libro.CambiosPendientes(snap))
	})
}

func TestCambiosPendientesSinSnapshotSiempreHayCambios(t *testing.T) {
	// A brand-new pedido has no server-confirmed original yet.
	libro := NuevoLibro(&model.Pedido{})
	assert.True(t, libro.CambiosPendientes(nil))
}

func TestCambiosPendientesMismaCantidadDistintaEscala(t *testing.T) {
	p := pedidoPrueba(lineaPrueba("P1", "10", "2.00", "15", ""))
	libro := NuevoLibro(p)
	snap := p.Snapshot()

	// 10 vs 10.0 is NOT a change; decimal comparison is by value.
	require.NoError(t, libro.EditarCantidad(libro.Lineas()[0].LocalID, dec("10.0")))
	assert.False(t, libro.CambiosPendientes(snap))
}
