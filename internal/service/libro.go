package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/raydan90s/smileops-pedidos/internal/model"
)

// ErrLineaDuplicada is returned by Agregar when the product is already in the
// pedido. Duplicates by product code are rejected at insertion time instead of
// silently allowed.
var ErrLineaDuplicada = errors.New("el producto ya está agregado al pedido")

// ErrLineaNoEncontrada is returned by edits addressing a line that is not in
// the ledger (e.g. it was removed by a previous action).
var ErrLineaNoEncontrada = errors.New("la línea no existe en el pedido")

// Libro is the in-memory line-item ledger of one pedido screen. Lines are
// matched by a client-generated local id; the product code never changes once
// a line is added. The ledger has a single mutator (the UI event loop), so no
// locking is needed.
type Libro struct {
	lineas        []model.LineaPedido
	observaciones string
}

// NuevoLibro seeds a ledger from a loaded pedido (or a blank one).
func NuevoLibro(p *model.Pedido) *Libro {
	l := &Libro{observaciones: p.Observaciones}
	l.lineas = make([]model.LineaPedido, 0, len(p.Lineas))
	for _, linea := range p.Lineas {
		l.lineas = append(l.lineas, linea.Clonar())
	}
	return l
}

// Lineas returns a copy of the current lines, safe to hand to calculators.
func (l *Libro) Lineas() []model.LineaPedido {
	out := make([]model.LineaPedido, 0, len(l.lineas))
	for _, linea := range l.lineas {
		out = append(out, linea.Clonar())
	}
	return out
}

func (l *Libro) Observaciones() string        { return l.observaciones }
func (l *Libro) EditarObservaciones(s string) { l.observaciones = s }

// Agregar inserts a resolved catalog product with the given requested
// quantity and returns the new line's local id. The product's tax rate is
// captured as the line snapshot.
func (l *Libro) Agregar(prod model.Producto, cantidad decimal.Decimal) (uuid.UUID, error) {
	if !cantidad.IsPositive() {
		return uuid.Nil, fmt.Errorf("la cantidad de %s debe ser mayor a cero", prod.Codigo)
	}
	for _, linea := range l.lineas {
		if linea.Codigo == prod.Codigo {
			return uuid.Nil, ErrLineaDuplicada
		}
	}
	linea := model.LineaPedido{
		LocalID:            uuid.New(),
		InventarioID:       prod.ID,
		Codigo:             prod.Codigo,
		Nombre:             prod.Nombre,
		UnidadMedida:       prod.UnidadMedida,
		CantidadSolicitada: cantidad,
		IVAPorcentaje:      prod.IVAPorcentaje,
	}
	l.lineas = append(l.lineas, linea)
	return linea.LocalID, nil
}

// Quitar removes the line with the given local id.
func (l *Libro) Quitar(localID uuid.UUID) error {
	for i, linea := range l.lineas {
		if linea.LocalID == localID {
			l.lineas = append(l.lineas[:i], l.lineas[i+1:]...)
			return nil
		}
	}
	return ErrLineaNoEncontrada
}

// EditarCantidad replaces the requested quantity of one line.
func (l *Libro) EditarCantidad(localID uuid.UUID, cantidad decimal.Decimal) error {
	if !cantidad.IsPositive() {
		return errors.New("la cantidad debe ser mayor a cero")
	}
	return l.editar(localID, func(linea *model.LineaPedido) {
		linea.CantidadSolicitada = cantidad
	})
}

// EditarPrecio replaces the quoted unit price of one line.
func (l *Libro) EditarPrecio(localID uuid.UUID, precio decimal.Decimal) error {
	return l.editar(localID, func(linea *model.LineaPedido) {
		p := precio
		linea.PrecioUnitario = &p
	})
}

// EditarCantidadRecibida replaces the received quantity of one line.
func (l *Libro) EditarCantidadRecibida(localID uuid.UUID, cantidad decimal.Decimal) error {
	return l.editar(localID, func(linea *model.LineaPedido) {
		q := cantidad
		linea.CantidadRecibida = &q
	})
}

func (l *Libro) editar(localID uuid.UUID, aplicar func(*model.LineaPedido)) error {
	for i := range l.lineas {
		if l.lineas[i].LocalID == localID {
			aplicar(&l.lineas[i])
			return nil
		}
	}
	return ErrLineaNoEncontrada
}

// CambiosPendientes compares the ledger against the server-confirmed snapshot:
// product-code set equality plus per-line quantity/price/received equality and
// the header observation string. Any difference enables the save action;
// an unmodified ledger keeps it disabled to avoid no-op submissions.
func (l *Libro) CambiosPendientes(s *model.PedidoSnapshot) bool {
	if s == nil {
		return true
	}
	if l.observaciones != s.Observaciones {
		return true
	}
	if len(l.lineas) != len(s.Lineas) {
		return true
	}

	original := make(map[string]model.LineaPedido, len(s.Lineas))
	for _, linea := range s.Lineas {
		original[linea.Codigo] = linea
	}
	for _, linea := range l.lineas {
		o, ok := original[linea.Codigo]
		if !ok {
			return true
		}
		if !linea.CantidadSolicitada.Equal(o.CantidadSolicitada) {
			return true
		}
		if !decimalesIguales(linea.PrecioUnitario, o.PrecioUnitario) {
			return true
		}
		if !decimalesIguales(linea.CantidadRecibida, o.CantidadRecibida) {
			return true
		}
	}
	return false
}

func decimalesIguales(a, b *decimal.Decimal) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(*b)
}
