package model

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Estado codes mirror the backend pedido lifecycle:
//
//	1 pendiente (solicitado) → 2 cotizado (pendiente de aprobación final)
//	→ 3 aprobado (en recepción) → 4 recibido
//	5 rechazado, 6 aprobación especial
//
// The backend is the authority over transitions; the client never advances
// Estado locally without a confirmed response.
const (
	EstadoPendiente          = 1
	EstadoCotizado           = 2
	EstadoAprobado           = 3
	EstadoRecibido           = 4
	EstadoRechazado          = 5
	EstadoAprobacionEspecial = 6
)

// NombreEstado returns the display name for an estado code.
func NombreEstado(estado int) string {
	switch estado {
	case EstadoPendiente:
		return "Pendiente"
	case EstadoCotizado:
		return "Cotizado"
	case EstadoAprobado:
		return "Aprobado"
	case EstadoRecibido:
		return "Recibido"
	case EstadoRechazado:
		return "Rechazado"
	case EstadoAprobacionEspecial:
		return "Aprobación especial"
	default:
		return "Desconocido"
	}
}

// EsTerminal reports whether no further transition is possible.
func EsTerminal(estado int) bool {
	return estado == EstadoRecibido || estado == EstadoRechazado
}

// Pedido is the working copy of a purchase order header plus its lines.
// It is owned by the screen that loaded it; there is no shared store.
type Pedido struct {
	ID                int64
	Estado            int
	TipoPedidoID      *int64
	BodegaSolicitaID  *int64
	BodegaDestinoID   *int64
	ProveedorID       *int64 // assigned at cotización
	UsuarioSolicitaID *int64
	UsuarioApruebaID  *int64
	UsuarioRecibeID   *int64
	Observaciones     string

	// Denormalized display names returned by the backend
	NombreTipoPedido    string
	NombreBodegaDestino string
	NombreProveedor     string

	Lineas []LineaPedido
}

// LineaPedido is one product line. Codigo is immutable once added; LocalID is
// a client-generated identity that is never sent to the backend.
type LineaPedido struct {
	LocalID      uuid.UUID
	InventarioID int64
	Codigo       string
	Nombre       string
	UnidadMedida string

	CantidadSolicitada decimal.Decimal
	// PrecioUnitario stays nil until the cotización stage.
	PrecioUnitario *decimal.Decimal
	// IVAPorcentaje is the tax-rate snapshot captured at quote time, not live.
	IVAPorcentaje decimal.Decimal
	// CantidadRecibida stays nil until the receipt stage.
	CantidadRecibida *decimal.Decimal
}

// Clonar returns a deep copy of the line (pointer fields included).
func (l LineaPedido) Clonar() LineaPedido {
	c := l
	if l.PrecioUnitario != nil {
		p := *l.PrecioUnitario
		c.PrecioUnitario = &p
	}
	if l.CantidadRecibida != nil {
		q := *l.CantidadRecibida
		c.CantidadRecibida = &q
	}
	return c
}

// PedidoSnapshot is the server-confirmed copy of header + lines used only for
// dirty-checking. It is created on load and replaced wholesale after every
// successful mutation.
type PedidoSnapshot struct {
	Observaciones string
	Lineas        []LineaPedido
}

// Snapshot captures the pedido's current state as the new "original".
// The supplier is not part of it: cotización sends the chosen proveedor
// directly and the server response replaces the snapshot wholesale.
func (p *Pedido) Snapshot() *PedidoSnapshot {
	s := &PedidoSnapshot{Observaciones: p.Observaciones}
	s.Lineas = make([]LineaPedido, 0, len(p.Lineas))
	for _, l := range p.Lineas {
		s.Lineas = append(s.Lineas, l.Clonar())
	}
	return s
}
