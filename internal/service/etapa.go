package service

import "github.com/raydan90s/smileops-pedidos/internal/model"

// Etapa describes which sections of a pedido screen the current estado
// enables. It is a pure projection of the backend lifecycle: the client never
// decides a transition here, only what the user is allowed to touch.
type Etapa struct {
	EncabezadoEditable  bool
	CantidadesEditables bool
	PreciosEditables    bool
	MostrarAprobacion   bool
	MostrarRecepcion    bool
	SoloLectura         bool
	// Advertencia is non-empty for legacy records that need user attention
	// but must not be blocked (e.g. no warehouse assigned).
	Advertencia string
}

// ResolverEtapa maps an estado code to its screen configuration.
// bodegaAsignada=false marks a legacy record with no destination warehouse:
// while the pedido is still being drafted (pendiente/aprobación especial) it
// routes to an editable state with a warning instead of blocking. Terminal and
// unknown estados keep the warning but stay read-only; unknown estado codes
// degrade to read-only, never panic.
func ResolverEtapa(estado int, bodegaAsignada bool) Etapa {
	var e Etapa
	switch estado {
	case model.EstadoPendiente:
		e = Etapa{
			EncabezadoEditable:  true,
			CantidadesEditables: true,
			MostrarAprobacion:   true,
		}
	case model.EstadoCotizado:
		e = Etapa{
			PreciosEditables:  true,
			MostrarAprobacion: true,
		}
	case model.EstadoAprobado:
		e = Etapa{MostrarRecepcion: true}
	case model.EstadoAprobacionEspecial:
		e = Etapa{
			CantidadesEditables: true,
			MostrarAprobacion:   true,
		}
	case model.EstadoRecibido, model.EstadoRechazado:
		e = Etapa{SoloLectura: true}
	default:
		e = Etapa{SoloLectura: true}
	}

	if !bodegaAsignada {
		e.Advertencia = "El pedido no tiene bodega de destino asignada; complete el encabezado antes de continuar."
		switch estado {
		case model.EstadoPendiente, model.EstadoAprobacionEspecial:
			e.EncabezadoEditable = true
		}
	}
	return e
}
