// Package apierror defines the error taxonomy of the pedidos client.
// Every failure surfaced to the user goes through one of these types so that
// screens can distinguish local validation problems (blocking, pre-network)
// from lookup misses and remote service failures.
package apierror

import "fmt"

// MensajeGenerico is shown when the backend returns no usable detail.
const MensajeGenerico = "Ocurrió un error procesando la solicitud. Intente nuevamente."

// Envelope is the canonical error body the backend attaches to 4xx/5xx responses.
type Envelope struct {
	Detail string `json:"detail"`
}

// ErrorValidacion is a local, pre-network validation failure.
// Regla is a stable machine tag identifying the first failing rule;
// Campo names the offending field or product code when one applies.
type ErrorValidacion struct {
	Regla   string
	Campo   string
	Mensaje string
}

func (e *ErrorValidacion) Error() string {
	if e.Campo != "" {
		return fmt.Sprintf("%s (%s)", e.Mensaje, e.Campo)
	}
	return e.Mensaje
}

// NuevaValidacion builds an ErrorValidacion without an offending field.
func NuevaValidacion(regla, mensaje string) *ErrorValidacion {
	return &ErrorValidacion{Regla: regla, Mensaje: mensaje}
}

// ErrorBusqueda reports a catalog lookup miss, naming the offending code.
type ErrorBusqueda struct {
	Codigo string
}

func (e *ErrorBusqueda) Error() string {
	return fmt.Sprintf("No se encontró el producto con código %q", e.Codigo)
}

// ErrorServicio is a network/service failure: the backend answered with a
// non-2xx status, or the request never completed. Detail carries the message
// extracted from the response envelope, falling back to MensajeGenerico.
type ErrorServicio struct {
	Status int
	Detail string
	Causa  error
}

func (e *ErrorServicio) Error() string {
	if e.Detail != "" {
		return e.Detail
	}
	return MensajeGenerico
}

func (e *ErrorServicio) Unwrap() error { return e.Causa }

// ErrorParcial reports a multi-step flow that failed after its first call
// succeeded (e.g. the pedido was updated but the approval failed). The first
// call is NOT rolled back; the caller must reload to see the applied state.
type ErrorParcial struct {
	PasoCompletado string
	PasoFallido    string
	Causa          error
}

func (e *ErrorParcial) Error() string {
	return fmt.Sprintf("El paso %q se aplicó pero %q falló: %v", e.PasoCompletado, e.PasoFallido, e.Causa)
}

func (e *ErrorParcial) Unwrap() error { return e.Causa }
