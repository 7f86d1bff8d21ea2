package model

import "github.com/shopspring/decimal"

// Reference-data entities. All are read-only lookups served by the backend.

type TipoPedido struct {
	ID     int64
	Nombre string
}

type Bodega struct {
	ID          int64
	Nombre      string
	EsPrincipal bool
}

type Proveedor struct {
	ID     int64
	Nombre string
	RUC    string
}

// Entidad is an invoice issuer.
type Entidad struct {
	ID     int64
	Nombre string
	RUC    string
}

// Producto is a catalog product resolved by code before a line can be added.
type Producto struct {
	ID           int64
	Codigo       string
	Nombre       string
	UnidadMedida string
	// IVAPorcentaje becomes the line's tax-rate snapshot.
	IVAPorcentaje decimal.Decimal
}
