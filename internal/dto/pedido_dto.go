package dto

import "github.com/shopspring/decimal"

// Request/response payloads for the pedido endpoints. Field names follow the
// backend contract exactly (iid_* ids, "detalles" line arrays); the change-set
// builder emits the minimal payload each lifecycle transition expects.

// ─── Request DTOs ────────────────────────────────────────────────────────────

// DetalleRequest is one line of a create/update payload.
type DetalleRequest struct {
	InventarioID       int64           `json:"iid_inventario"      validate:"required,gt=0"`
	CantidadSolicitada decimal.Decimal `json:"cantidad_solicitada" validate:"required,gt=0"`
}

// GuardarPedidoRequest is the body of both createPedido and updatePedido.
type GuardarPedidoRequest struct {
	TipoPedidoID      int64            `json:"iid_tipo_pedido"               validate:"required,gt=0"`
	BodegaDestinoID   int64            `json:"iid_bodega_destino"            validate:"required,gt=0"`
	BodegaSolicitaID  *int64           `json:"iid_bodega_solicita,omitempty"`
	UsuarioSolicitaID int64            `json:"iid_usuario_solicita"          validate:"required,gt=0"`
	Observaciones     string           `json:"observaciones"`
	Detalles          []DetalleRequest `json:"detalles"                      validate:"required,min=1,dive"`
}

// DetalleCotizacion carries the quoted price and tax snapshot per line.
type DetalleCotizacion struct {
	InventarioID       int64           `json:"iid_inventario"      validate:"required,gt=0"`
	CantidadSolicitada decimal.Decimal `json:"cantidad_solicitada" validate:"required,gt=0"`
	PrecioUnitario     decimal.Decimal `json:"precio_unitario"     validate:"required,gt=0"`
	IVAPorcentaje      decimal.Decimal `json:"iva_porcentaje"      validate:"min=0"`
}

type CotizarPedidoRequest struct {
	ProveedorID   int64               `json:"iid_proveedor" validate:"required,gt=0"`
	Observaciones string              `json:"observaciones"`
	Detalles      []DetalleCotizacion `json:"detalles"      validate:"required,min=1,dive"`
}

type AprobarPedidoRequest struct {
	UsuarioApruebaID int64  `json:"iid_usuario_aprueba" validate:"required,gt=0"`
	Observaciones    string `json:"observaciones"`
}

type RechazarPedidoRequest struct {
	Motivo string `json:"motivo" validate:"required,min=5"`
}

// DetalleRecepcion reports the received quantity per line.
type DetalleRecepcion struct {
	InventarioID     int64           `json:"iid_inventario"    validate:"required,gt=0"`
	CantidadRecibida decimal.Decimal `json:"cantidad_recibida" validate:"required,gt=0"`
}

type RecibirPedidoRequest struct {
	UsuarioRecibeID int64              `json:"iid_usuario_recibe" validate:"required,gt=0"`
	Fecha           string             `json:"fecha"              validate:"required"` // YYYY-MM-DD
	Observaciones   string             `json:"observaciones"`
	Detalles        []DetalleRecepcion `json:"detalles"           validate:"required,min=1,dive"`
}

type RegistrarFacturaRequest struct {
	EntidadID         int64           `json:"iid_entidad"                 validate:"required,gt=0"`
	NumeroFactura     string          `json:"numero_factura"              validate:"required"`
	ClaveAcceso       string          `json:"clave_acceso,omitempty"      validate:"omitempty,len=49,numeric"`
	NumAutorizacion   string          `json:"num_autorizacion,omitempty"`
	FechaAutorizacion string          `json:"fecha_autorizacion,omitempty"`
	FechaEmision      string          `json:"fecha_emision"               validate:"required"`
	Subtotal          decimal.Decimal `json:"subtotal"`
	IVA               decimal.Decimal `json:"iva"`
	Total             decimal.Decimal `json:"total"`
	Descuento         decimal.Decimal `json:"descuento"`
	ArchivoXML        *string         `json:"archivo_xml,omitempty"`
	ArchivoPDF        *string         `json:"archivo_pdf,omitempty"`
}

// ─── Response DTOs ───────────────────────────────────────────────────────────

type DetalleResponse struct {
	InventarioID       int64            `json:"iid_inventario"`
	Codigo             string           `json:"codigo"`
	Nombre             string           `json:"nombre"`
	UnidadMedida       string           `json:"unidad_medida"`
	CantidadSolicitada decimal.Decimal  `json:"cantidad_solicitada"`
	PrecioUnitario     *decimal.Decimal `json:"precio_unitario"`
	IVAPorcentaje      decimal.Decimal  `json:"iva_porcentaje"`
	CantidadRecibida   *decimal.Decimal `json:"cantidad_recibida"`
}

type PedidoResponse struct {
	ID                int64  `json:"iid_pedido"`
	Estado            int    `json:"estado"`
	TipoPedidoID      *int64 `json:"iid_tipo_pedido"`
	BodegaSolicitaID  *int64 `json:"iid_bodega_solicita"`
	BodegaDestinoID   *int64 `json:"iid_bodega_destino"`
	ProveedorID       *int64 `json:"iid_proveedor"`
	UsuarioSolicitaID *int64 `json:"iid_usuario_solicita"`
	UsuarioApruebaID  *int64 `json:"iid_usuario_aprueba"`
	UsuarioRecibeID   *int64 `json:"iid_usuario_recibe"`
	Observaciones     string `json:"observaciones"`

	NombreTipoPedido    string `json:"nombre_tipo_pedido"`
	NombreBodegaDestino string `json:"nombre_bodega_destino"`
	NombreProveedor     string `json:"nombre_proveedor"`

	Detalles []DetalleResponse `json:"detalles"`
}
