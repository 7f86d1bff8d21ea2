package dto

import "github.com/shopspring/decimal"

// Reference-data lookup responses (read-only).

type TipoPedidoResponse struct {
	ID     int64  `json:"iid_tipo_pedido"`
	Nombre string `json:"nombre"`
}

type BodegaResponse struct {
	ID          int64  `json:"iid_bodega"`
	Nombre      string `json:"nombre"`
	EsPrincipal bool   `json:"es_principal"`
}

type ProveedorResponse struct {
	ID     int64  `json:"iid_proveedor"`
	Nombre string `json:"nombre"`
	RUC    string `json:"ruc"`
}

type EntidadResponse struct {
	ID     int64  `json:"iid_entidad"`
	Nombre string `json:"nombre"`
	RUC    string `json:"ruc"`
}

type ProductoResponse struct {
	ID            int64           `json:"iid_inventario"`
	Codigo        string          `json:"codigo"`
	Nombre        string          `json:"nombre"`
	UnidadMedida  string          `json:"unidad_medida"`
	IVAPorcentaje decimal.Decimal `json:"iva_porcentaje"`
}

// SiguienteIDResponse is advisory display data, not a reservation.
type SiguienteIDResponse struct {
	Siguiente int64 `json:"siguiente_id"`
}
