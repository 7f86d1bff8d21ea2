package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// FacturaPedido is the optional invoice attached when a pedido is marked as
// invoiced at receipt. Subtotal/IVA/Total mirror the line ledger (received
// quantities) and are recomputed by the caller, never entered by hand.
type FacturaPedido struct {
	EntidadID int64
	Numero    string
	// ClaveAcceso is the fiscal access key: empty, or exactly 49 digits.
	ClaveAcceso       string
	NumAutorizacion   string
	FechaAutorizacion *time.Time
	FechaEmision      time.Time

	Subtotal  decimal.Decimal
	IVA       decimal.Decimal
	Total     decimal.Decimal
	Descuento decimal.Decimal

	// Optional attached file references (already uploaded by the app).
	ArchivoXML *string
	ArchivoPDF *string
}

// ClaveAccesoValida accepts the empty string and any string of exactly
// 49 digits; everything else is invalid.
func ClaveAccesoValida(clave string) bool {
	if clave == "" {
		return true
	}
	if len(clave) != 49 {
		return false
	}
	for _, r := range clave {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
