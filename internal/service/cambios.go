package service

import (
	"reflect"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"

	"github.com/raydan90s/smileops-pedidos/internal/apierror"
	"github.com/raydan90s/smileops-pedidos/internal/dto"
	"github.com/raydan90s/smileops-pedidos/internal/model"
)

// Stable rule tags carried by ErrorValidacion. Screens key their messages and
// focus behavior off these, never off the Spanish text.
const (
	ReglaTipoPedido       = "tipo_pedido_requerido"
	ReglaBodegaDestino    = "bodega_destino_requerida"
	ReglaSinLineas        = "sin_lineas"
	ReglaCantidad         = "cantidad_invalida"
	ReglaPrecio           = "precio_requerido"
	ReglaCantidadRecibida = "cantidad_recibida_requerida"
	ReglaProveedor        = "proveedor_requerido"
	ReglaMotivo           = "motivo_requerido"
	ReglaFactura          = "factura_incompleta"
	ReglaClaveAcceso      = "clave_acceso_invalida"
	ReglaPayload          = "payload_invalido"
)

var validate = validator.New()

func init() {
	// Register decimal.Decimal as a numeric type so that validator tags like
	// min=0, gt=0, required work without panicking.
	validate.RegisterCustomTypeFunc(func(field reflect.Value) interface{} {
		if v, ok := field.Interface().(decimal.Decimal); ok {
			f, _ := v.Float64()
			return f
		}
		return nil
	}, decimal.Decimal{})
}

// validarPayload runs the struct tags of an outgoing payload as a second belt
// behind the ordered rule checks. A failure here means a builder bug, but it
// still must never reach the network.
func validarPayload(payload interface{}) error {
	if err := validate.Struct(payload); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok && len(errs) > 0 {
			return &apierror.ErrorValidacion{
				Regla:   ReglaPayload,
				Campo:   errs[0].Field(),
				Mensaje: "El pedido contiene datos inválidos",
			}
		}
		return err
	}
	return nil
}

// ── Change-set builders ──────────────────────────────────────────────────────
// Each builder validates in a fixed order and returns the FIRST failing rule
// as *apierror.ErrorValidacion; the caller surfaces it as a blocking message
// and does not call the network.

// ConstruirGuardar emits the createPedido/updatePedido body.
func ConstruirGuardar(p *model.Pedido, lineas []model.LineaPedido, observaciones string, usuarioID int64) (*dto.GuardarPedidoRequest, error) {
	if p.TipoPedidoID == nil || *p.TipoPedidoID <= 0 {
		return nil, apierror.NuevaValidacion(ReglaTipoPedido, "Seleccione el tipo de pedido")
	}
	if p.BodegaDestinoID == nil || *p.BodegaDestinoID <= 0 {
		return nil, apierror.NuevaValidacion(ReglaBodegaDestino, "Seleccione la bodega de destino")
	}
	if len(lineas) == 0 {
		return nil, apierror.NuevaValidacion(ReglaSinLineas, "Agregue al menos un producto al pedido")
	}
	req := &dto.GuardarPedidoRequest{
		TipoPedidoID:      *p.TipoPedidoID,
		BodegaDestinoID:   *p.BodegaDestinoID,
		BodegaSolicitaID:  p.BodegaSolicitaID,
		UsuarioSolicitaID: usuarioID,
		Observaciones:     observaciones,
	}
	for _, l := range lineas {
		if !l.CantidadSolicitada.IsPositive() {
			return nil, &apierror.ErrorValidacion{
				Regla:   ReglaCantidad,
				Campo:   l.Codigo,
				Mensaje: "La cantidad debe ser mayor a cero",
			}
		}
		req.Detalles = append(req.Detalles, dto.DetalleRequest{
			InventarioID:       l.InventarioID,
			CantidadSolicitada: l.CantidadSolicitada,
		})
	}
	if err := validarPayload(req); err != nil {
		return nil, err
	}
	return req, nil
}

// ConstruirCotizacion emits the cotizarPedido body. Every line needs a quoted
// price > 0 and the supplier must already be selected.
func ConstruirCotizacion(proveedorID *int64, lineas []model.LineaPedido, observaciones string) (*dto.CotizarPedidoRequest, error) {
	if proveedorID == nil || *proveedorID <= 0 {
		return nil, apierror.NuevaValidacion(ReglaProveedor, "Seleccione el proveedor antes de cotizar")
	}
	if len(lineas) == 0 {
		return nil, apierror.NuevaValidacion(ReglaSinLineas, "El pedido no tiene productos para cotizar")
	}
	req := &dto.CotizarPedidoRequest{
		ProveedorID:   *proveedorID,
		Observaciones: observaciones,
	}
	for _, l := range lineas {
		if l.PrecioUnitario == nil || !l.PrecioUnitario.IsPositive() {
			return nil, &apierror.ErrorValidacion{
				Regla:   ReglaPrecio,
				Campo:   l.Codigo,
				Mensaje: "Ingrese un precio mayor a cero",
			}
		}
		req.Detalles = append(req.Detalles, dto.DetalleCotizacion{
			InventarioID:       l.InventarioID,
			CantidadSolicitada: l.CantidadSolicitada,
			PrecioUnitario:     *l.PrecioUnitario,
			IVAPorcentaje:      l.IVAPorcentaje,
		})
	}
	if err := validarPayload(req); err != nil {
		return nil, err
	}
	return req, nil
}

// ConstruirAprobacion emits the aprobarPedido / aprobarCotizacionFinal body.
func ConstruirAprobacion(usuarioID int64, observaciones string) (*dto.AprobarPedidoRequest, error) {
	req := &dto.AprobarPedidoRequest{
		UsuarioApruebaID: usuarioID,
		Observaciones:    observaciones,
	}
	if err := validarPayload(req); err != nil {
		return nil, err
	}
	return req, nil
}

// ConstruirRechazo emits the rechazarPedido body. The motivo is mandatory and
// has to say something.
func ConstruirRechazo(motivo string) (*dto.RechazarPedidoRequest, error) {
	if len(motivo) < 5 {
		return nil, apierror.NuevaValidacion(ReglaMotivo, "Indique el motivo del rechazo")
	}
	return &dto.RechazarPedidoRequest{Motivo: motivo}, nil
}

// ConstruirRecepcion emits the recibirPedido body. Every line must carry a
// received quantity > 0 before submission is allowed; an unset quantity blocks
// with a message naming the line.
func ConstruirRecepcion(usuarioID int64, fecha time.Time, lineas []model.LineaPedido, observaciones string) (*dto.RecibirPedidoRequest, error) {
	if len(lineas) == 0 {
		return nil, apierror.NuevaValidacion(ReglaSinLineas, "El pedido no tiene productos para recibir")
	}
	req := &dto.RecibirPedidoRequest{
		UsuarioRecibeID: usuarioID,
		Fecha:           fecha.Format("2006-01-02"),
		Observaciones:   observaciones,
	}
	for _, l := range lineas {
		if l.CantidadRecibida == nil || !l.CantidadRecibida.IsPositive() {
			return nil, &apierror.ErrorValidacion{
				Regla:   ReglaCantidadRecibida,
				Campo:   l.Codigo,
				Mensaje: "Ingrese la cantidad recibida",
			}
		}
		req.Detalles = append(req.Detalles, dto.DetalleRecepcion{
			InventarioID:     l.InventarioID,
			CantidadRecibida: *l.CantidadRecibida,
		})
	}
	if err := validarPayload(req); err != nil {
		return nil, err
	}
	return req, nil
}

// ConstruirFactura emits the registrarFacturaPedido body. Monetary fields are
// mirrored from the ledger at received quantities, never taken from the
// factura input, so the invoice always matches what was received.
func ConstruirFactura(f *model.FacturaPedido, lineas []model.LineaPedido) (*dto.RegistrarFacturaRequest, error) {
	if f == nil || f.EntidadID <= 0 || f.Numero == "" || f.FechaEmision.IsZero() {
		return nil, apierror.NuevaValidacion(ReglaFactura, "Complete emisor, número y fecha de la factura")
	}
	if !model.ClaveAccesoValida(f.ClaveAcceso) {
		return nil, apierror.NuevaValidacion(ReglaClaveAcceso, "La clave de acceso debe tener exactamente 49 dígitos")
	}

	totales := CalcularTotales(lineas, PorCantidadRecibida, f.Descuento)
	req := &dto.RegistrarFacturaRequest{
		EntidadID:       f.EntidadID,
		NumeroFactura:   f.Numero,
		ClaveAcceso:     f.ClaveAcceso,
		NumAutorizacion: f.NumAutorizacion,
		FechaEmision:    f.FechaEmision.Format("2006-01-02"),
		Subtotal:        totales.Subtotal,
		IVA:             totales.TotalIVA,
		Total:           totales.Total,
		Descuento:       f.Descuento,
		ArchivoXML:      f.ArchivoXML,
		ArchivoPDF:      f.ArchivoPDF,
	}
	if f.FechaAutorizacion != nil {
		req.FechaAutorizacion = f.FechaAutorizacion.Format("2006-01-02")
	}
	if err := validarPayload(req); err != nil {
		return nil, err
	}
	return req, nil
}
