package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/raydan90s/smileops-pedidos/internal/apierror"
	"github.com/raydan90s/smileops-pedidos/internal/dto"
	"github.com/raydan90s/smileops-pedidos/internal/model"
	"github.com/raydan90s/smileops-pedidos/internal/sesion"
)

// Api is the slice of the backend REST contract the pedido flows consume.
// The backend is the authority over the lifecycle; every method here is a
// server-confirmed operation. Implemented by infra.Client.
type Api interface {
	TiposPedido(ctx context.Context) ([]dto.TipoPedidoResponse, error)
	BodegasPrincipales(ctx context.Context) ([]dto.BodegaResponse, error)
	Proveedores(ctx context.Context) ([]dto.ProveedorResponse, error)
	Entidades(ctx context.Context) ([]dto.EntidadResponse, error)
	SiguienteNumeroPedido(ctx context.Context) (int64, error)
	ProductoPorCodigo(ctx context.Context, codigo string) (*dto.ProductoResponse, error)

	ObtenerPedido(ctx context.Context, id int64) (*dto.PedidoResponse, error)
	CrearPedido(ctx context.Context, req *dto.GuardarPedidoRequest) (*dto.PedidoResponse, error)
	ActualizarPedido(ctx context.Context, id int64, req *dto.GuardarPedidoRequest) (*dto.PedidoResponse, error)
	CotizarPedido(ctx context.Context, id int64, req *dto.CotizarPedidoRequest) (*dto.PedidoResponse, error)
	AprobarPedido(ctx context.Context, id int64, req *dto.AprobarPedidoRequest) (*dto.PedidoResponse, error)
	AprobarCotizacionFinal(ctx context.Context, id int64, req *dto.AprobarPedidoRequest) (*dto.PedidoResponse, error)
	RechazarPedido(ctx context.Context, id int64, req *dto.RechazarPedidoRequest) (*dto.PedidoResponse, error)
	RecibirPedido(ctx context.Context, id int64, req *dto.RecibirPedidoRequest) (*dto.PedidoResponse, error)
	RegistrarFactura(ctx context.Context, id int64, req *dto.RegistrarFacturaRequest) (*dto.PedidoResponse, error)
}

// Edicion is one screen's working copy of a pedido: the loaded header, the
// editable line ledger and the server-confirmed snapshot. It is created on
// load and discarded on unmount; nothing here is shared between screens.
type Edicion struct {
	Pedido   *model.Pedido
	Libro    *Libro
	Snapshot *model.PedidoSnapshot
}

// Etapa resolves the screen configuration for the current estado.
func (e *Edicion) Etapa() Etapa {
	return ResolverEtapa(e.Pedido.Estado, e.Pedido.BodegaDestinoID != nil)
}

// CambiosPendientes reports whether the ledger differs from the snapshot.
func (e *Edicion) CambiosPendientes() bool {
	return e.Libro.CambiosPendientes(e.Snapshot)
}

// Totales recomputes the derived amounts from the current ledger.
func (e *Edicion) Totales(fuente FuenteCantidad, descuento decimal.Decimal) Totales {
	return CalcularTotales(e.Libro.Lineas(), fuente, descuento)
}

// Referencias bundles the reference-data lookups a pedido screen needs.
type Referencias struct {
	Tipos       []model.TipoPedido
	Bodegas     []model.Bodega
	Proveedores []model.Proveedor
	// Entidades loads best-effort: a failure yields an empty list instead of
	// blocking the screen.
	Entidades []model.Entidad
}

// PedidoService drives the pedido lifecycle from the client side. All flows
// are strictly sequential: when a flow is composed of two calls, the second
// is issued only after the first resolved successfully, and a second-step
// failure is reported as ErrorParcial without rolling back the first.
type PedidoService interface {
	Nuevo(ctx context.Context) (*Edicion, int64, error)
	Cargar(ctx context.Context, id int64) (*Edicion, error)
	Referencias(ctx context.Context) (*Referencias, error)
	AgregarProducto(ctx context.Context, e *Edicion, codigo string, cantidad decimal.Decimal) (uuid.UUID, error)

	Guardar(ctx context.Context, e *Edicion) error
	GuardarYAprobar(ctx context.Context, e *Edicion) error
	CotizarYAprobarFinal(ctx context.Context, e *Edicion, proveedorID int64, aprobar bool) error
	Rechazar(ctx context.Context, e *Edicion, motivo string) error
	Recibir(ctx context.Context, e *Edicion, fecha time.Time, factura *model.FacturaPedido) error
}

type pedidoService struct {
	api Api
	ses *sesion.Sesion
}

func NewPedidoService(api Api, ses *sesion.Sesion) PedidoService {
	return &pedidoService{api: api, ses: ses}
}

// ── Load / new ───────────────────────────────────────────────────────────────

// Nuevo starts a blank pedido. The returned number is advisory display data
// only — the backend assigns the real id on create.
func (s *pedidoService) Nuevo(ctx context.Context) (*Edicion, int64, error) {
	siguiente, err := s.api.SiguienteNumeroPedido(ctx)
	if err != nil {
		// Advisory only: a blank screen without the hint beats a blocked one.
		log.Warn().Err(err).Msg("no se pudo obtener el siguiente número de pedido")
		siguiente = 0
	}
	p := &model.Pedido{Estado: model.EstadoPendiente}
	return &Edicion{Pedido: p, Libro: NuevoLibro(p), Snapshot: nil}, siguiente, nil
}

func (s *pedidoService) Cargar(ctx context.Context, id int64) (*Edicion, error) {
	resp, err := s.api.ObtenerPedido(ctx, id)
	if err != nil {
		return nil, err
	}
	p := pedidoDesdeRespuesta(resp)
	return &Edicion{Pedido: p, Libro: NuevoLibro(p), Snapshot: p.Snapshot()}, nil
}

func (s *pedidoService) Referencias(ctx context.Context) (*Referencias, error) {
	tipos, err := s.api.TiposPedido(ctx)
	if err != nil {
		return nil, err
	}
	bodegas, err := s.api.BodegasPrincipales(ctx)
	if err != nil {
		return nil, err
	}
	proveedores, err := s.api.Proveedores(ctx)
	if err != nil {
		return nil, err
	}

	refs := &Referencias{}
	for _, t := range tipos {
		refs.Tipos = append(refs.Tipos, model.TipoPedido{ID: t.ID, Nombre: t.Nombre})
	}
	for _, b := range bodegas {
		refs.Bodegas = append(refs.Bodegas, model.Bodega{ID: b.ID, Nombre: b.Nombre, EsPrincipal: b.EsPrincipal})
	}
	for _, p := range proveedores {
		refs.Proveedores = append(refs.Proveedores, model.Proveedor{ID: p.ID, Nombre: p.Nombre, RUC: p.RUC})
	}

	// Best-effort: the issuer list only matters on the invoice form.
	entidades, err := s.api.Entidades(ctx)
	if err != nil {
		log.Warn().Err(err).Msg("no se pudo cargar la lista de entidades emisoras")
	} else {
		for _, e := range entidades {
			refs.Entidades = append(refs.Entidades, model.Entidad{ID: e.ID, Nombre: e.Nombre, RUC: e.RUC})
		}
	}
	return refs, nil
}

// AgregarProducto resolves a catalog product by code and inserts it into the
// ledger. The header must already carry tipo de pedido and bodega de destino:
// lines are only addable on a routed pedido, so the check happens here and not
// at submit time. A lookup miss surfaces as ErrorBusqueda naming the code.
func (s *pedidoService) AgregarProducto(ctx context.Context, e *Edicion, codigo string, cantidad decimal.Decimal) (uuid.UUID, error) {
	if e.Pedido.TipoPedidoID == nil || *e.Pedido.TipoPedidoID <= 0 {
		return uuid.Nil, apierror.NuevaValidacion(ReglaTipoPedido, "Seleccione el tipo de pedido antes de agregar productos")
	}
	if e.Pedido.BodegaDestinoID == nil || *e.Pedido.BodegaDestinoID <= 0 {
		return uuid.Nil, apierror.NuevaValidacion(ReglaBodegaDestino, "Seleccione la bodega de destino antes de agregar productos")
	}
	resp, err := s.api.ProductoPorCodigo(ctx, codigo)
	if err != nil {
		return uuid.Nil, err
	}
	prod := model.Producto{
		ID:            resp.ID,
		Codigo:        resp.Codigo,
		Nombre:        resp.Nombre,
		UnidadMedida:  resp.UnidadMedida,
		IVAPorcentaje: resp.IVAPorcentaje,
	}
	return e.Libro.Agregar(prod, cantidad)
}

// ── Lifecycle flows ──────────────────────────────────────────────────────────

// Guardar creates the pedido (id 0) or updates it, then promotes the response
// to the new snapshot. On failure the local state is left untouched.
func (s *pedidoService) Guardar(ctx context.Context, e *Edicion) error {
	resp, err := s.guardar(ctx, e)
	if err != nil {
		return err
	}
	s.confirmar(e, resp, "guardar")
	return nil
}

func (s *pedidoService) guardar(ctx context.Context, e *Edicion) (*dto.PedidoResponse, error) {
	req, err := ConstruirGuardar(e.Pedido, e.Libro.Lineas(), e.Libro.Observaciones(), s.ses.UsuarioID)
	if err != nil {
		return nil, err
	}
	if e.Pedido.ID == 0 {
		return s.api.CrearPedido(ctx, req)
	}
	return s.api.ActualizarPedido(ctx, e.Pedido.ID, req)
}

// GuardarYAprobar approves a pending pedido. When the ledger carries edits the
// update is applied first and the approval is only issued after it resolves;
// an approval failure after a successful update returns ErrorParcial and does
// not roll the update back.
func (s *pedidoService) GuardarYAprobar(ctx context.Context, e *Edicion) error {
	actualizado := false
	if e.CambiosPendientes() {
		resp, err := s.guardar(ctx, e)
		if err != nil {
			return err
		}
		s.confirmar(e, resp, "actualizar")
		actualizado = true
	}

	req, err := ConstruirAprobacion(s.ses.UsuarioID, e.Libro.Observaciones())
	if err != nil {
		return err
	}
	resp, err := s.api.AprobarPedido(ctx, e.Pedido.ID, req)
	if err != nil {
		if actualizado {
			return &apierror.ErrorParcial{PasoCompletado: "actualizar", PasoFallido: "aprobar", Causa: err}
		}
		return err
	}
	s.confirmar(e, resp, "aprobar")
	return nil
}

// CotizarYAprobarFinal submits the quoted prices with the chosen supplier and
// optionally chains the final approval.
func (s *pedidoService) CotizarYAprobarFinal(ctx context.Context, e *Edicion, proveedorID int64, aprobar bool) error {
	req, err := ConstruirCotizacion(&proveedorID, e.Libro.Lineas(), e.Libro.Observaciones())
	if err != nil {
		return err
	}
	resp, err := s.api.CotizarPedido(ctx, e.Pedido.ID, req)
	if err != nil {
		return err
	}
	s.confirmar(e, resp, "cotizar")

	if !aprobar {
		return nil
	}
	aprReq, err := ConstruirAprobacion(s.ses.UsuarioID, e.Libro.Observaciones())
	if err != nil {
		return err
	}
	resp, err = s.api.AprobarCotizacionFinal(ctx, e.Pedido.ID, aprReq)
	if err != nil {
		return &apierror.ErrorParcial{PasoCompletado: "cotizar", PasoFallido: "aprobar", Causa: err}
	}
	s.confirmar(e, resp, "aprobar-final")
	return nil
}

func (s *pedidoService) Rechazar(ctx context.Context, e *Edicion, motivo string) error {
	req, err := ConstruirRechazo(motivo)
	if err != nil {
		return err
	}
	resp, err := s.api.RechazarPedido(ctx, e.Pedido.ID, req)
	if err != nil {
		return err
	}
	s.confirmar(e, resp, "rechazar")
	return nil
}

// Recibir submits the received quantities and, when factura is non-nil,
// chains the invoice registration. An invoice failure after a successful
// receipt returns ErrorParcial: the pedido stays received but uninvoiced.
func (s *pedidoService) Recibir(ctx context.Context, e *Edicion, fecha time.Time, factura *model.FacturaPedido) error {
	req, err := ConstruirRecepcion(s.ses.UsuarioID, fecha, e.Libro.Lineas(), e.Libro.Observaciones())
	if err != nil {
		return err
	}
	// The invoice is validated BEFORE the receipt call so that an incomplete
	// factura blocks the whole flow instead of stranding a received pedido.
	var facReq *dto.RegistrarFacturaRequest
	if factura != nil {
		facReq, err = ConstruirFactura(factura, e.Libro.Lineas())
		if err != nil {
			return err
		}
	}

	resp, err := s.api.RecibirPedido(ctx, e.Pedido.ID, req)
	if err != nil {
		return err
	}
	s.confirmar(e, resp, "recibir")

	if facReq == nil {
		return nil
	}
	resp, err = s.api.RegistrarFactura(ctx, e.Pedido.ID, facReq)
	if err != nil {
		return &apierror.ErrorParcial{PasoCompletado: "recibir", PasoFallido: "facturar", Causa: err}
	}
	s.confirmar(e, resp, "facturar")
	return nil
}

// confirmar merges a confirmed response back as the new original: the pedido,
// the ledger and the snapshot are all rebuilt from what the server returned.
func (s *pedidoService) confirmar(e *Edicion, resp *dto.PedidoResponse, transicion string) {
	p := pedidoDesdeRespuesta(resp)
	e.Pedido = p
	e.Libro = NuevoLibro(p)
	e.Snapshot = p.Snapshot()
	log.Info().
		Int64("pedido", p.ID).
		Str("transicion", transicion).
		Str("estado", model.NombreEstado(p.Estado)).
		Msg("pedido confirmado por el servidor")
}

func pedidoDesdeRespuesta(r *dto.PedidoResponse) *model.Pedido {
	p := &model.Pedido{
		ID:                  r.ID,
		Estado:              r.Estado,
		TipoPedidoID:        r.TipoPedidoID,
		BodegaSolicitaID:    r.BodegaSolicitaID,
		BodegaDestinoID:     r.BodegaDestinoID,
		ProveedorID:         r.ProveedorID,
		UsuarioSolicitaID:   r.UsuarioSolicitaID,
		UsuarioApruebaID:    r.UsuarioApruebaID,
		UsuarioRecibeID:     r.UsuarioRecibeID,
		Observaciones:       r.Observaciones,
		NombreTipoPedido:    r.NombreTipoPedido,
		NombreBodegaDestino: r.NombreBodegaDestino,
		NombreProveedor:     r.NombreProveedor,
	}
	for _, d := range r.Detalles {
		p.Lineas = append(p.Lineas, model.LineaPedido{
			LocalID:            uuid.New(),
			InventarioID:       d.InventarioID,
			Codigo:             d.Codigo,
			Nombre:             d.Nombre,
			UnidadMedida:       d.UnidadMedida,
			CantidadSolicitada: d.CantidadSolicitada,
			PrecioUnitario:     d.PrecioUnitario,
			IVAPorcentaje:      d.IVAPorcentaje,
			CantidadRecibida:   d.CantidadRecibida,
		})
	}
	return p
}
