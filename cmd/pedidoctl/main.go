// cmd/pedidoctl/main.go — consola de pedidos de SmileOps.
// Uso:
//
//	pedidoctl ver <id>      resumen del pedido con sus totales
//	pedidoctl etapa <id>    secciones habilitadas según el estado
//	pedidoctl pdf <id>      genera la orden de pedido en PDF
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"

	"github.com/raydan90s/smileops-pedidos/internal/config"
	"github.com/raydan90s/smileops-pedidos/internal/infra"
	"github.com/raydan90s/smileops-pedidos/internal/model"
	"github.com/raydan90s/smileops-pedidos/internal/service"
	"github.com/raydan90s/smileops-pedidos/internal/sesion"
)

func main() {
	// Structured logger — dev: pretty, prod: JSON
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	if cfg.Env == "production" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	}

	ses, err := sesion.DesdeToken(cfg.APIToken)
	if err != nil {
		log.Fatal().Err(err).Msg("API_TOKEN inválido")
	}
	if !ses.Vigente(time.Now()) {
		log.Fatal().Msg("la sesión expiró; obtenga un token nuevo")
	}

	client := infra.NewClient(cfg.APIBaseURL, ses.Token, cfg.HTTPTimeout())
	svc := service.NewPedidoService(client, ses)

	// Ctrl-C cancels the in-flight request instead of abandoning it.
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if len(os.Args) < 3 {
		uso()
	}
	id, err := strconv.ParseInt(os.Args[2], 10, 64)
	if err != nil {
		log.Fatal().Str("id", os.Args[2]).Msg("el id del pedido debe ser numérico")
	}

	switch os.Args[1] {
	case "ver":
		verPedido(ctx, svc, id)
	case "etapa":
		verEtapa(ctx, svc, id)
	case "pdf":
		generarPDF(ctx, svc, id, cfg.PDFStoragePath)
	default:
		uso()
	}
}

func uso() {
	fmt.Fprintln(os.Stderr, "uso: pedidoctl ver|etapa|pdf <id>")
	os.Exit(2)
}

func cargar(ctx context.Context, svc service.PedidoService, id int64) *service.Edicion {
	e, err := svc.Cargar(ctx, id)
	if err != nil {
		log.Fatal().Err(err).Int64("pedido", id).Msg("no se pudo cargar el pedido")
	}
	return e
}

func verPedido(ctx context.Context, svc service.PedidoService, id int64) {
	e := cargar(ctx, svc, id)
	p := e.Pedido

	fmt.Printf("Pedido N° %d — %s\n", p.ID, model.NombreEstado(p.Estado))
	if p.NombreBodegaDestino != "" {
		fmt.Printf("Bodega destino: %s\n", p.NombreBodegaDestino)
	}
	if p.NombreProveedor != "" {
		fmt.Printf("Proveedor: %s\n", p.NombreProveedor)
	}
	fmt.Println()
	for _, l := range p.Lineas {
		precio := "—"
		if l.PrecioUnitario != nil {
			precio = l.PrecioUnitario.StringFixed(2)
		}
		fmt.Printf("  %-12s %-30s cant %s  precio %s\n", l.Codigo, l.Nombre, l.CantidadSolicitada.String(), precio)
	}

	fuente := service.PorCantidadSolicitada
	if p.Estado == model.EstadoRecibido {
		fuente = service.PorCantidadRecibida
	}
	t := e.Totales(fuente, decimal.Zero)
	fmt.Println()
	fmt.Printf("Subtotal 0%%:  %s\n", t.SubtotalTarifaCero.StringFixed(2))
	fmt.Printf("Gravado:      %s\n", t.SubtotalGravado.StringFixed(2))
	fmt.Printf("IVA:          %s\n", t.TotalIVA.StringFixed(2))
	fmt.Printf("TOTAL:        %s\n", t.Total.StringFixed(2))
}

func verEtapa(ctx context.Context, svc service.PedidoService, id int64) {
	e := cargar(ctx, svc, id)
	et := e.Etapa()

	fmt.Printf("Pedido N° %d — %s\n", id, model.NombreEstado(e.Pedido.Estado))
	fmt.Printf("  encabezado editable:  %v\n", et.EncabezadoEditable)
	fmt.Printf("  cantidades editables: %v\n", et.CantidadesEditables)
	fmt.Printf("  precios editables:    %v\n", et.PreciosEditables)
	fmt.Printf("  aprobación visible:   %v\n", et.MostrarAprobacion)
	fmt.Printf("  recepción visible:    %v\n", et.MostrarRecepcion)
	fmt.Printf("  solo lectura:         %v\n", et.SoloLectura)
	if et.Advertencia != "" {
		fmt.Printf("  advertencia: %s\n", et.Advertencia)
	}
}

func generarPDF(ctx context.Context, svc service.PedidoService, id int64, storagePath string) {
	e := cargar(ctx, svc, id)
	t := e.Totales(service.PorCantidadSolicitada, decimal.Zero)

	path, err := infra.GenerarOrdenPDF(e.Pedido, t, storagePath)
	if err != nil {
		log.Fatal().Err(err).Msg("no se pudo generar el PDF")
	}
	log.Info().Str("archivo", path).Msg("orden de pedido generada")
}
