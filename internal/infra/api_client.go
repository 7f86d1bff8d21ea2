package infra

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/raydan90s/smileops-pedidos/internal/apierror"
	"github.com/raydan90s/smileops-pedidos/internal/dto"
)

// Client is the typed HTTP client for the pedidos backend. Every method takes
// a context so that a screen teardown cancels its in-flight requests, and
// every call runs through the circuit breaker so a dead backend fast-fails
// instead of hanging each screen in turn.
type Client struct {
	baseURL    string
	token      string
	httpClient *http.Client
	cb         *CircuitBreaker
}

// NewClient builds a Client. timeout 0 disables the per-request timeout;
// cancellation then happens only through the caller's context.
func NewClient(baseURL, token string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    baseURL,
		token:      token,
		httpClient: &http.Client{Timeout: timeout},
		cb:         NewCircuitBreaker(DefaultCBConfig()),
	}
}

// do runs one JSON round trip. body nil ⇒ no request body; out nil ⇒ the
// response body is discarded. Non-2xx responses are decoded as the backend's
// error envelope and returned as *apierror.ErrorServicio.
func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	return c.cb.ExecuteCtx(ctx, func() error {
		var reader *bytes.Reader
		if body != nil {
			data, err := json.Marshal(body)
			if err != nil {
				return fmt.Errorf("api: marshal payload: %w", err)
			}
			reader = bytes.NewReader(data)
		} else {
			reader = bytes.NewReader(nil)
		}

		req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
		if err != nil {
			return fmt.Errorf("api: create request: %w", err)
		}
		req.Header.Set("Content-Type", "application/json")
		if c.token != "" {
			req.Header.Set("Authorization", "Bearer "+c.token)
		}

		resp, err := c.httpClient.Do(req)
		if err != nil {
			return &apierror.ErrorServicio{Causa: err}
		}
		defer resp.Body.Close()

		if resp.StatusCode < 200 || resp.StatusCode >= 300 {
			var env apierror.Envelope
			_ = json.NewDecoder(resp.Body).Decode(&env)
			return &apierror.ErrorServicio{Status: resp.StatusCode, Detail: env.Detail}
		}

		if out == nil {
			return nil
		}
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("api: decode response: %w", err)
		}
		return nil
	})
}

// ── Reference data ───────────────────────────────────────────────────────────

func (c *Client) TiposPedido(ctx context.Context) ([]dto.TipoPedidoResponse, error) {
	var out []dto.TipoPedidoResponse
	if err := c.do(ctx, http.MethodGet, "/v1/tipos-pedido", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) BodegasPrincipales(ctx context.Context) ([]dto.BodegaResponse, error) {
	var out []dto.BodegaResponse
	if err := c.do(ctx, http.MethodGet, "/v1/bodegas/principales", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Proveedores(ctx context.Context) ([]dto.ProveedorResponse, error) {
	var out []dto.ProveedorResponse
	if err := c.do(ctx, http.MethodGet, "/v1/proveedores", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *Client) Entidades(ctx context.Context) ([]dto.EntidadResponse, error) {
	var out []dto.EntidadResponse
	if err := c.do(ctx, http.MethodGet, "/v1/entidades", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// SiguienteNumeroPedido returns the advisory next id for display only; it is
// not a reservation.
func (c *Client) SiguienteNumeroPedido(ctx context.Context) (int64, error) {
	var out dto.SiguienteIDResponse
	if err := c.do(ctx, http.MethodGet, "/v1/pedidos/siguiente-id", nil, &out); err != nil {
		return 0, err
	}
	return out.Siguiente, nil
}

// ProductoPorCodigo resolves a catalog product by its code. A 404 surfaces as
// *apierror.ErrorBusqueda naming the offending code.
func (c *Client) ProductoPorCodigo(ctx context.Context, codigo string) (*dto.ProductoResponse, error) {
	var out dto.ProductoResponse
	path := "/v1/productos/codigo/" + url.PathEscape(codigo)
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		var srv *apierror.ErrorServicio
		if errors.As(err, &srv) && srv.Status == http.StatusNotFound {
			return nil, &apierror.ErrorBusqueda{Codigo: codigo}
		}
		return nil, err
	}
	return &out, nil
}

// ── Pedido lifecycle ─────────────────────────────────────────────────────────

func (c *Client) ObtenerPedido(ctx context.Context, id int64) (*dto.PedidoResponse, error) {
	var out dto.PedidoResponse
	if err := c.do(ctx, http.MethodGet, fmt.Sprintf("/v1/pedidos/%d", id), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CrearPedido(ctx context.Context, req *dto.GuardarPedidoRequest) (*dto.PedidoResponse, error) {
	var out dto.PedidoResponse
	if err := c.do(ctx, http.MethodPost, "/v1/pedidos", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) ActualizarPedido(ctx context.Context, id int64, req *dto.GuardarPedidoRequest) (*dto.PedidoResponse, error) {
	var out dto.PedidoResponse
	if err := c.do(ctx, http.MethodPut, fmt.Sprintf("/v1/pedidos/%d", id), req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *Client) CotizarPedido(ctx context.Context, id int64, req *dto.CotizarPedidoRequest) (*dto.PedidoResponse, error) {
	return c.transicion(ctx, id, "cotizar", req)
}

func (c *Client) AprobarPedido(ctx context.Context, id int64, req *dto.AprobarPedidoRequest) (*dto.PedidoResponse, error) {
	return c.transicion(ctx, id, "aprobar", req)
}

func (c *Client) AprobarCotizacionFinal(ctx context.Context, id int64, req *dto.AprobarPedidoRequest) (*dto.PedidoResponse, error) {
	return c.transicion(ctx, id, "aprobar-final", req)
}

func (c *Client) RechazarPedido(ctx context.Context, id int64, req *dto.RechazarPedidoRequest) (*dto.PedidoResponse, error) {
	return c.transicion(ctx, id, "rechazar", req)
}

func (c *Client) RecibirPedido(ctx context.Context, id int64, req *dto.RecibirPedidoRequest) (*dto.PedidoResponse, error) {
	return c.transicion(ctx, id, "recibir", req)
}

func (c *Client) RegistrarFactura(ctx context.Context, id int64, req *dto.RegistrarFacturaRequest) (*dto.PedidoResponse, error) {
	return c.transicion(ctx, id, "factura", req)
}

func (c *Client) transicion(ctx context.Context, id int64, accion string, req interface{}) (*dto.PedidoResponse, error) {
	var out dto.PedidoResponse
	path := fmt.Sprintf("/v1/pedidos/%d/%s", id, accion)
	if err := c.do(ctx, http.MethodPost, path, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
