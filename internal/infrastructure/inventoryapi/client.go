package inventoryapi

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/jhoicas/storefront-cart/internal/application/ports"
	"github.com/jhoicas/storefront-cart/internal/domain"
	"github.com/jhoicas/storefront-cart/internal/domain/entity"
)

// Verificar en tiempo de compilación que Client implementa InventoryService.
var _ ports.InventoryService = (*Client)(nil)

// maxBodyBytes límite de lectura de una respuesta del inventario.
const maxBodyBytes = 64 * 1024

// Client adaptador HTTP del servicio de inventario (GET /stock/{id}, GET /products/{id}).
type Client struct {
	baseURL    string
	httpClient *http.Client
	tracer     trace.Tracer
}

// NewClient construye el adaptador. baseURL sin barra final, p. ej. "http://localhost:3333".
// timeout <= 0 deja el cliente sin timeout propio; el ctx de cada llamada sigue aplicando.
func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		tracer:     otel.Tracer("github.com/jhoicas/storefront-cart/internal/infrastructure/inventoryapi"),
	}
}

type stockPayload struct {
	ID     int `json:"id"`
	Amount int `json:"amount"`
}

// GetStock consulta el stock disponible del producto.
func (c *Client) GetStock(ctx context.Context, productID int) (entity.Stock, error) {
	ctx, span := c.tracer.Start(ctx, "inventory.GetStock", trace.WithAttributes(attribute.Int("product.id", productID)))
	defer span.End()

	body, err := c.get(ctx, "stock", productID)
	if err != nil {
		recordError(span, err)
		return entity.Stock{}, err
	}
	var payload stockPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		err = fmt.Errorf("%w: deserializar stock: %w", domain.ErrInventoryUnavailable, err)
		recordError(span, err)
		return entity.Stock{}, err
	}
	span.SetAttributes(attribute.Int("stock.amount", payload.Amount))
	return entity.Stock{ProductID: productID, Amount: payload.Amount}, nil
}

// GetProduct obtiene los atributos del producto.
func (c *Client) GetProduct(ctx context.Context, productID int) (entity.Product, error) {
	ctx, span := c.tracer.Start(ctx, "inventory.GetProduct", trace.WithAttributes(attribute.Int("product.id", productID)))
	defer span.End()

	body, err := c.get(ctx, "products", productID)
	if err != nil {
		recordError(span, err)
		return entity.Product{}, err
	}
	product, err := entity.DecodeProduct(body, productID)
	if err != nil {
		err = fmt.Errorf("%w: deserializar producto: %w", domain.ErrInventoryUnavailable, err)
		recordError(span, err)
		return entity.Product{}, err
	}
	return product, nil
}

func (c *Client) get(ctx context.Context, resource string, id int) ([]byte, error) {
	endpoint := c.baseURL + "/" + resource + "/" + url.PathEscape(strconv.Itoa(id))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: crear request: %w", domain.ErrInventoryUnavailable, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("%w: timeout o cancelación: %w", domain.ErrInventoryUnavailable, ctx.Err())
		}
		return nil, fmt.Errorf("%w: GET %s: %w", domain.ErrInventoryUnavailable, endpoint, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: leer respuesta: %w", domain.ErrInventoryUnavailable, err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, fmt.Errorf("%w: %s %d", domain.ErrProductNotFound, resource, id)
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return nil, fmt.Errorf("%w: GET %s HTTP %d", domain.ErrInventoryUnavailable, endpoint, resp.StatusCode)
	}
	return body, nil
}

func recordError(span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
}
