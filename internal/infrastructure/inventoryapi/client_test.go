package inventoryapi_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/storefront-cart/internal/domain"
	"github.com/jhoicas/storefront-cart/internal/infrastructure/inventoryapi"
)

func newServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/stock/1", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":1,"amount":3}`))
	})
	mux.HandleFunc("/products/1", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"id":1,"title":"Tênis de Caminhada","price":179.9,"image":"https://img/1.jpg"}`))
	})
	mux.HandleFunc("/products/5", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"title":"Sem id","price":"49.90"}`))
	})
	mux.HandleFunc("/stock/2", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	mux.HandleFunc("/products/3", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`no json`))
	})
	mux.HandleFunc("/stock/9", func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(200 * time.Millisecond)
		_, _ = w.Write([]byte(`{"id":9,"amount":1}`))
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestClient_GetStock(t *testing.T) {
	srv := newServer(t)
	c := inventoryapi.NewClient(srv.URL+"/", time.Second)

	stock, err := c.GetStock(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, stock.ProductID)
	assert.Equal(t, 3, stock.Amount)
}

func TestClient_GetProduct(t *testing.T) {
	srv := newServer(t)
	c := inventoryapi.NewClient(srv.URL, time.Second)

	p, err := c.GetProduct(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, p.ID)
	assert.Equal(t, "Tênis de Caminhada", p.Title())
	assert.Equal(t, "179.9", p.Price().String())
	assert.Equal(t, "https://img/1.jpg", p.Image())
}

func TestClient_NoEncontrado(t *testing.T) {
	srv := newServer(t)
	c := inventoryapi.NewClient(srv.URL, time.Second)

	_, err := c.GetProduct(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestClient_ErrorDelServidor(t *testing.T) {
	srv := newServer(t)
	c := inventoryapi.NewClient(srv.URL, time.Second)

	_, err := c.GetStock(context.Background(), 2)
	assert.ErrorIs(t, err, domain.ErrInventoryUnavailable)
}

func TestClient_RespuestaInvalida(t *testing.T) {
	srv := newServer(t)
	c := inventoryapi.NewClient(srv.URL, time.Second)

	_, err := c.GetProduct(context.Background(), 3)
	assert.ErrorIs(t, err, domain.ErrInventoryUnavailable)
}

func TestClient_Timeout(t *testing.T) {
	srv := newServer(t)
	c := inventoryapi.NewClient(srv.URL, time.Second)
	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()

	_, err := c.GetStock(ctx, 9)
	assert.ErrorIs(t, err, domain.ErrInventoryUnavailable)
}

func TestClient_ServidorCaido(t *testing.T) {
	srv := newServer(t)
	url := srv.URL
	srv.Close()
	c := inventoryapi.NewClient(url, time.Second)

	_, err := c.GetStock(context.Background(), 1)
	assert.ErrorIs(t, err, domain.ErrInventoryUnavailable)
}

func TestClient_GetProduct_SinIDEnElCuerpo(t *testing.T) {
	srv := newServer(t)
	c := inventoryapi.NewClient(srv.URL, time.Second)

	p, err := c.GetProduct(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 5, p.ID)
	assert.Equal(t, "Sem id", p.Title())
	assert.Equal(t, "49.9", p.Price().String())
}
