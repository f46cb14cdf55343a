package postgres

import (
	"context"
	"encoding/json"
	"os"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/storefront-cart/internal/application/usecase"
	"github.com/jhoicas/storefront-cart/internal/domain/entity"
	"github.com/jhoicas/storefront-cart/pkg/config"
)

// withTx abre una transacción que se descarta al final; requiere TEST_DATABASE_URL.
func withTx(t *testing.T, fn func(ctx context.Context, tx pgx.Tx)) {
	t.Helper()
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}
	ctx := context.Background()
	pool, err := NewPool(ctx, config.DBConfig{DatabaseURL: dsn, MaxConns: 2})
	require.NoError(t, err)
	defer pool.Close()
	require.NoError(t, Migrate(ctx, pool))

	tx, err := pool.Begin(ctx)
	require.NoError(t, err)
	defer tx.Rollback(ctx)
	fn(ctx, tx)
}

func TestCartStorage_Postgres(t *testing.T) {
	withTx(t, func(ctx context.Context, tx pgx.Tx) {
		s := NewCartStorage(tx)

		_, ok, err := s.Get(ctx, "@RocketShoes:cart:pg")
		require.NoError(t, err)
		assert.False(t, ok)

		require.NoError(t, s.Set(ctx, "@RocketShoes:cart:pg", `[]`))
		require.NoError(t, s.Set(ctx, "@RocketShoes:cart:pg", `[{"id":1,"amount":1}]`))
		v, ok, err := s.Get(ctx, "@RocketShoes:cart:pg")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.Equal(t, `[{"id":1,"amount":1}]`, v)

		require.NoError(t, s.Delete(ctx, "@RocketShoes:cart:pg"))
		_, ok, err = s.Get(ctx, "@RocketShoes:cart:pg")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}

func TestCatalog_Postgres(t *testing.T) {
	withTx(t, func(ctx context.Context, tx pgx.Tx) {
		p := entity.NewProduct(90001, "Tênis de Caminhada", decimal.RequireFromString("179.90"), "https://example.com/1.jpg")
		p.SetAttribute("brand", json.RawMessage(`"Rocket"`))

		w := NewCatalogWriter(tx)
		require.NoError(t, w.UpsertProduct(ctx, p))
		require.NoError(t, w.UpsertStock(ctx, entity.Stock{ProductID: 90001, Amount: 4}))

		got, err := NewProductRepository(tx).GetByID(ctx, 90001)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, "Tênis de Caminhada", got.Title())
		assert.True(t, got.Price().Equal(decimal.RequireFromString("179.9")))
		assert.JSONEq(t, `"Rocket"`, string(got.Attributes["brand"]))

		s, err := NewStockRepository(tx).Get(ctx, 90001)
		require.NoError(t, err)
		require.NotNil(t, s)
		assert.Equal(t, 4, s.Amount)

		missing, err := NewProductRepository(tx).GetByID(ctx, 90002)
		require.NoError(t, err)
		assert.Nil(t, missing)
	})
}

func TestTxRunner_RollbackEnError(t *testing.T) {
	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}
	ctx := context.Background()
	pool, err := NewPool(ctx, config.DBConfig{DatabaseURL: dsn, MaxConns: 2})
	require.NoError(t, err)
	defer pool.Close()
	require.NoError(t, Migrate(ctx, pool))

	boom := assert.AnError
	err = NewTxRunner(pool).RunImport(ctx, func(w usecase.CatalogWriter) error {
		require.NoError(t, w.UpsertProduct(ctx, entity.NewProduct(90010, "temporal", decimal.NewFromInt(1), "")))
		return boom
	})
	require.ErrorIs(t, err, boom)

	got, err := NewProductRepository(pool).GetByID(ctx, 90010)
	require.NoError(t, err)
	assert.Nil(t, got, "la importación fallida no deja filas")
}
