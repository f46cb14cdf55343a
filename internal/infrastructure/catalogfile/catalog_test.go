package catalogfile_test

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/storefront-cart/internal/infrastructure/catalogfile"
)

const seed = `{
  "products": [
    {"id": 2, "title": "Tênis VR Caminhada", "price": 139.9, "image": "https://img/2.jpg"},
    {"id": 1, "title": "Tênis de Caminhada Leve", "price": 179.9, "image": "https://img/1.jpg", "brand": "Rocket"}
  ],
  "stock": [
    {"id": 1, "amount": 3},
    {"id": 2, "amount": 5}
  ]
}`

func TestParse_OrdenaYResuelve(t *testing.T) {
	c, err := catalogfile.Parse(strings.NewReader(seed))
	require.NoError(t, err)
	ctx := context.Background()

	list, err := c.List(ctx, 10, 0)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 1, list[0].ID)
	assert.Equal(t, 2, list[1].ID)

	p, err := c.GetByID(ctx, 1)
	require.NoError(t, err)
	require.NotNil(t, p)
	assert.Equal(t, "Tênis de Caminhada Leve", p.Title())
	assert.JSONEq(t, `"Rocket"`, string(p.Attributes["brand"]))

	s, err := c.Get(ctx, 2)
	require.NoError(t, err)
	require.NotNil(t, s)
	assert.Equal(t, 5, s.Amount)
}

func TestParse_Inexistentes(t *testing.T) {
	c, err := catalogfile.Parse(strings.NewReader(seed))
	require.NoError(t, err)

	p, err := c.GetByID(context.Background(), 99)
	require.NoError(t, err)
	assert.Nil(t, p)

	s, err := c.Get(context.Background(), 99)
	require.NoError(t, err)
	assert.Nil(t, s)

	list, err := c.List(context.Background(), 10, 5)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestParse_Paginacion(t *testing.T) {
	c, err := catalogfile.Parse(strings.NewReader(seed))
	require.NoError(t, err)

	list, err := c.List(context.Background(), 1, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, 2, list[0].ID)
}

func TestParse_Duplicados(t *testing.T) {
	_, err := catalogfile.Parse(strings.NewReader(`{"products":[{"id":1},{"id":1}]}`))
	assert.Error(t, err)
}

func TestParse_JSONInvalido(t *testing.T) {
	_, err := catalogfile.Parse(strings.NewReader(`{`))
	assert.Error(t, err)
}
