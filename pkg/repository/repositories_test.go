package repository

import (
	"context"
	"testing"
	"time"

	"github.com/frizzly/api/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	store := NewMemoryStore()
	repo := NewOrderRepository(store)

	amount := 7.48
	req := &models.CreateOrderRequest{
		UserID:      "u1",
		OrderID:     "ORD1",
		Items:       []models.LineItem{{"product": map[string]interface{}{"name": "Apple", "price": "$2.99/kg"}, "quantity": 2.5}},
		TotalAmount: &amount,
	}
	require.NoError(t, repo.Create(ctx, req.Order(time.Now())))
	require.NoError(t, repo.Create(ctx, (&models.CreateOrderRequest{UserID: "u2", OrderID: "ORD2"}).Order(time.Now())))

	orders, err := repo.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, "ORD1", orders[0].ID)
	assert.Equal(t, "ORD1", orders[0].OrderID)
	assert.Equal(t, 7.48, orders[0].TotalAmount)
	assert.Equal(t, models.StatusPending, orders[0].Status)
	assert.NotNil(t, orders[0].Timestamp)
	require.Len(t, orders[0].Items, 1)
	assert.Equal(t, 2.5, orders[0].Items[0]["quantity"])

	all, err := repo.All(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, repo.UpdateStatus(ctx, "ORD1", models.StatusDelivered))
	orders, err = repo.List(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, models.StatusDelivered, orders[0].Status)
	assert.NotNil(t, orders[0].UpdatedAt)

	require.NoError(t, repo.Delete(ctx, "ORD1"))
	require.NoError(t, repo.Delete(ctx, "ORD1"))
	orders, err = repo.List(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, orders)
}

func TestOrderRepository_CreateOverwrites(t *testing.T) {
	ctx := context.Background()
	repo := NewOrderRepository(NewMemoryStore())

	first, second := 10.0, 20.0
	require.NoError(t, repo.Create(ctx, (&models.CreateOrderRequest{UserID: "u1", OrderID: "ORD1", TotalAmount: &first}).Order(time.Now())))
	require.NoError(t, repo.Create(ctx, (&models.CreateOrderRequest{UserID: "u1", OrderID: "ORD1", TotalAmount: &second}).Order(time.Now())))

	orders, err := repo.List(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, 20.0, orders[0].TotalAmount)
}

func TestProductRepository_Lifecycle(t *testing.T) {
	ctx := context.Background()
	repo := NewProductRepository(NewMemoryStore())

	id, err := repo.Create(ctx, (&models.CreateProductRequest{Name: "Apple", Price: "$2.99/kg", Category: "fruit"}).Product())
	require.NoError(t, err)
	require.NotEmpty(t, id)

	require.NoError(t, repo.Update(ctx, id, map[string]interface{}{"price": 3.49, "origin": "Spain"}))

	products, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, products, 1)
	p := products[0]
	assert.Equal(t, id, p.ID)
	assert.Equal(t, "Apple", p.Name)
	assert.Equal(t, 3.49, p.Price)
	assert.True(t, p.InStock)
	assert.NotNil(t, p.CreatedAt)
	assert.Equal(t, "Spain", p.Extra["origin"])

	require.NoError(t, repo.Delete(ctx, id))
	products, err = repo.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, products)
}

func TestUserRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository(NewMemoryStore())

	_, err := repo.Get(ctx, "u1")
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, repo.Create(ctx, (&models.CreateUserRequest{UserID: "u1", Email: "ana@example.com"}).User()))

	user, err := repo.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "u1", user.ID)
	assert.Equal(t, "u1", user.UserID)
	assert.Equal(t, "ana@example.com", user.Email)
	assert.Equal(t, []string{}, user.PhoneNumbers)
	assert.NotNil(t, user.CreatedAt)
}
