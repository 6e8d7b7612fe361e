package repository

import (
	"context"

	"github.com/frizzly/api/pkg/models"
)

const OrdersCollection = "orders"

type OrderRepository struct {
	store DocumentStore
}

func NewOrderRepository(store DocumentStore) *OrderRepository {
	return &OrderRepository{store: store}
}

// List returns the orders of userID, or every order when userID is empty.
func (r *OrderRepository) List(ctx context.Context, userID string) ([]models.Order, error) {
	var filters []Filter
	if userID != "" {
		filters = append(filters, Eq("userId", userID))
	}

	orders := []models.Order{}
	if err := r.store.Find(ctx, OrdersCollection, &orders, filters...); err != nil {
		return nil, err
	}
	if orders == nil {
		orders = []models.Order{}
	}
	return orders, nil
}

// All returns every stored order.
func (r *OrderRepository) All(ctx context.Context) ([]models.Order, error) {
	return r.List(ctx, "")
}

// Create writes the order under its orderId, replacing any previous
// document with that id. The store assigns "timestamp".
func (r *OrderRepository) Create(ctx context.Context, order *models.Order) error {
	return r.store.Set(ctx, OrdersCollection, order.OrderID, order, "timestamp")
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, orderID, status string) error {
	return r.store.Update(ctx, OrdersCollection, orderID, map[string]interface{}{"status": status}, "updatedAt")
}

func (r *OrderRepository) Delete(ctx context.Context, orderID string) error {
	return r.store.Delete(ctx, OrdersCollection, orderID)
}
