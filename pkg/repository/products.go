package repository

import (
	"context"

	"github.com/frizzly/api/pkg/models"
)

const ProductsCollection = "products"

type ProductRepository struct {
	store DocumentStore
}

func NewProductRepository(store DocumentStore) *ProductRepository {
	return &ProductRepository{store: store}
}

func (r *ProductRepository) List(ctx context.Context) ([]models.Product, error) {
	products := []models.Product{}
	if err := r.store.Find(ctx, ProductsCollection, &products); err != nil {
		return nil, err
	}
	if products == nil {
		products = []models.Product{}
	}
	return products, nil
}

// Create inserts the product and returns the id the store generated.
func (r *ProductRepository) Create(ctx context.Context, product *models.Product) (string, error) {
	return r.store.Add(ctx, ProductsCollection, product, "createdAt")
}

func (r *ProductRepository) Update(ctx context.Context, id string, patch map[string]interface{}) error {
	return r.store.Update(ctx, ProductsCollection, id, patch)
}

func (r *ProductRepository) Delete(ctx context.Context, id string) error {
	return r.store.Delete(ctx, ProductsCollection, id)
}
