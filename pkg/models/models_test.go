package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestCreateOrderRequest_Validate(t *testing.T) {
	req := &CreateOrderRequest{OrderID: "ORD1"}
	err := req.Validate()
	require.Error(t, err)
	assert.Equal(t, "userId required", err.Error())

	req = &CreateOrderRequest{UserID: "u1"}
	assert.EqualError(t, req.Validate(), "orderId required")

	req = &CreateOrderRequest{UserID: "u1", OrderID: "ORD1"}
	assert.NoError(t, req.Validate())
}

func TestCreateOrderRequest_Defaults(t *testing.T) {
	now := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	order := (&CreateOrderRequest{UserID: "u1", OrderID: "ORD1"}).Order(now)

	assert.Equal(t, []LineItem{}, order.Items)
	assert.Zero(t, order.TotalAmount)
	assert.Equal(t, StatusPending, order.Status)
	assert.Nil(t, order.DeliveryLocation)
	assert.Equal(t, "2026-03-01T10:00:00Z", order.CreatedAt)
	assert.Nil(t, order.Timestamp)
}

func TestCreateOrderRequest_KeepsPayload(t *testing.T) {
	body := `{
		"userId": "test_user_123",
		"orderId": "ORD1000000",
		"items": [{"product": {"name": "Apple", "price": "$2.99/kg"}, "quantity": 2.5}],
		"totalAmount": 7.48,
		"deliveryLocation": {"latitude": 40.7128, "longitude": -74.006},
		"status": "CONFIRMED"
	}`
	var req CreateOrderRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	order := req.Order(time.Now())
	assert.Equal(t, 7.48, order.TotalAmount)
	assert.Equal(t, StatusConfirmed, order.Status)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 2.5, order.Items[0]["quantity"])
	assert.Equal(t, &Location{Latitude: 40.7128, Longitude: -74.006}, order.DeliveryLocation)
}

func TestUpdateOrderStatusRequest_Validate(t *testing.T) {
	assert.EqualError(t, (&UpdateOrderStatusRequest{}).Validate(), "status required")
	assert.NoError(t, (&UpdateOrderStatusRequest{Status: StatusDelivered}).Validate())
}

func TestSummarizeOrders(t *testing.T) {
	got := SummarizeOrders([]Order{
		{TotalAmount: 7.48, Status: StatusPending},
		{TotalAmount: 12, Status: StatusDelivered},
	})

	assert.Equal(t, 2, got.TotalOrders)
	assert.Equal(t, 19.48, got.TotalRevenue)
	assert.Equal(t, map[string]int{"PENDING": 1, "DELIVERED": 1}, got.StatusCounts)

	raw, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, `{"totalOrders":2,"totalRevenue":19.48,"statusCounts":{"PENDING":1,"DELIVERED":1}}`, string(raw))
}

func TestSummarizeOrders_MissingFields(t *testing.T) {
	got := SummarizeOrders([]Order{{}, {TotalAmount: 3}})
	assert.Equal(t, 2, got.TotalOrders)
	assert.Equal(t, 3.0, got.TotalRevenue)
	assert.Equal(t, map[string]int{StatusUnknown: 2}, got.StatusCounts)

	empty := SummarizeOrders(nil)
	assert.Zero(t, empty.TotalOrders)
	assert.Zero(t, empty.TotalRevenue)
	assert.NotNil(t, empty.StatusCounts)
}

func TestCreateUserRequest(t *testing.T) {
	assert.EqualError(t, (&CreateUserRequest{}).Validate(), "userId required")

	user := (&CreateUserRequest{UserID: "u1", Email: "a@b.c"}).User()
	assert.Equal(t, "u1", user.UserID)
	assert.Equal(t, []string{}, user.PhoneNumbers)
}

func TestCreateProductRequest_Defaults(t *testing.T) {
	p := (&CreateProductRequest{Name: "Apple", Price: 2.99}).Product()
	assert.True(t, p.InStock)
	assert.Equal(t, "", p.Description)

	out := false
	desc := "Crisp"
	p = (&CreateProductRequest{Name: "Apple", InStock: &out, Description: &desc}).Product()
	assert.False(t, p.InStock)
	assert.Equal(t, "Crisp", p.Description)
}

func TestProduct_MarshalJSONFlattensExtra(t *testing.T) {
	p := Product{ID: "p1", Name: "Apple", Price: "$2.99/kg", InStock: true, Extra: bson.M{"origin": "Spain", "name": "ignored"}}

	raw, err := json.Marshal(p)
	require.NoError(t, err)

	var got map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "Spain", got["origin"])
	assert.Equal(t, "Apple", got["name"])
	assert.Equal(t, "p1", got["id"])
}

func TestProductPatch(t *testing.T) {
	patch, err := ProductPatch(map[string]interface{}{"id": "x", "price": 3.5, "origin": "Spain", "inStock": false})
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"price": 3.5, "origin": "Spain", "inStock": false}, patch)

	_, err = ProductPatch(map[string]interface{}{"inStock": "no"})
	var invalid *InvalidFieldError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, "inStock", invalid.Field)
}

func TestProductPatch_DropsStoreOwnedFields(t *testing.T) {
	patch, err := ProductPatch(map[string]interface{}{
		"_id":               "x",
		"createdAt":         "yesterday",
		"createdAt.seconds": 5.0,
		"name":              "Pear",
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"name": "Pear"}, patch)
}

func TestProductPatch_RejectsNullsAndPaths(t *testing.T) {
	for _, payload := range []map[string]interface{}{
		{"name": nil},
		{"inStock": nil},
		{"description": nil},
		{"name.first": "A"},
		{"price.amount": 3.0},
		{"$set": map[string]interface{}{"name": "A"}},
		{"": 1.0},
	} {
		_, err := ProductPatch(payload)
		var invalid *InvalidFieldError
		assert.ErrorAs(t, err, &invalid, "%v", payload)
	}

	patch, err := ProductPatch(map[string]interface{}{"price": nil, "nutrition.kcal": 52.0})
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"price": nil, "nutrition.kcal": 52.0}, patch)
}
