package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestSwaggerDocIsValidJSON(t *testing.T) {
	doc, err := swag.ReadDoc()
	require.NoError(t, err)

	var parsed map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(doc), &parsed))
	assert.Equal(t, "/api", parsed["basePath"])

	paths := parsed["paths"].(map[string]interface{})
	for _, p := range []string{"/health", "/orders", "/orders/{id}", "/products", "/products/{id}", "/users", "/users/{id}", "/analytics/orders"} {
		assert.Contains(t, paths, p)
	}
}
