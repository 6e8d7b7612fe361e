// Package docs registers the gateway's Swagger document with swag so that
// gin-swagger can serve it under /swagger/.
package docs

import "github.com/swaggo/swag"

const docTemplate = `{
    "schemes": {{ marshal .Schemes }},
    "swagger": "2.0",
    "info": {
        "description": "{{escape .Description}}",
        "title": "{{.Title}}",
        "contact": {},
        "version": "{{.Version}}"
    },
    "host": "{{.Host}}",
    "basePath": "{{.BasePath}}",
    "paths": {
        "/health": {
            "get": {
                "produces": ["application/json"],
                "tags": ["meta"],
                "summary": "Liveness and store state",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": true}}
                }
            }
        },
        "/orders": {
            "get": {
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "List a user's orders",
                "parameters": [
                    {"type": "string", "description": "owner of the orders", "name": "userId", "in": "query", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "array", "items": {"$ref": "#/definitions/models.Order"}}}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/gateway.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/gateway.ErrorResponse"}},
                    "503": {"description": "Service Unavailable", "schema": {"$ref": "#/definitions/gateway.ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Create or overwrite an order",
                "parameters": [
                    {"description": "order", "name": "order", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.CreateOrderRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"type": "object", "additionalProperties": true}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/gateway.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/gateway.ErrorResponse"}}
                }
            }
        },
        "/orders/{id}": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Update an order's status",
                "parameters": [
                    {"type": "string", "description": "order id", "name": "id", "in": "path", "required": true},
                    {"description": "new status", "name": "status", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.UpdateOrderStatusRequest"}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/gateway.SuccessResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/gateway.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/gateway.ErrorResponse"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["orders"],
                "summary": "Delete an order",
                "parameters": [
                    {"type": "string", "description": "order id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/gateway.SuccessResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/gateway.ErrorResponse"}}
                }
            }
        },
        "/products": {
            "get": {
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "List every product",
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"type": "array", "items": {"$ref": "#/definitions/models.Product"}}}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/gateway.ErrorResponse"}}
                }
            },
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Create a product",
                "parameters": [
                    {"description": "product", "name": "product", "in": "body", "schema": {"$ref": "#/definitions/models.CreateProductRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"type": "object", "additionalProperties": true}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/gateway.ErrorResponse"}}
                }
            }
        },
        "/products/{id}": {
            "put": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Merge fields into a product",
                "parameters": [
                    {"type": "string", "description": "product id", "name": "id", "in": "path", "required": true},
                    {"description": "fields to merge", "name": "fields", "in": "body", "required": true, "schema": {"type": "object", "additionalProperties": true}}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/gateway.SuccessResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/gateway.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/gateway.ErrorResponse"}}
                }
            },
            "delete": {
                "produces": ["application/json"],
                "tags": ["products"],
                "summary": "Delete a product",
                "parameters": [
                    {"type": "string", "description": "product id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/gateway.SuccessResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/gateway.ErrorResponse"}}
                }
            }
        },
        "/users": {
            "post": {
                "consumes": ["application/json"],
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Create or overwrite a user profile",
                "parameters": [
                    {"description": "profile", "name": "user", "in": "body", "required": true, "schema": {"$ref": "#/definitions/models.CreateUserRequest"}}
                ],
                "responses": {
                    "201": {"description": "Created", "schema": {"$ref": "#/definitions/gateway.SuccessResponse"}},
                    "400": {"description": "Bad Request", "schema": {"$ref": "#/definitions/gateway.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/gateway.ErrorResponse"}}
                }
            }
        },
        "/users/{id}": {
            "get": {
                "produces": ["application/json"],
                "tags": ["users"],
                "summary": "Fetch a user profile",
                "parameters": [
                    {"type": "string", "description": "user id", "name": "id", "in": "path", "required": true}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"type": "object", "additionalProperties": {"$ref": "#/definitions/models.User"}}},
                    "404": {"description": "Not Found", "schema": {"$ref": "#/definitions/gateway.ErrorResponse"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/gateway.ErrorResponse"}}
                }
            }
        },
        "/analytics/orders": {
            "get": {
                "produces": ["application/json"],
                "tags": ["analytics"],
                "summary": "Order count, revenue and status breakdown",
                "parameters": [
                    {"type": "string", "description": "restrict to one user", "name": "userId", "in": "query"}
                ],
                "responses": {
                    "200": {"description": "OK", "schema": {"$ref": "#/definitions/models.OrderAnalytics"}},
                    "500": {"description": "Internal Server Error", "schema": {"$ref": "#/definitions/gateway.ErrorResponse"}}
                }
            }
        }
    },
    "definitions": {
        "gateway.ErrorResponse": {
            "type": "object",
            "properties": {"error": {"type": "string"}}
        },
        "gateway.SuccessResponse": {
            "type": "object",
            "properties": {"success": {"type": "boolean"}}
        },
        "models.Location": {
            "type": "object",
            "properties": {
                "latitude": {"type": "number"},
                "longitude": {"type": "number"}
            }
        },
        "models.Order": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "userId": {"type": "string"},
                "orderId": {"type": "string"},
                "items": {"type": "array", "items": {"type": "object", "additionalProperties": true}},
                "totalAmount": {"type": "number"},
                "deliveryLocation": {"$ref": "#/definitions/models.Location"},
                "status": {"type": "string", "example": "PENDING"},
                "timestamp": {"type": "string", "format": "date-time"},
                "createdAt": {"type": "string"},
                "updatedAt": {"type": "string", "format": "date-time"}
            }
        },
        "models.CreateOrderRequest": {
            "type": "object",
            "required": ["userId", "orderId"],
            "properties": {
                "userId": {"type": "string"},
                "orderId": {"type": "string"},
                "items": {"type": "array", "items": {"type": "object", "additionalProperties": true}},
                "totalAmount": {"type": "number"},
                "deliveryLocation": {"$ref": "#/definitions/models.Location"},
                "status": {"type": "string", "example": "PENDING"}
            }
        },
        "models.UpdateOrderStatusRequest": {
            "type": "object",
            "required": ["status"],
            "properties": {"status": {"type": "string", "example": "DELIVERED"}}
        },
        "models.OrderAnalytics": {
            "type": "object",
            "properties": {
                "totalOrders": {"type": "integer"},
                "totalRevenue": {"type": "number"},
                "statusCounts": {"type": "object", "additionalProperties": {"type": "integer"}}
            }
        },
        "models.Product": {
            "type": "object",
            "additionalProperties": true,
            "properties": {
                "id": {"type": "string"},
                "name": {"type": "string"},
                "price": {},
                "category": {"type": "string"},
                "imageUrl": {"type": "string"},
                "description": {"type": "string"},
                "inStock": {"type": "boolean"},
                "createdAt": {"type": "string", "format": "date-time"}
            }
        },
        "models.CreateProductRequest": {
            "type": "object",
            "properties": {
                "name": {"type": "string"},
                "price": {},
                "category": {"type": "string"},
                "imageUrl": {"type": "string"},
                "description": {"type": "string"},
                "inStock": {"type": "boolean", "default": true}
            }
        },
        "models.User": {
            "type": "object",
            "properties": {
                "id": {"type": "string"},
                "userId": {"type": "string"},
                "email": {"type": "string"},
                "displayName": {"type": "string"},
                "phoneNumbers": {"type": "array", "items": {"type": "string"}},
                "createdAt": {"type": "string", "format": "date-time"}
            }
        },
        "models.CreateUserRequest": {
            "type": "object",
            "required": ["userId"],
            "properties": {
                "userId": {"type": "string"},
                "email": {"type": "string"},
                "displayName": {"type": "string"},
                "phoneNumbers": {"type": "array", "items": {"type": "string"}}
            }
        }
    }
}`

// SwaggerInfo holds exported Swagger Info so clients can modify it
var SwaggerInfo = &swag.Spec{
	Version:          "1.0.0",
	Host:             "",
	BasePath:         "/api",
	Schemes:          []string{},
	Title:            "FRIZZLY API",
	Description:      "Orders, products, users and order analytics for the FRIZZLY grocery app.",
	InfoInstanceName: "swagger",
	SwaggerTemplate:  docTemplate,
	LeftDelim:        "{{",
	RightDelim:       "}}",
}

func init() {
	swag.Register(SwaggerInfo.InstanceName(), SwaggerInfo)
}
