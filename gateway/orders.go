package gateway

import (
	"net/http"

	"github.com/frizzly/api/pkg/models"
	"github.com/gin-gonic/gin"
)

// listOrders godoc
// @Summary  List a user's orders
// @Tags     orders
// @Produce  json
// @Param    userId query string true "owner of the orders"
// @Success  200 {object} map[string][]models.Order
// @Failure  400 {object} map[string]string
// @Failure  500 {object} map[string]string
// @Router   /orders [get]
func (g *Gateway) listOrders(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		fail(c, validationError(&models.MissingFieldError{Field: "userId"}))
		return
	}

	orders, err := g.orders.List(c.Request.Context(), userID)
	if err != nil {
		fail(c, storeError(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"orders": orders})
}

// createOrder godoc
// @Summary  Create or overwrite an order
// @Tags     orders
// @Accept   json
// @Produce  json
// @Param    order body models.CreateOrderRequest true "order"
// @Success  201 {object} map[string]interface{}
// @Failure  400 {object} map[string]string
// @Failure  500 {object} map[string]string
// @Router   /orders [post]
func (g *Gateway) createOrder(c *gin.Context) {
	var req models.CreateOrderRequest
	if err := bindBody(c, &req); err != nil {
		fail(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		fail(c, validationError(err))
		return
	}

	order := req.Order(g.now())
	if err := g.orders.Create(c.Request.Context(), order); err != nil {
		fail(c, storeError(err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success": true,
		"orderId": order.OrderID,
	})
}

// updateOrder godoc
// @Summary  Update an order's status
// @Tags     orders
// @Accept   json
// @Produce  json
// @Param    id     path string                          true "order id"
// @Param    status body models.UpdateOrderStatusRequest true "new status"
// @Success  200 {object} map[string]bool
// @Failure  400 {object} map[string]string
// @Failure  500 {object} map[string]string
// @Router   /orders/{id} [put]
func (g *Gateway) updateOrder(c *gin.Context) {
	var req models.UpdateOrderStatusRequest
	if err := bindBody(c, &req); err != nil {
		fail(c, err)
		return
	}
	if err := req.Validate(); err != nil {
		fail(c, validationError(err))
		return
	}

	if err := g.orders.UpdateStatus(c.Request.Context(), c.Param("id"), req.Status); err != nil {
		fail(c, storeError(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// deleteOrder godoc
// @Summary  Delete an order
// @Tags     orders
// @Produce  json
// @Param    id path string true "order id"
// @Success  200 {object} map[string]bool
// @Failure  500 {object} map[string]string
// @Router   /orders/{id} [delete]
func (g *Gateway) deleteOrder(c *gin.Context) {
	if err := g.orders.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, storeError(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// orderAnalytics godoc
// @Summary  Order count, revenue and status breakdown
// @Tags     analytics
// @Produce  json
// @Param    userId query string false "restrict to one user"
// @Success  200 {object} models.OrderAnalytics
// @Failure  500 {object} map[string]string
// @Router   /analytics/orders [get]
func (g *Gateway) orderAnalytics(c *gin.Context) {
	var (
		orders []models.Order
		err    error
	)
	if userID := c.Query("userId"); userID != "" {
		orders, err = g.orders.List(c.Request.Context(), userID)
	} else {
		orders, err = g.orders.All(c.Request.Context())
	}
	if err != nil {
		fail(c, storeError(err))
		return
	}

	c.JSON(http.StatusOK, models.SummarizeOrders(orders))
}
