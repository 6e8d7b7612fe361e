package gateway

import (
	"net/http"

	"github.com/frizzly/api/pkg/models"
	"github.com/gin-gonic/gin"
)

// listProducts godoc
// @Summary  List every product
// @Tags     products
// @Produce  json
// @Success  200 {object} map[string][]models.Product
// @Failure  500 {object} map[string]string
// @Router   /products [get]
func (g *Gateway) listProducts(c *gin.Context) {
	products, err := g.products.List(c.Request.Context())
	if err != nil {
		fail(c, storeError(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"products": products})
}

// createProduct godoc
// @Summary  Create a product
// @Tags     products
// @Accept   json
// @Produce  json
// @Param    product body models.CreateProductRequest false "product"
// @Success  201 {object} map[string]interface{}
// @Failure  500 {object} map[string]string
// @Router   /products [post]
func (g *Gateway) createProduct(c *gin.Context) {
	var req models.CreateProductRequest
	if err := bindBody(c, &req); err != nil {
		fail(c, err)
		return
	}

	id, err := g.products.Create(c.Request.Context(), req.Product())
	if err != nil {
		fail(c, storeError(err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":   true,
		"productId": id,
	})
}

// updateProduct godoc
// @Summary  Merge fields into a product
// @Tags     products
// @Accept   json
// @Produce  json
// @Param    id     path string                 true "product id"
// @Param    fields body map[string]interface{} true "fields to merge"
// @Success  200 {object} map[string]bool
// @Failure  400 {object} map[string]string
// @Failure  500 {object} map[string]string
// @Router   /products/{id} [put]
func (g *Gateway) updateProduct(c *gin.Context) {
	payload := map[string]interface{}{}
	if err := bindBody(c, &payload); err != nil {
		fail(c, err)
		return
	}

	patch, err := models.ProductPatch(payload)
	if err != nil {
		fail(c, validationError(err))
		return
	}

	if err := g.products.Update(c.Request.Context(), c.Param("id"), patch); err != nil {
		fail(c, storeError(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}

// deleteProduct godoc
// @Summary  Delete a product
// @Tags     products
// @Produce  json
// @Param    id path string true "product id"
// @Success  200 {object} map[string]bool
// @Failure  500 {object} map[string]string
// @Router   /products/{id} [delete]
func (g *Gateway) deleteProduct(c *gin.Context) {
	if err := g.products.Delete(c.Request.Context(), c.Param("id")); err != nil {
		fail(c, storeError(err))
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
