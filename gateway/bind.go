package gateway

import (
	"errors"
	"io"

	"github.com/frizzly/api/pkg/models"
	"github.com/gin-gonic/gin"
)

// bindBody decodes the JSON body into obj. An absent body leaves obj
// untouched so required-field checks report what is missing.
func bindBody(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindJSON(obj); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return validationError(&models.InvalidFieldError{Field: "body", Reason: err.Error()})
	}
	return nil
}
