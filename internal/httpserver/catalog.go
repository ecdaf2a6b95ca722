package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func listProductsHandler(products productRepo) gin.HandlerFunc {
	return func(c *gin.Context) {
		region := regionFrom(c)
		list, err := products.ListByRegion(c.Request.Context(), region.ID)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"results": list, "total": len(list)})
	}
}
