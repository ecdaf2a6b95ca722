package httpserver

import (
	"net/http"

	"foodnet/internal/domain"

	"github.com/gin-gonic/gin"
)

// loadOwnOrder fetches the order and verifies the requester may see
// it: the buyer always can, a seller or courier only via their role
// endpoints.
func loadOwnOrder(c *gin.Context, orders orderStore) *domain.Order {
	region := regionFrom(c)
	u := userFrom(c)
	order, err := orders.GetByID(c.Request.Context(), region.ID, c.Param("orderId"))
	if err != nil {
		writeError(c, err)
		return nil
	}
	if order.BuyerID != u.ID && !u.HasRole(domain.RoleSeller) {
		c.JSON(http.StatusNotFound, errorBody("not found"))
		return nil
	}
	return order
}

func getOrderHandler(orders orderStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if order := loadOwnOrder(c, orders); order != nil {
			c.JSON(http.StatusOK, order)
		}
	}
}

func processOrderHandler(orders orderStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		region := regionFrom(c)
		order, err := orders.GetByID(c.Request.Context(), region.ID, c.Param("orderId"))
		if err != nil {
			writeError(c, err)
			return
		}
		if order.Status == domain.OrderStatusCart {
			writeError(c, domain.StateConflict("cart cannot be processed"))
			return
		}
		if err := orders.SetProcessed(c.Request.Context(), region.ID, order.ID); err != nil {
			writeError(c, err)
			return
		}
		order.Processed = true
		c.JSON(http.StatusOK, order)
	}
}

func invoiceHandler(orders orderStore, invoices invoiceRenderer) gin.HandlerFunc {
	return pdfHandler(orders, func(order *domain.Order, region *domain.Region, buyer *domain.User) ([]byte, error) {
		return invoices.Invoice(order, region, buyer)
	}, "invoice")
}

func deliveryNoteHandler(orders orderStore, invoices invoiceRenderer) gin.HandlerFunc {
	return pdfHandler(orders, func(order *domain.Order, region *domain.Region, buyer *domain.User) ([]byte, error) {
		return invoices.DeliveryNote(order, region, buyer)
	}, "delivery-note")
}

func pdfHandler(orders orderStore, render func(*domain.Order, *domain.Region, *domain.User) ([]byte, error), name string) gin.HandlerFunc {
	return func(c *gin.Context) {
		order := loadOwnOrder(c, orders)
		if order == nil {
			return
		}
		// Documents carry the buyer's details, so only the buyer gets them.
		if order.BuyerID != userFrom(c).ID {
			c.JSON(http.StatusNotFound, errorBody("not found"))
			return
		}
		if order.Status == domain.OrderStatusCart {
			writeError(c, domain.StateConflict("no documents for a cart"))
			return
		}
		pdf, err := render(order, regionFrom(c), userFrom(c))
		if err != nil {
			writeError(c, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="`+name+`-`+order.ID+`.pdf"`)
		c.Data(http.StatusOK, "application/pdf", pdf)
	}
}
