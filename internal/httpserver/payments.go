package httpserver

import (
	"net/http"

	"foodnet/internal/payment"

	"github.com/gin-gonic/gin"
)

func payOrderHandler(payments paymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		region := regionFrom(c)
		buyer := userFrom(c)
		session, err := payments.PayOrder(c.Request.Context(), region.ID, *buyer, c.Param("orderId"))
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, session)
	}
}

// paymentNotificationHandler receives the gateway's status callbacks.
// The payload is signed, so the route carries no bearer auth.
func paymentNotificationHandler(payments paymentService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var n payment.Notification
		if err := c.ShouldBindJSON(&n); err != nil {
			c.JSON(http.StatusBadRequest, errorBody("invalid notification"))
			return
		}
		region := regionFrom(c)
		if err := payments.HandleNotification(c.Request.Context(), region.ID, n); err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
