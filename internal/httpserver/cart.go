package httpserver

import (
	"errors"
	"net/http"

	"foodnet/internal/domain"
	cartsvc "foodnet/internal/service/cart"
	checkoutsvc "foodnet/internal/service/checkout"

	"github.com/gin-gonic/gin"
)

func getCartHandler(carts cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		region := regionFrom(c)
		buyer := userFrom(c)
		cart, err := carts.Get(c.Request.Context(), region.ID, buyer.ID)
		if errors.Is(err, domain.ErrNotFound) {
			// No active cart yet; present an empty one.
			c.JSON(http.StatusOK, domain.Order{
				BuyerID: buyer.ID,
				Status:  domain.OrderStatusCart,
				Items:   []domain.OrderItem{},
			})
			return
		}
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

func updateCartHandler(carts cartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in cartsvc.UpdateInput
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, errorBody("invalid request body"))
			return
		}
		region := regionFrom(c)
		buyer := userFrom(c)
		cart, err := carts.Update(c.Request.Context(), region.ID, buyer.ID, in)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusOK, cart)
	}
}

func checkoutHandler(checkout checkoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var in checkoutsvc.Input
		if err := c.ShouldBindJSON(&in); err != nil {
			c.JSON(http.StatusBadRequest, errorBody("invalid request body"))
			return
		}
		region := regionFrom(c)
		buyer := userFrom(c)
		order, err := checkout.Checkout(c.Request.Context(), region.ID, *buyer, in)
		if err != nil {
			writeError(c, err)
			return
		}
		c.JSON(http.StatusCreated, order)
	}
}
