package httpserver

import (
	"errors"
	"net/http"

	"storefront/internal/domain"
	ordersvc "storefront/internal/service/order"

	"github.com/gin-gonic/gin"
)

type cartRequest struct {
	Cart []domain.CartItem `json:"cart"`
	// Status is accepted for wire compatibility; the server decides the
	// written status from the endpoint, never from the client.
	Status string `json:"status"`
}

func saveCartHandler(svc orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req cartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cart payload"})
			return
		}

		claims := mustClaims(c)
		if _, err := svc.SaveOpenOrder(c.Request.Context(), claims.UserID, req.Cart); err != nil {
			if errors.Is(err, ordersvc.ErrEmptyCart) || errors.Is(err, ordersvc.ErrInvalidCart) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cart payload"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save cart"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart saved successfully"})
	}
}

func completeOrderHandler(svc orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req cartRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cart payload"})
			return
		}

		claims := mustClaims(c)
		if _, err := svc.CompleteOrder(c.Request.Context(), claims.UserID, req.Cart); err != nil {
			if errors.Is(err, ordersvc.ErrEmptyCart) || errors.Is(err, ordersvc.ErrInvalidCart) {
				c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid cart payload"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to complete and save order"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order completed and saved successfully"})
	}
}

func userOrdersHandler(svc orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := mustClaims(c)
		orders, err := svc.ListUserOrders(c.Request.Context(), claims.UserID)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching user orders"})
			return
		}
		if orders == nil {
			orders = []domain.Order{}
		}
		c.JSON(http.StatusOK, orders)
	}
}

func adminOrdersHandler(svc orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		orders, err := svc.ListAllOrders(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching orders"})
			return
		}
		if orders == nil {
			orders = []domain.Order{}
		}
		c.JSON(http.StatusOK, orders)
	}
}

func deleteOrdersHandler(svc orderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := svc.DeleteAllOrders(c.Request.Context()); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error deleting orders"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": `All orders with status "Ordered" have been deleted`})
	}
}
