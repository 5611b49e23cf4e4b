package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"marketplace-backend/middleware"
	"marketplace-backend/services"
)

type OrderController struct {
	orders *services.OrderService
}

func NewOrderController(orders *services.OrderService) *OrderController {
	return &OrderController{orders: orders}
}

// History returns the buyer's paginated purchase history for the customer
// dashboard: owned services deduplicated, plus the receipt list.
func (oc *OrderController) History(c *gin.Context) {
	identity := middleware.GetIdentity(c)

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "10"))

	history, err := oc.orders.History(c.Request.Context(), identity, page, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, history)
}
