package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"marketplace-backend/middleware"
	"marketplace-backend/models"
	apperrors "marketplace-backend/pkg/errors"
)

// ICartService is the command surface the controller needs.
type ICartService interface {
	Get(ctx context.Context, userID string) models.Cart
	Add(ctx context.Context, userID string, svc models.Service) models.Cart
	SetQuantity(ctx context.Context, userID, serviceID string, quantity int) models.Cart
	Remove(ctx context.Context, userID, serviceID string) models.Cart
	Clear(ctx context.Context, userID string) models.Cart
}

// IServiceLookup resolves a catalog listing at add-to-cart time. This is the
// single point where a cart line's price gets captured.
type IServiceLookup interface {
	Get(ctx context.Context, id string) (*models.Service, error)
}

// ICheckoutService submits the purchase.
type ICheckoutService interface {
	Purchase(ctx context.Context, identity *models.Identity) (*models.PurchaseConfirmation, error)
}

type CartController struct {
	carts    ICartService
	catalog  IServiceLookup
	checkout ICheckoutService
}

func NewCartController(carts ICartService, catalog IServiceLookup, checkout ICheckoutService) *CartController {
	return &CartController{carts: carts, catalog: catalog, checkout: checkout}
}

type AddItemRequest struct {
	ServiceID string `json:"service_id" binding:"required"`
}

type SetQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// cartPayload is the wire shape shared by every cart response.
func cartPayload(cart models.Cart) gin.H {
	return gin.H{
		"cart":       cart,
		"item_count": cart.ItemCount(),
		"subtotal":   cart.Subtotal(),
	}
}

// GetCart returns the current cart for the signed-in user.
func (cc *CartController) GetCart(c *gin.Context) {
	identity := middleware.GetIdentity(c)
	cart := cc.carts.Get(c.Request.Context(), identity.UserID)
	c.JSON(http.StatusOK, cartPayload(cart))
}

// AddItem adds one unit of a catalog service to the cart.
func (cc *CartController) AddItem(c *gin.Context) {
	identity := middleware.GetIdentity(c)

	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "service_id is required"})
		return
	}

	svc, err := cc.catalog.Get(c.Request.Context(), req.ServiceID)
	if err != nil {
		respondError(c, err)
		return
	}

	cart := cc.carts.Add(c.Request.Context(), identity.UserID, *svc)
	c.JSON(http.StatusOK, cartPayload(cart))
}

// SetQuantity replaces a line's quantity; zero or less removes the line.
func (cc *CartController) SetQuantity(c *gin.Context) {
	identity := middleware.GetIdentity(c)
	serviceID := c.Param("service_id")

	var req SetQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "quantity is required"})
		return
	}

	cart := cc.carts.SetQuantity(c.Request.Context(), identity.UserID, serviceID, req.Quantity)
	c.JSON(http.StatusOK, cartPayload(cart))
}

// RemoveItem removes a specific item from the cart.
func (cc *CartController) RemoveItem(c *gin.Context) {
	identity := middleware.GetIdentity(c)
	serviceID := c.Param("service_id")

	cart := cc.carts.Remove(c.Request.Context(), identity.UserID, serviceID)
	c.JSON(http.StatusOK, cartPayload(cart))
}

// ClearCart removes all items from the cart.
func (cc *CartController) ClearCart(c *gin.Context) {
	identity := middleware.GetIdentity(c)
	cart := cc.carts.Clear(c.Request.Context(), identity.UserID)
	c.JSON(http.StatusOK, cartPayload(cart))
}

// Checkout submits the cart as one purchase. An unauthenticated caller gets
// a redirect hint to the sign-in view instead of a submission attempt.
func (cc *CartController) Checkout(c *gin.Context) {
	identity := middleware.GetIdentity(c)

	confirmation, err := cc.checkout.Purchase(c.Request.Context(), identity)
	if err != nil {
		if err == apperrors.ErrNotAuthenticated {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error":       apperrors.ErrNotAuthenticated.Message,
				"redirect_to": "auth",
			})
			return
		}
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, confirmation)
}
