package httpserver

import (
	"context"
	"log"
	"net/http"

	"storefront-api/internal/domain"
	"github.com/gin-gonic/gin"
)

type CartService interface {
	Get(ctx context.Context, userID string) (*domain.Cart, error)
	AddItem(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error)
	UpdateItemQuantity(ctx context.Context, userID, productID string, quantity int) (*domain.Cart, error)
	RemoveItem(ctx context.Context, userID, productID string) (*domain.Cart, error)
	Clear(ctx context.Context, userID string) error
}

type cartHandler struct {
	svc    CartService
	logger *log.Logger
}

type addItemRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

func (h *cartHandler) get(c *gin.Context) {
	cart, err := h.svc.Get(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, h.logger, err, "cart not found")
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *cartHandler) addItem(c *gin.Context) {
	var in addItemRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}
	cart, err := h.svc.AddItem(c.Request.Context(), c.Param("userId"), in.ProductID, in.Quantity)
	if err != nil {
		respondError(c, h.logger, err, "product not found")
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *cartHandler) updateItem(c *gin.Context) {
	var in updateItemRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}
	cart, err := h.svc.UpdateItemQuantity(c.Request.Context(), c.Param("userId"), c.Param("productId"), in.Quantity)
	if err != nil {
		respondError(c, h.logger, err, "item not found in cart")
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *cartHandler) removeItem(c *gin.Context) {
	cart, err := h.svc.RemoveItem(c.Request.Context(), c.Param("userId"), c.Param("productId"))
	if err != nil {
		respondError(c, h.logger, err, "cart not found")
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *cartHandler) clear(c *gin.Context) {
	if err := h.svc.Clear(c.Request.Context(), c.Param("userId")); err != nil {
		respondError(c, h.logger, err, "cart not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "cart cleared"})
}
