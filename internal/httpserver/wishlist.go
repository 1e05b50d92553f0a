package httpserver

import (
	"context"
	"log"
	"net/http"

	"storefront-api/internal/domain"
	"github.com/gin-gonic/gin"
)

type WishlistService interface {
	Get(ctx context.Context, userID string) (*domain.Wishlist, error)
	Add(ctx context.Context, userID, productID string) (*domain.Wishlist, error)
	Remove(ctx context.Context, userID, productID string) (*domain.Wishlist, error)
}

type wishlistHandler struct {
	svc    WishlistService
	logger *log.Logger
}

type addWishlistRequest struct {
	ProductID string `json:"productId"`
}

func (h *wishlistHandler) get(c *gin.Context) {
	wl, err := h.svc.Get(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, h.logger, err, "wishlist not found")
		return
	}
	c.JSON(http.StatusOK, wl)
}

func (h *wishlistHandler) add(c *gin.Context) {
	var in addWishlistRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}
	wl, err := h.svc.Add(c.Request.Context(), c.Param("userId"), in.ProductID)
	if err != nil {
		respondError(c, h.logger, err, "product not found")
		return
	}
	c.JSON(http.StatusOK, wl)
}

func (h *wishlistHandler) remove(c *gin.Context) {
	wl, err := h.svc.Remove(c.Request.Context(), c.Param("userId"), c.Param("productId"))
	if err != nil {
		respondError(c, h.logger, err, "wishlist not found")
		return
	}
	c.JSON(http.StatusOK, wl)
}
