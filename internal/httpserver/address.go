package httpserver

import (
	"context"
	"log"
	"net/http"

	"storefront-api/internal/domain"
	addresssvc "storefront-api/internal/service/address"
	"github.com/gin-gonic/gin"
)

type AddressService interface {
	Create(ctx context.Context, in addresssvc.CreateInput) (*domain.Address, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Address, error)
	Update(ctx context.Context, id string, in addresssvc.UpdateInput) (*domain.Address, error)
	Delete(ctx context.Context, id string) error
	SetDefault(ctx context.Context, id string) (*domain.Address, error)
}

type addressHandler struct {
	svc    AddressService
	logger *log.Logger
}

func (h *addressHandler) create(c *gin.Context) {
	var in addresssvc.CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}
	addr, err := h.svc.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, h.logger, err, "address not found")
		return
	}
	c.JSON(http.StatusCreated, addr)
}

func (h *addressHandler) listByUser(c *gin.Context) {
	addrs, err := h.svc.ListByUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, h.logger, err, "address not found")
		return
	}
	if addrs == nil {
		addrs = []domain.Address{}
	}
	c.JSON(http.StatusOK, addrs)
}

func (h *addressHandler) update(c *gin.Context) {
	var in addresssvc.UpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}
	addr, err := h.svc.Update(c.Request.Context(), c.Param("id"), in)
	if err != nil {
		respondError(c, h.logger, err, "address not found")
		return
	}
	c.JSON(http.StatusOK, addr)
}

func (h *addressHandler) remove(c *gin.Context) {
	if err := h.svc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, h.logger, err, "address not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "address removed"})
}

func (h *addressHandler) setDefault(c *gin.Context) {
	addr, err := h.svc.SetDefault(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err, "address not found")
		return
	}
	c.JSON(http.StatusOK, addr)
}
