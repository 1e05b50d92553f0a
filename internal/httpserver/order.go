package httpserver

import (
	"context"
	"log"
	"net/http"

	"storefront-api/internal/domain"
	checkoutsvc "storefront-api/internal/service/checkout"
	"github.com/gin-gonic/gin"
)

type OrderService interface {
	GetByID(ctx context.Context, id string) (*domain.Order, error)
	ListByUser(ctx context.Context, userID string) ([]domain.Order, error)
	SetStatus(ctx context.Context, id, status string) (*domain.Order, error)
	Cancel(ctx context.Context, id string) (*domain.Order, error)
}

type CheckoutService interface {
	Place(ctx context.Context, in checkoutsvc.PlaceInput) (*domain.Order, error)
}

type orderHandler struct {
	svc      OrderService
	checkout CheckoutService
	logger   *log.Logger
}

type setStatusRequest struct {
	Status string `json:"status"`
}

func (h *orderHandler) place(c *gin.Context) {
	var in checkoutsvc.PlaceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}
	ord, err := h.checkout.Place(c.Request.Context(), in)
	if err != nil {
		respondError(c, h.logger, err, "order not found")
		return
	}
	c.JSON(http.StatusCreated, ord)
}

func (h *orderHandler) listByUser(c *gin.Context) {
	orders, err := h.svc.ListByUser(c.Request.Context(), c.Param("userId"))
	if err != nil {
		respondError(c, h.logger, err, "order not found")
		return
	}
	if orders == nil {
		orders = []domain.Order{}
	}
	c.JSON(http.StatusOK, orders)
}

func (h *orderHandler) get(c *gin.Context) {
	ord, err := h.svc.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err, "order not found")
		return
	}
	c.JSON(http.StatusOK, ord)
}

func (h *orderHandler) setStatus(c *gin.Context) {
	var in setStatusRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}
	ord, err := h.svc.SetStatus(c.Request.Context(), c.Param("id"), in.Status)
	if err != nil {
		respondError(c, h.logger, err, "order not found")
		return
	}
	c.JSON(http.StatusOK, ord)
}

func (h *orderHandler) cancel(c *gin.Context) {
	ord, err := h.svc.Cancel(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err, "order not found")
		return
	}
	c.JSON(http.StatusOK, ord)
}
