package httpserver

import (
	"context"
	"log"
	"net/http"
	"strconv"

	"storefront-api/internal/domain"
	productrepo "storefront-api/internal/repository/product"
	productsvc "storefront-api/internal/service/product"
	"github.com/gin-gonic/gin"
)

type ProductService interface {
	List(ctx context.Context, in productrepo.ListInput) (*productsvc.ListResult, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	ByCategory(ctx context.Context, category string) ([]domain.Product, error)
	HotAndNew(ctx context.Context) ([]domain.Product, error)
	Evergreen(ctx context.Context) ([]domain.Product, error)
	AddRating(ctx context.Context, productID, userID string, rating int, review string) error
}

type productHandler struct {
	svc    ProductService
	logger *log.Logger
}

type addRatingRequest struct {
	UserID string `json:"userId"`
	Rating int    `json:"rating"`
	Review string `json:"review"`
}

func (h *productHandler) list(c *gin.Context) {
	in := productrepo.ListInput{
		Category: c.Query("category"),
		Sort:     c.Query("sort"),
	}
	in.Page, _ = strconv.Atoi(c.Query("page"))
	in.Limit, _ = strconv.Atoi(c.Query("limit"))

	result, err := h.svc.List(c.Request.Context(), in)
	if err != nil {
		respondError(c, h.logger, err, "product not found")
		return
	}
	c.JSON(http.StatusOK, result)
}

func (h *productHandler) get(c *gin.Context) {
	p, err := h.svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, h.logger, err, "product not found")
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *productHandler) byCategory(c *gin.Context) {
	products, err := h.svc.ByCategory(c.Request.Context(), c.Param("category"))
	if err != nil {
		respondError(c, h.logger, err, "product not found")
		return
	}
	if products == nil {
		products = []domain.Product{}
	}
	c.JSON(http.StatusOK, products)
}

func (h *productHandler) hotAndNew(c *gin.Context) {
	products, err := h.svc.HotAndNew(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err, "product not found")
		return
	}
	if products == nil {
		products = []domain.Product{}
	}
	c.JSON(http.StatusOK, products)
}

func (h *productHandler) evergreen(c *gin.Context) {
	products, err := h.svc.Evergreen(c.Request.Context())
	if err != nil {
		respondError(c, h.logger, err, "product not found")
		return
	}
	if products == nil {
		products = []domain.Product{}
	}
	c.JSON(http.StatusOK, products)
}

func (h *productHandler) addRating(c *gin.Context) {
	var in addRatingRequest
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}
	if err := h.svc.AddRating(c.Request.Context(), c.Param("id"), in.UserID, in.Rating, in.Review); err != nil {
		respondError(c, h.logger, err, "product not found")
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "rating added"})
}
