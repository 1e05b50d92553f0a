package httpserver

import (
	"log"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Deps carries the services the handlers need.
type Deps struct {
	AddressSvc  AddressService
	CartSvc     CartService
	OrderSvc    OrderService
	CheckoutSvc CheckoutService
	ProductSvc  ProductService
	WishlistSvc WishlistService
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps, corsOrigins []string) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if len(corsOrigins) == 1 && corsOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = corsOrigins
	}
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	api := router.Group("/api")

	ah := &addressHandler{svc: deps.AddressSvc, logger: logger}
	api.POST("/addresses", ah.create)
	api.GET("/addresses/user/:userId", ah.listByUser)
	api.PUT("/addresses/:id", ah.update)
	api.DELETE("/addresses/:id", ah.remove)
	api.PUT("/addresses/:id/set-default", ah.setDefault)

	ch := &cartHandler{svc: deps.CartSvc, logger: logger}
	api.GET("/cart/:userId", ch.get)
	api.DELETE("/cart/:userId", ch.clear)
	api.POST("/cart/:userId/items", ch.addItem)
	api.PUT("/cart/:userId/items/:productId", ch.updateItem)
	api.DELETE("/cart/:userId/items/:productId", ch.removeItem)

	oh := &orderHandler{svc: deps.OrderSvc, checkout: deps.CheckoutSvc, logger: logger}
	api.POST("/orders", oh.place)
	api.GET("/orders/user/:userId", oh.listByUser)
	api.GET("/orders/:id", oh.get)
	api.PUT("/orders/:id/status", oh.setStatus)
	api.PUT("/orders/:id/cancel", oh.cancel)

	ph := &productHandler{svc: deps.ProductSvc, logger: logger}
	api.GET("/products", ph.list)
	api.GET("/products/:id", ph.get)
	api.GET("/products/category/:category", ph.byCategory)
	api.GET("/products/filter/hot-and-new", ph.hotAndNew)
	api.GET("/products/filter/evergreen", ph.evergreen)
	api.POST("/products/:id/ratings", ph.addRating)

	wh := &wishlistHandler{svc: deps.WishlistSvc, logger: logger}
	api.GET("/wishlist/:userId", wh.get)
	api.POST("/wishlist/:userId/add", wh.add)
	api.DELETE("/wishlist/:userId/remove/:productId", wh.remove)

	return router
}
