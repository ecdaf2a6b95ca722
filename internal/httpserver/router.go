package httpserver

import (
	"context"
	"errors"
	"log"

	"foodnet/internal/domain"
	"foodnet/internal/payment"
	cartsvc "foodnet/internal/service/cart"
	checkoutsvc "foodnet/internal/service/checkout"
	usersvc "foodnet/internal/service/user"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

type regionRepo interface {
	GetByKey(ctx context.Context, key string) (*domain.Region, error)
}

type userService interface {
	Signup(ctx context.Context, regionID string, in usersvc.SignupInput) (*domain.User, error)
	Login(ctx context.Context, regionID, email, password string) (*domain.User, string, string, error)
	LookupByToken(ctx context.Context, regionID, token string) (*domain.User, error)
	AccessTTLSeconds() int
}

type productRepo interface {
	ListByRegion(ctx context.Context, regionID string) ([]domain.Product, error)
}

type cartService interface {
	Get(ctx context.Context, regionID, buyerID string) (*domain.Order, error)
	Update(ctx context.Context, regionID, buyerID string, in cartsvc.UpdateInput) (*domain.Order, error)
}

type checkoutService interface {
	Checkout(ctx context.Context, regionID string, buyer domain.User, in checkoutsvc.Input) (*domain.Order, error)
}

type orderStore interface {
	GetByID(ctx context.Context, regionID, id string) (*domain.Order, error)
	SetProcessed(ctx context.Context, regionID, orderID string) error
}

type paymentService interface {
	PayOrder(ctx context.Context, regionID string, buyer domain.User, orderID string) (*payment.Session, error)
	HandleNotification(ctx context.Context, regionID string, n payment.Notification) error
}

type jobService interface {
	ListOpen(ctx context.Context, regionID string) ([]domain.Job, error)
	ListMine(ctx context.Context, regionID, userID string) ([]domain.Job, error)
	Claim(ctx context.Context, regionID, jobID, userID string) (*domain.Job, error)
	Unclaim(ctx context.Context, regionID, jobID, userID string) (*domain.Job, error)
}

type invoiceRenderer interface {
	Invoice(order *domain.Order, region *domain.Region, buyer *domain.User) ([]byte, error)
	DeliveryNote(order *domain.Order, region *domain.Region, buyer *domain.User) ([]byte, error)
}

// Deps bundles the collaborators the router needs.
type Deps struct {
	Regions  regionRepo
	Users    userService
	Products productRepo
	Cart     cartService
	Checkout checkoutService
	Orders   orderStore
	Payments paymentService
	Jobs     jobService
	Invoices invoiceRenderer
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	if deps.Regions == nil {
		return nil, errors.New("httpserver: region repository is required")
	}
	if deps.Users == nil {
		return nil, errors.New("httpserver: user service is required")
	}

	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:    []string{"Authorization", "Content-Type"},
	}))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	oauth := router.Group("/oauth/:regionKey")
	oauth.Use(regionMiddleware(deps.Regions))
	oauth.POST("/token", tokenHandler(deps.Users))

	api := router.Group("/:regionKey")
	api.Use(regionMiddleware(deps.Regions))
	api.POST("/me/signup", signupHandler(deps.Users))
	api.GET("/products", listProductsHandler(deps.Products))
	api.POST("/payments/notifications", paymentNotificationHandler(deps.Payments))

	authed := api.Group("")
	authed.Use(authMiddleware(deps.Users))
	authed.GET("/me", meHandler)
	authed.GET("/me/cart", getCartHandler(deps.Cart))
	authed.POST("/me/cart", updateCartHandler(deps.Cart))
	authed.POST("/me/checkout", checkoutHandler(deps.Checkout))
	authed.GET("/orders/:orderId", getOrderHandler(deps.Orders))
	authed.GET("/orders/:orderId/invoice", invoiceHandler(deps.Orders, deps.Invoices))
	authed.GET("/orders/:orderId/delivery-note", deliveryNoteHandler(deps.Orders, deps.Invoices))
	authed.POST("/orders/:orderId/pay", payOrderHandler(deps.Payments))
	authed.POST("/orders/:orderId/process", requireRole(domain.RoleSeller), processOrderHandler(deps.Orders))

	jobs := authed.Group("/jobs")
	jobs.Use(requireRole(domain.RoleCourier))
	jobs.GET("", listJobsHandler(deps.Jobs))
	jobs.GET("/mine", listMyJobsHandler(deps.Jobs))
	jobs.POST("/:jobId/claim", claimJobHandler(deps.Jobs))
	jobs.POST("/:jobId/unclaim", unclaimJobHandler(deps.Jobs))

	return router, nil
}
