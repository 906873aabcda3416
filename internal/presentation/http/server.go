package httppresentation

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appcart "github.com/floramart/floramart/internal/application/cart"
	apporder "github.com/floramart/floramart/internal/application/order"
	apppayment "github.com/floramart/floramart/internal/application/payment"
	domaincart "github.com/floramart/floramart/internal/domain/cart"
	domaincatalog "github.com/floramart/floramart/internal/domain/catalog"
	domainorder "github.com/floramart/floramart/internal/domain/order"
	"github.com/floramart/floramart/internal/pkg/logging"
)

type Server struct {
	engine   *gin.Engine
	orders   *apporder.Service
	payments *apppayment.Service
	carts    *appcart.Service
}

func NewServer(
	orders *apporder.Service,
	payments *apppayment.Service,
	carts *appcart.Service,
	logger *zap.Logger,
	metrics *Metrics,
	tokenKey string,
	metricsHandler http.Handler,
) *Server {
	engine := gin.New()
	engine.Use(gin.Recovery(), Trace(), RequestLogger(logger), Measure(metrics))

	s := &Server{
		engine:   engine,
		orders:   orders,
		payments: payments,
		carts:    carts,
	}

	engine.GET("/health", func(c *gin.Context) { c.String(http.StatusOK, "ok") })
	if metricsHandler != nil {
		engine.GET("/metrics", gin.WrapH(metricsHandler))
	}

	v1 := engine.Group("/api/v1")
	// The gateway calls back without credentials; authenticity comes from the
	// secure hash, not from a bearer token.
	v1.GET("/payment/vnpay-return", s.handlePaymentReturn)

	authed := v1.Group("", AuthRequired(tokenKey))
	{
		authed.POST("/orders", s.handleCreateOrder)
		authed.GET("/orders", s.handleListOrders)
		authed.GET("/orders/:id", s.handleGetOrder)

		authed.GET("/cart", s.handleGetCart)
		authed.POST("/cart/items", s.handleAddCartItem)
		authed.PUT("/cart/items/:id", s.handleUpdateCartItem)
		authed.DELETE("/cart/items/:id", s.handleRemoveCartItem)
	}

	return s
}

func (s *Server) Engine() *gin.Engine { return s.engine }

// writeDomainError maps domain sentinels onto HTTP statuses. Unexpected
// errors surface as a generic 500 with the detail logged server-side only.
func writeDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainorder.ErrNotFound),
		errors.Is(err, domaincart.ErrNotFound),
		errors.Is(err, domaincatalog.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domaincatalog.ErrInsufficientStock):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, apporder.ErrInvalidAddress),
		errors.Is(err, domaincart.ErrEmpty),
		errors.Is(err, domaincart.ErrInvalidQuantity),
		errors.Is(err, domaincatalog.ErrUnavailable),
		errors.Is(err, domaincatalog.ErrInvalidQuantity),
		errors.Is(err, domainorder.ErrInvalidQuantity),
		errors.Is(err, domainorder.ErrInvalidAmount):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		logging.FromContext(c.Request.Context()).Error("request_failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
