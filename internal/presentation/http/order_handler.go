package httppresentation

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	apporder "github.com/floramart/floramart/internal/application/order"
	domainorder "github.com/floramart/floramart/internal/domain/order"
)

type createOrderRequest struct {
	PhoneNumber    string          `json:"phone_number" binding:"required"`
	PaymentMethod  string          `json:"payment_method" binding:"required"`
	DeliveryMethod string          `json:"delivery_method" binding:"required"`
	ShippingFee    decimal.Decimal `json:"shipping_fee"`
	AddressID      string          `json:"address_id" binding:"required"`
	VoucherGrantID string          `json:"voucher_grant_id"`
}

type orderDetailResponse struct {
	ID        string `json:"id"`
	FlowerID  string `json:"flower_id"`
	UnitPrice string `json:"unit_price"`
	Quantity  int    `json:"quantity"`
}

type orderResponse struct {
	OrderID        string                `json:"order_id"`
	PaymentStatus  string                `json:"payment_status"`
	Subtotal       string                `json:"subtotal"`
	ShippingFee    string                `json:"shipping_fee"`
	Discount       string                `json:"discount"`
	Total          string                `json:"total"`
	Details        []orderDetailResponse `json:"details"`
	PaymentURL     string                `json:"payment_url,omitempty"`
	VoucherGrantID string                `json:"voucher_grant_id,omitempty"`
}

func toOrderResponse(o *domainorder.Order, paymentURL string) orderResponse {
	details := make([]orderDetailResponse, 0, len(o.Details))
	for _, d := range o.Details {
		details = append(details, orderDetailResponse{
			ID:        d.ID,
			FlowerID:  d.FlowerID,
			UnitPrice: d.UnitPrice.String(),
			Quantity:  d.Quantity,
		})
	}
	return orderResponse{
		OrderID:        o.ID,
		PaymentStatus:  string(o.PaymentStatus),
		Subtotal:       o.Subtotal.String(),
		ShippingFee:    o.ShippingFee.String(),
		Discount:       o.Discount.String(),
		Total:          o.Total.String(),
		Details:        details,
		PaymentURL:     paymentURL,
		VoucherGrantID: o.VoucherGrantID,
	}
}

func (s *Server) handleCreateOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	result, err := s.orders.CreateOrder(c.Request.Context(), apporder.CreateOrderInput{
		UserID:         userID(c),
		PhoneNumber:    req.PhoneNumber,
		PaymentMethod:  req.PaymentMethod,
		DeliveryMethod: req.DeliveryMethod,
		AddressID:      req.AddressID,
		VoucherGrantID: req.VoucherGrantID,
		ShippingFee:    req.ShippingFee,
		ClientIP:       c.ClientIP(),
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, toOrderResponse(result.Order, result.PaymentURL))
}

func (s *Server) handleGetOrder(c *gin.Context) {
	o, err := s.orders.GetOrder(c.Request.Context(), c.Param("id"), userID(c))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toOrderResponse(o, ""))
}

func (s *Server) handleListOrders(c *gin.Context) {
	orders, err := s.orders.ListOrders(c.Request.Context(), userID(c))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	out := make([]orderResponse, 0, len(orders))
	for i := range orders {
		out = append(out, toOrderResponse(&orders[i], ""))
	}
	c.JSON(http.StatusOK, out)
}
