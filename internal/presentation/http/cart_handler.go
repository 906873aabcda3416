package httppresentation

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appcart "github.com/floramart/floramart/internal/application/cart"
	domaincart "github.com/floramart/floramart/internal/domain/cart"
)

type addCartItemRequest struct {
	FlowerID string `json:"flower_id" binding:"required"`
	Quantity int    `json:"quantity" binding:"required"`
}

type updateCartItemRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

type cartItemResponse struct {
	ID        string `json:"id"`
	FlowerID  string `json:"flower_id"`
	Quantity  int    `json:"quantity"`
	UnitPrice string `json:"unit_price"`
	LineTotal string `json:"line_total"`
}

func toCartItemResponse(item *domaincart.Item) cartItemResponse {
	return cartItemResponse{
		ID:        item.ID,
		FlowerID:  item.FlowerID,
		Quantity:  item.Quantity,
		UnitPrice: item.UnitPrice.String(),
		LineTotal: item.LineTotal().String(),
	}
}

func (s *Server) handleGetCart(c *gin.Context) {
	items, err := s.carts.List(c.Request.Context(), userID(c))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	out := make([]cartItemResponse, 0, len(items))
	for i := range items {
		out = append(out, toCartItemResponse(&items[i]))
	}
	c.JSON(http.StatusOK, out)
}

func (s *Server) handleAddCartItem(c *gin.Context) {
	var req addCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	item, err := s.carts.AddItem(c.Request.Context(), appcart.AddItemInput{
		UserID:   userID(c),
		FlowerID: req.FlowerID,
		Quantity: req.Quantity,
	})
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, toCartItemResponse(item))
}

func (s *Server) handleUpdateCartItem(c *gin.Context) {
	var req updateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	item, err := s.carts.UpdateQuantity(c.Request.Context(), userID(c), c.Param("id"), req.Quantity)
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, toCartItemResponse(item))
}

func (s *Server) handleRemoveCartItem(c *gin.Context) {
	if err := s.carts.RemoveItem(c.Request.Context(), userID(c), c.Param("id")); err != nil {
		writeDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
