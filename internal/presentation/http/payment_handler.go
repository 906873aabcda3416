package httppresentation

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// handlePaymentReturn receives the gateway's signed redirect. The response is
// a plain status string; the gateway cannot act on structured errors.
func (s *Server) handlePaymentReturn(c *gin.Context) {
	status, err := s.payments.Reconcile(c.Request.Context(), c.Request.URL.Query())
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.String(http.StatusOK, string(status))
}
