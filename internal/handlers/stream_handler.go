package handlers

import (
	"io"

	"github.com/gin-gonic/gin"

	"budgetbox/internal/live"
	"budgetbox/internal/models"
)

// StreamHandler serves live collection snapshots over server-sent events.
// Each connected client gets the current snapshot immediately, then a fresh
// one whenever the user's data changes.
type StreamHandler struct {
	transactionHub *live.Hub[models.Transaction]
	billHub        *live.Hub[models.Bill]
}

// NewStreamHandler creates a new StreamHandler
func NewStreamHandler(transactionHub *live.Hub[models.Transaction], billHub *live.Hub[models.Bill]) *StreamHandler {
	return &StreamHandler{
		transactionHub: transactionHub,
		billHub:        billHub,
	}
}

// StreamTransactions streams transaction snapshots
// @Summary     Stream transactions
// @Description Subscribe to live transaction snapshots over server-sent events
// @Tags        stream
// @Produce     text/event-stream
// @Security    BearerAuth
// @Success     200 {string} string "SSE stream of transaction snapshots"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /stream/transactions [get]
func (h *StreamHandler) StreamTransactions(c *gin.Context) {
	streamSnapshots(c, h.transactionHub)
}

// StreamBills streams bill snapshots
// @Summary     Stream bills
// @Description Subscribe to live bill snapshots over server-sent events
// @Tags        stream
// @Produce     text/event-stream
// @Security    BearerAuth
// @Success     200 {string} string "SSE stream of bill snapshots"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Failure     500 {object} ErrorResponse "Server error"
// @Router      /stream/bills [get]
func (h *StreamHandler) StreamBills(c *gin.Context) {
	streamSnapshots(c, h.billHub)
}

func streamSnapshots[T any](c *gin.Context, hub *live.Hub[T]) {
	userID, err := getUserID(c)
	if err != nil {
		respondWithError(c, err)
		return
	}

	sub, err := hub.Subscribe(userID)
	if err != nil {
		respondWithError(c, err)
		return
	}
	defer sub.Unsubscribe()

	c.Writer.Header().Set("Cache-Control", "no-cache")
	c.Writer.Header().Set("Connection", "keep-alive")

	ctx := c.Request.Context()
	c.Stream(func(w io.Writer) bool {
		select {
		case snapshot, ok := <-sub.Snapshots():
			if !ok {
				return false
			}
			c.SSEvent("snapshot", snapshot)
			return true
		case <-ctx.Done():
			return false
		}
	})
}
