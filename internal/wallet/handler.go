package wallet

import (
	"errors"
	"net/http"

	"coachslot/internal/auth"
	"coachslot/internal/metrics"

	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"
)

type Handler struct {
	service Service
}

func NewHandler(db *sqlx.DB) *Handler {
	return &Handler{
		service: NewService(NewRepository(db)),
	}
}

func (h *Handler) Service() Service {
	return h.service
}

// GetWallet godoc
// @Summary      Get wallet
// @Description  Returns the authenticated user's wallet, creating it on first access.
// @Tags         wallet
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  Wallet
// @Failure      500  {object}  gin.H
// @Router       /wallet [get]
func (h *Handler) GetWallet(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	w, err := h.service.GetWallet(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch wallet"})
		return
	}

	c.JSON(http.StatusOK, w)
}

// TopUp godoc
// @Summary      Top up wallet
// @Description  Adds funds to the authenticated user's wallet.
// @Tags         wallet
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      TopUpRequest  true  "Amount in cents"
// @Success      200      {object}  Wallet
// @Failure      400      {object}  gin.H
// @Failure      500      {object}  gin.H
// @Router       /wallet/topup [post]
func (h *Handler) TopUp(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	var req TopUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	w, err := h.service.TopUp(c.Request.Context(), userID, req.AmountCents)
	if err != nil {
		if errors.Is(err, ErrInsufficientBalance) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to top up wallet"})
		return
	}

	metrics.RecordWalletTopUp()

	c.JSON(http.StatusOK, w)
}

// GetTransactions godoc
// @Summary      List wallet transactions
// @Description  Returns the authenticated user's transaction history, newest first.
// @Tags         wallet
// @Security     BearerAuth
// @Produce      json
// @Success      200  {array}   Transaction
// @Failure      500  {object}  gin.H
// @Router       /wallet/transactions [get]
func (h *Handler) GetTransactions(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	txs, err := h.service.GetTransactions(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch transactions"})
		return
	}

	if txs == nil {
		txs = []Transaction{}
	}

	c.JSON(http.StatusOK, txs)
}
