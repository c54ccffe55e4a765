package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type withdrawalRequest struct {
	Amount        string `json:"amount" binding:"required"`
	Method        string `json:"method" binding:"required"`
	WalletAddress string `json:"walletAddress" binding:"required"`
}

func (s *Server) handleRequestWithdrawal(c *gin.Context) {
	var req withdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "amount, method and walletAddress are required")
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || !amount.IsPositive() {
		respondBadRequest(c, "amount must be a positive decimal")
		return
	}

	withdrawal, err := s.withdrawals.Request(c.Request.Context(), currentUserID(c), amount, req.Method, req.WalletAddress)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, withdrawal)
}

func (s *Server) handleListWithdrawals(c *gin.Context) {
	withdrawals, err := s.withdrawals.ListForUser(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, withdrawals)
}

func (s *Server) handleGetWithdrawal(c *gin.Context) {
	withdrawal, err := s.withdrawals.GetForUser(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, withdrawal)
}
