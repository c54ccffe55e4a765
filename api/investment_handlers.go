package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type createInvestmentRequest struct {
	PackageName string `json:"packageName" binding:"required"`
	Amount      string `json:"amount" binding:"required"`
	DailyReturn string `json:"dailyReturn"`
	Duration    string `json:"duration"`
}

func (s *Server) handleCreateInvestment(c *gin.Context) {
	var req createInvestmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "packageName and amount are required")
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || !amount.IsPositive() {
		respondBadRequest(c, "amount must be a positive decimal")
		return
	}

	dailyReturn := decimal.Zero
	if req.DailyReturn != "" {
		if dailyReturn, err = decimal.NewFromString(req.DailyReturn); err != nil {
			respondBadRequest(c, "dailyReturn must be a decimal")
			return
		}
	}

	investment, err := s.investments.Create(c.Request.Context(), currentUserID(c), req.PackageName, amount, dailyReturn, req.Duration)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, investment)
}

func (s *Server) handleListInvestments(c *gin.Context) {
	investments, err := s.investments.ListForUser(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, investments)
}

func (s *Server) handleListTransactions(c *gin.Context) {
	transactions, err := s.transactions.ListForUser(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, transactions)
}
