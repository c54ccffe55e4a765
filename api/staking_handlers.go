package api

import (
	"net/http"

	"inovatrust/domain/interfaces"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type connectWalletRequest struct {
	WalletAddress string `json:"walletAddress" binding:"required"`
}

type createStakeRequest struct {
	Amount        string  `json:"amount" binding:"required"`
	Currency      string  `json:"currency" binding:"required"`
	Network       string  `json:"network"`
	PeriodDays    string  `json:"periodDays" binding:"required"`
	WalletAddress string  `json:"walletAddress"`
	TxHash        *string `json:"txHash"`
}

func (s *Server) handleStakingPlans(c *gin.Context) {
	c.JSON(http.StatusOK, s.staking.Plans())
}

func (s *Server) handleStakingStatus(c *gin.Context) {
	status, err := s.staking.Status(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, status)
}

func (s *Server) handleReceivingAddresses(c *gin.Context) {
	addresses, err := s.staking.ReceivingAddresses(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, addresses)
}

func (s *Server) handleConnectWallet(c *gin.Context) {
	var req connectWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "walletAddress is required")
		return
	}

	if err := s.staking.ConnectWallet(c.Request.Context(), currentUserID(c), req.WalletAddress); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "wallet connected"})
}

func (s *Server) handleCreateStake(c *gin.Context) {
	var req createStakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "amount, currency and periodDays are required")
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil || !amount.IsPositive() {
		respondBadRequest(c, "amount must be a positive decimal")
		return
	}

	stake, err := s.staking.CreateStake(c.Request.Context(), currentUserID(c), interfaces.CreateStakeParams{
		Amount:        amount,
		Currency:      req.Currency,
		Network:       req.Network,
		PeriodDays:    req.PeriodDays,
		WalletAddress: req.WalletAddress,
		TxHash:        req.TxHash,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, stake)
}

func (s *Server) handleListStakes(c *gin.Context) {
	stakes, err := s.staking.ListForUser(c.Request.Context(), currentUserID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stakes)
}

func (s *Server) handleStakeWithdrawal(c *gin.Context) {
	stake, err := s.staking.RequestWithdrawal(c.Request.Context(), currentUserID(c), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stake)
}
