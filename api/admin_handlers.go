package api

import (
	"net/http"

	"inovatrust/domain/entities"
	"inovatrust/domain/interfaces"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

type patchWithdrawalRequest struct {
	Status string `json:"status" binding:"required"`
}

type patchUserRequest struct {
	Balance        *string `json:"balance"`
	TotalInvested  *string `json:"totalInvested"`
	TotalEarnings  *string `json:"totalEarnings"`
	StakingEnabled *bool   `json:"stakingEnabled"`
}

type enableStakingRequest struct {
	Enabled        bool    `json:"enabled"`
	ConversationID *string `json:"conversationId"`
}

type patchStakeRequest struct {
	Status string `json:"status" binding:"required"`
}

type setSettingRequest struct {
	Key   string `json:"key" binding:"required"`
	Value string `json:"value" binding:"required"`
}

func (s *Server) handleAdminListWithdrawals(c *gin.Context) {
	withdrawals, err := s.withdrawals.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, withdrawals)
}

// handleAdminPatchWithdrawal drives the pending -> approved/rejected
// transition, the only mutation admins make to a withdrawal.
func (s *Server) handleAdminPatchWithdrawal(c *gin.Context) {
	var req patchWithdrawalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "status is required")
		return
	}

	target := entities.WithdrawalStatus(req.Status)
	if !target.IsValidTarget() {
		respondBadRequest(c, "status must be approved or rejected")
		return
	}

	withdrawal, err := s.withdrawals.Transition(c.Request.Context(), c.Param("id"), target)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, withdrawal)
}

func (s *Server) handleAdminListConversations(c *gin.Context) {
	conversations, err := s.chat.ListAllConversations(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, conversations)
}

func (s *Server) handleAdminListUsers(c *gin.Context) {
	users, err := s.users.ListUsers(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, users)
}

func (s *Server) handleAdminPatchUser(c *gin.Context) {
	var req patchUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	patch := interfaces.UserPatch{StakingEnabled: req.StakingEnabled}

	var err error
	if patch.Balance, err = parseOptionalDecimal(req.Balance); err != nil {
		respondBadRequest(c, "balance must be a decimal")
		return
	}
	if patch.TotalInvested, err = parseOptionalDecimal(req.TotalInvested); err != nil {
		respondBadRequest(c, "totalInvested must be a decimal")
		return
	}
	if patch.TotalEarnings, err = parseOptionalDecimal(req.TotalEarnings); err != nil {
		respondBadRequest(c, "totalEarnings must be a decimal")
		return
	}

	user, err := s.users.AdminUpdate(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (s *Server) handleAdminEnableStaking(c *gin.Context) {
	var req enableStakingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "invalid request body")
		return
	}

	if err := s.staking.EnableStaking(c.Request.Context(), c.Param("id"), req.Enabled, req.ConversationID); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "staking access updated"})
}

func (s *Server) handleAdminListStakes(c *gin.Context) {
	stakes, err := s.staking.ListAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stakes)
}

func (s *Server) handleAdminPatchStake(c *gin.Context) {
	var req patchStakeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "status is required")
		return
	}

	stake, err := s.staking.UpdateStatus(c.Request.Context(), c.Param("id"), entities.StakeStatus(req.Status))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, stake)
}

func (s *Server) handleAdminGetSettings(c *gin.Context) {
	settings, err := s.settings.List(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, settings)
}

func (s *Server) handleAdminSetSetting(c *gin.Context) {
	var req setSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBadRequest(c, "key and value are required")
		return
	}

	setting, err := s.settings.Set(c.Request.Context(), req.Key, req.Value)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, setting)
}

func parseOptionalDecimal(raw *string) (*decimal.Decimal, error) {
	if raw == nil {
		return nil, nil
	}
	d, err := decimal.NewFromString(*raw)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
