package entities

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWithdrawal_MethodLabel(t *testing.T) {
	cases := map[string]string{
		"usdt":       "USDT (BEP20)",
		"usdt_bep20": "USDT (BEP20)",
		"usdt_trc20": "USDT (TRC20)",
		"bitcoin":    "Bitcoin (BTC)",
		"ethereum":   "Ethereum (ETH)",
		"bank":       "Bank Transfer",
		"other":      "other",
	}
	for method, label := range cases {
		w := Withdrawal{Method: method}
		assert.Equal(t, label, w.MethodLabel())
	}
}

func TestWithdrawal_CanTransition(t *testing.T) {
	assert.True(t, (&Withdrawal{Status: WithdrawalStatusPending}).CanTransition())
	assert.False(t, (&Withdrawal{Status: WithdrawalStatusApproved}).CanTransition())
	assert.False(t, (&Withdrawal{Status: WithdrawalStatusRejected}).CanTransition())

	assert.False(t, WithdrawalStatusPending.IsTerminal())
	assert.True(t, WithdrawalStatusApproved.IsTerminal())
	assert.True(t, WithdrawalStatusRejected.IsTerminal())
}
