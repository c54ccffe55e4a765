package testutil

import (
	"fmt"
	"time"

	"inovatrust/domain/entities"

	"github.com/shopspring/decimal"
)

// TestPassword is the bcrypt hash of "password123" at cost 10
const TestPassword = "$2a$10$N9qo8uLOickgx2ZMRZoMyeIjZAgcfl7p92ldGxad68LJZdL17lhWy"

// CreateTestWithdrawal creates a pending withdrawal with default values
func CreateTestWithdrawal(userID string) *entities.Withdrawal {
	return &entities.Withdrawal{
		UserID:        userID,
		Amount:        decimal.RequireFromString("50.00"),
		Method:        "usdt_bep20",
		WalletAddress: "0x1111111111111111111111111111111111111111",
		Status:        entities.WithdrawalStatusPending,
	}
}

// CreateTestWithdrawalWithAmount creates a pending withdrawal with a specific amount
func CreateTestWithdrawalWithAmount(userID string, amount string) *entities.Withdrawal {
	w := CreateTestWithdrawal(userID)
	w.Amount = decimal.RequireFromString(amount)
	return w
}

// CreateTestConversation creates an open conversation with a subject
func CreateTestConversation(userID string) *entities.Conversation {
	subject := "Test conversation"
	return &entities.Conversation{
		UserID:  userID,
		Subject: &subject,
		Status:  entities.ConversationStatusOpen,
	}
}

// CreateTestMessage creates a user-authored chat message
func CreateTestMessage(conversationID, senderID, text string) *entities.ChatMessage {
	return &entities.ChatMessage{
		ConversationID: conversationID,
		SenderID:       senderID,
		SenderType:     entities.SenderTypeUser,
		Message:        text,
	}
}

// CreateTestTransaction creates a completed ledger entry
func CreateTestTransaction(userID string, txType entities.TransactionType, amount string) *entities.Transaction {
	return &entities.Transaction{
		UserID:      userID,
		Type:        txType,
		Amount:      decimal.RequireFromString(amount),
		Status:      "completed",
		Description: fmt.Sprintf("Test %s", txType),
	}
}

// CreateTestInvestment creates an active investment position
func CreateTestInvestment(userID string) *entities.Investment {
	endDate := time.Now().AddDate(0, 0, 30)
	return &entities.Investment{
		UserID:      userID,
		PackageName: "Gold",
		Amount:      decimal.RequireFromString("500.00"),
		DailyReturn: decimal.RequireFromString("1.50"),
		Duration:    "30 days",
		Status:      "active",
		EndDate:     &endDate,
	}
}

// CreateTestStake creates an active staking position
func CreateTestStake(userID string) *entities.Stake {
	start := time.Now()
	end := start.AddDate(0, 0, 14)
	txHash := "0xdeadbeef"
	return &entities.Stake{
		UserID:         userID,
		Amount:         decimal.RequireFromString("500.00"),
		Currency:       "USDT",
		Network:        "BEP20",
		PeriodDays:     "14",
		ROIPercent:     decimal.RequireFromString("8.50"),
		ExpectedReturn: decimal.RequireFromString("542.50"),
		Status:         entities.StakeStatusActive,
		WalletAddress:  "0x2222222222222222222222222222222222222222",
		TxHash:         &txHash,
		StartDate:      &start,
		EndDate:        &end,
	}
}
