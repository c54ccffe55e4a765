package services

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"inovatrust/domain"
	"inovatrust/domain/entities"
	"inovatrust/domain/events"
	"inovatrust/domain/interfaces"

	"github.com/shopspring/decimal"
	log "github.com/sirupsen/logrus"
)

// MinimumWithdrawal is the smallest amount a user may request
var MinimumWithdrawal = decimal.NewFromInt(5)

const invoiceCharset = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// invoiceAttempts bounds regeneration when a generated invoice number
// collides with the unique index.
const invoiceAttempts = 3

type withdrawalService struct {
	uowFactory interfaces.UnitOfWorkFactory
	receipts   interfaces.ReceiptSender
}

// NewWithdrawalService creates the withdrawal state machine service
func NewWithdrawalService(uowFactory interfaces.UnitOfWorkFactory, receipts interfaces.ReceiptSender) interfaces.WithdrawalService {
	return &withdrawalService{
		uowFactory: uowFactory,
		receipts:   receipts,
	}
}

// Request validates the amount against the minimum and the user's current
// balance, opens a fresh support conversation, and creates the withdrawal
// in pending state. The balance is not debited until approval; no reserve
// is held.
func (s *withdrawalService) Request(ctx context.Context, userID string, amount decimal.Decimal, method, walletAddress string) (*entities.Withdrawal, error) {
	if amount.LessThan(MinimumWithdrawal) {
		return nil, domain.ErrBelowMinimum
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	user, err := uow.UserRepository().GetByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %s: %w", userID, domain.ErrNotFound)
	}
	if !user.HasSufficientBalance(amount) {
		return nil, domain.ErrInsufficientFunds
	}

	subject := fmt.Sprintf("Withdrawal Request - $%s", amount.String())
	conversation := &entities.Conversation{
		UserID:  userID,
		Subject: &subject,
		Status:  entities.ConversationStatusOpen,
	}
	if err := uow.ConversationRepository().Create(ctx, conversation); err != nil {
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}

	announcement := fmt.Sprintf(
		"Hello! Your withdrawal request for $%s via %s has been submitted. An admin will review your request shortly.",
		amount.StringFixed(2), method,
	)
	if err := s.appendSystemMessage(ctx, uow, conversation.ID, announcement); err != nil {
		return nil, err
	}

	withdrawal := &entities.Withdrawal{
		UserID:         userID,
		ConversationID: &conversation.ID,
		Amount:         amount,
		Method:         method,
		WalletAddress:  walletAddress,
		Status:         entities.WithdrawalStatusPending,
	}
	if err := uow.WithdrawalRepository().Create(ctx, withdrawal); err != nil {
		return nil, fmt.Errorf("failed to create withdrawal: %w", err)
	}

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit withdrawal request: %w", err)
	}

	return withdrawal, nil
}

// Transition moves a pending withdrawal into a terminal status. The ledger
// debit, transaction record, invoice assignment and status update commit
// atomically; the receipt email, follow-up chat message and broadcast are
// best-effort afterwards and never undo the committed transition.
func (s *withdrawalService) Transition(ctx context.Context, withdrawalID string, target entities.WithdrawalStatus) (*entities.Withdrawal, error) {
	if !target.IsValidTarget() {
		return nil, fmt.Errorf("invalid target status %q", target)
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	// Row lock so a second transition of the same withdrawal waits here
	// and then fails the CanTransition check.
	withdrawal, err := uow.WithdrawalRepository().GetByIDForUpdate(ctx, withdrawalID)
	if err != nil {
		return nil, fmt.Errorf("failed to get withdrawal: %w", err)
	}
	if withdrawal == nil {
		return nil, fmt.Errorf("withdrawal %s: %w", withdrawalID, domain.ErrNotFound)
	}
	if !withdrawal.CanTransition() {
		return nil, domain.ErrInvalidTransition
	}

	user, err := uow.UserRepository().GetByID(ctx, withdrawal.UserID)
	if err != nil {
		return nil, fmt.Errorf("failed to get withdrawal owner: %w", err)
	}
	if user == nil {
		return nil, fmt.Errorf("user %s: %w", withdrawal.UserID, domain.ErrNotFound)
	}

	now := time.Now()
	withdrawal.Status = target
	withdrawal.ProcessedAt = &now

	if target == entities.WithdrawalStatusApproved {
		ledger := NewLedgerService(uow.UserRepository(), uow.TransactionRepository(), uow.EventBus())

		// Re-validates against the current balance under the row lock;
		// the balance may have moved since the request was made.
		if _, err := ledger.Debit(ctx, withdrawal.UserID, withdrawal.Amount, entities.TransactionTypeWithdrawal); err != nil {
			return nil, err
		}

		description := fmt.Sprintf("Withdrawal via %s - Approved", withdrawal.Method)
		if _, err := ledger.RecordTransaction(ctx, withdrawal.UserID, entities.TransactionTypeWithdrawal, withdrawal.Amount, description); err != nil {
			return nil, err
		}

		if err := s.assignInvoice(ctx, uow, withdrawal, now); err != nil {
			return nil, err
		}
	} else {
		if err := uow.WithdrawalRepository().Update(ctx, withdrawal); err != nil {
			return nil, fmt.Errorf("failed to update withdrawal: %w", err)
		}
	}

	uow.EventBus().Publish(events.WithdrawalStateChangeEvent{
		WithdrawalID: withdrawal.ID,
		UserID:       withdrawal.UserID,
		OldStatus:    entities.WithdrawalStatusPending,
		NewStatus:    target,
	})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit withdrawal transition: %w", err)
	}

	// Everything below is fire-and-forget relative to the committed
	// transition: a failure is logged and the approval stands.
	if target == entities.WithdrawalStatusApproved {
		s.sendReceipt(ctx, withdrawal, user, now)
	}
	s.announceOutcome(ctx, withdrawal, target)

	return withdrawal, nil
}

// ListForUser returns the user's withdrawals, newest first
func (s *withdrawalService) ListForUser(ctx context.Context, userID string) ([]*entities.Withdrawal, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	withdrawals, err := uow.WithdrawalRepository().GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list withdrawals: %w", err)
	}
	return withdrawals, uow.Commit()
}

// GetForUser returns one withdrawal, refusing to surface other users' rows
func (s *withdrawalService) GetForUser(ctx context.Context, userID, withdrawalID string) (*entities.Withdrawal, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	withdrawal, err := uow.WithdrawalRepository().GetByID(ctx, withdrawalID)
	if err != nil {
		return nil, fmt.Errorf("failed to get withdrawal: %w", err)
	}
	if withdrawal == nil || withdrawal.UserID != userID {
		return nil, fmt.Errorf("withdrawal %s: %w", withdrawalID, domain.ErrNotFound)
	}
	return withdrawal, uow.Commit()
}

// ListAll returns every withdrawal for the admin view, newest first
func (s *withdrawalService) ListAll(ctx context.Context) ([]*entities.Withdrawal, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	withdrawals, err := uow.WithdrawalRepository().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list withdrawals: %w", err)
	}
	return withdrawals, uow.Commit()
}

// assignInvoice stamps the withdrawal approved with an invoice number,
// regenerating on the rare collision with the unique index.
func (s *withdrawalService) assignInvoice(ctx context.Context, uow interfaces.UnitOfWork, withdrawal *entities.Withdrawal, now time.Time) error {
	var err error
	for attempt := 0; attempt < invoiceAttempts; attempt++ {
		invoice := generateInvoiceNumber(now)
		withdrawal.InvoiceNumber = &invoice
		withdrawal.InvoiceGeneratedAt = &now

		err = uow.WithdrawalRepository().Update(ctx, withdrawal)
		if err == nil {
			return nil
		}
		if !errors.Is(err, domain.ErrDuplicateInvoice) {
			return fmt.Errorf("failed to update withdrawal: %w", err)
		}
		log.WithField("invoiceNumber", invoice).Warn("Invoice number collision, regenerating")
	}
	return fmt.Errorf("failed to assign invoice number after %d attempts: %w", invoiceAttempts, err)
}

// sendReceipt emails the receipt and, on success, records the send time
// in a separate transaction.
func (s *withdrawalService) sendReceipt(ctx context.Context, withdrawal *entities.Withdrawal, user *entities.User, processedAt time.Time) {
	if withdrawal.InvoiceNumber == nil {
		return
	}

	sent := s.receipts.SendWithdrawalReceipt(ctx, interfaces.WithdrawalReceipt{
		UserEmail:     user.Email,
		UserName:      user.FullName,
		InvoiceNumber: *withdrawal.InvoiceNumber,
		Amount:        withdrawal.Amount,
		Method:        withdrawal.MethodLabel(),
		WalletAddress: withdrawal.WalletAddress,
		ProcessedAt:   processedAt,
	})
	if !sent {
		log.WithFields(log.Fields{
			"withdrawalId": withdrawal.ID,
			"userId":       user.ID,
		}).Warn("Withdrawal receipt email not sent")
		return
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		log.WithError(err).Error("Failed to begin transaction for email bookkeeping")
		return
	}
	defer uow.Rollback()

	sentAt := time.Now()
	withdrawal.EmailSentAt = &sentAt
	if err := uow.WithdrawalRepository().Update(ctx, withdrawal); err != nil {
		log.WithError(err).WithField("withdrawalId", withdrawal.ID).Error("Failed to record email sent time")
		return
	}
	if err := uow.Commit(); err != nil {
		log.WithError(err).WithField("withdrawalId", withdrawal.ID).Error("Failed to commit email bookkeeping")
	}
}

// announceOutcome posts the follow-up system message to the linked
// conversation; the commit flushes it to the realtime hub.
func (s *withdrawalService) announceOutcome(ctx context.Context, withdrawal *entities.Withdrawal, target entities.WithdrawalStatus) {
	if withdrawal.ConversationID == nil {
		return
	}

	var message string
	if target == entities.WithdrawalStatusApproved {
		message = fmt.Sprintf("Great news! Your withdrawal of $%s has been approved and is being processed.", withdrawal.Amount.StringFixed(2))
	} else {
		message = "We're sorry, but your withdrawal request has been rejected. Please contact support for more information."
	}

	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		log.WithError(err).Error("Failed to begin transaction for outcome message")
		return
	}
	defer uow.Rollback()

	if err := s.appendSystemMessage(ctx, uow, *withdrawal.ConversationID, message); err != nil {
		log.WithError(err).WithField("withdrawalId", withdrawal.ID).Error("Failed to append outcome message")
		return
	}
	if err := uow.Commit(); err != nil {
		log.WithError(err).WithField("withdrawalId", withdrawal.ID).Error("Failed to commit outcome message")
	}
}

// appendSystemMessage inserts a platform-authored message, bumps the
// conversation timestamp and queues the broadcast for after commit.
func (s *withdrawalService) appendSystemMessage(ctx context.Context, uow interfaces.UnitOfWork, conversationID, message string) error {
	msg := &entities.ChatMessage{
		ConversationID: conversationID,
		SenderID:       entities.SystemSenderID,
		SenderType:     entities.SenderTypeAdmin,
		Message:        message,
	}
	if err := uow.ChatMessageRepository().Create(ctx, msg); err != nil {
		return fmt.Errorf("failed to create system message: %w", err)
	}
	if err := uow.ConversationRepository().Touch(ctx, conversationID); err != nil {
		return fmt.Errorf("failed to touch conversation: %w", err)
	}
	uow.EventBus().Publish(events.MessageCreatedEvent{Message: msg})
	return nil
}

// generateInvoiceNumber builds an INV-YYYYMMDD-XXXXXX receipt identifier
// with a random base36 suffix.
func generateInvoiceNumber(now time.Time) string {
	buf := make([]byte, 6)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand only fails on a broken platform; fall back to the
		// timestamp so the invoice is still non-empty.
		return fmt.Sprintf("INV-%s-%06d", now.Format("20060102"), now.UnixNano()%1000000)
	}
	for i, b := range buf {
		buf[i] = invoiceCharset[int(b)%len(invoiceCharset)]
	}
	return fmt.Sprintf("INV-%s-%s", now.Format("20060102"), string(buf))
}
