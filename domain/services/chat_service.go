package services

import (
	"context"
	"fmt"

	"inovatrust/domain"
	"inovatrust/domain/entities"
	"inovatrust/domain/events"
	"inovatrust/domain/interfaces"
)

type chatService struct {
	uowFactory interfaces.UnitOfWorkFactory
}

// NewChatService creates the support conversation service
func NewChatService(uowFactory interfaces.UnitOfWorkFactory) interfaces.ChatService {
	return &chatService{uowFactory: uowFactory}
}

// StartConversation opens a new conversation owned by the user
func (s *chatService) StartConversation(ctx context.Context, userID string, subject *string) (*entities.Conversation, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	conversation := &entities.Conversation{
		UserID:  userID,
		Subject: subject,
		Status:  entities.ConversationStatusOpen,
	}
	if err := uow.ConversationRepository().Create(ctx, conversation); err != nil {
		return nil, fmt.Errorf("failed to create conversation: %w", err)
	}

	return conversation, uow.Commit()
}

// ListConversationsForUser returns the user's conversations, most recently
// active first.
func (s *chatService) ListConversationsForUser(ctx context.Context, userID string) ([]*entities.Conversation, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	conversations, err := uow.ConversationRepository().GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	return conversations, uow.Commit()
}

// ListAllConversations returns every conversation for the admin inbox
func (s *chatService) ListAllConversations(ctx context.Context) ([]*entities.Conversation, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	conversations, err := uow.ConversationRepository().GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}
	return conversations, uow.Commit()
}

// PostMessage appends a message to the conversation. The sender role is
// derived from the sender's admin flag; non-owners without the flag are
// refused. The broadcast to the conversation's room happens after commit.
func (s *chatService) PostMessage(ctx context.Context, conversationID, senderID, message string) (*entities.ChatMessage, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	conversation, sender, err := s.authorize(ctx, uow, conversationID, senderID)
	if err != nil {
		return nil, err
	}

	senderType := entities.SenderTypeUser
	if sender.IsAdmin {
		senderType = entities.SenderTypeAdmin
	}

	msg := &entities.ChatMessage{
		ConversationID: conversation.ID,
		SenderID:       senderID,
		SenderType:     senderType,
		Message:        message,
	}
	if err := uow.ChatMessageRepository().Create(ctx, msg); err != nil {
		return nil, fmt.Errorf("failed to create message: %w", err)
	}
	if err := uow.ConversationRepository().Touch(ctx, conversation.ID); err != nil {
		return nil, fmt.Errorf("failed to touch conversation: %w", err)
	}

	uow.EventBus().Publish(events.MessageCreatedEvent{Message: msg})

	if err := uow.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit message: %w", err)
	}
	return msg, nil
}

// ListMessages returns the conversation's messages oldest first, applying
// the owner-or-admin access rule.
func (s *chatService) ListMessages(ctx context.Context, conversationID, requesterID string) ([]*entities.ChatMessage, error) {
	uow := s.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer uow.Rollback()

	if _, _, err := s.authorize(ctx, uow, conversationID, requesterID); err != nil {
		return nil, err
	}

	messages, err := uow.ChatMessageRepository().GetByConversation(ctx, conversationID)
	if err != nil {
		return nil, fmt.Errorf("failed to list messages: %w", err)
	}
	return messages, uow.Commit()
}

// authorize loads the conversation and the acting user and enforces the
// owner-or-admin rule shared by reads and writes.
func (s *chatService) authorize(ctx context.Context, uow interfaces.UnitOfWork, conversationID, userID string) (*entities.Conversation, *entities.User, error) {
	conversation, err := uow.ConversationRepository().GetByID(ctx, conversationID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get conversation: %w", err)
	}
	if conversation == nil {
		return nil, nil, fmt.Errorf("conversation %s: %w", conversationID, domain.ErrNotFound)
	}

	user, err := uow.UserRepository().GetByID(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get user: %w", err)
	}
	if user == nil {
		return nil, nil, fmt.Errorf("user %s: %w", userID, domain.ErrNotFound)
	}

	if !conversation.IsParticipant(userID, user.IsAdmin) {
		return nil, nil, domain.ErrAccessDenied
	}
	return conversation, user, nil
}
