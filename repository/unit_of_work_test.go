package repository

import (
	"context"
	"testing"

	"inovatrust/domain/entities"
	"inovatrust/domain/events"
	"inovatrust/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitOfWork_CommitFlushesEvents(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	bus := events.NewBus()
	var received []events.Event
	bus.Subscribe(events.EventTypeMessageCreated, func(ctx context.Context, e events.Event) {
		received = append(received, e)
	})

	factory := NewUnitOfWorkFactory(testDB.DB, bus)

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))

	user, err := uow.UserRepository().Create(ctx, "alice", testutil.TestPassword, "", "alice@example.com")
	require.NoError(t, err)

	conversation := testutil.CreateTestConversation(user.ID)
	require.NoError(t, uow.ConversationRepository().Create(ctx, conversation))

	msg := testutil.CreateTestMessage(conversation.ID, user.ID, "hello")
	require.NoError(t, uow.ChatMessageRepository().Create(ctx, msg))

	uow.EventBus().Publish(events.MessageCreatedEvent{Message: msg})
	assert.Empty(t, received, "events must not fire before commit")

	require.NoError(t, uow.Commit())
	require.Len(t, received, 1)

	// The committed rows are visible outside the transaction
	loaded, err := NewChatMessageRepository(testDB.DB).GetByConversation(ctx, conversation.ID)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "hello", loaded[0].Message)
}

func TestUnitOfWork_RollbackDiscardsWritesAndEvents(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	bus := events.NewBus()
	var received []events.Event
	bus.Subscribe(events.EventTypeMessageCreated, func(ctx context.Context, e events.Event) {
		received = append(received, e)
	})

	factory := NewUnitOfWorkFactory(testDB.DB, bus)

	uow := factory.Create()
	require.NoError(t, uow.Begin(ctx))

	_, err := uow.UserRepository().Create(ctx, "ghost", testutil.TestPassword, "", "ghost@example.com")
	require.NoError(t, err)
	uow.EventBus().Publish(events.MessageCreatedEvent{Message: &entities.ChatMessage{}})

	require.NoError(t, uow.Rollback())
	assert.Empty(t, received)

	user, err := NewUserRepository(testDB.DB).GetByUsername(ctx, "ghost")
	require.NoError(t, err)
	assert.Nil(t, user)
}

func TestUnitOfWork_RepositoryAccessBeforeBeginPanics(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)

	factory := NewUnitOfWorkFactory(testDB.DB, events.NewBus())
	uow := factory.Create()

	assert.Panics(t, func() { uow.UserRepository() })
	assert.Panics(t, func() { uow.WithdrawalRepository() })
}

func TestUnitOfWork_DoubleBeginFails(t *testing.T) {
	testDB := testutil.SetupTestDatabase(t)
	ctx := context.Background()

	factory := NewUnitOfWorkFactory(testDB.DB, events.NewBus())
	uow := factory.Create()

	require.NoError(t, uow.Begin(ctx))
	defer uow.Rollback()

	assert.Error(t, uow.Begin(ctx))
}
