package adapter

import (
	"context"
	"log"
	"os"
	"sync"
	"testing"

	"go-tawk/config"
	"go-tawk/internal/infrastructure/database"
	chat "go-tawk/internal/pkg/chat/application/domain"
	repository "go-tawk/internal/pkg/chat/persistence/repository/port"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
)

var testPool *pgxpool.Pool

func TestMain(m *testing.M) {
	ctx := context.Background()

	container, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("tawk"),
		postgres.WithUsername("tawk"),
		postgres.WithPassword("password"),
		postgres.BasicWaitStrategies(),
	)
	if err != nil {
		log.Printf("postgres container unavailable, pg tests will be skipped: %v", err)
		os.Exit(m.Run())
	}

	code := func() int {
		defer func() {
			if err := container.Terminate(ctx); err != nil {
				log.Printf("failed to terminate container: %s", err)
			}
		}()

		dsn, err := container.ConnectionString(ctx, "sslmode=disable")
		if err != nil {
			log.Printf("failed to get connection string: %v", err)
			return 1
		}
		testPool, err = database.NewPool(ctx, config.Database{URL: dsn, MaxConns: 8})
		if err != nil {
			log.Printf("failed to connect: %v", err)
			return 1
		}
		defer testPool.Close()

		if err := database.Migrate(ctx, testPool); err != nil {
			log.Printf("failed to migrate: %v", err)
			return 1
		}
		return m.Run()
	}()
	os.Exit(code)
}

func newPgRepo(t *testing.T) *PgChatRepository {
	t.Helper()
	if testPool == nil {
		t.Skip("postgres not available")
	}
	t.Cleanup(func() {
		_, err := testPool.Exec(context.Background(), `TRUNCATE TABLE chat.message, chat.conversation CASCADE`)
		require.NoError(t, err)
	})
	return NewPgChatRepository(testPool)
}

func Test_PgCreateConversation(t *testing.T) {
	ctx := context.Background()
	repo := newPgRepo(t)

	c := chat.Conversation{ParticipantLo: "user-b", ParticipantHi: "user-a"}
	require.NoError(t, repo.CreateConversation(ctx, &c))
	assert.NotEmpty(t, c.ID)
	assert.Equal(t, "user-a", c.ParticipantLo)

	dup := chat.Conversation{ParticipantLo: "user-a", ParticipantHi: "user-b"}
	assert.ErrorIs(t, repo.CreateConversation(ctx, &dup), repository.ErrDuplicate)

	found, err := repo.FindConversationByPair(ctx, "user-b", "user-a")
	require.NoError(t, err)
	assert.Equal(t, c.ID, found.ID)
}

func Test_PgConcurrentCreateYieldsOneConversation(t *testing.T) {
	ctx := context.Background()
	repo := newPgRepo(t)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		created int
	)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c := chat.Conversation{ParticipantLo: "x", ParticipantHi: "y"}
			err := repo.CreateConversation(ctx, &c)
			if err == nil {
				mu.Lock()
				created++
				mu.Unlock()
				return
			}
			assert.ErrorIs(t, err, repository.ErrDuplicate)
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, created)
}

func Test_PgAppendMessage(t *testing.T) {
	ctx := context.Background()
	repo := newPgRepo(t)

	c := chat.Conversation{ParticipantLo: "a", ParticipantHi: "b"}
	require.NoError(t, repo.CreateConversation(ctx, &c))

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := repo.AppendMessage(ctx, chat.Message{
				ConversationID: c.ID, SenderID: "a", RecipientID: "b",
				Type: chat.MessageTypeText, Body: "hello",
			})
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	msgs, err := repo.GetMessagesByConversation(ctx, c.ID, 0, 0)
	require.NoError(t, err)
	require.Len(t, msgs, 20)
	for i, m := range msgs {
		assert.Equal(t, int64(i+1), m.Seq)
		assert.Equal(t, chat.MessageTypeText, m.Type)
	}

	page, err := repo.GetMessagesByConversation(ctx, c.ID, 5, 18)
	require.NoError(t, err)
	assert.Len(t, page, 2)

	got, err := repo.GetConversation(ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(20), got.MessageCount)
	assert.NotNil(t, got.LastMessageAt)
}

func Test_PgUnknownConversation(t *testing.T) {
	ctx := context.Background()
	repo := newPgRepo(t)

	_, err := repo.AppendMessage(ctx, chat.Message{ConversationID: "2f1b9a3e-2e44-4a8e-9d55-6c1f0d7f7a11", Body: "x"})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = repo.AppendMessage(ctx, chat.Message{ConversationID: "not-a-uuid", Body: "x"})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	_, err = repo.GetConversation(ctx, "2f1b9a3e-2e44-4a8e-9d55-6c1f0d7f7a11")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func Test_PgListConversationsByParticipant(t *testing.T) {
	ctx := context.Background()
	repo := newPgRepo(t)

	for _, pair := range [][2]string{{"a", "b"}, {"c", "a"}, {"c", "d"}} {
		c := chat.Conversation{ParticipantLo: pair[0], ParticipantHi: pair[1]}
		require.NoError(t, repo.CreateConversation(ctx, &c))
	}
	convs, err := repo.ListConversationsByParticipant(ctx, "a")
	require.NoError(t, err)
	require.Len(t, convs, 2)
	for _, c := range convs {
		assert.True(t, c.Has("a"))
	}
}
