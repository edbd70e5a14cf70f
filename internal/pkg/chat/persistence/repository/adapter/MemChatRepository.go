package adapter

import (
	"context"
	"sort"
	"sync"
	"time"

	chat "go-tawk/internal/pkg/chat/application/domain"
	repository "go-tawk/internal/pkg/chat/persistence/repository/port"

	"github.com/google/uuid"
)

// MemChatRepository keeps conversations in process memory. It backs the
// memory database driver and offers the same uniqueness and ordering
// guarantees as the Postgres adapter.
type MemChatRepository struct {
	mu       sync.Mutex
	convs    map[string]*chat.Conversation
	byPair   map[[2]string]string
	messages map[string][]chat.Message
	now      func() time.Time
}

func NewMemChatRepository() *MemChatRepository {
	return &MemChatRepository{
		convs:    make(map[string]*chat.Conversation),
		byPair:   make(map[[2]string]string),
		messages: make(map[string][]chat.Message),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

var _ repository.ChatRepository = (*MemChatRepository)(nil)

func (r *MemChatRepository) CreateConversation(_ context.Context, c *chat.Conversation) error {
	lo, hi := chat.PairKey(c.ParticipantLo, c.ParticipantHi)

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byPair[[2]string{lo, hi}]; ok {
		return repository.ErrDuplicate
	}
	c.ID = uuid.NewString()
	c.ParticipantLo, c.ParticipantHi = lo, hi
	if c.CreatedAt.IsZero() {
		c.CreatedAt = r.now()
	}
	c.Messages = []chat.Message{}
	stored := *c
	r.convs[c.ID] = &stored
	r.byPair[[2]string{lo, hi}] = c.ID
	return nil
}

func (r *MemChatRepository) FindConversationByPair(_ context.Context, a, b string) (*chat.Conversation, error) {
	lo, hi := chat.PairKey(a, b)

	r.mu.Lock()
	defer r.mu.Unlock()
	id, ok := r.byPair[[2]string{lo, hi}]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return r.snapshot(id), nil
}

func (r *MemChatRepository) GetConversation(_ context.Context, conversationID string) (*chat.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.convs[conversationID]; !ok {
		return nil, repository.ErrNotFound
	}
	return r.snapshot(conversationID), nil
}

func (r *MemChatRepository) ListConversationsByParticipant(_ context.Context, userID string) ([]chat.Conversation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	convs := []chat.Conversation{}
	for id, c := range r.convs {
		if c.Has(userID) {
			convs = append(convs, *r.snapshot(id))
		}
	}
	sort.Slice(convs, func(i, j int) bool {
		if convs[i].CreatedAt.Equal(convs[j].CreatedAt) {
			return convs[i].ID < convs[j].ID
		}
		return convs[i].CreatedAt.Before(convs[j].CreatedAt)
	})
	return convs, nil
}

func (r *MemChatRepository) AppendMessage(_ context.Context, m chat.Message) (*chat.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.convs[m.ConversationID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = r.now()
	}
	c.MessageCount++
	at := m.CreatedAt
	c.LastMessageAt = &at
	m.ID = uuid.NewString()
	m.Seq = c.MessageCount
	r.messages[c.ID] = append(r.messages[c.ID], m)
	return &m, nil
}

func (r *MemChatRepository) GetMessagesByConversation(_ context.Context, conversationID string, limit int, offset int) ([]chat.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	all := r.messages[conversationID]
	if offset < 0 {
		offset = 0
	}
	if offset >= len(all) {
		return []chat.Message{}, nil
	}
	end := len(all)
	if limit > 0 && offset+limit < end {
		end = offset + limit
	}
	return append([]chat.Message{}, all[offset:end]...), nil
}

// snapshot copies a conversation so callers never share state with the store.
// Callers hold r.mu.
func (r *MemChatRepository) snapshot(id string) *chat.Conversation {
	c := *r.convs[id]
	c.Messages = []chat.Message{}
	return &c
}
