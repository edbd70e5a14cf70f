package adapter

import (
	"context"
	"time"

	chat "go-tawk/internal/pkg/chat/application/domain"
	repository "go-tawk/internal/pkg/chat/persistence/repository/port"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/pkg/errors"
)

type PgChatRepository struct {
	pool *pgxpool.Pool
	now  func() time.Time
}

func NewPgChatRepository(pool *pgxpool.Pool) *PgChatRepository {
	return &PgChatRepository{pool: pool, now: func() time.Time { return time.Now().UTC() }}
}

var _ repository.ChatRepository = (*PgChatRepository)(nil)

const conversationColumns = `id::text, participant_lo, participant_hi, created_at, last_message_at, message_count`

func (r *PgChatRepository) CreateConversation(ctx context.Context, c *chat.Conversation) error {
	if r == nil || r.pool == nil {
		return errors.New("PgChatRepository: nil pool")
	}
	lo, hi := chat.PairKey(c.ParticipantLo, c.ParticipantHi)
	if c.CreatedAt.IsZero() {
		c.CreatedAt = r.now()
	}
	err := r.pool.QueryRow(ctx, `
		INSERT INTO chat.conversation (participant_lo, participant_hi, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (participant_lo, participant_hi) DO NOTHING
		RETURNING id::text, created_at
	`, lo, hi, c.CreatedAt).Scan(&c.ID, &c.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return repository.ErrDuplicate
	}
	if err != nil {
		return errors.Wrap(err, "chatRepo.CreateConversation.Insert")
	}
	c.ParticipantLo, c.ParticipantHi = lo, hi
	if c.Messages == nil {
		c.Messages = []chat.Message{}
	}
	return nil
}

func (r *PgChatRepository) FindConversationByPair(ctx context.Context, a, b string) (*chat.Conversation, error) {
	lo, hi := chat.PairKey(a, b)
	row := r.pool.QueryRow(ctx, `
		SELECT `+conversationColumns+`
		FROM chat.conversation
		WHERE participant_lo = $1 AND participant_hi = $2
	`, lo, hi)
	c, err := scanConversation(row)
	if err != nil {
		return nil, errors.Wrap(err, "chatRepo.FindConversationByPair.Scan")
	}
	return c, nil
}

func (r *PgChatRepository) GetConversation(ctx context.Context, conversationID string) (*chat.Conversation, error) {
	if _, err := uuid.Parse(conversationID); err != nil {
		return nil, repository.ErrNotFound
	}
	row := r.pool.QueryRow(ctx, `
		SELECT `+conversationColumns+`
		FROM chat.conversation
		WHERE id = $1::uuid
	`, conversationID)
	c, err := scanConversation(row)
	if err != nil {
		return nil, errors.Wrap(err, "chatRepo.GetConversation.Scan")
	}
	return c, nil
}

func (r *PgChatRepository) ListConversationsByParticipant(ctx context.Context, userID string) ([]chat.Conversation, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+conversationColumns+`
		FROM chat.conversation
		WHERE participant_lo = $1 OR participant_hi = $1
		ORDER BY created_at, id
	`, userID)
	if err != nil {
		return nil, errors.Wrap(err, "chatRepo.ListConversationsByParticipant.Query")
	}
	defer rows.Close()

	convs := []chat.Conversation{}
	for rows.Next() {
		c, err := scanConversation(rows)
		if err != nil {
			return nil, errors.Wrap(err, "chatRepo.ListConversationsByParticipant.Scan")
		}
		convs = append(convs, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "chatRepo.ListConversationsByParticipant.Rows")
	}
	return convs, nil
}

// AppendMessage bumps the conversation counter and inserts the message at the
// new position in one statement; the row lock taken by the UPDATE serializes
// concurrent appends to the same conversation.
func (r *PgChatRepository) AppendMessage(ctx context.Context, m chat.Message) (*chat.Message, error) {
	if _, err := uuid.Parse(m.ConversationID); err != nil {
		return nil, repository.ErrNotFound
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = r.now()
	}
	err := r.pool.QueryRow(ctx, `
		WITH bumped AS (
			UPDATE chat.conversation
			SET message_count = message_count + 1, last_message_at = $5
			WHERE id = $1::uuid
			RETURNING id, message_count
		)
		INSERT INTO chat.message (conversation_id, seq, sender_id, recipient_id, msg_type, body, created_at)
		SELECT id, message_count, $2, $3, $4, $6, $5 FROM bumped
		RETURNING id::text, seq
	`, m.ConversationID, m.SenderID, m.RecipientID, string(m.Type), m.CreatedAt, m.Body).Scan(&m.ID, &m.Seq)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, errors.Wrap(err, "chatRepo.AppendMessage.Insert")
	}
	return &m, nil
}

func (r *PgChatRepository) GetMessagesByConversation(ctx context.Context, conversationID string, limit int, offset int) ([]chat.Message, error) {
	if _, err := uuid.Parse(conversationID); err != nil {
		return []chat.Message{}, nil
	}
	if limit < 0 {
		limit = 0
	}
	if offset < 0 {
		offset = 0
	}
	rows, err := r.pool.Query(ctx, `
		SELECT id::text, conversation_id::text, seq, sender_id, recipient_id, msg_type, body, created_at
		FROM chat.message
		WHERE conversation_id = $1::uuid
		ORDER BY seq
		LIMIT NULLIF($2::bigint, 0) OFFSET $3
	`, conversationID, int64(limit), int64(offset))
	if err != nil {
		return nil, errors.Wrap(err, "chatRepo.GetMessagesByConversation.Query")
	}
	defer rows.Close()

	msgs := []chat.Message{}
	for rows.Next() {
		var (
			msg     chat.Message
			msgType string
		)
		if err := rows.Scan(&msg.ID, &msg.ConversationID, &msg.Seq, &msg.SenderID, &msg.RecipientID, &msgType, &msg.Body, &msg.CreatedAt); err != nil {
			return nil, errors.Wrap(err, "chatRepo.GetMessagesByConversation.Scan")
		}
		msg.Type = chat.MessageType(msgType)
		msgs = append(msgs, msg)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "chatRepo.GetMessagesByConversation.Rows")
	}
	return msgs, nil
}

func scanConversation(row pgx.Row) (*chat.Conversation, error) {
	c := chat.Conversation{Messages: []chat.Message{}}
	err := row.Scan(&c.ID, &c.ParticipantLo, &c.ParticipantHi, &c.CreatedAt, &c.LastMessageAt, &c.MessageCount)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &c, nil
}
