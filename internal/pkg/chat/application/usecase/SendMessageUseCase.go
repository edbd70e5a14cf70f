package usecase

import (
	"context"
	"time"

	"go-tawk/internal/infrastructure/realtime"
	chat "go-tawk/internal/pkg/chat/application/domain"
	repository "go-tawk/internal/pkg/chat/persistence/repository/port"
	apperrors "go-tawk/pkg/errors"
)

// SendMessageInput carries a message sent over the socket. An empty Type is
// detected from the body.
type SendMessageInput struct {
	ConversationID string
	From           string
	To             string
	Body           string
	Type           chat.MessageType
}

// NewTextMessageNotice is pushed to both participants after an append.
type NewTextMessageNotice struct {
	ConversationID string       `json:"conversation_id"`
	Message        chat.Message `json:"message"`
}

// SendMessageUseCase appends a message and routes it to both participants.
// Delivery is best effort; the stored message is the source of truth.
type SendMessageUseCase struct {
	Repo   repository.ChatRepository
	Router realtime.Deliverer
	Now    func() time.Time
}

func NewSendMessageUseCase(repo repository.ChatRepository, router realtime.Deliverer) *SendMessageUseCase {
	return &SendMessageUseCase{Repo: repo, Router: router, Now: func() time.Time { return time.Now().UTC() }}
}

func (uc *SendMessageUseCase) Execute(ctx context.Context, in SendMessageInput) (*chat.Message, error) {
	if in.Type == chat.MessageTypeFile {
		return nil, apperrors.ErrFileMessageNotSupported
	}
	if in.ConversationID == "" {
		return nil, apperrors.InvalidArg("conversation_id is required")
	}

	conv, err := uc.Repo.GetConversation(ctx, in.ConversationID)
	if err != nil {
		return nil, translate(err)
	}
	if !conv.Has(in.From) || conv.Peer(in.From) != in.To {
		return nil, apperrors.ErrNotParticipant
	}

	msg, ok := chat.NewMessage(chat.Message{
		ConversationID: conv.ID,
		SenderID:       in.From,
		RecipientID:    in.To,
		Type:           in.Type,
		Body:           in.Body,
	}, uc.Now())
	if !ok {
		return nil, apperrors.ErrEmptyMessage
	}

	stored, err := uc.Repo.AppendMessage(ctx, msg)
	if err != nil {
		return nil, translate(err)
	}

	if uc.Router != nil {
		notice := NewTextMessageNotice{ConversationID: stored.ConversationID, Message: *stored}
		uc.Router.Deliver(in.To, realtime.EventNewTextMessage, notice)
		uc.Router.Deliver(in.From, realtime.EventNewTextMessage, notice)
	}
	return stored, nil
}
