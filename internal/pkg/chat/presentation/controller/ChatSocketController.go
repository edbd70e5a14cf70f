package controller

import (
	"context"

	"go-tawk/internal/infrastructure/realtime"
	chat "go-tawk/internal/pkg/chat/application/domain"
	"go-tawk/internal/pkg/chat/application/usecase"
	"go-tawk/internal/pkg/session/application"
	apperrors "go-tawk/pkg/errors"
)

// ChatSocketController serves the conversation events of the websocket
// protocol.
type ChatSocketController struct {
	startUC *usecase.StartConversationUseCase
	listUC  *usecase.ListConversationsUseCase
	getUC   *usecase.GetMessageUseCase
	sendUC  *usecase.SendMessageUseCase
}

func NewChatSocketController(start *usecase.StartConversationUseCase, list *usecase.ListConversationsUseCase, get *usecase.GetMessageUseCase, send *usecase.SendMessageUseCase) *ChatSocketController {
	return &ChatSocketController{startUC: start, listUC: list, getUC: get, sendUC: send}
}

// Register installs the chat handlers on d.
func (ctl *ChatSocketController) Register(d *application.Dispatcher) {
	d.Handle(realtime.EventGetDirectConversations, ctl.getDirectConversations)
	d.Handle(realtime.EventStartConversation, ctl.startConversation)
	d.Handle(realtime.EventGetMessages, ctl.getMessages)
	d.Handle(realtime.EventTextMessage, ctl.textMessage)
	d.Handle(realtime.EventFileMessage, ctl.fileMessage)
}

type getDirectConversationsRequest struct {
	UserID string `json:"user_id"`
}

func (ctl *ChatSocketController) getDirectConversations(ctx context.Context, s *application.Session, data []byte) (any, error) {
	req, err := application.Decode[getDirectConversationsRequest](data)
	if err != nil {
		return nil, err
	}
	userID, err := s.Claim(req.UserID)
	if err != nil {
		return nil, err
	}
	return ctl.listUC.Execute(ctx, usecase.ListConversationsInput{UserID: userID})
}

type startConversationRequest struct {
	To   string `json:"to"`
	From string `json:"from"`
}

// StartChatPayload is pushed to the initiator of start_conversation.
type StartChatPayload struct {
	Conversation *chat.Conversation `json:"conversation"`
}

func (ctl *ChatSocketController) startConversation(ctx context.Context, s *application.Session, data []byte) (any, error) {
	req, err := application.Decode[startConversationRequest](data)
	if err != nil {
		return nil, err
	}
	from, err := s.Claim(req.From)
	if err != nil {
		return nil, err
	}
	conv, err := ctl.startUC.Execute(ctx, usecase.StartConversationInput{From: from, To: req.To})
	if err != nil {
		return nil, err
	}
	_ = s.Reply(realtime.EventStartChat, StartChatPayload{Conversation: conv})
	return conv, nil
}

type getMessagesRequest struct {
	ConversationID string `json:"conversation_id"`
	Limit          int    `json:"limit"`
	Offset         int    `json:"offset"`
}

func (ctl *ChatSocketController) getMessages(ctx context.Context, s *application.Session, data []byte) (any, error) {
	req, err := application.Decode[getMessagesRequest](data)
	if err != nil {
		return nil, err
	}
	return ctl.getUC.Execute(ctx, usecase.GetMessageInput{
		ConversationID: req.ConversationID,
		ViewerID:       s.UserID,
		Limit:          req.Limit,
		Offset:         req.Offset,
	})
}

type textMessageRequest struct {
	To             string `json:"to"`
	From           string `json:"from"`
	Message        string `json:"message"`
	ConversationID string `json:"conversation_id"`
}

func (ctl *ChatSocketController) textMessage(ctx context.Context, s *application.Session, data []byte) (any, error) {
	req, err := application.Decode[textMessageRequest](data)
	if err != nil {
		return nil, err
	}
	from, err := s.Claim(req.From)
	if err != nil {
		return nil, err
	}
	return ctl.sendUC.Execute(ctx, usecase.SendMessageInput{
		ConversationID: req.ConversationID,
		From:           from,
		To:             req.To,
		Body:           req.Message,
	})
}

func (ctl *ChatSocketController) fileMessage(context.Context, *application.Session, []byte) (any, error) {
	return nil, apperrors.ErrFileMessageNotSupported
}
