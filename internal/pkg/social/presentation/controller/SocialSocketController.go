package controller

import (
	"context"

	"go-tawk/internal/infrastructure/realtime"
	"go-tawk/internal/pkg/session/application"
	"go-tawk/internal/pkg/social/application/usecase"
)

// SocialSocketController serves the friend-request events of the websocket
// protocol.
type SocialSocketController struct {
	createUC *usecase.CreateFriendRequestUseCase
	acceptUC *usecase.AcceptFriendRequestUseCase
}

func NewSocialSocketController(create *usecase.CreateFriendRequestUseCase, accept *usecase.AcceptFriendRequestUseCase) *SocialSocketController {
	return &SocialSocketController{createUC: create, acceptUC: accept}
}

// Register installs the friend-request handlers on d.
func (ctl *SocialSocketController) Register(d *application.Dispatcher) {
	d.Handle(realtime.EventFriendRequest, ctl.friendRequest)
	d.Handle(realtime.EventAcceptRequest, ctl.acceptRequest)
}

type friendRequestRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

func (ctl *SocialSocketController) friendRequest(ctx context.Context, s *application.Session, data []byte) (any, error) {
	req, err := application.Decode[friendRequestRequest](data)
	if err != nil {
		return nil, err
	}
	from, err := s.Claim(req.From)
	if err != nil {
		return nil, err
	}
	return ctl.createUC.Execute(ctx, usecase.CreateFriendRequestInput{From: from, To: req.To})
}

type acceptRequestRequest struct {
	RequestID string `json:"request_id"`
}

func (ctl *SocialSocketController) acceptRequest(ctx context.Context, s *application.Session, data []byte) (any, error) {
	req, err := application.Decode[acceptRequestRequest](data)
	if err != nil {
		return nil, err
	}
	return ctl.acceptUC.Execute(ctx, usecase.AcceptFriendRequestInput{RequestID: req.RequestID, ActorID: s.UserID})
}
