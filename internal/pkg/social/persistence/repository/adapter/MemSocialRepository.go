package adapter

import (
	"context"
	"sort"
	"sync"
	"time"

	social "go-tawk/internal/pkg/social/application/domain"
	repository "go-tawk/internal/pkg/social/persistence/repository/port"

	"github.com/google/uuid"
)

// MemSocialRepository backs the memory database driver. Users are created
// on first reference, since there is no auth service writing them.
type MemSocialRepository struct {
	mu       sync.Mutex
	users    map[string]*social.User
	friends  map[string]map[string]struct{}
	requests map[string]*social.FriendRequest
	now      func() time.Time
}

func NewMemSocialRepository() *MemSocialRepository {
	return &MemSocialRepository{
		users:    make(map[string]*social.User),
		friends:  make(map[string]map[string]struct{}),
		requests: make(map[string]*social.FriendRequest),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

var _ repository.SocialRepository = (*MemSocialRepository)(nil)

// PutUser stores u, replacing any user with the same id.
func (r *MemSocialRepository) PutUser(u social.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u.Status == "" {
		u.Status = social.StatusOffline
	}
	r.users[u.ID] = &u
}

func (r *MemSocialRepository) CreateFriendRequest(_ context.Context, req *social.FriendRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if req.SenderID == "" || req.RecipientID == "" {
		return repository.ErrUnknownUser
	}
	for _, existing := range r.requests {
		if existing.SenderID == req.SenderID && existing.RecipientID == req.RecipientID {
			return repository.ErrDuplicate
		}
	}
	r.ensureUser(req.SenderID)
	r.ensureUser(req.RecipientID)

	req.ID = uuid.NewString()
	if req.CreatedAt.IsZero() {
		req.CreatedAt = r.now()
	}
	stored := *req
	stored.Sender = nil
	r.requests[req.ID] = &stored
	return nil
}

func (r *MemSocialRepository) FindPendingRequest(_ context.Context, senderID, recipientID string) (*social.FriendRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, req := range r.requests {
		if req.SenderID == senderID && req.RecipientID == recipientID {
			out := *req
			return &out, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *MemSocialRepository) GetFriendRequest(_ context.Context, requestID string) (*social.FriendRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[requestID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *req
	return &out, nil
}

func (r *MemSocialRepository) AcceptFriendRequest(_ context.Context, requestID string) (*social.FriendRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[requestID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	r.befriend(req.SenderID, req.RecipientID)
	r.befriend(req.RecipientID, req.SenderID)
	delete(r.requests, requestID)
	out := *req
	return &out, nil
}

func (r *MemSocialRepository) ListPendingRequests(_ context.Context, recipientID string) ([]social.FriendRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	reqs := []social.FriendRequest{}
	for _, req := range r.requests {
		if req.RecipientID != recipientID {
			continue
		}
		out := *req
		if u, ok := r.users[req.SenderID]; ok {
			sender := social.User{ID: u.ID, FirstName: u.FirstName, LastName: u.LastName, Avatar: u.Avatar}
			out.Sender = &sender
		}
		reqs = append(reqs, out)
	}
	sort.Slice(reqs, func(i, j int) bool { return reqs[i].CreatedAt.Before(reqs[j].CreatedAt) })
	return reqs, nil
}

func (r *MemSocialRepository) GetUser(_ context.Context, userID string) (*social.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	out := *u
	return &out, nil
}

func (r *MemSocialRepository) ListFriends(_ context.Context, userID string) ([]social.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := []social.User{}
	for id := range r.friends[userID] {
		if u, ok := r.users[id]; ok {
			users = append(users, *u)
		}
	}
	sortUsers(users)
	return users, nil
}

func (r *MemSocialRepository) ListCandidates(_ context.Context, userID string) ([]social.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	users := []social.User{}
	for id, u := range r.users {
		if !u.Verified || id == userID {
			continue
		}
		if _, friend := r.friends[userID][id]; friend {
			continue
		}
		users = append(users, *u)
	}
	sortUsers(users)
	return users, nil
}

func (r *MemSocialRepository) UpdateProfile(_ context.Context, userID string, p social.ProfileUpdate) (*social.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	p.Apply(u)
	u.UpdatedAt = r.now()
	out := *u
	return &out, nil
}

func (r *MemSocialRepository) SetPresence(_ context.Context, userID string, status social.Status, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	u := r.ensureUser(userID)
	if !u.StatusChangedAt.Before(at) {
		return nil
	}
	u.Status = status
	u.StatusChangedAt = at
	return nil
}

// ensureUser returns the user with id, creating a verified placeholder if
// needed. Callers hold r.mu.
func (r *MemSocialRepository) ensureUser(id string) *social.User {
	u, ok := r.users[id]
	if !ok {
		now := r.now()
		u = &social.User{ID: id, Verified: true, Status: social.StatusOffline, CreatedAt: now, UpdatedAt: now}
		r.users[id] = u
	}
	return u
}

func (r *MemSocialRepository) befriend(a, b string) {
	set, ok := r.friends[a]
	if !ok {
		set = make(map[string]struct{})
		r.friends[a] = set
	}
	set[b] = struct{}{}
}

func sortUsers(users []social.User) {
	sort.Slice(users, func(i, j int) bool {
		if users[i].FirstName == users[j].FirstName {
			return users[i].ID < users[j].ID
		}
		return users[i].FirstName < users[j].FirstName
	})
}
