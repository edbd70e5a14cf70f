package adapter

import (
	"context"
	"database/sql"
	"time"

	social "go-tawk/internal/pkg/social/application/domain"
	repository "go-tawk/internal/pkg/social/persistence/repository/port"
	"go-tawk/pkg/logger"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/uptrace/bun"
	"github.com/uptrace/bun/driver/pgdriver"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

type BunSocialRepository struct {
	db     *bun.DB
	logger *logger.Logger
}

func NewBunSocialRepository(db *bun.DB, log *logger.Logger) *BunSocialRepository {
	if log == nil {
		log = &logger.Logger{}
	}
	return &BunSocialRepository{db: db, logger: log}
}

var _ repository.SocialRepository = (*BunSocialRepository)(nil)

func (r *BunSocialRepository) CreateFriendRequest(ctx context.Context, req *social.FriendRequest) error {
	if !validID(req.SenderID) || !validID(req.RecipientID) {
		return repository.ErrUnknownUser
	}
	_, err := r.db.NewInsert().Model(req).Returning("*").Exec(ctx)
	switch pgCode(err) {
	case "":
	case pgUniqueViolation:
		return repository.ErrDuplicate
	case pgForeignKeyViolation:
		return repository.ErrUnknownUser
	}
	if err != nil {
		return errors.Wrap(err, "socialRepo.CreateFriendRequest.Insert")
	}
	return nil
}

func (r *BunSocialRepository) FindPendingRequest(ctx context.Context, senderID, recipientID string) (*social.FriendRequest, error) {
	if !validID(senderID) || !validID(recipientID) {
		return nil, repository.ErrNotFound
	}
	req := new(social.FriendRequest)
	err := r.db.NewSelect().Model(req).
		Where("fr.sender_id = ?", senderID).
		Where("fr.recipient_id = ?", recipientID).
		Scan(ctx)
	if err != nil {
		return nil, notFound(err, "socialRepo.FindPendingRequest.Scan")
	}
	return req, nil
}

func (r *BunSocialRepository) GetFriendRequest(ctx context.Context, requestID string) (*social.FriendRequest, error) {
	if !validID(requestID) {
		return nil, repository.ErrNotFound
	}
	req := new(social.FriendRequest)
	if err := r.db.NewSelect().Model(req).Where("fr.id = ?", requestID).Scan(ctx); err != nil {
		return nil, notFound(err, "socialRepo.GetFriendRequest.Scan")
	}
	return req, nil
}

func (r *BunSocialRepository) AcceptFriendRequest(ctx context.Context, requestID string) (*social.FriendRequest, error) {
	if !validID(requestID) {
		return nil, repository.ErrNotFound
	}
	req := new(social.FriendRequest)
	err := r.db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if err := tx.NewSelect().Model(req).Where("fr.id = ?", requestID).For("UPDATE").Scan(ctx); err != nil {
			return notFound(err, "socialRepo.AcceptFriendRequest.Lock")
		}

		rows := []social.Friendship{
			{UserID: req.SenderID, FriendID: req.RecipientID},
			{UserID: req.RecipientID, FriendID: req.SenderID},
		}
		if _, err := tx.NewInsert().Model(&rows).On("CONFLICT DO NOTHING").Exec(ctx); err != nil {
			return errors.Wrap(err, "socialRepo.AcceptFriendRequest.InsertFriendship")
		}

		if _, err := tx.NewDelete().Model((*social.FriendRequest)(nil)).Where("id = ?", requestID).Exec(ctx); err != nil {
			return errors.Wrap(err, "socialRepo.AcceptFriendRequest.Delete")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	r.logger.Debug("friendship created", "request_id", requestID,
		"sender_id", req.SenderID, "recipient_id", req.RecipientID)
	return req, nil
}

func (r *BunSocialRepository) ListPendingRequests(ctx context.Context, recipientID string) ([]social.FriendRequest, error) {
	reqs := []social.FriendRequest{}
	if !validID(recipientID) {
		return reqs, nil
	}
	err := r.db.NewSelect().Model(&reqs).
		Relation("Sender", func(q *bun.SelectQuery) *bun.SelectQuery {
			return q.Column("id", "first_name", "last_name", "avatar")
		}).
		Where("fr.recipient_id = ?", recipientID).
		Order("fr.created_at ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "socialRepo.ListPendingRequests.Scan")
	}
	return reqs, nil
}

func (r *BunSocialRepository) GetUser(ctx context.Context, userID string) (*social.User, error) {
	if !validID(userID) {
		return nil, repository.ErrNotFound
	}
	user := new(social.User)
	if err := r.db.NewSelect().Model(user).Where("u.id = ?", userID).Scan(ctx); err != nil {
		return nil, notFound(err, "socialRepo.GetUser.Scan")
	}
	return user, nil
}

func (r *BunSocialRepository) ListFriends(ctx context.Context, userID string) ([]social.User, error) {
	users := []social.User{}
	if !validID(userID) {
		return users, nil
	}
	err := r.db.NewSelect().Model(&users).
		Join("JOIN social.friendship AS f ON f.friend_id = u.id").
		Where("f.user_id = ?", userID).
		Order("u.first_name ASC", "u.id ASC").
		Scan(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "socialRepo.ListFriends.Scan")
	}
	return users, nil
}

func (r *BunSocialRepository) ListCandidates(ctx context.Context, userID string) ([]social.User, error) {
	users := []social.User{}
	q := r.db.NewSelect().Model(&users).
		Column("u.id", "u.first_name", "u.last_name", "u.avatar", "u.status").
		Where("u.verified")
	if validID(userID) {
		friends := r.db.NewSelect().
			Table("social.friendship").
			Column("friend_id").
			Where("user_id = ?", userID)
		q = q.Where("u.id <> ?", userID).Where("u.id NOT IN (?)", friends)
	}
	if err := q.Order("u.first_name ASC", "u.id ASC").Scan(ctx); err != nil {
		return nil, errors.Wrap(err, "socialRepo.ListCandidates.Scan")
	}
	return users, nil
}

func (r *BunSocialRepository) UpdateProfile(ctx context.Context, userID string, p social.ProfileUpdate) (*social.User, error) {
	if !validID(userID) {
		return nil, repository.ErrNotFound
	}
	user := new(social.User)
	q := r.db.NewUpdate().Model(user).
		Set("updated_at = ?", time.Now().UTC()).
		Where("u.id = ?", userID).
		Returning("*")
	if p.FirstName != nil {
		q = q.Set("first_name = ?", *p.FirstName)
	}
	if p.LastName != nil {
		q = q.Set("last_name = ?", *p.LastName)
	}
	if p.About != nil {
		q = q.Set("about = ?", *p.About)
	}
	if p.Avatar != nil {
		q = q.Set("avatar = ?", *p.Avatar)
	}
	res, err := q.Exec(ctx)
	if err != nil {
		return nil, errors.Wrap(err, "socialRepo.UpdateProfile.Update")
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, repository.ErrNotFound
	}
	return user, nil
}

func (r *BunSocialRepository) SetPresence(ctx context.Context, userID string, status social.Status, at time.Time) error {
	if !validID(userID) {
		return nil
	}
	_, err := r.db.NewUpdate().Model((*social.User)(nil)).
		Set("status = ?", status).
		Set("status_changed_at = ?", at).
		Where("u.id = ?", userID).
		Where("u.status_changed_at < ?", at).
		Exec(ctx)
	if err != nil {
		return errors.Wrap(err, "socialRepo.SetPresence.Update")
	}
	return nil
}

// validID reports whether id can name a row. Identities that are not uuids
// (for example from the query authenticator) never match a stored user.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func notFound(err error, op string) error {
	if errors.Is(err, sql.ErrNoRows) {
		return repository.ErrNotFound
	}
	return errors.Wrap(err, op)
}

func pgCode(err error) string {
	var pgErr pgdriver.Error
	if errors.As(err, &pgErr) {
		return pgErr.Field('C')
	}
	return ""
}
