package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// schema is applied in order by Migrate. Every statement is idempotent.
// social.user_account is owned by the auth service; it is created here only
// so a fresh database can run the realtime core on its own.
var schema = []string{
	`CREATE EXTENSION IF NOT EXISTS pgcrypto`,
	`CREATE SCHEMA IF NOT EXISTS social`,
	`CREATE SCHEMA IF NOT EXISTS chat`,
	`CREATE TABLE IF NOT EXISTS social.user_account (
		id                uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		first_name        text NOT NULL DEFAULT '',
		last_name         text NOT NULL DEFAULT '',
		email             text UNIQUE,
		avatar            text NOT NULL DEFAULT '',
		about             text NOT NULL DEFAULT '',
		verified          boolean NOT NULL DEFAULT false,
		status            text NOT NULL DEFAULT 'Offline',
		status_changed_at timestamptz NOT NULL DEFAULT 'epoch',
		created_at        timestamptz NOT NULL DEFAULT now(),
		updated_at        timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE TABLE IF NOT EXISTS social.friendship (
		user_id    uuid NOT NULL REFERENCES social.user_account(id) ON DELETE CASCADE,
		friend_id  uuid NOT NULL REFERENCES social.user_account(id) ON DELETE CASCADE,
		created_at timestamptz NOT NULL DEFAULT now(),
		PRIMARY KEY (user_id, friend_id)
	)`,
	`CREATE TABLE IF NOT EXISTS social.friend_request (
		id           uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		sender_id    uuid NOT NULL REFERENCES social.user_account(id) ON DELETE CASCADE,
		recipient_id uuid NOT NULL REFERENCES social.user_account(id) ON DELETE CASCADE,
		created_at   timestamptz NOT NULL DEFAULT now(),
		CHECK (sender_id <> recipient_id)
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS friend_request_pair_idx
		ON social.friend_request (sender_id, recipient_id)`,
	`CREATE INDEX IF NOT EXISTS friend_request_recipient_idx
		ON social.friend_request (recipient_id, created_at)`,
	`CREATE TABLE IF NOT EXISTS chat.conversation (
		id              uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		participant_lo  text COLLATE "C" NOT NULL,
		participant_hi  text COLLATE "C" NOT NULL,
		created_at      timestamptz NOT NULL DEFAULT now(),
		last_message_at timestamptz,
		message_count   bigint NOT NULL DEFAULT 0,
		CHECK (participant_lo < participant_hi)
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS conversation_pair_idx
		ON chat.conversation (participant_lo, participant_hi)`,
	`CREATE INDEX IF NOT EXISTS conversation_hi_idx
		ON chat.conversation (participant_hi)`,
	`CREATE TABLE IF NOT EXISTS chat.message (
		id              uuid PRIMARY KEY DEFAULT gen_random_uuid(),
		conversation_id uuid NOT NULL REFERENCES chat.conversation(id) ON DELETE CASCADE,
		seq             bigint NOT NULL,
		sender_id       text NOT NULL,
		recipient_id    text NOT NULL,
		msg_type        text NOT NULL,
		body            text NOT NULL,
		created_at      timestamptz NOT NULL,
		UNIQUE (conversation_id, seq)
	)`,
}

// Migrate creates the schemas, tables and indexes used by the service.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	for i, stmt := range schema {
		if _, err := pool.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("postgres: migrate step %d: %w", i, err)
		}
	}
	return nil
}
