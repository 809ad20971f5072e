package postgres

import (
	"context"
	"database/sql"
)

// EnsureSchema creates the one table this service owns. The users and
// products tables are owned by the CRUD collaborators and only read here.
func EnsureSchema(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
CREATE TABLE IF NOT EXISTS user_activity (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  product_id TEXT NOT NULL DEFAULT '',
  action TEXT NOT NULL,

  is_loggedin_user BOOLEAN NOT NULL DEFAULT FALSE,

  views BIGINT NOT NULL DEFAULT 0,
  purchases BIGINT NOT NULL DEFAULT 0,
  cart_adds BIGINT NOT NULL DEFAULT 0,

  created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),

  UNIQUE (user_id, product_id, action)
);
`)
	return err
}
