// Package migration bootstraps the schema on an empty database.
package migration

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"go.uber.org/zap"
)

type migrationStep struct {
	Name string
	SQL  string
}

// sentinelTable is checked first; if it exists the schema is assumed current.
const sentinelTable = "public.users"

var steps = []migrationStep{
	{
		Name: "create_table_users",
		SQL: `CREATE TABLE IF NOT EXISTS users (
  id             BIGSERIAL    PRIMARY KEY,
  auth_uid       UUID         NOT NULL UNIQUE,
  name           VARCHAR(100) NOT NULL,
  last_name      VARCHAR(100) NOT NULL,
  email          VARCHAR(100) NOT NULL,
  phone          VARCHAR(20),
  password       TEXT         NOT NULL,
  is_admin       BOOLEAN      NOT NULL DEFAULT false,
  is_active      BOOLEAN      NOT NULL DEFAULT true,
  verified_email BOOLEAN      NOT NULL DEFAULT false,
  created_at     TIMESTAMPTZ  NOT NULL DEFAULT now(),
  updated_at     TIMESTAMPTZ  NOT NULL DEFAULT now(),
  deleted_at     TIMESTAMPTZ
);`,
	},
	{
		// Soft-deleted accounts keep their email and phone reserved.
		Name: "create_unique_index_users_email",
		SQL:  `CREATE UNIQUE INDEX IF NOT EXISTS uq_users_email ON users (email);`,
	},
	{
		Name: "create_unique_index_users_phone",
		SQL:  `CREATE UNIQUE INDEX IF NOT EXISTS uq_users_phone ON users (phone) WHERE phone IS NOT NULL;`,
	},
	{
		Name: "create_table_groups",
		SQL: `CREATE TABLE IF NOT EXISTS groups (
  id         BIGSERIAL   PRIMARY KEY,
  uid        UUID        NOT NULL UNIQUE,
  name       VARCHAR(30) NOT NULL,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		Name: "create_table_group_assigned_users",
		SQL: `CREATE TABLE IF NOT EXISTS group_assigned_users (
  id         BIGSERIAL   PRIMARY KEY,
  uid        UUID        NOT NULL UNIQUE,
  role       VARCHAR(20) NOT NULL CHECK (role IN ('SUPER_ADMIN', 'ADMIN', 'USER')),
  user_id    BIGINT      NOT NULL REFERENCES users (id),
  group_id   BIGINT      NOT NULL REFERENCES groups (id) ON DELETE CASCADE,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  UNIQUE (user_id, group_id)
);`,
	},
	{
		Name: "create_table_group_requests",
		SQL: `CREATE TABLE IF NOT EXISTS group_requests (
  id         BIGSERIAL   PRIMARY KEY,
  uid        UUID        NOT NULL UNIQUE,
  status     VARCHAR(20) NOT NULL DEFAULT 'PENDING' CHECK (status IN ('PENDING', 'REJECTED')),
  user_id    BIGINT      NOT NULL REFERENCES users (id),
  group_id   BIGINT      NOT NULL REFERENCES groups (id) ON DELETE CASCADE,
  created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
  UNIQUE (user_id, group_id)
);`,
	},
	{
		Name: "create_table_labels",
		SQL: `CREATE TABLE IF NOT EXISTS labels (
  id               BIGSERIAL   PRIMARY KEY,
  uid              UUID        NOT NULL UNIQUE,
  name             VARCHAR(30) NOT NULL UNIQUE,
  text_color       VARCHAR(9)  NOT NULL,
  background_color VARCHAR(9)  NOT NULL,
  created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at       TIMESTAMPTZ NOT NULL DEFAULT now()
);`,
	},
	{
		// No cascade: a group with labels cannot be removed until they are.
		Name: "create_table_group_labels",
		SQL: `CREATE TABLE IF NOT EXISTS group_labels (
  id               BIGSERIAL   PRIMARY KEY,
  uid              UUID        NOT NULL UNIQUE,
  name             VARCHAR(30) NOT NULL,
  text_color       VARCHAR(9)  NOT NULL,
  background_color VARCHAR(9)  NOT NULL,
  group_id         BIGINT      NOT NULL REFERENCES groups (id),
  created_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
  updated_at       TIMESTAMPTZ NOT NULL DEFAULT now(),
  UNIQUE (group_id, name)
);`,
	},
	{
		Name: "create_index_group_assigned_users_group_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_group_assigned_users_group_id ON group_assigned_users (group_id);`,
	},
	{
		Name: "create_index_group_requests_group_id",
		SQL:  `CREATE INDEX IF NOT EXISTS idx_group_requests_group_id ON group_requests (group_id);`,
	},
}

// EnsureMigrated runs every step when the sentinel table is missing.
func EnsureMigrated(ctx context.Context, db *sql.DB, log *zap.Logger, dbHost string) error {
	start := time.Now()
	log = log.With(zap.String("component", "database"), zap.String("db_host", dbHost))
	log.Info("db_migration_check")

	var exists bool
	err := db.QueryRowContext(ctx, "SELECT to_regclass($1) IS NOT NULL", sentinelTable).Scan(&exists)
	if err != nil {
		log.Error("db_migration_failed", zap.Error(err), zap.Duration("duration", time.Since(start)))
		return fmt.Errorf("failed to check sentinel table: %w", err)
	}
	if exists {
		log.Info("db_migration_skip", zap.String("reason", "schema already exists"),
			zap.Duration("duration", time.Since(start)))
		return nil
	}

	log.Info("db_migration_start", zap.Int("steps", len(steps)))
	for _, step := range steps {
		stepStart := time.Now()
		if _, err := db.ExecContext(ctx, step.SQL); err != nil {
			log.Error("db_migration_failed",
				zap.String("migration_step", step.Name),
				zap.Error(err),
				zap.Duration("duration", time.Since(start)),
			)
			return fmt.Errorf("migration step %s failed: %w", step.Name, err)
		}
		log.Debug("db_migration_step",
			zap.String("migration_step", step.Name),
			zap.Duration("step_duration", time.Since(stepStart)),
		)
	}

	log.Info("db_migration_success", zap.Duration("duration", time.Since(start)))
	return nil
}
