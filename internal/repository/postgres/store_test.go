package postgres

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"groupapi/internal/model"
	"groupapi/internal/repository"
)

var groupColumns = []string{"id", "uid", "name", "created_at", "updated_at"}

var userColumns = []string{
	"id", "auth_uid", "name", "last_name", "email", "phone", "password",
	"is_admin", "is_active", "verified_email", "created_at", "updated_at", "deleted_at",
}

func newMock(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("an error '%s' was not expected when opening a stub database connection", err)
	}
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestStore_FindOne(t *testing.T) {
	db, mock := newMock(t)
	store := NewStore(db, GroupTable)
	ctx := context.Background()
	now := time.Now().UTC()

	t.Run("found", func(t *testing.T) {
		mock.ExpectQuery(`SELECT id, uid, name, created_at, updated_at FROM groups WHERE uid = \$1 LIMIT 1`).
			WithArgs("g-1").
			WillReturnRows(sqlmock.NewRows(groupColumns).AddRow(7, "g-1", "ops", now, now))

		g, err := store.FindOne(ctx, repository.Query{Where: repository.Where{"uid": "g-1"}})

		require.NoError(t, err)
		require.NotNil(t, g)
		assert.Equal(t, int64(7), g.ID)
		assert.Equal(t, "ops", g.Name)
	})

	t.Run("miss returns nil without error", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM groups WHERE uid = \$1 LIMIT 1`).
			WithArgs("missing").
			WillReturnError(sql.ErrNoRows)

		g, err := store.FindOne(ctx, repository.Query{Where: repository.Where{"uid": "missing"}})

		assert.NoError(t, err)
		assert.Nil(t, g)
	})

	t.Run("alternatives are OR-ed", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM groups WHERE \(uid = \$1 OR name = \$2\) LIMIT 1`).
			WithArgs("g-1", "ops").
			WillReturnRows(sqlmock.NewRows(groupColumns).AddRow(7, "g-1", "ops", now, now))

		g, err := store.FindOne(ctx, repository.Query{
			AnyOf: []repository.Where{{"uid": "g-1"}, {"name": "ops"}},
		})

		require.NoError(t, err)
		assert.NotNil(t, g)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_SoftDeleteFiltering(t *testing.T) {
	db, mock := newMock(t)
	store := NewStore(db, UserTable)
	ctx := context.Background()

	t.Run("normal reads exclude deleted rows", func(t *testing.T) {
		mock.ExpectQuery(`SELECT (.+) FROM users WHERE email = \$1 AND deleted_at IS NULL LIMIT 1`).
			WithArgs("a@x.com").
			WillReturnError(sql.ErrNoRows)

		u, err := store.FindOne(ctx, repository.Query{Where: repository.Where{"email": "a@x.com"}})

		assert.NoError(t, err)
		assert.Nil(t, u)
	})

	t.Run("WithDeleted includes them", func(t *testing.T) {
		deletedAt := time.Now().UTC()
		mock.ExpectQuery(`SELECT (.+) FROM users WHERE email = \$1 LIMIT 1`).
			WithArgs("a@x.com").
			WillReturnRows(sqlmock.NewRows(userColumns).AddRow(
				3, "au-1", "Ann", "Lee", "a@x.com", nil, "hash",
				false, true, true, deletedAt, deletedAt, deletedAt,
			))

		u, err := store.FindOne(ctx, repository.Query{
			Where:       repository.Where{"email": "a@x.com"},
			WithDeleted: true,
		})

		require.NoError(t, err)
		require.NotNil(t, u)
		assert.Nil(t, u.Phone)
		require.NotNil(t, u.DeletedAt)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_FindManyAndCount(t *testing.T) {
	db, mock := newMock(t)
	store := NewStore(db, GroupTable)
	ctx := context.Background()
	now := time.Now().UTC()

	q := repository.Query{
		Search: &repository.FreeText{Value: "op", Fields: []string{"name"}},
		Conds:  []sq.Sqlizer{sq.Expr("id IN (SELECT group_id FROM group_assigned_users WHERE user_id = ?)", 3)},
		Order:  []string{"id DESC"},
		Limit:  10,
		Offset: 20,
	}

	mock.ExpectQuery(`SELECT COUNT\(\*\) FROM groups WHERE \(name ILIKE \$1\) AND id IN \(SELECT group_id FROM group_assigned_users WHERE user_id = \$2\)`).
		WithArgs("%op%", 3).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(21))

	mock.ExpectQuery(`SELECT (.+) FROM groups WHERE (.+) ORDER BY id DESC LIMIT 10 OFFSET 20`).
		WithArgs("%op%", 3).
		WillReturnRows(sqlmock.NewRows(groupColumns).AddRow(1, "g-1", "ops", now, now))

	total, err := store.Count(ctx, q)
	require.NoError(t, err)
	assert.Equal(t, 21, total)

	items, err := store.FindMany(ctx, q)
	require.NoError(t, err)
	assert.Len(t, items, 1)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_FindManyEmpty(t *testing.T) {
	db, mock := newMock(t)
	store := NewStore(db, LabelTable)

	mock.ExpectQuery(`SELECT (.+) FROM labels`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "uid", "name", "text_color", "background_color", "created_at", "updated_at"}))

	items, err := store.FindMany(context.Background(), repository.Query{})

	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestStore_SaveInsert(t *testing.T) {
	db, mock := newMock(t)
	store := NewStore(db, GroupTable)
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }

	mock.ExpectQuery(`INSERT INTO groups \(uid,name,created_at,updated_at\) VALUES \(\$1,\$2,\$3,\$4\) RETURNING id, uid, name, created_at, updated_at`).
		WithArgs("g-1", "ops", now, now).
		WillReturnRows(sqlmock.NewRows(groupColumns).AddRow(5, "g-1", "ops", now, now))

	g, err := store.Save(context.Background(), &model.Group{UID: "g-1", Name: "ops"})

	require.NoError(t, err)
	assert.Equal(t, int64(5), g.ID)
	assert.Equal(t, now, g.CreatedAt)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_SaveUpdate(t *testing.T) {
	db, mock := newMock(t)
	store := NewStore(db, GroupTable)
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	store.now = func() time.Time { return now }
	ctx := context.Background()

	t.Run("rewrites the row", func(t *testing.T) {
		mock.ExpectQuery(`UPDATE groups SET created_at = \$1, name = \$2, uid = \$3, updated_at = \$4 WHERE id = \$5 RETURNING (.+)`).
			WithArgs(created, "renamed", "g-1", now, int64(5)).
			WillReturnRows(sqlmock.NewRows(groupColumns).AddRow(5, "g-1", "renamed", created, now))

		g, err := store.Save(ctx, &model.Group{
			ID: 5, UID: "g-1", Name: "renamed",
			Timestamps: model.Timestamps{CreatedAt: created, UpdatedAt: created},
		})

		require.NoError(t, err)
		assert.Equal(t, "renamed", g.Name)
		assert.Equal(t, now, g.UpdatedAt)
	})

	t.Run("vanished row", func(t *testing.T) {
		mock.ExpectQuery(`UPDATE groups SET (.+) WHERE id = \$5`).
			WillReturnError(sql.ErrNoRows)

		_, err := store.Save(ctx, &model.Group{ID: 9, UID: "g-9", Name: "x"})

		assert.ErrorIs(t, err, repository.ErrNoRowsAffected)
	})

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_SaveClassifiesErrors(t *testing.T) {
	tests := []struct {
		name string
		code string
		kind repository.ErrorKind
	}{
		{"unique", "23505", repository.KindUniqueViolation},
		{"too long", "22001", repository.KindValueTooLong},
		{"foreign key", "23503", repository.KindForeignKeyViolation},
		{"not null", "23502", repository.KindNotNullViolation},
		{"other", "40001", repository.KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock := newMock(t)
			store := NewStore(db, LabelTable)

			mock.ExpectQuery(`INSERT INTO labels`).
				WillReturnError(&pgconn.PgError{Code: tt.code, Detail: "Key (name)=(bug) already exists."})

			_, err := store.Save(context.Background(), &model.Label{UID: "l-1", Name: "bug"})

			require.Error(t, err)
			assert.Equal(t, tt.kind, repository.KindOf(err))
			if tt.kind != repository.KindUnknown {
				se, ok := repository.AsStoreError(err)
				require.True(t, ok)
				assert.Equal(t, "Key (name)=(bug) already exists.", se.Detail)
			}
		})
	}
}

func TestStore_Remove(t *testing.T) {
	db, mock := newMock(t)
	store := NewStore(db, GroupLabelTable)
	ctx := context.Background()

	mock.ExpectExec(`DELETE FROM group_labels WHERE id = \$1`).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, store.Remove(ctx, &model.GroupLabel{ID: 4}))

	mock.ExpectExec(`DELETE FROM group_labels WHERE id = \$1`).
		WithArgs(int64(5)).
		WillReturnError(&pgconn.PgError{Code: "23503"})

	err := store.Remove(ctx, &model.GroupLabel{ID: 5})
	assert.Equal(t, repository.KindForeignKeyViolation, repository.KindOf(err))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_SoftRemove(t *testing.T) {
	db, mock := newMock(t)
	users := NewStore(db, UserTable)
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	users.now = func() time.Time { return now }
	ctx := context.Background()

	mock.ExpectExec(`UPDATE users SET deleted_at = \$1, updated_at = \$2 WHERE id = \$3`).
		WithArgs(now, now, int64(3)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	assert.NoError(t, users.SoftRemove(ctx, &model.User{ID: 3}))

	mock.ExpectExec(`UPDATE users SET deleted_at`).
		WithArgs(now, now, int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	assert.ErrorIs(t, users.SoftRemove(ctx, &model.User{ID: 4}), repository.ErrNoRowsAffected)

	groups := NewStore(db, GroupTable)
	err := groups.SoftRemove(ctx, &model.Group{ID: 1})
	assert.True(t, errors.Is(err, repository.ErrSoftDeleteUnsupported))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestNewStores(t *testing.T) {
	db, _ := newMock(t)
	stores := NewStores(db)

	assert.Equal(t, "user", stores.Users.Entity())
	assert.Equal(t, "group", stores.Groups.Entity())
	assert.Equal(t, "group member", stores.Members.Entity())
	assert.Equal(t, "group request", stores.Requests.Entity())
	assert.Equal(t, "label", stores.Labels.Entity())
	assert.Equal(t, "group label", stores.GroupLabels.Entity())
}
