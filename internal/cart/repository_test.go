package cart

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/redmonkez12/greennest-api/internal/database"
)

func newMockRepository(t *testing.T) (*Repository, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	return NewRepository(database.NewBunDB(sqlDB)), mock
}

func TestRepository_Get(t *testing.T) {
	repo, mock := newMockRepository(t)
	userID := uuid.New()

	mock.ExpectQuery(`SELECT "u"."id", "u"."cart" FROM "users" AS "u"`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "cart"}).
			AddRow(userID.String(), []byte(`[{"productId":"b","name":"Moss","price":4.5,"image":"m.png","quantity":1},{"productId":"a","name":"Fern","price":10,"image":"","quantity":3}]`)))

	c, err := repo.Get(context.Background(), userID)
	require.NoError(t, err)

	assert.Equal(t, Cart{
		{ProductID: "b", Name: "Moss", Price: 4.5, Image: "m.png", Quantity: 1},
		{ProductID: "a", Name: "Fern", Price: 10, Quantity: 3},
	}, c)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_GetMissingUser(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectQuery(`SELECT .* FROM "users"`).WillReturnRows(sqlmock.NewRows([]string{"id", "cart"}))

	_, err := repo.Get(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestRepository_ModifyLocksRowAndWritesJSON(t *testing.T) {
	repo, mock := newMockRepository(t)
	userID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT .* FROM "users" AS "u" WHERE \(id = '` + userID.String() + `'\) FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "cart"}).
			AddRow(userID.String(), []byte(`[{"productId":"p1","name":"Fern","price":10,"image":"","quantity":1}]`)))
	mock.ExpectExec(`UPDATE "users" AS "u" SET cart = '\[\{"productId":"p1","name":"Fern","price":10,"image":"","quantity":2\}\]'::jsonb`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	c, err := repo.Modify(context.Background(), userID, func(c Cart) Cart {
		return c.Add(Item{ProductID: "p1"})
	})
	require.NoError(t, err)
	require.Len(t, c, 1)
	assert.Equal(t, 2, c[0].Quantity)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ModifyEmptyCartWritesEmptyArray(t *testing.T) {
	repo, mock := newMockRepository(t)
	userID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "cart"}).AddRow(userID.String(), []byte(`[]`)))
	mock.ExpectExec(`SET cart = '\[\]'::jsonb`).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	c, err := repo.Modify(context.Background(), userID, Cart.Clear)
	require.NoError(t, err)
	assert.NotNil(t, c)
	assert.Empty(t, c)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ModifyMissingUserRollsBack(t *testing.T) {
	repo, mock := newMockRepository(t)

	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE`).WillReturnRows(sqlmock.NewRows([]string{"id", "cart"}))
	mock.ExpectRollback()

	called := false
	_, err := repo.Modify(context.Background(), uuid.New(), func(c Cart) Cart {
		called = true
		return c
	})
	assert.ErrorIs(t, err, ErrUserNotFound)
	assert.False(t, called)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_ModifyWriteFailureRollsBack(t *testing.T) {
	repo, mock := newMockRepository(t)
	userID := uuid.New()

	mock.ExpectBegin()
	mock.ExpectQuery(`FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "cart"}).AddRow(userID.String(), []byte(`[]`)))
	mock.ExpectExec(`UPDATE "users"`).WillReturnError(errors.New("disk full"))
	mock.ExpectRollback()

	_, err := repo.Modify(context.Background(), userID, func(c Cart) Cart {
		return c.Add(Item{ProductID: "p1"})
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to save cart")
	assert.NoError(t, mock.ExpectationsWereMet())
}
