package wallet

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMock(t *testing.T) (Repository, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)

	sqlxDB := sqlx.NewDb(db, "sqlmock")
	repo := NewRepository(sqlxDB)

	closer := func() {
		sqlxDB.Close()
	}

	return repo, mock, closer
}

var walletCols = []string{"id", "user_id", "balance_cents", "updated_at"}

func TestGetByUserID(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	now := time.Now()

	mock.ExpectQuery(`INSERT INTO wallets \(user_id\) VALUES \(\$1\)`).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows(walletCols).AddRow(1, 7, 10000, now))

	w, err := repo.GetByUserID(context.Background(), 7)

	require.NoError(t, err)
	assert.Equal(t, int64(10000), w.BalanceCents)
}

func TestAddTransaction(t *testing.T) {
	now := time.Now()

	expectWalletTx := func(mock sqlmock.Sqlmock, balance int64) {
		mock.ExpectBegin()
		mock.ExpectQuery(`INSERT INTO wallets \(user_id\) VALUES \(\$1\)`).
			WithArgs(7).
			WillReturnRows(sqlmock.NewRows(walletCols).AddRow(1, 7, balance, now))
		mock.ExpectQuery(`SELECT .+ FROM wallets WHERE id = \$1 FOR UPDATE`).
			WithArgs(1).
			WillReturnRows(sqlmock.NewRows(walletCols).AddRow(1, 7, balance, now))
	}

	t.Run("charge within balance", func(t *testing.T) {
		repo, mock, close := setupMock(t)
		defer close()

		expectWalletTx(mock, 10000)
		mock.ExpectQuery(`UPDATE wallets SET balance_cents = balance_cents \+ \$2`).
			WithArgs(1, int64(-5000)).
			WillReturnRows(sqlmock.NewRows(walletCols).AddRow(1, 7, 5000, now))
		mock.ExpectExec(`INSERT INTO wallet_transactions`).
			WithArgs(1, int64(-5000), TxSessionPayment, "session with Anna").
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		w, err := repo.AddTransaction(context.Background(), 7, -5000, TxSessionPayment, "session with Anna")

		require.NoError(t, err)
		assert.Equal(t, int64(5000), w.BalanceCents)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("overdraw rejected", func(t *testing.T) {
		repo, mock, close := setupMock(t)
		defer close()

		expectWalletTx(mock, 1000)
		mock.ExpectRollback()

		_, err := repo.AddTransaction(context.Background(), 7, -5000, TxSessionPayment, "session with Anna")

		assert.ErrorIs(t, err, ErrInsufficientBalance)
	})

	t.Run("top-up", func(t *testing.T) {
		repo, mock, close := setupMock(t)
		defer close()

		expectWalletTx(mock, 0)
		mock.ExpectQuery(`UPDATE wallets SET balance_cents = balance_cents \+ \$2`).
			WithArgs(1, int64(10000)).
			WillReturnRows(sqlmock.NewRows(walletCols).AddRow(1, 7, 10000, now))
		mock.ExpectExec(`INSERT INTO wallet_transactions`).
			WithArgs(1, int64(10000), TxTopUp, "wallet top-up").
			WillReturnResult(sqlmock.NewResult(1, 1))
		mock.ExpectCommit()

		w, err := repo.AddTransaction(context.Background(), 7, 10000, TxTopUp, "wallet top-up")

		require.NoError(t, err)
		assert.Equal(t, int64(10000), w.BalanceCents)
	})
}

func TestGetTransactions(t *testing.T) {
	repo, mock, close := setupMock(t)
	defer close()

	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT wt.id, wt.wallet_id, wt.amount_cents, wt.type, wt.description, wt.created_at`)).
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"id", "wallet_id", "amount_cents", "type", "description", "created_at"}).
			AddRow(2, 1, -5000, TxSessionPayment, "session with Anna", now).
			AddRow(1, 1, 10000, TxTopUp, "wallet top-up", now))

	txs, err := repo.GetTransactions(context.Background(), 7)

	require.NoError(t, err)
	require.Len(t, txs, 2)
	assert.Equal(t, int64(-5000), txs[0].AmountCents)
}
