package wallet

import (
	"context"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrInsufficientBalance = errors.New("insufficient wallet balance")

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) GetByUserID(ctx context.Context, userID int) (*Wallet, error) {
	query := `
		INSERT INTO wallets (user_id) VALUES ($1)
		ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING id, user_id, balance_cents, updated_at`

	var w Wallet
	if err := r.db.GetContext(ctx, &w, query, userID); err != nil {
		return nil, err
	}

	return &w, nil
}

// AddTransaction moves money atomically: the wallet row is locked, the
// resulting balance checked, and the ledger entry written in the same
// transaction. Negative amounts that would overdraw the wallet fail
// with ErrInsufficientBalance.
func (r *repository) AddTransaction(ctx context.Context, userID int, amountCents int64, txType, description string) (*Wallet, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var w Wallet
	err = tx.GetContext(ctx, &w, `
		INSERT INTO wallets (user_id) VALUES ($1)
		ON CONFLICT (user_id) DO UPDATE SET user_id = EXCLUDED.user_id
		RETURNING id, user_id, balance_cents, updated_at`, userID)
	if err != nil {
		return nil, err
	}

	err = tx.GetContext(ctx, &w, `
		SELECT id, user_id, balance_cents, updated_at FROM wallets WHERE id = $1 FOR UPDATE`, w.ID)
	if err != nil {
		return nil, err
	}

	if w.BalanceCents+amountCents < 0 {
		return nil, ErrInsufficientBalance
	}

	err = tx.GetContext(ctx, &w, `
		UPDATE wallets SET balance_cents = balance_cents + $2, updated_at = NOW()
		WHERE id = $1
		RETURNING id, user_id, balance_cents, updated_at`, w.ID, amountCents)
	if err != nil {
		return nil, err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO wallet_transactions (wallet_id, amount_cents, type, description)
		VALUES ($1, $2, $3, $4)`, w.ID, amountCents, txType, description)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}

	return &w, nil
}

func (r *repository) GetTransactions(ctx context.Context, userID int) ([]Transaction, error) {
	query := `
		SELECT wt.id, wt.wallet_id, wt.amount_cents, wt.type, wt.description, wt.created_at
		FROM wallet_transactions wt
		JOIN wallets w ON w.id = wt.wallet_id
		WHERE w.user_id = $1
		ORDER BY wt.created_at DESC`

	var txs []Transaction
	if err := r.db.SelectContext(ctx, &txs, query, userID); err != nil {
		return nil, err
	}

	return txs, nil
}
