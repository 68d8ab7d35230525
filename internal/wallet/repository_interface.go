package wallet

import "context"

type Repository interface {
	GetByUserID(ctx context.Context, userID int) (*Wallet, error)
	AddTransaction(ctx context.Context, userID int, amountCents int64, txType, description string) (*Wallet, error)
	GetTransactions(ctx context.Context, userID int) ([]Transaction, error)
}
