package wallet

import "context"

type Service interface {
	GetWallet(ctx context.Context, userID int) (*Wallet, error)
	TopUp(ctx context.Context, userID int, amountCents int64) (*Wallet, error)
	Charge(ctx context.Context, userID int, amountCents int64, description string) error
	Refund(ctx context.Context, userID int, amountCents int64, description string) error
	GetTransactions(ctx context.Context, userID int) ([]Transaction, error)
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) GetWallet(ctx context.Context, userID int) (*Wallet, error) {
	return s.repo.GetByUserID(ctx, userID)
}

func (s *service) TopUp(ctx context.Context, userID int, amountCents int64) (*Wallet, error) {
	return s.repo.AddTransaction(ctx, userID, amountCents, TxTopUp, "wallet top-up")
}

func (s *service) Charge(ctx context.Context, userID int, amountCents int64, description string) error {
	_, err := s.repo.AddTransaction(ctx, userID, -amountCents, TxSessionPayment, description)
	return err
}

func (s *service) Refund(ctx context.Context, userID int, amountCents int64, description string) error {
	if amountCents == 0 {
		return nil
	}
	_, err := s.repo.AddTransaction(ctx, userID, amountCents, TxRefund, description)
	return err
}

func (s *service) GetTransactions(ctx context.Context, userID int) ([]Transaction, error) {
	return s.repo.GetTransactions(ctx, userID)
}
