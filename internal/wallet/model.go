package wallet

import "time"

const (
	TxTopUp          = "topup"
	TxSessionPayment = "session_payment"
	TxRefund         = "refund"
)

type Wallet struct {
	ID           int       `db:"id" json:"id"`
	UserID       int       `db:"user_id" json:"user_id"`
	BalanceCents int64     `db:"balance_cents" json:"balance_cents"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Transaction amounts are signed: charges are negative, top-ups and
// refunds positive.
type Transaction struct {
	ID          int       `db:"id" json:"id"`
	WalletID    int       `db:"wallet_id" json:"wallet_id"`
	AmountCents int64     `db:"amount_cents" json:"amount_cents"`
	Type        string    `db:"type" json:"type"`
	Description string    `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
}

type TopUpRequest struct {
	AmountCents int64 `json:"amount_cents" binding:"required,gt=0" example:"10000"`
}
