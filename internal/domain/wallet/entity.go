package wallet

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Direction string

const (
	DirectionCredit Direction = "CREDIT"
	DirectionDebit  Direction = "DEBIT"
)

// Metadata is the free-form jsonb attached to a transaction. The "type" key
// (e.g. PROPERTY_PUBLISH, ONBOARDING_BONUS) is indexed for filtering.
type Metadata map[string]interface{}

func (m Metadata) Value() (driver.Value, error) {
	if m == nil {
		return "{}", nil
	}
	b, err := json.Marshal(m)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (m *Metadata) Scan(src interface{}) error {
	var raw []byte
	switch v := src.(type) {
	case nil:
		*m = Metadata{}
		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return errors.New("wallet: unsupported metadata type")
	}
	return json.Unmarshal(raw, m)
}

type Wallet struct {
	UserID    uuid.UUID       `db:"user_id" json:"userId"`
	Balance   decimal.Decimal `db:"balance" json:"balance"`
	UpdatedAt time.Time       `db:"updated_at" json:"updatedAt"`
}

// Transaction is an immutable ledger row. Amount is signed: positive for
// credits, negative for debits.
type Transaction struct {
	ID           uuid.UUID       `db:"id" json:"transactionId"`
	UserID       uuid.UUID       `db:"user_id" json:"userId"`
	Amount       decimal.Decimal `db:"amount" json:"amount"`
	Direction    Direction       `db:"direction" json:"direction"`
	BalanceAfter decimal.Decimal `db:"balance_after" json:"balanceAfter"`
	Reason       string          `db:"reason" json:"reason"`
	Metadata     Metadata        `db:"metadata" json:"metadata"`
	ReferenceID  *string         `db:"reference_id" json:"referenceId,omitempty"`
	CreatedAt    time.Time       `db:"created_at" json:"createdAt"`
}

// Result describes a committed balance mutation.
type Result struct {
	Success       bool            `json:"success"`
	NewBalance    decimal.Decimal `json:"newBalance"`
	TransactionID uuid.UUID       `json:"transactionId"`
	Message       string          `json:"message"`
}

// TransactionFilter narrows ListTransactions. Type matches metadata->>'type'.
type TransactionFilter struct {
	Direction Direction
	Type      string
	Page      int
	Limit     int
}
