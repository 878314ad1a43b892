package domain

import "time"

const (
	RoleMember string = "member"
	RoleAdmin  string = "admin"
)

type User struct {
	ID           int       `db:"id"`
	Login        string    `db:"login"`
	PasswordHash string    `db:"password_hash"`
	Role         string    `db:"role"`
	CreatedAt    time.Time `db:"created_at"`
}

// Purchase is a bulk token purchase for the shared meter. TokenNumber is
// the prepaid voucher number from the receipt; optional because older
// records predate receipts being kept.
type Purchase struct {
	ID           int       `db:"id"`
	CreatorID    int       `db:"creator_id"`
	TotalTokens  float64   `db:"total_tokens"`
	TotalPayment float64   `db:"total_payment"`
	MeterReading float64   `db:"meter_reading"`
	TokenNumber  string    `db:"token_number"`
	IsEmergency  bool      `db:"is_emergency"`
	PurchaseDate time.Time `db:"purchase_date"`
	CreatedAt    time.Time `db:"created_at"`
}

// Contribution settles exactly one Purchase: who paid, how much, and the
// meter state at settlement time. purchase_id carries a UNIQUE constraint.
type Contribution struct {
	ID             int       `db:"id"`
	PurchaseID     int       `db:"purchase_id"`
	UserID         int       `db:"user_id"`
	Amount         float64   `db:"amount"`
	MeterReading   float64   `db:"meter_reading"`
	TokensConsumed float64   `db:"tokens_consumed"`
	ContributedAt  time.Time `db:"contributed_at"`
}

// MeterSnapshot is a reading reported by the meter gateway poller.
type MeterSnapshot struct {
	ID        int       `db:"id"`
	Reading   float64   `db:"reading"`
	ReadingAt time.Time `db:"reading_at"`
	Source    string    `db:"source"`
}
