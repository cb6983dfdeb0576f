package domain

// CashCard Model
type CashCard struct {
	ID     *int64  `json:"id" gorm:"primaryKey;autoIncrement"` // Primary key, assigned by the store when absent
	Amount float64 `json:"amount"`                             // Monetary amount, signed and unbounded
	Owner  *string `json:"owner" gorm:"index"`                 // Owning principal, set once at creation
}

// Clone returns a copy of the card that shares no pointers with the original.
func (c CashCard) Clone() CashCard {
	out := c
	if c.ID != nil {
		id := *c.ID
		out.ID = &id
	}
	if c.Owner != nil {
		owner := *c.Owner
		out.Owner = &owner
	}
	return out
}
