package transaction

import "time"

// Transaction types. The type, not the sign of the amount, decides whether
// a record counts toward income or expense.
const (
	TypeIncome  = "income"
	TypeExpense = "expense"
)

// Categories is the fixed set a transaction may belong to.
var Categories = []string{
	"Food",
	"Transport",
	"Medicine",
	"Groceries",
	"Rent",
	"Gifts",
	"Savings",
	"Entertainment",
	"More",
}

// Transaction represents one income or expense event owned by a user.
type Transaction struct {
	ID        string
	UserID    string
	Category  string
	Title     string
	Amount    float64
	Type      string
	Note      string
	Date      time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

// SummaryRow is one (category, type) aggregation group. JSON tags are for
// the Redis cache encoding; the HTTP shape is built in the handler.
type SummaryRow struct {
	Category string  `json:"category"`
	Type     string  `json:"type"`
	Total    float64 `json:"total"`
	Count    int64   `json:"count"`
}

// ListResult bundles a user's transactions with derived totals.
type ListResult struct {
	Transactions []Transaction
	TotalIncome  float64
	TotalExpense float64
	Balance      float64
}
