package customer

import (
	"time"

	"gobbomarket/internal/catalog"
)

// Customer is an ephemeral visitor at the stall. Customers are created
// by the Queue and destroyed on sale completion or patience expiry; they
// are never persisted.
type Customer struct {
	ID               string           `json:"id"`
	Race             string           `json:"race"`
	DesiredCategory  catalog.Category `json:"desired_category"`
	PatienceSec      int              `json:"patience_sec"`
	HaggleSkill      float64          `json:"haggle_skill"` // 0..1
	BudgetMultiplier float64          `json:"budget_multiplier"`
	ArrivedAt        time.Time        `json:"arrived_at"`
}

// Leave reasons reported on the customer_left event.
const (
	ReasonServed    = "served"
	ReasonImpatient = "impatient"
	ReasonClosed    = "closed"
)
