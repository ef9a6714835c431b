package models

// OperatorOrderCount is a derived aggregate: how many orders are currently
// assigned to an operator. It is recomputed from the store on every use,
// never cached.
type OperatorOrderCount struct {
	OperatorID  int64  `json:"operator_id" db:"id"`
	Username    string `json:"username" db:"username"`
	OrdersTaken int    `json:"orders_taken" db:"orders_taken"`
}

// Identity is the already-authenticated actor handed in by the caller for
// self-scoped operations. The core trusts it and never resolves identity on
// its own.
type Identity struct {
	UserID int64  `json:"user_id"`
	Role   string `json:"role"`
}

func (i Identity) IsZero() bool {
	return i.UserID == 0
}

type AssignOrdersRequest struct {
	OrderIDs   []int64 `json:"order_ids" binding:"required,min=1"`
	OperatorID int64   `json:"operator_id" binding:"required,min=1"`
}
