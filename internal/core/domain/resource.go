package domain

// Resource is a closed set of ownable resource variants. Routes construct
// the concrete variant for the record they address, so access checks never
// branch on a runtime type string.
type Resource interface {
	// sealed limits implementations to the variants below.
	sealed()
}

// IncomeResource addresses an income transaction by ID.
type IncomeResource struct {
	TransactionID string
}

// ExpenseResource addresses an expense transaction by ID.
type ExpenseResource struct {
	TransactionID string
}

// UserProfileResource addresses a user profile by ID.
type UserProfileResource struct {
	UserID string
}

func (IncomeResource) sealed()      {}
func (ExpenseResource) sealed()     {}
func (UserProfileResource) sealed() {}
