package core

// DefaultCategories are the lists a fresh installation starts with. Users
// extend or rename them afterwards.
func DefaultCategories() Categories {
	return Categories{
		Expense: []string{
			"Food", "Banking", "Transport", "Bills", "Car",
			"Entertainment", "Household", "Gifts", "Other",
		},
		Income: []string{
			"Salary", "Income", "Bonus", "Gifts", "Freelance",
			"Investment", "Other",
		},
	}
}

// OpeningBalanceSource is the synthetic counterparty used when an account is
// registered with a starting balance.
const OpeningBalanceSource = "Initial Balance"
