package entity

// BudgetRange is one of the fixed bands offered by the public listing. Bands
// are disjoint and total: a budget of exactly 500 falls in the first band.
type BudgetRange string

const (
	BudgetUpTo500    BudgetRange = "0-500"
	Budget500To1000  BudgetRange = "500-1000"
	Budget1000To5000 BudgetRange = "1000-5000"
	BudgetAbove5000  BudgetRange = "5000+"
)

func (r BudgetRange) Matches(budget int64) bool {
	switch r {
	case BudgetUpTo500:
		return budget <= 500
	case Budget500To1000:
		return budget > 500 && budget <= 1000
	case Budget1000To5000:
		return budget > 1000 && budget <= 5000
	case BudgetAbove5000:
		return budget > 5000
	}

	return true
}

// JobFilter narrows the public listing. Zero values leave the corresponding
// predicate unrestricted.
type JobFilter struct {
	Text        string
	Category    string
	BudgetRange BudgetRange
}
