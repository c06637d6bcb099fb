package domain

type UserRole string

const (
	UserRoleStudent   UserRole = "student"
	UserRoleCorrector UserRole = "corrector"
	UserRoleAdmin     UserRole = "admin"
)

type Category string

const (
	CategoryUnspecified Category = ""
	CategorySimulado    Category = "simulado"
	CategoryRegular     Category = "regular"
	CategoryAvulsa      Category = "avulsa"
)

func (c Category) IsValid() bool {
	switch c {
	case CategorySimulado, CategoryRegular, CategoryAvulsa:
		return true
	default:
		return false
	}
}

func ToCategory(category string) Category {
	switch category {
	case "simulado":
		return CategorySimulado
	case "regular":
		return CategoryRegular
	case "avulsa":
		return CategoryAvulsa
	default:
		return CategoryUnspecified
	}
}

type EvaluationStatus string

const (
	EvaluationPending EvaluationStatus = "pending"
	EvaluationDone    EvaluationStatus = "done"
)

func (s EvaluationStatus) IsValid() bool {
	switch s {
	case EvaluationPending, EvaluationDone:
		return true
	default:
		return false
	}
}
