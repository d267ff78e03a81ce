package model

// All returns every model managed by AutoMigrate, parents before children.
func All() []any {
	return []any{
		&CategoryModel{},
		&TransactionModel{},
		&OrderModel{},
	}
}
