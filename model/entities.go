package model

// All lists every persisted entity in dependency order for migrations.
func All() []any {
	return []any{
		&User{},
		&Author{},
		&Customer{},
		&BookType{},
		&CustomPricing{},
		&ConditionPricing{},
		&Book{},
		&Rental{},
	}
}
