package models

// All lists every model for auto-migration.
func All() []interface{} {
	return []interface{}{
		&Category{},
		&Question{},
		&Drink{},
		&Account{},
	}
}
