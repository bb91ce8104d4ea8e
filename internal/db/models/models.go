package models

// All lists the models in migration order.
func All() []any {
	return []any{
		&Organization{},
		&Category{},
		&List{},
		&User{},
		&Role{},
		&RoleDependency{},
		&Member{},
		&Preference{},
	}
}
