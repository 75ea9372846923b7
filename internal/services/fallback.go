package services

import "github.com/casadocafe/cardapio-api/internal/models"

// Built-in dataset served when the database is unreachable, so the public
// menu never renders empty. Kept deliberately small; ids carry a "local-"
// prefix so they can never collide with stored records.

func fallbackCategories() []models.Category {
	return []models.Category{
		{ID: "local-cafes", Name: "Cafés", Slug: "cafes"},
		{ID: "local-doces", Name: "Doces", Slug: "doces"},
	}
}

func fallbackItems() []models.MenuItem {
	espresso := "Clássico, intenso e aromático."
	cookie := "Crocante por fora, macio por dentro."
	return []models.MenuItem{
		{
			ID:          "local-02",
			Name:        "Cookie de chocolate",
			Description: &cookie,
			Price:       6.5,
			Available:   true,
			CategoryID:  "local-doces",
		},
		{
			ID:          "local-01",
			Name:        "Espresso",
			Description: &espresso,
			Price:       8.0,
			Available:   true,
			CategoryID:  "local-cafes",
		},
	}
}
