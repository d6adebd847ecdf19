package models

import "testing"

func TestDrinkShortHidesIngredientNames(t *testing.T) {
	d := Drink{
		ID:    7,
		Title: "flat white",
		Recipe: []Ingredient{
			{Name: "espresso", Color: "brown", Parts: 1},
			{Name: "milk", Color: "white", Parts: 2},
		},
	}

	short := d.Short()
	if short.ID != 7 || short.Title != "flat white" {
		t.Fatalf("unexpected short drink: %+v", short)
	}
	if len(short.Recipe) != 2 {
		t.Fatalf("recipe length = %d, want 2", len(short.Recipe))
	}
	if short.Recipe[1].Color != "white" || short.Recipe[1].Parts != 2 {
		t.Fatalf("unexpected short ingredient: %+v", short.Recipe[1])
	}
}

func TestDrinkLongCopiesRecipe(t *testing.T) {
	d := Drink{ID: 1, Title: "water", Recipe: []Ingredient{{Name: "water", Color: "blue", Parts: 1}}}

	long := d.Long()
	long.Recipe[0].Name = "changed"
	if d.Recipe[0].Name != "water" {
		t.Fatalf("Long must not share the recipe slice with the model")
	}
}

func TestDrinkShortEmptyRecipeIsNotNil(t *testing.T) {
	if got := (Drink{}).Short().Recipe; got == nil {
		t.Fatalf("expected empty, non-nil recipe")
	}
}
