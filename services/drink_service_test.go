package services

import (
	"context"
	"errors"
	"testing"

	"trivia/models"
	"trivia/testutil"
)

var water = []models.Ingredient{{Name: "water", Color: "blue", Parts: 1}}

func TestDrinkLifecycle(t *testing.T) {
	svc := NewDrinkService(testutil.OpenTestDB(t))
	ctx := context.Background()

	created, err := svc.Create(ctx, DrinkInput{Title: " Water ", Recipe: water})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == 0 || created.Title != "Water" {
		t.Fatalf("unexpected drink: %+v", created)
	}

	stored, err := svc.Get(ctx, created.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(stored.Recipe) != 1 || stored.Recipe[0] != water[0] {
		t.Fatalf("recipe did not round-trip: %+v", stored.Recipe)
	}

	title := "Sparkling Water"
	updated, err := svc.Update(ctx, created.ID, DrinkPatch{Title: &title})
	if err != nil {
		t.Fatalf("Update title: %v", err)
	}
	if updated.Title != title || len(updated.Recipe) != 1 {
		t.Fatalf("unexpected update: %+v", updated)
	}

	latte := []models.Ingredient{
		{Name: "espresso", Color: "brown", Parts: 1},
		{Name: "milk", Color: "white", Parts: 3},
	}
	updated, err = svc.Update(ctx, created.ID, DrinkPatch{Recipe: latte})
	if err != nil {
		t.Fatalf("Update recipe: %v", err)
	}
	if updated.Title != title || len(updated.Recipe) != 2 {
		t.Fatalf("unexpected update: %+v", updated)
	}

	list, err := svc.List(ctx)
	if err != nil || len(list) != 1 {
		t.Fatalf("List = %d drinks, %v", len(list), err)
	}

	if err := svc.Delete(ctx, created.ID); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if err := svc.Delete(ctx, created.ID); !errors.Is(err, ErrNotFound) {
		t.Fatalf("second Delete err = %v, want ErrNotFound", err)
	}
	if _, err := svc.Update(ctx, created.ID, DrinkPatch{Title: &title}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Update missing err = %v, want ErrNotFound", err)
	}
}

func TestDrinkTitleUnique(t *testing.T) {
	svc := NewDrinkService(testutil.OpenTestDB(t))
	ctx := context.Background()

	first, err := svc.Create(ctx, DrinkInput{Title: "Water", Recipe: water})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	second, err := svc.Create(ctx, DrinkInput{Title: "Tea", Recipe: water})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if _, err := svc.Create(ctx, DrinkInput{Title: "Water", Recipe: water}); !errors.Is(err, ErrUnprocessable) {
		t.Fatalf("duplicate Create err = %v, want ErrUnprocessable", err)
	}

	taken := first.Title
	if _, err := svc.Update(ctx, second.ID, DrinkPatch{Title: &taken}); !errors.Is(err, ErrUnprocessable) {
		t.Fatalf("rename onto taken title err = %v, want ErrUnprocessable", err)
	}

	// Renaming a drink to its own title is not a conflict.
	if _, err := svc.Update(ctx, first.ID, DrinkPatch{Title: &taken}); err != nil {
		t.Fatalf("rename to own title: %v", err)
	}
}

func TestDrinkValidation(t *testing.T) {
	svc := NewDrinkService(testutil.OpenTestDB(t))
	ctx := context.Background()

	cases := map[string]DrinkInput{
		"blank title":     {Title: "  ", Recipe: water},
		"empty recipe":    {Title: "Nothing"},
		"unnamed layer":   {Title: "Mystery", Recipe: []models.Ingredient{{Color: "red", Parts: 1}}},
		"colorless layer": {Title: "Ghost", Recipe: []models.Ingredient{{Name: "air", Parts: 1}}},
		"zero parts":      {Title: "Thin", Recipe: []models.Ingredient{{Name: "water", Color: "blue"}}},
	}
	for name, in := range cases {
		if _, err := svc.Create(ctx, in); !errors.Is(err, ErrUnprocessable) {
			t.Fatalf("%s: err = %v, want ErrUnprocessable", name, err)
		}
	}
}
