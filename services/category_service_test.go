package services

import (
	"context"
	"testing"
	"time"

	"trivia/testutil"
)

func TestCategoriesFromDatabase(t *testing.T) {
	db := testutil.OpenTestDB(t)
	seeded := testutil.SeedCategories(t, db, "Science", "Art")
	svc := NewCategoryService(db, nil, time.Minute)

	got, err := svc.Categories(context.Background())
	if err != nil {
		t.Fatalf("Categories: %v", err)
	}
	if len(got) != 2 || got[seeded[0].ID] != "Science" || got[seeded[1].ID] != "Art" {
		t.Fatalf("unexpected categories: %v", got)
	}

	ok, err := svc.Exists(context.Background(), seeded[1].ID)
	if err != nil || !ok {
		t.Fatalf("Exists(%d) = (%v, %v), want (true, nil)", seeded[1].ID, ok, err)
	}
	ok, err = svc.Exists(context.Background(), 999)
	if err != nil || ok {
		t.Fatalf("Exists(999) = (%v, %v), want (false, nil)", ok, err)
	}
}

func TestCategoriesReadThroughCache(t *testing.T) {
	db := testutil.OpenTestDB(t)
	seeded := testutil.SeedCategories(t, db, "Science")
	mr, client := testutil.NewRedis(t)
	svc := NewCategoryService(db, client, 5*time.Minute)
	ctx := context.Background()

	if _, err := svc.Categories(ctx); err != nil {
		t.Fatalf("Categories: %v", err)
	}
	if !mr.Exists(categoriesCacheKey) {
		t.Fatalf("expected categories cached under %s", categoriesCacheKey)
	}
	if ttl := mr.TTL(categoriesCacheKey); ttl != 5*time.Minute {
		t.Fatalf("cache ttl = %s, want 5m", ttl)
	}

	// A row added behind the cache stays invisible until invalidation.
	testutil.SeedCategories(t, db, "Art")
	got, err := svc.Categories(ctx)
	if err != nil {
		t.Fatalf("Categories (cached): %v", err)
	}
	if len(got) != 1 || got[seeded[0].ID] != "Science" {
		t.Fatalf("expected cached answer, got %v", got)
	}

	svc.Invalidate(ctx)
	got, err = svc.Categories(ctx)
	if err != nil {
		t.Fatalf("Categories (after invalidate): %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected fresh answer with 2 categories, got %v", got)
	}
}

func TestCategoriesSurviveRedisOutage(t *testing.T) {
	db := testutil.OpenTestDB(t)
	testutil.SeedCategories(t, db, "Science")
	mr, client := testutil.NewRedis(t)
	mr.Close()

	svc := NewCategoryService(db, client, time.Minute)
	got, err := svc.Categories(context.Background())
	if err != nil {
		t.Fatalf("Categories with redis down: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("unexpected categories: %v", got)
	}
}

func TestSeedDefaultsOnlyOnce(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc := NewCategoryService(db, nil, time.Minute)
	ctx := context.Background()

	if err := svc.SeedDefaults(ctx); err != nil {
		t.Fatalf("SeedDefaults: %v", err)
	}
	if err := svc.SeedDefaults(ctx); err != nil {
		t.Fatalf("SeedDefaults (second): %v", err)
	}

	got, err := svc.Categories(ctx)
	if err != nil {
		t.Fatalf("Categories: %v", err)
	}
	if len(got) != len(DefaultCategories) {
		t.Fatalf("got %d categories, want %d", len(got), len(DefaultCategories))
	}
}
