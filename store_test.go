package portfolio

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/Xav0929/portfolio/content"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "data", "test.db"))
	if err != nil {
		t.Fatalf("failed to create store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func defaultCatalog(t *testing.T) *content.Catalog {
	t.Helper()
	cat, err := content.Default()
	if err != nil {
		t.Fatalf("content.Default: %v", err)
	}
	return cat
}

func TestNewStore(t *testing.T) {
	s := setupTestStore(t)
	if s.db == nil {
		t.Fatal("db should not be nil")
	}
}

func TestLoadCatalogBeforeSeed(t *testing.T) {
	s := setupTestStore(t)
	_, err := s.LoadCatalog(context.Background())
	if !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("LoadCatalog on empty store = %v, want sql.ErrNoRows", err)
	}
}

func TestSeedAndLoadRoundTrip(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	want := defaultCatalog(t)

	if err := s.Seed(ctx, want); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	got, err := s.LoadCatalog(ctx)
	if err != nil {
		t.Fatalf("LoadCatalog failed: %v", err)
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("round trip mismatch:\n got %+v\nwant %+v", got, want)
	}
}

func TestSeedReplacesPreviousCatalog(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()

	if err := s.Seed(ctx, defaultCatalog(t)); err != nil {
		t.Fatalf("first Seed failed: %v", err)
	}
	small := &content.Catalog{
		Profile: content.Profile{Name: "Someone Else"},
		Projects: []content.Project{
			{ID: 9, Title: "Only", Tech: []string{"Go"}},
		},
	}
	if err := s.Seed(ctx, small); err != nil {
		t.Fatalf("second Seed failed: %v", err)
	}

	got, err := s.LoadCatalog(ctx)
	if err != nil {
		t.Fatalf("LoadCatalog failed: %v", err)
	}
	if got.Profile.Name != "Someone Else" {
		t.Errorf("profile name = %q", got.Profile.Name)
	}
	if len(got.Projects) != 1 || got.Projects[0].ID != 9 {
		t.Errorf("projects = %+v, want only project 9", got.Projects)
	}
	if len(got.Certificates) != 0 || len(got.Skills) != 0 || len(got.Profile.Links) != 0 {
		t.Errorf("old rows survived the reseed: %+v", got)
	}
}

func TestSeedKeepsOrder(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	cat := &content.Catalog{
		Profile: content.Profile{Name: "A"},
		Projects: []content.Project{
			{ID: 3, Title: "Third", Tech: []string{"z", "a"}},
			{ID: 1, Title: "First"},
		},
		Skills: []content.Skill{{Name: "b", Level: 1}, {Name: "a", Level: 2}},
	}
	if err := s.Seed(ctx, cat); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}
	got, err := s.LoadCatalog(ctx)
	if err != nil {
		t.Fatalf("LoadCatalog failed: %v", err)
	}
	if got.Projects[0].ID != 3 || got.Projects[1].ID != 1 {
		t.Errorf("project order = %d,%d, want 3,1", got.Projects[0].ID, got.Projects[1].ID)
	}
	if !reflect.DeepEqual(got.Projects[0].Tech, []string{"z", "a"}) {
		t.Errorf("tech order = %v", got.Projects[0].Tech)
	}
	if got.Skills[0].Name != "b" {
		t.Errorf("skill order = %v", got.Skills)
	}
}

func TestSeedRejectsBadSkillLevel(t *testing.T) {
	s := setupTestStore(t)
	cat := &content.Catalog{
		Profile: content.Profile{Name: "A"},
		Skills:  []content.Skill{{Name: "x", Level: 101}},
	}
	if err := s.Seed(context.Background(), cat); err == nil {
		t.Fatal("expected the level check constraint to fail")
	}
}

func TestCatalogCache(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	if err := s.Seed(ctx, defaultCatalog(t)); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}

	cache := NewCatalogCache(s, time.Minute)
	first, err := cache.Catalog(ctx)
	if err != nil {
		t.Fatalf("Catalog failed: %v", err)
	}
	second, err := cache.Catalog(ctx)
	if err != nil {
		t.Fatalf("Catalog failed: %v", err)
	}
	if first != second {
		t.Error("expected the cached snapshot to be reused")
	}

	cache.Invalidate()
	third, err := cache.Catalog(ctx)
	if err != nil {
		t.Fatalf("Catalog failed: %v", err)
	}
	if third == first {
		t.Error("expected a fresh snapshot after Invalidate")
	}
}

func TestCatalogCacheExpires(t *testing.T) {
	s := setupTestStore(t)
	ctx := context.Background()
	if err := s.Seed(ctx, defaultCatalog(t)); err != nil {
		t.Fatalf("Seed failed: %v", err)
	}

	cache := NewCatalogCache(s, 20*time.Millisecond)
	first, err := cache.Catalog(ctx)
	if err != nil {
		t.Fatalf("Catalog failed: %v", err)
	}
	time.Sleep(40 * time.Millisecond)
	second, err := cache.Catalog(ctx)
	if err != nil {
		t.Fatalf("Catalog failed: %v", err)
	}
	if first == second {
		t.Error("expected a reload after the TTL")
	}
}
