package recordstore_test

import (
	"errors"
	"testing"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/pixelit-club/clubhub/internal/app/catalog"
	recordstore "github.com/pixelit-club/clubhub/internal/app/store/records"
	"github.com/pixelit-club/clubhub/internal/testutil"
)

func memberDef(t *testing.T) catalog.Definition {
	t.Helper()
	def, ok := catalog.Default().Lookup("members")
	if !ok {
		t.Fatal("catalog is missing the members collection")
	}
	return def
}

func TestCreateAndGet(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := recordstore.New(db)
	def := memberDef(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, def, map[string]string{
		"name":               "Ada Lovelace",
		"registrationNumber": "2200031234",
		"role":               "President",
		"photo":              "https://cdn.example.com/ada.png",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}
	if created.ID.IsZero() {
		t.Error("expected an assigned identity")
	}
	if created.CreatedAt.IsZero() || created.UpdatedAt.IsZero() {
		t.Error("expected timestamps to be set")
	}

	got, err := store.Get(ctx, def, created.ID)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Fields["name"] != "Ada Lovelace" {
		t.Errorf("name: got %q, want %q", got.Fields["name"], "Ada Lovelace")
	}
	if got.Fields["photo"] != "https://cdn.example.com/ada.png" {
		t.Errorf("photo: got %q, want %q", got.Fields["photo"], "https://cdn.example.com/ada.png")
	}
}

func TestList(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := recordstore.New(db)
	def := memberDef(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	recs, err := store.List(ctx, def)
	if err != nil {
		t.Fatalf("List on an empty collection failed: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("expected no records, got %d", len(recs))
	}

	fixtures := testutil.NewFixtures(t, db)
	fixtures.CreateRecord(ctx, def, map[string]string{
		"name": "Ada Lovelace", "registrationNumber": "2200031234", "role": "President",
	})
	fixtures.CreateRecord(ctx, def, map[string]string{
		"name": "Alan Turing", "registrationNumber": "2200035678", "role": "Member",
	})

	recs, err = store.List(ctx, def)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 records, got %d", len(recs))
	}
}

func TestUpdate_Partial(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := recordstore.New(db)
	def := memberDef(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, def, map[string]string{
		"name": "Ada Lovelace", "registrationNumber": "2200031234", "role": "Member",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	updated, err := store.Update(ctx, def, created.ID, map[string]string{"role": "President"})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	if updated.Fields["role"] != "President" {
		t.Errorf("role: got %q, want %q", updated.Fields["role"], "President")
	}
	if updated.Fields["name"] != "Ada Lovelace" {
		t.Errorf("name should be untouched by a partial update, got %q", updated.Fields["name"])
	}
	if !updated.UpdatedAt.After(created.UpdatedAt) {
		t.Errorf("updated_at should advance: %v -> %v", created.UpdatedAt, updated.UpdatedAt)
	}
}

func TestUpdate_UnknownID(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := recordstore.New(db)
	def := memberDef(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	_, err := store.Update(ctx, def, primitive.NewObjectID(), map[string]string{"role": "President"})
	if !errors.Is(err, recordstore.ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestDelete(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := recordstore.New(db)
	def := memberDef(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	created, err := store.Create(ctx, def, map[string]string{
		"name": "Ada Lovelace", "registrationNumber": "2200031234", "role": "Member",
	})
	if err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	if err := store.Delete(ctx, def, created.ID); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}
	if _, err := store.Get(ctx, def, created.ID); !errors.Is(err, recordstore.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}

	// Repeating the delete changes nothing and reports not-found.
	if err := store.Delete(ctx, def, created.ID); !errors.Is(err, recordstore.ErrNotFound) {
		t.Errorf("expected ErrNotFound on repeated delete, got %v", err)
	}
}

func TestCollectionsAreIsolated(t *testing.T) {
	db := testutil.SetupTestDB(t)
	store := recordstore.New(db)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	members := memberDef(t)
	games, ok := catalog.Default().Lookup("clubGames")
	if !ok {
		t.Fatal("catalog is missing the clubGames collection")
	}

	if _, err := store.Create(ctx, members, map[string]string{
		"name": "Ada Lovelace", "registrationNumber": "2200031234", "role": "Member",
	}); err != nil {
		t.Fatalf("Create failed: %v", err)
	}

	recs, err := store.List(ctx, games)
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("clubGames should be empty, got %d records", len(recs))
	}
}
