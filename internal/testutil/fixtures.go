package testutil

import (
	"context"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"golang.org/x/crypto/bcrypt"

	"github.com/pixelit-club/clubhub/internal/app/catalog"
	"github.com/pixelit-club/clubhub/internal/domain/models"
)

// Fixtures provides helper methods for creating test data.
type Fixtures struct {
	db *mongo.Database
	t  *testing.T
}

// NewFixtures creates a new Fixtures instance for the given test database.
func NewFixtures(t *testing.T, db *mongo.Database) *Fixtures {
	t.Helper()
	return &Fixtures{db: db, t: t}
}

// DB returns the underlying database for direct access in tests.
func (f *Fixtures) DB() *mongo.Database {
	return f.db
}

// CreateAdmin inserts an admin credential with a bcrypt-hashed password.
// A low cost keeps test runs fast.
func (f *Fixtures) CreateAdmin(ctx context.Context, username, password string) models.Admin {
	f.t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		f.t.Fatalf("failed to hash test password: %v", err)
	}

	now := time.Now().UTC()
	admin := models.Admin{
		ID:           primitive.NewObjectID(),
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := f.db.Collection("admins").InsertOne(ctx, admin); err != nil {
		f.t.Fatalf("failed to create test admin: %v", err)
	}

	return admin
}

// CreateRecord inserts a raw document into the collection behind def,
// the same shape the record store writes.
func (f *Fixtures) CreateRecord(ctx context.Context, def catalog.Definition, fields map[string]string) primitive.ObjectID {
	f.t.Helper()

	now := time.Now().UTC()
	doc := bson.M{
		"_id":        primitive.NewObjectID(),
		"created_at": now,
		"updated_at": now,
	}
	for name, value := range fields {
		doc[name] = value
	}

	if _, err := f.db.Collection(def.Collection).InsertOne(ctx, doc); err != nil {
		f.t.Fatalf("failed to create test %s record: %v", def.Route, err)
	}

	return doc["_id"].(primitive.ObjectID)
}
