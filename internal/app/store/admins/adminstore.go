package adminstore

import (
	"context"
	"errors"
	"strings"
	"time"

	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"

	"github.com/pixelit-club/clubhub/internal/domain/models"
)

// BcryptCost is the work factor for admin password hashes.
const BcryptCost = 12

var (
	// ErrDuplicateUsername is returned when the username is already taken.
	ErrDuplicateUsername = errors.New("an admin with this username already exists")
	// ErrNotFound is returned when no admin matches the lookup.
	ErrNotFound = errors.New("admin not found")

	errEmptyUsername = errors.New("username is required")
	errEmptyPassword = errors.New("password is required")
)

type Store struct {
	c *mongo.Collection
}

func New(db *mongo.Database) *Store {
	return &Store{c: db.Collection("admins")}
}

// EnsureIndexes creates the unique username index. Safe to call on every
// startup.
func (s *Store) EnsureIndexes(ctx context.Context) error {
	_, err := s.c.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// GetByUsername loads an admin by exact username. Returns ErrNotFound if
// no admin exists with that name.
func (s *Store) GetByUsername(ctx context.Context, username string) (*models.Admin, error) {
	var a models.Admin
	err := s.c.FindOne(ctx, bson.M{"username": strings.TrimSpace(username)}).Decode(&a)
	if err == mongo.ErrNoDocuments {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &a, nil
}

// Create inserts a new admin with a bcrypt-hashed password.
func (s *Store) Create(ctx context.Context, username, password string) (models.Admin, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return models.Admin{}, errEmptyUsername
	}
	if password == "" {
		return models.Admin{}, errEmptyPassword
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return models.Admin{}, err
	}

	now := time.Now().UTC()
	a := models.Admin{
		ID:           primitive.NewObjectID(),
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if _, err := s.c.InsertOne(ctx, a); err != nil {
		if wafflemongo.IsDup(err) {
			return models.Admin{}, ErrDuplicateUsername
		}
		return models.Admin{}, err
	}
	return a, nil
}

// Authenticate checks the credential pair and returns the matching admin.
// Unknown usernames and wrong passwords are indistinguishable to callers;
// both return ErrNotFound.
func (s *Store) Authenticate(ctx context.Context, username, password string) (*models.Admin, error) {
	a, err := s.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(a.PasswordHash), []byte(password)) != nil {
		return nil, ErrNotFound
	}
	return a, nil
}

// Count returns the number of admin documents.
func (s *Store) Count(ctx context.Context) (int64, error) {
	return s.c.CountDocuments(ctx, bson.M{})
}
