package identity

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	// ErrDuplicateEmail signals the unique email constraint was violated.
	ErrDuplicateEmail = errors.New("email already registered")
	// ErrNotFound signals no user matched the lookup.
	ErrNotFound = errors.New("user not found")
)

// Repository persists users.
type Repository interface {
	Create(ctx context.Context, user User) (User, error)
	FindByEmail(ctx context.Context, email string) (User, error)
}

const usersCollection = "users"

type userDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	FullName  string             `bson:"fullName"`
	Email     string             `bson:"email"`
	Mobile    string             `bson:"mobile"`
	DOB       string             `bson:"dob"`
	Password  []byte             `bson:"password"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

// MongoRepository implements Repository on a MongoDB collection with a
// unique index on email. The index is the authoritative duplicate check:
// a concurrent signup that slips past the service-level existence check
// still fails the insert and maps to ErrDuplicateEmail.
type MongoRepository struct {
	coll *mongo.Collection
}

// NewMongoRepository builds a Mongo-backed user repository and ensures
// the unique email index exists.
func NewMongoRepository(ctx context.Context, db *mongo.Database) (*MongoRepository, error) {
	coll := db.Collection(usersCollection)
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	if err != nil {
		return nil, fmt.Errorf("ensure email index: %w", err)
	}
	return &MongoRepository{coll: coll}, nil
}

// Create inserts a new user record.
func (r *MongoRepository) Create(ctx context.Context, user User) (User, error) {
	now := time.Now().UTC()
	doc := userDoc{
		ID:        primitive.NewObjectID(),
		FullName:  user.FullName,
		Email:     user.Email,
		Mobile:    user.Mobile,
		DOB:       user.DOB,
		Password:  user.PasswordHash,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return User{}, ErrDuplicateEmail
		}
		return User{}, err
	}
	user.ID = doc.ID.Hex()
	user.CreatedAt = now
	user.UpdatedAt = now
	return user, nil
}

// FindByEmail fetches a user by exact email match.
func (r *MongoRepository) FindByEmail(ctx context.Context, email string) (User, error) {
	var doc userDoc
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return User{}, ErrNotFound
		}
		return User{}, err
	}
	return User{
		ID:           doc.ID.Hex(),
		FullName:     doc.FullName,
		Email:        doc.Email,
		Mobile:       doc.Mobile,
		DOB:          doc.DOB,
		PasswordHash: doc.Password,
		CreatedAt:    doc.CreatedAt,
		UpdatedAt:    doc.UpdatedAt,
	}, nil
}
