package transaction

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
	// ErrInvalidID signals an id that is not a valid reference for the store.
	ErrInvalidID = errors.New("invalid id")
	// ErrNotFound signals no transaction matched the id.
	ErrNotFound = errors.New("transaction not found")
)

// Repository persists transactions.
type Repository interface {
	Create(ctx context.Context, tx Transaction) (Transaction, error)
	ListByUser(ctx context.Context, userID string) ([]Transaction, error)
	Summary(ctx context.Context, userID string) ([]SummaryRow, error)
	// Delete removes the transaction and returns the removed record, or
	// ErrNotFound if no record matched.
	Delete(ctx context.Context, id string) (Transaction, error)
}

const transactionsCollection = "transactions"

type transactionDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    primitive.ObjectID `bson:"userId"`
	Category  string             `bson:"category"`
	Title     string             `bson:"title"`
	Amount    float64            `bson:"amount"`
	Type      string             `bson:"type"`
	Note      string             `bson:"note"`
	Date      time.Time          `bson:"date"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

// MongoRepository implements Repository on a MongoDB collection indexed
// by owning user.
type MongoRepository struct {
	coll *mongo.Collection
}

// NewMongoRepository builds a Mongo-backed transaction repository and
// ensures the userId index exists.
func NewMongoRepository(ctx context.Context, db *mongo.Database) (*MongoRepository, error) {
	coll := db.Collection(transactionsCollection)
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "userId", Value: 1}},
	})
	if err != nil {
		return nil, fmt.Errorf("ensure userId index: %w", err)
	}
	return &MongoRepository{coll: coll}, nil
}

// Create inserts a transaction record.
func (r *MongoRepository) Create(ctx context.Context, tx Transaction) (Transaction, error) {
	userID, err := primitive.ObjectIDFromHex(tx.UserID)
	if err != nil {
		return Transaction{}, fmt.Errorf("%w: user %q", ErrInvalidID, tx.UserID)
	}

	now := time.Now().UTC()
	doc := transactionDoc{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		Category:  tx.Category,
		Title:     tx.Title,
		Amount:    tx.Amount,
		Type:      tx.Type,
		Note:      tx.Note,
		Date:      tx.Date.UTC(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return Transaction{}, err
	}

	tx.ID = doc.ID.Hex()
	tx.CreatedAt = now
	tx.UpdatedAt = now
	return tx, nil
}

// ListByUser fetches all transactions for a user ordered by date descending.
func (r *MongoRepository) ListByUser(ctx context.Context, userID string) ([]Transaction, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: user %q", ErrInvalidID, userID)
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := r.coll.Find(ctx, bson.M{"userId": uid}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	txs := []Transaction{}
	for cursor.Next(ctx) {
		var doc transactionDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		txs = append(txs, fromDoc(doc))
	}
	return txs, cursor.Err()
}

// Summary aggregates the user's transactions per (category, type) pair,
// ordered by category ascending. The id is validated before the pipeline runs.
func (r *MongoRepository) Summary(ctx context.Context, userID string) ([]SummaryRow, error) {
	uid, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: user %q", ErrInvalidID, userID)
	}

	pipeline := mongo.Pipeline{
		{{Key: "$match", Value: bson.M{"userId": uid}}},
		{{Key: "$group", Value: bson.M{
			"_id":   bson.M{"category": "$category", "type": "$type"},
			"total": bson.M{"$sum": "$amount"},
			"count": bson.M{"$sum": 1},
		}}},
		{{Key: "$sort", Value: bson.M{"_id.category": 1}}},
	}

	cursor, err := r.coll.Aggregate(ctx, pipeline)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	rows := []SummaryRow{}
	for cursor.Next(ctx) {
		var group struct {
			ID struct {
				Category string `bson:"category"`
				Type     string `bson:"type"`
			} `bson:"_id"`
			Total float64 `bson:"total"`
			Count int64   `bson:"count"`
		}
		if err := cursor.Decode(&group); err != nil {
			return nil, err
		}
		rows = append(rows, SummaryRow{
			Category: group.ID.Category,
			Type:     group.ID.Type,
			Total:    group.Total,
			Count:    group.Count,
		})
	}
	return rows, cursor.Err()
}

// Delete removes the transaction with the given id and returns it.
func (r *MongoRepository) Delete(ctx context.Context, id string) (Transaction, error) {
	txID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return Transaction{}, fmt.Errorf("%w: transaction %q", ErrInvalidID, id)
	}

	var doc transactionDoc
	if err := r.coll.FindOneAndDelete(ctx, bson.M{"_id": txID}).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return Transaction{}, ErrNotFound
		}
		return Transaction{}, err
	}
	return fromDoc(doc), nil
}

func fromDoc(doc transactionDoc) Transaction {
	return Transaction{
		ID:        doc.ID.Hex(),
		UserID:    doc.UserID.Hex(),
		Category:  doc.Category,
		Title:     doc.Title,
		Amount:    doc.Amount,
		Type:      doc.Type,
		Note:      doc.Note,
		Date:      doc.Date,
		CreatedAt: doc.CreatedAt,
		UpdatedAt: doc.UpdatedAt,
	}
}
