package repo

import (
	"context"
	"errors"
	"fmt"
	"time"

	dmn "github.com/beka-birhanu/maze-runner/domain"
	"github.com/beka-birhanu/maze-runner/service/i"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const defaultTimeout = 2 * time.Second

// accountDocument is the BSON form of an account.
type accountDocument struct {
	ID           string    `bson:"_id"`
	Username     string    `bson:"username"`
	PasswordHash string    `bson:"passwordHash"`
	BestScore    float64   `bson:"bestScore"`
	Runs         int       `bson:"runs"`
	CreatedAt    time.Time `bson:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt"`
}

// AccountRepo handles the persistence of runner accounts in MongoDB.
type AccountRepo struct {
	collection *mongo.Collection
}

var _ i.AccountRepo = &AccountRepo{}

// NewAccountRepo creates a new AccountRepo with the given MongoDB client, database name, and collection name.
func NewAccountRepo(client *mongo.Client, dbName, collectionName string) *AccountRepo {
	collection := client.Database(dbName).Collection(collectionName)
	return &AccountRepo{
		collection: collection,
	}
}

// EnsureIndexes makes usernames unique.
func (a *AccountRepo) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	_, err := a.collection.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "username", Value: 1}},
		Options: options.Index().SetUnique(true),
	})
	return err
}

// Save inserts or updates an account.
func (a *AccountRepo) Save(ctx context.Context, account *dmn.Account) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	filter := bson.M{"_id": account.ID.String()}
	update := bson.M{
		"$set": bson.M{
			"username":     account.Username,
			"passwordHash": account.PasswordHash,
			"bestScore":    account.BestScore,
			"runs":         account.Runs,
			"updatedAt":    time.Now().UTC(),
		},
		"$setOnInsert": bson.M{
			"createdAt": account.CreatedAt,
		},
	}

	opts := options.Update().SetUpsert(true)
	if _, err := a.collection.UpdateOne(ctx, filter, update, opts); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return dmn.ErrUsernameConflict
		}
		return fmt.Errorf("saving account: %w", err)
	}

	return nil
}

// ByID retrieves an account by its ID.
func (a *AccountRepo) ByID(ctx context.Context, id uuid.UUID) (*dmn.Account, error) {
	return a.findOne(ctx, bson.M{"_id": id.String()})
}

// ByUsername retrieves an account by its username.
func (a *AccountRepo) ByUsername(ctx context.Context, username string) (*dmn.Account, error) {
	return a.findOne(ctx, bson.M{"username": username})
}

func (a *AccountRepo) findOne(ctx context.Context, filter bson.M) (*dmn.Account, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	var doc accountDocument
	if err := a.collection.FindOne(ctx, filter).Decode(&doc); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, dmn.ErrAccountNotFound
		}
		return nil, fmt.Errorf("loading account: %w", err)
	}

	id, err := uuid.Parse(doc.ID)
	if err != nil {
		return nil, fmt.Errorf("loading account: bad id %q: %w", doc.ID, err)
	}

	return &dmn.Account{
		ID:           id,
		Username:     doc.Username,
		PasswordHash: doc.PasswordHash,
		BestScore:    doc.BestScore,
		Runs:         doc.Runs,
		CreatedAt:    doc.CreatedAt,
	}, nil
}
