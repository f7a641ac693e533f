package mongo

import (
	"context"
	"errors"
	"time"

	"fitrek/fitrek-app/internal/domain"
	"fitrek/fitrek-app/internal/repository"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const accountCollectionName = "accounts"

// mongoAccountRepository implements repository.AccountRepository using MongoDB.
type mongoAccountRepository struct {
	collection *mongo.Collection
}

// NewMongoAccountRepository creates a new account repository backed by the
// given database.
func NewMongoAccountRepository(db *mongo.Database) repository.AccountRepository {
	return &mongoAccountRepository{
		collection: db.Collection(accountCollectionName),
	}
}

// Create inserts a new account. The id is generated here when absent.
func (r *mongoAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	if account.Email == "" || account.PasswordHash == "" {
		return errors.New("account email and password hash are required")
	}

	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	account.CreatedAt = now
	account.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, account); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return repository.ErrDuplicate
		}
		return err
	}
	return nil
}

// GetByEmail retrieves an account by its email address.
func (r *mongoAccountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	var account domain.Account
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&account)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}

// GetByID retrieves an account by its id.
func (r *mongoAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	var account domain.Account
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&account)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}

// ConfirmByToken marks the account holding the token as confirmed and clears
// the token so it cannot be redeemed twice.
func (r *mongoAccountRepository) ConfirmByToken(ctx context.Context, token string) (*domain.Account, error) {
	if token == "" {
		return nil, repository.ErrNotFound
	}

	now := time.Now().UTC()
	update := bson.M{
		"$set":   bson.M{"confirmedAt": now, "updatedAt": now},
		"$unset": bson.M{"confirmToken": ""},
	}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var account domain.Account
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"confirmToken": token}, update, opts).Decode(&account)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}

// EnsureAccountIndexes creates the indexes the accounts collection relies on.
// Call once during application startup.
func EnsureAccountIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "confirmToken", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
