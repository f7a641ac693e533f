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

const programCollectionName = "workout_programs"

// mongoProgramRepository implements repository.ProgramRepository using MongoDB.
type mongoProgramRepository struct {
	collection *mongo.Collection
}

// NewMongoProgramRepository creates a new program repository backed by the
// given database.
func NewMongoProgramRepository(db *mongo.Database) repository.ProgramRepository {
	return &mongoProgramRepository{
		collection: db.Collection(programCollectionName),
	}
}

// Insert stores a new program and returns its id. The exercises list is
// stored as-is: order is meaningful and duplicates are allowed.
func (r *mongoProgramRepository) Insert(ctx context.Context, program *domain.WorkoutProgram) (string, error) {
	if program.UserID == "" || program.Name == "" {
		return "", errors.New("program owner and name are required")
	}

	if program.ID == "" {
		program.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	program.CreatedAt = now
	program.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, program); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", repository.ErrDuplicate
		}
		return "", err
	}
	return program.ID, nil
}

// ListByUser returns all programs owned by the given user.
func (r *mongoProgramRepository) ListByUser(ctx context.Context, userID string) ([]domain.WorkoutProgram, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	programs := []domain.WorkoutProgram{}
	if err := cursor.All(ctx, &programs); err != nil {
		return nil, err
	}
	return programs, nil
}

// Update replaces the program's name and exercise list, filtered by id AND
// owner.
func (r *mongoProgramRepository) Update(ctx context.Context, program *domain.WorkoutProgram) error {
	filter := bson.M{"_id": program.ID, "userId": program.UserID}
	update := bson.M{
		"$set": bson.M{
			"name":      program.Name,
			"exercises": program.Exercises,
			"updatedAt": time.Now().UTC(),
		},
	}

	result, err := r.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// Delete removes a program, filtered by id AND owner. Logs referencing the
// program are intentionally left in place.
func (r *mongoProgramRepository) Delete(ctx context.Context, id, userID string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "userId": userID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureProgramIndexes creates the indexes for the program collection.
// Call once during application startup.
func EnsureProgramIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index(),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
