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

const customExerciseCollectionName = "custom_exercises"

// mongoCustomExerciseRepository implements repository.CustomExerciseRepository
// using MongoDB.
type mongoCustomExerciseRepository struct {
	collection *mongo.Collection
}

// NewMongoCustomExerciseRepository creates a new custom exercise repository
// backed by the given database.
func NewMongoCustomExerciseRepository(db *mongo.Database) repository.CustomExerciseRepository {
	return &mongoCustomExerciseRepository{
		collection: db.Collection(customExerciseCollectionName),
	}
}

// Insert stores a new custom exercise and returns its backend-generated id.
func (r *mongoCustomExerciseRepository) Insert(ctx context.Context, exercise *domain.CustomExercise) (string, error) {
	if exercise.UserID == "" || exercise.Name == "" {
		return "", errors.New("custom exercise owner and name are required")
	}

	if exercise.ID == "" {
		exercise.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	exercise.CreatedAt = now
	exercise.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, exercise); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return "", repository.ErrDuplicate
		}
		return "", err
	}
	return exercise.ID, nil
}

// ListByUser returns all custom exercises owned by the given user.
func (r *mongoCustomExerciseRepository) ListByUser(ctx context.Context, userID string) ([]domain.CustomExercise, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"userId": userID})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	exercises := []domain.CustomExercise{}
	if err := cursor.All(ctx, &exercises); err != nil {
		return nil, err
	}
	return exercises, nil
}

// Update replaces the mutable fields of an exercise, filtered by id AND
// owner so cross-user mutation is impossible.
func (r *mongoCustomExerciseRepository) Update(ctx context.Context, exercise *domain.CustomExercise) error {
	filter := bson.M{"_id": exercise.ID, "userId": exercise.UserID}
	update := bson.M{
		"$set": bson.M{
			"name":        exercise.Name,
			"muscleGroup": exercise.MuscleGroup,
			"equipment":   exercise.Equipment,
			"difficulty":  exercise.Difficulty,
			"updatedAt":   time.Now().UTC(),
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

// Delete removes an exercise, filtered by id AND owner.
func (r *mongoCustomExerciseRepository) Delete(ctx context.Context, id, userID string) error {
	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": id, "userId": userID})
	if err != nil {
		return err
	}
	if result.DeletedCount == 0 {
		return repository.ErrNotFound
	}
	return nil
}

// EnsureCustomExerciseIndexes creates the indexes for the custom exercise
// collection. Call once during application startup.
func EnsureCustomExerciseIndexes(ctx context.Context, collection *mongo.Collection) error {
	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "userId", Value: 1}},
			Options: options.Index(),
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	return err
}
