package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/maafkarbai/FullStackProjectBackEnd/internal/entity"
	"github.com/maafkarbai/FullStackProjectBackEnd/pkg/metric"
	mongostorage "github.com/maafkarbai/FullStackProjectBackEnd/pkg/storage/mongo"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

const _lessonsCollection = "lessons"

type LessonRepository struct {
	db      *mongostorage.Mongo
	metrics metric.Store
}

func NewLessonRepository(db *mongostorage.Mongo, metrics metric.Store) *LessonRepository {
	return &LessonRepository{db: db, metrics: metrics}
}

func (lr *LessonRepository) collection() *mongo.Collection {
	return lr.db.DB.Collection(_lessonsCollection)
}

func (lr *LessonRepository) FindByID(
	ctx context.Context,
	id primitive.ObjectID,
) (*entity.Lesson, error) {
	const op = "repository.lesson.FindByID"

	start := time.Now()
	defer func() { lr.metrics.ObserveDuration(op, time.Since(start)) }()

	var lesson entity.Lesson
	err := lr.collection().FindOne(ctx, bson.M{"_id": id}).Decode(&lesson)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, entity.ErrDataNotFound
		}
		lr.metrics.IncrementFailures(op)
		return nil, fmt.Errorf("%s: find one: %w", op, err)
	}

	return &lesson, nil
}

// UpdateByID translates the update union into the store's increment and
// set operators. An update without fields is passed through unchanged and
// rejected by the store, not by this layer.
func (lr *LessonRepository) UpdateByID(
	ctx context.Context,
	id primitive.ObjectID,
	update entity.LessonUpdate,
) error {
	const op = "repository.lesson.UpdateByID"

	start := time.Now()
	defer func() { lr.metrics.ObserveDuration(op, time.Since(start)) }()

	doc := bson.M{}
	if len(update.Inc) > 0 {
		doc["$inc"] = bson.M(update.Inc)
	}
	if len(update.Set) > 0 {
		doc["$set"] = bson.M(update.Set)
	}
	if update.IsEmpty() {
		doc["$set"] = bson.M{}
	}

	result, err := lr.collection().UpdateByID(ctx, id, doc)
	if err != nil {
		lr.metrics.IncrementFailures(op)
		return fmt.Errorf("%s: update by id: %w", op, err)
	}

	if result.MatchedCount == 0 {
		return entity.ErrDataNotFound
	}

	return nil
}

func (lr *LessonRepository) ListAll(ctx context.Context) ([]entity.Lesson, error) {
	const op = "repository.lesson.ListAll"

	start := time.Now()
	defer func() { lr.metrics.ObserveDuration(op, time.Since(start)) }()

	cursor, err := lr.collection().Find(ctx, bson.D{})
	if err != nil {
		lr.metrics.IncrementFailures(op)
		return nil, fmt.Errorf("%s: find: %w", op, err)
	}

	var lessons []entity.Lesson
	if err = cursor.All(ctx, &lessons); err != nil {
		lr.metrics.IncrementFailures(op)
		return nil, fmt.Errorf("%s: cursor decode: %w", op, err)
	}

	if lessons == nil {
		lessons = []entity.Lesson{}
	}

	return lessons, nil
}
