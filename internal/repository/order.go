package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/maafkarbai/FullStackProjectBackEnd/internal/entity"
	"github.com/maafkarbai/FullStackProjectBackEnd/pkg/metric"
	mongostorage "github.com/maafkarbai/FullStackProjectBackEnd/pkg/storage/mongo"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/mongo"
)

const _ordersCollection = "orders"

type OrderRepository struct {
	db      *mongostorage.Mongo
	metrics metric.Store
}

func NewOrderRepository(db *mongostorage.Mongo, metrics metric.Store) *OrderRepository {
	return &OrderRepository{db: db, metrics: metrics}
}

func (or *OrderRepository) collection() *mongo.Collection {
	return or.db.DB.Collection(_ordersCollection)
}

// Insert persists the order and returns its generated id.
func (or *OrderRepository) Insert(ctx context.Context, order *entity.Order) (string, error) {
	const op = "repository.order.Insert"

	start := time.Now()
	defer func() { or.metrics.ObserveDuration(op, time.Since(start)) }()

	if order.ID == "" {
		order.ID = uuid.NewString()
	}

	if _, err := or.collection().InsertOne(ctx, order); err != nil {
		or.metrics.IncrementFailures(op)
		return "", fmt.Errorf("%s: insert one: %w", op, err)
	}

	return order.ID, nil
}
