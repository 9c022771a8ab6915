package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/maafkarbai/FullStackProjectBackEnd/internal/entity"
	"github.com/maafkarbai/FullStackProjectBackEnd/pkg/logger"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	_defaultContextTimeout = 500 * time.Millisecond
	_slowOpThreshold       = 200 * time.Millisecond
)

type (
	LessonRepository interface {
		FindByID(ctx context.Context, id primitive.ObjectID) (*entity.Lesson, error)
		UpdateByID(ctx context.Context, id primitive.ObjectID, update entity.LessonUpdate) error
		ListAll(ctx context.Context) ([]entity.Lesson, error)
	}

	OrderRepository interface {
		Insert(ctx context.Context, order *entity.Order) (string, error)
	}

	EventPublisher interface {
		OrderCreated(ctx context.Context, order *entity.Order) error
	}

	StoreService struct {
		lessonRepo LessonRepository
		orderRepo  OrderRepository
		events     EventPublisher
		logger     logger.Logger
	}
)

func NewStoreService(
	lessonRepo LessonRepository,
	orderRepo OrderRepository,
	events EventPublisher,
	logger logger.Logger,
) *StoreService {
	return &StoreService{
		lessonRepo: lessonRepo,
		orderRepo:  orderRepo,
		events:     events,
		logger:     logger,
	}
}

func (s *StoreService) ListLessons(ctx context.Context) ([]entity.Lesson, error) {
	const op = "service.ListLessons"
	log := s.logger.Ctx(ctx)

	ctx, cancel := context.WithTimeout(ctx, _defaultContextTimeout)
	defer cancel()

	lessons, err := s.lessonRepo.ListAll(ctx)
	if err != nil {
		log.LogAttrs(ctx, logger.ErrorLevel, "failed to list lessons",
			logger.String("op", op),
			logger.Any("error", err),
		)
		return nil, fmt.Errorf("%s: list all: %w", op, err)
	}

	return lessons, nil
}

// CreateOrder validates the order, reconciles every line item against
// current lesson availability in sequence, enriches the items with the
// resolved lesson id and topic, and persists the order. Lesson space is
// not decremented here; the storefront issues an explicit lesson update
// for that, so two concurrent orders can both pass the availability check
// against the same remaining space.
func (s *StoreService) CreateOrder(ctx context.Context, order *entity.Order) (string, error) {
	const op = "service.CreateOrder"
	log := s.logger.Ctx(ctx)

	startTime := time.Now()
	defer func() {
		if duration := time.Since(startTime); duration > _slowOpThreshold {
			log.LogAttrs(ctx, logger.WarnLevel, "slow service operation",
				logger.String("op", op),
				logger.String("duration", duration.String()),
			)
		}
	}()

	if err := ValidateOrder(order); err != nil {
		log.LogAttrs(ctx, logger.WarnLevel, "order validation failed",
			logger.String("op", op),
			logger.Any("error", err),
		)
		return "", err
	}

	if err := s.reconcileItems(ctx, order); err != nil {
		if entity.IsOrderRejection(err) {
			log.LogAttrs(ctx, logger.WarnLevel, "order reconciliation rejected",
				logger.String("op", op),
				logger.Any("error", err),
			)
			return "", err
		}
		log.LogAttrs(ctx, logger.ErrorLevel, "order reconciliation failed",
			logger.String("op", op),
			logger.Any("error", err),
		)
		return "", fmt.Errorf("%s: reconcile items: %w", op, err)
	}

	order.CreatedAt = time.Now().UTC()

	orderID, err := s.insertOrder(ctx, order)
	if err != nil {
		log.LogAttrs(ctx, logger.ErrorLevel, "order creation failed",
			logger.String("op", op),
			logger.Any("error", err),
		)
		return "", fmt.Errorf("%s: insert order: %w", op, err)
	}

	s.publishOrderCreated(ctx, order)

	log.LogAttrs(ctx, logger.InfoLevel, "order created successfully",
		logger.String("op", op),
		logger.String("order_id", orderID),
		logger.Int("items_count", len(order.Items)),
		logger.String("duration", time.Since(startTime).String()),
	)

	return orderID, nil
}

// reconcileItems walks the line items in order and stops at the first
// failure. Nothing has been written at that point, so rejecting the whole
// order needs no rollback.
func (s *StoreService) reconcileItems(ctx context.Context, order *entity.Order) error {
	for _, item := range order.Items {
		lessonID, err := primitive.ObjectIDFromHex(item.ID)
		if err != nil {
			return entity.ErrLessonNotFound
		}

		lesson, err := s.fetchLesson(ctx, lessonID)
		if err != nil {
			if errors.Is(err, entity.ErrDataNotFound) {
				return entity.ErrLessonNotFound
			}
			return err
		}

		if lesson.Space < item.Quantity {
			return fmt.Errorf("%w in %s", entity.ErrInsufficientSpace, lesson.Topic)
		}

		item.LessonID = lesson.ID
		item.LessonTopic = lesson.Topic
		item.ID = ""
	}

	return nil
}

func (s *StoreService) fetchLesson(
	ctx context.Context,
	lessonID primitive.ObjectID,
) (*entity.Lesson, error) {
	ctx, cancel := context.WithTimeout(ctx, _defaultContextTimeout)
	defer cancel()

	return s.lessonRepo.FindByID(ctx, lessonID)
}

func (s *StoreService) insertOrder(ctx context.Context, order *entity.Order) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, _defaultContextTimeout)
	defer cancel()

	return s.orderRepo.Insert(ctx, order)
}

// publishOrderCreated is awaited but never fails the order: the order is
// already persisted, so a broker outage only costs the event.
func (s *StoreService) publishOrderCreated(ctx context.Context, order *entity.Order) {
	if err := s.events.OrderCreated(ctx, order); err != nil {
		s.logger.Ctx(ctx).LogAttrs(ctx, logger.ErrorLevel, "failed to publish order event",
			logger.String("order_id", order.ID),
			logger.Any("error", err),
		)
	}
}

// UpdateLesson applies the increment/set union to the target lesson. The
// payload is applied as-is: no bounds are enforced, and a negative
// increment may drive space below zero.
func (s *StoreService) UpdateLesson(
	ctx context.Context,
	lessonID primitive.ObjectID,
	update entity.LessonUpdate,
) error {
	const op = "service.UpdateLesson"
	log := s.logger.Ctx(ctx)

	ctx, cancel := context.WithTimeout(ctx, _defaultContextTimeout)
	defer cancel()

	if err := s.lessonRepo.UpdateByID(ctx, lessonID, update); err != nil {
		if errors.Is(err, entity.ErrDataNotFound) {
			return err
		}
		log.LogAttrs(ctx, logger.ErrorLevel, "lesson update failed",
			logger.String("op", op),
			logger.String("lesson_id", lessonID.Hex()),
			logger.Any("error", err),
		)
		return fmt.Errorf("%s: update by id: %w", op, err)
	}

	log.LogAttrs(ctx, logger.InfoLevel, "lesson updated",
		logger.String("op", op),
		logger.String("lesson_id", lessonID.Hex()),
		logger.Int("inc_fields", len(update.Inc)),
		logger.Int("set_fields", len(update.Set)),
	)

	return nil
}
