package main

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/maafkarbai/FullStackProjectBackEnd/internal/config"
	"github.com/maafkarbai/FullStackProjectBackEnd/internal/entity"
	"github.com/maafkarbai/FullStackProjectBackEnd/internal/repository"
	"github.com/maafkarbai/FullStackProjectBackEnd/internal/service"
	kafkat "github.com/maafkarbai/FullStackProjectBackEnd/internal/transport/kafka"
	"github.com/maafkarbai/FullStackProjectBackEnd/pkg/logger"
	"github.com/maafkarbai/FullStackProjectBackEnd/pkg/metric"
	mongostorage "github.com/maafkarbai/FullStackProjectBackEnd/pkg/storage/mongo"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/stretchr/testify/suite"
	"go.mongodb.org/mongo-driver/bson"
)

type IntegrationTestSuite struct {
	suite.Suite

	db           *mongostorage.Mongo
	lessonRepo   *repository.LessonRepository
	storeService *service.StoreService
	cfg          *config.Config
}

func (s *IntegrationTestSuite) SetupSuite() {
	cfg, err := config.Load()
	s.Require().NoError(err, "Failed to load configuration")
	s.cfg = cfg

	testLogger, err := logger.NewAdapter(cfg)
	s.Require().NoError(err)

	db, err := mongostorage.NewMongo(&cfg.Mongo, testLogger)
	s.Require().NoError(err, "Failed to connect to mongo")
	s.db = db

	metrics := metric.NewFactory()
	s.lessonRepo = repository.NewLessonRepository(db, metrics.Store())
	orderRepo := repository.NewOrderRepository(db, metrics.Store())

	s.storeService = service.NewStoreService(
		s.lessonRepo,
		orderRepo,
		kafkat.NopPublisher{},
		testLogger,
	)
}

func (s *IntegrationTestSuite) TearDownSuite() {
	if s.db != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.Require().NoError(s.db.Close(ctx))
	}
}

func (s *IntegrationTestSuite) TearDownTest() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	_, err := s.db.DB.Collection("lessons").DeleteMany(ctx, bson.D{})
	s.Require().NoError(err)
	_, err = s.db.DB.Collection("orders").DeleteMany(ctx, bson.D{})
	s.Require().NoError(err)
}

func (s *IntegrationTestSuite) seedLesson(topic string, space int64) entity.Lesson {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	lesson := entity.Lesson{
		Topic:    topic,
		Space:    space,
		Price:    float64(gofakeit.Number(40, 200)),
		Location: gofakeit.City(),
		Icon:     gofakeit.Word(),
	}

	result, err := s.db.DB.Collection("lessons").InsertOne(ctx, lesson)
	s.Require().NoError(err)

	var inserted entity.Lesson
	err = s.db.DB.Collection("lessons").
		FindOne(ctx, bson.M{"_id": result.InsertedID}).
		Decode(&inserted)
	s.Require().NoError(err)

	return inserted
}

func (s *IntegrationTestSuite) TestListLessons() {
	s.seedLesson("Math", 5)
	s.seedLesson("Chess", 3)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	lessons, err := s.storeService.ListLessons(ctx)
	s.Require().NoError(err)
	s.Require().Len(lessons, 2)
}

func (s *IntegrationTestSuite) TestCreateOrderEnrichesItems() {
	lesson := s.seedLesson("Karate", 5)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	order := &entity.Order{
		FirstName: "Jane",
		LastName:  "Doe",
		Phone:     "0123456789",
		Method:    "Pickup",
		Items: []*entity.OrderItem{
			{ID: lesson.ID.Hex(), Quantity: 2},
		},
	}

	orderID, err := s.storeService.CreateOrder(ctx, order)
	s.Require().NoError(err)
	s.Require().NotEmpty(orderID)

	var persisted bson.M
	err = s.db.DB.Collection("orders").
		FindOne(ctx, bson.M{"_id": orderID}).
		Decode(&persisted)
	s.Require().NoError(err)

	items, ok := persisted["lessons"].(bson.A)
	s.Require().True(ok)
	s.Require().Len(items, 1)

	item, ok := items[0].(bson.M)
	s.Require().True(ok)
	s.Require().Equal(lesson.Topic, item["lessonTopic"])
	s.Require().NotContains(item, "id")
}

func (s *IntegrationTestSuite) TestCreateOrderRejectsWithoutPersisting() {
	lesson := s.seedLesson("Art", 1)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	order := &entity.Order{
		FirstName: "Jane",
		LastName:  "Doe",
		Phone:     "0123456789",
		Method:    "Pickup",
		Items: []*entity.OrderItem{
			{ID: lesson.ID.Hex(), Quantity: 3},
		},
	}

	_, err := s.storeService.CreateOrder(ctx, order)
	s.Require().ErrorIs(err, entity.ErrInsufficientSpace)

	count, err := s.db.DB.Collection("orders").CountDocuments(ctx, bson.D{})
	s.Require().NoError(err)
	s.Require().Zero(count)
}

func (s *IntegrationTestSuite) TestUpdateLessonIncrementAndSet() {
	lesson := s.seedLesson("Music", 10)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.storeService.UpdateLesson(ctx, lesson.ID, entity.LessonUpdate{
		Inc: map[string]any{"space": -1},
	})
	s.Require().NoError(err)

	updated, err := s.lessonRepo.FindByID(ctx, lesson.ID)
	s.Require().NoError(err)
	s.Require().EqualValues(9, updated.Space)
	s.Require().Equal("Music", updated.Topic)

	err = s.storeService.UpdateLesson(ctx, lesson.ID, entity.LessonUpdate{
		Set: map[string]any{"topic": "New"},
	})
	s.Require().NoError(err)

	updated, err = s.lessonRepo.FindByID(ctx, lesson.ID)
	s.Require().NoError(err)
	s.Require().Equal("New", updated.Topic)
	s.Require().EqualValues(9, updated.Space)
}

func TestIntegrationSuite(t *testing.T) {
	if os.Getenv("CONFIG_PATH") == "" {
		t.Skip("CONFIG_PATH not set, skipping integration tests")
	}
	suite.Run(t, new(IntegrationTestSuite))
}
