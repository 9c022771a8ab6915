package httpt_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/maafkarbai/FullStackProjectBackEnd/internal/entity"
	mock_repository "github.com/maafkarbai/FullStackProjectBackEnd/internal/repository/mock"
	"github.com/maafkarbai/FullStackProjectBackEnd/internal/service"
	httpt "github.com/maafkarbai/FullStackProjectBackEnd/internal/transport/http"
	"github.com/maafkarbai/FullStackProjectBackEnd/pkg/logger"
	mock_logger "github.com/maafkarbai/FullStackProjectBackEnd/pkg/logger/mock"
	"github.com/maafkarbai/FullStackProjectBackEnd/pkg/metric"

	"github.com/gin-gonic/gin"
	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

type handlerMocks struct {
	lessonRepo *mock_repository.MockLessonRepository
	orderRepo  *mock_repository.MockOrderRepository
}

func newTestHandler(t *testing.T) (*gin.Engine, handlerMocks) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	ctrl := gomock.NewController(t)
	t.Cleanup(ctrl.Finish)

	mocks := handlerMocks{
		lessonRepo: mock_repository.NewMockLessonRepository(ctrl),
		orderRepo:  mock_repository.NewMockOrderRepository(ctrl),
	}

	events := mock_repository.NewMockEventPublisher(ctrl)
	events.EXPECT().OrderCreated(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()

	log := mock_logger.NewMockLogger(ctrl)
	log.EXPECT().Ctx(gomock.Any()).Return(log).AnyTimes()
	log.EXPECT().LogAttrs(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).AnyTimes()
	log.EXPECT().Infow(gomock.Any(), gomock.Any()).AnyTimes()
	log.EXPECT().Warnw(gomock.Any(), gomock.Any()).AnyTimes()
	log.EXPECT().Errorw(gomock.Any(), gomock.Any()).AnyTimes()
	log.EXPECT().GenerateRequestID().Return("test-request-id").AnyTimes()
	log.EXPECT().WithRequestID(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string) context.Context {
			return ctx
		}).AnyTimes()

	svc := service.NewStoreService(mocks.lessonRepo, mocks.orderRepo, events, log)
	handler := httpt.NewStoreHandler(svc, log, metric.NewFactory().HTTP(), "")

	return handler.Engine(), mocks
}

var _ logger.Logger = (*mock_logger.MockLogger)(nil)

func performRequest(engine *gin.Engine, method, path string, body []byte) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestListLessonsEndpoint(t *testing.T) {
	engine, mocks := newTestHandler(t)

	lessons := []entity.Lesson{
		{ID: primitive.NewObjectID(), Topic: "Math", Space: 5, Price: 100, Location: "London"},
		{ID: primitive.NewObjectID(), Topic: "Chess", Space: 0, Price: 80, Location: "York"},
	}
	mocks.lessonRepo.EXPECT().ListAll(gomock.Any()).Return(lessons, nil).Times(1)

	rec := performRequest(engine, http.MethodGet, "/lessons", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var got []entity.Lesson
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	require.Len(t, got, 2)
	require.Equal(t, "Math", got[0].Topic)
	require.Equal(t, "Chess", got[1].Topic)
}

func TestListLessonsEndpoint_StoreFailure(t *testing.T) {
	engine, mocks := newTestHandler(t)

	mocks.lessonRepo.EXPECT().ListAll(gomock.Any()).
		Return(nil, errors.New("connection reset")).Times(1)

	rec := performRequest(engine, http.MethodGet, "/lessons", nil)
	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var resp httpt.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "Internal service error", resp.Error)
}

func TestCreateOrderEndpoint_Success(t *testing.T) {
	engine, mocks := newTestHandler(t)

	lesson := &entity.Lesson{ID: primitive.NewObjectID(), Topic: "Math", Space: 5}
	mocks.lessonRepo.EXPECT().FindByID(gomock.Any(), lesson.ID).Return(lesson, nil).Times(1)
	mocks.orderRepo.EXPECT().Insert(gomock.Any(), gomock.Any()).
		Return("order-123", nil).Times(1)

	body := []byte(`{
		"firstName": "Jane",
		"lastName": "Doe",
		"phone": "0123456789",
		"method": "Home Delivery",
		"address": "12 High Street",
		"zip": 10115,
		"lessons": [{"id": "` + lesson.ID.Hex() + `", "quantity": 2}]
	}`)

	rec := performRequest(engine, http.MethodPost, "/orders", body)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp httpt.OrderCreatedResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "Order created successfully", resp.Message)
	require.Equal(t, "order-123", resp.OrderID)
}

func TestCreateOrderEndpoint_ValidationRejections(t *testing.T) {
	testCases := []struct {
		desc        string
		body        string
		expectedErr string
	}{
		{
			desc:        "MissingFields",
			body:        `{"firstName": "Jane"}`,
			expectedErr: entity.ErrMissingFields.Error(),
		},
		{
			desc: "InvalidPhone",
			body: `{"firstName":"Jane","lastName":"Doe","phone":"123","method":"Pickup",
				"lessons":[{"id":"65b2f0a4c3e1d20789abcdef","quantity":1}]}`,
			expectedErr: entity.ErrInvalidPhone.Error(),
		},
		{
			desc: "InvalidZip",
			body: `{"firstName":"Jane","lastName":"Doe","phone":"0123456789",
				"method":"Home Delivery","address":"12 High Street","zip":"123",
				"lessons":[{"id":"65b2f0a4c3e1d20789abcdef","quantity":1}]}`,
			expectedErr: entity.ErrInvalidZip.Error(),
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			engine, _ := newTestHandler(t)

			rec := performRequest(engine, http.MethodPost, "/orders", []byte(tc.body))
			require.Equal(t, http.StatusBadRequest, rec.Code)

			var resp httpt.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			require.Equal(t, tc.expectedErr, resp.Error)
		})
	}
}

func TestCreateOrderEndpoint_InsufficientSpace(t *testing.T) {
	engine, mocks := newTestHandler(t)

	lesson := &entity.Lesson{ID: primitive.NewObjectID(), Topic: "Karate", Space: 2}
	mocks.lessonRepo.EXPECT().FindByID(gomock.Any(), lesson.ID).Return(lesson, nil).Times(1)

	body := []byte(`{
		"firstName": "Jane",
		"lastName": "Doe",
		"phone": "0123456789",
		"method": "Pickup",
		"lessons": [{"id": "` + lesson.ID.Hex() + `", "quantity": 3}]
	}`)

	rec := performRequest(engine, http.MethodPost, "/orders", body)
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp httpt.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Contains(t, resp.Error, "Karate")
}

func TestCreateOrderEndpoint_MalformedBody(t *testing.T) {
	engine, _ := newTestHandler(t)

	rec := performRequest(engine, http.MethodPost, "/orders", []byte(`{"firstName": `))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp httpt.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "Invalid request body", resp.Error)
}

func TestUpdateLessonEndpoint(t *testing.T) {
	lessonID := primitive.NewObjectID()

	testCases := []struct {
		desc     string
		body     string
		expected entity.LessonUpdate
	}{
		{
			desc:     "IncrementOperator",
			body:     `{"$inc": {"space": -1}}`,
			expected: entity.LessonUpdate{Inc: map[string]any{"space": float64(-1)}},
		},
		{
			desc:     "BarePayloadBecomesSet",
			body:     `{"topic": "New"}`,
			expected: entity.LessonUpdate{Set: map[string]any{"topic": "New"}},
		},
		{
			desc: "BothOperators",
			body: `{"$inc": {"space": -2}, "$set": {"location": "Hall B"}}`,
			expected: entity.LessonUpdate{
				Inc: map[string]any{"space": float64(-2)},
				Set: map[string]any{"location": "Hall B"},
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			engine, mocks := newTestHandler(t)

			mocks.lessonRepo.EXPECT().
				UpdateByID(gomock.Any(), lessonID, tc.expected).
				Return(nil).Times(1)

			rec := performRequest(
				engine, http.MethodPut, "/lessons/"+lessonID.Hex(), []byte(tc.body))
			require.Equal(t, http.StatusOK, rec.Code)

			var resp httpt.MessageResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			require.Equal(t, "Lesson updated successfully", resp.Message)
		})
	}
}

func TestUpdateLessonEndpoint_NotFound(t *testing.T) {
	engine, mocks := newTestHandler(t)

	lessonID := primitive.NewObjectID()
	mocks.lessonRepo.EXPECT().
		UpdateByID(gomock.Any(), lessonID, gomock.Any()).
		Return(entity.ErrDataNotFound).Times(1)

	rec := performRequest(
		engine, http.MethodPut, "/lessons/"+lessonID.Hex(), []byte(`{"topic": "New"}`))
	require.Equal(t, http.StatusNotFound, rec.Code)

	var resp httpt.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "Lesson not found", resp.Error)
}

func TestUpdateLessonEndpoint_InvalidID(t *testing.T) {
	engine, _ := newTestHandler(t)

	rec := performRequest(
		engine, http.MethodPut, "/lessons/not-an-object-id", []byte(`{"topic": "New"}`))
	require.Equal(t, http.StatusBadRequest, rec.Code)

	var resp httpt.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Equal(t, "Invalid lesson id format", resp.Error)
}

func TestHealthEndpoint(t *testing.T) {
	engine, _ := newTestHandler(t)

	rec := performRequest(engine, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)
}
