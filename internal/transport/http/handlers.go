package httpt

import (
	"context"
	"net/http"
	"time"

	"github.com/maafkarbai/FullStackProjectBackEnd/internal/entity"
	"github.com/maafkarbai/FullStackProjectBackEnd/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	_defaultContextTimeout = 500 * time.Millisecond
)

func (h *StoreHandler) listLessonsHandler(c *gin.Context) {
	const op = "transport.listLessonsHandler"

	ctx, cancel := context.WithTimeout(c.Request.Context(), _defaultContextTimeout)
	defer cancel()

	lessons, err := h.svc.ListLessons(ctx)
	if err != nil {
		h.handleServiceError(c, err, op)
		return
	}

	c.JSON(http.StatusOK, lessons)
}

func (h *StoreHandler) createOrderHandler(c *gin.Context) {
	const op = "transport.createOrderHandler"

	log := h.log.Ctx(c.Request.Context())

	var order entity.Order
	if err := c.ShouldBindJSON(&order); err != nil {
		log.LogAttrs(c.Request.Context(), logger.WarnLevel, "malformed order payload",
			logger.String("op", op),
			logger.Any("error", err),
			logger.String("remote_addr", c.ClientIP()),
		)
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), _defaultContextTimeout)
	defer cancel()

	orderID, err := h.svc.CreateOrder(ctx, &order)
	if err != nil {
		h.handleServiceError(c, err, op)
		return
	}

	log.LogAttrs(ctx, logger.InfoLevel, "order accepted",
		logger.String("order_id", orderID),
	)

	c.JSON(http.StatusCreated, OrderCreatedResponse{
		Message: "Order created successfully",
		OrderID: orderID,
	})
}

func (h *StoreHandler) updateLessonHandler(c *gin.Context) {
	const op = "transport.updateLessonHandler"

	lessonIDStr := c.Param("lesson_id")
	lessonID, err := primitive.ObjectIDFromHex(lessonIDStr)
	if err != nil {
		h.handleInvalidLessonID(c, op, lessonIDStr)
		return
	}

	var payload map[string]any
	if err = c.ShouldBindJSON(&payload); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{Error: "Invalid request body"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), _defaultContextTimeout)
	defer cancel()

	if err = h.svc.UpdateLesson(ctx, lessonID, entity.LessonUpdateFromPayload(payload)); err != nil {
		h.handleServiceError(c, err, op)
		return
	}

	c.JSON(http.StatusOK, MessageResponse{Message: "Lesson updated successfully"})
}
