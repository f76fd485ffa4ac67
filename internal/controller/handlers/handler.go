package handlers

import (
	"availability-service/internal/service"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Handler обрабатывает HTTP запросы к API расписания
type Handler struct {
	slotService *service.SlotService
	weekService *service.WeekService
	validate    *validator.Validate
	logger      *zap.Logger
}

// New создаёт новый обработчик
func New(slotService *service.SlotService, weekService *service.WeekService, logger *zap.Logger) *Handler {
	return &Handler{
		slotService: slotService,
		weekService: weekService,
		validate:    validator.New(),
		logger:      logger,
	}
}
