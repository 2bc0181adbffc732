package slots

import (
	"context"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-SlotCalendar/internal/domain"
)

// Service сервис управления слотами (чтение и администрирование)
type Service struct {
	store    SlotStore
	metrics  Metrics
	logger   Logger
	validate *validator.Validate
}

// NewService создает новый экземпляр сервиса слотов
func NewService(store SlotStore, metrics Metrics, logger Logger) *Service {
	return &Service{
		store:    store,
		metrics:  metrics,
		logger:   logger,
		validate: newValidator(),
	}
}

// List возвращает слоты в интервале дат [startDate, endDate].
// При ошибке хранилища возвращает пустой список вместе с ошибкой: вызывающий показывает "нет слотов".
// Слоты с совпадающей составной идентичностью логируются и учитываются в метриках.
func (s *Service) List(ctx context.Context, startDate, endDate string) ([]domain.Slot, error) {
	slots, err := s.store.FetchSlots(ctx, startDate, endDate)
	if err != nil {
		code := domain.CodeOf(err)
		s.logger.Warn("List: failed to fetch slots %s..%s (code=%s): %v", startDate, endDate, code, err)
		s.metrics.ObserveFetchFailure(code)
		return []domain.Slot{}, err
	}
	if slots == nil {
		slots = []domain.Slot{}
	}

	if dups := domain.DuplicateIdentities(slots); len(dups) > 0 {
		s.logger.Warn("List: %d duplicate slot identities in %s..%s, first=%s", len(dups), startDate, endDate, dups[0])
		s.metrics.ObserveDuplicates(len(dups))
	}

	return slots, nil
}

// Save создает слот или обновляет вместимость существующего
func (s *Service) Save(ctx context.Context, slot domain.Slot) error {
	if err := s.validateSlot(slot); err != nil {
		s.logger.Warn("Save: validation failed: %v", err)
		return err
	}

	if err := s.store.UpsertSlot(ctx, slot); err != nil {
		s.logger.Error("Save: failed to upsert slot %s: %v", slot.Identity(), err)
		return fmt.Errorf("save slot: %w", err)
	}

	s.logger.Info("Save: slot %s saved with maxQuota=%d", slot.Identity(), slot.MaxQuota)
	return nil
}

// Delete удаляет слот по составному ключу. Удаление отсутствующего слота не является ошибкой.
func (s *Service) Delete(ctx context.Context, slot domain.Slot) error {
	if err := s.validateIdentity(slot); err != nil {
		s.logger.Warn("Delete: validation failed: %v", err)
		return err
	}

	if err := s.store.DeleteSlot(ctx, slot); err != nil {
		s.logger.Error("Delete: failed to delete slot %s: %v", slot.Identity(), err)
		return fmt.Errorf("delete slot: %w", err)
	}

	s.logger.Info("Delete: slot %s deleted", slot.Identity())
	return nil
}
