package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/remanmarket/erp-core/internal/core/domain"
	"github.com/remanmarket/erp-core/internal/port"
)

// InventoryService owns inventory records and their status transitions.
type InventoryService struct {
	repo     port.InventoryRepository
	notifier Notifier

	// mu serializes batch status changes so the per-item transition
	// check and the batch write commit together.
	mu sync.Mutex
}

func NewInventoryService(repo port.InventoryRepository, notifier Notifier) *InventoryService {
	return &InventoryService{repo: repo, notifier: notifier}
}

// List returns the items matching filter, newest first. Pure read.
func (s *InventoryService) List(ctx context.Context, filter domain.ItemFilter) ([]domain.InventoryItem, error) {
	items, err := s.repo.ListItems(ctx)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}

	out := make([]domain.InventoryItem, 0, len(items))
	for _, item := range items {
		if filter.Matches(item) {
			out = append(out, item)
		}
	}
	return out, nil
}

func (s *InventoryService) Get(ctx context.Context, id string) (domain.InventoryItem, error) {
	item, err := s.repo.GetItem(ctx, id)
	if err != nil {
		return domain.InventoryItem{}, fmt.Errorf("get item: %w", err)
	}
	if item == nil {
		return domain.InventoryItem{}, fmt.Errorf("item %s: %w", id, ErrNotFound)
	}
	return *item, nil
}

// ItemStatus returns the current lifecycle status of one item.
func (s *InventoryService) ItemStatus(ctx context.Context, id string) (domain.ItemStatus, error) {
	item, err := s.Get(ctx, id)
	if err != nil {
		return "", err
	}
	return item.Status, nil
}

// Add registers a manually created item. New items start as available.
func (s *InventoryService) Add(ctx context.Context, item domain.InventoryItem) (domain.InventoryItem, error) {
	if item.Name == "" {
		return domain.InventoryItem{}, fmt.Errorf("item name required: %w", ErrInvalidState)
	}

	now := time.Now()
	item.ID = uuid.NewString()
	item.Status = domain.ItemStatusAvailable
	item.CreatedAt = now
	item.UpdatedAt = now

	if err := s.repo.SaveItem(ctx, item); err != nil {
		return domain.InventoryItem{}, fmt.Errorf("save item: %w", err)
	}

	s.notifier.Add(domain.Notification{
		Type:    domain.NotificationGeneral,
		Title:   "Inventory Added",
		Content: fmt.Sprintf("%s has been added to inventory", item.Name),
	})
	return item, nil
}

// SetStatus moves every listed item to next, all or nothing. Items whose
// current status is ordered cannot be made available or listed again; one
// offending item fails the whole batch with no partial application. One
// notification is emitted per call, not per item.
func (s *InventoryService) SetStatus(ctx context.Context, ids []string, next domain.ItemStatus) error {
	if len(ids) == 0 {
		return nil
	}
	if !next.Valid() {
		return fmt.Errorf("unknown item status %q: %w", next, ErrInvalidState)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for _, id := range ids {
		item, err := s.repo.GetItem(ctx, id)
		if err != nil {
			return fmt.Errorf("get item: %w", err)
		}
		if item == nil {
			return fmt.Errorf("item %s: %w", id, ErrNotFound)
		}
		if !domain.CanChangeItemStatus(item.Status, next) {
			return fmt.Errorf("item %s is %s and cannot become %s: %w",
				id, item.Status, next, ErrInvalidTransition)
		}
	}

	if err := s.repo.UpdateStatusBatch(ctx, ids, next, time.Now()); err != nil {
		return fmt.Errorf("update status batch: %w", err)
	}

	s.notifier.Add(domain.Notification{
		Type:    domain.NotificationGeneral,
		Title:   "Inventory Updated",
		Content: fmt.Sprintf("%d item(s) set to %s", len(ids), next),
	})
	return nil
}
