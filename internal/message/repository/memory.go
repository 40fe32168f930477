package repository

import (
	"context"
	"sort"
	"sync"

	"github.com/pkg/errors"

	"github.com/fekuna/catalog-service/internal/message"
	"github.com/fekuna/catalog-service/internal/message/dto"
	"github.com/fekuna/catalog-service/internal/model"
)

// MemoryRepository keeps messages until the process exits.
type MemoryRepository struct {
	mu       sync.RWMutex
	messages map[string]model.Message
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{messages: map[string]model.Message{}}
}

func (r *MemoryRepository) Create(_ context.Context, m *model.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.messages[m.ID]; ok {
		return errors.Errorf("insert message: duplicate id %s", m.ID)
	}
	r.messages[m.ID] = *m
	return nil
}

func (r *MemoryRepository) List(_ context.Context, status string) ([]model.Message, error) {
	r.mu.RLock()
	out := make([]model.Message, 0, len(r.messages))
	for _, m := range r.messages {
		if (status == dto.StatusRead && !m.IsRead) || (status == dto.StatusUnread && m.IsRead) {
			continue
		}
		out = append(out, m)
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *MemoryRepository) SetRead(_ context.Context, id string, isRead bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.messages[id]
	if !ok {
		return message.ErrNotFound
	}
	m.IsRead = isRead
	r.messages[id] = m
	return nil
}

func (r *MemoryRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.messages[id]; !ok {
		return message.ErrNotFound
	}
	delete(r.messages, id)
	return nil
}
