package manager

import (
	"context"
	"fmt"
	"strings"

	"github.com/thenoetrevino/arbor/internal/models"
)

// ConservationStateByID looks a state up on the service. An unknown id yields a nil value.
func (m *Manager) ConservationStateByID(id int, cb Callback[*models.ConservationState]) {
	byID(m, models.KindConservationState, id, m.client.GetConservationStateByID, cb)
}

// CreateConservationState validates s and creates it. The callback carries the new id.
func (m *Manager) CreateConservationState(s models.ConservationState, cb Callback[int]) {
	if err := validateConservationState(s); err != nil {
		cb.deliver(fail[int](err, ""))
		return
	}
	s.ID = 0
	s.Name = strings.TrimSpace(s.Name)

	mutate(m, models.KindConservationState, "create conservation state", func(ctx context.Context) (int, error) {
		return m.client.CreateConservationState(ctx, s)
	}, func(id int) string {
		return fmt.Sprintf("Conservation state '%s' created with ID %d", s.Name, id)
	}, "Error creating conservation state", cb)
}

// UpdateConservationState validates s and replaces the state with the given id
func (m *Manager) UpdateConservationState(id int, s models.ConservationState, cb Callback[int]) {
	if err := validateID("conservation state", id); err != nil {
		cb.deliver(fail[int](err, ""))
		return
	}
	if err := validateConservationState(s); err != nil {
		cb.deliver(fail[int](err, ""))
		return
	}
	s.ID = id
	s.Name = strings.TrimSpace(s.Name)

	mutate(m, models.KindConservationState, "update conservation state", func(ctx context.Context) (int, error) {
		ok, err := m.client.UpdateConservationState(ctx, s)
		return applied(id, ok, err)
	}, func(int) string {
		return fmt.Sprintf("Conservation state '%s' updated", s.Name)
	}, "Error updating conservation state", cb)
}

// DeleteConservationState removes the state with the given id
func (m *Manager) DeleteConservationState(id int, cb Callback[int]) {
	if err := validateID("conservation state", id); err != nil {
		cb.deliver(fail[int](err, ""))
		return
	}

	mutate(m, models.KindConservationState, "delete conservation state", func(ctx context.Context) (int, error) {
		ok, err := m.client.DeleteConservationState(ctx, id)
		return applied(id, ok, err)
	}, func(id int) string {
		return fmt.Sprintf("Conservation state %d deleted", id)
	}, "Error deleting conservation state", cb)
}
