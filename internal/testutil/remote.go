package testutil

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/thenoetrevino/arbor/internal/models"
	"github.com/thenoetrevino/arbor/internal/remote"
)

// FakeRemote is an in-memory remote.Client that mimics the forest service:
// ids are assigned on create, deletes are soft, empty and duplicate names are
// rejected with a ServiceFault. Every call is counted by operation name.
type FakeRemote struct {
	mu       sync.Mutex
	now      func() time.Time
	nextID   int
	species  map[int]models.Species
	zones    map[int]models.Zone
	states   map[int]models.ConservationState
	calls    map[string]int
	failures map[string]error
	hooks    map[string]func(ctx context.Context)
}

var (
	_ remote.Client = (*FakeRemote)(nil)
	_ remote.Pinger = (*FakeRemote)(nil)
)

// NewFakeRemote returns an empty fake
func NewFakeRemote() *FakeRemote {
	return &FakeRemote{
		now:      time.Now,
		nextID:   1,
		species:  make(map[int]models.Species),
		zones:    make(map[int]models.Zone),
		states:   make(map[int]models.ConservationState),
		calls:    make(map[string]int),
		failures: make(map[string]error),
		hooks:    make(map[string]func(ctx context.Context)),
	}
}

// SetClock replaces the clock used for timestamps
func (f *FakeRemote) SetClock(now func() time.Time) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = now
}

// FailOn makes every call to op return err until ClearFailures
func (f *FakeRemote) FailOn(op string, err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failures[op] = err
}

// FailTransport makes op fail as if the service was unreachable
func (f *FakeRemote) FailTransport(op string) {
	f.FailOn(op, &remote.TransportError{Op: op, Err: fmt.Errorf("connection refused")})
}

// ClearFailures removes every injected failure
func (f *FakeRemote) ClearFailures() {
	f.mu.Lock()
	defer f.mu.Unlock()
	clear(f.failures)
}

// OnCall runs hook at the start of every call to op, outside the fake's lock.
// Useful for blocking a call mid-flight.
func (f *FakeRemote) OnCall(op string, hook func(ctx context.Context)) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.hooks[op] = hook
}

// Calls returns how many times op was invoked
func (f *FakeRemote) Calls(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

// TotalCalls returns the number of calls across every operation
func (f *FakeRemote) TotalCalls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	total := 0
	for _, n := range f.calls {
		total += n
	}
	return total
}

// ResetCalls zeroes every call counter
func (f *FakeRemote) ResetCalls() {
	f.mu.Lock()
	defer f.mu.Unlock()
	clear(f.calls)
}

// SeedZones stores zones as-is, assigning ids to those without one
func (f *FakeRemote) SeedZones(zones ...models.Zone) []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]int, 0, len(zones))
	for _, z := range zones {
		if z.ID == 0 {
			z.ID = f.allocate()
		}
		f.bump(z.ID)
		f.zones[z.ID] = z
		ids = append(ids, z.ID)
	}
	return ids
}

// SeedStates stores conservation states as-is, assigning ids to those without one
func (f *FakeRemote) SeedStates(states ...models.ConservationState) []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]int, 0, len(states))
	for _, s := range states {
		if s.ID == 0 {
			s.ID = f.allocate()
		}
		f.bump(s.ID)
		f.states[s.ID] = s
		ids = append(ids, s.ID)
	}
	return ids
}

// SeedSpecies stores species as-is, assigning ids to those without one
func (f *FakeRemote) SeedSpecies(species ...models.Species) []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	ids := make([]int, 0, len(species))
	for _, s := range species {
		if s.ID == 0 {
			s.ID = f.allocate()
		}
		f.bump(s.ID)
		f.species[s.ID] = s
		ids = append(ids, s.ID)
	}
	return ids
}

// Species returns the stored record, including soft-deleted ones
func (f *FakeRemote) Species(id int) (models.Species, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.species[id]
	return s, ok
}

func (f *FakeRemote) allocate() int {
	id := f.nextID
	f.nextID++
	return id
}

func (f *FakeRemote) bump(id int) {
	if id >= f.nextID {
		f.nextID = id + 1
	}
}

// enter counts the call, runs any hook and returns any injected failure
func (f *FakeRemote) enter(ctx context.Context, op string) error {
	f.mu.Lock()
	f.calls[op]++
	hook := f.hooks[op]
	err := f.failures[op]
	f.mu.Unlock()

	if hook != nil {
		hook(ctx)
	}
	if err != nil {
		return err
	}
	if ctxErr := ctx.Err(); ctxErr != nil {
		return &remote.TransportError{Op: op, Err: ctxErr}
	}
	return nil
}

func sortedValues[T models.Identifiable](m map[int]T) []T {
	out := make([]T, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	slices.SortFunc(out, func(a, b T) int { return a.GetID() - b.GetID() })
	return out
}

// resolve fills the denormalized names the way the service joins them
func (f *FakeRemote) resolve(s models.Species) models.Species {
	if z, ok := f.zones[s.ZoneID]; ok {
		s.ZoneName = z.Name
	}
	if st, ok := f.states[s.ConservationStateID]; ok {
		s.ConservationStateName = st.Name
	}
	return s
}

// GetAllSpecies returns every species ordered by id
func (f *FakeRemote) GetAllSpecies(ctx context.Context) ([]models.Species, error) {
	if err := f.enter(ctx, remote.OpGetAllSpecies); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	out := sortedValues(f.species)
	for i := range out {
		out[i] = f.resolve(out[i])
	}
	return out, nil
}

// GetSpeciesByID returns one species or an error wrapping remote.ErrNotFound
func (f *FakeRemote) GetSpeciesByID(ctx context.Context, id int) (*models.Species, error) {
	if err := f.enter(ctx, remote.OpGetSpeciesByID); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.species[id]
	if !ok {
		return nil, fmt.Errorf("species %d: %w", id, remote.ErrNotFound)
	}
	s = f.resolve(s)
	return &s, nil
}

func (f *FakeRemote) duplicateSpecies(name string, except int) bool {
	for id, s := range f.species {
		if id != except && strings.EqualFold(s.CommonName, name) {
			return true
		}
	}
	return false
}

// CreateSpecies stores a new species and returns its id
func (f *FakeRemote) CreateSpecies(ctx context.Context, species models.Species) (int, error) {
	op := remote.OpCreateSpecies
	if err := f.enter(ctx, op); err != nil {
		return 0, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if strings.TrimSpace(species.CommonName) == "" {
		return 0, remote.NewFault(op, "common name is required")
	}
	if f.duplicateSpecies(species.CommonName, 0) {
		return 0, remote.NewFault(op, fmt.Sprintf("a species named %q already exists", species.CommonName))
	}
	species.ID = f.allocate()
	species.CreatedAt = f.now()
	species.ModifiedAt = time.Time{}
	f.species[species.ID] = species
	return species.ID, nil
}

// UpdateSpecies replaces an existing species. It returns false when the id is unknown.
func (f *FakeRemote) UpdateSpecies(ctx context.Context, species models.Species) (bool, error) {
	op := remote.OpUpdateSpecies
	if err := f.enter(ctx, op); err != nil {
		return false, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.species[species.ID]
	if !ok {
		return false, nil
	}
	if f.duplicateSpecies(species.CommonName, species.ID) {
		return false, remote.NewFault(op, fmt.Sprintf("a species named %q already exists", species.CommonName))
	}
	species.CreatedAt = existing.CreatedAt
	species.ModifiedAt = f.now()
	f.species[species.ID] = species
	return true, nil
}

// DeleteSpecies marks a species inactive. It returns false when the id is unknown.
func (f *FakeRemote) DeleteSpecies(ctx context.Context, id int) (bool, error) {
	if err := f.enter(ctx, remote.OpDeleteSpecies); err != nil {
		return false, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.species[id]
	if !ok {
		return false, nil
	}
	s.Active = false
	s.ModifiedAt = f.now()
	f.species[id] = s
	return true, nil
}

// GetAllZones returns every zone ordered by id
func (f *FakeRemote) GetAllZones(ctx context.Context) ([]models.Zone, error) {
	if err := f.enter(ctx, remote.OpGetAllZones); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return sortedValues(f.zones), nil
}

// GetZoneByID returns one zone or an error wrapping remote.ErrNotFound
func (f *FakeRemote) GetZoneByID(ctx context.Context, id int) (*models.Zone, error) {
	if err := f.enter(ctx, remote.OpGetZoneByID); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	z, ok := f.zones[id]
	if !ok {
		return nil, fmt.Errorf("zone %d: %w", id, remote.ErrNotFound)
	}
	return &z, nil
}

// CreateZone stores a new zone and returns its id
func (f *FakeRemote) CreateZone(ctx context.Context, zone models.Zone) (int, error) {
	op := remote.OpCreateZone
	if err := f.enter(ctx, op); err != nil {
		return 0, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if strings.TrimSpace(zone.Name) == "" {
		return 0, remote.NewFault(op, "zone name is required")
	}
	zone.ID = f.allocate()
	zone.CreatedAt = f.now()
	f.zones[zone.ID] = zone
	return zone.ID, nil
}

// UpdateZone replaces an existing zone. It returns false when the id is unknown.
func (f *FakeRemote) UpdateZone(ctx context.Context, zone models.Zone) (bool, error) {
	if err := f.enter(ctx, remote.OpUpdateZone); err != nil {
		return false, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	existing, ok := f.zones[zone.ID]
	if !ok {
		return false, nil
	}
	zone.CreatedAt = existing.CreatedAt
	zone.ModifiedAt = f.now()
	f.zones[zone.ID] = zone
	return true, nil
}

// DeleteZone marks a zone inactive. It returns false when the id is unknown.
func (f *FakeRemote) DeleteZone(ctx context.Context, id int) (bool, error) {
	if err := f.enter(ctx, remote.OpDeleteZone); err != nil {
		return false, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	z, ok := f.zones[id]
	if !ok {
		return false, nil
	}
	z.Active = false
	z.ModifiedAt = f.now()
	f.zones[id] = z
	return true, nil
}

// GetAllConservationStates returns every state ordered by id
func (f *FakeRemote) GetAllConservationStates(ctx context.Context) ([]models.ConservationState, error) {
	if err := f.enter(ctx, remote.OpGetAllConservationStates); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return sortedValues(f.states), nil
}

// GetConservationStateByID returns one state or an error wrapping remote.ErrNotFound
func (f *FakeRemote) GetConservationStateByID(ctx context.Context, id int) (*models.ConservationState, error) {
	if err := f.enter(ctx, remote.OpGetConservationStateByID); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	s, ok := f.states[id]
	if !ok {
		return nil, fmt.Errorf("conservation state %d: %w", id, remote.ErrNotFound)
	}
	return &s, nil
}

// CreateConservationState stores a new state and returns its id
func (f *FakeRemote) CreateConservationState(ctx context.Context, state models.ConservationState) (int, error) {
	op := remote.OpCreateConservationState
	if err := f.enter(ctx, op); err != nil {
		return 0, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if strings.TrimSpace(state.Name) == "" {
		return 0, remote.NewFault(op, "state name is required")
	}
	state.ID = f.allocate()
	f.states[state.ID] = state
	return state.ID, nil
}

// UpdateConservationState replaces an existing state. It returns false when the id is unknown.
func (f *FakeRemote) UpdateConservationState(ctx context.Context, state models.ConservationState) (bool, error) {
	if err := f.enter(ctx, remote.OpUpdateConservationState); err != nil {
		return false, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.states[state.ID]; !ok {
		return false, nil
	}
	f.states[state.ID] = state
	return true, nil
}

// DeleteConservationState removes a state. It returns false when the id is unknown.
func (f *FakeRemote) DeleteConservationState(ctx context.Context, id int) (bool, error) {
	if err := f.enter(ctx, remote.OpDeleteConservationState); err != nil {
		return false, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.states[id]; !ok {
		return false, nil
	}
	delete(f.states, id)
	return true, nil
}

// Ping succeeds unless the kind's list operation has an injected failure
func (f *FakeRemote) Ping(ctx context.Context, kind models.Kind) error {
	op := remote.ListOp(kind)
	f.mu.Lock()
	err := f.failures[op]
	f.mu.Unlock()
	if err != nil {
		return err
	}
	return ctx.Err()
}
