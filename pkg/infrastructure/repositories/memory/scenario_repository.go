package memory

import (
	"fmt"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/planwise/allocator/pkg/domain/entities"
	"github.com/planwise/allocator/pkg/domain/repositories"
)

// ScenarioRepository provides in-memory scenario storage.
type ScenarioRepository struct {
	mutex     sync.RWMutex
	scenarios map[uuid.UUID]entities.Scenario
	byName    map[string]uuid.UUID
}

// NewScenarioRepository creates a new in-memory scenario repository.
func NewScenarioRepository() *ScenarioRepository {
	return &ScenarioRepository{
		scenarios: make(map[uuid.UUID]entities.Scenario),
		byName:    make(map[string]uuid.UUID),
	}
}

// Verify interface compliance
var _ repositories.ScenarioRepository = (*ScenarioRepository)(nil)

// Save stores a scenario and returns its assigned ID. Saving a scenario
// whose name already exists replaces the previous version.
func (r *ScenarioRepository) Save(scenario *entities.Scenario) (uuid.UUID, error) {
	if scenario == nil {
		return uuid.Nil, fmt.Errorf("scenario must not be nil")
	}
	if scenario.Name == "" {
		return uuid.Nil, fmt.Errorf("scenario name must not be empty")
	}

	r.mutex.Lock()
	defer r.mutex.Unlock()

	id, exists := r.byName[scenario.Name]
	if !exists {
		id = uuid.New()
		r.byName[scenario.Name] = id
	}
	r.scenarios[id] = *scenario
	return id, nil
}

// Get returns the scenario with the given ID.
func (r *ScenarioRepository) Get(id uuid.UUID) (*entities.Scenario, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	scenario, exists := r.scenarios[id]
	if !exists {
		return nil, fmt.Errorf("scenario not found: %s", id)
	}
	return &scenario, nil
}

// GetByName returns the scenario with the given name.
func (r *ScenarioRepository) GetByName(name string) (*entities.Scenario, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	id, exists := r.byName[name]
	if !exists {
		return nil, fmt.Errorf("scenario not found: %s", name)
	}
	scenario := r.scenarios[id]
	return &scenario, nil
}

// List returns all stored scenarios sorted by name.
func (r *ScenarioRepository) List() ([]*entities.Scenario, error) {
	r.mutex.RLock()
	defer r.mutex.RUnlock()

	out := make([]*entities.Scenario, 0, len(r.scenarios))
	for _, scenario := range r.scenarios {
		s := scenario
		out = append(out, &s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Delete removes the scenario with the given ID.
func (r *ScenarioRepository) Delete(id uuid.UUID) error {
	r.mutex.Lock()
	defer r.mutex.Unlock()

	scenario, exists := r.scenarios[id]
	if !exists {
		return fmt.Errorf("scenario not found: %s", id)
	}
	delete(r.byName, scenario.Name)
	delete(r.scenarios, id)
	return nil
}
