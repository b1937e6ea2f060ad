package repositories

import (
	"github.com/google/uuid"

	"github.com/planwise/allocator/pkg/domain/entities"
)

// ScenarioRepository provides access to saved planning scenarios.
type ScenarioRepository interface {
	Save(scenario *entities.Scenario) (uuid.UUID, error)
	Get(id uuid.UUID) (*entities.Scenario, error)
	GetByName(name string) (*entities.Scenario, error)
	List() ([]*entities.Scenario, error)
	Delete(id uuid.UUID) error
}
