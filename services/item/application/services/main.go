package services

import (
	"github.com/ghuser/itemtracker/pkg/app"
	"github.com/ghuser/itemtracker/services/item/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Item *ItemService
}

// New wires all item application services with infrastructure from the Application container.
func New(a *app.Application) *Services {
	repo := postgres.NewItemRepository(a.Db, a.Logger)
	return &Services{
		Item: NewItemService(repo, a.Logger, a.Config.DefaultPageLimit, a.Config.MaxPageLimit),
	}
}
