package services

import (
	"github.com/ghuser/libitemsflow/pkg/app"
	"github.com/ghuser/libitemsflow/pkg/cache"
	"github.com/ghuser/libitemsflow/pkg/clock"
	"github.com/ghuser/libitemsflow/services/lending/domain/repositories"
	"github.com/ghuser/libitemsflow/services/lending/infrastructure/persistence/memory"
	"github.com/ghuser/libitemsflow/services/lending/infrastructure/persistence/postgres"
)

// Services is the application-layer service container for this bounded context.
// It wires domain services with their infrastructure implementations.
type Services struct {
	Items   *ItemRegistry
	Loans   *LoanLedger
	Queries *QueryService
}

// Stores groups the persistence ports one backend provides.
type Stores struct {
	Items  repositories.ItemRepository
	Loans  repositories.LoanRepository
	Ledger repositories.Ledger
}

// New wires all lending services with infrastructure from the Application
// container: postgres when a database is configured, memory otherwise.
func New(a *app.Application) *Services {
	var stores Stores
	if a.Db != nil {
		stores = Stores{
			Items:  postgres.NewItemRepository(a.Db, a.EventBus),
			Loans:  postgres.NewLoanRepository(a.Db),
			Ledger: postgres.NewLedger(a.Db, a.EventBus),
		}
	} else {
		store := memory.NewStore()
		stores = Stores{
			Items:  memory.NewItemRepository(store),
			Loans:  memory.NewLoanRepository(store),
			Ledger: memory.NewLedger(store),
		}
	}

	var itemCache *cache.ItemCache
	if a.Redis != nil {
		itemCache = cache.NewItemCache(a.Redis)
	}
	return NewWithStores(a, stores, itemCache)
}

// NewWithStores wires the services over explicit stores.
func NewWithStores(a *app.Application, stores Stores, itemCache *cache.ItemCache) *Services {
	clk := a.Clock
	if clk == nil {
		clk = clock.System{}
	}
	items := NewItemRegistry(stores.Items, itemCache, clk, a.Logger)
	return &Services{
		Items:   items,
		Loans:   NewLoanLedger(stores.Ledger, stores.Loans, items, clk, a.Location, a.Logger),
		Queries: NewQueryService(items, stores.Loans, clk, a.Location),
	}
}
