package core

import "context"

// Collection describes a searchable record family: its table, the field
// that identifies a record and decides tie-breaks, and the fields a query
// is matched against.
type Collection struct {
	Name          string
	IdentityField string
	SearchFields  []string
}

var (
	Events = Collection{
		Name:          "events",
		IdentityField: "title",
		SearchFields:  []string{"title", "description", "keywords"},
	}
	Figures = Collection{
		Name:          "figures",
		IdentityField: "name",
		SearchFields:  []string{"name", "description", "expertise_field", "category", "keywords"},
	}
)

// FactRepository finds the first record, in identity order, whose search
// fields contain text case-insensitively. A nil record with a nil error
// means nothing matched.
type FactRepository interface {
	FindEventBySubstring(ctx context.Context, text string) (*Event, error)
	FindFigureBySubstring(ctx context.Context, text string) (*Figure, error)
}

type CatalogRepository interface {
	AddEvent(ctx context.Context, event Event) error
	AddFigure(ctx context.Context, figure Figure) error
	ListEvents(ctx context.Context) ([]Event, error)
	ListFigures(ctx context.Context) ([]Figure, error)
}

type ExchangeRepository interface {
	AppendExchange(ctx context.Context, exchange Exchange) error
}

type AccountRepository interface {
	CreateAccount(ctx context.Context, account Account) error
	GetAccountByEmail(ctx context.Context, email string) (*Account, error)
	UpdateAccount(ctx context.Context, account Account) error
}

// Store bundles every repository a backend provides.
type Store interface {
	FactRepository
	CatalogRepository
	ExchangeRepository
	AccountRepository
}
