package core

import "time"

const (
	AppName    = "SejarahBot"
	AppVersion = "0.1.0"
	RepoURL    = "https://github.com/sandevgo/sejarahbot"
)

// Event is a historical occurrence. Title is unique across the catalog.
type Event struct {
	Title            string    `json:"title" yaml:"title" validate:"required"`
	Description      string    `json:"description" yaml:"description" validate:"required"`
	Period           string    `json:"period,omitempty" yaml:"period"`
	Keywords         string    `json:"keywords,omitempty" yaml:"keywords"`
	Region           string    `json:"region,omitempty" yaml:"region"`
	ImportantFigures []string  `json:"important_figures,omitempty" yaml:"important_figures"`
	LongTermImpact   string    `json:"long_term_impact,omitempty" yaml:"long_term_impact"`
	Cause            string    `json:"cause,omitempty" yaml:"cause"`
	Effect           string    `json:"effect,omitempty" yaml:"effect"`
	References       []string  `json:"references,omitempty" yaml:"references"`
	Category         string    `json:"category,omitempty" yaml:"category"`
	Image            string    `json:"image,omitempty" yaml:"image"`
	CreatedAt        time.Time `json:"created_at" yaml:"-"`
}

// Figure is a historical person. Name is unique across the catalog.
type Figure struct {
	Name                string    `json:"name" yaml:"name" validate:"required"`
	Description         string    `json:"description" yaml:"description" validate:"required"`
	LifePeriod          string    `json:"life_period,omitempty" yaml:"life_period"`
	OriginCountry       string    `json:"origin_country,omitempty" yaml:"origin_country"`
	ExpertiseField      string    `json:"expertise_field,omitempty" yaml:"expertise_field"`
	PrimaryContribution string    `json:"primary_contribution,omitempty" yaml:"primary_contribution"`
	NotableAchievements []string  `json:"notable_achievements,omitempty" yaml:"notable_achievements"`
	HistoricalInfluence string    `json:"historical_influence,omitempty" yaml:"historical_influence"`
	Legacy              string    `json:"legacy,omitempty" yaml:"legacy"`
	References          []string  `json:"references,omitempty" yaml:"references"`
	Category            string    `json:"category,omitempty" yaml:"category"`
	Keywords            string    `json:"keywords,omitempty" yaml:"keywords"`
	Image               string    `json:"image,omitempty" yaml:"image"`
	CreatedAt           time.Time `json:"created_at" yaml:"-"`
}

// Exchange is one logged conversational turn. UserID and Email are a weak
// reference to the requester and stay empty on unauthenticated paths.
type Exchange struct {
	ID        string    `json:"id"`
	Query     string    `json:"query"`
	Answer    string    `json:"answer"`
	UserID    string    `json:"user_id,omitempty"`
	Email     string    `json:"email,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Identity is the requester resolved from a session token.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Account is a registered user as kept by the account directory.
type Account struct {
	ID               string
	Name             string
	Email            string
	PasswordHash     string
	Role             string
	Verified         bool
	VerificationCode string
	CodeExpiresAt    time.Time
	CreatedAt        time.Time
}

func (a Account) Identity() Identity {
	return Identity{ID: a.ID, Email: a.Email, Name: a.Name}
}

type MatchKind int

const (
	MatchNotFound MatchKind = iota
	MatchEvent
	MatchFigure
)

func (k MatchKind) String() string {
	switch k {
	case MatchEvent:
		return "event"
	case MatchFigure:
		return "figure"
	default:
		return "not_found"
	}
}

// MatchResult is the outcome of a single lookup. Exactly one of Event or
// Figure is set, according to Kind.
type MatchResult struct {
	Kind   MatchKind
	Event  *Event
	Figure *Figure
}

func EventMatch(e *Event) MatchResult {
	return MatchResult{Kind: MatchEvent, Event: e}
}

func FigureMatch(f *Figure) MatchResult {
	return MatchResult{Kind: MatchFigure, Figure: f}
}

func NotFound() MatchResult {
	return MatchResult{Kind: MatchNotFound}
}
