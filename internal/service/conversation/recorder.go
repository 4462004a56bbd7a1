package conversation

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sandevgo/sejarahbot/internal/core"
)

// Recorder appends one Exchange per processed query.
type Recorder struct {
	repo core.ExchangeRepository
	now  func() time.Time
}

func NewRecorder(repo core.ExchangeRepository) *Recorder {
	return &Recorder{
		repo: repo,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

// Record stores the exchange. A nil identity leaves the requester fields
// empty.
func (r *Recorder) Record(ctx context.Context, query, answer string, identity *core.Identity) (core.Exchange, error) {
	x := core.Exchange{
		ID:        uuid.NewString(),
		Query:     query,
		Answer:    answer,
		CreatedAt: r.now(),
	}
	if identity != nil {
		x.UserID = identity.ID
		x.Email = identity.Email
	}

	if err := r.repo.AppendExchange(ctx, x); err != nil {
		return core.Exchange{}, fmt.Errorf("failed to record exchange: %w", err)
	}
	return x, nil
}
