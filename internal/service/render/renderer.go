package render

import (
	"github.com/sandevgo/sejarahbot/internal/core"
)

// Renderer turns match results into answers in one output format.
type Renderer struct {
	formatter Formatter
}

func NewRenderer(formatter Formatter) *Renderer {
	return &Renderer{formatter: formatter}
}

// Render returns NotFoundMessage unchanged for every format. Any other
// failure is a *core.RenderingError.
func (r *Renderer) Render(res core.MatchResult) (string, error) {
	if res.Kind == core.MatchNotFound {
		return NotFoundMessage, nil
	}

	doc, err := Build(res)
	if err != nil {
		return "", err
	}

	out, err := r.formatter.Format(doc)
	if err != nil {
		return "", &core.RenderingError{Reason: err.Error()}
	}
	return out, nil
}

func (r *Renderer) Format() string {
	return r.formatter.Name()
}
