package driven

import (
	"github.com/custodia-labs/margin-cli/internal/core/domain"
)

// ViewportMeasurer reports the viewport-space origin of a page's
// container. The rendering collaborator re-measures whenever the
// displayed page or scale changes and the core reads the latest value
// when normalising geometry.
//
// Implementations live outside the core so the coordinate math stays
// unit-testable without a real rendering surface.
type ViewportMeasurer interface {
	// Origin returns the container origin for a page, or false if the
	// page has not been measured yet.
	Origin(page int) (domain.Point, bool)
}
