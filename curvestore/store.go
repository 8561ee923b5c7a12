// Package curvestore persists computed compression curves.
//
// Curves are small immutable JSON artifacts keyed by name; a store is the
// hand-off point between the computation pipeline and offline plotting or
// archival. Implementations: MemoryStore (testing), LocalStore (directory of
// JSON files) and the s3 subpackage (cloud archival).
package curvestore

import (
	"context"
	"errors"

	"github.com/hupe1980/zcurve"
)

// ErrNotFound is returned when a named curve does not exist.
//
// Implementations return an error satisfying errors.Is(err, ErrNotFound).
var ErrNotFound = errors.New("curvestore: curve not found")

// Store persists named compression curves.
//
// Plain curves (no surrogate baseline) are stored as a SurrogateCurve with
// nil SurrogateRatios.
type Store interface {
	// Put writes a curve under the given name, replacing any previous one.
	Put(ctx context.Context, name string, c *zcurve.SurrogateCurve) error

	// Get reads the curve stored under the given name.
	Get(ctx context.Context, name string) (*zcurve.SurrogateCurve, error)
}
