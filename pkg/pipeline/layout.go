package pipeline

import (
	"context"
	"time"

	"github.com/matzehuels/galdraw/pkg/layout"
	"github.com/matzehuels/galdraw/pkg/lfsr"
	"github.com/matzehuels/galdraw/pkg/observability"
)

// ComputeLayout builds the primitive stream for a register and reports the
// run to the pipeline hooks.
func ComputeLayout(ctx context.Context, r lfsr.Register, opts layout.Options) (layout.Stream, error) {
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, r.Len())
	start := time.Now()

	s, err := layout.BuildRegister(r, opts)
	hooks.OnLayoutComplete(ctx, r.Len(), len(s.Primitives), time.Since(start), err)
	return s, err
}
