package pbstream

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/svalproto/pbstream/buf"
	"github.com/svalproto/pbstream/stval"
)

// EncodeAll encodes every value concurrently, each on its own Encoder,
// and returns the results in the same order as the input. Independent
// top-level encodes share no state, so this is a plain fan-out: the
// first failing value cancels ctx and the call returns its error.
func EncodeAll(ctx context.Context, values []stval.Value, opts ...EncodeOption) ([]*buf.Message, error) {
	out := make([]*buf.Message, len(values))
	g, ctx := errgroup.WithContext(ctx)
	for i, v := range values {
		i, v := i, v
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			msg, err := Encode(v, opts...)
			if err != nil {
				return err
			}
			out[i] = msg
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}
