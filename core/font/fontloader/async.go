package fontloader

import (
	"context"

	"github.com/npillmayer/mathfont/core/font"
	"github.com/npillmayer/mathfont/core/locate/resources"
)

// FontPromise is returned by LoadAsync. Clients call TypeCase or Await
// to receive the loaded font, blocking until loading has completed.
type FontPromise interface {
	TypeCase() (*font.TypeCase, error)
	Await(ctx context.Context) (*font.TypeCase, error)
}

type fontPlusErr struct {
	font *font.TypeCase
	err  error
}

type fontLoader struct {
	await func(ctx context.Context) (*font.TypeCase, error)
}

func (loader fontLoader) TypeCase() (*font.TypeCase, error) {
	return loader.await(context.Background())
}

func (loader fontLoader) Await(ctx context.Context) (*font.TypeCase, error) {
	return loader.await(ctx)
}

// LoadAsync loads a font in the background. If the context passed to
// Await is done before loading completes, Await returns the context's
// error; loading will still run to completion and close its stream.
func (l *Loader) LoadAsync(ref resources.FontReference) FontPromise {
	done := make(chan struct{})
	result := fontPlusErr{}
	go func() {
		result.font, result.err = l.Load(ref)
		close(done)
	}()
	return fontLoader{
		await: func(ctx context.Context) (*font.TypeCase, error) {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			case <-done:
				return result.font, result.err
			}
		},
	}
}
