package clipboard

import (
	"context"

	cb "github.com/atotto/clipboard"
)

func Read() (string, error) {
	return cb.ReadAll()
}

func Copy(text string) error {
	return cb.WriteAll(text)
}

// System is the desktop clipboard plus simulated typing.
type System struct{}

func (System) Copy(text string) error { return Copy(text) }

func (System) Type(ctx context.Context, text string) error { return Type(ctx, text) }
