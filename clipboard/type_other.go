//go:build !linux

package clipboard

import "context"

// Type pastes into the focused window; the caller has already put text
// on the clipboard.
func Type(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return Paste()
}
