//go:build linux && nativeclipboard

package clipboard

import "context"

// Type pastes via Ctrl+V; the caller has already put text on the clipboard.
func Type(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return Paste()
}
