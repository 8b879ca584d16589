package dictation

import (
	"context"
	"fmt"
	"time"
)

// Output is the clipboard/typing boundary. Type may fail while Copy
// succeeded; that is a valid, degraded outcome.
type Output interface {
	Copy(text string) error
	Type(ctx context.Context, text string) error
}

type outputReport struct {
	typed   bool
	copyErr error
	typeErr error
}

func (r outputReport) status() Status {
	switch {
	case r.copyErr != nil:
		return statusCopyFailed
	case r.typeErr != nil:
		return statusClipOnly
	case !r.typed:
		return Status{"Copied to clipboard", "#00ff88"}
	default:
		return statusPasted
	}
}

// dispatcher is the OutputDispatcher. Its fields other than display and
// cancel are fixed at construction, so the side-effect goroutine reads
// them without locking. display and cancel belong to the controller
// goroutine.
type dispatcher struct {
	out      Output
	timings  Timings
	autoType bool

	display Display
	cancel  context.CancelFunc
}

func (d *dispatcher) show(text string) {
	d.display = Display{Text: text, Visible: true}
}

// deliver starts the copy-and-type side effect for the visible text.
// report is called exactly once, from the side-effect goroutine.
func (d *dispatcher) deliver(ctx context.Context, report func(outputReport)) bool {
	if !d.display.Visible || d.out == nil {
		return false
	}
	ctx, cancel := context.WithCancel(ctx)
	d.cancel = cancel
	text := d.display.Text
	go func() {
		defer cancel()
		report(d.run(ctx, text))
	}()
	return true
}

func (d *dispatcher) run(ctx context.Context, text string) outputReport {
	if err := d.out.Copy(text); err != nil {
		return outputReport{copyErr: fmt.Errorf("%w: %w", ErrClipboard, err)}
	}
	if !d.autoType {
		return outputReport{}
	}
	if d.timings.FocusDelay > 0 {
		select {
		case <-ctx.Done():
			return outputReport{typeErr: fmt.Errorf("%w: %w", ErrTyping, ctx.Err())}
		case <-time.After(d.timings.FocusDelay):
		}
	}
	if err := d.out.Type(ctx, text); err != nil {
		return outputReport{typeErr: fmt.Errorf("%w: %w", ErrTyping, err)}
	}
	return outputReport{typed: true}
}

// clear hides the text and aborts an in-flight side effect.
func (d *dispatcher) clear() {
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.display = Display{}
}
