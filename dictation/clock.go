package dictation

import "time"

// Clock schedules the controller's timed auto-actions.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type Timer interface {
	Stop() bool
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer {
	return time.AfterFunc(d, f)
}

// Timings are the delays of the output sequence and the status hold.
type Timings struct {
	CopyDelay  time.Duration // text shown → clipboard + typing
	FocusDelay time.Duration // clipboard write → typing
	ClearDelay time.Duration // typing done → clear
	StatusHold time.Duration // no speech / error message → idle
}

func DefaultTimings() Timings {
	return Timings{
		CopyDelay:  1500 * time.Millisecond,
		FocusDelay: 300 * time.Millisecond,
		ClearDelay: time.Second,
		StatusHold: 2 * time.Second,
	}
}
