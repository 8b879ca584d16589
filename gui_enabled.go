//go:build gui

package main

import (
	"context"
	"runtime"

	"chatty/gui"
	"chatty/render"
)

var guiApp *gui.App

func initGUI() {
	// Lock this goroutine to OS thread for Fyne/GLFW
	runtime.LockOSThread()

	guiApp = gui.NewApp(func() {
		runThenClose(run, guiApp.Quit)
	})
	if err := gui.Run(guiApp); err != nil {
		panic(err)
	}
}

// attachGUI hands frames to the floating window when it is running and
// returns the window's quit request.
func attachGUI(ctx context.Context, frames <-chan render.Frame) (<-chan struct{}, bool) {
	if guiApp == nil {
		return nil, false
	}
	guiApp.Attach(ctx, frames)
	return guiApp.QuitRequested(), true
}
