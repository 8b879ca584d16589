//go:build gui

package gui

import (
	"context"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/go-gl/glfw/v3.3/glfw"

	"chatty/render"
)

// App is the floating indicator window. It never takes focus, so typing
// lands in whatever window the user was in.
type App struct {
	fyneApp   fyne.App
	window    fyne.Window
	indicator *Indicator
	onReady   func()
	posX      int
	posY      int

	quitReq  chan struct{}
	quitOnce sync.Once
}

func NewApp(onReady func()) *App {
	return &App{onReady: onReady, quitReq: make(chan struct{})}
}

// QuitRequested is closed when the user picks Quit from the tray. The
// window stays up until Quit is called, so the session can shut down first.
func (a *App) QuitRequested() <-chan struct{} { return a.quitReq }

func Run(a *App) error {
	a.fyneApp = app.NewWithID("io.chatty.gui")
	a.fyneApp.Settings().SetTheme(&darkTheme{})

	if desk, ok := a.fyneApp.(desktop.App); ok {
		icon := fyne.NewStaticResource("tray.png", trayIcon())
		menu := fyne.NewMenu("chatty",
			fyne.NewMenuItem("Quit", func() {
				a.quitOnce.Do(func() { close(a.quitReq) })
			}),
		)
		desk.SetSystemTrayMenu(menu)
		desk.SetSystemTrayIcon(icon)
	}

	var screenW int
	if monitor := glfw.GetPrimaryMonitor(); monitor != nil {
		_, _, screenW, _ = monitor.GetWorkarea()
	} else {
		screenW = 1920
	}

	if drv, ok := a.fyneApp.Driver().(desktop.Driver); ok {
		a.window = drv.CreateSplashWindow()
	} else {
		a.window = a.fyneApp.NewWindow("chatty")
	}

	a.indicator = NewIndicator()
	a.window.SetContent(a.indicator)
	a.window.SetFixedSize(true)
	a.window.SetPadded(false)

	size := a.indicator.MinSize()
	a.window.Resize(size)

	// top-center
	a.posX = (screenW - int(size.Width)) / 2
	a.posY = 40

	go a.onReady()

	a.fyneApp.Run()
	return nil
}

func (a *App) Quit() {
	if a.fyneApp != nil {
		a.fyneApp.Quit()
	}
}

func (a *App) show() {
	fyne.Do(func() {
		if a.window == nil {
			return
		}
		if glfwWin := glfw.GetCurrentContext(); glfwWin != nil {
			glfwWin.SetPos(a.posX, a.posY)
			glfwWin.SetAttrib(glfw.FocusOnShow, glfw.False)
			glfwWin.SetAttrib(glfw.Floating, glfw.True)
			glfwWin.Show()
			return
		}
		a.window.Show()
	})
}

// Attach shows the window and paints frames until ctx ends.
func (a *App) Attach(ctx context.Context, frames <-chan render.Frame) {
	a.show()
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case f := <-frames:
				a.indicator.SetFrame(f)
				fyne.Do(a.indicator.Refresh)
			}
		}
	}()
}
