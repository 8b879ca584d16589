package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime/debug"
	"time"

	"chatty/audio"
	"chatty/beep"
	"chatty/clipboard"
	"chatty/config"
	"chatty/dictation"
	"chatty/doctor"
	"chatty/hotkey"
	"chatty/log"
	"chatty/shutdown"
	"chatty/transcriber"
)

var version = "dev"

func run() {
	configFlag := flag.String("config", "", "Config file (default: $XDG_CONFIG_HOME/chatty/config.yaml)")
	modelFlag := flag.String("model", "", "Path to a whisper.cpp ggml model")
	langFlag := flag.String("lang", "", "Language code for transcription (default en, \"auto\" to detect)")
	deviceFlag := flag.String("device", "", "Use named microphone device")
	setupFlag := flag.Bool("setup", false, "Select microphone device (otherwise uses system default)")
	visualFlag := flag.String("visual", "", "Indicator style: dots or wave")
	debugFlag := flag.Bool("debug", false, "Verbose diagnostics log")
	logPathFlag := flag.String("logpath", "", "log directory path (default: OS-specific location, use ./ for current dir)")
	tuiFlag := flag.Bool("tui", true, "Run with terminal UI")
	flag.Bool("gui", false, "Run with a floating window (requires -tags gui)")
	doctorFlag := flag.Bool("doctor", false, "Run system diagnostics and exit")
	testFlag := flag.Bool("test", false, "Test mode (headless, stdin-driven)")
	versionFlag := flag.Bool("version", false, "Print version and exit")
	autoTypeFlag := flag.Bool("autotype", true, "Type the transcript into the focused window after copying")
	beepFlag := flag.Bool("beep", true, "Play start/stop/error sounds")
	flag.Parse()

	if *versionFlag {
		fmt.Printf("chatty %s\n", version)
		os.Exit(0)
	}

	cfgPath := *configFlag
	if cfgPath == "" {
		if p, err := config.DefaultPath(); err == nil {
			cfgPath = p
		}
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "model":
			cfg.Model = *modelFlag
		case "lang":
			cfg.Language = *langFlag
		case "device":
			cfg.Device = *deviceFlag
		case "visual":
			cfg.Visual = *visualFlag
		case "debug":
			cfg.Debug = *debugFlag
		case "autotype":
			cfg.AutoType = *autoTypeFlag
		case "beep":
			cfg.Beep = *beepFlag
		}
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	// Resolve log directory early
	logPath, err := log.ResolveDir(*logPathFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: failed to resolve log directory: %v\n", err)
		os.Exit(1)
	}
	log.SetDir(logPath)
	if err := log.EnsureDir(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not create log directory: %v\n", err)
	}
	initCrashLog()

	var mirror io.Writer
	if cfg.Debug && !*tuiFlag {
		mirror = os.Stderr
	}
	if err := log.Init(cfg.Debug, mirror); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not init logging: %v\n", err)
	}
	defer log.Close()

	if *doctorFlag {
		wav := ""
		if len(flag.Args()) > 0 {
			wav = flag.Args()[0]
		}
		os.Exit(doctor.Run(doctor.Options{
			Model:    cfg.Model,
			Language: cfg.Language,
			Device:   cfg.Device,
			WAV:      wav,
		}))
	}

	if *testFlag {
		args := flag.Args()
		if len(args) == 0 {
			fmt.Fprintln(os.Stderr, "Usage: chatty -test <wav-file>")
			os.Exit(1)
		}
		var engine transcriber.Engine
		if cfg.Model != "" {
			if engine, err = transcriber.New(cfg.Model, cfg.Language); err != nil {
				fmt.Fprintf(os.Stderr, "Error: %v\n", err)
				os.Exit(1)
			}
		}
		code := runTestMode(args[0], cfg, engine)
		log.Close()
		os.Exit(code)
	}

	if *setupFlag && !flagSet("device") {
		if name, err := setupDevice(); err != nil {
			fmt.Printf("Warning: device selection failed: %v\n", err)
			fmt.Println("Falling back to default device")
		} else {
			cfg.Device = name
		}
	}

	if cfg.Beep {
		go beep.Init()
	} else {
		beep.Disable()
	}

	if err := runApp(cfg, *tuiFlag); err != nil {
		log.Errorf("fatal: %v", err)
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		log.Close()
		os.Exit(1)
	}
}

func flagSet(name string) bool {
	set := false
	flag.Visit(func(f *flag.Flag) {
		if f.Name == name {
			set = true
		}
	})
	return set
}

func setupDevice() (string, error) {
	ctx, err := audio.NewContext()
	if err != nil {
		return "", err
	}
	defer ctx.Close()
	dev, err := audio.SelectDevice(ctx)
	if err != nil || dev == nil {
		return "", err
	}
	return dev.Name, nil
}

// runApp wires the live session: engine, microphone, hotkeys and the
// chosen surface. Startup failures of the engine or the microphone leave
// the app running in a degraded state.
func runApp(cfg config.Config, tui bool) error {
	engine, engineErr := transcriber.New(cfg.Model, cfg.Language)
	if engineErr != nil {
		log.Errorf("speech engine: %v", engineErr)
		engine = dictation.EngineUnavailable(engineErr)
	}
	if c, ok := engine.(io.Closer); ok {
		defer c.Close()
	}

	if cfg.AutoType {
		if err := clipboard.Init(); err != nil {
			log.Warnf("typing init failed, clipboard only: %v", err)
		}
	}

	s := newSession(cfg, engine, clipboard.System{})
	if engineErr != nil {
		s.ctrl.EngineFailed()
	}

	deviceName := "none"
	audioCtx, capture, err := openCapture(cfg.Device)
	if err != nil {
		log.Errorf("audio: %v", err)
		s.ctrl.DeviceFailed()
	} else {
		defer audioCtx.Close()
		defer capture.Close()
		deviceName = capture.DeviceName()
		if err := s.ctrl.Source().Start(capture); err != nil {
			log.Errorf("audio: %v", err)
			s.ctrl.DeviceFailed()
		}
	}

	var listener hotkey.Listener = hotkey.New()
	if err := listener.Register(); err != nil {
		log.Errorf("hotkey register error: %v", err)
		if !tui {
			fmt.Fprintf(os.Stderr, "Error registering hotkey: %v\n", err)
		}
		listener = nil
	} else {
		defer listener.Unregister()
	}

	log.SessionStart(engine.Name(), deviceName, cfg.Visual)
	defer func() { log.SessionEnd(s.obs.transcriptions()) }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	shutdown.Notify(sigChan)
	go func() {
		select {
		case <-sigChan:
			cancel()
		case <-ctx.Done():
		}
	}()

	errc := make(chan error, 1)
	go func() { errc <- s.run(ctx, listener) }()

	quit, windowed := attachGUI(ctx, s.mail.Frames())
	switch {
	case windowed:
		waitQuit(ctx, cancel, quit)
	case tui:
		p := NewTUIProgram(s.mail.Frames(), InfoMsg{Engine: engine.Name(), Device: deviceName})
		go func() {
			<-ctx.Done()
			p.Quit()
		}()
		if _, err := p.Run(); err != nil {
			log.Errorf("TUI error: %v", err)
		}
		cancel()
	default:
		<-ctx.Done()
	}

	select {
	case err := <-errc:
		return err
	case <-time.After(2 * time.Second):
		log.Warn("session did not stop in time")
		return nil
	}
}

func openCapture(name string) (audio.Context, audio.CaptureDevice, error) {
	ctx, err := audio.NewContext()
	if err != nil {
		return nil, nil, err
	}
	var dev *audio.DeviceInfo
	if name != "" {
		if dev, err = audio.FindDevice(ctx, name); err != nil {
			log.Warnf("%v, using system default", err)
		}
	}
	capture, err := ctx.NewCapture(dev, audio.DefaultCapture())
	if err != nil {
		ctx.Close()
		return nil, nil, err
	}
	return ctx, capture, nil
}

// initCrashLog sends runtime crash output to crash_log.txt in the log dir.
func initCrashLog() {
	crashPath := filepath.Join(log.Dir(), "crash_log.txt")
	crashFile, err := os.OpenFile(crashPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return
	}
	fmt.Fprintf(crashFile, "\n=== Session %s [pid=%d] ===\n", time.Now().Format("2006-01-02 15:04:05"), os.Getpid())
	debug.SetCrashOutput(crashFile, debug.CrashOptions{})
}
