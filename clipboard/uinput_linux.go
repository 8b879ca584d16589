//go:build linux

package clipboard

import (
	"encoding/binary"
	"errors"
	"fmt"
	"os"
	"sync"
	"time"

	"golang.org/x/sys/unix"
)

// deviceName is the name the virtual keyboard registers under.
const deviceName = "chatty-type"

// linux/uinput.h
const (
	uiSetEvbit  = 0x40045564
	uiSetKeybit = 0x40045565
	uiDevCreate = 0x5501
)

// linux/input-event-codes.h
const (
	evSyn        = 0x00
	evKey        = 0x01
	busUSB       = 0x03
	keyLeftCtrl  = 29
	keyLeftShift = 42
	keyV         = 47
)

type inputEvent struct {
	Time  unix.Timeval
	Type  uint16
	Code  uint16
	Value int32
}

type uinputSetup struct {
	Name    [80]byte
	Bustype uint16
	Vendor  uint16
	Product uint16
	Version uint16
	FFMax   uint32
	Abs     [4][64]int32 // max, min, fuzz, flat
}

var keyboard struct {
	once sync.Once
	f    *os.File
	err  error
}

// Init creates the virtual keyboard once. Later calls return the first
// result.
func Init() error {
	keyboard.once.Do(func() {
		keyboard.f, keyboard.err = openKeyboard()
	})
	return keyboard.err
}

func openKeyboard() (*os.File, error) {
	var path string
	for _, p := range []string{"/dev/uinput", "/dev/input/uinput"} {
		if _, err := os.Stat(p); err == nil {
			path = p
			break
		}
	}
	if path == "" {
		return nil, errors.New("uinput device not found, try: sudo modprobe uinput")
	}
	f, err := os.OpenFile(path, os.O_WRONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return nil, err
	}
	if err := createKeyboard(f); err != nil {
		f.Close()
		return nil, fmt.Errorf("uinput setup: %w", err)
	}
	// The compositor needs a moment to pick up a new input device.
	time.Sleep(200 * time.Millisecond)
	return f, nil
}

func createKeyboard(f *os.File) error {
	fd := int(f.Fd())
	for _, ev := range []int{evKey, evSyn} {
		if err := unix.IoctlSetInt(fd, uiSetEvbit, ev); err != nil {
			return err
		}
	}
	// Every standard key, so udev classifies the device as a keyboard.
	for code := 0; code < 256; code++ {
		if err := unix.IoctlSetInt(fd, uiSetKeybit, code); err != nil {
			return err
		}
	}
	desc := uinputSetup{Bustype: busUSB, Vendor: 0x1234, Product: 0x5678, Version: 1}
	copy(desc.Name[:], deviceName)
	if err := binary.Write(f, binary.LittleEndian, &desc); err != nil {
		return err
	}
	return unix.IoctlSetInt(fd, uiDevCreate, 0)
}

// emit writes one key transition followed by its sync report.
func emit(code uint16, value int32) error {
	evs := [2]inputEvent{
		{Type: evKey, Code: code, Value: value},
		{Type: evSyn},
	}
	return binary.Write(keyboard.f, binary.LittleEndian, &evs)
}

// press holds keys down in order and releases them in reverse, pausing
// gap between transitions.
func press(gap time.Duration, keys ...uint16) error {
	for _, k := range keys {
		if err := emit(k, 1); err != nil {
			return err
		}
		time.Sleep(gap)
	}
	for i := len(keys) - 1; i >= 0; i-- {
		if err := emit(keys[i], 0); err != nil {
			return err
		}
		if i > 0 {
			time.Sleep(gap)
		}
	}
	return nil
}

// Paste sends Ctrl+V. The gaps let the compositor register the modifier.
func Paste() error {
	if err := Init(); err != nil {
		return err
	}
	return press(5*time.Millisecond, keyLeftCtrl, keyV)
}

func keyTap(code uint16, shift bool) error {
	if shift {
		return press(0, keyLeftShift, code)
	}
	return press(0, code)
}
