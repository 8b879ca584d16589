package audio

import (
	"fmt"
	"io"
	"os"
	"strings"

	"golang.org/x/term"
)

// FindDevice returns the device whose name matches exactly, or failing
// that the single device whose name contains name (case-insensitive).
func FindDevice(ctx Context, name string) (*DeviceInfo, error) {
	devices, err := ctx.Devices()
	if err != nil {
		return nil, fmt.Errorf("enumerating devices: %w", err)
	}
	for i := range devices {
		if devices[i].Name == name {
			return &devices[i], nil
		}
	}
	var match *DeviceInfo
	needle := strings.ToLower(name)
	for i := range devices {
		if strings.Contains(strings.ToLower(devices[i].Name), needle) {
			if match != nil {
				return nil, fmt.Errorf("device %q is ambiguous", name)
			}
			match = &devices[i]
		}
	}
	if match == nil {
		return nil, fmt.Errorf("device %q not found", name)
	}
	return match, nil
}

type pickKey int

const (
	pickNone pickKey = iota
	pickUp
	pickDown
	pickEnter
	pickAbort
)

// decodePickKey maps one raw-mode read to a picker key.
func decodePickKey(b []byte) pickKey {
	if len(b) == 1 {
		switch b[0] {
		case '\r', '\n':
			return pickEnter
		case 3, 'q':
			return pickAbort
		case 'j':
			return pickDown
		case 'k':
			return pickUp
		}
		return pickNone
	}
	if len(b) == 3 && b[0] == 0x1b && b[1] == '[' {
		switch b[2] {
		case 'A':
			return pickUp
		case 'B':
			return pickDown
		}
	}
	return pickNone
}

type picker struct {
	devices []DeviceInfo
	cursor  int
}

func (p *picker) move(k pickKey) {
	switch k {
	case pickUp:
		if p.cursor > 0 {
			p.cursor--
		}
	case pickDown:
		if p.cursor < len(p.devices)-1 {
			p.cursor++
		}
	}
}

func (p *picker) render(w io.Writer) {
	fmt.Fprint(w, "\r\x1b[J")
	fmt.Fprint(w, "Select microphone (↑/↓, Enter to confirm):\r\n\r\n")
	for i, d := range p.devices {
		btTag := ""
		if IsBluetooth(d.Name) {
			btTag = " \x1b[33m[bluetooth: lower quality]\x1b[0m"
		}
		if i == p.cursor {
			fmt.Fprintf(w, "  \x1b[1;36m▶ %s%s\x1b[0m\r\n", d.Name, btTag)
		} else {
			fmt.Fprintf(w, "    %s%s\r\n", d.Name, btTag)
		}
	}
}

// SelectDevice presents an interactive picker on the terminal. A single
// device is returned without prompting; aborting returns nil, nil so the
// caller falls back to the system default.
func SelectDevice(ctx Context) (*DeviceInfo, error) {
	devices, err := ctx.Devices()
	if err != nil {
		return nil, fmt.Errorf("enumerating devices: %w", err)
	}
	if len(devices) == 0 {
		return nil, fmt.Errorf("no capture devices found")
	}
	if len(devices) == 1 {
		return &devices[0], nil
	}

	fd := int(os.Stdin.Fd())
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return nil, fmt.Errorf("setting raw mode: %w", err)
	}
	defer term.Restore(fd, oldState)

	p := &picker{devices: devices}
	p.render(os.Stdout)

	buf := make([]byte, 3)
	for {
		n, err := os.Stdin.Read(buf)
		if err != nil {
			return nil, fmt.Errorf("reading input: %w", err)
		}
		switch k := decodePickKey(buf[:n]); k {
		case pickEnter:
			fmt.Print("\r\n")
			return &p.devices[p.cursor], nil
		case pickAbort:
			fmt.Print("\r\n")
			return nil, nil
		default:
			p.move(k)
		}
		fmt.Printf("\x1b[%dA", len(devices)+2)
		p.render(os.Stdout)
	}
}
