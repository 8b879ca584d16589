package audio

import (
	"strings"
	"testing"
)

type listContext struct {
	*FakeContext
	names []string
}

func (c listContext) Devices() ([]DeviceInfo, error) {
	out := make([]DeviceInfo, len(c.names))
	for i, n := range c.names {
		out[i] = DeviceInfo{ID: n, Name: n}
	}
	return out, nil
}

func TestFindDevice(t *testing.T) {
	ctx := listContext{FakeContext: &FakeContext{}, names: []string{"Built-in Microphone", "USB Mic", "USB Mic Pro"}}

	tests := []struct {
		query   string
		want    string
		wantErr string
	}{
		{"USB Mic", "USB Mic", ""},
		{"built-in", "Built-in Microphone", ""},
		{"usb", "", "ambiguous"},
		{"webcam", "", "not found"},
	}
	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			d, err := FindDevice(ctx, tt.query)
			if tt.wantErr != "" {
				if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
					t.Fatalf("err = %v, want %q", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if d.Name != tt.want {
				t.Fatalf("got %q, want %q", d.Name, tt.want)
			}
		})
	}
}

func TestPickerKeys(t *testing.T) {
	p := &picker{devices: make([]DeviceInfo, 3)}
	for _, in := range [][]byte{{0x1b, '[', 'B'}, {'j'}, {'j'}} {
		p.move(decodePickKey(in))
	}
	if p.cursor != 2 {
		t.Fatalf("cursor = %d, want clamped at 2", p.cursor)
	}
	p.move(decodePickKey([]byte{0x1b, '[', 'A'}))
	p.move(decodePickKey([]byte{'k'}))
	p.move(decodePickKey([]byte{'k'}))
	if p.cursor != 0 {
		t.Fatalf("cursor = %d, want 0", p.cursor)
	}
	if decodePickKey([]byte{'\r'}) != pickEnter || decodePickKey([]byte{3}) != pickAbort {
		t.Fatal("enter/abort not decoded")
	}
	if decodePickKey([]byte{'x'}) != pickNone {
		t.Fatal("unknown key decoded")
	}
}

func TestPickerRenderMarksBluetooth(t *testing.T) {
	p := &picker{devices: []DeviceInfo{{Name: "AirPods Pro"}, {Name: "USB Mic"}}}
	var b strings.Builder
	p.render(&b)
	out := b.String()
	if !strings.Contains(out, "▶ AirPods Pro") || !strings.Contains(out, "bluetooth") {
		t.Fatalf("render = %q", out)
	}
}
