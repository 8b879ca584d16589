package transcriber

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"
)

func TestEncodePCM16(t *testing.T) {
	pcm := EncodePCM16([]float32{0, 1, -1, 2, -2, 0.5})
	if len(pcm) != 12 {
		t.Fatalf("len = %d, want 12", len(pcm))
	}
	want := []int16{0, 32767, -32767, 32767, -32768, 16383}
	for i, w := range want {
		got := int16(uint16(pcm[i*2]) | uint16(pcm[i*2+1])<<8)
		if got != w {
			t.Errorf("sample %d = %d, want %d", i, got, w)
		}
	}
}

func TestPCM16RoundTrip(t *testing.T) {
	in := []float32{0, 0.25, -0.25, 0.999, -0.999}
	out, err := DecodePCM16(EncodePCM16(in))
	if err != nil {
		t.Fatal(err)
	}
	for i := range in {
		if math.Abs(float64(in[i]-out[i])) > 1.0/16000 {
			t.Errorf("sample %d: %f -> %f", i, in[i], out[i])
		}
	}
}

func TestDecodePCM16OddLength(t *testing.T) {
	if _, err := DecodePCM16([]byte{1, 2, 3}); err == nil {
		t.Fatal("expected error for odd length")
	}
}

func TestStripBlank(t *testing.T) {
	for _, tt := range []struct{ in, want string }{
		{" [BLANK_AUDIO] ", ""},
		{"(silence)", ""},
		{" hello [BLANK_AUDIO]", "hello"},
		{"plain text", "plain text"},
	} {
		if got := stripBlank(tt.in); got != tt.want {
			t.Errorf("stripBlank(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestUnavailable(t *testing.T) {
	if _, err := Unavailable(nil).Transcribe(context.Background(), nil); !errors.Is(err, ErrUnavailable) {
		t.Fatalf("err = %v, want ErrUnavailable", err)
	}
	cause := errors.New("bad model")
	if _, err := Unavailable(cause).Transcribe(context.Background(), nil); !errors.Is(err, cause) {
		t.Fatalf("err = %v, want %v", err, cause)
	}
}

func TestNewWithoutModel(t *testing.T) {
	if _, err := New("", "en"); !errors.Is(err, ErrNoModel) {
		t.Fatalf("err = %v, want ErrNoModel", err)
	}
}

func TestFake(t *testing.T) {
	f := NewFake("hi", nil, 0)
	text, err := f.Transcribe(context.Background(), make([]byte, 100))
	if err != nil || text != "hi" {
		t.Fatalf("got %q, %v", text, err)
	}
	if calls := f.Calls(); len(calls) != 1 || calls[0] != 50 {
		t.Fatalf("calls = %v", calls)
	}

	slow := NewFake("late", nil, time.Hour)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := slow.Transcribe(ctx, nil); !errors.Is(err, context.Canceled) {
		t.Fatalf("err = %v, want context.Canceled", err)
	}
}
