// ABOUTME: Tests for the wall-clock platform sound
// ABOUTME: Drives a fake clock through play, stop and end-of-buffer
package output

import (
	"testing"
	"time"

	"github.com/Resonate-Protocol/swfsound-go/pkg/audio/encode"
	"github.com/google/uuid"
)

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) Now() time.Time { return c.t }

func (c *fakeClock) Advance(d time.Duration) { c.t = c.t.Add(d) }

func newTestClockSound(t *testing.T, seconds int, speed float64) (Sound, *fakeClock) {
	t.Helper()
	clock := &fakeClock{t: time.Unix(1000, 0)}
	f := &ClockFactory{Now: clock.Now, Speed: speed}

	p := encode.PackageWave(make([]byte, 11250*2*seconds), 11250, 1, 16, false)
	snd, err := f.NewSound(p)
	if err != nil {
		t.Fatalf("NewSound failed: %v", err)
	}
	return snd, clock
}

func TestClockSoundImplementsSound(t *testing.T) {
	var _ Sound = (*clockSound)(nil)
	var _ Sound = (*otoSound)(nil)
	var _ Factory = (*ClockFactory)(nil)
	var _ Factory = (*OtoFactory)(nil)
}

func TestClockSoundPlayback(t *testing.T) {
	snd, clock := newTestClockSound(t, 2, 1.0)

	if snd.IsPlaying() {
		t.Error("expected new sound to be idle")
	}
	if snd.CurrentTime() != 0 {
		t.Errorf("expected time 0, got %f", snd.CurrentTime())
	}

	if err := snd.Play(0.5); err != nil {
		t.Fatalf("Play failed: %v", err)
	}
	clock.Advance(250 * time.Millisecond)

	if !snd.IsPlaying() {
		t.Error("expected sound to be playing")
	}
	if got := snd.CurrentTime(); got != 0.75 {
		t.Errorf("expected time 0.75, got %f", got)
	}

	if err := snd.Stop(); err != nil {
		t.Fatalf("Stop failed: %v", err)
	}
	clock.Advance(time.Second)

	if snd.IsPlaying() {
		t.Error("expected stopped sound to be idle")
	}
	if got := snd.CurrentTime(); got != 0.75 {
		t.Errorf("expected time to hold at 0.75, got %f", got)
	}
}

func TestClockSoundEndsAtDuration(t *testing.T) {
	snd, clock := newTestClockSound(t, 1, 1.0)

	snd.Play(0)
	clock.Advance(3 * time.Second)

	if snd.IsPlaying() {
		t.Error("expected sound past its end to be idle")
	}
	if got := snd.CurrentTime(); got != 1.0 {
		t.Errorf("expected time clamped to 1.0, got %f", got)
	}
}

func TestClockSoundSpeed(t *testing.T) {
	snd, clock := newTestClockSound(t, 10, 2.0)

	snd.Play(0)
	clock.Advance(time.Second)

	if got := snd.CurrentTime(); got != 2.0 {
		t.Errorf("expected time 2.0 at double speed, got %f", got)
	}
}

func TestClockSoundClosed(t *testing.T) {
	snd, _ := newTestClockSound(t, 1, 1.0)

	if err := snd.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	if err := snd.Play(0); err == nil {
		t.Error("expected Play on closed sound to fail")
	}
}

func TestClockSoundIDs(t *testing.T) {
	a, _ := newTestClockSound(t, 1, 1.0)
	b, _ := newTestClockSound(t, 1, 1.0)

	if _, err := uuid.Parse(a.ID()); err != nil {
		t.Errorf("expected uuid id, got %q: %v", a.ID(), err)
	}
	if a.ID() == b.ID() {
		t.Errorf("expected distinct ids, both were %s", a.ID())
	}
}
