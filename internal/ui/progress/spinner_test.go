package progress

import "testing"

func TestSpinnerDisabledIsNoOp(t *testing.T) {
	t.Parallel()

	s := &Spinner{
		msgChan: make(chan string, 10),
		done:    make(chan struct{}),
		enabled: false,
	}

	// Without a terminal nothing may start, block or panic.
	s.Start()
	if s.isRunning {
		t.Error("disabled spinner reported running after Start")
	}
	s.UpdateMessage("fetching")
	if s.lastMsg != "fetching" {
		t.Errorf("lastMsg = %q, want %q", s.lastMsg, "fetching")
	}
	s.Stop()
}

func TestSpinnerStopBeforeStart(t *testing.T) {
	t.Parallel()

	s := New("working")
	s.Stop()
	s.UpdateMessage("still fine")
}
