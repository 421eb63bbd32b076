package doctor

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/boughdev/bough/internal/config"
)

func TestReportHealthy(t *testing.T) {
	t.Parallel()

	r := &Report{Checks: []Check{
		{Name: "git", Status: StatusOK},
		{Name: "github", Status: StatusWarn},
	}}
	if !r.Healthy() {
		t.Error("report with only ok and warn checks reported unhealthy")
	}

	r.Checks = append(r.Checks, Check{Name: "agent", Status: StatusFail})
	if r.Healthy() {
		t.Error("report with a failed check reported healthy")
	}
}

func TestReportRender(t *testing.T) {
	t.Parallel()

	r := &Report{Checks: []Check{
		{Name: "git", Status: StatusOK, Detail: "found in PATH"},
		{Name: "agent", Status: StatusFail, Detail: "claude not found"},
	}}

	got := r.Render()
	want := "[ok] git: found in PATH\n[fail] agent: claude not found\n"
	if got != want {
		t.Errorf("Render() = %q, want %q", got, want)
	}
}

func TestRunWithoutRoot(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Root = ""
	cfg.Agent.Command = "sh"

	r := Run(context.Background(), &cfg)

	settings := r.Find("settings")
	if settings == nil || settings.Status != StatusFail {
		t.Errorf("settings check = %+v, want fail", settings)
	}
	if !strings.Contains(settings.Detail, "root directory is not configured") {
		t.Errorf("settings detail = %q", settings.Detail)
	}
	if r.Find("root") != nil {
		t.Error("root check ran without a configured root")
	}
	if r.Find("repository") != nil {
		t.Error("repository check ran without a configured root")
	}
	if r.Healthy() {
		t.Error("unconfigured setup reported healthy")
	}
}

func TestRunMissingAgent(t *testing.T) {
	t.Parallel()

	cfg := config.Default()
	cfg.Root = ""
	cfg.Agent.Command = "bough-test-no-such-binary"

	r := Run(context.Background(), &cfg)
	ag := r.Find("agent")
	if ag == nil || ag.Status != StatusFail {
		t.Errorf("agent check = %+v, want fail", ag)
	}
}

func TestCheckRoot(t *testing.T) {
	t.Parallel()

	t.Run("Writable", func(t *testing.T) {
		t.Parallel()
		r := &Report{}
		checkRoot(r, t.TempDir())
		if c := r.Find("root"); c == nil || c.Status != StatusOK {
			t.Errorf("root check = %+v, want ok", c)
		}
	})

	t.Run("Missing", func(t *testing.T) {
		t.Parallel()
		r := &Report{}
		checkRoot(r, filepath.Join(t.TempDir(), "not-created-yet"))
		if c := r.Find("root"); c == nil || c.Status != StatusWarn {
			t.Errorf("root check = %+v, want warn", c)
		}
	})

	t.Run("NotADirectory", func(t *testing.T) {
		t.Parallel()
		dir := t.TempDir()
		file := filepath.Join(dir, "root")
		if err := os.WriteFile(file, []byte("x"), 0644); err != nil {
			t.Fatal(err)
		}
		r := &Report{}
		checkRoot(r, file)
		if c := r.Find("root"); c == nil || c.Status != StatusFail {
			t.Errorf("root check = %+v, want fail", c)
		}
	})
}
