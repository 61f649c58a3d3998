package camera

import (
	"context"
	"os/exec"
	"path/filepath"
	"testing"

	"github.com/tashichi/clipflow/internal/capture"
)

func TestStartBeforeBind(t *testing.T) {
	d := New("/dev/video0", "v4l2", capture.FacingBack)

	_, err := d.Start(filepath.Join(t.TempDir(), "segment_1.mp4"), false)
	if err == nil {
		t.Fatal("expected error starting an unbound device")
	}
}

func TestBindMissingInput(t *testing.T) {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		t.Skip("ffmpeg not installed")
	}

	d := New(filepath.Join(t.TempDir(), "no-such-device"), "v4l2", capture.FacingBack)
	if err := d.Bind(context.Background()); err == nil {
		t.Fatal("expected error binding a missing input")
	}
}

func TestFacing(t *testing.T) {
	d := New("/dev/video1", "v4l2", capture.FacingFront)
	if d.Facing() != capture.FacingFront {
		t.Errorf("facing = %q, want front", d.Facing())
	}
}
