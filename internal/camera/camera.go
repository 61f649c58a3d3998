// Package camera implements the capture device capability on top of an
// ffmpeg child process.
package camera

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"sync"
	"syscall"

	"github.com/tashichi/clipflow/internal/capture"
)

// Device records fixed-duration clips by running ffmpeg against a video
// input. It implements capture.Device.
type Device struct {
	input  string // e.g. /dev/video0
	format string // e.g. v4l2
	facing capture.Facing

	mu    sync.Mutex
	bound bool
	cmd   *exec.Cmd
}

// New returns an unbound device reading from input using the given
// ffmpeg input format.
func New(input, format string, facing capture.Facing) *Device {
	return &Device{input: input, format: format, facing: facing}
}

// CheckFFmpeg verifies that ffmpeg is on PATH.
func CheckFFmpeg() error {
	if _, err := exec.LookPath("ffmpeg"); err != nil {
		return fmt.Errorf("ffmpeg not found. Install it with your package manager")
	}
	return nil
}

// Bind verifies the recording prerequisites: ffmpeg is present and the
// input device exists and is readable.
func (d *Device) Bind(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := CheckFFmpeg(); err != nil {
		return err
	}
	if _, err := os.Stat(d.input); err != nil {
		return fmt.Errorf("video input %s: %w", d.input, err)
	}

	d.mu.Lock()
	d.bound = true
	d.mu.Unlock()
	return nil
}

// Start launches ffmpeg writing to dest and returns the event stream:
// one Started event once the process is running, then one Finalized
// event when it exits. Stop finalizes by signalling ffmpeg to flush and
// close the output cleanly.
func (d *Device) Start(dest string, audioEnabled bool) (<-chan capture.Event, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if !d.bound {
		return nil, fmt.Errorf("device not bound")
	}
	if d.cmd != nil {
		return nil, fmt.Errorf("recording already active")
	}

	args := []string{
		"-f", d.format,
		"-i", d.input,
	}
	if audioEnabled {
		args = append(args, "-f", "alsa", "-i", "default")
	}
	args = append(args,
		"-movflags", "+faststart",
		"-y",
		dest,
	)

	cmd := exec.Command("ffmpeg", args...)

	// Log stderr for diagnostics
	logPath := dest + ".ffmpeg.log"
	logFile, err := os.Create(logPath)
	if err == nil {
		cmd.Stderr = logFile
	}

	if err := cmd.Start(); err != nil {
		if logFile != nil {
			logFile.Close()
		}
		return nil, fmt.Errorf("start ffmpeg: %w", err)
	}
	d.cmd = cmd

	events := make(chan capture.Event, 2)
	events <- capture.Event{Kind: capture.EventStarted}

	go func() {
		err := cmd.Wait()
		if logFile != nil {
			logFile.Close()
		}

		d.mu.Lock()
		d.cmd = nil
		d.mu.Unlock()

		// A SIGINT-driven exit is the normal stop path, not a failure.
		if err != nil && !stoppedBySignal(err) {
			events <- capture.Event{Kind: capture.EventFinalized, Err: fmt.Errorf("ffmpeg: %w", err)}
		} else {
			events <- capture.Event{Kind: capture.EventFinalized}
		}
		close(events)
	}()

	return events, nil
}

// Stop asks the active ffmpeg process to finalize. SIGINT makes ffmpeg
// flush and close the container properly; SIGKILL would truncate it.
func (d *Device) Stop() {
	d.mu.Lock()
	cmd := d.cmd
	d.mu.Unlock()

	if cmd != nil && cmd.Process != nil {
		cmd.Process.Signal(syscall.SIGINT)
	}
}

// Facing reports the configured camera facing.
func (d *Device) Facing() capture.Facing {
	return d.facing
}

func stoppedBySignal(err error) bool {
	exitErr, ok := err.(*exec.ExitError)
	if !ok {
		return false
	}
	status, ok := exitErr.Sys().(syscall.WaitStatus)
	if !ok {
		return false
	}
	// ffmpeg exits 255 on SIGINT after finalizing the output.
	return status.Signaled() || exitErr.ExitCode() == 255
}
