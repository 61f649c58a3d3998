package playback

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"sync"
)

// Player is the opaque playback capability a queue is handed to.
type Player interface {
	// SetQueue replaces the queued media.
	SetQueue(queue []MediaRef)
	// Prepare readies the player for the queued media.
	Prepare() error
	// Play plays the queue back-to-back, blocking until playback ends
	// or ctx is cancelled.
	Play(ctx context.Context) error
	// Release frees player resources.
	Release()
}

// MPVPlayer plays a queue gaplessly through an mpv child process fed a
// generated playlist.
type MPVPlayer struct {
	command string

	mu       sync.Mutex
	queue    []MediaRef
	playlist string
}

// NewMPVPlayer returns a player that launches command (normally "mpv").
func NewMPVPlayer(command string) *MPVPlayer {
	if command == "" {
		command = "mpv"
	}
	return &MPVPlayer{command: command}
}

// SetQueue replaces the queued media.
func (p *MPVPlayer) SetQueue(queue []MediaRef) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.queue = append([]MediaRef(nil), queue...)
}

// Prepare writes the playlist file mpv will consume.
func (p *MPVPlayer) Prepare() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.queue) == 0 {
		return ErrNothingToPlay
	}
	if _, err := exec.LookPath(p.command); err != nil {
		return fmt.Errorf("%s not found. Install it with your package manager", p.command)
	}

	f, err := os.CreateTemp("", "clipflow-*.m3u")
	if err != nil {
		return fmt.Errorf("create playlist: %w", err)
	}

	var b strings.Builder
	for _, ref := range p.queue {
		b.WriteString(ref.Path)
		b.WriteByte('\n')
	}
	if _, err := f.WriteString(b.String()); err != nil {
		f.Close()
		os.Remove(f.Name())
		return fmt.Errorf("write playlist: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return fmt.Errorf("close playlist: %w", err)
	}

	p.playlist = f.Name()
	return nil
}

// Play runs mpv over the prepared playlist and blocks until it exits.
func (p *MPVPlayer) Play(ctx context.Context) error {
	p.mu.Lock()
	playlist := p.playlist
	p.mu.Unlock()

	if playlist == "" {
		return fmt.Errorf("player not prepared")
	}

	cmd := exec.CommandContext(ctx, p.command,
		"--really-quiet",
		"--no-terminal",
		"--playlist="+playlist,
	)
	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		return fmt.Errorf("%s: %w", p.command, err)
	}
	return nil
}

// Release removes the playlist file.
func (p *MPVPlayer) Release() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.playlist != "" {
		os.Remove(p.playlist)
		p.playlist = ""
	}
}
