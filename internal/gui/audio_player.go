package gui

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
)

// clipPlayer plays audio clips through an external command line player.
// Review candidates only exist in memory, so each clip is spooled to a
// temp file first.
type clipPlayer struct {
	tmpDir  string
	playCmd *exec.Cmd
}

func newClipPlayer() *clipPlayer {
	return &clipPlayer{}
}

// PlayData plays raw audio bytes. ext selects the temp file suffix so the
// player can sniff the format ("mp3", "ogg", ...). Any clip already
// playing is stopped first.
func (p *clipPlayer) PlayData(data []byte, ext string) error {
	p.Stop()

	if p.tmpDir == "" {
		dir, err := os.MkdirTemp("", "ankiaudio-play-")
		if err != nil {
			return fmt.Errorf("failed to create playback temp dir: %w", err)
		}
		p.tmpDir = dir
	}

	file := filepath.Join(p.tmpDir, "clip."+ext)
	if err := os.WriteFile(file, data, 0600); err != nil {
		return fmt.Errorf("failed to spool audio clip: %w", err)
	}
	return p.PlayFile(file)
}

// PlayFile plays an audio file that already exists on disk, such as a
// recording already sitting in the collection's media folder.
func (p *clipPlayer) PlayFile(file string) error {
	p.Stop()

	cmd, err := playbackCommand(file)
	if err != nil {
		return err
	}
	p.playCmd = cmd

	go cmd.Run()
	return nil
}

// Stop kills any clip currently playing.
func (p *clipPlayer) Stop() {
	if p.playCmd != nil && p.playCmd.Process != nil {
		p.playCmd.Process.Kill()
	}
	p.playCmd = nil
}

// Close stops playback and removes the spool directory.
func (p *clipPlayer) Close() {
	p.Stop()
	if p.tmpDir != "" {
		os.RemoveAll(p.tmpDir)
		p.tmpDir = ""
	}
}

// playbackCommand builds the platform-specific player invocation.
func playbackCommand(file string) (*exec.Cmd, error) {
	switch runtime.GOOS {
	case "darwin":
		return exec.Command("afplay", file), nil
	case "linux":
		// Try multiple commands in order of preference, mpg123 first
		// since it handles MP3 files best.
		if _, err := exec.LookPath("mpg123"); err == nil {
			return exec.Command("mpg123", "-q", file), nil
		}
		if _, err := exec.LookPath("ffplay"); err == nil {
			return exec.Command("ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet", file), nil
		}
		if _, err := exec.LookPath("play"); err == nil {
			// SoX play command
			return exec.Command("play", "-q", file), nil
		}
		if _, err := exec.LookPath("paplay"); err == nil {
			return exec.Command("paplay", file), nil
		}
		if _, err := exec.LookPath("aplay"); err == nil {
			return exec.Command("aplay", "-q", file), nil
		}
		return nil, fmt.Errorf("no audio player found. Install mpg123, ffplay, sox, paplay, or aplay")
	case "windows":
		return exec.Command("cmd", "/c", "start", "/min", file), nil
	default:
		return nil, fmt.Errorf("unsupported platform: %s", runtime.GOOS)
	}
}
