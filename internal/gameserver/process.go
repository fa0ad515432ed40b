package gameserver

import (
	"encoding/hex"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
)

// LaunchMode selects how the supervisor spawns the game-server child
// (spec.md §0 open-question resolution, §4.4 step 2).
type LaunchMode string

const (
	// LaunchModeExecutable runs path directly as a prebuilt binary.
	LaunchModeExecutable LaunchMode = "executable"
	// LaunchModeGoRun runs path as a `go run` target, the Go-native stand-in
	// for the spec's toolchain-managed launch mode.
	LaunchModeGoRun LaunchMode = "gorun"
)

// ProcessHandle is a running game-server child.
type ProcessHandle interface {
	// Wait blocks until the process exits. It reports nil for a zero exit
	// status and a non-nil error (an *exec.ExitError on the real spawner) for
	// any other outcome — the supervisor's only signal of whether a match
	// completed normally or died (spec.md §7.3).
	Wait() error
	// Kill sends an immediate termination signal. Safe to call after the
	// process has already exited.
	Kill() error
}

// ProcessSpawner starts a game-server child process. It exists so tests can
// substitute a fake without touching os/exec.
type ProcessSpawner interface {
	Spawn(mode LaunchMode, path string, token []byte, port int) (ProcessHandle, error)
}

// execSpawner is the production ProcessSpawner, built on os/exec.
type execSpawner struct{}

func (execSpawner) Spawn(mode LaunchMode, path string, token []byte, port int) (ProcessHandle, error) {
	var cmd *exec.Cmd
	tokenArg := hex.EncodeToString(token)
	portArg := strconv.Itoa(port)

	switch mode {
	case LaunchModeExecutable:
		cmd = exec.Command(path, tokenArg, portArg)
	case LaunchModeGoRun:
		cmd = exec.Command("go", "run", path, tokenArg, portArg)
	default:
		return nil, fmt.Errorf("unknown launch mode %q", mode)
	}
	cmd.Dir = filepath.Dir(path)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start game server: %w", err)
	}
	return &execHandle{cmd: cmd}, nil
}

type execHandle struct {
	cmd *exec.Cmd
}

func (h *execHandle) Wait() error {
	return h.cmd.Wait()
}

func (h *execHandle) Kill() error {
	if h.cmd.Process == nil {
		return nil
	}
	return h.cmd.Process.Kill()
}
