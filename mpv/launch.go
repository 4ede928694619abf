package mpv

import (
	"os/exec"

	"github.com/ckearl/senahpark.com/deps"
)

// LaunchAudio starts mpv in audio-only idle mode with the IPC socket enabled.
// It checks that mpv is installed first and returns an error with install link
// if not. Returns the *exec.Cmd for the running process which can be used for
// cleanup. Files are loaded afterwards over IPC, so nothing plays yet.
func LaunchAudio(socketPath string) (*exec.Cmd, error) {
	if err := deps.CheckMpv(); err != nil {
		return nil, err
	}
	if socketPath == "" {
		socketPath = DefaultSocketPath
	}

	cmd := exec.Command("mpv",
		"--input-ipc-server="+socketPath,
		"--no-video",
		"--idle=yes",
		"--pause",
	)

	// Start the process (non-blocking)
	if err := cmd.Start(); err != nil {
		return nil, err
	}

	return cmd, nil
}
