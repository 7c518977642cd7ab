// Package shared holds utilities used by more than one mode controller.
package shared

import (
	"encoding/base64"
	"fmt"
	"os"
	"os/exec"
	"runtime"
)

// Clipboard copies text for the user. The system implementation picks a
// transport from the session environment; tests substitute a recorder.
type Clipboard interface {
	Copy(text string) error
}

// SystemClipboard writes to the real clipboard. Remote and GNU screen
// sessions go through OSC 52 so the text lands on the user's local
// machine; everything else shells out to the platform tool.
type SystemClipboard struct{}

// Copy sends text to the clipboard.
func (SystemClipboard) Copy(text string) error {
	switch {
	case localTmux():
		return copyNative(text)
	case remoteSession(), gnuScreen():
		return copyOSC52(text)
	default:
		return copyNative(text)
	}
}

// localTmux reports a tmux session that is not reached over SSH.
func localTmux() bool {
	return os.Getenv("TMUX") != "" && !remoteSession()
}

func remoteSession() bool {
	return os.Getenv("SSH_TTY") != "" ||
		os.Getenv("SSH_CLIENT") != "" ||
		os.Getenv("SSH_CONNECTION") != ""
}

func gnuScreen() bool {
	return os.Getenv("STY") != ""
}

// copyOSC52 emits an OSC 52 sequence on the controlling terminal. Inside
// tmux the sequence is wrapped in a DCS passthrough, with the inner ESC
// doubled, or tmux would swallow it.
func copyOSC52(text string) (err error) {
	encoded := base64.StdEncoding.EncodeToString([]byte(text))

	seq := fmt.Sprintf("\x1b]52;c;%s\x07", encoded)
	if os.Getenv("TMUX") != "" {
		seq = fmt.Sprintf("\x1bPtmux;\x1b\x1b]52;c;%s\x07\x1b\\", encoded)
	}

	// /dev/tty sidesteps stdout redirection and the alt screen buffer.
	tty, err := os.OpenFile("/dev/tty", os.O_WRONLY, 0)
	if err != nil {
		return fmt.Errorf("failed to open /dev/tty: %w", err)
	}
	defer func() {
		if closeErr := tty.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()

	_, err = tty.WriteString(seq)
	return err
}

func copyNative(text string) error {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = exec.Command("pbcopy")
	default:
		cmd = exec.Command("xclip", "-selection", "clipboard")
	}

	pipe, err := cmd.StdinPipe()
	if err != nil {
		return err
	}
	if err := cmd.Start(); err != nil {
		return err
	}
	if _, err := pipe.Write([]byte(text)); err != nil {
		return err
	}
	if err := pipe.Close(); err != nil {
		return err
	}
	return cmd.Wait()
}
