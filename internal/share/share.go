// Package share publishes the final score: through a native share command
// when one is available, otherwise by copying the link to the clipboard.
package share

import (
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/atotto/clipboard"
	"go.uber.org/zap"

	"github.com/abhisek/mindreset/internal/config"
)

// Method is how a share was delivered.
type Method int

const (
	MethodNone Method = iota
	MethodNative
	MethodClipboard
)

func (m Method) String() string {
	switch m {
	case MethodNative:
		return "native"
	case MethodClipboard:
		return "clipboard"
	default:
		return "none"
	}
}

// Result is shown to the user right after sharing.
type Result struct {
	Method Method
	Notice string
}

// nativeCommands are share helpers probed when none is configured.
var nativeCommands = []string{"termux-share"}

// Sharer shares the completion message. Failures never escape Share.
type Sharer struct {
	url     string
	text    string
	command string

	run       func(ctx context.Context, name string, args ...string) error
	copy      func(string) error
	clipboard bool
	log       *zap.Logger
}

// New creates a Sharer from configuration.
func New(cfg config.Share, log *zap.Logger) *Sharer {
	if log == nil {
		log = zap.NewNop()
	}
	command := cfg.Command
	if command == "" {
		for _, name := range nativeCommands {
			if path, err := exec.LookPath(name); err == nil {
				command = path
				break
			}
		}
	}
	return &Sharer{
		url:       cfg.URL,
		text:      cfg.Text,
		command:   command,
		run:       runCommand,
		copy:      clipboard.WriteAll,
		clipboard: !clipboard.Unsupported,
		log:       log,
	}
}

// Message builds the text that is shared for score.
func (s *Sharer) Message(score int) string {
	text := s.text
	if strings.Contains(text, "%d") {
		text = fmt.Sprintf(text, score)
	}
	if text == "" {
		return s.url
	}
	return text + " " + s.url
}

// Share tries the native command, then the clipboard. The returned notice is
// meant to be shown immediately.
func (s *Sharer) Share(ctx context.Context, score int) Result {
	msg := s.Message(score)

	if s.command != "" {
		err := s.run(ctx, s.command, msg)
		if err == nil {
			s.log.Info("shared natively", zap.String("command", s.command), zap.Int("score", score))
			return Result{Method: MethodNative, Notice: "Shared!"}
		}
		s.log.Warn("native share failed", zap.String("command", s.command), zap.Error(err))
	}

	if s.clipboard {
		err := s.copy(msg)
		if err == nil {
			s.log.Info("share link copied", zap.Int("score", score))
			return Result{Method: MethodClipboard, Notice: "Link copied to clipboard!"}
		}
		s.log.Warn("clipboard share failed", zap.Error(err))
	}

	return Result{Method: MethodNone, Notice: "Share this link: " + s.url}
}

func runCommand(ctx context.Context, name string, args ...string) error {
	out, err := exec.CommandContext(ctx, name, args...).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}
