// Package cue plays short audio cues for answer categories and milestones.
// Players report failures to the caller; the quiz logs and ignores them.
package cue

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/abhisek/mindreset/internal/config"
)

// Cue is a sound category.
type Cue string

const (
	A         Cue = "A"
	B         Cue = "B"
	C         Cue = "C"
	Milestone Cue = "milestone"
)

// ErrNoSound is returned when a cue has no sound file configured.
var ErrNoSound = errors.New("no sound for cue")

// ForKey maps an option key to its cue. Unknown keys use the A cue.
func ForKey(key string) Cue {
	switch key {
	case "B":
		return B
	case "C":
		return C
	default:
		return A
	}
}

// DefaultSounds maps cues to file names inside the sound directory.
var DefaultSounds = map[Cue]string{
	A:         "click.mp3",
	B:         "click.mp3",
	C:         "brain-power.mp3",
	Milestone: "level-up.mp3",
}

// Player plays a cue. Play must not block for the length of the sound.
type Player interface {
	Play(ctx context.Context, c Cue) error
}

// Nop is a silent Player.
type Nop struct{}

func (Nop) Play(context.Context, Cue) error { return nil }

// Bell rings the terminal bell.
type Bell struct {
	W io.Writer
}

func (b Bell) Play(_ context.Context, _ Cue) error {
	if _, err := io.WriteString(b.W, "\a"); err != nil {
		return fmt.Errorf("ring bell: %w", err)
	}
	return nil
}

// Command plays sound files with an external player such as mpg123 or afplay.
type Command struct {
	Path   string   // player binary
	Args   []string // arguments placed before the file
	Dir    string
	Sounds map[Cue]string
	Log    *zap.Logger

	start func(*exec.Cmd) error
}

func (p *Command) Play(_ context.Context, c Cue) error {
	name, ok := p.Sounds[c]
	if !ok {
		return fmt.Errorf("%w %q", ErrNoSound, c)
	}
	file := filepath.Join(p.Dir, name)
	if _, err := os.Stat(file); err != nil {
		return fmt.Errorf("sound file: %w", err)
	}

	// Not tied to the caller's context: the cue outlives the keypress that
	// triggered it.
	cmd := exec.Command(p.Path, append(append([]string{}, p.Args...), file)...)
	start := p.start
	if start == nil {
		start = startAndReap(p.Log)
	}
	if err := start(cmd); err != nil {
		return fmt.Errorf("start %s: %w", p.Path, err)
	}
	return nil
}

func startAndReap(log *zap.Logger) func(*exec.Cmd) error {
	return func(cmd *exec.Cmd) error {
		if err := cmd.Start(); err != nil {
			return err
		}
		go func() {
			if err := cmd.Wait(); err != nil && log != nil {
				log.Debug("audio player exited", zap.String("cmd", cmd.Path), zap.Error(err))
			}
		}()
		return nil
	}
}

// Fallback tries each player in order until one succeeds.
type Fallback []Player

func (f Fallback) Play(ctx context.Context, c Cue) error {
	var errs []error
	for _, p := range f {
		err := p.Play(ctx, c)
		if err == nil {
			return nil
		}
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// knownPlayers are tried in order when no command is configured.
var knownPlayers = []struct {
	name string
	args []string
}{
	{"afplay", nil},
	{"mpg123", []string{"-q"}},
	{"ffplay", []string{"-nodisp", "-autoexit", "-loglevel", "quiet"}},
	{"paplay", nil},
}

// New builds the Player described by cfg. bell receives the terminal bell
// when enabled. No sound files ship with the binary: the external player is
// only used when cfg.Dir holds at least one of DefaultSounds.
func New(cfg config.Sound, bell io.Writer, log *zap.Logger) Player {
	if !cfg.Enabled {
		return Nop{}
	}
	if log == nil {
		log = zap.NewNop()
	}

	var chain Fallback
	path, args := resolveCommand(cfg)
	switch {
	case path == "":
		log.Debug("no audio player found")
	case !hasSounds(cfg.Dir, DefaultSounds):
		log.Info("no sound files installed, audio cues disabled",
			zap.String("dir", cfg.Dir))
	default:
		chain = append(chain, &Command{
			Path:   path,
			Args:   args,
			Dir:    cfg.Dir,
			Sounds: DefaultSounds,
			Log:    log,
		})
	}
	if cfg.Bell && bell != nil {
		chain = append(chain, Bell{W: bell})
	}

	switch len(chain) {
	case 0:
		return Nop{}
	case 1:
		return chain[0]
	}
	return chain
}

func hasSounds(dir string, sounds map[Cue]string) bool {
	if dir == "" {
		return false
	}
	for _, name := range sounds {
		if _, err := os.Stat(filepath.Join(dir, name)); err == nil {
			return true
		}
	}
	return false
}

func resolveCommand(cfg config.Sound) (string, []string) {
	if cfg.Command != "" {
		return cfg.Command, cfg.Args
	}
	for _, kp := range knownPlayers {
		if path, err := exec.LookPath(kp.name); err == nil {
			return path, kp.args
		}
	}
	return "", nil
}
