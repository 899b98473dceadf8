// Package process finds, stops, starts and watches the Riot Client.
package process

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"github.com/iksnae/valswitch/internal"
)

// LaunchArgs are passed to the Riot Client to start VALORANT on live
var LaunchArgs = []string{"--launch-product=valorant", "--launch-patchline=live"}

// manifestKeys are the RiotClientInstalls.json entries checked, in order
var manifestKeys = []string{"rc_default", "rc_live", "rc_beta"}

// Controller manages the Riot Client processes
type Controller interface {
	FindExecutable() (string, error)
	CloseAll(ctx context.Context) error
	Start(path string, args []string) error
	IsTargetRunning(ctx context.Context) bool
}

// Runner runs an OS command and returns its combined output
type Runner interface {
	Run(ctx context.Context, name string, args ...string) ([]byte, error)
}

type execRunner struct{}

func (execRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).CombinedOutput()
}

// Options configures a CommandController
type Options struct {
	// ManifestPath overrides the RiotClientInstalls.json location
	ManifestPath string
	// SettleDelay is how long CloseAll waits for handles to be released
	SettleDelay time.Duration
	// GOOS selects the platform strategy; empty means runtime.GOOS
	GOOS   string
	Runner Runner
}

// CommandController implements Controller with the platform's process tools
type CommandController struct {
	p            platform
	run          Runner
	manifestPath string
	settle       time.Duration
}

// New creates a controller for the current (or requested) platform
func New(opts Options) *CommandController {
	c := &CommandController{
		p:            platformFor(opts.GOOS),
		run:          opts.Runner,
		manifestPath: opts.ManifestPath,
		settle:       opts.SettleDelay,
	}
	if c.run == nil {
		c.run = execRunner{}
	}
	if c.manifestPath == "" {
		c.manifestPath = internal.DefaultManifestPath()
	}
	return c
}

// Platform returns the name of the selected platform strategy
func (c *CommandController) Platform() string {
	return c.p.name
}

// ManifestPath returns the install manifest consulted by FindExecutable
func (c *CommandController) ManifestPath() string {
	return c.manifestPath
}

// FindExecutable resolves the Riot Client executable from the install manifest
func (c *CommandController) FindExecutable() (string, error) {
	data, err := os.ReadFile(c.manifestPath)
	if err != nil {
		return "", fmt.Errorf("%w: %v", internal.ErrExecutableNotFound, err)
	}

	var manifest map[string]interface{}
	if err := json.Unmarshal(data, &manifest); err != nil {
		return "", fmt.Errorf("%w: %v", internal.ErrExecutableNotFound,
			&internal.ParseError{Source: "manifest", Key: c.manifestPath, Err: err})
	}

	for _, key := range manifestKeys {
		path, ok := manifest[key].(string)
		if !ok || path == "" {
			continue
		}
		path = filepath.FromSlash(path)
		if _, err := os.Stat(path); err == nil {
			internal.LogDebug("Using %s from manifest key %s", path, key)
			return path, nil
		}
		internal.LogDebug("Manifest key %s points to missing %s", key, path)
	}

	return "", fmt.Errorf("%w: no usable entry in %s", internal.ErrExecutableNotFound, c.manifestPath)
}

// CloseAll force-terminates every Riot Client process and waits for the
// settle delay. Processes that are not running are not an error.
func (c *CommandController) CloseAll(ctx context.Context) error {
	var errs []error
	for _, image := range c.p.images {
		name, args := c.p.killCommand(image)
		out, err := c.run.Run(ctx, name, args...)
		if err == nil {
			internal.LogDebug("Terminated %s", image)
			continue
		}
		if code, ok := exitCode(err); ok && c.p.killNotFound(code) {
			continue
		}
		errs = append(errs, fmt.Errorf("%s %s: %w (%s)", name, image, err, truncate(out)))
	}

	if err := sleep(ctx, c.settle); err != nil {
		errs = append(errs, err)
	}
	return errors.Join(errs...)
}

// Start launches path detached from this process with no standard streams
func (c *CommandController) Start(path string, args []string) error {
	cmd := exec.Command(path, args...)
	cmd.Dir = filepath.Dir(path)
	cmd.Stdin = nil
	cmd.Stdout = nil
	cmd.Stderr = nil
	cmd.SysProcAttr = detachedAttr()

	if err := cmd.Start(); err != nil {
		return fmt.Errorf("%w: %v", internal.ErrSpawnFailed, err)
	}
	internal.LogDebug("Started %s (pid %d)", path, cmd.Process.Pid)

	// Reap the child if it exits while we are still alive.
	go func() { _ = cmd.Wait() }()
	return nil
}

// IsTargetRunning reports whether the game process is present.
// Query failures count as not running.
func (c *CommandController) IsTargetRunning(ctx context.Context) bool {
	name, args := c.p.queryCommand(c.p.target)
	out, err := c.run.Run(ctx, name, args...)
	if err != nil {
		internal.LogDebug("Process query %s failed: %v", name, err)
		return false
	}
	return c.p.queryMatch(out, c.p.target)
}

func exitCode(err error) (int, bool) {
	var coder interface{ ExitCode() int }
	if errors.As(err, &coder) {
		return coder.ExitCode(), true
	}
	return 0, false
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func truncate(b []byte) string {
	const limit = 200
	s := strings.TrimSpace(string(b))
	if len(s) > limit {
		s = s[:limit] + "..."
	}
	return s
}
