// Package shell runs external commands such as the package manager verification.
package shell

import (
	"context"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"go.trai.ch/prunelock/internal/core/domain"
	"go.trai.ch/zerr"
)

// allowListedEnvVars are inherited by commands as is.
var allowListedEnvVars = map[string]struct{}{
	"HOME":        {},
	"TERM":        {},
	"USER":        {},
	"PATH":        {},
	"TMPDIR":      {},
	"HTTP_PROXY":  {},
	"HTTPS_PROXY": {},
	"NO_PROXY":    {},
}

// allowListedEnvPrefixes select package manager settings.
var allowListedEnvPrefixes = []string{"npm_config_", "NPM_CONFIG_"}

// Executor implements ports.Executor using os/exec.
type Executor struct {
	environ func() []string
}

// NewExecutor creates a new Executor inheriting a filtered process environment.
func NewExecutor() *Executor {
	return &Executor{environ: os.Environ}
}

// Execute runs command in dir and waits for it to complete.
func (e *Executor) Execute(ctx context.Context, dir string, command []string, stdout, stderr io.Writer) error {
	if len(command) == 0 || command[0] == "" {
		return domain.ErrEmptyVerifyCommand
	}

	env := filterEnvironment(e.environ())

	name := command[0]
	executable := name
	if !filepath.IsAbs(name) {
		if lp, err := lookPath(name, env); err == nil {
			executable = lp
		}
	}

	cmd := exec.CommandContext(ctx, executable, command[1:]...) //nolint:gosec // user configured command
	cmd.Args[0] = name
	cmd.Dir = dir
	cmd.Env = env
	cmd.Stdout = stdout
	cmd.Stderr = stderr

	if err := cmd.Run(); err != nil {
		exitCode := -1
		if exitErr, ok := err.(*exec.ExitError); ok {
			exitCode = exitErr.ExitCode()
		}
		return zerr.With(zerr.Wrap(err, "command failed"), "exit_code", exitCode)
	}

	return nil
}

func filterEnvironment(sysEnv []string) []string {
	result := make([]string, 0, len(allowListedEnvVars))
	for _, entry := range sysEnv {
		k, _, ok := strings.Cut(entry, "=")
		if !ok {
			continue
		}
		if _, allowed := allowListedEnvVars[k]; allowed || hasAllowedPrefix(k) {
			result = append(result, entry)
		}
	}
	return result
}

func hasAllowedPrefix(key string) bool {
	for _, prefix := range allowListedEnvPrefixes {
		if strings.HasPrefix(key, prefix) {
			return true
		}
	}
	return false
}

// lookPath searches for an executable in the PATH of env rather than of the current process.
func lookPath(file string, env []string) (string, error) {
	var path string
	for _, e := range env {
		if after, ok := strings.CutPrefix(e, "PATH="); ok {
			path = after
			break
		}
	}

	if path == "" {
		return "", exec.ErrNotFound
	}

	for _, dir := range filepath.SplitList(path) {
		if dir == "" {
			// Unix shell semantics: path element "" means "."
			dir = "."
		}
		candidate := filepath.Join(dir, file)
		if err := findExecutable(candidate); err == nil {
			return candidate, nil
		}
	}
	return "", exec.ErrNotFound
}

func findExecutable(file string) error {
	d, err := os.Stat(file)
	if err != nil {
		return err
	}
	if m := d.Mode(); !m.IsDir() && m&0o111 != 0 {
		return nil
	}
	return os.ErrPermission
}
