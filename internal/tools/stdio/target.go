package stdio

import (
	"errors"
	"fmt"
	"os/exec"
	"path/filepath"
	"sort"
	"strings"

	"github.com/windlant/mcp-client/internal/errorsx"
)

// ErrUnsupportedTarget is returned for targets with no launch strategy.
var ErrUnsupportedTarget = errors.New("unsupported server target")

const stdioSchemePrefix = "stdio://"

// Launcher runs a server script through an interpreter: Command, then
// Args, then the script path.
type Launcher struct {
	Command string
	Args    []string
}

// DefaultLaunchers maps script extensions (without the dot) to interpreters.
func DefaultLaunchers() map[string]Launcher {
	return map[string]Launcher{
		"py": {Command: "python"},
		"js": {Command: "node"},
	}
}

// IsCommandTarget reports whether target runs an arbitrary command line
// rather than a script through a launcher.
func IsCommandTarget(target string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(target)), stdioSchemePrefix)
}

// Resolve turns a target into the command that starts the server.
// "stdio://<command line>" runs the command line as given; any other
// target is a script path dispatched on its extension.
func Resolve(target string, launchers map[string]Launcher) (*exec.Cmd, error) {
	target = strings.TrimSpace(target)
	if target == "" {
		return nil, unsupported(fmt.Errorf("%w: empty target", ErrUnsupportedTarget))
	}

	if IsCommandTarget(target) {
		parts := strings.Fields(target[len(stdioSchemePrefix):])
		if len(parts) == 0 {
			return nil, unsupported(fmt.Errorf("%w: stdio command is empty", ErrUnsupportedTarget))
		}
		// #nosec G204 -- the command comes from the operator's own config or prompt
		return exec.Command(parts[0], parts[1:]...), nil
	}

	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(target), "."))
	l, ok := launchers[ext]
	if !ok || ext == "" {
		return nil, unsupported(fmt.Errorf("%w: %q (supported: %s)", ErrUnsupportedTarget, target, supported(launchers)))
	}
	args := append(append([]string{}, l.Args...), target)
	// #nosec G204 -- interpreter comes from config, script path from the operator
	return exec.Command(l.Command, args...), nil
}

func supported(launchers map[string]Launcher) string {
	exts := make([]string, 0, len(launchers)+1)
	for ext := range launchers {
		exts = append(exts, "."+ext)
	}
	sort.Strings(exts)
	return strings.Join(append(exts, stdioSchemePrefix+"<command>"), ", ")
}

func unsupported(err error) error {
	return errorsx.Wrap(err, errorsx.ReasonUnsupportedTarget)
}
