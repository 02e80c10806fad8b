package shell

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
)

// Marker identifies an installed hop hook inside an rc file.
const Marker = "hop shell integration"

// DetectShell returns the base name of $SHELL.
func DetectShell() string {
	sh := os.Getenv("SHELL")
	if sh == "" {
		return ""
	}
	return filepath.Base(sh)
}

// RCPath returns the file InstallHook writes to for shellType.
func RCPath(shellType string) string {
	home, _ := os.UserHomeDir()
	switch shellType {
	case "zsh":
		return filepath.Join(home, ".zshrc")
	case "bash":
		return filepath.Join(home, ".bashrc")
	case "fish":
		return filepath.Join(home, ".config", "fish", "conf.d", "hop.fish")
	default:
		return ""
	}
}

// HookLine returns the rc-file line that loads the init script at startup.
func HookLine(shellType, binary string) (string, error) {
	if binary == "" {
		binary = "hop"
	}
	switch shellType {
	case "zsh", "bash":
		return fmt.Sprintf(`eval "$(%s init %s)"`, binary, shellType), nil
	case "fish":
		return fmt.Sprintf("%s init fish | source", binary), nil
	default:
		return "", errors.Newf("unsupported shell %q: must be one of: %s", shellType, strings.Join(Supported, ", "))
	}
}

// InstallHook appends the hop hook to rcPath. It reports false when the
// hook was already present and the file was left untouched.
func InstallHook(shellType, rcPath, binary string) (bool, error) {
	line, err := HookLine(shellType, binary)
	if err != nil {
		return false, err
	}

	existing, err := os.ReadFile(rcPath)
	if err != nil && !os.IsNotExist(err) {
		return false, errors.Wrapf(err, "failed to read %s", rcPath)
	}
	if strings.Contains(string(existing), Marker) {
		return false, nil
	}

	if err := os.MkdirAll(filepath.Dir(rcPath), 0o755); err != nil {
		return false, errors.Wrapf(err, "failed to create directory for %s", rcPath)
	}

	f, err := os.OpenFile(rcPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return false, errors.Wrapf(err, "failed to open %s", rcPath)
	}
	defer f.Close()

	if _, err := fmt.Fprintf(f, "\n# %s (%s)\n%s\n", Marker, shellType, line); err != nil {
		return false, errors.Wrapf(err, "failed to write %s", rcPath)
	}

	return true, nil
}
