package errors

import (
	"fmt"
	"strings"
)

// FormatUserError returns a user-friendly error message with actionable guidance.
// It examines the error chain and provides context-appropriate help text.
func FormatUserError(err error) string {
	if err == nil {
		return ""
	}

	var configErr *ConfigError
	if As(err, &configErr) {
		return formatConfigError(configErr)
	}

	var rootErr *RootError
	if As(err, &rootErr) {
		return formatRootError(rootErr)
	}

	// Default: return the error message as-is
	return err.Error()
}

// formatConfigError formats a ConfigError with actionable guidance.
func formatConfigError(err *ConfigError) string {
	var b strings.Builder

	if err.Field != "" {
		fmt.Fprintf(&b, "Configuration error in '%s': %s\n", err.Field, err.Message)
	} else {
		fmt.Fprintf(&b, "Configuration error: %s\n", err.Message)
	}

	b.WriteString("\nTo fix this:\n")
	b.WriteString("  • Check your config file: ~/.config/hop/config.toml\n")
	b.WriteString("  • Run 'hop config init --force' to restore the defaults\n")

	if err.Cause != nil {
		fmt.Fprintf(&b, "\nUnderlying error: %v", err.Cause)
	}

	return b.String()
}

// formatRootError formats a RootError with actionable guidance.
func formatRootError(err *RootError) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Cannot scan %q: %s\n", err.Root, err.Message)

	b.WriteString("\nTo fix this:\n")
	b.WriteString("  • Set discovery.root in ~/.config/hop/config.toml to an existing directory\n")
	b.WriteString("  • Or pass --root / set HOP_DISCOVERY_ROOT for a single invocation\n")

	if err.Cause != nil {
		fmt.Fprintf(&b, "\nUnderlying error: %v", err.Cause)
	}

	return b.String()
}
