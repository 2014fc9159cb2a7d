package tooling

import (
	"strconv"
	"strings"

	"huemcp/internal/domain"
)

// CommandBuilder turns openhue subcommands into full container invocations.
// Output is a pure function of the config and the input: same input, same
// command string.
type CommandBuilder struct {
	cfg domain.Config
}

// NewCommandBuilder creates a CommandBuilder for the given config.
func NewCommandBuilder(cfg domain.Config) *CommandBuilder {
	return &CommandBuilder{cfg: cfg}
}

// Wrap prefixes an openhue subcommand with the container-run invocation:
// the CLI image is run with the host config directory mounted at the path
// the CLI expects, and the container is removed after exit. No TTY or
// interactive flags; those are only needed for the CLI's own setup flow.
func (b *CommandBuilder) Wrap(subcommand string) string {
	mount := quoteArg(b.cfg.ConfigDir + ":" + b.cfg.MountPath)
	return b.cfg.Runtime + " run --rm -v " + mount + " " + b.cfg.Image + " " + subcommand
}

// quoteArg wraps a free-form value in double quotes, escaping the characters
// the shell would otherwise interpret inside them. Room, light, and scene
// names are natural-language strings and routinely contain spaces; every
// free-form value is quoted unconditionally so it survives as one argument.
func quoteArg(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '"', '\\', '$', '`':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	b.WriteByte('"')
	return b.String()
}

// formatNumber renders a JSON number without a trailing fraction when it is
// integral, so brightness 50 becomes "50" rather than "50.000000".
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
