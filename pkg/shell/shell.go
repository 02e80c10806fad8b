// Package shell generates the shell side of hop: a wrapper function that
// changes directory to whatever `hop resolve` prints, and completion glue
// that feeds `hop complete` output to the shell's completion system.
package shell

import (
	"strings"

	"github.com/cockroachdb/errors"

	"thoreinstein.com/hop/pkg/complete"
)

// Supported lists the shells hop can integrate with.
var Supported = []string{"bash", "zsh", "fish"}

// Options controls the generated snippet.
type Options struct {
	Function string // Name of the cd wrapper, e.g. "rcd"
	Binary   string // Command used to call hop
}

// IsSupported reports whether shellType has an integration snippet.
func IsSupported(shellType string) bool {
	for _, s := range Supported {
		if s == shellType {
			return true
		}
	}
	return false
}

// Snippet returns the init script for shellType.
//
// The wrapper exits with hop's status when resolution fails and leaves the
// directory unchanged. Completion helpers restore the caller's $? before
// returning.
func Snippet(shellType string, opts Options) (string, error) {
	var tmpl string
	switch shellType {
	case "zsh":
		tmpl = zshSnippet
	case "bash":
		tmpl = bashSnippet
	case "fish":
		tmpl = fishSnippet
	default:
		return "", errors.Newf("unsupported shell %q: must be one of: %s", shellType, strings.Join(Supported, ", "))
	}

	fn := opts.Function
	if fn == "" {
		fn = "rcd"
	}
	bin := opts.Binary
	if bin == "" {
		bin = "hop"
	}

	r := strings.NewReplacer("__FN__", fn, "__HOP__", bin)
	return r.Replace(tmpl), nil
}

// FormatCompletions renders suggestions as the lines the shell snippet
// expects from `hop complete --shell <shellType>`.
//
// bash and zsh insert the text verbatim, so they get the shell-quoted form.
// fish escapes whatever it inserts and gets the plain path. The order of
// suggestions is kept; the snippets tell each shell not to re-sort.
func FormatCompletions(shellType string, suggestions []complete.Suggestion) []string {
	lines := make([]string, 0, len(suggestions))
	for _, s := range suggestions {
		switch shellType {
		case "zsh":
			lines = append(lines, s.Text+"\t"+s.Path+"  -- "+s.Tooltip)
		case "fish":
			lines = append(lines, s.Path+"\t"+s.Label+" ("+s.Tooltip+")")
		default:
			lines = append(lines, s.Text)
		}
	}
	return lines
}

const zshSnippet = `# hop shell integration (zsh)
__FN__() {
  local dir
  dir="$(command __HOP__ resolve -- "$@")" || return $?
  builtin cd -- "$dir"
}

_hop___FN__() {
  local ret=$?
  local -a texts descs
  local line
  while IFS= read -r line; do
    [[ -z "$line" ]] && continue
    texts+=("${line%%$'\t'*}")
    descs+=("${line#*$'\t'}")
  done < <(command __HOP__ complete --shell zsh -- "${PREFIX}${SUFFIX}" 2>/dev/null)
  if (( ${#texts} )); then
    # -U: matches contain the word anywhere, -Q: already quoted,
    # -V: keep hop's order
    (( ${#texts} > 1 )) && compstate[insert]=menu
    compadd -U -Q -V repositories -l -d descs -- "${texts[@]}"
  fi
  return $ret
}

if (( $+functions[compdef] )); then
  compdef _hop___FN__ __FN__
fi
`

const bashSnippet = `# hop shell integration (bash)
__FN__() {
  local dir
  dir="$(command __HOP__ resolve -- "$@")" || return $?
  builtin cd -- "$dir"
}

_hop___FN__() {
  local ret=$?
  local cur="${COMP_WORDS[COMP_CWORD]}"
  local line
  COMPREPLY=()
  while IFS= read -r line; do
    [[ -n "$line" ]] && COMPREPLY+=("$line")
  done < <(command __HOP__ complete --shell bash -- "$cur" 2>/dev/null)
  return $ret
}

# nosort needs bash 4.4
complete -o nospace -o nosort -F _hop___FN__ __FN__ 2>/dev/null ||
  complete -o nospace -F _hop___FN__ __FN__
`

const fishSnippet = `# hop shell integration (fish)
function __FN__ --description 'Change to a repository'
    set -l dir (command __HOP__ resolve -- $argv)
    or return $status
    builtin cd -- $dir
end

complete -c __FN__ -f -k -a '(command __HOP__ complete --shell fish -- (commandline -ct) 2>/dev/null)'
`
