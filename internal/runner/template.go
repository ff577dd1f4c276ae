package runner

import (
	"fmt"
	"strings"
)

// Placeholder is the token in a command template that is replaced with
// the finished branch name.
const Placeholder = "{branch_name}"

// SplitTemplate splits a command template into an argument vector.
// Quoting follows POSIX shell word-splitting rules closely enough for
// command templates: single quotes are literal, double quotes allow
// backslash escapes, unquoted backslashes escape the next rune.
// No expansion of any kind is performed.
func SplitTemplate(template string) ([]string, error) {
	var (
		argv    []string
		current strings.Builder
		inWord  bool
		quote   rune // 0, '\'' or '"'
		escaped bool
	)

	for _, r := range template {
		switch {
		case escaped:
			current.WriteRune(r)
			escaped = false
		case r == '\\' && quote != '\'':
			escaped = true
			inWord = true
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				current.WriteRune(r)
			}
		case r == '\'' || r == '"':
			quote = r
			inWord = true
		case r == ' ' || r == '\t' || r == '\n':
			if inWord {
				argv = append(argv, current.String())
				current.Reset()
				inWord = false
			}
		default:
			current.WriteRune(r)
			inWord = true
		}
	}

	if escaped {
		return nil, fmt.Errorf("command template ends with an unfinished escape: %q", template)
	}
	if quote != 0 {
		return nil, fmt.Errorf("command template has an unterminated %c-quote: %q", quote, template)
	}
	if inWord {
		argv = append(argv, current.String())
	}
	if len(argv) == 0 {
		return nil, fmt.Errorf("command template is empty")
	}
	return argv, nil
}

// BuildArgv resolves a command template into the argument vector for a
// given branch name. The placeholder is substituted after splitting, so
// the branch name always lands inside a single argument regardless of
// its content.
//
// Templates resolving to a "branch"-style git subcommand get any
// --track flag (and its value) stripped, since tracking setup only
// applies to switch/checkout-style invocations. The strip is reported
// through warn so the user can fix their template.
func BuildArgv(template, branchName string, warn func(format string, args ...any)) ([]string, error) {
	argv, err := SplitTemplate(template)
	if err != nil {
		return nil, err
	}
	for i, arg := range argv {
		argv[i] = strings.ReplaceAll(arg, Placeholder, branchName)
	}
	if isBranchSubcommand(argv) {
		argv = stripTrackFlag(argv, warn)
	}
	return argv, nil
}

// isBranchSubcommand reports whether argv invokes `git branch` rather
// than a switch/checkout-style command.
func isBranchSubcommand(argv []string) bool {
	if len(argv) < 2 || argv[0] != "git" {
		return false
	}
	for i := 1; i < len(argv); i++ {
		arg := argv[i]
		switch arg {
		case "-C", "-c", "--git-dir", "--work-tree":
			i++ // global flag whose value is the next argument
			continue
		}
		if strings.HasPrefix(arg, "-") {
			continue // other global git flags before the subcommand
		}
		return arg == "branch"
	}
	return false
}

func stripTrackFlag(argv []string, warn func(format string, args ...any)) []string {
	out := argv[:0:0]
	for i := 0; i < len(argv); i++ {
		arg := argv[i]
		if arg == "--track" || arg == "-t" {
			if i+1 < len(argv) && !strings.HasPrefix(argv[i+1], "-") {
				i++ // skip the flag's value
			}
			if warn != nil {
				warn("dropping %s from branch creation command: it does not apply to 'git branch'", arg)
			}
			continue
		}
		if strings.HasPrefix(arg, "--track=") {
			if warn != nil {
				warn("dropping %s from branch creation command: it does not apply to 'git branch'", arg)
			}
			continue
		}
		out = append(out, arg)
	}
	return out
}
