package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"os/user"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"mkbranch/internal/branch"
	"mkbranch/internal/config"
	"mkbranch/internal/git"
	"mkbranch/internal/log"
	"mkbranch/internal/output"
	"mkbranch/internal/runner"
	"mkbranch/internal/ui"
)

var debug bool

// exitCodeError carries the external command's exit code through to
// the process exit status.
type exitCodeError struct {
	code int
	msg  string
}

func (e *exitCodeError) Error() string { return e.msg }

// rootCmd opens the branch creation dialog.
var rootCmd = &cobra.Command{
	Use:   "mkbranch [dir]",
	Short: "Create a conventional git branch interactively",
	Long: `mkbranch opens an interactive dialog for composing a git branch name of
the form username/type/issue-id/description. Each field is normalized
and validated while you type; the branch is created once all fields
pass.

The working directory is taken from GIT_WORK_TREE, the positional
argument, or the current directory, in that order.`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context(), args)
	},
}

// Execute runs the root command and maps errors to exit codes.
func Execute() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	logger := log.New(os.Stderr, debug)
	ctx = log.WithLogger(ctx, logger)
	ctx = output.WithPrinter(ctx, os.Stdout)

	rootCmd.SetContext(ctx)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		var exitErr *exitCodeError
		if errors.As(err, &exitErr) {
			os.Exit(exitErr.code)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging")

	rootCmd.Version = versionString()
	rootCmd.SetVersionTemplate("{{.Version}}\n")
}

func run(ctx context.Context, args []string) error {
	// Flags are parsed by now; rebuild the logger with the debug flag.
	logger := log.New(os.Stderr, debug)
	ctx = log.WithLogger(ctx, logger)

	workDir, fromArg, err := resolveWorkDir(args)
	if err != nil {
		return err
	}
	logger.Debug("resolved working directory", "dir", workDir)

	env := os.Environ()
	if fromArg {
		// Subcommands see the same work tree the dialog was opened for.
		env = append(env, "GIT_WORK_TREE="+workDir)
	}

	cfg, err := loadConfig(ctx, workDir)
	if err != nil {
		return err
	}

	rules, err := branch.NewRules(cfg.RegexOverrides(), cfg.BranchTypes, func(field branch.Field, pattern string, err error) {
		logger.Warnf("invalid %s pattern %q: %v; using default", field, pattern, err)
	})
	if err != nil {
		return err
	}

	currentBranch, err := checkEnvironment(ctx, workDir, cfg)
	if err != nil {
		return err
	}

	if !isTerminal(os.Stderr) {
		return fmt.Errorf("mkbranch requires an interactive terminal")
	}

	opts := ui.Options{
		Config: cfg,
		Rules:  rules,
		Runner: runner.New(workDir, env),
	}
	prefill(&opts, cfg, rules, currentBranch)

	result, err := ui.Run(ctx, opts)
	if err != nil {
		return err
	}

	switch result.Outcome {
	case ui.OutcomeCreated:
		output.FromContext(ctx).Println(result.BranchName)
		return nil
	case ui.OutcomeFailed:
		code := result.Command.ExitCode
		if code == 0 {
			code = 1
		}
		return &exitCodeError{code: code, msg: result.Command.Err.Error()}
	default:
		// Cancel and timeout both exit cleanly.
		return nil
	}
}

// resolveWorkDir picks the repository directory: GIT_WORK_TREE wins,
// then the positional argument, then the current directory. fromArg
// reports that the directory came from the positional argument.
func resolveWorkDir(args []string) (dir string, fromArg bool, err error) {
	dir = os.Getenv("GIT_WORK_TREE")
	if dir == "" && len(args) > 0 {
		dir = args[0]
		fromArg = true
	}
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return "", false, fmt.Errorf("failed to get working directory: %w", err)
		}
		return cwd, false, nil
	}

	info, err := os.Stat(dir)
	if err != nil {
		return "", false, fmt.Errorf("invalid working directory %q: %w", dir, err)
	}
	if !info.IsDir() {
		return "", false, fmt.Errorf("invalid working directory %q: not a directory", dir)
	}
	return dir, fromArg, nil
}

// loadConfig merges the global config with a per-project one found by
// walking up from the working directory.
func loadConfig(ctx context.Context, workDir string) (*config.Config, error) {
	global, err := config.Load()
	if err != nil {
		return nil, err
	}
	local, err := config.LoadLocal(workDir)
	if err != nil {
		return nil, err
	}
	if local != nil {
		log.FromContext(ctx).Debug("using project config", "dir", workDir)
	}
	return config.MergeLocal(&global, local), nil
}

// checkEnvironment runs the fatal pre-dialog checks and returns the
// current branch name.
func checkEnvironment(ctx context.Context, workDir string, cfg *config.Config) (string, error) {
	if err := git.CheckGit(); err != nil {
		return "", err
	}
	if !git.IsInsideRepo(ctx, workDir) {
		return "", fmt.Errorf("%s is not inside a git repository", workDir)
	}

	current, err := git.CurrentBranch(ctx, workDir)
	if err != nil {
		return "", err
	}

	if !cfg.AllowDirty {
		dirty, err := git.HasUncommittedChanges(ctx, workDir)
		if err != nil {
			return "", err
		}
		if dirty {
			return "", fmt.Errorf("repository has uncommitted changes (set allow_dirty to override)")
		}
	}

	forbidden, err := cfg.ForbiddenPatterns()
	if err != nil {
		return "", err
	}
	for _, re := range forbidden {
		if re.MatchString(current) {
			return "", fmt.Errorf("branching from %q is not allowed (forbidden_source_branches)", current)
		}
	}

	return current, nil
}

// prefill seeds the dialog fields from config, the OS user, and
// whatever the current branch name reveals.
func prefill(opts *ui.Options, cfg *config.Config, rules *branch.Rules, currentBranch string) {
	opts.Username = cfg.Username
	if opts.Username == "" {
		if u, err := user.Current(); err == nil {
			opts.Username, _ = rules.Normalize(branch.FieldUsername, u.Username, 0)
		}
	}

	jira, typ := rules.Scan(currentBranch)
	if jira == "" {
		jira = cfg.JiraPrefix
	}
	opts.Jira = jira
	opts.Type = typ
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
