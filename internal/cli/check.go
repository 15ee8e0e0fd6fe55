package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/matzehuels/reqcheck/pkg/check"
	"github.com/matzehuels/reqcheck/pkg/errors"
	"github.com/matzehuels/reqcheck/pkg/manifest"
	"github.com/matzehuels/reqcheck/pkg/observability"
	"github.com/matzehuels/reqcheck/pkg/registry/pypi"
)

// defaultManifest is the fallback input when nothing is piped and no
// --files argument is given.
const defaultManifest = "requirements.txt"

const defaultPythonHelp = check.DefaultPythonVersion

// checkOptions holds the command-line flags for the root check run.
type checkOptions struct {
	files   []string // manifests to check; empty means stdin-or-default
	python  string   // target interpreter version
	strict  bool     // abort on the first warning or error
	refresh bool     // bypass the response cache
	noCache bool     // disable the response cache
}

func defaultCheckOptions() *checkOptions {
	return &checkOptions{}
}

// source is one manifest input: a named reader, either a file or stdin.
type source struct {
	name string
	open func() (io.ReadCloser, error)
}

// runCheck is the root command: parse each manifest, look up every pin on
// the index, and report verdicts.
func (c *CLI) runCheck(cmd *cobra.Command, opts *checkOptions) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	cfg, err := c.loadConfig()
	if err != nil {
		return err
	}

	pythonArg := opts.python
	if pythonArg == "" {
		pythonArg = cfg.Python
	}
	if pythonArg == "" {
		pythonArg = check.DefaultPythonVersion
	}
	target, err := check.ParseTarget(pythonArg)
	if err != nil {
		return err
	}

	sources, err := resolveSources(opts.files)
	if err != nil {
		return err
	}

	backend := c.newCache(ctx, cfg, opts.noCache)
	defer backend.Close()

	client := pypi.NewClient(cfg.IndexURL, backend, cfg.Cache.TTL.Duration)
	checker := &check.Checker{
		Index:  &pypiIndex{client: client, refresh: opts.refresh},
		Strict: opts.strict,
	}

	verbose := logger.GetLevel() <= log.DebugLevel
	if verbose {
		c.registerHooks()
	}
	printInfo("Checking dependencies for compatibility with Python %s", target.Version)

	for _, src := range sources {
		fmt.Println()
		printFileHeader(src.name)

		entries, err := c.parseSource(src, opts.strict)
		if err != nil {
			return err
		}
		observability.Check().OnFileStart(ctx, src.name, len(entries))
		logger.Debugf("Parsed %d pinned packages from %s", len(entries), src.name)

		if len(entries) == 0 {
			printDetail("no pinned packages")
			continue
		}

		prog := newProgress(logger)
		spin := newSpinner(ctx, fmt.Sprintf("Checking %d packages against the index", len(entries)))
		spin.Start()
		results, checkErr := checker.CheckAll(ctx, entries, target)
		spin.Stop()

		bad := 0
		for _, res := range results {
			printVerdict(res, target, verbose)
			if res.Status != check.StatusCompatible {
				bad++
			}
		}
		if checkErr != nil {
			return checkErr
		}

		if bad == 0 {
			printSuccess("%d packages compatible with Python %s", len(results), target.Version)
		} else {
			printDetail("%d of %d packages need attention", bad, len(results))
		}
		prog.done(fmt.Sprintf("Checked %d packages", len(results)))
	}

	return nil
}

// parseSource parses one manifest, routing lenient-mode warnings to the
// terminal.
func (c *CLI) parseSource(src source, strict bool) ([]manifest.Entry, error) {
	r, err := src.open()
	if err != nil {
		return nil, err
	}
	defer r.Close()

	return manifest.Parse(r, manifest.Options{
		Strict: strict,
		Warn: func(format string, args ...any) {
			printWarning(format, args...)
		},
	})
}

// resolveSources turns the --files flag into manifest sources. With no
// flag, piped stdin wins; otherwise the default requirements.txt must
// exist in the working directory.
func resolveSources(files []string) ([]source, error) {
	if len(files) > 0 {
		sources := make([]source, 0, len(files))
		for _, path := range files {
			path := path
			sources = append(sources, source{
				name: path,
				open: func() (io.ReadCloser, error) { return openManifest(path) },
			})
		}
		return sources, nil
	}

	if !isatty.IsTerminal(os.Stdin.Fd()) && !isatty.IsCygwinTerminal(os.Stdin.Fd()) {
		return []source{{
			name: "stdin",
			open: func() (io.ReadCloser, error) { return io.NopCloser(os.Stdin), nil },
		}}, nil
	}

	if _, err := os.Stat(defaultManifest); err != nil {
		return nil, errors.New(errors.ErrCodeFileNotFound, "default file %s not found", defaultManifest)
	}
	return []source{{
		name: defaultManifest,
		open: func() (io.ReadCloser, error) { return openManifest(defaultManifest) },
	}}, nil
}

func openManifest(path string) (io.ReadCloser, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "manifest %s not found", path)
		}
		return nil, err
	}
	return f, nil
}

// ExitCode maps an Execute error to the process exit code: usage problems
// (missing default input, bad version argument) exit 2, strict-mode and
// other failures exit 1.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	switch errors.GetCode(err) {
	case errors.ErrCodeFileNotFound, errors.ErrCodeInvalidVersion:
		return 2
	default:
		return 1
	}
}
