package operator

import (
	"context"
	"flag"
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/readable-research/readable/internal/cmd/base"
	"github.com/readable-research/readable/internal/config"
	"github.com/readable-research/readable/pkg/papers"
)

type CheckPapersCommand struct {
	*base.Command

	flagConfig    string
	flagPapersDir string
	flagVerbose   bool
}

func (c *CheckPapersCommand) Synopsis() string {
	return "Check that every paper can be served"
}

func (c *CheckPapersCommand) Help() string {
	return `Usage: readable operator check-papers [-config=config.hcl | -papers-dir=dir]

  This command looks up every <id>.json document in the papers directory
  exactly as the API would and reports each one that would fail, such as
  documents that are not well-formed JSON or cannot be read. It exits with
  status 1 if any document fails.` +
		c.Flags().Help()
}

func (c *CheckPapersCommand) Flags() *base.FlagSet {
	f := base.NewFlagSet(
		flag.NewFlagSet("check-papers", flag.ContinueOnError))

	f.StringVar(
		&c.flagConfig, "config", "",
		"Path to config file. The papers directory is read from it.",
	)
	f.StringVar(
		&c.flagPapersDir, "papers-dir", "",
		"Papers directory to check. Overrides the config file.",
	)
	f.BoolVar(
		&c.flagVerbose, "verbose", false,
		"Print every document checked.",
	)

	return f
}

func (c *CheckPapersCommand) Run(args []string) int {
	logger, ui := c.Log, c.UI

	// Parse flags.
	flags := c.Flags()
	if err := flags.Parse(args); err != nil {
		ui.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	// Resolve the papers directory.
	dir := c.flagPapersDir
	if dir == "" {
		if c.flagConfig == "" {
			ui.Error("one of the config or papers-dir flags is required")
			return 1
		}
		cfg, err := config.NewConfig(c.flagConfig)
		if err != nil {
			ui.Error(fmt.Sprintf("error parsing config file: %v", err))
			return 1
		}
		dir = cfg.Papers.Dir
	}

	store, err := papers.OpenDir(dir)
	if err != nil {
		ui.Error(fmt.Sprintf("error opening papers directory: %v", err))
		return 1
	}
	logger.Info("checking papers", "papers_dir", store.Root())

	checked, failures, err := checkPapers(context.Background(), store, func(id string) {
		if c.flagVerbose {
			ui.Output(fmt.Sprintf("ok: %s", id))
		}
	})
	if err != nil {
		ui.Error(err.Error())
		return 1
	}

	if failures.ErrorOrNil() != nil {
		ui.Error(failures.Error())
		ui.Error(fmt.Sprintf("Checked %d papers in %s: %d failed",
			checked, store.Root(), failures.Len()))
		return 1
	}

	ui.Info(fmt.Sprintf("Checked %d papers in %s: all ok", checked, store.Root()))
	return 0
}

// checkPapers looks up every paper in store and returns how many were
// checked along with one error per document that failed. failures is nil
// when every document is fine.
func checkPapers(
	ctx context.Context, store *papers.Store, onOK func(id string),
) (checked int, failures *multierror.Error, err error) {
	ids, err := store.List(ctx)
	if err != nil {
		return 0, nil, err
	}

	for _, id := range ids {
		if _, err := store.Get(ctx, id); err != nil {
			failures = multierror.Append(failures, err)
			continue
		}
		if onOK != nil {
			onOK(id)
		}
	}

	return len(ids), failures, nil
}
