package serve

import (
	"context"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"time"

	"github.com/readable-research/readable/internal/cmd/base"
	"github.com/readable-research/readable/internal/cmd/commands/server"
	"github.com/readable-research/readable/internal/config"
	"github.com/readable-research/readable/internal/workspace"
)

type Command struct {
	*base.Command

	// Inherit all server command fields
	serverCmd *server.Command

	FlagBrowser    bool
	FlagSaveConfig string
}

func (c *Command) Synopsis() string {
	return "Run the server (zero-config simplified mode or traditional server)"
}

func (c *Command) Help() string {
	return `Usage: readable serve [path]
       readable serve -config=config.hcl

  Run the Readable Research API in simplified mode (zero-config) or
  traditional server mode.

  Simplified Mode (Zero-Config):
    ./readable                  - Serves papers from ./papers/
    ./readable /path/to/papers  - Serves papers from the specified directory

  Traditional Mode:
    ./readable serve -config=config.hcl  - Uses explicit config file

  In simplified mode, the server will:
    - Create the papers directory with an example paper if it does not exist
    - Listen on ` + config.DefaultAddr + `
    - Allow cross-origin requests from the frontend at http://localhost:3000
    - Optionally open the API in your browser (-browser)
    - Optionally write the generated configuration to a file (-save-config)

  -browser and -save-config also apply in traditional mode; -save-config then
  writes the loaded configuration with defaults filled in.
` + c.Flags().Help()
}

func (c *Command) Flags() *base.FlagSet {
	// Use server command's flags
	if c.serverCmd == nil {
		c.serverCmd = &server.Command{Command: c.Command}
	}
	f := c.serverCmd.Flags()

	// Add simplified mode specific flags
	f.BoolVar(
		&c.FlagBrowser, "browser", false,
		"Open the API in the default browser once it is ready",
	)
	f.StringVar(
		&c.FlagSaveConfig, "save-config", "",
		"Write the effective configuration to this .hcl file",
	)

	return f
}

func (c *Command) Run(args []string) int {
	// Initialize server command
	c.serverCmd = &server.Command{Command: c.Command}

	f := c.Flags()
	if err := f.Parse(args); err != nil {
		c.UI.Error(fmt.Sprintf("error parsing flags: %v", err))
		return 1
	}

	var (
		cfg *config.Config
		err error
	)
	if configPath := f.FlagSet.Lookup("config").Value.String(); configPath != "" {
		// Traditional mode. Flags are already parsed, so the config is loaded
		// here instead of handing args back to the server command, which does
		// not know -browser or -save-config.
		if f.NArg() > 0 {
			c.UI.Error("a papers directory argument cannot be combined with -config")
			return 1
		}
		c.UI.Info("Running in traditional server mode (config file specified)")
		cfg, err = config.NewConfig(configPath)
		if err != nil {
			c.UI.Error(fmt.Sprintf("error parsing config file: %v", err))
			return 1
		}
	} else {
		cfg, err = c.simplifiedConfig(f.Args())
		if err != nil {
			c.UI.Error(err.Error())
			return 1
		}
	}

	if c.FlagSaveConfig != "" {
		if err := config.WriteConfig(cfg, c.FlagSaveConfig); err != nil {
			c.UI.Error(err.Error())
			return 1
		}
		c.UI.Info(fmt.Sprintf("Wrote configuration to %s", c.FlagSaveConfig))
	}

	// Flags parsed into serverCmd (for example -addr) are applied by
	// RunWithConfig, so compute the URL from the same override.
	addr := cfg.Server.Addr
	if a := f.FlagSet.Lookup("addr"); a != nil && a.Value.String() != "" {
		addr = a.Value.String()
	}
	serverURL := localURL(addr)
	printBanner(c, cfg.Papers.Dir, serverURL)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	if c.FlagBrowser {
		go func() {
			// Wait for server to be ready (max 10 seconds)
			if err := waitForServer(ctx, serverURL, 10*time.Second); err != nil {
				if ctx.Err() != nil {
					// Server already exited.
					return
				}
				c.UI.Warn(fmt.Sprintf("Server not ready, skipping browser launch: %v", err))
				return
			}

			if err := openBrowser(serverURL); err != nil {
				c.UI.Warn(fmt.Sprintf("Could not open browser: %v", err))
			}
		}()
	}

	return c.serverCmd.RunWithConfig(cfg)
}

// simplifiedConfig resolves the papers directory from args (default
// ./papers), initializes it if missing and returns a generated config.
func (c *Command) simplifiedConfig(args []string) (*config.Config, error) {
	var papersPath string
	if len(args) > 0 {
		papersPath = args[0]
	} else {
		cwd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("error getting current directory: %w", err)
		}
		papersPath = filepath.Join(cwd, config.DefaultPapersDir)
	}

	absPath, err := filepath.Abs(papersPath)
	if err != nil {
		return nil, fmt.Errorf("error resolving papers path: %w", err)
	}

	if _, err := os.Stat(absPath); os.IsNotExist(err) {
		c.UI.Info(fmt.Sprintf("Initializing new papers directory at %s", absPath))
		if err := workspace.InitializePapersDir(absPath); err != nil {
			return nil, fmt.Errorf("error initializing papers directory: %w", err)
		}
	} else {
		c.UI.Info(fmt.Sprintf("Using existing papers directory at %s", absPath))
	}

	return config.GenerateSimplifiedConfig(absPath), nil
}

// localURL returns a URL a local browser can use to reach a server listening
// on addr.
func localURL(addr string) string {
	host, port, err := net.SplitHostPort(addr)
	if err != nil {
		return "http://" + addr
	}
	switch host {
	case "", "0.0.0.0", "::":
		host = "localhost"
	}
	return "http://" + net.JoinHostPort(host, port)
}

func printBanner(c *Command, papersDir, serverURL string) {
	c.UI.Output("")
	c.UI.Output("Readable Research API (simplified mode)")
	c.UI.Output(fmt.Sprintf("  Papers:  %s", papersDir))
	c.UI.Output(fmt.Sprintf("  API:     %s/api/papers/{id}", serverURL))
	c.UI.Output(fmt.Sprintf("  Health:  %s/api/health", serverURL))
	c.UI.Output("")
}
