package main

import (
	"context"
	"fmt"
	"os"
	"strings"

	// Load a local .env before config reads the environment
	_ "github.com/joho/godotenv/autoload"
	"github.com/spf13/cobra"

	"github.com/ecoblock/ecoblock-admin/internal/api"
	"github.com/ecoblock/ecoblock-admin/internal/cli"
	"github.com/ecoblock/ecoblock-admin/internal/config"
	"github.com/ecoblock/ecoblock-admin/internal/history"
	"github.com/ecoblock/ecoblock-admin/internal/i18n"
	"github.com/ecoblock/ecoblock-admin/internal/notify"
	"github.com/ecoblock/ecoblock-admin/internal/session"
	"github.com/ecoblock/ecoblock-admin/internal/tui"
)

var (
	version = "0.1.0"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ecoblock-admin",
	Short: "EcoBlock backoffice console",
	Long: `EcoBlock Admin is a terminal backoffice for the EcoBlock platform:
tangle block explorer, blog publishing, user management and a local
audit log of every API call.

Run without arguments to start the interactive console. Subcommands run
the same operations headlessly for scripting.

Examples:
  ecoblock-admin                       # Start the interactive console
  ecoblock-admin --page blogs          # Open on the blog page after login
  ecoblock-admin login admin -         # Log in, password from stdin
  ecoblock-admin blogs -o json -q sun  # Search posts, JSON output
  ecoblock-admin users -o yaml         # List accounts as YAML`,
	Version: version,
	RunE: func(cmd *cobra.Command, args []string) error {
		deps, err := buildDeps()
		if err != nil {
			return err
		}
		return tui.Run(tui.Deps{
			Settings: deps.settings,
			Store:    deps.store,
			Center:   deps.center,
			Client:   deps.client,
			History:  deps.history,
			Tr:       deps.tr,
			Landing:  parseLandingPage(flagPage),
		})
	},
}

var loginCmd = &cobra.Command{
	Use:   "login <username> <password>",
	Short: "Authenticate and store the session token",
	Long:  "Authenticate against the backend. Pass '-' as the password to read it from stdin.",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := headlessDeps()
		if err != nil {
			return err
		}
		password, err := cli.ReadPassword(args[1])
		if err != nil {
			return err
		}
		return d.Login(context.Background(), args[0], password)
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Drop the stored session token",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := headlessDeps()
		if err != nil {
			return err
		}
		return d.Logout()
	},
}

var blocksCmd = &cobra.Command{
	Use:   "blocks",
	Short: "List tangle blocks",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := headlessDeps()
		if err != nil {
			return err
		}
		return d.Blocks(context.Background(), flagOutput)
	},
}

var blogsCmd = &cobra.Command{
	Use:   "blogs",
	Short: "List blog posts",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := headlessDeps()
		if err != nil {
			return err
		}
		return d.Blogs(context.Background(), flagBlogPage, flagPerPage, flagQuery, flagOutput)
	},
}

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List platform accounts",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := headlessDeps()
		if err != nil {
			return err
		}
		return d.Users(context.Background(), flagOutput)
	},
}

var uploadCmd = &cobra.Command{
	Use:   "upload <file>",
	Short: "Upload a media file and print its URL",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := headlessDeps()
		if err != nil {
			return err
		}
		return d.Upload(context.Background(), args[0], flagOutput)
	},
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the local API audit log",
	RunE: func(cmd *cobra.Command, args []string) error {
		d, err := headlessDeps()
		if err != nil {
			return err
		}
		return d.History(flagLimit, flagOutput)
	},
}

// Global flags
var (
	flagAPI    string
	flagLocale string
	flagPage   string
)

// Headless flags
var (
	flagOutput   string
	flagBlogPage int
	flagPerPage  int
	flagQuery    string
	flagLimit    int
)

func init() {
	rootCmd.PersistentFlags().StringVar(&flagAPI, "api", "", "Backend base URL (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLocale, "locale", "", "UI locale: en or fr (overrides config)")
	rootCmd.Flags().StringVar(&flagPage, "page", "", "Page to open after login (blocks/blogs/users/history)")

	for _, c := range []*cobra.Command{loginCmd, logoutCmd, blocksCmd, blogsCmd, usersCmd, uploadCmd, historyCmd} {
		rootCmd.AddCommand(c)
	}
	for _, c := range []*cobra.Command{blocksCmd, blogsCmd, usersCmd, uploadCmd, historyCmd} {
		c.Flags().StringVarP(&flagOutput, "output", "o", "text", "Output format (json/yaml/text)")
	}
	blogsCmd.Flags().IntVar(&flagBlogPage, "page", 1, "Page number")
	blogsCmd.Flags().IntVar(&flagPerPage, "per-page", 20, "Items per page")
	blogsCmd.Flags().StringVarP(&flagQuery, "query", "q", "", "Search query")
	historyCmd.Flags().IntVarP(&flagLimit, "limit", "n", 200, "Maximum entries")
}

// deps bundles everything both frontends share.
type deps struct {
	settings config.Settings
	store    *session.Store
	center   *notify.Center
	client   *api.Client
	history  *history.Manager
	tr       *i18n.Translator
}

// buildDeps initializes config and wires the client stack.
func buildDeps() (*deps, error) {
	if err := config.Initialize(); err != nil {
		return nil, fmt.Errorf("failed to initialize config: %w", err)
	}
	settings, err := config.Load()
	if err != nil {
		return nil, err
	}
	if flagAPI != "" {
		settings.APIBase = flagAPI
	}
	if flagLocale != "" {
		settings.Locale = flagLocale
	}
	if err := settings.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	tr := i18n.New(settings.Locale)
	center := notify.NewCenter(tr)
	store := session.NewStore(config.SessionFile, session.Scope(settings.TokenScope), settings.DevToken)

	// The audit log is best-effort; a broken database never blocks the app
	mgr, err := history.NewManager(config.DatabasePath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: history disabled: %v\n", err)
		mgr = nil
	}

	opts := api.Options{
		BaseURL:  settings.APIBase,
		Timeout:  settings.RequestTimeout(),
		Store:    store,
		Notifier: center,
	}
	if mgr != nil {
		opts.Recorder = mgr
	}

	return &deps{
		settings: settings,
		store:    store,
		center:   center,
		client:   api.NewClient(opts),
		history:  mgr,
		tr:       tr,
	}, nil
}

// headlessDeps adapts the shared stack for one-shot commands.
func headlessDeps() (cli.Deps, error) {
	d, err := buildDeps()
	if err != nil {
		return cli.Deps{}, err
	}
	return cli.Deps{
		Store:   d.store,
		Client:  d.client,
		Hist:    d.history,
		Tr:      d.tr,
		Out:     os.Stdout,
	}, nil
}

// parseLandingPage maps the --page flag to a shell page, defaulting to the
// block explorer on unknown values.
func parseLandingPage(s string) tui.Page {
	switch strings.ToLower(s) {
	case "blogs", "blog":
		return tui.PageBlogs
	case "users", "user":
		return tui.PageUsers
	case "history":
		return tui.PageHistory
	default:
		return tui.PageBlocks
	}
}
