package cli

import (
	"io"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/fightmetrics/pkg/buildinfo"
	"github.com/matzehuels/fightmetrics/pkg/config"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display and default paths.
	appName = "backdrop"

	// defaultFPS is the frame rate of the terminal and HTTP hosts.
	defaultFPS = 30
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Backdrop renders the FightMetrics animated graph background",
		Long:         `Backdrop generates a decorative node/edge graph labelled with fight metrics, scrolls it with seamless wrap-around, and renders it to the terminal, to image files, or over HTTP.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.animateCommand())
	root.AddCommand(c.serveCommand())
	root.AddCommand(c.configCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Config Flags
// =============================================================================

// configFlags are the generation settings shared by every host command.
// Flags that were set explicitly override the config file.
type configFlags struct {
	path          string
	width         float64
	height        float64
	count         int
	minSeparation float64
	seed          uint64
}

func (f *configFlags) register(cmd *cobra.Command) {
	def := config.Default()
	cmd.Flags().StringVar(&f.path, "config", "", "TOML config file")
	cmd.Flags().Float64Var(&f.width, "width", def.Width, "viewport width in pixels")
	cmd.Flags().Float64Var(&f.height, "height", def.Height, "viewport height in pixels")
	cmd.Flags().IntVar(&f.count, "count", def.Count, "number of nodes")
	cmd.Flags().Float64Var(&f.minSeparation, "min-separation", def.MinSeparation, "minimum distance between nodes")
	cmd.Flags().Uint64Var(&f.seed, "seed", def.Seed, "random seed (0 seeds from the clock)")
}

// load resolves defaults, the config file and explicit flags, in that order.
func (f *configFlags) load(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if f.path != "" {
		var err error
		if cfg, err = config.Load(f.path); err != nil {
			return config.Config{}, err
		}
	}

	flags := cmd.Flags()
	if flags.Changed("width") {
		cfg.Width = f.width
	}
	if flags.Changed("height") {
		cfg.Height = f.height
	}
	if flags.Changed("count") {
		cfg.Count = f.count
	}
	if flags.Changed("min-separation") {
		cfg.MinSeparation = f.minSeparation
	}
	if flags.Changed("seed") {
		cfg.Seed = f.seed
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, err
	}
	return cfg, nil
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{formatSVG}
	}
	parts := strings.Split(s, ",")
	for i := range parts {
		parts[i] = strings.ToLower(strings.TrimSpace(parts[i]))
	}
	return parts
}
