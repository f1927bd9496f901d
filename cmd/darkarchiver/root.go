package main

import (
	"fmt"
	"io"
	"os"

	"darkarchiver/internal/config"
	"darkarchiver/internal/controller"
	"darkarchiver/internal/gui"
	"darkarchiver/internal/log"
	"darkarchiver/internal/tui"
	"darkarchiver/internal/watch"

	"github.com/spf13/cobra"
)

// options are the flags shared by every command.
type options struct {
	cfgFile string
	debug   bool
	tui     bool
}

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "darkarchiver [files or folders...]",
		Short: "A dark themed file manager",
		Long: `Dark Archiver keeps a working list of files you pick, previews them
and copies or exports the selection into another folder.

Files and folders given on the command line are added to the list at start.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.tui || !gui.IsGUIAvailable() {
				return run(opts, args, true)
			}
			return run(opts, args, false)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.cfgFile, "config", "", "config file (default is $HOME/.config/darkarchiver/config.yaml)")
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")
	rootCmd.Flags().BoolVar(&opts.tui, "tui", false, "use the terminal interface instead of a window")

	rootCmd.AddCommand(newTUICmd(opts))
	rootCmd.AddCommand(newConfigCmd(opts))

	return rootCmd
}

func newTUICmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tui [files or folders...]",
		Short: "Run in the terminal",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts, args, true)
		},
	}
}

// configPath returns the file the config is read from and saved to.
func (o *options) configPath() (string, error) {
	if o.cfgFile != "" {
		return o.cfgFile, nil
	}
	return config.DefaultPath()
}

func (o *options) loadConfig() (*config.Config, string, error) {
	path, err := o.configPath()
	if err != nil {
		return nil, "", err
	}
	cfg, err := config.LoadConfigFile(path)
	if err != nil {
		return nil, "", err
	}
	if o.debug {
		cfg.Log.Debug = true
	}
	return cfg, path, nil
}

// setupLogging points the logger at the right place. The terminal interface
// owns stdout, so there log lines go to the file or nowhere.
func setupLogging(cfg *config.Config, terminal bool) (io.Closer, error) {
	log.SetDebug(cfg.Log.Debug)
	if !terminal {
		if cfg.Log.File != "" {
			log.Configure(log.WithFile(cfg.Log.File))
		}
		return nil, nil
	}
	if cfg.Log.File == "" {
		log.Configure(log.WithOutput(io.Discard))
		return nil, nil
	}
	f, err := os.OpenFile(cfg.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to open log file: %w", err)
	}
	log.Configure(log.WithOutput(f))
	return f, nil
}

// newController builds the controller for cfg and starts the disk watcher
// when enabled. A watcher that fails to start is logged and skipped.
func newController(cfg *config.Config) (*controller.Controller, error) {
	opts, err := controller.OptionsFromConfig(cfg)
	if err != nil {
		return nil, err
	}
	ctrl := controller.New(opts)

	if cfg.Watch.Enabled {
		w, err := watch.New()
		if err != nil {
			log.LogWithError(err).Warn("file watcher unavailable")
			return ctrl, nil
		}
		if err := ctrl.Watch(w); err != nil {
			log.LogWithError(err).Warn("file watcher unavailable")
		}
	}
	return ctrl, nil
}

// preload adds the command line arguments. Folders contribute the files
// directly inside them.
func preload(ctrl *controller.Controller, args []string) {
	var files []string
	for _, arg := range args {
		st, err := os.Stat(arg)
		if err == nil && st.IsDir() {
			ctrl.AddFolder(arg)
			continue
		}
		files = append(files, arg)
	}
	if len(files) > 0 {
		ctrl.AddFiles(files)
	}
}

func run(opts *options, args []string, terminal bool) error {
	cfg, path, err := opts.loadConfig()
	if err != nil {
		return err
	}

	closer, err := setupLogging(cfg, terminal)
	if err != nil {
		return err
	}
	if closer != nil {
		defer closer.Close()
	}

	ctrl, err := newController(cfg)
	if err != nil {
		return err
	}
	defer ctrl.Close()

	log.LogWithFields(log.F("config", path), log.F("terminal", terminal)).Info("starting")
	preload(ctrl, args)

	if terminal {
		return tui.Run(ctrl, cfg)
	}
	return gui.Start(cfg, path, ctrl)
}
