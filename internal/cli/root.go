// Command tree for the convolve command line tool
package cli

import (
	"fmt"
	"io"
	"log/slog"
	"sort"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"kernel-convolution/internal/config"
	imageio "kernel-convolution/internal/io"
	"kernel-convolution/internal/logging"
)

// CodecFactory builds a codec on demand so that optional backends are only
// initialized when selected.
type CodecFactory func() imageio.Codec

type app struct {
	configPath string
	debug      bool
	codec      string

	codecs map[string]CodecFactory
	cfg    config.Config
	logger *logrus.Logger
	slog   *slog.Logger
}

// Option customizes the command tree.
type Option func(*app)

// WithCodec makes a codec selectable with --codec name.
func WithCodec(name string, factory CodecFactory) Option {
	return func(a *app) {
		a.codecs[name] = factory
	}
}

// WithLogOutput sends logs to w instead of the command's stderr.
func WithLogOutput(w io.Writer) Option {
	return func(a *app) {
		a.logger = logging.NewLoggerTo(w, false)
	}
}

// NewRootCommand builds the convolve command tree.
func NewRootCommand(opts ...Option) *cobra.Command {
	a := &app{
		codecs: map[string]CodecFactory{
			config.CodecStd: func() imageio.Codec { return imageio.NewStdCodec() },
		},
	}
	for _, opt := range opts {
		opt(a)
	}

	root := &cobra.Command{
		Use:           "convolve",
		Short:         "Apply convolution kernels to grayscale images",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.setup(cmd)
		},
	}

	flags := root.PersistentFlags()
	flags.StringVar(&a.configPath, "config", "", "YAML configuration file")
	flags.BoolVar(&a.debug, "debug", false, "Enable debug mode with verbose logging")
	flags.StringVar(&a.codec, "codec", "", "Image codec backend (std, opencv)")

	root.AddCommand(newApplyCommand(a), newKernelsCommand(a))
	return root
}

func (a *app) setup(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("debug") {
		cfg.Debug = a.debug
	}
	if a.codec != "" {
		cfg.Codec = a.codec
	}
	if err := cfg.RegisterPresets(); err != nil {
		return err
	}
	a.cfg = cfg

	if a.logger == nil {
		a.logger = logging.NewLoggerTo(cmd.ErrOrStderr(), cfg.Debug)
	} else if cfg.Debug {
		a.logger.SetLevel(logrus.DebugLevel)
	}
	a.slog = logging.NewSlog(a.logger)
	return nil
}

func (a *app) newCodec() (imageio.Codec, error) {
	factory, ok := a.codecs[a.cfg.Codec]
	if !ok {
		names := make([]string, 0, len(a.codecs))
		for name := range a.codecs {
			names = append(names, name)
		}
		sort.Strings(names)
		return nil, fmt.Errorf("codec %q not available (have %v)", a.cfg.Codec, names)
	}
	return factory(), nil
}
