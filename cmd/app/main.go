// Kernel Convolution desktop application

package main

import (
	"flag"
	"os"

	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/theme"
	"github.com/sirupsen/logrus"

	"kernel-convolution/internal/config"
	"kernel-convolution/internal/gui"
	imageio "kernel-convolution/internal/io"
	"kernel-convolution/internal/io/opencv"
	"kernel-convolution/internal/logging"
)

const (
	AppID      = "com.example.kernel-convolution"
	AppVersion = "1.0.0"
)

func main() {
	// Parse command line flags
	debugMode := flag.Bool("debug", false, "Enable debug mode with verbose logging")
	configPath := flag.String("config", "", "YAML configuration file")
	codecName := flag.String("codec", "", "Image codec backend (std, opencv)")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		logging.NewLogger(false).WithError(err).Fatal("Failed to load configuration")
	}
	if *debugMode {
		cfg.Debug = true
	}
	if *codecName != "" {
		cfg.Codec = *codecName
	}

	logger := logging.NewLogger(cfg.Debug)
	logger.WithFields(logrus.Fields{
		"version":    AppVersion,
		"debug_mode": cfg.Debug,
		"codec":      cfg.Codec,
		"workers":    cfg.Workers,
	}).Info("Starting Kernel Convolution")

	if err := cfg.Validate(); err != nil {
		logger.WithError(err).Fatal("Invalid configuration")
	}
	if err := cfg.RegisterPresets(); err != nil {
		logger.WithError(err).Fatal("Invalid kernel preset")
	}

	var codec imageio.Codec = imageio.NewStdCodec()
	if cfg.Codec == config.CodecOpenCV {
		codec = opencv.NewCodec()
	}

	myApp := app.NewWithID(AppID)
	myApp.SetIcon(theme.DocumentIcon())
	myApp.Settings().SetTheme(theme.DefaultTheme())

	mainApp := gui.NewApplication(myApp, cfg, codec, logging.NewSlog(logger))
	mainApp.ShowAndRun()

	logger.Info("Application shutting down gracefully")
	os.Exit(0)
}
