// Main window: original and filtered previews around a kernel panel
package gui

import (
	"fmt"
	"image"
	"log/slog"
	"math"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"

	"kernel-convolution/internal/algorithms"
	"kernel-convolution/internal/config"
	"kernel-convolution/internal/core"
	"kernel-convolution/internal/io"
	"kernel-convolution/internal/metrics"
)

// Application is the desktop front end over an ImageSession.
type Application struct {
	app    fyne.App
	window fyne.Window
	logger *slog.Logger

	session   *core.ImageSession
	loader    *io.ImageLoader
	evaluator *metrics.Evaluator

	kernelPanel   *KernelPanel
	menuHandler   *MenuHandler
	originalImage *canvas.Image
	resultImage   *canvas.Image
	statusLabel   *widget.Label
	metricsLabel  *widget.Label
}

func NewApplication(app fyne.App, cfg config.Config, codec io.Codec, logger *slog.Logger) *Application {
	window := app.NewWindow("Kernel Convolution")
	window.Resize(fyne.NewSize(1200, 800))
	window.CenterOnScreen()

	session := core.NewImageSession(logger)
	session.SetOptions(cfg.Options())

	a := &Application{
		app:       app,
		window:    window,
		logger:    logger,
		session:   session,
		loader:    io.NewImageLoader(codec, logger),
		evaluator: metrics.NewEvaluator(),
	}

	a.kernelPanel = NewKernelPanel(cfg.Kernel, a.applyKernel, func(err error) {
		a.showError("Invalid Kernel", err)
	})
	a.menuHandler = NewMenuHandler(window, a.loader, logger)
	a.menuHandler.SetCallbacks(a.imageLoaded, a.session.LastResult, a.imageSaved)
	a.setupLayout()
	return a
}

func (a *Application) setupLayout() {
	a.originalImage = canvas.NewImageFromImage(nil)
	a.originalImage.FillMode = canvas.ImageFillContain
	a.originalImage.ScaleMode = canvas.ImageScalePixels
	a.resultImage = canvas.NewImageFromImage(nil)
	a.resultImage.FillMode = canvas.ImageFillContain
	a.resultImage.ScaleMode = canvas.ImageScalePixels

	a.statusLabel = widget.NewLabel("Open an image to begin")
	a.metricsLabel = widget.NewLabel("")

	previews := container.NewGridWithColumns(2,
		widget.NewCard("Original", "", a.originalImage),
		widget.NewCard("Kernel Result", "", a.resultImage),
	)

	right := container.NewVBox(
		widget.NewCard("Kernel", "", a.kernelPanel.GetContainer()),
		widget.NewCard("Metrics", "", a.metricsLabel),
	)

	split := container.NewHSplit(previews, container.NewVScroll(right))
	split.SetOffset(0.75)

	a.window.SetMainMenu(a.menuHandler.GetMainMenu())
	a.window.SetContent(container.NewBorder(nil, a.statusLabel, nil, nil, split))
}

func (a *Application) imageLoaded(path string, grid algorithms.Grid) {
	if err := a.session.SetImage(grid); err != nil {
		a.showError("Invalid Image", err)
		return
	}

	a.setPreview(a.originalImage, grid.ToGray())
	a.setPreview(a.resultImage, nil)
	a.metricsLabel.SetText("")
	a.updateStatusMessage(fmt.Sprintf("Loaded: %s (%dx%d)", path, grid.Width(), grid.Height()))
}

func (a *Application) imageSaved(path string) {
	a.updateStatusMessage(fmt.Sprintf("Saved: %s", path))
}

// applyKernel installs spec and filters the current image off the UI
// goroutine. A spec that fails to generate leaves the previous kernel active.
func (a *Application) applyKernel(spec algorithms.Spec) {
	if err := a.session.SetKernel(spec); err != nil {
		a.showError("Invalid Kernel", err)
		return
	}
	a.updateStatusMessage(fmt.Sprintf("Applying %v...", spec))

	go func() {
		run, err := a.session.ApplyKernelRun()
		if err != nil {
			fyne.Do(func() { a.showError("Cannot Apply Kernel", err) })
			return
		}

		values, err := a.evaluator.CalculateAll(run.Image, run.Result)
		if err != nil {
			a.logger.Warn("GUI: Metrics unavailable", "error", err)
		}

		fyne.Do(func() {
			a.setPreview(a.resultImage, run.Result.ToGray())
			a.metricsLabel.SetText(a.formatMetrics(values))
			if !run.Kernel.IsSymmetric() {
				a.updateStatusMessage(fmt.Sprintf("Applied %s (asymmetric: correlation, kernel not flipped)", run.Kernel.Name))
				return
			}
			a.updateStatusMessage(fmt.Sprintf("Applied %s", run.Kernel.Name))
		})
	}()
}

func (a *Application) formatMetrics(values map[string]float64) string {
	if values == nil {
		return ""
	}
	lines := make([]string, 0, len(values))
	for _, name := range a.evaluator.Names() {
		v := values[name]
		if math.IsInf(v, 1) {
			lines = append(lines, fmt.Sprintf("%s: identical", name))
			continue
		}
		lines = append(lines, fmt.Sprintf("%s: %.3f", name, v))
	}
	return strings.Join(lines, "\n")
}

func (a *Application) setPreview(target *canvas.Image, img image.Image) {
	target.Image = img
	target.Refresh()
}

func (a *Application) updateStatusMessage(message string) {
	a.statusLabel.SetText(message)
}

func (a *Application) ShowAndRun() {
	a.logger.Info("Showing main application window")

	a.window.SetCloseIntercept(func() {
		a.session.Clear()
		a.app.Quit()
	})

	a.window.ShowAndRun()
}

func (a *Application) showError(title string, err error) {
	a.logger.Error(title, "error", err)
	dialog.ShowError(err, a.window)
	a.updateStatusMessage(fmt.Sprintf("Error: %s", err.Error()))
}
