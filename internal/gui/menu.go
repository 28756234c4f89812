// Menu handler for file actions
package gui

import (
	"errors"
	"log/slog"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"

	"kernel-convolution/internal/algorithms"
	"kernel-convolution/internal/io"
)

// MenuHandler handles menu actions
type MenuHandler struct {
	window fyne.Window
	loader *io.ImageLoader
	logger *slog.Logger

	onImageLoaded func(string, algorithms.Grid)
	resultToSave  func() algorithms.Grid
	onImageSaved  func(string)
}

func NewMenuHandler(window fyne.Window, loader *io.ImageLoader, logger *slog.Logger) *MenuHandler {
	return &MenuHandler{
		window: window,
		loader: loader,
		logger: logger,
	}
}

func (mh *MenuHandler) GetMainMenu() *fyne.MainMenu {
	fileMenu := fyne.NewMenu("File",
		fyne.NewMenuItem("Open Image...", mh.openImage),
		fyne.NewMenuItem("Save Result...", mh.saveImage),
	)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", mh.showAbout),
	)

	return fyne.NewMainMenu(fileMenu, helpMenu)
}

func (mh *MenuHandler) openImage() {
	mh.logger.Info("Opening file dialog for image selection")

	fileDialog := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			mh.showError("File Dialog Error", err)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		filepath := reader.URI().Path()
		grid, err := mh.loader.LoadImage(filepath)
		if err != nil {
			mh.showError("Failed to Load Image", err)
			return
		}

		if mh.onImageLoaded != nil {
			mh.onImageLoaded(filepath, grid)
		}
	}, mh.window)

	fileDialog.SetFilter(storage.NewExtensionFileFilter(mh.loader.Extensions()))
	fileDialog.Show()
}

func (mh *MenuHandler) saveImage() {
	var result algorithms.Grid
	if mh.resultToSave != nil {
		result = mh.resultToSave()
	}
	if result == nil {
		mh.showError("Nothing to Save", errors.New("apply a kernel before saving"))
		return
	}

	fileDialog := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			mh.showError("File Dialog Error", err)
			return
		}
		if writer == nil {
			return
		}
		filepath := writer.URI().Path()
		// The codec writes the file itself; release the handle first.
		writer.Close()

		if err := mh.loader.SaveImage(result, filepath); err != nil {
			mh.showError("Failed to Save Image", err)
			return
		}
		if mh.onImageSaved != nil {
			mh.onImageSaved(filepath)
		}
	}, mh.window)

	fileDialog.SetFileName("kernel_result.png")
	fileDialog.SetFilter(storage.NewExtensionFileFilter([]string{".png", ".jpg", ".jpeg", ".tiff", ".tif", ".bmp"}))
	fileDialog.Show()
}

func (mh *MenuHandler) showAbout() {
	content := container.NewVBox(
		widget.NewLabel("Kernel Convolution"),
		widget.NewSeparator(),
		widget.NewLabel("Grayscale filtering with Gaussian, box and custom kernels."),
		widget.NewLabel("Borders are zero padded; kernels are applied as correlation."),
	)
	dialog.NewCustom("About", "Close", content, mh.window).Show()
}

func (mh *MenuHandler) showError(title string, err error) {
	mh.logger.Error(title, "error", err)
	dialog.ShowError(err, mh.window)
}

func (mh *MenuHandler) SetCallbacks(onImageLoaded func(string, algorithms.Grid), resultToSave func() algorithms.Grid, onImageSaved func(string)) {
	mh.onImageLoaded = onImageLoaded
	mh.resultToSave = resultToSave
	mh.onImageSaved = onImageSaved
}
