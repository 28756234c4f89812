// Image loading and saving with logging and format checks
package io

import (
	"fmt"
	"log/slog"

	"kernel-convolution/internal/algorithms"
)

// ImageLoader handles image file operations
type ImageLoader struct {
	codec  Codec
	logger *slog.Logger
}

func NewImageLoader(codec Codec, logger *slog.Logger) *ImageLoader {
	if codec == nil {
		codec = NewStdCodec()
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &ImageLoader{
		codec:  codec,
		logger: logger,
	}
}

func (il *ImageLoader) LoadImage(filepath string) (algorithms.Grid, error) {
	il.logger.Debug("Loading image", "filepath", filepath, "codec", il.codec.Name())

	if _, err := FormatFromPath(filepath); err != nil {
		return nil, &DecodeError{Path: filepath, Err: err}
	}

	grid, err := il.codec.DecodeGrayscale(filepath)
	if err != nil {
		il.logger.Error("Image load failed", "filepath", filepath, "error", err)
		return nil, err
	}

	il.logger.Info("Image loaded successfully",
		"filepath", filepath,
		"width", grid.Width(),
		"height", grid.Height())

	return grid, nil
}

func (il *ImageLoader) SaveImage(grid algorithms.Grid, filepath string) error {
	il.logger.Debug("Saving image", "filepath", filepath, "codec", il.codec.Name())

	if err := grid.Validate(); err != nil {
		return &EncodeError{Path: filepath, Err: fmt.Errorf("cannot save: %w", err)}
	}

	if err := il.codec.Encode(filepath, grid); err != nil {
		il.logger.Error("Image save failed", "filepath", filepath, "error", err)
		return err
	}

	il.logger.Info("Image saved successfully",
		"filepath", filepath,
		"width", grid.Width(),
		"height", grid.Height())

	return nil
}

func (il *ImageLoader) GetSupportedFormats() []string {
	return []string{"PNG", "JPEG", "GIF", "BMP", "TIFF", "WebP"}
}

// Extensions lists the file extensions accepted by LoadImage.
func (il *ImageLoader) Extensions() []string {
	return []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff", ".webp"}
}
