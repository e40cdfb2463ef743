//go:build ocr

// Package ocr recognizes word crops with the Tesseract engine via
// gosseract. It offers a fallback text recognizer for pipelines that
// have a layout model but no trained sequence model. It requires
// Tesseract to be installed on the system. On macOS, install via:
//
//	brew install tesseract
//
// On Ubuntu/Debian:
//
//	apt-get install tesseract-ocr
package ocr

import (
	"context"
	"fmt"
	"strings"

	"github.com/otiai10/gosseract/v2"

	"github.com/tsawler/pageread/raster"
)

// Client wraps Tesseract for word-level recognition. It implements
// [pageread.TextRecognizer] and should be closed when no longer needed
// to release engine resources.
type Client struct {
	client *gosseract.Client
}

// New creates a new OCR client configured for single-word input.
func New() (*Client, error) {
	client := gosseract.NewClient()
	if err := client.SetPageSegMode(gosseract.PSM_SINGLE_WORD); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to set page segmentation mode: %w", err)
	}
	return &Client{client: client}, nil
}

// Close releases OCR resources.
func (c *Client) Close() error {
	if c.client != nil {
		return c.client.Close()
	}
	return nil
}

// RecognizeWords runs Tesseract over each word crop and returns one
// string per crop. Crops hold ink as high values on a low background;
// they are rendered dark-on-light before recognition, which is the
// polarity Tesseract expects.
func (c *Client) RecognizeWords(ctx context.Context, crops []*raster.Grid) ([]string, error) {
	texts := make([]string, len(crops))
	for i, crop := range crops {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		png, err := EncodePNG(crop)
		if err != nil {
			return nil, fmt.Errorf("failed to encode word %d: %w", i, err)
		}
		if err := c.client.SetImageFromBytes(png); err != nil {
			return nil, fmt.Errorf("failed to set word %d image: %w", i, err)
		}
		text, err := c.client.Text()
		if err != nil {
			return nil, fmt.Errorf("OCR failed on word %d: %w", i, err)
		}
		texts[i] = strings.TrimSpace(text)
	}
	return texts, nil
}

// SetLanguage sets the language(s) for recognition.
// Multiple languages can be specified as a "+" separated string
// (e.g., "eng+fra"). Default is "eng" (English).
func (c *Client) SetLanguage(lang string) error {
	return c.client.SetLanguage(lang)
}

// SetPageSegMode sets the page segmentation mode.
// See gosseract.PageSegMode constants for available modes.
func (c *Client) SetPageSegMode(mode gosseract.PageSegMode) error {
	return c.client.SetPageSegMode(mode)
}
