package pageread

import (
	"log/slog"

	"github.com/tsawler/pageread/geom"
	"github.com/tsawler/pageread/segment"
)

// Preprocess selects which image the word crops are taken from.
type Preprocess int

const (
	// PreprocessNone recognizes from the raw grayscale page.
	PreprocessNone Preprocess = iota

	// PreprocessBinarize recognizes from the binarizer output.
	PreprocessBinarize

	// PreprocessThreshold recognizes from the binarizer output cut at 0.5.
	PreprocessThreshold
)

// String returns the mode name as accepted by [ParsePreprocess].
func (p Preprocess) String() string {
	switch p {
	case PreprocessBinarize:
		return "binarize"
	case PreprocessThreshold:
		return "threshold"
	default:
		return "none"
	}
}

// ParsePreprocess converts a mode name to a [Preprocess] value.
func ParsePreprocess(s string) (Preprocess, bool) {
	switch s {
	case "none":
		return PreprocessNone, true
	case "binarize":
		return PreprocessBinarize, true
	case "threshold":
		return PreprocessThreshold, true
	}
	return PreprocessNone, false
}

// Config assembles a [Recognizer]. Layout and Text are required; every
// other field has a usable zero or default value. Configuration is
// explicit per recognizer - there is no process-wide mutable state.
type Config struct {
	// Layout is the pixel-wise layout classifier (required).
	Layout LayoutModel

	// Text is the word recognition collaborator (required).
	Text TextRecognizer

	// Binarizer validates crop contrast and feeds the binarize and
	// threshold preprocessing modes. Nil selects binarize.NewOtsu().
	Binarizer Binarizer

	// Logger receives observability events such as reading-order cycle
	// counts. Nil selects slog.Default().
	Logger *slog.Logger

	// Preprocess selects the recognition source image.
	Preprocess Preprocess

	// Segmentation, Lines and Merge hold the classical-stage tuning.
	Segmentation segment.Config
	Lines        segment.LineConfig
	Merge        geom.MergeConfig

	// Pad and PadRatio grow extracted boxes per side. The default pads
	// every side by 10 pixels.
	Pad      geom.Padding
	PadRatio geom.PadRatio

	// WordsPerBatch is the recognition batch size. Default 64.
	WordsPerBatch int

	// KeepImages retains the per-word crops on the result.
	KeepImages bool

	// KeepMaps retains the intermediate label maps on the result.
	KeepMaps bool
}

// DefaultConfig returns a config with the standard tuning for the given
// collaborators.
func DefaultConfig(layout LayoutModel, text TextRecognizer) Config {
	return Config{
		Layout:        layout,
		Text:          text,
		Segmentation:  segment.DefaultConfig(),
		Lines:         segment.DefaultLineConfig(),
		Merge:         geom.DefaultMergeConfig(),
		Pad:           geom.UniformPadding(10),
		WordsPerBatch: 64,
	}
}
