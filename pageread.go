// Package pageread reconstructs structured, reading-ordered text from
// the raw outputs of two neural predictors: a pixel-wise layout
// classifier emitting a multi-channel probability array over a page
// image, and a sequence classifier emitting per-timestep symbol
// probabilities for cropped word images.
//
// The models themselves are external collaborators supplied through the
// [LayoutModel] and [TextRecognizer] interfaces; everything this package
// does with their outputs is deterministic, classical postprocessing:
// marker-driven word segmentation, bounding-box extraction and merging,
// CTC peak-picking decoding, line grouping, and topological reading
// order.
//
// Basic usage:
//
//	rec, err := pageread.NewRecognizer(pageread.Config{
//	    Layout: layoutModel,
//	    Text:   pageread.NewWordRecognizer(seqModel),
//	})
//	if err != nil {
//	    // handle error
//	}
//	page, err := rec.Recognize(ctx, image)
//	if err != nil {
//	    // handle error
//	}
//	fmt.Println(page.Text())
package pageread

import (
	"context"
	"errors"

	"github.com/tsawler/pageread/geom"
	"github.com/tsawler/pageread/raster"
)

// ErrRange reports a page or probability array with values outside [0,1].
var ErrRange = errors.New("values must lie in [0,1]")

// ErrChannels reports a layout model output with an unsupported channel
// count.
var ErrChannels = errors.New("layout output must have 4 or 7 channels")

// LayoutModel is the pixel-wise layout classifier collaborator. Given a
// normalized single-channel page image with values in [0,1], it returns
// an H×W×C probability array with C ∈ {4, 7} and values in [0,1].
type LayoutModel interface {
	Infer(ctx context.Context, page *raster.Grid) (*raster.Volume, error)
}

// TextRecognizer is the word recognition collaborator. Given a batch of
// cropped, height-normalized, intensity-normalized word images it
// returns one decoded string per image, in input order.
type TextRecognizer interface {
	RecognizeWords(ctx context.Context, words []*raster.Grid) ([]string, error)
}

// SequenceModel is the neural half of a [WordRecognizer]: for a batch
// of word images it emits one timesteps×symbols probability matrix per
// image, each row a normalized distribution with the blank symbol in
// column 0.
type SequenceModel interface {
	Infer(ctx context.Context, words []*raster.Grid) ([]*raster.Grid, error)
}

// Binarizer is the page binarization collaborator. The pipeline uses
// its output to validate that an extracted crop has plausible
// foreground/background contrast, and as the recognition source image
// for the binarize and threshold preprocessing modes.
type Binarizer interface {
	Binarize(page *raster.Grid) (*raster.Grid, error)
}

// Word is one recognized word region.
type Word struct {
	// Box is the padded, merged bounding box in page coordinates.
	Box geom.Box

	// Text is the decoded string, empty when recognition was skipped.
	Text string

	// Line is the index of the owning line in Page.Lines.
	Line int

	// Image and Binarized are the auto-inverted crops; retained only
	// when Config.KeepImages is set.
	Image     *raster.Grid
	Binarized *raster.Grid
}

// Line is an ordered run of words sharing a line id, left to right.
type Line struct {
	// Box is the union of the member word boxes.
	Box geom.Box

	// Words in left-to-right order.
	Words []Word
}

// Page is the result of recognizing one page: lines in reading order,
// each holding its words in left-to-right order.
type Page struct {
	// Lines in reading order.
	Lines []Line

	// Words across all lines, in line order. A page with no
	// recognizable regions has zero words and zero lines; that is an
	// empty result, not an error.
	Words []Word

	// WordMap and LineMap are the intermediate label maps, retained
	// only when Config.KeepMaps is set. LineMap is nil for 4-channel
	// layout output.
	WordMap *raster.LabelMap
	LineMap *raster.LabelMap

	// Height and Width are the page dimensions in pixels.
	Height, Width int
}

// Text returns all recognized text, words joined by spaces and lines by
// newlines.
func (p *Page) Text() string {
	if p == nil || len(p.Lines) == 0 {
		return ""
	}
	out := make([]byte, 0, 256)
	for i, line := range p.Lines {
		if i > 0 {
			out = append(out, '\n')
		}
		for j, w := range line.Words {
			if j > 0 {
				out = append(out, ' ')
			}
			out = append(out, w.Text...)
		}
	}
	return string(out)
}
