package pageread

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/tsawler/pageread/binarize"
	"github.com/tsawler/pageread/geom"
	"github.com/tsawler/pageread/layout"
	"github.com/tsawler/pageread/raster"
	"github.com/tsawler/pageread/segment"
)

// Recognizer runs the full page pipeline: layout inference, word
// segmentation, box extraction and merging, crop validation, word
// recognition, line grouping, and reading order. It is safe for
// concurrent use across pages - no state is shared between calls.
type Recognizer struct {
	config    Config
	binarizer Binarizer
	logger    *slog.Logger
	segmenter *segment.Segmenter
	lines     *segment.LineMapper
}

// NewRecognizer builds a recognizer from the config. Layout and Text
// are required. Zero-valued tuning sections take their defaults; a zero
// Pad together with a zero PadRatio selects the default 10-pixel
// padding.
func NewRecognizer(cfg Config) (*Recognizer, error) {
	if cfg.Layout == nil {
		return nil, errors.New("pageread: Config.Layout is required")
	}
	if cfg.Text == nil {
		return nil, errors.New("pageread: Config.Text is required")
	}
	if cfg.Segmentation == (segment.Config{}) {
		cfg.Segmentation = segment.DefaultConfig()
	}
	if cfg.Lines == (segment.LineConfig{}) {
		cfg.Lines = segment.DefaultLineConfig()
	}
	if cfg.Merge == (geom.MergeConfig{}) {
		cfg.Merge = geom.DefaultMergeConfig()
	}
	if cfg.Pad == (geom.Padding{}) && cfg.PadRatio == (geom.PadRatio{}) {
		cfg.Pad = geom.UniformPadding(10)
	}
	if cfg.WordsPerBatch <= 0 {
		cfg.WordsPerBatch = 64
	}

	binarizer := cfg.Binarizer
	if binarizer == nil {
		binarizer = binarize.NewOtsu()
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	return &Recognizer{
		config:    cfg,
		binarizer: binarizer,
		logger:    logger,
		segmenter: segment.NewSegmenterWithConfig(cfg.Segmentation),
		lines:     segment.NewLineMapperWithConfig(cfg.Lines),
	}, nil
}

// Recognize runs the pipeline on a normalized grayscale page with
// values in [0,1]. A page yielding no valid word regions returns an
// empty Page, not an error.
func (r *Recognizer) Recognize(ctx context.Context, page *raster.Grid) (*Page, error) {
	if err := checkRange(page); err != nil {
		return nil, err
	}

	binarized, err := r.binarizer.Binarize(page)
	if err != nil {
		return nil, fmt.Errorf("binarizing page: %w", err)
	}

	source := page
	switch r.config.Preprocess {
	case PreprocessBinarize:
		source = binarized
	case PreprocessThreshold:
		source = thresholdGrid(binarized, 0.5)
	}

	probs, err := r.config.Layout.Infer(ctx, source)
	if err != nil {
		return nil, fmt.Errorf("layout model: %w", err)
	}
	if probs.C != 4 && probs.C != 7 {
		return nil, fmt.Errorf("layout model emitted %d channels: %w", probs.C, ErrChannels)
	}

	seg, err := r.segmenter.Segment(probs)
	if err != nil {
		return nil, err
	}
	if seg.Ambiguous > 0 {
		r.logger.Debug("ambiguous marker assignments kept first-seen",
			"count", seg.Ambiguous)
	}

	boxes := geom.ExtractBoxes(seg.Words, r.config.Pad, r.config.PadRatio)
	boxes = geom.MergeOverlapping(boxes, r.config.Merge)

	words := r.buildWords(source, binarized, boxes)
	if err := r.recognizeWords(ctx, words); err != nil {
		return nil, err
	}
	if !r.config.KeepImages {
		for i := range words {
			words[i].Image = nil
			words[i].Binarized = nil
		}
	}

	result := &Page{Height: page.H, Width: page.W}
	if r.config.KeepMaps {
		result.WordMap = seg.Words
	}

	if probs.C == 7 {
		lineMap, err := r.lines.Map(probs)
		if err != nil {
			return nil, err
		}
		result.Lines = r.orderLines(words, lineMap)
		if r.config.KeepMaps {
			result.LineMap = lineMap
		}
	} else if len(words) > 0 {
		// No line channel: all words form one implicit line in
		// extraction order.
		wordBoxes := make([]geom.Box, len(words))
		for i := range words {
			wordBoxes[i] = words[i].Box
		}
		union, _ := geom.BoundingAll(wordBoxes)
		result.Lines = []Line{{Box: union, Words: words}}
	}

	for li := range result.Lines {
		for wi := range result.Lines[li].Words {
			result.Lines[li].Words[wi].Line = li
			result.Words = append(result.Words, result.Lines[li].Words[wi])
		}
	}
	return result, nil
}

// buildWords crops each box from the source and binarized pages and
// keeps the ones whose binarized crop passes validation.
func (r *Recognizer) buildWords(source, binarized *raster.Grid, boxes []geom.Box) []Word {
	words := make([]Word, 0, len(boxes))
	for _, b := range boxes {
		bin := cropBox(binarized, b)
		if !validCrop(bin) {
			continue
		}
		words = append(words, Word{
			Box:       b,
			Image:     cropBox(source, b),
			Binarized: bin,
		})
	}
	return words
}

// recognizeWords runs the text collaborator over the words in batches.
// Batches are independent and run concurrently; each writes only its
// own result slots.
func (r *Recognizer) recognizeWords(ctx context.Context, words []Word) error {
	if len(words) == 0 {
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)
	for start := 0; start < len(words); start += r.config.WordsPerBatch {
		end := start + r.config.WordsPerBatch
		if end > len(words) {
			end = len(words)
		}
		batch := words[start:end]

		g.Go(func() error {
			images := make([]*raster.Grid, len(batch))
			for i := range batch {
				images[i] = batch[i].Image
			}
			texts, err := r.config.Text.RecognizeWords(ctx, images)
			if err != nil {
				return fmt.Errorf("recognizing words: %w", err)
			}
			if len(texts) != len(batch) {
				return fmt.Errorf("recognizer returned %d texts for %d words", len(texts), len(batch))
			}
			for i := range batch {
				batch[i].Text = texts[i]
			}
			return nil
		})
	}
	return g.Wait()
}

// orderLines groups words into lines by the line map and arranges the
// lines in reading order.
func (r *Recognizer) orderLines(words []Word, lineMap *raster.LabelMap) []Line {
	if len(words) == 0 {
		return nil
	}

	boxes := make([]geom.Box, len(words))
	for i, w := range words {
		boxes[i] = w.Box
	}
	groups := layout.GroupByLine(boxes, lineMap)

	lines := make([]Line, 0, len(groups))
	lineBoxes := make([]geom.Box, 0, len(groups))
	for _, group := range groups {
		line := Line{}
		for _, wi := range group {
			line.Words = append(line.Words, words[wi])
		}
		memberBoxes := make([]geom.Box, len(group))
		for i, wi := range group {
			memberBoxes[i] = words[wi].Box
		}
		line.Box, _ = geom.BoundingAll(memberBoxes)
		lines = append(lines, line)
		lineBoxes = append(lineBoxes, line.Box)
	}

	order := layout.BuildOrder(lineBoxes)
	perm := order.Linearize()
	if violations := order.Violations(perm); violations > 0 {
		r.logger.Warn("reading order relation contains cycles; realized order is best effort",
			"violations", violations, "lines", len(lines))
	}

	ordered := make([]Line, len(lines))
	for rank, idx := range perm {
		ordered[rank] = lines[idx]
	}
	return ordered
}

// checkRange enforces the [0,1] value contract on a page image.
func checkRange(page *raster.Grid) error {
	min, max := page.MinMax()
	if min < 0 || max > 1 {
		return fmt.Errorf("page values span [%v, %v]: %w", min, max, ErrRange)
	}
	return nil
}
