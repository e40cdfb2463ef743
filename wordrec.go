package pageread

import (
	"context"
	"fmt"

	"github.com/tsawler/pageread/ctc"
	"github.com/tsawler/pageread/raster"
)

// WordRecognizer turns a neural [SequenceModel] into a [TextRecognizer]
// by decoding its per-timestep symbol probabilities with the CTC peak
// picker and a charset.
type WordRecognizer struct {
	model     SequenceModel
	charset   *ctc.Charset
	decode    ctc.Config
	maxHeight int
}

// NewWordRecognizer wraps a sequence model with the ASCII charset, the
// default decoder configuration, and a 48-pixel crop height.
func NewWordRecognizer(model SequenceModel) *WordRecognizer {
	return &WordRecognizer{
		model:     model,
		charset:   ctc.ASCII(),
		decode:    ctc.DefaultConfig(),
		maxHeight: 48,
	}
}

// WithCharset replaces the charset and returns the recognizer.
func (r *WordRecognizer) WithCharset(cs *ctc.Charset) *WordRecognizer {
	r.charset = cs
	return r
}

// WithDecodeConfig replaces the decoder configuration and returns the
// recognizer.
func (r *WordRecognizer) WithDecodeConfig(cfg ctc.Config) *WordRecognizer {
	r.decode = cfg
	return r
}

// RecognizeWords rescales each crop to the model height, runs the
// sequence model, and decodes each output matrix to a string. The
// output order matches the input order.
func (r *WordRecognizer) RecognizeWords(ctx context.Context, words []*raster.Grid) ([]string, error) {
	if len(words) == 0 {
		return nil, nil
	}

	scaled := make([]*raster.Grid, len(words))
	for i, w := range words {
		scaled[i] = scaleToMaxHeight(w, r.maxHeight)
	}

	outputs, err := r.model.Infer(ctx, scaled)
	if err != nil {
		return nil, fmt.Errorf("sequence model: %w", err)
	}
	if len(outputs) != len(words) {
		return nil, fmt.Errorf("sequence model returned %d outputs for %d words", len(outputs), len(words))
	}

	texts := make([]string, len(outputs))
	for i, probs := range outputs {
		symbols, err := ctc.Decode(probs, r.decode)
		if err != nil {
			return nil, fmt.Errorf("decoding word %d: %w", i, err)
		}
		texts[i] = r.charset.Decode(symbols)
	}
	return texts, nil
}
