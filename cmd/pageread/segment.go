package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	yaml "go.yaml.in/yaml/v3"

	"github.com/tsawler/pageread"
	"github.com/tsawler/pageread/geom"
	"github.com/tsawler/pageread/hocr"
	"github.com/tsawler/pageread/layout"
	"github.com/tsawler/pageread/raster"
	"github.com/tsawler/pageread/segment"
)

// probDump is the on-disk form of a layout model's output: a row-major
// height×width×channels probability array with the channel index
// varying fastest.
type probDump struct {
	Height   int       `json:"height"`
	Width    int       `json:"width"`
	Channels int       `json:"channels"`
	Data     []float64 `json:"data"`
}

// tuning mirrors the segmentation knobs a YAML config file may
// override. Absent keys keep their defaults.
type tuning struct {
	Segmentation struct {
		MarkerThreshold    float64 `yaml:"marker_threshold"`
		SeparatorThreshold float64 `yaml:"separator_threshold"`
	} `yaml:"segmentation"`
	Lines struct {
		Threshold      float64 `yaml:"threshold"`
		MinRegion      int     `yaml:"min_region"`
		SpreadDistance float64 `yaml:"spread_distance"`
	} `yaml:"lines"`
	Merge struct {
		HeightMargin     float64 `yaml:"height_margin"`
		OverlapThreshold float64 `yaml:"overlap_threshold"`
	} `yaml:"merge"`
	Pad      int     `yaml:"pad"`
	PadRatio float64 `yaml:"pad_ratio"`
}

func defaultTuning() tuning {
	var t tuning
	seg := segment.DefaultConfig()
	t.Segmentation.MarkerThreshold = seg.MarkerThreshold
	t.Segmentation.SeparatorThreshold = seg.SeparatorThreshold
	lines := segment.DefaultLineConfig()
	t.Lines.Threshold = lines.Threshold
	t.Lines.MinRegion = lines.MinRegion
	t.Lines.SpreadDistance = lines.SpreadDistance
	merge := geom.DefaultMergeConfig()
	t.Merge.HeightMargin = merge.HeightMargin
	t.Merge.OverlapThreshold = merge.OverlapThreshold
	t.Pad = 10
	return t
}

func loadTuning(path string) (tuning, error) {
	t := defaultTuning()
	if path == "" {
		return t, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return t, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &t); err != nil {
		return t, fmt.Errorf("failed to parse config: %w", err)
	}
	return t, nil
}

type boxJSON struct {
	Top    int `json:"top"`
	Left   int `json:"left"`
	Bottom int `json:"bottom"`
	Right  int `json:"right"`
}

type lineJSON struct {
	Box   boxJSON   `json:"box"`
	Words []boxJSON `json:"words"`
}

type segmentResult struct {
	Height    int        `json:"height"`
	Width     int        `json:"width"`
	Ambiguous int        `json:"ambiguous"`
	Lines     []lineJSON `json:"lines"`
}

var segmentCmd = &cobra.Command{
	Use:   "segment <probs.json>",
	Short: "Segment a probability dump into reading-ordered word boxes",
	Long: `Segment reads a JSON probability dump produced by a layout model
({"height", "width", "channels", "data"} with row-major data, channel
fastest) and emits word bounding boxes grouped into reading-ordered
lines. With 7 channels the line-marker channel drives line grouping;
with 4 channels all words land on a single line.`,
	Args: cobra.ExactArgs(1),
	RunE: runSegment,
}

var (
	segmentConfigPath string
	segmentOutput     string
	segmentHOCR       bool
)

func init() {
	rootCmd.AddCommand(segmentCmd)

	segmentCmd.Flags().StringVarP(&segmentConfigPath, "config", "c", "", "YAML file overriding segmentation thresholds")
	segmentCmd.Flags().StringVarP(&segmentOutput, "output", "o", "", "Write output to a file instead of stdout")
	segmentCmd.Flags().BoolVar(&segmentHOCR, "hocr", false, "Emit hOCR instead of JSON")
}

func runSegment(cmd *cobra.Command, args []string) error {
	vol, err := loadVolume(args[0])
	if err != nil {
		return err
	}
	tun, err := loadTuning(segmentConfigPath)
	if err != nil {
		return err
	}

	segCfg := segment.DefaultConfig()
	segCfg.MarkerThreshold = tun.Segmentation.MarkerThreshold
	segCfg.SeparatorThreshold = tun.Segmentation.SeparatorThreshold

	seg, err := segment.NewSegmenterWithConfig(segCfg).Segment(vol)
	if err != nil {
		return fmt.Errorf("segmentation failed: %w", err)
	}
	if seg.Ambiguous > 0 {
		slog.Debug("ambiguous marker assignments", "count", seg.Ambiguous)
	}

	pad := geom.UniformPadding(tun.Pad)
	ratio := geom.PadRatio{Top: tun.PadRatio, Left: tun.PadRatio, Bottom: tun.PadRatio, Right: tun.PadRatio}
	boxes := geom.MergeOverlapping(geom.ExtractBoxes(seg.Words, pad, ratio), geom.MergeConfig{
		HeightMargin:     tun.Merge.HeightMargin,
		OverlapThreshold: tun.Merge.OverlapThreshold,
	})

	lineMap := raster.NewLabelMap(vol.H, vol.W)
	if vol.C > segment.ChanLineMarker {
		lineCfg := segment.DefaultLineConfig()
		lineCfg.Threshold = tun.Lines.Threshold
		lineCfg.MinRegion = tun.Lines.MinRegion
		lineCfg.SpreadDistance = tun.Lines.SpreadDistance
		lineMap, err = segment.NewLineMapperWithConfig(lineCfg).Map(vol)
		if err != nil {
			return fmt.Errorf("line mapping failed: %w", err)
		}
	}

	lines := orderedLines(boxes, lineMap)
	if segmentHOCR {
		return writeOutput(segmentOutput, hocr.Render(asPage(lines, vol.H, vol.W)))
	}

	result := segmentResult{Height: vol.H, Width: vol.W, Ambiguous: seg.Ambiguous}
	for _, line := range lines {
		lj := lineJSON{Box: asBoxJSON(line.Box)}
		for _, word := range line.Words {
			lj.Words = append(lj.Words, asBoxJSON(word.Box))
		}
		result.Lines = append(result.Lines, lj)
	}
	data, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	return writeOutput(segmentOutput, string(data)+"\n")
}

func loadVolume(path string) (*raster.Volume, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read probability dump: %w", err)
	}
	var dump probDump
	if err := json.Unmarshal(data, &dump); err != nil {
		return nil, fmt.Errorf("failed to parse probability dump: %w", err)
	}
	if dump.Height <= 0 || dump.Width <= 0 || dump.Channels <= 0 {
		return nil, fmt.Errorf("invalid dump dimensions %dx%dx%d", dump.Height, dump.Width, dump.Channels)
	}
	if want := dump.Height * dump.Width * dump.Channels; len(dump.Data) != want {
		return nil, fmt.Errorf("dump has %d values, want %d", len(dump.Data), want)
	}
	vol := raster.NewVolume(dump.Height, dump.Width, dump.Channels)
	copy(vol.Pix, dump.Data)
	return vol, nil
}

// orderedLines groups word boxes by line id and sorts the lines into
// reading order. An all-zero line map yields a single implicit line
// keeping the boxes in extraction order.
func orderedLines(boxes []geom.Box, lineMap *raster.LabelMap) []pageread.Line {
	if len(boxes) == 0 {
		return nil
	}
	if lineMap.Max() == 0 {
		line := pageread.Line{}
		for _, b := range boxes {
			line.Words = append(line.Words, pageread.Word{Box: b})
		}
		line.Box, _ = geom.BoundingAll(boxes)
		return []pageread.Line{line}
	}

	groups := layout.GroupByLine(boxes, lineMap)
	lines := make([]pageread.Line, 0, len(groups))
	for _, group := range groups {
		line := pageread.Line{}
		memberBoxes := make([]geom.Box, 0, len(group))
		for _, i := range group {
			line.Words = append(line.Words, pageread.Word{Box: boxes[i]})
			memberBoxes = append(memberBoxes, boxes[i])
		}
		if box, ok := geom.BoundingAll(memberBoxes); ok {
			line.Box = box
		}
		lines = append(lines, line)
	}

	lineBoxes := make([]geom.Box, len(lines))
	for i, line := range lines {
		lineBoxes[i] = line.Box
	}
	order := layout.BuildOrder(lineBoxes)
	perm := order.Linearize()
	if v := order.Violations(perm); v > 0 {
		slog.Warn("reading order has unresolved conflicts", "violations", v)
	}

	ordered := make([]pageread.Line, len(lines))
	for i, j := range perm {
		ordered[i] = lines[j]
	}
	return ordered
}

func asPage(lines []pageread.Line, h, w int) *pageread.Page {
	return &pageread.Page{Lines: lines, Height: h, Width: w}
}

func asBoxJSON(b geom.Box) boxJSON {
	return boxJSON{Top: b.Top, Left: b.Left, Bottom: b.Bottom, Right: b.Right}
}

func writeOutput(path, s string) error {
	if path == "" {
		_, err := fmt.Print(s)
		return err
	}
	return os.WriteFile(path, []byte(s), 0644)
}
