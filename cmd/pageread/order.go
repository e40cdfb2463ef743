package main

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/tsawler/pageread/geom"
	"github.com/tsawler/pageread/layout"
)

type orderResult struct {
	Order []int     `json:"order"`
	Boxes []boxJSON `json:"boxes"`
}

var orderCmd = &cobra.Command{
	Use:   "order <boxes.json>",
	Short: "Sort line boxes into reading order",
	Long: `Order reads a JSON array of bounding boxes
([{"top", "left", "bottom", "right"}, ...]) and emits a permutation
sorting them into reading order, together with the boxes in that
order. Above-below beats left-right; a box standing between two
side-by-side boxes keeps them in column order.`,
	Args: cobra.ExactArgs(1),
	RunE: runOrder,
}

var orderOutput string

func init() {
	rootCmd.AddCommand(orderCmd)

	orderCmd.Flags().StringVarP(&orderOutput, "output", "o", "", "Write output to a file instead of stdout")
}

func runOrder(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("failed to read boxes: %w", err)
	}
	var raw []boxJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("failed to parse boxes: %w", err)
	}

	boxes := make([]geom.Box, len(raw))
	for i, b := range raw {
		boxes[i] = geom.Box{Top: b.Top, Left: b.Left, Bottom: b.Bottom, Right: b.Right}
		if boxes[i].Empty() {
			return fmt.Errorf("box %d is empty", i)
		}
	}

	order := layout.BuildOrder(boxes)
	perm := order.Linearize()
	if v := order.Violations(perm); v > 0 {
		slog.Warn("reading order has unresolved conflicts", "violations", v)
	}

	result := orderResult{Order: perm}
	for _, i := range perm {
		result.Boxes = append(result.Boxes, raw[i])
	}
	out, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return err
	}
	return writeOutput(orderOutput, string(out)+"\n")
}
