package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/narrator-cli/internal/core/domain"
)

var (
	segmentMethod string
	segmentLength int
	segmentClean  bool
	segmentJSON   bool
)

var segmentCmd = &cobra.Command{
	Use:   "segment [file]",
	Short: "Split text into narration segments",
	Long: `Splits text into segments for narration.

Methods:
  paragraph - pack whole paragraphs up to --length words (default)
  sentence  - pack whole sentences up to --length words
  custom    - fixed windows of --length words

--length must be between 50 and 500 in steps of 25. Defaults come from
the segment.method and segment.length settings.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSegment,
}

func init() {
	segmentCmd.Flags().StringVarP(&segmentMethod, "method", "m", "", "paragraph, sentence or custom")
	segmentCmd.Flags().IntVarP(&segmentLength, "length", "l", 0, "target words per segment")
	segmentCmd.Flags().BoolVar(&segmentClean, "clean", false, "clean the text with the enabled rules first")
	segmentCmd.Flags().BoolVar(&segmentJSON, "json", false, "output segments as JSON")
	rootCmd.AddCommand(segmentCmd)
}

func runSegment(cmd *cobra.Command, args []string) error {
	if segmentService == nil {
		return errNotConfigured("segment")
	}
	ctx := cmd.Context()

	text, err := readInput(ctx, cmd, args)
	if err != nil {
		return err
	}
	if segmentClean {
		if cleaningService == nil {
			return errNotConfigured("cleaning")
		}
		result, err := cleaningService.Clean(ctx, text)
		if err != nil {
			return fmt.Errorf("clean: %w", err)
		}
		text = result.Output
	}

	opts := segmentService.DefaultOptions(ctx)
	if segmentMethod != "" {
		opts.Method = domain.SegmentMethod(segmentMethod)
	}
	if segmentLength != 0 {
		opts.Length = segmentLength
	}

	segments, err := segmentService.Segment(ctx, text, opts)
	if err != nil {
		return err
	}

	if segmentJSON {
		if segments == nil {
			segments = []domain.Segment{}
		}
		data, err := json.MarshalIndent(segments, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal segments: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	words := 0
	for i := range segments {
		words += segments[i].Words
		cmd.Printf("[%d] (%d words)\n%s\n\n", segments[i].Position+1, segments[i].Words, segments[i].Text)
	}
	cmd.Printf("%d segments, %d words, about %d min (%s, %d words)\n",
		len(segments), words, domain.ReadingMinutes(words), opts.Method.Description(), opts.Length)
	return nil
}
