package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ckearl/senahpark.com/db"
	"github.com/ckearl/senahpark.com/transcript"
)

var importInsightsPath string

var importCmd = &cobra.Command{
	Use:   "import <lecture-id> <transcript.json>",
	Short: "Import a transcript for a lecture",
	Long: `Import a transcript from a JSON file. The file is an array of segments:

  [{"start_time": 0, "end_time": 15.5, "text": "...",
    "speaker_name": "Dr. Mitchell", "segment_order": 1}, ...]

Segments must be in order; the import replaces any existing transcript for
the lecture. Pass --insights to load a summary file alongside:

  {"summary": "...", "key_terms": [...], "main_ideas": [...],
   "review_questions": [...]}`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		database, err := openDatabase(cfg)
		if err != nil {
			return err
		}
		defer database.Close()

		lec, err := db.GetLecture(database, args[0])
		if err != nil {
			return err
		}

		data, err := os.ReadFile(args[1])
		if err != nil {
			return fmt.Errorf("failed to read transcript: %w", err)
		}
		var segments []transcript.Segment
		if err := json.Unmarshal(data, &segments); err != nil {
			return fmt.Errorf("failed to parse transcript: %w", err)
		}

		if err := db.ReplaceSegments(database, lec.ID, segments); err != nil {
			return err
		}
		fmt.Printf("Imported %d segments for %q\n", len(segments), lec.Title)

		if importInsightsPath != "" {
			data, err := os.ReadFile(importInsightsPath)
			if err != nil {
				return fmt.Errorf("failed to read insights: %w", err)
			}
			var insights db.Insights
			if err := json.Unmarshal(data, &insights); err != nil {
				return fmt.Errorf("failed to parse insights: %w", err)
			}
			insights.LectureID = lec.ID
			if err := db.UpsertInsights(database, insights); err != nil {
				return err
			}
			fmt.Println("Imported insights")
		}
		return nil
	},
}

func init() {
	importCmd.Flags().StringVar(&importInsightsPath, "insights", "", "path to an insights JSON file")
	rootCmd.AddCommand(importCmd)
}
