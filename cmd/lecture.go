package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ckearl/senahpark.com/audio"
	"github.com/ckearl/senahpark.com/db"
	"github.com/ckearl/senahpark.com/pkg/timeutil"
	"github.com/ckearl/senahpark.com/tui/forms"
)

var lectureCmd = &cobra.Command{
	Use:   "lecture",
	Short: "Manage the lecture catalog",
}

var lectureListCmd = &cobra.Command{
	Use:   "list",
	Short: "List lectures grouped by class",
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

		groups, err := db.ListLectures(database)
		if err != nil {
			return err
		}
		if len(groups) == 0 {
			fmt.Println("No lectures yet. Add one with: senahpark lecture add")
			return nil
		}
		for _, g := range groups {
			fmt.Printf("%s\n", g.ClassNumber)
			for _, lec := range g.Lectures {
				duration := timeutil.FormatTime(float64(lec.DurationSeconds))
				fmt.Printf("  %s  %s  %s  (%s)\n", lec.ID, lec.Date, lec.Title, duration)
			}
			fmt.Println()
		}
		return nil
	},
}

var lectureAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a lecture interactively",
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

		var result forms.LectureFormResult
		if err := forms.NewLectureForm(&result).Run(); err != nil {
			return err
		}

		created, err := db.CreateLecture(database, result.Lecture())
		if err != nil {
			return err
		}
		fmt.Printf("Added %q (%s)\n", created.Title, created.ID)

		// Point out where the audio file should go
		resolver := audio.NewResolver(cfg.AudioDir)
		if _, err := resolver.Resolve(created); err != nil {
			names := audio.Candidates(created)
			fmt.Printf("No audio found yet; drop a file in %s named e.g. %s.mp3\n", resolver.Dir(), names[0])
		}
		return nil
	},
}

var lectureShowCmd = &cobra.Command{
	Use:   "show <lecture-id>",
	Short: "Show a lecture's details",
	Args:  cobra.ExactArgs(1),
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
		segments, err := db.GetSegments(database, lec.ID)
		if err != nil {
			return err
		}
		insights, err := db.GetInsights(database, lec.ID)
		if err != nil {
			return err
		}

		fmt.Printf("%s\n", lec.Title)
		fmt.Printf("  Class:     %s\n", lec.ClassNumber)
		fmt.Printf("  Professor: %s\n", lec.Professor)
		fmt.Printf("  Date:      %s\n", lec.Date)
		fmt.Printf("  Duration:  %s\n", timeutil.FormatTime(float64(lec.DurationSeconds)))
		fmt.Printf("  Language:  %s\n", lec.Language)
		fmt.Printf("  Segments:  %d\n", len(segments))
		if insights != nil {
			summary := insights.Summary
			if len(summary) > 70 {
				summary = summary[:69] + "…"
			}
			fmt.Printf("  Insights:  %s\n", summary)
		}

		resolver := audio.NewResolver(cfg.AudioDir)
		if path, err := resolver.Resolve(*lec); err == nil {
			fmt.Printf("  Audio:     %s\n", path)
		} else {
			fmt.Printf("  Audio:     not found in %s\n", resolver.Dir())
		}
		return nil
	},
}

var lectureRmCmd = &cobra.Command{
	Use:   "rm <lecture-id>",
	Short: "Delete a lecture and its transcript",
	Args:  cobra.ExactArgs(1),
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

		force, _ := cmd.Flags().GetBool("force")
		if !force {
			fmt.Printf("Delete %q and its transcript? [y/N] ", lec.Title)
			var answer string
			fmt.Scanln(&answer)
			if !strings.HasPrefix(strings.ToLower(answer), "y") {
				fmt.Println("Aborted.")
				return nil
			}
		}

		if err := db.DeleteLecture(database, lec.ID); err != nil {
			return err
		}
		fmt.Printf("Deleted %q\n", lec.Title)
		return nil
	},
}

func init() {
	lectureRmCmd.Flags().BoolP("force", "f", false, "skip the confirmation prompt")
	lectureCmd.AddCommand(lectureListCmd)
	lectureCmd.AddCommand(lectureAddCmd)
	lectureCmd.AddCommand(lectureShowCmd)
	lectureCmd.AddCommand(lectureRmCmd)
	rootCmd.AddCommand(lectureCmd)
}
