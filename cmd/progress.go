package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ckearl/senahpark.com/db"
	"github.com/ckearl/senahpark.com/pkg/timeutil"
	"github.com/ckearl/senahpark.com/progress"
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Inspect saved listening positions",
}

var progressShowCmd = &cobra.Command{
	Use:   "show <lecture-id>",
	Short: "Show the saved position for a lecture",
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

		store := progress.NewStore(database, cfg.ResetThreshold, cfg.ProgressTTL())
		offset, ok, err := store.Load(lec.ID)
		if err != nil {
			return err
		}
		if !ok {
			fmt.Printf("No saved position for %q\n", lec.Title)
			return nil
		}
		fmt.Printf("%q resumes at %s\n", lec.Title, timeutil.FormatTime(float64(offset)))
		return nil
	},
}

var progressClearCmd = &cobra.Command{
	Use:   "clear <lecture-id>",
	Short: "Clear the saved position for a lecture",
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
		store := progress.NewStore(database, cfg.ResetThreshold, cfg.ProgressTTL())
		if err := store.Clear(lec.ID); err != nil {
			return err
		}
		fmt.Printf("Cleared saved position for %q\n", lec.Title)
		return nil
	},
}

func init() {
	progressCmd.AddCommand(progressShowCmd)
	progressCmd.AddCommand(progressClearCmd)
	rootCmd.AddCommand(progressCmd)
}
