package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ckearl/senahpark.com/db"
	"github.com/ckearl/senahpark.com/pkg/export"
)

var (
	exportDir      string
	exportMarkdown bool
)

var exportCmd = &cobra.Command{
	Use:   "export <lecture-id>",
	Short: "Export a lecture's transcript and insights to a file",
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

		format := export.FormatText
		if exportMarkdown {
			format = export.FormatMarkdown
		}
		path, err := export.Write(exportDir, *lec, segments, insights, format)
		if err != nil {
			return err
		}
		fmt.Printf("Exported to %s\n", path)
		return nil
	},
}

func init() {
	exportCmd.Flags().StringVarP(&exportDir, "out", "o", ".", "output directory")
	exportCmd.Flags().BoolVar(&exportMarkdown, "markdown", false, "write Markdown instead of plain text")
	rootCmd.AddCommand(exportCmd)
}
