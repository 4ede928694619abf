package cmd

import (
	"database/sql"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ckearl/senahpark.com/config"
	"github.com/ckearl/senahpark.com/db"
	"github.com/ckearl/senahpark.com/deps"
)

var Version = "0.1.0"

// configPath is the --config flag; empty means the default location.
var configPath string

var rootCmd = &cobra.Command{
	Use:   "senahpark",
	Short: "A terminal lecture player with synced transcripts",
	Long: `senahpark is a terminal player for recorded lectures. Audio plays in
mpv while the transcript scrolls in sync, with searchable segments,
per-lecture insights, and saved listening positions in SQLite.

Features:
  - Play lecture audio with a live, auto-scrolling transcript
  - Search within a transcript while listening
  - Resume each lecture where you left off
  - Import transcripts and manage the lecture catalog`,
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("senahpark version %s\n", Version)
	},
}

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check system dependencies",
	Long:  `Check that all required system dependencies (mpv) are installed and available.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("Checking dependencies...")
		fmt.Println()

		missing := deps.CheckAll()
		if len(missing) == 0 {
			fmt.Println("✓ mpv: OK")
			fmt.Println()
			fmt.Println("All dependencies are installed!")
			return
		}

		for _, err := range missing {
			var depErr *deps.DependencyError
			if errors.As(err, &depErr) {
				fmt.Printf("✗ %s: NOT FOUND\n", depErr.Name)
				fmt.Printf("  Install from: %s\n", depErr.InstallURL)
			} else {
				fmt.Printf("✗ %v\n", err)
			}
		}
		fmt.Println()
		fmt.Println("Some dependencies are missing. Please install them to use all features.")
		os.Exit(1)
	},
}

// loadConfig reads the config file from --config or the default path.
func loadConfig() (config.Config, error) {
	path := configPath
	if path == "" {
		var err error
		path, err = config.DefaultPath()
		if err != nil {
			return config.Config{}, err
		}
	}
	return config.Load(path)
}

// openDatabase opens the catalog database from the loaded config.
func openDatabase(cfg config.Config) (*sql.DB, error) {
	path := cfg.DatabasePath
	if path == "" {
		var err error
		path, err = db.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return db.Open(path)
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(doctorCmd)
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
