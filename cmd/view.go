package cmd

import (
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/ckearl/senahpark.com/audio"
	"github.com/ckearl/senahpark.com/mpv"
	"github.com/ckearl/senahpark.com/progress"
	"github.com/ckearl/senahpark.com/session"
	"github.com/ckearl/senahpark.com/tui"
)

var viewCmd = &cobra.Command{
	Use:   "view",
	Short: "Open the lecture player",
	Long: `Open the interactive lecture player. mpv is launched in the background
for audio; pick a lecture from the sidebar and the transcript follows
playback. Positions are saved automatically and restored on the next run.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		database, err := openDatabase(cfg)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer database.Close()

		store := progress.NewStore(database, cfg.ResetThreshold, cfg.ProgressTTL())
		if err := store.PurgeExpired(); err != nil {
			return err
		}

		coord := session.New(
			session.SQLCatalog{DB: database},
			audio.NewResolver(cfg.AudioDir),
			store,
		)

		// Launch mpv idle and wait for its socket
		process, err := mpv.LaunchAudio(cfg.SocketPath)
		if err != nil {
			return fmt.Errorf("failed to launch mpv: %w", err)
		}
		client := mpv.NewClient(cfg.SocketPath)
		var connectErr error
		for i := 0; i < 50; i++ { // Wait up to 5 seconds
			time.Sleep(100 * time.Millisecond)
			connectErr = client.Connect()
			if connectErr == nil {
				break
			}
		}
		if connectErr != nil {
			if process.Process != nil {
				process.Process.Kill()
			}
			return fmt.Errorf("failed to connect to mpv: %w", connectErr)
		}
		defer func() {
			client.Close()
			if process.Process != nil {
				process.Process.Kill()
			}
			process.Wait()
		}()

		model := tui.NewModel(client, coord, cfg)
		program := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
		if _, err := program.Run(); err != nil {
			return fmt.Errorf("player failed: %w", err)
		}

		// Any save still pending lands before the process exits
		coord.Flush()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
