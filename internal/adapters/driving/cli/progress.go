package cli

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/margin-cli/internal/core/domain"
)

var progressZoom float64

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show or set reading progress",
}

var progressShowCmd = &cobra.Command{
	Use:   "show [copy-id]",
	Short: "Show the cached reading position",
	Args:  cobra.ExactArgs(1),
	RunE:  runProgressShow,
}

var progressSetCmd = &cobra.Command{
	Use:   "set [copy-id] [page] [total-pages]",
	Short: "Save a reading position",
	Args:  cobra.ExactArgs(3),
	RunE:  runProgressSet,
}

func init() {
	progressSetCmd.Flags().Float64Var(&progressZoom, "zoom", 1.0, "scale factor to record")
	progressCmd.AddCommand(progressShowCmd)
	progressCmd.AddCommand(progressSetCmd)
	rootCmd.AddCommand(progressCmd)
}

func runProgressShow(cmd *cobra.Command, args []string) error {
	if positionCache == nil {
		return errors.New("position cache not configured")
	}

	pos, err := positionCache.Position(cmd.Context(), args[0])
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			cmd.Println("No reading position recorded.")
			return nil
		}
		return fmt.Errorf("reading position: %w", err)
	}

	cmd.Printf("Copy %s: page %d of %d (%.0f%%), zoom %.2f\n",
		pos.CopyID, pos.CurrentPage, pos.TotalPages, pos.PercentComplete(), pos.Zoom)
	return nil
}

func runProgressSet(cmd *cobra.Command, args []string) error {
	if progressStore == nil {
		return errors.New("progress store not configured")
	}

	page, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("%w: page %q", domain.ErrInvalidInput, args[1])
	}
	total, err := strconv.Atoi(args[2])
	if err != nil {
		return fmt.Errorf("%w: total pages %q", domain.ErrInvalidInput, args[2])
	}

	pos := domain.ReadingPosition{
		CopyID:      args[0],
		CurrentPage: page,
		TotalPages:  total,
		Zoom:        progressZoom,
	}
	if err := progressStore.SaveProgress(cmd.Context(), pos); err != nil {
		return fmt.Errorf("saving progress: %w", err)
	}

	cmd.Printf("Saved: page %d of %d (%.0f%%)\n", page, total, pos.PercentComplete())
	return nil
}
