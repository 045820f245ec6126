package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime/debug"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/margin-cli/internal/adapters/driven/pdffile"
	"github.com/custodia-labs/margin-cli/internal/adapters/driving/tui"
	"github.com/custodia-labs/margin-cli/internal/core/domain"
	"github.com/custodia-labs/margin-cli/internal/core/services"
)

var (
	readPage int
	readZoom float64
)

// readCmd opens the interactive reader on a PDF file.
var readCmd = &cobra.Command{
	Use:   "read <file.pdf>",
	Short: "Open the interactive reader on a PDF document",
	Long: `Open the interactive terminal reader on a PDF document.

The reader restores the last saved reading position for the document
and tracks progress as pages turn.

Controls:
  ←/→, h/l - Turn pages
  v        - Start a text selection
  a        - Annotation list
  /        - Knowledge search
  ?        - Help
  q        - Quit`,
	Args: cobra.ExactArgs(1),
	RunE: runRead,
}

func init() {
	readCmd.Flags().IntVar(&readPage, "page", 0, "start at this page instead of the saved position")
	readCmd.Flags().Float64Var(&readZoom, "zoom", 0, "start at this zoom factor")
	rootCmd.AddCommand(readCmd)
}

func runRead(cmd *cobra.Command, args []string) error {
	// Panic recovery keeps a stack trace visible after the alternate
	// screen is torn down.
	defer func() {
		if r := recover(); r != nil {
			fmt.Fprintf(os.Stderr, "Panic in reader: %v\n", r)
			fmt.Fprintf(os.Stderr, "Stack trace:\n%s\n", debug.Stack())
		}
	}()

	if annotationService == nil || searchService == nil || progressStore == nil {
		return errors.New("services not configured")
	}

	path := args[0]
	source, err := pdffile.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer source.Close()

	ctx := cmd.Context()
	copyID := copyIDForPath(path)

	if _, err := annotationService.Load(ctx, copyID); err != nil {
		// Recoverable: the reader stays usable with an empty list.
		cmd.PrintErrf("Warning: could not load annotations: %v\n", err)
	}

	machine := services.NewSelectionMachine(services.NewValidator(), annotationService)
	tracker := services.NewProgressTracker(progressStore, copyID, quietWindow())

	session, err := services.NewReaderSession(ctx, copyID, source, tracker, machine)
	if err != nil {
		return err
	}

	restorePosition(cmd, session, copyID)

	app, err := tui.NewApp(&tui.Ports{
		Reader:      session,
		Selection:   machine,
		Annotations: annotationService,
		Search:      searchService,
	})
	if err != nil {
		return fmt.Errorf("creating reader UI: %w", err)
	}

	return app.WithContext(ctx).Run()
}

// restorePosition moves the session to the saved position, unless the
// start flags override it.
func restorePosition(cmd *cobra.Command, session *services.ReaderSession, copyID string) {
	if readZoom > 0 {
		session.SetZoom(readZoom)
	}
	if readPage > 0 {
		session.GoToPage(readPage)
		return
	}

	if positionCache == nil {
		return
	}
	pos, err := positionCache.Position(cmd.Context(), copyID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			cmd.PrintErrf("Warning: could not restore position: %v\n", err)
		}
		return
	}
	if readZoom <= 0 && pos.Zoom > 0 {
		session.SetZoom(pos.Zoom)
	}
	session.GoToPage(pos.CurrentPage)
}

// quietWindow returns the configured progress debounce window.
func quietWindow() time.Duration {
	if configStore == nil {
		return services.DefaultQuietWindow
	}
	if secs := configStore.GetFloat("reading.quiet_seconds"); secs > 0 {
		return time.Duration(secs * float64(time.Second))
	}
	return services.DefaultQuietWindow
}

// copyIDForPath derives a stable copy identifier from the file name.
func copyIDForPath(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
