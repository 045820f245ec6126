package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/margin-cli/internal/core/domain"
)

var (
	annotationPage     int
	annotationWindow   int
	annotationPerPage  int
	annotationJSON     bool
	annotationKind     string
	annotationBody     string
	annotationColor    string
	annotationOnPage   int
	annotationBounds   []float64
	annotationAtScale  float64
)

var annotationCmd = &cobra.Command{
	Use:   "annotations",
	Short: "Manage annotations on a document copy",
	Long: `List, add and delete annotations.

Anchors are tied to exact text spans; the interactive reader is the
primary authoring surface, but annotations can also be managed here.`,
}

var annotationListCmd = &cobra.Command{
	Use:   "list [copy-id]",
	Short: "List annotations for a document copy",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnnotationList,
}

var annotationAddCmd = &cobra.Command{
	Use:   "add [copy-id] [text]",
	Short: "Add an annotation anchored to a text span",
	Long: `Anchor a comment or highlight to the given text span.

The span geometry is given in viewer units with --bounds left,top,width,height
and --scale; it is normalised to unscaled document units before saving.`,
	Args: cobra.ExactArgs(2),
	RunE: runAnnotationAdd,
}

var annotationDeleteCmd = &cobra.Command{
	Use:   "delete [annotation-id]",
	Short: "Delete an annotation",
	Long: `Delete an annotation by id.

Deleting an annotation that is already gone is treated as success.`,
	Args: cobra.ExactArgs(1),
	RunE: runAnnotationDelete,
}

func init() {
	annotationListCmd.Flags().IntVar(&annotationPage, "page", 0, "only annotations on this document page")
	annotationListCmd.Flags().IntVar(&annotationWindow, "window", 1, "result window to display")
	annotationListCmd.Flags().IntVar(&annotationPerPage, "per-page", 10, "annotations per result window")
	annotationListCmd.Flags().BoolVar(&annotationJSON, "json", false, "output as JSON")

	annotationAddCmd.Flags().StringVar(&annotationKind, "kind", "comment", "annotation kind: comment or highlight")
	annotationAddCmd.Flags().StringVar(&annotationBody, "body", "", "note text (required for comments)")
	annotationAddCmd.Flags().StringVar(&annotationColor, "color", domain.ColorYellow, "highlight colour")
	annotationAddCmd.Flags().IntVar(&annotationOnPage, "on-page", 1, "1-based page the span lives on")
	annotationAddCmd.Flags().Float64SliceVar(&annotationBounds, "bounds", nil, "span geometry: left,top,width,height in viewer units")
	annotationAddCmd.Flags().Float64Var(&annotationAtScale, "scale", 1.0, "viewer scale the bounds were captured at")

	annotationCmd.AddCommand(annotationListCmd)
	annotationCmd.AddCommand(annotationAddCmd)
	annotationCmd.AddCommand(annotationDeleteCmd)
	rootCmd.AddCommand(annotationCmd)
}

func runAnnotationList(cmd *cobra.Command, args []string) error {
	if annotationService == nil {
		return errors.New("annotation service not configured")
	}

	anchors, err := annotationService.Load(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("loading annotations: %w", err)
	}

	if annotationPage > 0 {
		anchors = annotationService.ForPage(annotationPage)
	}

	perPage := annotationPerPage
	if !cmd.Flags().Changed("per-page") && configStore != nil {
		if configured := configStore.GetInt("list.page_size"); configured > 0 {
			perPage = configured
		}
	}

	window := domain.Paginate(anchors, annotationWindow, perPage)

	if annotationJSON {
		data, err := json.MarshalIndent(window, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal annotations: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	if len(window.Slice) == 0 {
		cmd.Println("No annotations found.")
		return nil
	}

	cmd.Printf("Annotations (window %d of %d):\n\n", window.PageIndex, window.TotalPages)
	for i := range window.Slice {
		printAnchor(cmd, &window.Slice[i])
	}
	return nil
}

func printAnchor(cmd *cobra.Command, anchor *domain.Anchor) {
	cmd.Printf("  [%s] %s p.%d  %q\n", anchor.ID, anchor.Kind, anchor.Page, anchor.Text)
	if anchor.Body != "" {
		cmd.Printf("      %s\n", anchor.Body)
	}
	if anchor.Kind == domain.KindHighlight && anchor.Color != "" {
		cmd.Printf("      colour: %s\n", anchor.Color)
	}
	if !anchor.CreatedAt.IsZero() {
		cmd.Printf("      created: %s\n", anchor.CreatedAt.Format(time.RFC3339))
	}
	cmd.Println()
}

func runAnnotationAdd(cmd *cobra.Command, args []string) error {
	if annotationService == nil {
		return errors.New("annotation service not configured")
	}

	kind := domain.AnchorKind(strings.ToLower(annotationKind))
	if !kind.Valid() {
		return fmt.Errorf("%w: unknown kind %q", domain.ErrInvalidInput, annotationKind)
	}

	bounds := domain.Rect{}
	if len(annotationBounds) > 0 {
		if len(annotationBounds) != 4 {
			return fmt.Errorf("%w: --bounds needs left,top,width,height", domain.ErrInvalidInput)
		}
		bounds = domain.Rect{
			Left:   annotationBounds[0],
			Top:    annotationBounds[1],
			Width:  annotationBounds[2],
			Height: annotationBounds[3],
		}
	}

	if _, err := annotationService.Load(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("loading annotations: %w", err)
	}

	candidate := domain.SelectionCandidate{
		Text:       args[1],
		Bounds:     bounds,
		Page:       annotationOnPage,
		Scale:      annotationAtScale,
		CapturedAt: time.Now(),
	}

	anchor, err := annotationService.Create(cmd.Context(), candidate, kind, annotationBody, annotationColor)
	if err != nil {
		return fmt.Errorf("creating annotation: %w", err)
	}

	cmd.Printf("Created %s %s on page %d\n", anchor.Kind, anchor.ID, anchor.Page)
	return nil
}

func runAnnotationDelete(cmd *cobra.Command, args []string) error {
	if annotationService == nil {
		return errors.New("annotation service not configured")
	}

	if err := annotationService.Remove(cmd.Context(), args[0]); err != nil {
		return fmt.Errorf("deleting annotation: %w", err)
	}

	cmd.Printf("Deleted annotation %s\n", args[0])
	return nil
}
