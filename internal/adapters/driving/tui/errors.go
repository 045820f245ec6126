package tui

import "errors"

// ErrMissingReaderSession is returned when the reader session is not provided.
var ErrMissingReaderSession = errors.New("tui: reader session is required")

// ErrMissingSelectionController is returned when the selection controller is not provided.
var ErrMissingSelectionController = errors.New("tui: selection controller is required")

// ErrMissingAnnotationService is returned when the annotation service is not provided.
var ErrMissingAnnotationService = errors.New("tui: annotation service is required")

// ErrMissingSearchService is returned when the search service is not provided.
var ErrMissingSearchService = errors.New("tui: search service is required")
