package render

import "errors"

// ErrNoTable is returned when a document contains no <table> element after
// wrapping. It is fatal for the current render only; batch callers log it
// and continue with the next file.
var ErrNoTable = errors.New("no <table> found in document")

// ErrThemeSearchExhausted is returned when no theme satisfied the layout
// tolerance within the attempt budget. Proceeding with an unverified theme
// could visibly reflow the table, so the render fails instead.
var ErrThemeSearchExhausted = errors.New("no theme satisfied the layout tolerance")
