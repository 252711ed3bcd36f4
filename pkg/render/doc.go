// Package render draws a view.Snapshot as an HTML page or a plain text table.
//
// Both renderers are pure: they read the snapshot and write to an io.Writer.
// Interactivity in the HTML page is plain links and a GET form, so every
// user input round-trips through the server as one of the three view events.
package render
