// Package ui provides theme and color support for the command-line interface.
// It defines color schemes, ANSI escape code accessors, bordered panels for
// the interactive session and terminal detection used to switch colors and
// spinners off when output is redirected.
package ui
