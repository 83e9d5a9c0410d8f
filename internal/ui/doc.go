// Package ui formats terminal output for the dhlink CLI.
//
// Formatters colour their text when stdout is a terminal and fall back to
// plain decorations (quotes, brackets) when NO_COLOR is set, TERM is "dumb"
// or output is redirected.
package ui
