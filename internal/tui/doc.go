package tui

// Package tui is the terminal rendition of the dashboard, built on bubbletea.
// It shows the analytics cards, the device table and a compliance bar, and
// runs the console actions through the same task runner as the desktop window.
