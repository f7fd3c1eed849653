package ui

// Package ui contains the Fyne-based desktop dashboard. Dashboard is the single
// presentation controller: it owns every widget handle, wires the action
// buttons to the task runner and marshals runner updates onto the UI thread.
// All UI strings are localized via Localization.
