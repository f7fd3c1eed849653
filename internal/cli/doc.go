package cli

// Package cli holds the cobra command tree of intune-dash: the desktop window
// (default), the terminal dashboard, headless action runs and the device
// listing.
