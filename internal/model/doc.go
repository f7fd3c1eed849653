package model

// Package model defines domain data structures used across the app: simulated
// tasks, device rows, dashboard stats and the console action catalog.
// Structures are plain values so UI layers can bind snapshots without locking.
