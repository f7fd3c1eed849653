package runner

// Package runner implements the simulated task pipeline behind the console
// actions. A task advances from 1% to 100% on a fixed step interval in a
// background goroutine, reports every step to observers and signals
// completion exactly once. Tasks live in a registry keyed by ID while they
// are pending or running; overlapping starts are rejected or queued according
// to the configured policy.
