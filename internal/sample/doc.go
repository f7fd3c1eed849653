package sample

// Package sample generates the synthetic tenant data shown by the dashboards:
// device rows, device details, compliance chart frames and analytics cards.
