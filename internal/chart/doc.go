package chart

// Package chart renders the compliance pie chart into an image.Image that the
// desktop dashboard places on a canvas.
