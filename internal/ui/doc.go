// Package ui draws the heads-up display and the chunk overlay on top of the
// ebiten view. Everything but this file requires the ebiten build tag.
package ui
