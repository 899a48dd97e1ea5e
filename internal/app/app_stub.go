//go:build !ebiten

package app

import (
	"errors"

	"microlife/internal/control"
)

// ErrNoWindow is returned by Run in builds without window support.
var ErrNoWindow = errors.New("the window requires building with the 'ebiten' tag")

// Run reports that the headless build cannot open a window.
func Run(control.Config, int, ...control.Option) error {
	return ErrNoWindow
}
