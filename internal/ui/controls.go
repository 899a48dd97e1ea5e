// Package ui holds the parameter panel drawn beside the window's LED matrix.
package ui

import (
	"image"
	"strconv"

	"microlife/internal/core"
)

// Source supplies the parameter snapshot the panel displays.
type Source interface {
	Parameters() core.ParameterSnapshot
}

// stateKeys lists the read-only counters shown under the controls.
var stateKeys = []string{"frame", "population", "stall_count", "ignore_frames", "pattern"}

type controlState struct {
	control core.ParameterControl
	value   string

	intValue int
	hasValue bool

	top       int
	minusRect image.Rectangle
	plusRect  image.Rectangle
}

func newControlStates(controls []core.ParameterControl, width int) []controlState {
	states := make([]controlState, len(controls))
	for i, ctrl := range controls {
		states[i] = controlState{control: ctrl, value: "--"}
	}
	layoutControls(states, width)
	return states
}

func layoutControls(states []controlState, width int) {
	if width <= 0 {
		return
	}
	for i := range states {
		top := controlsTop + i*lineHeight
		buttonY := top + (lineHeight-buttonSize)/2
		plusRect := image.Rect(width-panelPadding-buttonSize, buttonY, width-panelPadding, buttonY+buttonSize)
		minusRect := image.Rect(plusRect.Min.X-buttonGap-buttonSize, buttonY, plusRect.Min.X-buttonGap, buttonY+buttonSize)
		states[i].top = top
		states[i].minusRect = minusRect
		states[i].plusRect = plusRect
	}
}

// refreshValues copies the current values for every control out of snap.
func refreshValues(states []controlState, snap core.ParameterSnapshot) {
	for i := range states {
		s := &states[i]
		s.hasValue = false
		s.value = "--"
		p, ok := snap.Lookup(s.control.Key)
		if !ok || s.control.Type != core.ParamTypeInt {
			continue
		}
		parsed, err := strconv.Atoi(p.Value)
		if err != nil {
			continue
		}
		s.intValue = parsed
		s.value = strconv.Itoa(parsed)
		s.hasValue = true
	}
}

// adjustTarget returns the value one step in direction from current, clamped
// to the control's bounds, and whether it differs from current.
func adjustTarget(ctrl core.ParameterControl, current, direction int) (int, bool) {
	if direction == 0 {
		return current, false
	}
	step := ctrl.Step
	if step <= 0 {
		step = 1
	}
	target := current + direction*step
	if ctrl.HasMin && target < ctrl.Min {
		target = ctrl.Min
	}
	if ctrl.HasMax && target > ctrl.Max {
		target = ctrl.Max
	}
	return target, target != current
}

// apply sends the adjusted value of s to setter and records it on success.
func apply(s *controlState, setter core.IntParameterSetter, direction int) bool {
	if s == nil || setter == nil || !s.hasValue {
		return false
	}
	target, changed := adjustTarget(s.control, s.intValue, direction)
	if !changed {
		return false
	}
	if !setter.SetIntParameter(s.control.Key, target) {
		return false
	}
	s.intValue = target
	s.value = strconv.Itoa(target)
	return true
}

// stateLines formats the read-only counters as "Label: value" rows.
func stateLines(snap core.ParameterSnapshot) []string {
	lines := make([]string, 0, len(stateKeys))
	for _, key := range stateKeys {
		if p, ok := snap.Lookup(key); ok {
			lines = append(lines, p.Label+": "+p.Value)
		}
	}
	return lines
}

func pointInRect(x, y int, rect image.Rectangle) bool {
	return x >= rect.Min.X && x < rect.Max.X && y >= rect.Min.Y && y < rect.Max.Y
}

const (
	panelPadding   = 12
	lineHeight     = 36
	buttonSize     = 24
	buttonGap      = 6
	headerBaseline = 18
	labelBaseline  = 24
	stateSpacing   = 16
	controlsTop    = panelPadding + headerBaseline + 14
)
