/*
 * colors.go, part of celltab.
 *
 * Copyright 2026 The celltab authors
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

package fitplot

import (
	"image/color"
	"math"
)

//hsv2RGB takes hue (0-360), value and saturation (0-1) and returns
//the corresponding opaque color.
func hsv2RGB(h, v, s float64) color.RGBA {
	conversion := 255.0 * v
	if s == 0.0 {
		c := uint8(conversion)
		return color.RGBA{R: c, G: c, B: c, A: 255}
	}
	h = math.Mod(h, 360) / 60
	i := math.Floor(h)
	f := h - i
	p := 1 - s
	q := 1 - s*f
	t := 1 - s*(1-f)
	var r, g, b float64
	switch int(i) {
	case 0:
		r, g, b = 1, t, p
	case 1:
		r, g, b = q, 1, p
	case 2:
		r, g, b = p, 1, t
	case 3:
		r, g, b = p, q, 1
	case 4:
		r, g, b = t, p, 1
	default:
		r, g, b = 1, p, q
	}
	return color.RGBA{R: uint8(r * conversion), G: uint8(g * conversion), B: uint8(b * conversion), A: 255}
}

//palette returns the color of the key-th of steps series. Hues run from
//red to violet, skipping the yellows, which are hard to see on white.
func palette(key, steps int) color.RGBA {
	if steps < 1 {
		steps = 1
	}
	hp := float64(key)*260.0/float64(steps) + 20.0
	h := hp + 20.0
	if hp < 55 {
		h = hp - 20.0
	}
	return hsv2RGB(h, 0.9, 0.8)
}
