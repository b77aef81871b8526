package scene

import (
	"math"

	"github.com/san-kum/phasetime/internal/params"
	"github.com/san-kum/phasetime/internal/surface"
)

const qubits = 12

// Entanglement is the bond strength between qubits i and j on the ring;
// it falls off with ring distance.
func Entanglement(i, j int) float64 {
	dist := i - j
	if dist < 0 {
		dist = -dist
	}
	dist %= qubits
	if qubits-dist < dist {
		dist = qubits - dist
	}
	return 1 / (1 + float64(dist)*0.5)
}

func drawEmergentGravity(s *surface.Surface, t float64, _ params.Params) {
	w, h, d := s.W(), s.H(), s.DPR()
	cx, cy := w/2, h/2
	dark := surface.Hex("#333333")
	purple := surface.Hex("#8e44ad")

	text(s, "EMERGENT GRAVITY: Spacetime from Entanglement", cx, 30*d, 16, false, dark, surface.AlignCenter)

	radius := 120 * d
	pos := make([]surface.Point, qubits)
	for i := range pos {
		a := float64(i) / qubits * tau
		pos[i] = surface.Pt(cx+radius*math.Cos(a), cy+radius*math.Sin(a))
	}

	for i := 0; i < qubits; i++ {
		for j := i + 1; j < qubits; j++ {
			e := Entanglement(i, j)
			if e <= 0.3 {
				continue
			}
			pulse := math.Sin(WrapPhase(t*0.2+float64(i+j)))*0.3 + 0.7
			line(s, pos[i].X, pos[i].Y, pos[j].X, pos[j].Y, e*4, surface.RGBA(155, 89, 182, surface.Clamp01(e*pulse*0.5)))
		}
	}

	for i, q := range pos {
		pulse := math.Sin(WrapPhase(t*0.5+float64(i)*0.5))*0.3 + 0.7
		dot(s, q.X, q.Y, 5*d, surface.RGBA(142, 68, 173, surface.Clamp01(pulse)))
		ring(s, q.X, q.Y, 5*d, 2, purple)
	}

	text(s, "ER = EPR", cx, cy, 14, false, purple, surface.AlignCenter)
	text(s, "Wormhole ≈ Entanglement", cx, cy+18*d, 11, false, purple, surface.AlignCenter)
	text(s, "Distance = 1 / (entanglement strength)", cx, h-50*d, 13, false, dark, surface.AlignCenter)
	text(s, "Spacetime is emergent illusion - entanglement is fundamental", cx, h-30*d, 13, false, dark, surface.AlignCenter)
}
