package session

// GripHUD is the per-frame grip readout for an external renderer: the raw
// force, how full the grip bar should draw, and the input source label.
type GripHUD struct {
	Force     float64
	FillRatio float64
	Hardware  string
}

// NewGripHUD clamps the fill ratio to [0, 1]. maxForce at or below zero
// yields an empty bar rather than a division blowup.
func NewGripHUD(force, maxForce float64, hardwareConnected bool) GripHUD {
	h := GripHUD{Force: force, Hardware: "Simulated"}
	if hardwareConnected {
		h.Hardware = "Connected"
	}
	if maxForce > 0 {
		ratio := force / maxForce
		if ratio < 0 {
			ratio = 0
		}
		if ratio > 1 {
			ratio = 1
		}
		h.FillRatio = ratio
	}
	return h
}
