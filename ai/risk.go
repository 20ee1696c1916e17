package ai

import "snake-pilot/game/types"

const defaultHorizon = 10

// isRiskyPath simulates up to steps moves of path. With focusSelf set only
// self-collision counts and the first one returns true. Otherwise each step is
// also checked for a closed loop and for free space below the required
// clearance, and the result is true at the first such risk or when a
// collision was seen along the way. A starving snake skips the non-fatal
// checks entirely.
func (v *view) isRiskyPath(path []types.Direction, focusSelf bool, steps int) bool {
	if v.starving && !focusSelf {
		return false
	}
	if steps <= 0 {
		steps = defaultHorizon
	}

	sim := v.simulate()
	required := min(8, v.length()/3)
	threshold := 0.7
	switch {
	case v.extreme():
		threshold = 0.8
	case v.grid.Toroidal():
		threshold = 0.5
	}
	if v.grid.Toroidal() {
		required = min(10, v.length()/3)
	}

	collided := false
	for i := 0; i < min(len(path), steps); i++ {
		sim.turn(path[i])
		head, ok := sim.nextHead()
		if !ok {
			return true
		}
		if sim.occ.has(head) {
			collided = true
			if focusSelf {
				return true
			}
		}
		sim.push(head, false)
		if focusSelf {
			continue
		}

		if v.closedLoop(head, sim.occ, len(sim.body)) {
			return true
		}
		if required > 0 {
			space := freeSpace(v.grid, head, sim.occ, required)
			if space < float64(required*required)*threshold {
				return true
			}
		}
	}
	return collided
}

// riskLevel counts how many of the four single-step moves look risky over a
// three-step horizon.
func (v *view) riskLevel() RiskLevel {
	risky := 0
	for _, d := range types.Cardinal {
		if v.isRiskyPath([]types.Direction{d}, false, 3) {
			risky++
		}
	}
	switch {
	case risky >= 3:
		return RiskHigh
	case risky >= 2:
		return RiskMedium
	}
	return RiskLow
}
