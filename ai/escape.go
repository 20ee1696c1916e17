package ai

import (
	"snake-pilot/game/types"
)

// escape scores every safe, non-reversing move by the room it opens up and
// how well it keeps a route to food. Wrapping moves are rewarded, heavily so
// while stuck in a loop. With nothing safe the queued move stands.
func (v *view) escape() types.Direction {
	head := v.head()
	target, _ := v.nearestFood(head)
	tier := lengthTier(v.length())

	straight, ok := v.grid.Step(head, v.heading)
	blockedAhead := ok && v.occ.has(straight)

	best := types.None
	bestScore := 0.0
	for _, d := range types.Cardinal {
		if d.Reverses(v.heading) {
			continue
		}
		p, ok := v.safeStep(head, d, false)
		if !ok {
			continue
		}

		score := v.freeSpace(p, v.occ, 5)
		if tier == 2 {
			score *= 1.2
		}
		if _, found := v.findPath(p, target, SearchOptions{Wrap: true, Heading: d}); found {
			score += 25
		}
		if v.grid.Toroidal() && v.grid.Crosses(head, d) {
			if blockedAhead {
				score += [3]float64{40, 60, 80}[tier]
			} else {
				score += [3]float64{25, 40, 60}[tier]
			}
			if v.inLoop {
				score += 120
			}
		}
		if v.grid.Toroidal() && v.grid.EdgeDistance(p) < 3 {
			score += 15
		}

		if best == types.None || score > bestScore {
			best, bestScore = d, score
		}
	}

	if best == types.None {
		return v.next
	}
	return best
}
