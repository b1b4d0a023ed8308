package stats

import "strings"

// Summary writes the qualitative narrative for a report: banded assessments
// of grip stability, navigation accuracy and path efficiency, plus a
// first-versus-last level progression sentence when more than one level was
// played. Band thresholds are tuned against the heuristic shortest-path
// scale and the FSR ADC range.
func Summary(levels []LevelDerived, avg SessionAverages) string {
	var b strings.Builder

	switch {
	case avg.CoV < 15:
		b.WriteString("Your grip control was exceptionally steady and consistent, indicating excellent force modulation skills. ")
	case avg.CoV < 25:
		b.WriteString("Your grip control was generally stable with some minor fluctuations. ")
	default:
		b.WriteString("Your grip control showed significant fluctuation, suggesting an opportunity to improve steadiness. ")
	}

	switch {
	case avg.Collisions < 5:
		b.WriteString("Your navigational accuracy was very high with minimal collisions. ")
	case avg.Collisions < 15:
		b.WriteString("Your navigation was effective with a moderate number of collisions. ")
	default:
		b.WriteString("A high number of collisions suggests a focus on improving fine motor precision could be beneficial. ")
	}

	switch {
	case avg.PathEfficiency > 80:
		b.WriteString("You followed an efficient path to the goal, demonstrating good spatial awareness. ")
	case avg.PathEfficiency > 60:
		b.WriteString("Your path to the goal was reasonably efficient with some room for improvement. ")
	default:
		b.WriteString("Your path to the goal was less efficient, suggesting opportunities to improve route planning. ")
	}

	if len(levels) > 1 {
		first, last := levels[0], levels[len(levels)-1]
		var improved []string
		if last.CoV < first.CoV {
			improved = append(improved, "grip stability")
		}
		if last.Collisions < first.Collisions {
			improved = append(improved, "navigation accuracy")
		}
		if last.PathEfficiency > first.PathEfficiency {
			improved = append(improved, "path efficiency")
		}
		if len(improved) > 0 {
			b.WriteString("You showed improvement in " + strings.Join(improved, ", ") + " as you progressed through the levels.")
		} else {
			b.WriteString("Your performance remained consistent across all levels.")
		}
	}

	return b.String()
}
