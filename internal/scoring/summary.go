package scoring

import (
	"fmt"
	"strconv"
	"strings"
)

// Summarize renders a one-line, human-readable verdict for a Result.
func Summarize(r Result) string {
	best := r.BestFitRole
	if best == "" {
		best = "Generalist"
	}

	scores := "none"
	if len(r.RoleScores) > 0 {
		parts := make([]string, 0, len(r.RoleScores))
		for _, rs := range r.RoleScores {
			parts = append(parts, rs.Role+": "+strconv.FormatFloat(rs.Percent, 'f', -1, 64)+"%")
		}
		scores = strings.Join(parts, ", ")
	}

	return fmt.Sprintf("Resume aligns best with **%s** profile. Role fit scores: %s", best, scores)
}
