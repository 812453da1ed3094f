// Package scoring rates résumé text against ideal-role profiles using
// embedding similarity.
package scoring

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/muhammadolammi/skilledge/internal/embedding"
	"github.com/muhammadolammi/skilledge/internal/skills"
	"go.uber.org/zap"
)

// ReasonNoSkills is the explanation given when nothing was mined.
const ReasonNoSkills = "No skills detected"

// RoleScore is one role's similarity as a percentage rounded to 2 decimals.
type RoleScore struct {
	Role    string  `json:"role"`
	Percent float64 `json:"percent"`
}

// Result is the outcome of scoring one résumé.
type Result struct {
	Overall       int         `json:"overall"`
	RoleScores    []RoleScore `json:"role_scores,omitempty"`
	BestFitRole   string      `json:"best_fit_role,omitempty"`
	Reason        string      `json:"reason"`
	MissingSkills []string    `json:"missing_skills,omitempty"`
	GoodSkills    []string    `json:"good_skills,omitempty"`
}

// PerRole returns the role -> percent mapping.
func (r Result) PerRole() map[string]float64 {
	out := make(map[string]float64, len(r.RoleScores))
	for _, rs := range r.RoleScores {
		out[rs.Role] = rs.Percent
	}
	return out
}

// Scorer computes fit scores. Profile embeddings are computed on first use
// and reused for the Scorer's lifetime.
type Scorer struct {
	embedder embedding.Embedder
	profiles []RoleProfile
	logger   *zap.Logger

	mu          sync.Mutex
	profileVecs [][]float32
}

func NewScorer(embedder embedding.Embedder, profiles []RoleProfile, logger *zap.Logger) *Scorer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Scorer{embedder: embedder, profiles: profiles, logger: logger}
}

// Score rates text against every profile. The overall score is the average
// fit across all roles, not the best one. An empty skill set short-circuits
// to 0 without touching the embedder.
func (s *Scorer) Score(ctx context.Context, text string, found skills.Set) (Result, error) {
	if found.Len() == 0 || len(s.profiles) == 0 {
		return Result{Overall: 0, Reason: ReasonNoSkills}, nil
	}

	profileVecs, err := s.profileEmbeddings(ctx)
	if err != nil {
		return Result{}, err
	}

	textVec, err := s.embedder.Embed(ctx, text)
	if err != nil {
		return Result{}, fmt.Errorf("embed resume text: %w", err)
	}

	res := Result{RoleScores: make([]RoleScore, 0, len(s.profiles))}
	var (
		sum  float64
		best = -1
	)
	for i, p := range s.profiles {
		pct := round2(embedding.Cosine(textVec, profileVecs[i]) * 100)
		res.RoleScores = append(res.RoleScores, RoleScore{Role: p.Name, Percent: pct})
		sum += pct
		if best < 0 || pct > res.RoleScores[best].Percent {
			best = i
		}
	}

	avg := round2(sum / float64(len(s.profiles)))
	res.Overall = clamp(int(avg), 0, 100)
	res.BestFitRole = s.profiles[best].Name
	res.Reason = fmt.Sprintf("Strongest alignment with %s role.", res.BestFitRole)
	res.MissingSkills = missingSkills(s.profiles[best], found)
	res.GoodSkills = goodSkills(s.profiles, found)

	s.logger.Debug("resume scored",
		zap.Int("overall", res.Overall),
		zap.String("best_fit_role", res.BestFitRole),
	)
	return res, nil
}

func (s *Scorer) profileEmbeddings(ctx context.Context) ([][]float32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.profileVecs != nil {
		return s.profileVecs, nil
	}

	vecs := make([][]float32, len(s.profiles))
	for i, p := range s.profiles {
		vec, err := s.embedder.Embed(ctx, strings.Join(p.Skills, ", "))
		if err != nil {
			return nil, fmt.Errorf("embed profile %q: %w", p.Name, err)
		}
		vecs[i] = vec
	}
	s.profileVecs = vecs
	return vecs, nil
}

// missingSkills lists the best-fit role's skills absent from the résumé.
func missingSkills(p RoleProfile, found skills.Set) []string {
	var out []string
	for _, skill := range p.Skills {
		if !found.Has(skill) {
			out = append(out, skill)
		}
	}
	sort.Strings(out)
	return out
}

// goodSkills lists found skills that appear in any role profile.
func goodSkills(profiles []RoleProfile, found skills.Set) []string {
	wanted := skills.NewSet()
	for _, p := range profiles {
		for _, skill := range p.Skills {
			wanted.Add(skill)
		}
	}

	good := skills.NewSet()
	for skill := range found {
		if wanted.Has(skill) {
			good.Add(skill)
		}
	}
	if good.Len() == 0 {
		return nil
	}
	return good.Sorted()
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
