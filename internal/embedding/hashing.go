package embedding

import (
	"context"
	"hash/fnv"
	"math"
	"regexp"
	"strings"
)

const defaultHashingDims = 512

var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}+#.\-]+`)

// HashingEmbedder is an offline embedder: lowercase tokens and their bigrams
// are hashed into a fixed number of buckets and the result is L2-normalised.
// It needs no model download and is deterministic, which makes it the
// default when no API key is configured.
type HashingEmbedder struct {
	dims int
}

// NewHashingEmbedder returns an embedder with dims buckets (512 when dims <= 0).
func NewHashingEmbedder(dims int) *HashingEmbedder {
	if dims <= 0 {
		dims = defaultHashingDims
	}
	return &HashingEmbedder{dims: dims}
}

func (h *HashingEmbedder) Embed(_ context.Context, text string) ([]float32, error) {
	vec := make([]float64, h.dims)

	tokens := tokenPattern.FindAllString(strings.ToLower(text), -1)
	for i, tok := range tokens {
		tok = strings.Trim(tok, ".-")
		if tok == "" {
			continue
		}
		h.add(vec, tok, 1)
		if i > 0 {
			h.add(vec, tokens[i-1]+" "+tok, 0.5)
		}
	}

	var norm float64
	for _, v := range vec {
		norm += v * v
	}
	out := make([]float32, h.dims)
	if norm == 0 {
		return out, nil
	}
	norm = math.Sqrt(norm)
	for i, v := range vec {
		out[i] = float32(v / norm)
	}
	return out, nil
}

func (h *HashingEmbedder) add(vec []float64, feature string, weight float64) {
	f := fnv.New64a()
	_, _ = f.Write([]byte(feature))
	sum := f.Sum64()
	vec[sum%uint64(h.dims)] += weight
}

func (h *HashingEmbedder) Model() string { return "hashing" }
