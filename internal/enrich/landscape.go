// Package enrich computes aggregate landscape metrics, per-claim enrichment
// scores with population-relative flags, and the headline core ratios.
package enrich

import (
	"sort"
	"strings"

	"github.com/reliefmap/relief/internal/graph"
	"github.com/reliefmap/relief/internal/model"
)

// Landscape aggregates claim counts, distinct sources, dominant category and
// role, and the convergence ratio.
func Landscape(g *graph.Graph) model.LandscapeMetrics {
	claims := g.Claims()

	sources := make(map[string]bool)
	for _, c := range claims {
		for _, s := range c.Supporters {
			sources[s] = true
		}
	}

	m := model.LandscapeMetrics{
		ClaimCount:       len(claims),
		ModelCount:       len(sources),
		EdgeCount:        g.EdgeCount(),
		DominantCategory: modeOf(claims, func(c model.Claim) string { return c.Category }),
		DominantRole:     modeOf(claims, func(c model.Claim) string { return c.Role }),
		ConvergenceRatio: convergenceRatio(claims),
	}
	return m
}

// modeOf returns the most frequent non-empty value, ties broken by
// first-seen order.
func modeOf(claims []model.Claim, field func(model.Claim) string) string {
	counts := make(map[string]int)
	var order []string
	for _, c := range claims {
		v := field(c)
		if v == "" {
			continue
		}
		if counts[v] == 0 {
			order = append(order, v)
		}
		counts[v]++
	}
	best, bestCount := "", 0
	for _, v := range order {
		if counts[v] > bestCount {
			best, bestCount = v, counts[v]
		}
	}
	return best
}

// convergenceRatio is the fraction of claims whose supporter set overlaps
// the plurality source-set: the exact supporter set occurring most often
// across claims.
func convergenceRatio(claims []model.Claim) float64 {
	if len(claims) == 0 {
		return 0
	}

	setCounts := make(map[string]int)
	setMembers := make(map[string][]string)
	var order []string
	for _, c := range claims {
		if len(c.Supporters) == 0 {
			continue
		}
		key := supporterKey(c.Supporters)
		if setCounts[key] == 0 {
			order = append(order, key)
			setMembers[key] = c.Supporters
		}
		setCounts[key]++
	}

	var plurality []string
	bestCount := 0
	for _, key := range order {
		if setCounts[key] > bestCount {
			plurality, bestCount = setMembers[key], setCounts[key]
		}
	}
	if len(plurality) == 0 {
		return 0
	}

	pluralitySet := make(map[string]bool, len(plurality))
	for _, s := range plurality {
		pluralitySet[s] = true
	}

	overlapping := 0
	for _, c := range claims {
		for _, s := range c.Supporters {
			if pluralitySet[s] {
				overlapping++
				break
			}
		}
	}
	return float64(overlapping) / float64(len(claims))
}

func supporterKey(supporters []string) string {
	sorted := append([]string(nil), supporters...)
	sort.Strings(sorted)
	return strings.Join(sorted, "\x00")
}
