package analyzer

import (
	"sort"
	"strings"

	"github.com/timmy/promptforge/internal/domain"
)

// analyzeLoRAs aggregates LoRA usage across the corpus: per-name counts,
// a per-base-model breakdown, mean weights, and co-occurring combinations
// ranked by frequency (ties keep first-seen order).
func analyzeLoRAs(records []domain.PromptRecord) domain.LoRAStats {
	counts := make(map[string]int)
	countOrder := []string{}
	byBase := make(map[string]map[string]int)
	weights := make(map[string][]float64)

	comboCounts := make(map[string]int)
	comboOrder := []string{}
	comboNames := make(map[string][]string)

	for _, rec := range records {
		base := rec.BaseModel
		if base == "" {
			base = "Unknown"
		}

		distinct := make(map[string]struct{})
		var names []string
		for _, lora := range rec.LoRAs {
			if lora.Name == "" || lora.Name == "Unknown" {
				continue
			}
			if _, ok := counts[lora.Name]; !ok {
				countOrder = append(countOrder, lora.Name)
			}
			counts[lora.Name]++
			if byBase[base] == nil {
				byBase[base] = make(map[string]int)
			}
			byBase[base][lora.Name]++

			weight := lora.Weight
			if weight == 0 {
				weight = 1.0
			}
			weights[lora.Name] = append(weights[lora.Name], weight)

			if _, dup := distinct[lora.Name]; !dup {
				distinct[lora.Name] = struct{}{}
				names = append(names, lora.Name)
			}
		}

		if len(names) >= 2 {
			sort.Strings(names)
			key := strings.Join(names, "\x1f")
			if _, ok := comboCounts[key]; !ok {
				comboOrder = append(comboOrder, key)
				comboNames[key] = names
			}
			comboCounts[key]++
		}
	}

	avgWeights := make(map[string]float64, len(weights))
	for name, ws := range weights {
		var sum float64
		for _, w := range ws {
			sum += w
		}
		avgWeights[name] = sum / float64(len(ws))
	}

	// Rank combinations: count descending, first-seen order on ties.
	sort.SliceStable(comboOrder, func(i, j int) bool {
		return comboCounts[comboOrder[i]] > comboCounts[comboOrder[j]]
	})
	top := make([]domain.LoRACombination, 0, min(len(comboOrder), maxCombinations))
	for _, key := range comboOrder {
		if len(top) >= maxCombinations {
			break
		}
		top = append(top, domain.LoRACombination{Names: comboNames[key], Count: comboCounts[key]})
	}

	return domain.LoRAStats{
		Counts:          topCounts(counts, countOrder, maxLoRACounts),
		ByBase:          byBase,
		AvgWeights:      avgWeights,
		TopCombinations: top,
	}
}

// analyzeTechnical aggregates sampler frequencies and step/guidance
// distributions. Absent samplers and zero-valued steps/scales are ignored;
// an empty input yields zero means and (0, 0) ranges.
func analyzeTechnical(records []domain.PromptRecord) domain.TechnicalStats {
	samplers := make(map[string]int)
	samplerOrder := []string{}
	var steps []int
	var cfgs []float64

	for _, rec := range records {
		s := rec.Settings
		if s.Sampler != "" {
			if _, ok := samplers[s.Sampler]; !ok {
				samplerOrder = append(samplerOrder, s.Sampler)
			}
			samplers[s.Sampler]++
		}
		if s.Steps > 0 {
			steps = append(steps, s.Steps)
		}
		if s.CfgScale > 0 {
			cfgs = append(cfgs, s.CfgScale)
		}
	}

	stats := domain.TechnicalStats{
		Samplers: topCounts(samplers, samplerOrder, maxSamplers),
	}

	if len(steps) > 0 {
		lo, hi, sum := steps[0], steps[0], 0
		for _, v := range steps {
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
			sum += v
		}
		stats.StepsAvg = float64(sum) / float64(len(steps))
		stats.StepsRange = [2]int{lo, hi}
	}

	if len(cfgs) > 0 {
		lo, hi, sum := cfgs[0], cfgs[0], 0.0
		for _, v := range cfgs {
			if v < lo {
				lo = v
			}
			if v > hi {
				hi = v
			}
			sum += v
		}
		stats.CfgAvg = sum / float64(len(cfgs))
		stats.CfgRange = [2]float64{lo, hi}
	}

	return stats
}

// topCounts keeps the n highest-count entries of a frequency table,
// breaking ties by first-seen order.
func topCounts(counts map[string]int, order []string, n int) map[string]int {
	if len(counts) <= n {
		return counts
	}
	ranked := append([]string(nil), order...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return counts[ranked[i]] > counts[ranked[j]]
	})
	out := make(map[string]int, n)
	for _, key := range ranked[:n] {
		out[key] = counts[key]
	}
	return out
}
