// Package variant maintains the canonical-term to surface-variant mapping
// used by the prompt synthesizer to vary wording between generations.
package variant

import (
	"math/rand"
	"strings"
)

// classes maps a lowercase canonical term to its equivalence class of
// interchangeable surface forms. The canonical term is always a member of
// its own class. "standing" historically had two competing definitions;
// the later one wins and is the only one kept here.
var classes = map[string][]string{
	"sitting":              {"sitting", "seated", "sit", "sits", "sitting down", "sits down"},
	"standing":             {"standing", "stands", "upright", "on feet"},
	"lying":                {"lying", "lay", "lying down", "lies", "laid", "lies down"},
	"realistic photograph": {"realistic photograph", "photorealistic", "realistic photo", "photograph", "photo of", "realistic", "real life photo"},
	"large breasts":        {"large breasts", "big breasts", "huge breasts", "massive breasts", "big breast"},
	"smile":                {"smile", "smiling", "smiles", "smiled", "smiling face"},
	"naked":                {"naked", "nude", "bare", "undressed", "unclothed", "without clothes"},
	"topless":              {"topless", "top less", "top-less", "breasts exposed"},
	"outdoor":              {"outdoor", "outside", "outdoors", "exterior"},
	"beach":                {"beach", "seaside", "shore", "sand", "tropical beach", "beachside"},
	"sunset":               {"sunset", "sundown", "golden hour", "dusk", "sunset time"},
	"bikini":               {"bikini", "swimsuit", "swimwear", "bikini bottom", "bikini top"},
	"pinup":                {"pinup pose", "pin-up", "pinup", "pin-up style"},
	"athletic":             {"athletic", "fit", "toned", "fitness", "sporty"},
	"curvy":                {"curvy", "curvaceous", "hourglass figure", "voluptuous", "curvaceous figure"},
	"blonde":               {"blonde", "blond", "yellow hair", "golden hair", "fair hair"},
	"brunette":             {"brunette", "brown hair", "chestnut hair", "dark brown hair"},
	"red hair":             {"red hair", "auburn hair", "ginger hair", "redhead"},
	"long hair":            {"long hair", "very long hair", "waist length hair", "flowing hair"},
	"short hair":           {"short hair", "short styled hair", "bob cut", "pixie cut"},
	"blue eyes":            {"blue eyes", "azure eyes", "cerulean eyes", "sapphire eyes"},
	"green eyes":           {"green eyes", "emerald eyes", "jade eyes", "forest green eyes"},
	"kneeling":             {"kneeling", "kneel", "kneeling down", "on knees"},
	"squatting":            {"squatting", "squat", "crouching", "in a squat"},
	"from behind":          {"from behind", "rear view", "back view", "seen from behind"},
	"from above":           {"from above", "bird view", "aerial view", "overhead"},
	"close-up":             {"close-up", "closeup", "close up", "tight shot"},
	"full body":            {"full body", "full shot", "entire figure", "whole body"},
	"portrait":             {"portrait", "portrait shot", "face focus", "head and shoulders"},
	"studio":               {"studio", "photo studio", "indoor studio", "controlled studio"},
	"indoor":               {"indoor", "inside", "indoors", "interior"},
	"forest":               {"forest", "woods", "trees", "woodland", "forested"},
	"dynamic lighting":     {"dynamic lighting", "dramatic lighting", "striking lighting", "chiaroscuro"},
	"soft lighting":        {"soft lighting", "gentle lighting", "diffused light"},
	"natural lighting":     {"natural lighting", "daylight", "sunlight", "natural light"},
}

// Resolver picks a surface variant for a term. The chooser selects an
// index in [0, n); injecting a seeded chooser makes resolution
// deterministic for tests.
type Resolver struct {
	choose func(n int) int
}

// NewResolver creates a resolver drawing uniformly from rng. A nil rng
// falls back to the shared math/rand source.
func NewResolver(rng *rand.Rand) *Resolver {
	if rng == nil {
		return &Resolver{choose: rand.Intn}
	}
	return &Resolver{choose: rng.Intn}
}

// NewResolverWithChooser creates a resolver with an explicit choice
// function.
func NewResolverWithChooser(choose func(n int) int) *Resolver {
	return &Resolver{choose: choose}
}

// Resolve returns one variant from the term's equivalence class, or the
// term unchanged when no class is known. Lookups case-fold the input, so
// mixed-case callers resolve correctly. Total: never fails.
func (r *Resolver) Resolve(term string) string {
	variants, ok := classes[strings.ToLower(term)]
	if !ok || len(variants) == 0 {
		return term
	}
	return variants[r.choose(len(variants))]
}

// Class returns the equivalence class for a term, or nil when none is
// defined. The returned slice is shared; callers must not mutate it.
func Class(term string) []string {
	return classes[strings.ToLower(term)]
}

// Canonicals returns all canonical terms with a defined class.
func Canonicals() []string {
	out := make([]string, 0, len(classes))
	for k := range classes {
		out = append(out, k)
	}
	return out
}
