package service

import (
	"context"

	"github.com/timmy/promptforge/internal/domain"
	"github.com/timmy/promptforge/internal/kb"
	"github.com/timmy/promptforge/internal/logger"
	"github.com/timmy/promptforge/internal/synthesizer"
)

// GeneratorService assembles prompt variations for a user selection. Drafts
// are built locally from the knowledge base; when expansion is enabled each
// batch is additionally refined by the chat model, falling back to the
// drafts on any failure.
type GeneratorService struct {
	doc          *kb.Document
	expansion    *ExpansionService
	defaultCount int
	maxCount     int
}

// GenerateOptions controls one generation call.
type GenerateOptions struct {
	Count          int
	Seed           int64
	HasSeed        bool
	IncludeQuality bool
	QualityTags    []string
	UseVariants    bool
	Expand         bool
}

// NewGeneratorService creates a new generator service.
// Parameters:
//   - doc: loaded knowledge base, used as corpus context for expansion.
//   - expansion: expansion client; may be disabled.
//   - defaultCount: variation count when the request does not set one.
//   - maxCount: upper bound on the variation count per request.
// Returns:
//   - *GeneratorService: initialized service.
func NewGeneratorService(doc *kb.Document, expansion *ExpansionService, defaultCount, maxCount int) *GeneratorService {
	if defaultCount <= 0 {
		defaultCount = 5
	}
	if maxCount <= 0 {
		maxCount = 10
	}
	return &GeneratorService{
		doc:          doc,
		expansion:    expansion,
		defaultCount: defaultCount,
		maxCount:     maxCount,
	}
}

// KnowledgeBase returns the loaded knowledge base document.
func (s *GeneratorService) KnowledgeBase() *kb.Document {
	return s.doc
}

// Generate builds Count positive/negative variation pairs for the selection.
// Parameters:
//   - ctx: context for cancellation and deadlines.
//   - sel: user term selection per category plus custom terms.
//   - opts: count, seeding and expansion switches.
// Returns:
//   - []domain.PromptVariation: generated variation pairs, never empty.
func (s *GeneratorService) Generate(ctx context.Context, sel domain.Selection, opts GenerateOptions) []domain.PromptVariation {
	count := opts.Count
	if count <= 0 {
		count = s.defaultCount
	}
	if count > s.maxCount {
		count = s.maxCount
	}

	var synth *synthesizer.Synthesizer
	if opts.HasSeed {
		synth = synthesizer.NewSeeded(opts.Seed)
	} else {
		synth = synthesizer.New(nil)
	}

	synthOpts := synthesizer.Options{
		Count:          count,
		IncludeQuality: opts.IncludeQuality,
		QualityTags:    opts.QualityTags,
		UseVariants:    opts.UseVariants,
	}

	positives := synth.Generate(sel, synthOpts)
	drafts := make([]domain.PromptVariation, len(positives))
	for i, p := range positives {
		drafts[i] = domain.PromptVariation{
			Positive: p,
			Negative: synth.GenerateNegative(),
		}
	}

	if !opts.Expand || s.expansion == nil || !s.expansion.IsEnabled() {
		return drafts
	}

	logger.CtxDebug(ctx, "Expanding %d draft variations", len(drafts))
	return s.expansion.ExpandWithFallback(ctx, s.expansionContext(sel), drafts)
}

// expansionContext summarizes the knowledge base for the expansion model.
func (s *GeneratorService) expansionContext(sel domain.Selection) ExpansionContext {
	ectx := ExpansionContext{Selections: sel}
	if s.doc == nil {
		return ectx
	}
	ectx.TopLoRAs = s.doc.LoRAAnalysis.Counts
	ectx.Samplers = s.doc.TechnicalSettings.Samplers
	ectx.StepsAvg = s.doc.TechnicalSettings.StepsAvg
	ectx.CfgAvg = s.doc.TechnicalSettings.CfgAvg
	return ectx
}
