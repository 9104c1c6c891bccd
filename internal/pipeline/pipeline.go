// Package pipeline sequences the external-service adapters into the
// three screening pipelines. Every pipeline produces exactly one
// renderable result: adapter failures are captured in the result, and
// nothing propagates past the pipeline entry point.
package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/ppiankov/mediguard/internal/druglabel"
	"github.com/ppiankov/mediguard/internal/model"
	"github.com/ppiankov/mediguard/internal/nutrition"
	"github.com/ppiankov/mediguard/internal/taxonomy"
	"github.com/ppiankov/mediguard/internal/verdict"
	"github.com/ppiankov/mediguard/internal/vision"
)

// Pipeline orchestrates the screening flows over the service adapters
type Pipeline struct {
	vision        *vision.Client
	nutrition     *nutrition.Client
	drugs         *druglabel.Client
	synthesizer   *verdict.Synthesizer
	profilePolicy taxonomy.Policy
	logger        *slog.Logger
}

// New creates a pipeline with adapters built from the configuration
func New(cfg *model.Config, logger *slog.Logger) (*Pipeline, error) {
	if logger == nil {
		logger = slog.Default()
	}

	provider, err := verdict.NewProvider(cfg.LLM)
	if err != nil {
		return nil, fmt.Errorf("create LLM provider: %w", err)
	}

	policy, err := taxonomy.ParsePolicy(cfg.Pipeline.ProfilePolicy)
	if err != nil {
		return nil, fmt.Errorf("profile policy: %w", err)
	}

	return &Pipeline{
		vision:        vision.NewClient(cfg.Imagga, cfg.HTTP, logger),
		nutrition:     nutrition.NewClient(cfg.USDA, cfg.HTTP, logger),
		drugs:         druglabel.NewClient(cfg.OpenFDA, cfg.HTTP, logger),
		synthesizer:   verdict.NewSynthesizer(provider, logger),
		profilePolicy: policy,
		logger:        logger,
	}, nil
}

// VerdictAvailable reports whether the verdict provider is reachable.
// Surfaced through health reporting only: pipelines never refuse work
// because the provider is down.
func (p *Pipeline) VerdictAvailable(ctx context.Context) bool {
	return p.synthesizer.Available(ctx)
}

// CheckProfileImage validates that an uploaded image clearly contains
// a person. The acceptance policy (strict top-1 vs lenient top-10) is
// configuration; both behaviors exist upstream.
func (p *Pipeline) CheckProfileImage(ctx context.Context, image []byte) ProfileResult {
	if len(image) == 0 {
		return ProfileResult{Error: "no image uploaded"}
	}

	var tags []model.RankedTag
	if p.profilePolicy == taxonomy.StrictTop1 {
		if top, ok := p.vision.ClassifyTop(ctx, image); ok {
			tags = []model.RankedTag{top}
		}
	} else {
		tags = p.vision.Classify(ctx, image)
	}

	outcome := taxonomy.Validate(tags, taxonomy.PersonVocabulary, p.profilePolicy)
	if !outcome.Accepted {
		return ProfileResult{Error: fmt.Sprintf("no valid person tag found: %s", outcome.RejectionReason)}
	}

	return ProfileResult{
		Valid:      true,
		Tag:        outcome.PrimaryTag.Name,
		Confidence: outcome.PrimaryTag.Confidence,
	}
}

// CheckFoodImage runs the full food screening flow: tag the image,
// validate it as food, look up the nutrition record and synthesize a
// safety verdict for the condition.
func (p *Pipeline) CheckFoodImage(ctx context.Context, image []byte, condition string) FoodResult {
	if len(image) == 0 {
		return FoodResult{Error: "no image uploaded"}
	}

	tags := p.vision.Classify(ctx, image)

	outcome := taxonomy.Validate(tags, taxonomy.FoodVocabulary, taxonomy.LenientTopN)
	if !outcome.Accepted {
		return FoodResult{
			Tags:  tags,
			Error: fmt.Sprintf("no valid food tag detected (tags: %s)", tagNames(tags)),
		}
	}

	// Primary is the first in-vocabulary tag in rank order, not
	// necessarily the most confident tag overall
	primary := *outcome.PrimaryTag

	record := p.nutrition.Lookup(ctx, primary.Name)
	if record == nil {
		return FoodResult{
			Tags:  tags,
			Error: fmt.Sprintf("no nutrition data found for %q", primary.Name),
		}
	}

	if strings.TrimSpace(condition) == "" {
		condition = "unspecified"
	}
	v := p.synthesizer.Synthesize(ctx, primary.Name, record.Ingredients, condition)

	return FoodResult{
		Valid:            true,
		FoodName:         primary.Name,
		Confidence:       primary.Confidence,
		NutritionSnippet: record.Name,
		Ingredients:      record.Ingredients,
		Energy:           record.Energy,
		Analysis:         v.Narrative,
		Classification:   v.Classification,
		Tags:             tags,
	}
}

// CheckDrugInteraction validates the input pair and runs the label
// check. A missing drug or condition is a local input error: no
// external call is made.
func (p *Pipeline) CheckDrugInteraction(ctx context.Context, drug, condition string) model.InteractionResult {
	drug = strings.TrimSpace(drug)
	condition = strings.TrimSpace(condition)
	if drug == "" || condition == "" {
		return model.InteractionResult{
			Status:  model.StatusError,
			Message: "both drug and condition are required",
		}
	}

	return p.drugs.Check(ctx, drug, condition)
}
