// Package composite evaluates a borrower for a workout option by threading
// the calculators the option needs, feeding one calculator's output into the
// next where the guideline requires it, and combining their results into one
// auditable envelope.
package composite

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/iwvelando/loss-mitigation/pkg/calcerr"
	"github.com/iwvelando/loss-mitigation/pkg/calculator"
	"github.com/iwvelando/loss-mitigation/pkg/datetime"
	"github.com/iwvelando/loss-mitigation/pkg/validation"
)

// CalculationType identifies composite envelopes.
const CalculationType = "workoutEvaluation"

// GuidelineReference is cited on composite envelopes.
const GuidelineReference = "Servicing Guide D2-3: Evaluating the Borrower for a Workout Option"

// Workout options.
const (
	OptionShortSale       = "short-sale"
	OptionDeedInLieu      = "deed-in-lieu"
	OptionModification    = "modification"
	OptionPaymentDeferral = "payment-deferral"
)

// WorkoutOptions lists the supported workout options.
var WorkoutOptions = []string{OptionShortSale, OptionDeedInLieu, OptionModification, OptionPaymentDeferral}

var (
	fieldWorkoutOption = validation.Field{Name: "workoutOption", Label: "Workout option"}

	evaluationNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/iwvelando/loss-mitigation/evaluations"))
)

// Request asks for one borrower to be evaluated for one workout option.
// Overrides take precedence over the borrower's document facts.
type Request struct {
	BorrowerID    string         `json:"borrowerId,omitempty"`
	WorkoutOption string         `json:"workoutOption"`
	Overrides     map[string]any `json:"overrides,omitempty"`
}

// Outcome is the value of a composite envelope. Eligible is nil for options
// that produce no single eligibility decision.
type Outcome struct {
	EvaluationID  string                   `json:"evaluationId"`
	WorkoutOption string                   `json:"workoutOption"`
	Eligible      *bool                    `json:"eligible,omitempty"`
	Results       []calculator.Result[any] `json:"results"`
}

// Evaluator runs workout evaluations. It holds no per-evaluation state and is
// safe for concurrent use.
type Evaluator struct {
	logger   *zap.Logger
	facts    FactSource
	parallel bool
	now      func() time.Time
}

// Option configures an Evaluator.
type Option func(*Evaluator)

// WithParallel controls whether independent calculators run concurrently.
func WithParallel(parallel bool) Option {
	return func(e *Evaluator) {
		e.parallel = parallel
	}
}

// WithClock sets the clock used when a record has no evaluation date.
func WithClock(now func() time.Time) Option {
	return func(e *Evaluator) {
		e.now = now
	}
}

// NewEvaluator constructs an Evaluator reading default facts from facts.
func NewEvaluator(logger *zap.Logger, facts FactSource, opts ...Option) *Evaluator {
	if logger == nil {
		logger = zap.NewNop()
	}
	if facts == nil {
		facts = NoFacts{}
	}
	e := &Evaluator{
		logger:   logger,
		facts:    facts,
		parallel: true,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Evaluate merges the borrower's facts with the request overrides, runs the
// workout option's calculators and combines their results. A calculator
// error aborts the evaluation and is returned unchanged.
func (e *Evaluator) Evaluate(ctx context.Context, req Request) (calculator.Result[Outcome], error) {
	if err := ctx.Err(); err != nil {
		return calculator.Result[Outcome]{}, err
	}
	if err := validation.OneOf(fieldWorkoutOption, req.WorkoutOption, WorkoutOptions...); err != nil {
		return calculator.Result[Outcome]{}, err
	}

	facts := map[string]any{}
	if req.BorrowerID != "" {
		var err error
		facts, err = e.facts.Facts(ctx, req.BorrowerID)
		if err != nil {
			e.logger.Error(fmt.Sprintf("failed to load facts for borrower %s", req.BorrowerID),
				zap.String("op", "composite.Evaluate"),
				zap.Error(err),
			)
			if calcerr.GetCode(err) == calcerr.CodeUnknown {
				err = calcerr.Wrap(calcerr.CodeFactSource, "", "failed to load borrower facts", err)
			}
			return calculator.Result[Outcome]{}, err
		}
	}

	merged := Merge(facts, req.Overrides)
	record, err := DecodeRecord(merged)
	if err != nil {
		return calculator.Result[Outcome]{}, err
	}
	if record.EvaluationDate.IsZero() {
		record.EvaluationDate = datetime.CalendarDate(e.now())
	}

	var w workout
	switch req.WorkoutOption {
	case OptionShortSale:
		w, err = e.shortSale(ctx, record, false)
	case OptionDeedInLieu:
		w, err = e.shortSale(ctx, record, true)
	case OptionModification:
		w, err = e.modification(ctx, record)
	case OptionPaymentDeferral:
		w, err = e.paymentDeferral(ctx, record)
	}
	if err != nil {
		e.logger.Debug(fmt.Sprintf("%s evaluation rejected input", req.WorkoutOption),
			zap.String("op", "composite.Evaluate"),
			zap.Error(err),
		)
		return calculator.Result[Outcome]{}, err
	}

	id, err := EvaluationID(req.WorkoutOption, merged)
	if err != nil {
		return calculator.Result[Outcome]{}, err
	}

	var warnings []string
	for _, r := range w.results {
		for _, warning := range r.Warnings {
			warnings = append(warnings, fmt.Sprintf("[%s] %s", r.CalculationType, warning))
		}
	}

	details := map[string]any{
		"input": merged,
	}
	if req.BorrowerID != "" {
		details["borrowerId"] = req.BorrowerID
	}
	if len(record.ModificationHistory) > 0 {
		details["priorModifications"] = len(record.ModificationHistory)
		details["failedTrialPeriods"] = record.FailedTrialPeriods()
	}

	e.logger.Info(fmt.Sprintf("evaluated %s with %d calculators", req.WorkoutOption, len(w.results)),
		zap.String("op", "composite.Evaluate"),
		zap.String("evaluationId", id),
		zap.Int("warnings", len(warnings)),
	)

	outcome := Outcome{
		EvaluationID:  id,
		WorkoutOption: req.WorkoutOption,
		Eligible:      w.eligible,
		Results:       w.results,
	}
	return calculator.Format(CalculationType, outcome, details, warnings).WithReference(GuidelineReference), nil
}

// Merge overlays overrides onto defaults, key by key. Neither map is
// modified.
func Merge(defaults, overrides map[string]any) map[string]any {
	merged := make(map[string]any, len(defaults)+len(overrides))
	for k, v := range defaults {
		merged[k] = v
	}
	for k, v := range overrides {
		merged[k] = v
	}
	return merged
}

// EvaluationID derives a name-based UUID from the workout option and the
// merged input, so identical evaluations share an ID.
func EvaluationID(option string, merged map[string]any) (string, error) {
	canonical, err := json.Marshal(merged)
	if err != nil {
		return "", fmt.Errorf("failed to encode evaluation input: %w", err)
	}
	name := append([]byte(option+"\n"), canonical...)
	return uuid.NewSHA1(evaluationNamespace, name).String(), nil
}

// run executes independent calculator steps, concurrently when the evaluator
// is parallel.
func (e *Evaluator) run(ctx context.Context, steps ...func() error) error {
	if !e.parallel {
		for _, step := range steps {
			if err := step(); err != nil {
				return err
			}
		}
		return nil
	}
	g, _ := errgroup.WithContext(ctx)
	for _, step := range steps {
		g.Go(step)
	}
	return g.Wait()
}
