// Package gateway turns typed recruiting requests into model prompts and model replies
// into typed results.
//
// Free-text operations (job posting, interview script) never fail: they fall back to a
// fixed message and log the cause. Structured operations (resume match, market analysis)
// run under a response-schema constraint and return typed errors instead of partial data.
package gateway

import (
	"context"
	"errors"
	"log"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"golang.org/x/sync/singleflight"

	"github.com/jonathan/recruiter-copilot/internal/llm"
	"github.com/jonathan/recruiter-copilot/internal/types"
)

// Operation names one of the four gateway exchanges.
type Operation string

// Operation constants double as prompt template keys.
const (
	OpJobPosting      Operation = "job-posting"
	OpInterviewScript Operation = "interview-script"
	OpResumeMatch     Operation = "resume-match"
	OpMarketAnalysis  Operation = "market-analysis"
)

// Fixed messages returned when a free-text operation gets no usable reply.
const (
	JobPostingFallback      = "Could not generate the job description. Please try again."
	InterviewScriptFallback = "Could not generate the interview script. Please try again."
)

// Defaults for Options
const (
	DefaultMarket   = "Brazil"
	DefaultCurrency = "BRL"
)

// Options configures a Gateway. Zero values are replaced by defaults.
type Options struct {
	Market   string
	Currency string
	Tier     llm.ModelTier
	Logger   *log.Logger
}

// Gateway is the single entry point between callers and the model.
// It is safe for concurrent use.
type Gateway struct {
	client llm.Client
	opts   Options
	group  singleflight.Group
}

// New creates a Gateway over an LLM client
func New(client llm.Client, opts Options) *Gateway {
	if opts.Market == "" {
		opts.Market = DefaultMarket
	}
	if opts.Currency == "" {
		opts.Currency = DefaultCurrency
	}
	if opts.Tier == "" {
		opts.Tier = llm.TierStandard
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	return &Gateway{client: client, opts: opts}
}

// ComposeJobPosting generates a Markdown job posting.
// It returns JobPostingFallback when the model errors or returns nothing.
func (g *Gateway) ComposeJobPosting(ctx context.Context, req types.JobPostingRequest) string {
	text, _ := g.ComposeJobPostingText(ctx, req)
	return text
}

// ComposeJobPostingText is ComposeJobPosting that also reports whether the fallback was used.
func (g *Gateway) ComposeJobPostingText(ctx context.Context, req types.JobPostingRequest) (string, bool) {
	return g.freeText(ctx, OpJobPosting, BuildJobPostingPrompt(req), JobPostingFallback)
}

// ComposeInterviewScript generates a Markdown interview script.
// It returns InterviewScriptFallback when the model errors or returns nothing.
func (g *Gateway) ComposeInterviewScript(ctx context.Context, title, skills string) string {
	text, _ := g.ComposeInterviewScriptText(ctx, title, skills)
	return text
}

// ComposeInterviewScriptText is ComposeInterviewScript that also reports whether the fallback was used.
func (g *Gateway) ComposeInterviewScriptText(ctx context.Context, title, skills string) (string, bool) {
	return g.freeText(ctx, OpInterviewScript, BuildInterviewScriptPrompt(title, skills), InterviewScriptFallback)
}

// ComposeResumeMatch scores a resume against a job description.
// Errors are *TransportError, *EmptyResponseError or *SchemaViolationError.
func (g *Gateway) ComposeResumeMatch(ctx context.Context, resumeText, jobDescription string) (*types.ResumeMatchResult, error) {
	raw, err := g.call(ctx, OpResumeMatch, BuildResumeMatchPrompt(resumeText, jobDescription), ResumeMatchResponseSchema())
	if err != nil {
		return nil, err
	}
	return ParseResumeMatch(raw)
}

// ComposeMarketAnalysis estimates a monthly salary range and three rare skills for a role.
// Errors are *TransportError, *EmptyResponseError or *SchemaViolationError.
func (g *Gateway) ComposeMarketAnalysis(ctx context.Context, title, seniority string) (*types.MarketAnalysisResult, error) {
	prompt := g.BuildMarketAnalysisPrompt(title, seniority)
	raw, err := g.call(ctx, OpMarketAnalysis, prompt, MarketAnalysisResponseSchema(g.opts.Currency))
	if err != nil {
		return nil, err
	}
	return ParseMarketAnalysis(raw)
}

func (g *Gateway) freeText(ctx context.Context, op Operation, prompt, fallback string) (string, bool) {
	text, err := g.call(ctx, op, prompt, nil)
	if err != nil {
		g.opts.Logger.Printf("[gateway] %s: returning fallback: %v", op, err)
		return fallback, true
	}
	return text, false
}

// call runs one model exchange. Identical concurrent requests (same operation and
// prompt) share a single upstream call; each caller stops waiting when its ctx ends.
// The shared call keeps the first caller's values but not its cancellation, so one
// caller leaving never fails the others.
func (g *Gateway) call(ctx context.Context, op Operation, prompt string, schema *genai.Schema) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", &TransportError{Operation: op, Cause: err}
	}

	key := string(op) + "\x00" + prompt
	shared := context.WithoutCancel(ctx)
	ch := g.group.DoChan(key, func() (any, error) {
		return g.generate(shared, op, prompt, schema)
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return "", res.Err
		}
		return res.Val.(string), nil
	case <-ctx.Done():
		return "", &TransportError{Operation: op, Cause: ctx.Err()}
	}
}

func (g *Gateway) generate(ctx context.Context, op Operation, prompt string, schema *genai.Schema) (string, error) {
	var (
		text string
		err  error
	)
	if schema == nil {
		text, err = g.client.GenerateContent(ctx, prompt, g.opts.Tier)
	} else {
		text, err = g.client.GenerateJSON(ctx, prompt, schema, g.opts.Tier)
	}

	if err != nil {
		if errors.Is(err, llm.ErrEmptyResponse) {
			return "", &EmptyResponseError{Operation: op}
		}
		return "", &TransportError{Operation: op, Cause: err}
	}
	if strings.TrimSpace(text) == "" {
		return "", &EmptyResponseError{Operation: op}
	}
	return text, nil
}
