package gateway

import (
	"bytes"
	"context"
	"errors"
	"log"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/google/generative-ai-go/genai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/recruiter-copilot/internal/llm"
	"github.com/jonathan/recruiter-copilot/internal/types"
)

// fakeClient is a scripted llm.Client
type fakeClient struct {
	text    string
	err     error
	release chan struct{} // when set, calls block until closed or ctx ends
	started chan struct{} // receives one value per call start, if set

	calls atomic.Int32
	mu    sync.Mutex
	last  struct {
		prompt string
		schema *genai.Schema
		tier   llm.ModelTier
		json   bool
	}
}

func (f *fakeClient) GenerateContent(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	return f.respond(ctx, prompt, nil, tier, false)
}

func (f *fakeClient) GenerateJSON(ctx context.Context, prompt string, schema *genai.Schema, tier llm.ModelTier) (string, error) {
	return f.respond(ctx, prompt, schema, tier, true)
}

func (f *fakeClient) GetModel(llm.ModelTier) string { return "fake-model" }

func (f *fakeClient) Close() error { return nil }

func (f *fakeClient) respond(ctx context.Context, prompt string, schema *genai.Schema, tier llm.ModelTier, asJSON bool) (string, error) {
	f.calls.Add(1)
	f.mu.Lock()
	f.last.prompt = prompt
	f.last.schema = schema
	f.last.tier = tier
	f.last.json = asJSON
	f.mu.Unlock()

	if f.started != nil {
		f.started <- struct{}{}
	}
	if f.release != nil {
		select {
		case <-f.release:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	return f.text, f.err
}

func newTestGateway(client llm.Client) (*Gateway, *bytes.Buffer) {
	var buf bytes.Buffer
	return New(client, Options{Logger: log.New(&buf, "", 0)}), &buf
}

func sampleJobPosting() types.JobPostingRequest {
	return types.JobPostingRequest{
		Title:      "Senior React Developer",
		Department: "Engineering",
		Seniority:  "Senior",
		Skills:     "React, TypeScript, Tailwind, Node.js",
		Tone:       "Innovative and relaxed",
	}
}

func TestNew_Defaults(t *testing.T) {
	g := New(&fakeClient{}, Options{})

	assert.Equal(t, DefaultMarket, g.opts.Market)
	assert.Equal(t, DefaultCurrency, g.opts.Currency)
	assert.Equal(t, llm.TierStandard, g.opts.Tier)
	assert.NotNil(t, g.opts.Logger)
}

func TestComposeJobPosting_ReturnsModelText(t *testing.T) {
	client := &fakeClient{text: "# Senior React Developer\n..."}
	g, _ := newTestGateway(client)

	text := g.ComposeJobPosting(context.Background(), sampleJobPosting())

	assert.Equal(t, "# Senior React Developer\n...", text)
	assert.False(t, client.last.json, "free text must not use a response schema")
	assert.Nil(t, client.last.schema)
	assert.Equal(t, BuildJobPostingPrompt(sampleJobPosting()), client.last.prompt)
	assert.Equal(t, llm.TierStandard, client.last.tier)
}

func TestComposeJobPosting_TransportErrorReturnsFallback(t *testing.T) {
	client := &fakeClient{err: errors.New("rpc error: code = Unauthenticated")}
	g, logs := newTestGateway(client)

	text, fallback := g.ComposeJobPostingText(context.Background(), sampleJobPosting())

	assert.Equal(t, JobPostingFallback, text)
	assert.True(t, fallback)
	assert.Contains(t, logs.String(), "Unauthenticated")
	assert.Contains(t, logs.String(), "[gateway] job-posting")
}

func TestComposeJobPosting_EmptyReplyReturnsFallback(t *testing.T) {
	tests := []struct {
		name   string
		client *fakeClient
	}{
		{name: "blank text", client: &fakeClient{text: "  \n"}},
		{name: "empty response error", client: &fakeClient{err: llm.ErrEmptyResponse}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, logs := newTestGateway(tt.client)

			assert.Equal(t, JobPostingFallback, g.ComposeJobPosting(context.Background(), sampleJobPosting()))
			assert.Contains(t, logs.String(), "no response from model")
		})
	}
}

func TestComposeInterviewScript(t *testing.T) {
	client := &fakeClient{text: "## Technical questions"}
	g, _ := newTestGateway(client)

	assert.Equal(t, "## Technical questions", g.ComposeInterviewScript(context.Background(), "Project Manager", "Scrum"))
	assert.Equal(t, BuildInterviewScriptPrompt("Project Manager", "Scrum"), client.last.prompt)

	client.err = errors.New("quota exceeded")
	client.text = ""
	text, fallback := g.ComposeInterviewScriptText(context.Background(), "Project Manager", "Scrum")
	assert.Equal(t, InterviewScriptFallback, text)
	assert.True(t, fallback)
}

func TestComposeResumeMatch_Success(t *testing.T) {
	client := &fakeClient{text: `{"matchScore": 82, "strengths": ["a","b","c"], "gaps": ["d","e"], "summary": "x"}`}
	g, _ := newTestGateway(client)

	result, err := g.ComposeResumeMatch(context.Background(), "resume body", "job body")
	require.NoError(t, err)

	assert.Equal(t, 82, result.MatchScore)
	assert.Equal(t, []string{"a", "b", "c"}, result.Strengths)
	assert.Equal(t, []string{"d", "e"}, result.Gaps)
	assert.Equal(t, "x", result.Summary)

	require.True(t, client.last.json)
	require.NotNil(t, client.last.schema)
	assert.ElementsMatch(t, []string{"matchScore", "strengths", "gaps", "summary"}, client.last.schema.Required)
	assert.Equal(t, genai.TypeInteger, client.last.schema.Properties["matchScore"].Type)
}

func TestComposeResumeMatch_TransportError(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	g, _ := newTestGateway(&fakeClient{err: cause})

	result, err := g.ComposeResumeMatch(context.Background(), "resume", "job")

	assert.Nil(t, result)
	var transportErr *TransportError
	require.True(t, errors.As(err, &transportErr), "want TransportError, got %T", err)
	assert.Equal(t, OpResumeMatch, transportErr.Operation)
	assert.ErrorIs(t, err, cause)
}

func TestComposeResumeMatch_EmptyResponse(t *testing.T) {
	g, _ := newTestGateway(&fakeClient{text: ""})

	result, err := g.ComposeResumeMatch(context.Background(), "resume", "job")

	assert.Nil(t, result)
	var emptyErr *EmptyResponseError
	require.True(t, errors.As(err, &emptyErr))
	assert.Contains(t, err.Error(), "no response from model")
}

func TestComposeResumeMatch_SchemaViolation(t *testing.T) {
	g, _ := newTestGateway(&fakeClient{text: `{"matchScore": 82, "strengths": [], "gaps": []}`})

	result, err := g.ComposeResumeMatch(context.Background(), "resume", "job")

	assert.Nil(t, result)
	var violation *SchemaViolationError
	require.True(t, errors.As(err, &violation))
	assert.Equal(t, OpResumeMatch, violation.Operation)
}

func TestComposeMarketAnalysis_Success(t *testing.T) {
	client := &fakeClient{text: `{
		"salaryRange": "R$ 9.000 - R$ 12.000",
		"currency": "BRL",
		"marketOutlook": "Demand is high",
		"rareSkills": [
			{"name": "Design systems", "description": "Scales UI consistency"},
			{"name": "Accessibility", "description": "WCAG expertise"},
			{"name": "User research", "description": "Runs discovery interviews"}
		]
	}`}
	g, _ := newTestGateway(client)

	result, err := g.ComposeMarketAnalysis(context.Background(), "UX Designer", "Senior")
	require.NoError(t, err)

	assert.Equal(t, "R$ 9.000 - R$ 12.000", result.SalaryRange)
	require.Len(t, result.RareSkills, 3)
	assert.Equal(t, "Design systems", result.RareSkills[0].Name)
	assert.Equal(t, "User research", result.RareSkills[2].Name)

	assert.Contains(t, client.last.prompt, "Brazil")
	assert.Contains(t, client.last.prompt, "BRL")
	require.NotNil(t, client.last.schema)
	assert.Equal(t, genai.TypeArray, client.last.schema.Properties["rareSkills"].Type)
}

func TestComposeMarketAnalysis_CustomMarket(t *testing.T) {
	client := &fakeClient{text: `{"salaryRange": "4,000 - 5,500", "currency": "EUR", "marketOutlook": "Stable", "rareSkills": []}`}
	g := New(client, Options{Market: "Portugal", Currency: "EUR", Logger: log.New(&bytes.Buffer{}, "", 0)})

	result, err := g.ComposeMarketAnalysis(context.Background(), "Data Engineer", "Mid-level")
	require.NoError(t, err)

	assert.Equal(t, "EUR", result.Currency)
	assert.Contains(t, client.last.prompt, "in Portugal, expressed in EUR")
}

func TestCall_SharesIdenticalConcurrentRequests(t *testing.T) {
	client := &fakeClient{
		text:    `{"matchScore": 50, "strengths": [], "gaps": [], "summary": "ok"}`,
		release: make(chan struct{}),
		started: make(chan struct{}, 4),
	}
	g, _ := newTestGateway(client)

	const callers = 3
	results := make([]*types.ResumeMatchResult, callers)
	errs := make([]error, callers)
	var wg sync.WaitGroup

	wg.Add(1)
	go func() {
		defer wg.Done()
		results[0], errs[0] = g.ComposeResumeMatch(context.Background(), "resume", "job")
	}()
	<-client.started

	for i := 1; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i], errs[i] = g.ComposeResumeMatch(context.Background(), "resume", "job")
		}(i)
	}
	time.Sleep(100 * time.Millisecond)
	close(client.release)
	wg.Wait()

	assert.Equal(t, int32(1), client.calls.Load())
	for i := 0; i < callers; i++ {
		require.NoError(t, errs[i])
		assert.Equal(t, 50, results[i].MatchScore)
	}
}

func TestCall_CancelledCallerDoesNotFailSharedCall(t *testing.T) {
	client := &fakeClient{
		text:    `{"matchScore": 64, "strengths": [], "gaps": [], "summary": "ok"}`,
		release: make(chan struct{}),
		started: make(chan struct{}, 4),
	}
	g, _ := newTestGateway(client)

	ctxA, cancelA := context.WithCancel(context.Background())
	errA := make(chan error, 1)
	go func() {
		_, err := g.ComposeResumeMatch(ctxA, "resume", "job")
		errA <- err
	}()
	<-client.started

	type outcome struct {
		result *types.ResumeMatchResult
		err    error
	}
	doneB := make(chan outcome, 1)
	go func() {
		result, err := g.ComposeResumeMatch(context.Background(), "resume", "job")
		doneB <- outcome{result, err}
	}()
	time.Sleep(100 * time.Millisecond)

	cancelA()
	select {
	case err := <-errA:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("cancelled caller did not return")
	}

	close(client.release)
	select {
	case got := <-doneB:
		require.NoError(t, got.err)
		assert.Equal(t, 64, got.result.MatchScore)
	case <-time.After(2 * time.Second):
		t.Fatal("second caller did not return")
	}
	assert.Equal(t, int32(1), client.calls.Load())
}

func TestCall_DistinctRequestsAreNotShared(t *testing.T) {
	client := &fakeClient{text: "script"}
	g, _ := newTestGateway(client)

	g.ComposeInterviewScript(context.Background(), "Designer", "Figma")
	g.ComposeInterviewScript(context.Background(), "Designer", "Sketch")
	g.ComposeJobPosting(context.Background(), sampleJobPosting())

	assert.Equal(t, int32(3), client.calls.Load())
}

func TestCall_CancelledContext(t *testing.T) {
	client := &fakeClient{text: "never", release: make(chan struct{}), started: make(chan struct{}, 2)}
	defer close(client.release)
	g, _ := newTestGateway(client)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		_, err := g.ComposeMarketAnalysis(ctx, "UX Designer", "Senior")
		done <- err
	}()
	<-client.started
	cancel()

	select {
	case err := <-done:
		var transportErr *TransportError
		require.True(t, errors.As(err, &transportErr))
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(2 * time.Second):
		t.Fatal("ComposeMarketAnalysis did not return after cancellation")
	}
}

func TestCall_AlreadyCancelledFreeTextFallsBack(t *testing.T) {
	client := &fakeClient{text: "never used"}
	g, _ := newTestGateway(client)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.Equal(t, JobPostingFallback, g.ComposeJobPosting(ctx, sampleJobPosting()))
	assert.Equal(t, int32(0), client.calls.Load())
}
