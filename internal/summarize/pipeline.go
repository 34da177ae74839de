package summarize

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"sync"

	"github.com/docdigest/doc-digest/internal/chunker"
	"github.com/docdigest/doc-digest/internal/llm"
	"github.com/docdigest/doc-digest/internal/prompt"
	"github.com/docdigest/doc-digest/internal/token"
)

// DefaultConcurrency bounds parallel backend calls during the map step.
// Small on purpose: the goal is hiding per-call latency, not saturating the
// backend's rate limits.
const DefaultConcurrency = 4

// maxReduceRounds caps the reduce recursion. A backend that never produces
// output shorter than its input would otherwise loop forever.
const maxReduceRounds = 8

// State identifies where a pipeline invocation currently is. States are
// reported through the OnState hook and the log, in order; completion order
// of concurrent map calls never affects them.
type State string

const (
	StateEstimating       State = "estimating"
	StateDirectSummarize  State = "direct_summarize"
	StateChunking         State = "chunking"
	StateMapSummarizing   State = "map_summarizing"
	StateReduceMerging    State = "reduce_merging"
	StateFinalSummarizing State = "final_summarizing"
	StateDone             State = "done"
	StateFailed           State = "failed"
)

// Options configures a Pipeline. The zero value is usable: simulated backend,
// default chunker, embedded prompt templates, default concurrency.
type Options struct {
	// Generator is the backend. Nil selects llm.Simulated.
	Generator llm.Generator
	// Chunker splits over-budget text. Nil selects chunker.DefaultConfig().
	Chunker *chunker.Chunker
	// Prompts resolves the "chunk" and "final" templates. Nil selects the
	// embedded defaults.
	Prompts *prompt.Loader
	// Concurrency bounds parallel map-step calls. <= 0 selects
	// DefaultConcurrency.
	Concurrency int
	// OnState, when set, observes every state transition. Must be fast; it
	// is called synchronously from the pipeline goroutine.
	OnState func(State)
}

// Pipeline coordinates chunking, per-chunk summarization and recursive
// reduction for one document at a time. Invocations share no state, so a
// single Pipeline is safe for concurrent use.
type Pipeline struct {
	chunker     *chunker.Chunker
	summarizer  *Summarizer
	prompts     *prompt.Loader
	concurrency int
	onState     func(State)
}

// NewPipeline builds a Pipeline from opts.
func NewPipeline(opts Options) (*Pipeline, error) {
	ch := opts.Chunker
	if ch == nil {
		var err error
		ch, err = chunker.New(chunker.DefaultConfig())
		if err != nil {
			return nil, err
		}
	}
	prompts := opts.Prompts
	if prompts == nil {
		prompts = prompt.NewLoader("")
	}
	concurrency := opts.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	summarizer := NewSummarizer(opts.Generator)
	log.Printf("[Pipeline] Backend: %s, chunk budget %d, concurrency %d",
		summarizer.Generator().Name(), ch.Config().ChunkSize, concurrency)

	return &Pipeline{
		chunker:     ch,
		summarizer:  summarizer,
		prompts:     prompts,
		concurrency: concurrency,
		onState:     opts.OnState,
	}, nil
}

// Summarize produces a single bounded summary of text. variables (e.g.
// title, source) feed the final prompt template. Empty input returns an
// empty summary with a warning, not an error. Any backend failure aborts the
// whole invocation: the caller never receives a partial summary.
func (p *Pipeline) Summarize(ctx context.Context, text string, variables map[string]string) (string, error) {
	p.setState(StateEstimating)
	if strings.TrimSpace(text) == "" {
		log.Printf("[Pipeline] Warning: empty input text, returning empty summary")
		p.setState(StateDone)
		return "", nil
	}

	budget := p.chunker.Config().ChunkSize
	finalTmpl := p.prompts.Load(prompt.NameFinal).Body

	if est := token.Estimate(text); est <= budget {
		log.Printf("[Pipeline] ~%d tokens within budget %d, single call", est, budget)
		p.setState(StateDirectSummarize)
		out, err := p.summarizer.Summarize(ctx, text, finalTmpl, variables)
		if err != nil {
			return p.fail(err)
		}
		p.setState(StateDone)
		return out, nil
	}

	chunkTmpl := p.prompts.Load(prompt.NameChunk).Body
	current := text

	for round := 1; ; round++ {
		if round > maxReduceRounds {
			return p.fail(fmt.Errorf("summarize: reduction did not converge after %d rounds", maxReduceRounds))
		}

		p.setState(StateChunking)
		chunks := p.chunker.SplitText(current)
		log.Printf("[Pipeline] Round %d: %d chunks of ~%d tokens budget", round, len(chunks), budget)

		p.setState(StateMapSummarizing)
		summaries, err := p.mapSummarize(ctx, chunks, chunkTmpl)
		if err != nil {
			return p.fail(err)
		}

		// One simulated result means no backend is configured anywhere:
		// stay simulated for the rest of the pipeline, no further calls.
		if len(summaries) > 0 && summaries[0] == llm.Sentinel {
			p.setState(StateDone)
			return llm.Sentinel, nil
		}

		p.setState(StateReduceMerging)
		current = strings.Join(summaries, "\n\n")
		if token.FitsWithin(current, budget) {
			break
		}
		log.Printf("[Pipeline] Round %d: merged summaries still ~%d tokens, re-chunking",
			round, token.Estimate(current))
	}

	p.setState(StateFinalSummarizing)
	out, err := p.summarizer.Summarize(ctx, current, finalTmpl, variables)
	if err != nil {
		return p.fail(err)
	}
	p.setState(StateDone)
	return out, nil
}

// mapSummarize summarizes every chunk under the concurrency bound and
// returns results in original chunk order. The first failing chunk cancels
// the siblings and aborts: a summary missing one chunk's contribution would
// misrepresent the document.
func (p *Pipeline) mapSummarize(ctx context.Context, chunks []string, templateBody string) ([]string, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	summaries := make([]string, len(chunks))
	sem := make(chan struct{}, p.concurrency)
	errs := make(chan error, len(chunks))
	var wg sync.WaitGroup

	for i, chunk := range chunks {
		wg.Add(1)
		go func(idx int, text string) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				errs <- ctx.Err()
				return
			}

			vars := map[string]string{
				"index": strconv.Itoa(idx + 1),
				"total": strconv.Itoa(len(chunks)),
			}
			out, err := p.summarizer.Summarize(ctx, text, templateBody, vars)
			if err != nil {
				errs <- fmt.Errorf("chunk %d/%d: %w", idx+1, len(chunks), err)
				cancel()
				return
			}
			// Index-addressed store: completion order never leaks into
			// output order.
			summaries[idx] = out
		}(i, chunk)
	}

	wg.Wait()
	close(errs)

	// Prefer the causal backend failure over the cancellation noise it
	// triggered in sibling goroutines.
	var firstErr error
	for err := range errs {
		if firstErr == nil ||
			(errors.Is(firstErr, context.Canceled) && !errors.Is(err, context.Canceled)) {
			firstErr = err
		}
	}
	if firstErr != nil {
		return nil, fmt.Errorf("map phase: %w", firstErr)
	}
	return summaries, nil
}

func (p *Pipeline) fail(err error) (string, error) {
	log.Printf("[Pipeline] Failed: %v", err)
	p.setState(StateFailed)
	return "", err
}

func (p *Pipeline) setState(s State) {
	if p.onState != nil {
		p.onState(s)
	}
}
