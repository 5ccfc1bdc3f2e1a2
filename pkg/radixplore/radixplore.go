// Package radixplore sequences the mineral-project intelligence pipeline:
// annotation alignment, tagger training and inference, candidate
// extraction, geocoding, and disambiguation, ending in enriched JSONL
// records.
package radixplore

import (
	"context"
	"crypto/rand"
	"fmt"
	"log"
	"math"
	"sort"
	"strings"

	"github.com/oklog/ulid/v2"

	"github.com/iKunal-Singh/radixplore-pipeline/pkg/radixplore/annotate"
	"github.com/iKunal-Singh/radixplore-pipeline/pkg/radixplore/extract"
	"github.com/iKunal-Singh/radixplore-pipeline/pkg/radixplore/geocode"
	"github.com/iKunal-Singh/radixplore-pipeline/pkg/radixplore/label"
	"github.com/iKunal-Singh/radixplore-pipeline/pkg/radixplore/locate"
	"github.com/iKunal-Singh/radixplore-pipeline/pkg/radixplore/records"
	"github.com/iKunal-Singh/radixplore-pipeline/pkg/radixplore/sentence"
)

// TrainingExample is one tagged token sequence in the format the sequence
// tagger consumes.
type TrainingExample struct {
	Tokens  []string `json:"tokens"`
	NERTags []int    `json:"ner_tags"`
}

// TaggedSpan is one entity span returned by the tagger for a sentence.
type TaggedSpan struct {
	EntityGroup string
	Word        string
	Score       float64
}

// Tagger is the trainable sequence-labeling collaborator. Predict returns
// an error for a sentence the model cannot process; the pipeline logs and
// skips that sentence.
type Tagger interface {
	Train(ctx context.Context, examples []TrainingExample) error
	Predict(ctx context.Context, sentence string) ([]TaggedSpan, error)
}

// Geocoder resolves a place name to ranked coordinate candidates. An
// empty result means the backend had no answer or was unavailable.
type Geocoder interface {
	Geocode(ctx context.Context, name string) []geocode.Candidate
}

// Pipeline is the orchestrator facade.
type Pipeline struct {
	tagger    Tagger
	geocoder  Geocoder
	extractor locate.CandidateExtractor
	scorer    locate.Disambiguator
	runID     string
}

// Options configures a Pipeline. Extractor and Scorer default to the
// rule-based implementations when nil.
type Options struct {
	Tagger    Tagger
	Geocoder  Geocoder
	Extractor locate.CandidateExtractor
	Scorer    locate.Disambiguator
}

// New creates a Pipeline and stamps it with a fresh run id.
func New(opts Options) *Pipeline {
	p := &Pipeline{
		tagger:    opts.Tagger,
		geocoder:  opts.Geocoder,
		extractor: opts.Extractor,
		scorer:    opts.Scorer,
		runID:     ulid.MustNew(ulid.Now(), ulid.Monotonic(rand.Reader, 0)).String(),
	}
	if p.extractor == nil {
		p.extractor = locate.NewExtractor()
	}
	if p.scorer == nil {
		p.scorer = locate.NewRuleScorer()
	}
	return p
}

// RunID identifies this pipeline instance; it is stamped on every final
// record.
func (p *Pipeline) RunID() string {
	return p.runID
}

// BuildTrainingSet aligns annotation records into encoded training
// examples, returning the total tokenization anomaly count alongside.
func BuildTrainingSet(recs []annotate.Record) ([]TrainingExample, int) {
	examples, anomalies := annotate.BuildExamples(recs)
	out := make([]TrainingExample, len(examples))
	for i, ex := range examples {
		out[i] = TrainingExample{
			Tokens:  ex.Tokens,
			NERTags: label.Encode(ex.Tags),
		}
	}
	return out, anomalies
}

// Train fits the tagger on the given examples.
func (p *Pipeline) Train(ctx context.Context, examples []TrainingExample) error {
	if err := p.tagger.Train(ctx, examples); err != nil {
		return fmt.Errorf("train tagger: %w", err)
	}
	return nil
}

// GenerateMentions runs the tagger over every sentence of a document and
// appends one Mention per PROJECT span found. A sentence the tagger fails
// on is logged and skipped; no record is emitted for it. Returns the
// number of mentions written.
func (p *Pipeline) GenerateMentions(ctx context.Context, src extract.Source, out *records.Writer) (int, error) {
	pages, err := src.Pages()
	if err != nil {
		return 0, err
	}

	pageNums := make([]int, 0, len(pages))
	for n := range pages {
		pageNums = append(pageNums, n)
	}
	sort.Ints(pageNums)

	written := 0
	for _, pageNum := range pageNums {
		for _, sent := range sentence.Split(pages[pageNum]) {
			spans, err := p.tagger.Predict(ctx, sent)
			if err != nil {
				log.Printf("Warning: tagger failed on %s page %d: %v", src.Name(), pageNum, err)
				continue
			}
			for _, span := range spans {
				if span.EntityGroup != annotate.LabelProject {
					continue
				}
				name := strings.TrimRight(strings.TrimSpace(span.Word), ".,")
				if name == "" {
					continue
				}
				mention := records.Mention{
					PDFFile:         src.Name(),
					PageNumber:      pageNum,
					ProjectName:     name,
					NERConfidence:   round4(span.Score),
					ContextSentence: sent,
				}
				if err := out.Append(mention); err != nil {
					return written, err
				}
				written++
			}
		}
	}
	return written, nil
}

// Geolocate enriches mentions with disambiguated coordinates and appends
// one FinalRecord per geolocatable mention. Mentions with no extractable
// location names or no geocoded candidates are skipped. Returns the
// number of records written.
func (p *Pipeline) Geolocate(ctx context.Context, mentions []records.Mention, out *records.Writer) (int, error) {
	written := 0
	for i, m := range mentions {
		log.Printf("Geolocating record %d/%d: %s", i+1, len(mentions), truncate(m.ProjectName, 40))

		names := p.extractor.Extract(m.ContextSentence)
		if len(names) == 0 {
			continue
		}

		var pooled []geocode.Candidate
		for _, name := range names {
			pooled = append(pooled, p.geocoder.Geocode(ctx, name)...)
		}
		if len(pooled) == 0 {
			continue
		}

		result := p.scorer.Score(m.ContextSentence, pooled)
		record := records.FinalRecord{
			Mention:               m,
			RunID:                 p.runID,
			ChosenLocation:        result.ChosenLocation,
			GeolocationConfidence: result.Confidence,
			Justification:         result.Justification,
		}
		record.Coordinates = result.Coordinates

		if err := out.Append(record); err != nil {
			return written, err
		}
		written++
	}
	return written, nil
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
