// Package diagnosis provides the crop-disease diagnosis capability consumed
// by the detection pipeline.
package diagnosis

import (
	"context"
	"math/rand"
	"sync"
	"time"
)

// Diagnosis is a single diagnosis result. Confidence is on a 0-1 scale and
// is reported verbatim by consumers; the pipeline never re-derives or
// clamps it.
type Diagnosis struct {
	Disease     string   `json:"disease"`
	Confidence  float64  `json:"confidence"`
	Description string   `json:"description"`
	Treatment   []string `json:"treatment"`
	Severity    string   `json:"severity"`
}

// Provider produces a diagnosis for a stored image. Implementations block
// until the diagnosis is ready or the context is cancelled.
type Provider interface {
	Diagnose(ctx context.Context, storedFilename string) (*Diagnosis, error)
}

// diseaseTable is the fixed set of diagnoses the table provider draws from.
var diseaseTable = []Diagnosis{
	{
		Disease:     "Potato Early Blight",
		Confidence:  0.94,
		Description: "Fungal infection characterized by concentric rings on dark spots.",
		Treatment:   []string{"Apply copper-based fungicides", "Improve air circulation", "Remove infected leaves"},
		Severity:    "High",
	},
	{
		Disease:     "Corn Common Rust",
		Confidence:  0.88,
		Description: "Reddish-brown pustules appearing on both leaf surfaces.",
		Treatment:   []string{"Plant resistant varieties", "Apply fungicides early", "Crop rotation"},
		Severity:    "Medium",
	},
	{
		Disease:     "Tomato Mosaic Virus",
		Confidence:  0.91,
		Description: "Mottling and yellowing of leaves with stunted growth.",
		Treatment:   []string{"Remove infected plants", "Control aphids", "Disinfect tools"},
		Severity:    "High",
	},
	{
		Disease:     "Healthy",
		Confidence:  0.98,
		Description: "No signs of disease detected. Plant looks vigorous.",
		Treatment:   []string{"Continue regular watering", "Monitor weekly", "Maintain soil nutrition"},
		Severity:    "None",
	},
}

// FixedTableProvider returns a uniform random entry from a fixed diagnosis
// table after an artificial latency that emulates model inference time. It
// stands in for a real classification model behind the same interface.
type FixedTableProvider struct {
	latency time.Duration

	mu  sync.Mutex
	rng *rand.Rand
}

// NewFixedTableProvider creates a provider with the given artificial
// latency per diagnosis. Zero latency disables the delay.
func NewFixedTableProvider(latency time.Duration) *FixedTableProvider {
	return &FixedTableProvider{
		latency: latency,
		rng:     rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// Diagnose returns a uniform random diagnosis from the fixed table. The
// artificial delay respects context cancellation.
func (p *FixedTableProvider) Diagnose(ctx context.Context, storedFilename string) (*Diagnosis, error) {
	if p.latency > 0 {
		timer := time.NewTimer(p.latency)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	p.mu.Lock()
	entry := diseaseTable[p.rng.Intn(len(diseaseTable))]
	p.mu.Unlock()

	// Copy the treatment slice so callers cannot mutate the table.
	result := entry
	result.Treatment = append([]string(nil), entry.Treatment...)
	return &result, nil
}
