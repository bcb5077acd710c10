package viewer

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"
)

// Region is a candidate watermark position.
type Region string

const (
	RegionTopLeft     Region = "top-left"
	RegionTopRight    Region = "top-right"
	RegionBottomLeft  Region = "bottom-left"
	RegionBottomRight Region = "bottom-right"
	RegionCenterTop   Region = "center-top"
)

const (
	defaultWatermarkInterval = 30 * time.Second
	watermarkIdentityMaxLen  = 16
)

// candidateRegions are the positions the label rotates through.
var candidateRegions = []Region{
	RegionTopLeft,
	RegionTopRight,
	RegionBottomLeft,
	RegionBottomRight,
	RegionCenterTop,
}

// Watermark renders a moving identity label over protected content. The
// rotation makes cropping the label out of a recording impractical. State is
// ephemeral; every mount starts fresh.
type Watermark struct {
	label    string
	interval time.Duration
	rng      *rand.Rand

	mu     sync.Mutex
	region Region
}

// Label builds the watermark text: the identity truncated to a fixed width
// plus the current date. Enough to trace a leak, short enough to stay
// unobtrusive.
func Label(identity string, now time.Time) string {
	runes := []rune(identity)
	if len(runes) > watermarkIdentityMaxLen {
		identity = string(runes[:watermarkIdentityMaxLen])
	}
	return fmt.Sprintf("%s %s", identity, now.UTC().Format("2006-01-02"))
}

// NewWatermark creates a watermark for the given identity with the default
// rotation interval.
func NewWatermark(identity string) *Watermark {
	return NewWatermarkWithInterval(identity, defaultWatermarkInterval)
}

// NewWatermarkWithInterval creates a watermark with an explicit rotation
// interval, used by tests.
func NewWatermarkWithInterval(identity string, interval time.Duration) *Watermark {
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))
	return &Watermark{
		label:    Label(identity, time.Now()),
		interval: interval,
		rng:      rng,
		region:   candidateRegions[rng.Intn(len(candidateRegions))],
	}
}

// LabelText returns the rendered label.
func (w *Watermark) LabelText() string {
	return w.label
}

// Region returns the current label position.
func (w *Watermark) Region() Region {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.region
}

// rotate picks a new region different from the current one.
func (w *Watermark) rotate() Region {
	w.mu.Lock()
	defer w.mu.Unlock()

	next := w.region
	for next == w.region {
		next = candidateRegions[w.rng.Intn(len(candidateRegions))]
	}
	w.region = next
	return next
}

// Start launches the rotation ticker, invoking onMove after each rotation.
// The disposer stops the ticker and waits for the goroutine to exit.
func (w *Watermark) Start(ctx context.Context, onMove func(Region)) func() {
	stop := make(chan struct{})
	done := make(chan struct{})

	go func() {
		defer close(done)

		ticker := time.NewTicker(w.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-stop:
				return
			case <-ticker.C:
				region := w.rotate()
				if onMove != nil {
					onMove(region)
				}
			}
		}
	}()

	var disposed bool
	return func() {
		if disposed {
			return
		}
		disposed = true
		close(stop)
		<-done
	}
}

// TiledPattern emits a low-opacity tiled SVG carrying the identity label,
// for watermarking static text content where a single moving label is easy
// to avoid when cropping.
func TiledPattern(identity string) string {
	label := Label(identity, time.Now())
	return fmt.Sprintf(
		`<svg xmlns="http://www.w3.org/2000/svg" width="100%%" height="100%%">`+
			`<defs><pattern id="wm" width="320" height="180" patternUnits="userSpaceOnUse" patternTransform="rotate(-24)">`+
			`<text x="0" y="90" font-size="14" fill="currentColor" fill-opacity="0.06">%s</text>`+
			`</pattern></defs>`+
			`<rect width="100%%" height="100%%" fill="url(#wm)"/>`+
			`</svg>`,
		svgEscape(label),
	)
}

// svgEscape escapes the XML-significant characters in a label.
var svgEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

func svgEscape(s string) string {
	return svgEscaper.Replace(s)
}
