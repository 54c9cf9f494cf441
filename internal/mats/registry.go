package mats

import (
	"errors"
	"fmt"
	"image"
	"sync"

	"github.com/ironsheep/cvbridge/internal/imaging"
)

// ErrUnknownHandle is returned for handles that were never issued or have
// already been released.
var ErrUnknownHandle = errors.New("unknown mat handle")

// Registry is an arena of image matrices keyed by integer handle.
//
// The zero value is not usable; create registries with NewRegistry.
type Registry struct {
	mu     sync.RWMutex
	mats   map[int]*image.NRGBA
	next   int
	issued int64
	freed  int64
}

// Stats is a point-in-time snapshot of registry usage.
type Stats struct {
	// Live is the number of matrices currently registered.
	Live int `json:"live"`

	// Issued is the total number of handles ever returned by Add.
	Issued int64 `json:"issued"`

	// Released is the total number of handles released, including Clear.
	Released int64 `json:"released"`

	// LiveBytes approximates the pixel memory held by live matrices.
	LiveBytes int64 `json:"live_bytes"`
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		mats: make(map[int]*image.NRGBA),
	}
}

// Add registers img and returns its handle.
//
// An *image.NRGBA anchored at the origin is stored as-is and must not be
// modified by the caller afterwards. Any other image is copied into a new
// NRGBA matrix first.
func (r *Registry) Add(img image.Image) int {
	mat := imaging.ToNRGBA(img)

	r.mu.Lock()
	defer r.mu.Unlock()

	h := r.next
	r.next++
	r.mats[h] = mat
	r.issued++
	return h
}

// Get returns the matrix registered under h.
func (r *Registry) Get(h int) (*image.NRGBA, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	mat, ok := r.mats[h]
	if !ok {
		return nil, fmt.Errorf("mat %d: %w", h, ErrUnknownHandle)
	}
	return mat, nil
}

// Release drops the matrix registered under h. Releasing a handle twice
// returns ErrUnknownHandle.
func (r *Registry) Release(h int) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.mats[h]; !ok {
		return fmt.Errorf("mat %d: %w", h, ErrUnknownHandle)
	}
	delete(r.mats, h)
	r.freed++
	return nil
}

// Len returns the number of live matrices.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.mats)
}

// Clear releases every live matrix. Handle numbering continues where it
// left off.
func (r *Registry) Clear() {
	r.mu.Lock()
	r.freed += int64(len(r.mats))
	r.mats = make(map[int]*image.NRGBA)
	r.mu.Unlock()
}

// Stats returns current usage counters.
func (r *Registry) Stats() Stats {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var bytes int64
	for _, m := range r.mats {
		bytes += int64(len(m.Pix))
	}
	return Stats{
		Live:      len(r.mats),
		Issued:    r.issued,
		Released:  r.freed,
		LiveBytes: bytes,
	}
}
