package variation

import (
	"sync"
	"time"

	"variation-manager/core/matrix"
	"variation-manager/core/reconcile"
	"variation-manager/core/store"
)

// Session is one product edit: a facet editor, the combination store and the
// upload flags of that edit. Nothing in a session is shared with another one.
type Session struct {
	ID        string
	ProductID string

	mu        sync.Mutex
	editor    *Editor
	store     *store.Store
	// uploading holds the combination keys with an image upload in flight.
	// Keys survive regeneration, so the flags follow their rows.
	uploading map[string]bool
	touched   time.Time
}

// Snapshot is the JSON view of a session.
type Snapshot struct {
	ID            string                 `json:"id"`
	ProductID     string                 `json:"productId,omitempty"`
	State         store.State            `json:"state"`
	Version       int                    `json:"version"`
	Facets        matrix.FacetSet        `json:"facets"`
	Pending       map[int]string         `json:"pending,omitempty"`
	Companies     []string               `json:"companies"`
	Combinations  []matrix.Combination   `json:"combinations"`
	Uploading     []int                  `json:"uploading,omitempty"`
	LastReconcile *reconcile.PlanSummary `json:"lastReconcile,omitempty"`
}

func newSession(id, productID string, st *store.Store, now time.Time) *Session {
	return &Session{
		ID:        id,
		ProductID: productID,
		editor:    NewEditor(st.Facets()),
		store:     st,
		uploading: make(map[string]bool),
		touched:   now,
	}
}

// regenerate pushes the editor's facets into the store.
func (s *Session) regenerate() *reconcile.Plan {
	return s.store.SetFacets(s.editor.Facets())
}

// snapshot must be called with s.mu held.
func (s *Session) snapshot() *Snapshot {
	snap := &Snapshot{
		ID:           s.ID,
		ProductID:    s.ProductID,
		State:        s.store.State(),
		Version:      s.store.Version(),
		Facets:       s.editor.Facets(),
		Companies:    s.store.Companies(),
		Combinations: s.store.Combinations(),
	}
	if p := s.editor.Pending(); len(p) > 0 {
		snap.Pending = p
	}
	if len(s.uploading) > 0 {
		for idx, c := range snap.Combinations {
			if s.uploading[c.CombinationKey] {
				snap.Uploading = append(snap.Uploading, idx)
			}
		}
	}
	if plan := s.store.LastPlan(); plan != nil {
		summary := plan.Summary
		snap.LastReconcile = &summary
	}
	if snap.Facets == nil {
		snap.Facets = matrix.FacetSet{}
	}
	if snap.Combinations == nil {
		snap.Combinations = []matrix.Combination{}
	}
	if snap.Companies == nil {
		snap.Companies = []string{}
	}
	return snap
}
