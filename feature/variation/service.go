package variation

import (
	"context"
	"errors"
	"fmt"
	"time"

	"variation-manager/core/matrix"
	"variation-manager/core/reconcile"
	"variation-manager/core/session"
	"variation-manager/core/storage"
	"variation-manager/core/store"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

// ErrConfirmationRequired is returned when a destructive operation is not confirmed.
var ErrConfirmationRequired = errors.New("confirmation required")

// CreateSessionRequest opens an editing session.
type CreateSessionRequest struct {
	// ProductID identifies the product; it keys saved drafts.
	ProductID string `json:"productId"`
	// Facets is the initial facet set.
	Facets matrix.FacetSet `json:"facets"`
	// Combinations are existing variations of the product. They are
	// reconciled against Facets. When empty, a saved draft is loaded instead.
	Combinations []matrix.Combination `json:"combinations"`
	// Companies overrides the configured company ids.
	Companies []string `json:"companies"`
}

// Service manages editing sessions and their side effects.
type Service struct {
	cfg        session.Config
	sessions   *Registry
	repo       Repository
	client     storage.Client
	storageCfg storage.Config
	logger     *zap.Logger
	drafts     singleflight.Group
}

// NewService creates a new variation service. repo and client may be nil, which
// disables draft persistence and image upload respectively.
func NewService(cfg session.Config, repo Repository, client storage.Client, storageCfg storage.Config, logger *zap.Logger) *Service {
	return &Service{
		cfg:        cfg,
		sessions:   NewRegistry(cfg.SessionTTL()),
		repo:       repo,
		client:     client,
		storageCfg: storageCfg,
		logger:     logger,
	}
}

// Generate validates facets and returns the blank matrix.
func (s *Service) Generate(facets matrix.FacetSet) ([]matrix.Combination, error) {
	if err := facets.Validate(); err != nil {
		return nil, err
	}
	return matrix.Generate(facets), nil
}

// CreateSession opens a new session.
func (s *Service) CreateSession(ctx context.Context, req CreateSessionRequest) (*Snapshot, error) {
	if err := req.Facets.Validate(); err != nil {
		return nil, err
	}

	companies := req.Companies
	if len(companies) == 0 {
		companies = s.cfg.CompanyIDs()
	}

	var st *store.Store
	switch {
	case len(req.Combinations) > 0:
		st = store.Restore(nil, req.Combinations, companies...)
		s.logPlan(st.SetFacets(req.Facets), "", "Existing variations reconciled")
	case req.ProductID != "" && s.repo != nil && len(req.Facets) == 0:
		draft, err := s.loadDraft(ctx, req.ProductID)
		if err != nil {
			return nil, err
		}
		if draft != nil {
			if len(req.Companies) == 0 && len(draft.Companies) > 0 {
				companies = draft.Companies
			}
			st = store.Restore(matrix.FacetSet(draft.Facets), draft.Combinations, companies...)
			break
		}
		st = store.New(companies...)
	default:
		st = store.New(companies...)
		st.SetFacets(req.Facets)
	}

	sess := newSession(uuid.NewString(), req.ProductID, st, time.Now())
	s.sessions.Put(sess)

	s.logger.Info("Editing session opened",
		zap.String("session", sess.ID),
		zap.String("product", req.ProductID),
		zap.Int("combinations", st.Len()),
	)

	sess.mu.Lock()
	defer sess.mu.Unlock()
	return sess.snapshot(), nil
}

// loadDraft reads a product's draft once even when several sessions for the
// same product open at the same time. Each caller restores its own copy.
func (s *Service) loadDraft(ctx context.Context, productID string) (*Draft, error) {
	result, err, _ := s.drafts.Do(productID, func() (interface{}, error) {
		return s.repo.Load(ctx, productID)
	})
	if err != nil {
		return nil, err
	}
	draft, _ := result.(*Draft)
	return draft, nil
}

// GetSession returns the current snapshot of a session.
func (s *Service) GetSession(id string) (*Snapshot, error) {
	return s.view(id, func(*Session) error { return nil })
}

// CloseSession discards a session.
func (s *Service) CloseSession(id string) error {
	if !s.sessions.Delete(id) {
		return ErrSessionNotFound
	}
	s.logger.Info("Editing session closed", zap.String("session", id))
	return nil
}

// Sweep drops expired sessions.
func (s *Service) Sweep() int {
	n := s.sessions.Sweep()
	if n > 0 {
		s.logger.Info("Expired sessions removed", zap.Int("count", n))
	}
	return n
}

// ReplaceFacets swaps the whole facet set and regenerates the matrix.
func (s *Service) ReplaceFacets(id string, facets matrix.FacetSet) (*Snapshot, error) {
	return s.edit(id, func(sess *Session) error {
		return sess.editor.Replace(facets)
	})
}

// AddFacet appends an empty facet.
func (s *Service) AddFacet(id string, kind matrix.Kind, customLabel string) (*Snapshot, error) {
	return s.edit(id, func(sess *Session) error {
		_, err := sess.editor.AddFacet(kind, customLabel)
		return err
	})
}

// RemoveFacet deletes a facet.
func (s *Service) RemoveFacet(id string, facet int) (*Snapshot, error) {
	return s.edit(id, func(sess *Session) error {
		return sess.editor.RemoveFacet(facet)
	})
}

// SetFacetKind changes the kind of a facet.
func (s *Service) SetFacetKind(id string, facet int, kind matrix.Kind, customLabel string) (*Snapshot, error) {
	return s.edit(id, func(sess *Session) error {
		return sess.editor.SetKind(facet, kind, customLabel)
	})
}

// SetPending stores the text typed for a facet's next value. It does not
// regenerate the matrix.
func (s *Service) SetPending(id string, facet int, text string) (*Snapshot, error) {
	return s.view(id, func(sess *Session) error {
		return sess.editor.SetPending(facet, text)
	})
}

// CommitPending adds a facet's pending text as a value.
func (s *Service) CommitPending(id string, facet int) (*Snapshot, error) {
	return s.edit(id, func(sess *Session) error {
		_, err := sess.editor.CommitPending(facet)
		return err
	})
}

// AddValue appends a value to a facet.
func (s *Service) AddValue(id string, facet int, value string) (*Snapshot, error) {
	return s.edit(id, func(sess *Session) error {
		return sess.editor.AddValue(facet, value)
	})
}

// RemoveValue deletes a value from a facet.
func (s *Service) RemoveValue(id string, facet int, value string) (*Snapshot, error) {
	return s.edit(id, func(sess *Session) error {
		return sess.editor.RemoveValue(facet, value)
	})
}

// MoveValue reorders a value within a facet.
func (s *Service) MoveValue(id string, facet, from, to int) (*Snapshot, error) {
	return s.edit(id, func(sess *Session) error {
		return sess.editor.MoveValue(facet, from, to)
	})
}

// UpdateField sets a scalar field of one combination.
func (s *Service) UpdateField(id string, index int, field store.Field, value string) (*Snapshot, error) {
	return s.view(id, func(sess *Session) error {
		return sess.store.UpdateField(index, field, value)
	})
}

// UpdateCompanyPrice sets one company's price on one combination.
func (s *Service) UpdateCompanyPrice(id string, index int, companyID, price string) (*Snapshot, error) {
	return s.view(id, func(sess *Session) error {
		return sess.store.UpdateCompanyPrice(index, companyID, price)
	})
}

// UpdateCompanySku sets one company's SKU on one combination.
func (s *Service) UpdateCompanySku(id string, index int, companyID, sku string) (*Snapshot, error) {
	return s.view(id, func(sess *Session) error {
		return sess.store.UpdateCompanySku(index, companyID, sku)
	})
}

// ApplyPriceToAllCompanies sets the same price for every company on one combination.
func (s *Service) ApplyPriceToAllCompanies(id string, index int, price string) (*Snapshot, error) {
	return s.view(id, func(sess *Session) error {
		return sess.store.ApplyPriceToAllCompanies(index, price)
	})
}

// SetCompanies replaces the known company ids of a session.
func (s *Service) SetCompanies(id string, companies []string) (*Snapshot, error) {
	return s.view(id, func(sess *Session) error {
		sess.store.SetCompanies(companies)
		return nil
	})
}

// ClearAllCombinationData blanks the payload of every combination. It refuses
// to run unless confirmed.
func (s *Service) ClearAllCombinationData(id string, confirmed bool) (*Snapshot, error) {
	if !confirmed {
		return nil, ErrConfirmationRequired
	}
	return s.view(id, func(sess *Session) error {
		sess.store.ClearAllCombinationData()
		s.logger.Warn("Combination data cleared",
			zap.String("session", sess.ID),
			zap.Int("combinations", sess.store.Len()),
		)
		return nil
	})
}

// Submission returns the normalized variations of a session.
func (s *Service) Submission(id string) ([]Variation, error) {
	var out []Variation
	_, err := s.view(id, func(sess *Session) error {
		v, err := Normalize(sess.store.Combinations(), sess.store.Companies())
		out = v
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// SaveDraft persists the session's facets and combinations under its product.
func (s *Service) SaveDraft(ctx context.Context, id string) (*Draft, error) {
	if s.repo == nil {
		return nil, ErrPersistenceDisabled
	}

	sess, err := s.sessions.Get(id)
	if err != nil {
		return nil, err
	}
	if sess.ProductID == "" {
		return nil, fmt.Errorf("%w: session has no product id", ErrPersistenceDisabled)
	}

	sess.mu.Lock()
	draft := &Draft{
		ProductID:    sess.ProductID,
		Facets:       FacetList(sess.store.Facets()),
		Combinations: CombinationList(sess.store.Combinations()),
		Companies:    StringList(sess.store.Companies()),
	}
	sess.mu.Unlock()

	if err := s.repo.Save(ctx, draft); err != nil {
		return nil, err
	}
	s.logger.Info("Draft saved",
		zap.String("session", id),
		zap.String("product", draft.ProductID),
		zap.Int("combinations", len(draft.Combinations)),
	)
	return draft, nil
}

// edit applies a structural change and regenerates the matrix. The session is
// left untouched when fn fails.
func (s *Service) edit(id string, fn func(sess *Session) error) (*Snapshot, error) {
	sess, err := s.sessions.Get(id)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := fn(sess); err != nil {
		return nil, err
	}
	s.logPlan(sess.regenerate(), sess.ID, "Matrix regenerated")
	return sess.snapshot(), nil
}

// view applies a change that does not touch the facet set.
func (s *Service) view(id string, fn func(sess *Session) error) (*Snapshot, error) {
	sess, err := s.sessions.Get(id)
	if err != nil {
		return nil, err
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()

	if err := fn(sess); err != nil {
		return nil, err
	}
	return sess.snapshot(), nil
}

func (s *Service) logPlan(plan *reconcile.Plan, sessionID, msg string) {
	sum := plan.Summary
	fields := []zap.Field{
		zap.String("session", sessionID),
		zap.Int("total", sum.Total),
		zap.Int("previous", sum.Previous),
		zap.Int("exact", sum.Exact),
		zap.Int("subset", sum.Subset),
		zap.Int("blank", sum.Blank),
		zap.Int("dropped", sum.Dropped),
	}
	s.logger.Info(msg, fields...)

	if sum.Ambiguous > 0 {
		var keys []string
		for _, m := range plan.Matches {
			if m.Ambiguous() {
				keys = append(keys, m.Key)
			}
		}
		s.logger.Warn("Subset matches had competing sources; earliest previous combination was used",
			zap.String("session", sessionID),
			zap.Int("ambiguous", sum.Ambiguous),
			zap.Strings("keys", keys),
		)
	}
}
