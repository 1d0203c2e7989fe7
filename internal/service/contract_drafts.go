package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rentaldesk/rental-bff/internal/contractform"
	"github.com/rentaldesk/rental-bff/internal/domain/model"
	"github.com/rentaldesk/rental-bff/internal/graphql"
	"github.com/rentaldesk/rental-bff/internal/metrics"
	"github.com/rentaldesk/rental-bff/internal/pricing"
	"github.com/rentaldesk/rental-bff/internal/rental"
	"github.com/rentaldesk/rental-bff/internal/repository"
	"github.com/rentaldesk/rental-bff/internal/session"
	"github.com/rs/zerolog/log"
)

const (
	// DefaultDraftTTL is how long an untouched draft lives.
	DefaultDraftTTL = 24 * time.Hour

	maxDraftsListed = 50
)

// ErrStepForward is returned when an update tries to skip ahead instead of
// advancing through validation.
var ErrStepForward = errors.New("contract draft can only move forward through advance")

// RentalAPI is the part of the rental API the wizard needs.
type RentalAPI interface {
	ProductStock(ctx context.Context, sess *session.Session, productID string, start, end time.Time) ([]rental.OfficeStock, error)
	CreateContract(ctx context.Context, sess *session.Session, in rental.CreateContractInput) (rental.Contract, error)
}

// DraftUpdate replaces the state of a draft. Version must match the stored
// draft. Step, when set, moves the wizard back to an earlier page.
type DraftUpdate struct {
	Version int
	Step    *contractform.Step
	State   contractform.State
}

// ContractDraftService runs the contract wizard against stored drafts.
type ContractDraftService interface {
	Create(ctx context.Context, sess *session.Session, state contractform.State) (*model.ContractDraft, error)
	Get(ctx context.Context, sess *session.Session, id string) (*model.ContractDraft, error)
	List(ctx context.Context, sess *session.Session) ([]*model.ContractDraft, error)
	Update(ctx context.Context, sess *session.Session, id string, in DraftUpdate) (*model.ContractDraft, error)
	Advance(ctx context.Context, sess *session.Session, id string) (*model.ContractDraft, error)
	Quote(ctx context.Context, sess *session.Session, id string) (pricing.Quote, error)
	Submit(ctx context.Context, sess *session.Session, id string) (rental.Contract, error)
	Delete(ctx context.Context, sess *session.Session, id string) error
}

// ContractDraftServiceImpl implements ContractDraftService.
type ContractDraftServiceImpl struct {
	repo   repository.ContractDraftRepositoryInterface
	api    RentalAPI
	quoter *contractform.Quoter
	ttl    time.Duration
	now    func() time.Time
}

// NewContractDraftService creates the drafts service. A ttl of zero uses
// DefaultDraftTTL.
func NewContractDraftService(repo repository.ContractDraftRepositoryInterface, api RentalAPI, quoter *contractform.Quoter, ttl time.Duration) *ContractDraftServiceImpl {
	if ttl <= 0 {
		ttl = DefaultDraftTTL
	}
	return &ContractDraftServiceImpl{repo: repo, api: api, quoter: quoter, ttl: ttl, now: time.Now}
}

// Owner returns the key drafts of a session are stored under. It is derived
// from the whole token, since unverified claims can be copied into a token
// signed by anyone.
func Owner(sess *session.Session) (string, error) {
	if sess == nil || !sess.IsAuthenticated() {
		return "", graphql.ErrUnauthorized
	}
	return "token:" + sess.Fingerprint(), nil
}

func record(op string, err error) {
	result := "success"
	var verrs contractform.ValidationErrors
	switch {
	case err == nil:
	case errors.As(err, &verrs):
		result = "invalid"
	case errors.Is(err, repository.ErrDraftNotFound):
		result = "not_found"
	case errors.Is(err, repository.ErrDraftConflict):
		result = "conflict"
	default:
		result = "error"
	}
	metrics.RecordContractDraftOperation(op, result)
}

// Create starts a wizard at the client step.
func (s *ContractDraftServiceImpl) Create(ctx context.Context, sess *session.Session, state contractform.State) (draft *model.ContractDraft, err error) {
	defer func() { record("create", err) }()

	owner, err := Owner(sess)
	if err != nil {
		return nil, err
	}
	draft = &model.ContractDraft{
		ID:        uuid.NewString(),
		Owner:     owner,
		Step:      contractform.StepClient,
		State:     state,
		ExpiresAt: s.now().Add(s.ttl),
	}
	if err := s.repo.Create(ctx, draft); err != nil {
		return nil, fmt.Errorf("create draft: %w", err)
	}
	return draft, nil
}

// Get returns a draft of the session.
func (s *ContractDraftServiceImpl) Get(ctx context.Context, sess *session.Session, id string) (draft *model.ContractDraft, err error) {
	defer func() { record("get", err) }()

	owner, err := Owner(sess)
	if err != nil {
		return nil, err
	}
	return s.repo.Get(ctx, id, owner)
}

// List returns the session's drafts, most recent first.
func (s *ContractDraftServiceImpl) List(ctx context.Context, sess *session.Session) ([]*model.ContractDraft, error) {
	owner, err := Owner(sess)
	if err != nil {
		return nil, err
	}
	return s.repo.ListByOwner(ctx, owner, maxDraftsListed)
}

// Update stores a new state and extends the draft's life.
func (s *ContractDraftServiceImpl) Update(ctx context.Context, sess *session.Session, id string, in DraftUpdate) (draft *model.ContractDraft, err error) {
	defer func() { record("update", err) }()

	draft, err = s.Get(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	if in.Step != nil {
		step, err := contractform.ParseStep(string(*in.Step))
		if err != nil {
			return nil, err
		}
		if stepIndex(step) > stepIndex(draft.Step) {
			return nil, ErrStepForward
		}
		draft.Step = step
	}
	draft.Version = in.Version
	draft.State = in.State
	draft.ExpiresAt = s.now().Add(s.ttl)

	if err := s.repo.Update(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

func stepIndex(step contractform.Step) int {
	for i, s := range contractform.Steps {
		if s == step {
			return i
		}
	}
	return -1
}

// Advance clamps allocations to the stock of the contract period, validates
// the current step and moves to the next one.
func (s *ContractDraftServiceImpl) Advance(ctx context.Context, sess *session.Session, id string) (draft *model.ContractDraft, err error) {
	defer func() { record("advance", err) }()

	draft, err = s.Get(ctx, sess, id)
	if err != nil {
		return nil, err
	}
	next, err := contractform.Next(draft.Step)
	if err != nil {
		return nil, err
	}

	stock, err := loadStock(ctx, s.api, sess, draft.State)
	if err != nil {
		return nil, err
	}
	if contractform.Clamp(&draft.State, stock) {
		log.Debug().Str("draft_id", draft.ID).Msg("Clamped allocations to available stock")
	}
	if err := contractform.ValidateStep(draft.Step, draft.State, stock); err != nil {
		return nil, err
	}

	draft.Step = next
	draft.ExpiresAt = s.now().Add(s.ttl)
	if err := s.repo.Update(ctx, draft); err != nil {
		return nil, err
	}
	return draft, nil
}

// Quote prices a draft as it currently stands.
func (s *ContractDraftServiceImpl) Quote(ctx context.Context, sess *session.Session, id string) (pricing.Quote, error) {
	draft, err := s.Get(ctx, sess, id)
	if err != nil {
		return pricing.Quote{}, err
	}
	return s.quoter.Quote(draft.State), nil
}

// Submit validates the whole draft against current stock, creates the
// contract and removes the draft.
func (s *ContractDraftServiceImpl) Submit(ctx context.Context, sess *session.Session, id string) (contract rental.Contract, err error) {
	defer func() { record("submit", err) }()

	draft, err := s.Get(ctx, sess, id)
	if err != nil {
		return rental.Contract{}, err
	}
	stock, err := loadStock(ctx, s.api, sess, draft.State)
	if err != nil {
		return rental.Contract{}, err
	}

	quote := s.quoter.Quote(draft.State)
	in, err := contractform.BuildContractInput(draft.State, stock, quote)
	if err != nil {
		return rental.Contract{}, err
	}
	contract, err = s.api.CreateContract(ctx, sess, in)
	if err != nil {
		return rental.Contract{}, err
	}

	if err := s.repo.Delete(ctx, draft.ID, draft.Owner); err != nil {
		log.Warn().Err(err).Str("draft_id", draft.ID).Msg("Failed to delete submitted contract draft")
	}
	log.Info().Str("draft_id", draft.ID).Str("contract_id", contract.ID).Msg("Contract draft submitted")
	return contract, nil
}

// Delete discards a draft.
func (s *ContractDraftServiceImpl) Delete(ctx context.Context, sess *session.Session, id string) (err error) {
	defer func() { record("delete", err) }()

	owner, err := Owner(sess)
	if err != nil {
		return err
	}
	return s.repo.Delete(ctx, id, owner)
}

