package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/rentaldesk/rental-bff/internal/contractform"
	"github.com/rentaldesk/rental-bff/internal/pricing"
	"github.com/rentaldesk/rental-bff/internal/rental"
	"github.com/rentaldesk/rental-bff/internal/session"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

const stockLoadConcurrency = 4

// ContractService prices and creates contracts sent in one request, without
// a stored draft.
type ContractService interface {
	Quote(state contractform.State) pricing.Quote
	Create(ctx context.Context, sess *session.Session, state contractform.State) (rental.Contract, error)
}

// ContractServiceImpl implements ContractService.
type ContractServiceImpl struct {
	api    RentalAPI
	quoter *contractform.Quoter
}

// NewContractService creates the contracts service.
func NewContractService(api RentalAPI, quoter *contractform.Quoter) *ContractServiceImpl {
	return &ContractServiceImpl{api: api, quoter: quoter}
}

// Quote prices a contract form.
func (s *ContractServiceImpl) Quote(state contractform.State) pricing.Quote {
	return s.quoter.Quote(state)
}

// Create validates the form against current stock and creates the contract
// with the recomputed totals. Quantities above the available stock are
// rejected, never reduced.
func (s *ContractServiceImpl) Create(ctx context.Context, sess *session.Session, state contractform.State) (rental.Contract, error) {
	stock, err := loadStock(ctx, s.api, sess, state)
	if err != nil {
		return rental.Contract{}, err
	}

	in, err := contractform.BuildContractInput(state, stock, s.quoter.Quote(state))
	if err != nil {
		return rental.Contract{}, err
	}
	contract, err := s.api.CreateContract(ctx, sess, in)
	if err != nil {
		return rental.Contract{}, err
	}
	log.Info().Str("contract_id", contract.ID).Str("total", in.Total.String()).Msg("Contract created")
	return contract, nil
}

// loadStock fetches the stock of every product in the state for its period.
// Without a complete period there is nothing to check against.
func loadStock(ctx context.Context, api RentalAPI, sess *session.Session, state contractform.State) (contractform.StockIndex, error) {
	if state.Start == nil || state.End == nil || !state.Start.Before(*state.End) {
		return nil, nil
	}

	products := make(map[string]struct{}, len(state.Items))
	for _, it := range state.Items {
		if it.ProductID != "" {
			products[it.ProductID] = struct{}{}
		}
	}

	var mu sync.Mutex
	stock := contractform.StockIndex{}
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(stockLoadConcurrency)
	for id := range products {
		g.Go(func() error {
			rows, err := api.ProductStock(gctx, sess, id, *state.Start, *state.End)
			if err != nil {
				return fmt.Errorf("load stock of product %s: %w", id, err)
			}
			mu.Lock()
			stock.Set(id, rows)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return stock, nil
}
