package service

import (
	"context"
	"strings"

	"github.com/spec-kit/village-portal/internal/domain"
	"github.com/spec-kit/village-portal/internal/store"
	apperrors "github.com/spec-kit/village-portal/pkg/util/errorutil"
)

// BidService manages procurement listings and the proposals filed on them.
type BidService struct {
	base
}

// ResidentBids splits bids the way residents browse them.
type ResidentBids struct {
	Open  []domain.Bid `json:"open"`
	Other []domain.Bid `json:"other"`
}

// NewBidService constructs the service.
func NewBidService(deps Dependencies) *BidService {
	return &BidService{base: newBase(deps)}
}

// List returns bids in stored order.
func (s *BidService) List() []domain.Bid {
	return s.store.Snapshot().Bids
}

// Get fetches one bid.
func (s *BidService) Get(id string) (domain.Bid, error) {
	bid, ok := s.store.Snapshot().FindBid(id)
	if !ok {
		return domain.Bid{}, apperrors.NewNotFound("bid", map[string]any{"id": id})
	}
	return bid, nil
}

// Create posts a new bid. Status defaults to Open.
func (s *BidService) Create(ctx context.Context, bid domain.Bid) (domain.Bid, error) {
	bid.ID = s.newID("bid")
	if bid.Status == "" {
		bid.Status = domain.BidStatusOpen
	}
	if err := bid.Validate(); err != nil {
		return domain.Bid{}, err
	}
	if err := s.apply(ctx, store.AddBid{Bid: bid}, "bid"); err != nil {
		return domain.Bid{}, err
	}
	return bid, nil
}

// Update replaces the bid with the same identifier.
func (s *BidService) Update(ctx context.Context, bid domain.Bid) (domain.Bid, error) {
	if err := bid.Validate(); err != nil {
		return domain.Bid{}, err
	}
	if err := s.apply(ctx, store.UpdateBid{Bid: bid}, "bid"); err != nil {
		return domain.Bid{}, err
	}
	return bid, nil
}

// Delete removes a bid. Its submissions stay and show the bid as unknown.
func (s *BidService) Delete(ctx context.Context, id string) error {
	return s.apply(ctx, store.DeleteBid{ID: id}, "bid")
}

// Award marks the bid as won by vendor.
func (s *BidService) Award(ctx context.Context, id, vendor string) (domain.Bid, error) {
	bid, err := s.Get(id)
	if err != nil {
		return domain.Bid{}, err
	}
	vendor = strings.TrimSpace(vendor)
	if vendor == "" {
		return domain.Bid{}, apperrors.NewValidationError("vendor name required", map[string]any{"field": "vendorName"})
	}
	bid.Status = domain.BidStatusAwarded
	bid.AwardedTo = vendor
	return s.Update(ctx, bid)
}

// Submissions returns the proposals filed against an existing bid.
func (s *BidService) Submissions(bidID string) ([]domain.BidSubmission, error) {
	snap := s.store.Snapshot()
	if _, ok := snap.FindBid(bidID); !ok {
		return nil, apperrors.NewNotFound("bid", map[string]any{"id": bidID})
	}
	return snap.SubmissionsForBid(bidID), nil
}

// SubmitProposal files a proposal from submitter against an open bid.
func (s *BidService) SubmitProposal(ctx context.Context, submitter domain.User, bidID string, sub domain.BidSubmission) (domain.BidSubmission, error) {
	bid, err := s.Get(bidID)
	if err != nil {
		return domain.BidSubmission{}, err
	}
	if bid.Status != domain.BidStatusOpen {
		return domain.BidSubmission{}, apperrors.NewConflict("bid is not accepting proposals", map[string]any{"id": bidID, "status": bid.Status})
	}

	sub.ID = s.newID("sub")
	sub.BidID = bid.ID
	sub.SubmittedBy = submitter.ID
	sub.SubmittedAt = s.now()
	if err := sub.Validate(); err != nil {
		return domain.BidSubmission{}, err
	}
	if err := s.apply(ctx, store.AddBidSubmission{Submission: sub}, "bid submission"); err != nil {
		return domain.BidSubmission{}, err
	}
	return sub, nil
}

// ForResident groups bids into open ones and the rest.
func (s *BidService) ForResident() ResidentBids {
	out := ResidentBids{Open: []domain.Bid{}, Other: []domain.Bid{}}
	for _, bid := range s.store.Snapshot().Bids {
		if bid.Status == domain.BidStatusOpen {
			out.Open = append(out.Open, bid)
		} else {
			out.Other = append(out.Other, bid)
		}
	}
	return out
}
