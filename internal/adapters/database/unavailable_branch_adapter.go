package database

import (
	"context"

	"github.com/bluehands/branchfinder/internal/domain/entities"
	"github.com/bluehands/branchfinder/internal/domain/repositories"
	apperrors "github.com/bluehands/branchfinder/pkg/errors"
)

// UnavailableBranchAdapter stands in for the branch store when it could not
// be reached at startup. Every call fails with an UNAVAILABLE error.
type UnavailableBranchAdapter struct {
	cause error
}

// NewUnavailableBranchAdapter creates an adapter that reports cause on every call
func NewUnavailableBranchAdapter(cause error) *UnavailableBranchAdapter {
	return &UnavailableBranchAdapter{cause: cause}
}

// ListRegions always fails
func (a *UnavailableBranchAdapter) ListRegions(context.Context) ([]string, error) {
	return nil, apperrors.NewUnavailableError("branch database is not connected", a.cause)
}

// Search always fails
func (a *UnavailableBranchAdapter) Search(context.Context, repositories.QueryDescriptor) ([]entities.BranchRecord, error) {
	return nil, apperrors.NewUnavailableError("branch database is not connected", a.cause)
}
