package ports

import (
	"context"

	"go.trai.ch/ppac/internal/core/domain"
)

// Prompter defines the interface for the decisions an installation asks the user for.
//
//go:generate mockgen -source=prompter.go -destination=mocks/mock_prompter.go -package=mocks
type Prompter interface {
	// Confirm asks whether an installation should proceed.
	Confirm(ctx context.Context, req domain.ConfirmRequest) (bool, error)

	// Choose asks which repository to download from and returns the 1-based answer.
	Choose(ctx context.Context, req domain.ChoiceRequest) (int, error)
}
