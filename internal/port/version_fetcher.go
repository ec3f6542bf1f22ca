package port

import (
	"context"

	"github.com/rl1809/updatechecker/internal/core/domain"
)

type VersionFetcher interface {
	// FetchLatest asks the upstream source for the current released version
	FetchLatest(ctx context.Context, softwareID string) (domain.FetchResult, error)
}

type SoftwareRegistry interface {
	// SoftwareIDs lists every software id a refresh cycle must visit
	SoftwareIDs() []string
}
