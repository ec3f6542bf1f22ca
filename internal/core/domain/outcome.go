package domain

type RefreshStatus string

const (
	RefreshUnchanged RefreshStatus = "unchanged"
	RefreshUpdated   RefreshStatus = "updated"
	RefreshError     RefreshStatus = "error"
)

// RefreshOutcome is the result of refreshing one software id.
type RefreshOutcome struct {
	SoftwareID string
	Status     RefreshStatus
	Version    string
	Previous   string
	Err        error
}

// FetchResult is what a version fetcher reports for one software id.
type FetchResult struct {
	Version string
	Name    string
}
