package domain

// SoftwareView is the projected state of one software id.
type SoftwareView struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Current  string   `json:"current"`
	Versions []string `json:"versions"`
}

// HasPointer reports whether a latest pointer record contributed to the view.
func (v SoftwareView) HasPointer() bool {
	return v.Current != ""
}

// VersionDetail describes a single (software, version) pair.
type VersionDetail struct {
	ID      string `json:"id"`
	Name    string `json:"name,omitempty"`
	Version string `json:"version"`
	Current bool   `json:"current"`
}
