package entities

// Artifact represents a staged build output in the distribution directory.
type Artifact struct {
	Name   string `json:"name"` // Staged filename (e.g. file-search-x86_64-unknown-linux-gnu)
	Triple string `json:"triple"`
	Path   string `json:"path"` // Path to the staged file inside the distribution directory
	Size   int64  `json:"size"`
	SHA256 string `json:"sha256,omitempty"`
	SHA512 string `json:"sha512,omitempty"`
}
