package credential

import "time"

// AllowedUser is a snapshot of a user taken at grant time. It is a copy,
// not a live reference: later changes to the user's name or email do not
// propagate into previously saved credentials.
type AllowedUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// Credential is the persisted flat record. The meaning of Username and
// Password depends on ServiceType; business logic never reads them
// directly but goes through the Secret variants (see secret.go).
type Credential struct {
	ID          string      `json:"id"`
	ClientID    string      `json:"clientId"`
	Name        string      `json:"name"`
	Environment Environment `json:"environment"`
	ServiceType ServiceType `json:"serviceType"`
	Username    string      `json:"username"`
	Password    string      `json:"password"`
	URL         string      `json:"url,omitempty"`
	Notes       string      `json:"notes,omitempty"`
	Tags        []string    `json:"tags"`
	LastUpdated time.Time   `json:"lastUpdated"`
	CreatedAt   time.Time   `json:"createdAt"`

	OwnerID      string        `json:"ownerId,omitempty"`
	OwnerName    string        `json:"ownerName,omitempty"`
	IsLegacy     bool          `json:"isLegacy"`
	IsOwner      bool          `json:"isOwner"`
	AllowedUsers []AllowedUser `json:"allowedUsers"`
	ViewerCount  int           `json:"viewerCount"`
}

// Mode reports the credential's visibility mode derived from its stored
// state. Write paths carry the mode explicitly; this is for read paths.
func (c *Credential) Mode() Visibility {
	if c.IsLegacy {
		return VisibilityEveryone
	}
	return VisibilityRestricted
}
