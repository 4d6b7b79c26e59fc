package credential

// Visibility is the explicit access mode of a credential. It is carried
// end-to-end on write paths; a Restricted credential with an empty
// allow-list (owner-only) is a valid state distinct from Everyone, so the
// mode is never inferred from list emptiness.
type Visibility string

const (
	// VisibilityEveryone marks a legacy credential whose secret every
	// authenticated user may view.
	VisibilityEveryone Visibility = "everyone"
	// VisibilityRestricted limits viewing to the owner plus the explicit
	// allow-list.
	VisibilityRestricted Visibility = "restricted"
)

func (v Visibility) Valid() bool {
	return v == VisibilityEveryone || v == VisibilityRestricted
}

// CanView reports whether the given user may view the credential's secret:
// everyone for legacy credentials, otherwise the owner and the allow-list.
func CanView(c *Credential, userID string) bool {
	if c.IsLegacy {
		return true
	}
	if c.OwnerID != "" && c.OwnerID == userID {
		return true
	}
	for _, u := range c.AllowedUsers {
		if u.ID == userID {
			return true
		}
	}
	return false
}

// Owns reports whether the given user owns the credential. This is a
// per-viewer projection, never a stored fact shared across viewers.
func Owns(c *Credential, userID string) bool {
	return c.OwnerID != "" && c.OwnerID == userID
}
