package client

import (
	"hash/fnv"
	"strings"
	"time"
	"unicode"
)

// Client groups credentials under one customer or project. CredentialCount
// is denormalized and maintained transactionally by the credential
// repository; it is never recomputed on read.
type Client struct {
	ID              string     `json:"id"`
	Name            string     `json:"name"`
	Description     string     `json:"description,omitempty"`
	Color           string     `json:"color"`
	Initials        string     `json:"initials"`
	CredentialCount int        `json:"credentialCount"`
	LastAccessed    *time.Time `json:"lastAccessed,omitempty"`
	CreatedAt       time.Time  `json:"createdAt"`
}

// palette holds the avatar colors assigned to new clients.
var palette = []string{
	"#06b6d4",
	"#8b5cf6",
	"#f59e0b",
	"#10b981",
	"#ec4899",
	"#6366f1",
}

// PickColor maps a client name onto the palette deterministically, so the
// same name always gets the same avatar color.
func PickColor(name string) string {
	h := fnv.New32a()
	h.Write([]byte(name))
	return palette[h.Sum32()%uint32(len(palette))]
}

// DeriveInitials takes the first letter of up to two words of the name,
// uppercased.
func DeriveInitials(name string) string {
	var b strings.Builder
	for _, word := range strings.Fields(name) {
		for _, r := range word {
			b.WriteRune(unicode.ToUpper(r))
			break
		}
		if b.Len() >= 2 {
			break
		}
	}
	return b.String()
}
