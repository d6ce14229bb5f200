package models

// Profile is the identity enrichment record kept by the identity
// provider, keyed by user id. The store never reads it; only the
// presentation layer does.
type Profile struct {
	UserID      string `json:"userId"`
	DisplayName string `json:"displayName,omitempty"`
	Phone       string `json:"phone,omitempty"`
	AvatarURL   string `json:"avatarUrl,omitempty"`
}
