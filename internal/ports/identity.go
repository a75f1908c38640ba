package ports

// Profile is the presentation data attached to an identity.
type Profile struct {
	DisplayName string
	Color       string
}

// IdentityDirectory resolves identities to display names and colors.
type IdentityDirectory interface {
	// Lookup returns the profile for id; ok is false when the identity is unknown.
	Lookup(id string) (Profile, bool)
}
