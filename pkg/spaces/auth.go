package spaces

// APIAuth carries the credentials and team scoping for one reporting call.
// It is supplied per call and never persisted by this package.
type APIAuth struct {
	// Token is the opaque bearer credential.
	Token string

	// TeamID scopes the request to a team's resource namespace.
	// Empty means no team scoping.
	TeamID string

	// TeamSlug is the optional human-readable team identifier, sent
	// alongside TeamID when present.
	TeamSlug string
}
