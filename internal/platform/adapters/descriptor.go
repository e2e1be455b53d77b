package adapters

// CredentialKind names the account field an adapter needs before it can fetch.
type CredentialKind string

const (
	CredentialHandle      CredentialKind = "handle"
	CredentialAccessToken CredentialKind = "access_token"
)

// ProfileFields maps a source payload's field names onto the normalized
// profile shape.
type ProfileFields struct {
	Username  string
	AvatarURL string
	Followers string
	Following string
}

// PostFields maps a source payload's field names onto the normalized post
// shape.
type PostFields struct {
	ID       string
	Caption  string
	MediaURL string
	Likes    string
	Comments string
	PostedAt string
}

// Descriptor parameterizes one platform adapter. Adding a platform is a
// catalog entry, not a new implementation.
type Descriptor struct {
	Name       string
	Credential CredentialKind
	ProfileURL string
	PostsURL   string
	Profile    ProfileFields
	Posts      PostFields
}
