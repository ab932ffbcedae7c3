package models

// Session is the persisted shape of the authenticated user's identity. It
// deliberately excludes the password digest. CreatedAt is kept as the raw
// stored string because session payloads have crossed the string/date
// serialization boundary in older formats; the auth layer normalizes it.
type Session struct {
	ID        string  `json:"id"`
	Email     string  `json:"email"`
	Username  string  `json:"username"`
	CreatedAt string  `json:"createdAt"`
	Profile   Profile `json:"profile"`
}
