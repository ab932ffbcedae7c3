// Package repository maps the domain entities onto the flat key layout of
// the persisted store. Each repository is a thin adapter over the typed
// storage layer; all ownership and business rules stay in the services.
package repository

// Persisted key layout.
//
//	users           array of User
//	session         the authenticated user's identity, without the digest
//	tasks:{userId}  array of Task, per user
//	categories      array of Category across all users
//	theme           "light" | "dark"
//	{userId}_avatar raw data-URL string
const (
	keyUsers      = "users"
	keySession    = "session"
	keyCategories = "categories"
	keyTheme      = "theme"
	taskKeyPrefix = "tasks:"
	avatarSuffix  = "_avatar"
)

// TaskKey returns the store key holding a user's tasks.
func TaskKey(userID string) string {
	return taskKeyPrefix + userID
}

// AvatarKey returns the raw-class store key holding a user's avatar.
func AvatarKey(userID string) string {
	return userID + avatarSuffix
}
