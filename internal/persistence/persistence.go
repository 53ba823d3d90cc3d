// Package persistence is the durable key-value port the entity stores
// serialize their state into. Each store owns exactly one key.
package persistence

// Store is a namespaced key -> JSON blob store. Get reports absence
// through the second return value rather than an error.
type Store interface {
	Get(key string) ([]byte, bool, error)
	Set(key string, value []byte) error
}

// Fixed keys, one per entity store.
const (
	KeyAuth     = "auth-storage"
	KeyCalendar = "calendar-storage"
	KeyFood     = "food-storage"
	KeyStatus   = "status-storage"
)
