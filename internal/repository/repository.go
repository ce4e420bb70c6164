package repository

// SlotRepository stores opaque values under fixed keys
type SlotRepository interface {
	// Get returns the value stored under key; found is false when the slot is empty
	Get(key string) (value []byte, found bool, err error)
	// Set replaces the value stored under key
	Set(key string, value []byte) error
}
