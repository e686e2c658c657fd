// Package kv provides the key-value persistence substrate backing chat history.
// The conversation core only ever needs synchronous get/set/remove on a single
// document-sized value, so the interface stays deliberately narrow.
package kv

// Store is a synchronous key-value store
type Store interface {
	// Get returns the stored value and whether the key was present
	Get(key string) ([]byte, bool, error)

	// Set stores the value under the key, replacing any previous value
	Set(key string, value []byte) error

	// Remove deletes the key; removing an absent key is not an error
	Remove(key string) error
}
