//go:build !embedded

package games

// Stub for normal builds without embedded payloads.
func embeddedPayload(string) []byte {
	return nil
}
