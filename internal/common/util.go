// Package common holds small helpers shared by the client packages.
package common

// WipeByteArray zeroes b in place. It is used on passwords read from the
// terminal once they have been handed to the backend.
func WipeByteArray(b []byte) {
	for i := range b {
		b[i] = 0
	}
}
