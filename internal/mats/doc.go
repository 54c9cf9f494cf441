// Package mats owns the in-memory image matrices handed out to bridge callers.
//
// A Registry is an arena keyed by integer handle. Callers receive a handle
// when an image is registered and refer to the matrix by that handle in later
// operations. Handles are issued in increasing order starting at 0 and are
// never reused, so a stale handle can only ever miss, never alias a newer
// matrix.
//
// # Representation
//
// Every matrix is stored as *image.NRGBA: 8 bits per channel, 4 channels.
// Images registered in another color model are converted on Add.
//
// # Thread Safety
//
// Registry is safe for concurrent use. The matrices themselves are shared:
// callers that need to modify pixels must work on a copy.
package mats
