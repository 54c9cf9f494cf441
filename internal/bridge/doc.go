// Package bridge exposes image operations to a calling runtime through
// promise-style completions.
//
// Each operation is a straight-line procedure: validate paths and
// parameters, call into the imaging and vision packages, write the output
// file(s), then settle the caller's Promise with a flat Result map or a
// coded rejection. Operations run synchronously on the calling goroutine;
// the Promise is always settled before the method returns.
//
// # Operations
//
//   - ImageToMat: decode a file and register it as a matrix handle
//   - MatToImage: encode a registered matrix to PNG or JPEG
//   - EdgeOverlay: blur, Canny and contour fill in one call
//   - GaussianBlur / Canny: the two halves of EdgeOverlay as separate calls
//   - Crop: cut a rectangle out of an image file
//   - Combine: composite two image files
//   - MatInfo / ReleaseMat: inspect and release handles
//
// # Rejections
//
// Rejection codes are fixed:
//
//	ENOENT    no such file or directory
//	EISDIR    path is a directory
//	EINVAL    invalid parameter
//	EGENERIC  anything else; the message is the underlying error text
//
// # Handle Ownership
//
// Matrices live in a mats.Registry owned by the Bridge rather than in
// process-wide state. Two Bridges never share handles.
package bridge
