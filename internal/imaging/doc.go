// Package imaging provides the file-level image operations behind the bridge.
//
// This package decodes image files into memory, encodes images back to PNG or
// JPEG, crops rectangular regions and composites two images onto a canvas.
// Pixel work is delegated to github.com/disintegration/imaging; this package
// adds path handling, format selection and the validation rules the bridge
// reports to its callers.
//
// # Coordinate System
//
// All pixel coordinates are 0-based with (0,0) at the top-left corner.
// X increases rightward and Y increases downward. Rectangles are given as an
// origin plus a width and height.
//
// # Formats
//
// Decoding accepts PNG, JPEG and GIF. JPEG orientation tags are applied on
// decode so the in-memory image is always upright. Encoding supports PNG
// (lossless) and JPEG (caller-selected quality); the format is chosen from
// the output file extension.
//
// # Error Handling
//
// Functions return wrapped errors. Callers can match:
//   - fs.ErrNotExist and similar filesystem errors from Decode and Save
//   - ErrDecode when a file exists but is not a decodable image
//   - ErrNoExtension and ErrUnsupportedFormat from FormatFromPath
//   - *RegionError when a crop rectangle is malformed or out of bounds
package imaging
