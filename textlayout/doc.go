// Package textlayout measures, hit-tests and draws text for the frame
// renderer.
//
// Text is shaped with the go-text HarfBuzz port, broken into lines against
// an optional maximum width and aligned inside its box. Glyph outlines and
// line metrics come from golang.org/x/image/font/sfnt.
//
// All positions handed to a Layout are physical pixels relative to the
// layout's top-left corner. The bridge functions (TextSize,
// ByteOffsetForPosition, CursorRectForByteOffset) take and return logical
// pixels and convert with the window's scale factor.
//
// Layouts report hit-test results as UTF-16 code unit indices; the bridge
// converts them back to byte offsets into the Go string.
package textlayout
