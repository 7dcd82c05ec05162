package game

// Frame timing.
const MaxFrameDelta = 0.1 // seconds; longer stalls are clamped

// Mesh resolution.
const (
	SphereWidthSegs  = 48
	SphereHeightSegs = 32
	StarWidthSegs    = 64
)

// Texture streaming.
const (
	MaxTextureSize    = 4096 // longer sides are downscaled before upload
	UploadsPerFrame   = 2
	TextureQueueDepth = 16
)

// Font atlas layout (generated from basicfont 7x13: 16 cols x 8 rows, ASCII 0-127).
// Cell 127 (DEL) is filled solid and used for HUD rectangles.
const (
	FontCellW  = 7
	FontCellH  = 13
	FontCols   = 16
	FontRows   = 8
	FontAtlasW = FontCellW * FontCols // 112
	FontAtlasH = FontCellH * FontRows // 104
	SolidGlyph = 127
)

// HUD.
const (
	HUDScale      = 1.5
	MaxTextQuads  = 4096
	ToastDuration = 2.5
)

// Camera input.
const (
	KeyOrbitDegPerSec = 60.0
	ScrollZoomStep    = 1 // scroll ticks per Camera.Zoom(ZoomSpeed)
)
