package main

const (
	CanvasID ObjectID = 0
	NoObject ObjectID = -1
)

const (
	KindAxis ObjectKind = iota
	KindLabel
	KindPoint
	KindSupplyDemandLine
)

const (
	ShapeRect Shape = iota
	ShapeLine
	ShapeText
	ShapeMarker
	ShapeGuide
)

type Mode int

const (
	ModeNormal Mode = iota
	ModePanDrag
	ModeObjectDrag
	ModeTextInput
	ModeFileInput
	ModeConfirm
)

type FileOperation int

const (
	FileOpSave FileOperation = iota
	FileOpOpen
	FileOpExportPNG
)

type ConfirmAction int

const (
	ConfirmQuit ConfirmAction = iota
	ConfirmOverwriteFile
)

type ExportQuality int

const (
	ExportNormal ExportQuality = iota
	ExportHigh
)

const (
	minZoom  = 0.25
	maxZoom  = 5.0
	zoomStep = 0.25

	pageWidth  = 5000.0
	pageHeight = 3000.0

	minUsedExtent   = 1000.0
	usedExtentFloor = 350.0
	usedExtentPad   = 650.0

	axisWidth   = 400.0
	axisHeight  = 300.0
	axisStroke  = 2.0
	tickSpacing = 50.0
	tickLength  = 4.0

	markerSize    = 7.0
	lineThickness = 2.0
	segmentLength = 8.0
	guideDash     = 6.0

	labelFontSize = 12.0

	scrollbarRange = 1000.0
	wheelScroll    = 25.0

	saveExtension   = ".edi"
	exportExtension = ".png"
	untitledName    = "Untitled Diagram"
)
