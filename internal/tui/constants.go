package tui

// UI Layout Constants
// These constants define spacing, margins, and dimensions for the TUI layout

const (
	// Modal Dimensions - Standard margins for modal dialogs
	ModalWidthMargin  = 6 // Standard horizontal margin (m.width - 6)
	ModalHeightMargin = 3 // Standard vertical margin (m.height - 3)

	// Content Area Offsets
	ContentOffsetStandard = 7  // m.height - 7 for page content
	ContentOffsetInspect  = 9  // m.height - 9 for the block inspector
	SidebarWidth          = 22 // Fixed navigation sidebar width

	// Modal Content Calculations
	ModalOverheadLines = 6 // Title (2) + padding (2) + border (2)

	// Buffer Sizes
	UploadEventBuffer = 16 // Buffer size for the upload progress channel

	// Toasts
	MaxVisibleToasts = 4 // Newest-first toasts shown at once
)
