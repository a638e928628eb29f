package window

// WindowBuilderOption is a functional option for configuring an engineWindow.
// Use the With* functions to create options.
type WindowBuilderOption func(w *engineWindow)

// WithTitle sets the window title displayed in the title bar.
//
// Parameters:
//   - title: the window title text
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithTitle(title string) WindowBuilderOption {
	return func(w *engineWindow) {
		w.title = title
	}
}

// WithMinSize sets the minimum window size. Zero leaves a dimension unlimited.
//
// Parameters:
//   - width, height: minimum size in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithMinSize(width, height int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.minWidth, w.minHeight = width, height
	}
}

// WithMaxSize sets the maximum window size. Zero leaves a dimension unlimited.
//
// Parameters:
//   - width, height: maximum size in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithMaxSize(width, height int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.maxWidth, w.maxHeight = width, height
	}
}

// WithWidth sets the initial window width.
//
// Parameters:
//   - width: initial width in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithWidth(width int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.width = width
	}
}

// WithHeight sets the initial window height.
//
// Parameters:
//   - height: initial height in pixels
//
// Returns:
//   - WindowBuilderOption: option function to apply
func WithHeight(height int) WindowBuilderOption {
	return func(w *engineWindow) {
		w.height = height
	}
}
