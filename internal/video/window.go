package video

import "gocv.io/x/gocv"

// Display shows frames and polls for key presses.
type Display interface {
	Show(img gocv.Mat)
	// PollKey waits briefly for a key press and returns its code, -1
	// when nothing was pressed.
	PollKey() int
	Close() error
}

// Window is a HighGUI preview window.
type Window struct {
	win *gocv.Window
}

// NewWindow opens a named preview window.
func NewWindow(title string) *Window {
	return &Window{win: gocv.NewWindow(title)}
}

// Show displays img in the window.
func (w *Window) Show(img gocv.Mat) {
	w.win.IMShow(img)
}

// PollKey pumps the GUI event loop for one millisecond and returns the
// pressed key code, -1 when none.
func (w *Window) PollKey() int {
	return w.win.WaitKey(1)
}

// Close destroys the window.
func (w *Window) Close() error {
	return w.win.Close()
}
