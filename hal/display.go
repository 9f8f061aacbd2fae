package hal

// ResizeToDisplaySize makes the framebuffer match the size the display shows
// it at. It reports whether the framebuffer changed. Framebuffers that cannot
// be resized, and zero display sizes, are left alone.
func ResizeToDisplaySize(d Display) (bool, error) {
	if d == nil {
		return false, ErrNoFramebuffer
	}
	fb := d.Framebuffer()
	if fb == nil {
		return false, ErrNoFramebuffer
	}
	w, h := d.DisplaySize()
	if w <= 0 || h <= 0 || (w == fb.Width() && h == fb.Height()) {
		return false, nil
	}
	rf, ok := fb.(ResizableFramebuffer)
	if !ok {
		return false, nil
	}
	if err := rf.Resize(w, h); err != nil {
		return false, err
	}
	return true, nil
}
