package service

import (
	"context"
	"log/slog"

	"github.com/apper-canvas/contact-haptic-matrix/internal/apper"
)

// Watermarker stamps contact photos through a remote Apper function.
// Watermarking is cosmetic: every failure, of any shape, falls back to the
// original photo URL and is logged at info. It must never block display of
// a contact's photo, so nothing here is surfaced to the caller.
type Watermarker struct {
	fn       apper.FunctionAPI
	function string
	log      *slog.Logger
}

// NewWatermarker constructs a Watermarker invoking the named function.
// An empty function name disables watermarking; Apply then returns its
// input unchanged.
func NewWatermarker(fn apper.FunctionAPI, function string, log *slog.Logger) *Watermarker {
	return &Watermarker{fn: fn, function: function, log: log}
}

// Apply returns the watermarked URL for photoURL, or photoURL unchanged
// when either input is empty, watermarking is disabled, or the remote
// function fails in any way.
func (w *Watermarker) Apply(ctx context.Context, photoURL, contactName string) string {
	if photoURL == "" || contactName == "" || w.function == "" || w.fn == nil {
		return photoURL
	}

	payload := struct {
		PhotoURL    string `json:"photoUrl"`
		ContactName string `json:"contactName"`
	}{photoURL, contactName}

	var result struct {
		Success          bool   `json:"success"`
		WatermarkedImage string `json:"watermarkedImage"`
	}

	if err := w.fn.InvokeFunction(ctx, w.function, payload, &result); err != nil {
		w.log.InfoContext(ctx, "watermark function failed, using original photo",
			"function", w.function, "error", err)
		return photoURL
	}
	if !result.Success || result.WatermarkedImage == "" {
		w.log.InfoContext(ctx, "watermark function returned no image, using original photo",
			"function", w.function)
		return photoURL
	}
	return result.WatermarkedImage
}
