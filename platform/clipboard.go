package platform

import (
	"bytes"
	"fmt"
	"image"
	"image/png"

	"github.com/rs/zerolog"
	"golang.design/x/clipboard"
)

// Clipboard copies screenshots as PNG images.
type Clipboard struct {
	ready bool
	log   zerolog.Logger
}

// NewClipboard initializes the system clipboard. Failure leaves it disabled.
func NewClipboard(log zerolog.Logger) *Clipboard {
	c := &Clipboard{log: log}
	if err := clipboard.Init(); err != nil {
		log.Warn().Err(err).Msg("clipboard unavailable")
		return c
	}
	c.ready = true
	return c
}

func (c *Clipboard) Ready() bool {
	return c != nil && c.ready
}

// CopyImage is shaped to be a screenshot.OnSaved hook.
func (c *Clipboard) CopyImage(path string, img image.Image) {
	if !c.Ready() {
		return
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		c.log.Warn().Err(fmt.Errorf("platform: encode %s for clipboard: %w", path, err)).Msg("clipboard copy")
		return
	}
	clipboard.Write(clipboard.FmtImage, buf.Bytes())
	c.log.Debug().Str("path", path).Msg("screenshot copied to clipboard")
}
