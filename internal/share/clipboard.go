package share

import (
	"errors"
	"fmt"

	"github.com/atotto/clipboard"
)

// ErrClipboard wraps any failure to write the clipboard. It is never fatal.
var ErrClipboard = errors.New("clipboard write failed")

// Clipboard receives share links.
type Clipboard interface {
	WriteAll(text string) error
}

// SystemClipboard writes through the OS clipboard (pbcopy, xclip/xsel, wl-copy, win32).
type SystemClipboard struct{}

func (SystemClipboard) WriteAll(text string) error {
	if clipboard.Unsupported {
		return fmt.Errorf("%w: no clipboard utility available", ErrClipboard)
	}
	if err := clipboard.WriteAll(text); err != nil {
		return fmt.Errorf("%w: %v", ErrClipboard, err)
	}
	return nil
}

// Copy writes text to cb, normalizing errors to ErrClipboard.
func Copy(cb Clipboard, text string) error {
	if cb == nil {
		return fmt.Errorf("%w: no clipboard", ErrClipboard)
	}
	if err := cb.WriteAll(text); err != nil {
		if errors.Is(err, ErrClipboard) {
			return err
		}
		return fmt.Errorf("%w: %v", ErrClipboard, err)
	}
	return nil
}
