package ocr

import "errors"

// ErrNoText is returned when recognition produced neither text nor lines.
var ErrNoText = errors.New("no text recognized")
