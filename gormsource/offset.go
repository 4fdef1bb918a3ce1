package gormsource

import (
	"fmt"
	"strconv"
)

// OffsetCursor is the Info of an OffsetFetcher: a position in the ordered
// dataset. For the next direction it is the first row not loaded yet, for the
// previous direction the first row already loaded.
type OffsetCursor struct {
	offset int
}

func NewOffsetCursor(offset int) *OffsetCursor {
	return &OffsetCursor{offset: max(offset, 0)}
}

// DecodeOffsetCursor parses a token produced by OffsetCursor.String.
func DecodeOffsetCursor(b64String string) (*OffsetCursor, error) {
	if len(b64String) == 0 {
		return nil, nil
	}

	offsetBytes, err := _encoder.DecodeString(b64String)
	if err != nil {
		return nil, fmt.Errorf("failed to decode base64 encoded offset cursor: %w", err)
	}

	offset, err := strconv.Atoi(string(offsetBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to decode offset cursor value: %w", err)
	}

	return NewOffsetCursor(offset), nil
}

// String - implements fmt.Stringer.
func (p *OffsetCursor) String() string {
	if p.IsEmpty() {
		return ""
	}

	return _encoder.EncodeToString([]byte(strconv.Itoa(p.offset)))
}

func (p *OffsetCursor) IsEmpty() bool {
	return p == nil || p.offset == 0
}

// Offset returns the numeric offset value.
func (p *OffsetCursor) Offset() int {
	if p != nil {
		return p.offset
	}

	return 0
}

var _ fmt.Stringer = (*OffsetCursor)(nil)
