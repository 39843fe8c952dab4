package phptok

// LineInfo holds metadata for a single line in a file.
type LineInfo struct {
	// StartOffset is the byte index of the line start.
	StartOffset int

	// NewlineStart is the byte index where newline characters begin.
	// For lines without a trailing newline (e.g., last line), this equals EndOffset.
	NewlineStart int

	// EndOffset is the byte index just after the newline (or end of file).
	EndOffset int
}

// BuildLines indexes the line boundaries of content.
// Both "\n" and "\r\n" line endings are recognized.
func BuildLines(content []byte) []LineInfo {
	if len(content) == 0 {
		return nil
	}

	var lines []LineInfo
	start := 0

	for i := 0; i < len(content); i++ {
		if content[i] != '\n' {
			continue
		}
		nlStart := i
		if i > 0 && content[i-1] == '\r' {
			nlStart = i - 1
		}
		lines = append(lines, LineInfo{
			StartOffset:  start,
			NewlineStart: nlStart,
			EndOffset:    i + 1,
		})
		start = i + 1
	}

	if start < len(content) {
		lines = append(lines, LineInfo{
			StartOffset:  start,
			NewlineStart: len(content),
			EndOffset:    len(content),
		})
	}

	return lines
}

// SourcePosition is a 1-based line/column range in a source file.
type SourcePosition struct {
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int
}

// IsValid returns true if the position has been populated.
func (p SourcePosition) IsValid() bool {
	return p.StartLine >= 1 && p.StartColumn >= 1
}

// PositionForOffset converts a byte offset range into a 1-based line/column
// position using the given line index. Returns the zero position when the
// offsets fall outside the indexed content.
func PositionForOffset(lines []LineInfo, start, end int) SourcePosition {
	sl, sc := locate(lines, start)
	el, ec := locate(lines, end)
	if sl == 0 || el == 0 {
		return SourcePosition{}
	}
	return SourcePosition{StartLine: sl, StartColumn: sc, EndLine: el, EndColumn: ec}
}

// locate returns the 1-based line and column for a byte offset.
func locate(lines []LineInfo, offset int) (int, int) {
	if offset < 0 {
		return 0, 0
	}
	for i, line := range lines {
		if offset < line.EndOffset || (line.EndOffset == line.NewlineStart && offset <= line.EndOffset) {
			return i + 1, offset - line.StartOffset + 1
		}
	}
	// Offset at end of file: attribute it to the last line.
	if n := len(lines); n > 0 && offset >= lines[n-1].StartOffset {
		return n, offset - lines[n-1].StartOffset + 1
	}
	return 0, 0
}
