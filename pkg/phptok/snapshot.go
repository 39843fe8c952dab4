package phptok

// FileSnapshot is an immutable, lossless view of a PHP file at pass start.
// It holds the raw content, the token stream, and a line index for mapping
// token offsets to diagnostic positions. Fixers work on a live copy of Tokens;
// the snapshot itself is never mutated.
type FileSnapshot struct {
	// Path is the file path (may be empty for in-memory content).
	Path string

	// Content is the full file bytes.
	Content []byte

	// Tokens is the full token stream covering every byte.
	Tokens Sequence

	// Lines contains metadata for each line in the file.
	Lines []LineInfo
}

// NewFileSnapshot creates a FileSnapshot from content and a token stream.
// It builds the line index; tokenizing is the Tokenizer's job.
func NewFileSnapshot(path string, content []byte, tokens Sequence) *FileSnapshot {
	return &FileSnapshot{
		Path:    path,
		Content: content,
		Tokens:  tokens,
		Lines:   BuildLines(content),
	}
}

// LineContent returns the bytes of the given 1-based line without its
// newline. Returns nil when the line is out of range.
func (fs *FileSnapshot) LineContent(lineNum int) []byte {
	if lineNum < 1 || lineNum > len(fs.Lines) {
		return nil
	}
	li := fs.Lines[lineNum-1]
	return fs.Content[li.StartOffset:li.NewlineStart]
}

// PositionAt returns the 1-based source position of the token at pos in the
// given live sequence. Offsets are recomputed from the sequence so positions
// stay correct after earlier fixers have edited it.
func (fs *FileSnapshot) PositionAt(seq Sequence, pos int) SourcePosition {
	start := Offset(seq, pos)
	if start < 0 {
		return SourcePosition{}
	}
	end := start + len(seq[pos].Text)
	lines := fs.Lines
	if rendered := Render(seq); len(rendered) != len(fs.Content) {
		// The sequence has diverged from the snapshot; rebuild the line index
		// for the live content so positions stay self-consistent.
		lines = BuildLines(rendered)
	}
	return PositionForOffset(lines, start, end)
}
