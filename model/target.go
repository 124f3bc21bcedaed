package model

// TargetKind is the kind of construct a cross-reference target labels.
type TargetKind int

const (
	TargetHeading TargetKind = iota
	TargetFigure
	TargetTable
	TargetCode
	TargetMath
	TargetDefinition
)

// String returns the string representation of the target kind.
func (k TargetKind) String() string {
	switch k {
	case TargetHeading:
		return "heading"
	case TargetFigure:
		return "figure"
	case TargetTable:
		return "table"
	case TargetCode:
		return "code"
	case TargetMath:
		return "math"
	case TargetDefinition:
		return "definition"
	default:
		return "unknown"
	}
}

// Numbered reports whether targets of this kind get a synthesized sequence
// number when they have no caption.
func (k TargetKind) Numbered() bool {
	switch k {
	case TargetFigure, TargetTable, TargetCode, TargetMath:
		return true
	}
	return false
}

// Target is a labeled anchor point in a document.
type Target struct {
	ID             string     // anchor id, e.g. "dz3"
	Kind           TargetKind // what the anchor labels
	SequenceNumber int        // per-kind number, 0 when the target has a caption
	LinkName       string     // text substituted for references to ID
	Line           int        // 0-based line of the anchor in the markup
}
