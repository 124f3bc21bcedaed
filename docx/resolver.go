package docx

import (
	"strconv"
)

// ResolvedStyle contains the resolved properties of a style that the
// paragraph classifier looks at.
type ResolvedStyle struct {
	// Identity
	ID   string
	Name string
	Type string // paragraph, character, table

	// Paragraph properties
	IndentLeft  float64 // points
	IndentFirst float64 // points (first line indent, can be negative for hanging)

	// Run/character properties
	FontName string
	FontSize float64 // points
}

// StyleResolver resolves styles with inheritance support.
type StyleResolver struct {
	styles           map[string]*styleDefXML
	resolved         map[string]*ResolvedStyle
	defaultParagraph string
	defaultFont      string
	defaultSize      float64
	defaultIndent    float64
}

// NewStyleResolver creates a new style resolver from parsed styles.
func NewStyleResolver(styles *stylesXML) *StyleResolver {
	sr := &StyleResolver{
		styles:      make(map[string]*styleDefXML),
		resolved:    make(map[string]*ResolvedStyle),
		defaultFont: "Calibri", // Word default
		defaultSize: 11,        // Word default (11pt)
	}

	if styles == nil {
		return sr
	}

	// Build style map
	for i := range styles.Styles {
		style := &styles.Styles[i]
		sr.styles[style.StyleID] = style
		if style.Type == "paragraph" && (style.Default == "1" || style.Default == "true") && sr.defaultParagraph == "" {
			sr.defaultParagraph = style.StyleID
		}
	}

	// Parse defaults from docDefaults
	defaults := styles.DocDefaults
	if name := defaults.RPrDefault.RPr.Font.name(); name != "" {
		sr.defaultFont = name
	}
	if defaults.RPrDefault.RPr.FontSize.Val != "" {
		if size := parseHalfPoints(defaults.RPrDefault.RPr.FontSize.Val); size > 0 {
			sr.defaultSize = size
		}
	}
	if left := defaults.PPrDefault.PPr.Indent.left(); left != "" {
		sr.defaultIndent = parseTwips(left)
	}

	return sr
}

// DefaultParagraphStyle returns the ID of the default paragraph style, or
// "" when styles.xml declares none.
func (sr *StyleResolver) DefaultParagraphStyle() string {
	return sr.defaultParagraph
}

// Resolve returns the fully resolved style for the given style ID. An empty
// ID resolves the default paragraph style. If the style doesn't exist,
// returns a default style carrying the ID as its name.
func (sr *StyleResolver) Resolve(styleID string) *ResolvedStyle {
	if styleID == "" {
		if sr.defaultParagraph == "" {
			return sr.defaultStyle()
		}
		styleID = sr.defaultParagraph
	}

	// Check cache
	if resolved, ok := sr.resolved[styleID]; ok {
		return resolved
	}

	// Start with default style
	resolved := sr.defaultStyle()
	resolved.ID = styleID

	// Find the style definition
	styleDef, ok := sr.styles[styleID]
	if !ok {
		resolved.Name = styleID
		sr.resolved[styleID] = resolved
		return resolved
	}

	resolved.Name = styleDef.Name.Val
	if resolved.Name == "" {
		resolved.Name = styleID
	}
	resolved.Type = styleDef.Type

	// Apply properties from base to derived
	for _, sid := range sr.buildInheritanceChain(styleID) {
		if def, ok := sr.styles[sid]; ok {
			sr.applyStyleDef(resolved, def)
		}
	}

	sr.resolved[styleID] = resolved
	return resolved
}

// defaultStyle returns a style with default values.
func (sr *StyleResolver) defaultStyle() *ResolvedStyle {
	return &ResolvedStyle{
		FontName:   sr.defaultFont,
		FontSize:   sr.defaultSize,
		IndentLeft: sr.defaultIndent,
	}
}

// buildInheritanceChain returns style IDs from base to derived.
func (sr *StyleResolver) buildInheritanceChain(styleID string) []string {
	var chain []string
	visited := make(map[string]bool)

	current := styleID
	for current != "" && !visited[current] {
		visited[current] = true
		chain = append([]string{current}, chain...) // Prepend

		if def, ok := sr.styles[current]; ok {
			current = def.BasedOn.Val
		} else {
			break
		}
	}

	return chain
}

// applyStyleDef applies a style definition's properties to a resolved style.
func (sr *StyleResolver) applyStyleDef(resolved *ResolvedStyle, def *styleDefXML) {
	ppr := def.PPr
	if left := ppr.Indent.left(); left != "" {
		resolved.IndentLeft = parseTwips(left)
	}
	if ppr.Indent.FirstLine != "" {
		resolved.IndentFirst = parseTwips(ppr.Indent.FirstLine)
	}
	if ppr.Indent.Hanging != "" {
		resolved.IndentFirst = -parseTwips(ppr.Indent.Hanging)
	}

	rpr := def.RPr
	if name := rpr.Font.name(); name != "" {
		resolved.FontName = name
	}
	if rpr.FontSize.Val != "" {
		if size := parseHalfPoints(rpr.FontSize.Val); size > 0 {
			resolved.FontSize = size
		}
	}
}

// parseHalfPoints parses a size in half-points to points.
// Word uses half-points for font sizes (e.g., "24" = 12pt).
func parseHalfPoints(s string) float64 {
	val, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return val / 2
}

// parseTwips parses a size in twips to points.
// 1 point = 20 twips.
func parseTwips(s string) float64 {
	val, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return val / 20
}

// ResolvedRun contains resolved properties for a text run.
type ResolvedRun struct {
	Text     string
	FontName string
	FontSize float64
}

// ResolveRun resolves run properties. The paragraph style is applied
// first, then the run's character style, then direct formatting.
func (sr *StyleResolver) ResolveRun(paragraphStyle string, runProps runPropsXML) *ResolvedRun {
	baseStyle := sr.Resolve(paragraphStyle)

	resolved := &ResolvedRun{
		FontName: baseStyle.FontName,
		FontSize: baseStyle.FontSize,
	}

	if charStyle := runProps.Style.Val; charStyle != "" {
		if def, ok := sr.styles[charStyle]; ok {
			for _, sid := range sr.buildInheritanceChain(def.StyleID) {
				d, ok := sr.styles[sid]
				if !ok {
					continue
				}
				if name := d.RPr.Font.name(); name != "" {
					resolved.FontName = name
				}
				if size := parseHalfPoints(d.RPr.FontSize.Val); size > 0 {
					resolved.FontSize = size
				}
			}
		}
	}

	// Apply direct run formatting (overrides style)
	if name := runProps.Font.name(); name != "" {
		resolved.FontName = name
	}
	if runProps.FontSize.Val != "" {
		if size := parseHalfPoints(runProps.FontSize.Val); size > 0 {
			resolved.FontSize = size
		}
	}

	return resolved
}
