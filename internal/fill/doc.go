// Package fill reflows property values and paragraphs to a target line
// width.
//
// Property values are split at literal `\n` escape markers into
// segments; each segment is greedy-wrapped independently to the width
// left over after the rendered record prefix, and the wrapped lines are
// rendered as one primary record followed by continuation records.
// Widths are measured in display columns (grapheme-aware), not bytes.
package fill
