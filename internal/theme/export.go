package theme

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kat/huegraph/internal/graph"
)

// optionMarker prefixes the declaration comment that carries adjustment
// options through the text format.
const optionMarker = "huegraph:"

// DefaultSelector is the rule selector used when the caller does not
// care where the exported block applies.
const DefaultSelector = ":root"

// Declaration is one parsed line of an exported block: the variable
// name, its raw value text, and the adjustment options recovered from
// the trailing comment.
type Declaration struct {
	Name    string
	Value   string
	Options graph.Options
}

// Export renders the edited variables as a CSS rule block. Only
// variables whose resolved color moved away from the theme baseline are
// listed; non-neutral adjustment options ride along in a trailing
// comment so a later import reconstructs them.
func Export(g *graph.Graph, selector string) string {
	if selector == "" {
		selector = DefaultSelector
	}
	var b strings.Builder
	b.WriteString(selector)
	b.WriteString(" {\n")
	for _, name := range g.Names() {
		v, _ := g.Get(name)
		if !v.ShouldExport() {
			continue
		}
		b.WriteString("\t")
		b.WriteString(name)
		b.WriteString(": ")
		b.WriteString(v.CSSValue())
		b.WriteString(";")
		if comment := formatOptions(v.Options()); comment != "" {
			b.WriteString(" /* ")
			b.WriteString(optionMarker)
			b.WriteString(" ")
			b.WriteString(comment)
			b.WriteString(" */")
		}
		b.WriteString("\n")
	}
	b.WriteString("}\n")
	return b.String()
}

// Import parses an exported block and applies every declaration to the
// graph as user edits, options included. The graph propagates each one
// as if it had been typed in.
func Import(g *graph.Graph, text string) error {
	_, decls, err := Parse(text)
	if err != nil {
		return err
	}
	for _, d := range decls {
		if err := g.SetValue(d.Name, d.Value, false); err != nil {
			return fmt.Errorf("import %s: %w", d.Name, err)
		}
		if !d.Options.Neutral() {
			if err := g.SetOptions(d.Name, d.Options); err != nil {
				return fmt.Errorf("import %s: %w", d.Name, err)
			}
		}
	}
	return nil
}

// Rule is one parsed selector block of a stylesheet.
type Rule struct {
	Selector string
	Decls    []Declaration
}

// Parse splits an exported rule block into its selector and
// declarations without touching any graph. Unknown option keys are
// ignored so newer exports still load.
func Parse(text string) (string, []Declaration, error) {
	rules, err := ParseAll(text)
	if err != nil {
		return "", nil, err
	}
	return rules[0].Selector, rules[0].Decls, nil
}

// ParseAll reads every rule block in a stylesheet. Custom property
// values never contain braces, so blocks are scanned flat.
func ParseAll(text string) ([]Rule, error) {
	var rules []Rule
	for {
		open := strings.Index(text, "{")
		if open < 0 {
			break
		}
		end := strings.Index(text[open:], "}")
		if end < 0 {
			return nil, fmt.Errorf("unterminated rule block")
		}
		decls, err := parseBody(text[open+1 : open+end])
		if err != nil {
			return nil, err
		}
		rules = append(rules, Rule{
			Selector: strings.TrimSpace(text[:open]),
			Decls:    decls,
		})
		text = text[open+end+1:]
	}
	if len(rules) == 0 {
		return nil, fmt.Errorf("no rule block found")
	}
	return rules, nil
}

func parseBody(body string) ([]Declaration, error) {
	var decls []Declaration
	for _, line := range strings.Split(body, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		line, comment := splitComment(line)
		line = strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(line), ";"))
		if line == "" {
			continue
		}
		colon := strings.Index(line, ":")
		if colon < 0 {
			return nil, fmt.Errorf("malformed declaration %q", line)
		}
		d := Declaration{
			Name:    strings.TrimSpace(line[:colon]),
			Value:   strings.TrimSpace(line[colon+1:]),
			Options: parseOptions(comment),
		}
		if !strings.HasPrefix(d.Name, "--") {
			return nil, fmt.Errorf("declaration %q is not a custom property", d.Name)
		}
		decls = append(decls, d)
	}
	return decls, nil
}

// splitComment peels a trailing comment off a declaration line,
// returning the line without it and the comment's inner text.
func splitComment(line string) (string, string) {
	start := strings.Index(line, "/*")
	if start < 0 {
		return line, ""
	}
	end := strings.Index(line[start:], "*/")
	if end < 0 {
		return line[:start], strings.TrimSpace(line[start+2:])
	}
	comment := strings.TrimSpace(line[start+2 : start+end])
	return line[:start] + line[start+end+2:], comment
}

// formatOptions encodes the non-neutral option fields as space
// separated key:value pairs, or "" when everything is neutral.
func formatOptions(o graph.Options) string {
	var parts []string
	if o.SaveExplicitRGB {
		parts = append(parts, "explicit-rgb:true")
	}
	if o.Invert {
		parts = append(parts, "invert:true")
	}
	if o.HueRotate != 0 {
		parts = append(parts, "hue-rotate:"+formatFloat(o.HueRotate))
	}
	if o.SaturationFactor != 1 {
		parts = append(parts, "saturation:"+formatFloat(o.SaturationFactor))
	}
	if o.LightnessFactor != 1 {
		parts = append(parts, "lightness:"+formatFloat(o.LightnessFactor))
	}
	return strings.Join(parts, " ")
}

// parseOptions reads the key:value pairs back, starting from the
// neutral defaults so absent keys keep their meaning.
func parseOptions(comment string) graph.Options {
	opts := graph.DefaultOptions()
	comment = strings.TrimSpace(comment)
	if !strings.HasPrefix(comment, optionMarker) {
		return opts
	}
	for _, field := range strings.Fields(comment[len(optionMarker):]) {
		key, val := field, "true"
		if i := strings.Index(field, ":"); i >= 0 {
			key, val = field[:i], field[i+1:]
		}
		switch key {
		case "explicit-rgb":
			opts.SaveExplicitRGB = val == "true"
		case "invert":
			opts.Invert = val == "true"
		case "hue-rotate":
			if f, err := strconv.ParseFloat(val, 64); err == nil {
				opts.HueRotate = f
			}
		case "saturation":
			if f, err := strconv.ParseFloat(val, 64); err == nil {
				opts.SaturationFactor = f
			}
		case "lightness":
			if f, err := strconv.ParseFloat(val, 64); err == nil {
				opts.LightnessFactor = f
			}
		}
	}
	return opts
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
