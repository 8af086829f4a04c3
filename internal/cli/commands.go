package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/kat/huegraph/internal/colormath"
	"github.com/kat/huegraph/internal/cssfilter"
	"github.com/kat/huegraph/internal/graph"
	"github.com/kat/huegraph/internal/theme"
)

func (a *App) exportCommand() *cobra.Command {
	var (
		edits    []string
		selector string
		bake     bool
	)
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Print the changed variables as a CSS rule block",
		RunE: func(cmd *cobra.Command, args []string) error {
			g, _, name, err := a.loadGraph()
			if err != nil {
				return err
			}
			if err := applyEdits(g, edits); err != nil {
				return err
			}
			if bake {
				for _, varName := range g.Names() {
					v, _ := g.Get(varName)
					if !v.Indirect() {
						continue
					}
					opts := v.Options()
					opts.SaveExplicitRGB = true
					if err := g.SetOptions(varName, opts); err != nil {
						return err
					}
				}
			}
			g.Flush()

			if selector == "" {
				selector = a.cfg.Selector
			}
			block := theme.Export(g, selector)
			fmt.Fprint(a.out, block)
			a.logger.Info("export ready", "theme", name,
				"size", humanize.Bytes(uint64(len(block))))
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&edits, "set", nil, "apply name=value before exporting")
	cmd.Flags().StringVar(&selector, "selector", "", "selector for the exported block")
	cmd.Flags().BoolVar(&bake, "bake", false, "export computed colors for indirect variables")
	return cmd
}

func (a *App) setCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "set [--] name=value [name=value...]",
		Short: "Apply edits and print the resulting export block",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, _, _, err := a.loadGraph()
			if err != nil {
				return err
			}
			if err := applyEdits(g, args); err != nil {
				return err
			}
			g.Flush()

			for _, edit := range args {
				name := strings.TrimSpace(edit[:strings.Index(edit, "=")])
				v, _ := g.Get(name)
				if c, ok := v.Color(); ok {
					fmt.Fprintf(a.out, "%s%s %s\n", swatch(c), name, c.Hex())
				} else {
					fmt.Fprintf(a.out, "%s %s\n", name, dimStyle.Render("unresolved"))
				}
			}
			fmt.Fprint(a.out, theme.Export(g, a.cfg.Selector))
			return nil
		},
	}
}

func (a *App) checkCommand() *cobra.Command {
	var (
		requires []string
		fix      bool
	)
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Measure contrast requirements, optionally repairing failures",
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(requires) == 0 {
				return fmt.Errorf("no requirements given, use --require subject:target[:min]")
			}
			g, _, _, err := a.loadGraph()
			if err != nil {
				return err
			}

			bySubject := make(map[string][]*graph.ContrastLink)
			var order []string
			var links []*graph.ContrastLink
			for _, req := range requires {
				subject, target, min, err := parseRequirement(req, a.cfg.DefaultMinContrast)
				if err != nil {
					return err
				}
				link, err := g.AddContrastLink(subject, target, min)
				if err != nil {
					return err
				}
				if _, seen := bySubject[subject]; !seen {
					order = append(order, subject)
				}
				bySubject[subject] = append(bySubject[subject], link)
				links = append(links, link)
			}

			fmt.Fprintln(a.out, headingStyle.Render("contrast report"))
			failing := 0
			for _, link := range links {
				fmt.Fprintln(a.out, contrastLine(link))
				if link.Class() != graph.ContrastSufficient {
					failing++
				}
			}
			if failing == 0 {
				return nil
			}
			if !fix {
				return fmt.Errorf("%d of %d requirements failing", failing, len(links))
			}

			for _, subject := range order {
				if err := g.FixContrastWithLightness(subject, bySubject[subject]); err != nil {
					return fmt.Errorf("repair %s: %w", subject, err)
				}
			}
			g.Flush()

			fmt.Fprintln(a.out, headingStyle.Render("after repair"))
			for _, link := range links {
				fmt.Fprintln(a.out, contrastLine(link))
			}
			fmt.Fprint(a.out, theme.Export(g, a.cfg.Selector))
			return nil
		},
	}
	cmd.Flags().StringArrayVar(&requires, "require", nil, "contrast requirement subject:target[:min]")
	cmd.Flags().BoolVar(&fix, "fix", false, "repair failing subjects by adjusting lightness")
	return cmd
}

func (a *App) filterCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "filter COLOR",
		Short: "Synthesize a CSS filter chain that produces a color from black",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			target, err := colormath.ParseColor(args[0])
			if err != nil {
				return fmt.Errorf("cannot parse %q: %w", args[0], err)
			}
			res := cssfilter.Synthesize(target)
			fmt.Fprintf(a.out, "%s%s\n", swatch(target), target.Hex())
			fmt.Fprintf(a.out, "filter: %s;\n", res.Filter)
			fmt.Fprintln(a.out, dimStyle.Render(
				fmt.Sprintf("channel error %d", res.Error)))
			return nil
		},
	}
}

func (a *App) themesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "themes",
		Short: "List the rule blocks of a stylesheet",
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.filePath == "" {
				return fmt.Errorf("no stylesheet given, use --file")
			}
			data, err := os.ReadFile(a.filePath)
			if err != nil {
				return fmt.Errorf("failed to read stylesheet: %w", err)
			}
			rules, err := theme.ParseAll(string(data))
			if err != nil {
				return fmt.Errorf("failed to parse %s: %w", a.filePath, err)
			}
			fmt.Fprintln(a.out, headingStyle.Render(a.filePath))
			for _, r := range rules {
				fmt.Fprintf(a.out, "%s  %s\n", r.Selector,
					dimStyle.Render(fmt.Sprintf("%d variables", len(r.Decls))))
			}
			return nil
		},
	}
}

// parseRequirement splits a subject:target[:min] flag value.
func parseRequirement(req string, defaultMin float64) (string, string, float64, error) {
	parts := strings.Split(req, ":")
	if len(parts) < 2 || len(parts) > 3 {
		return "", "", 0, fmt.Errorf("requirement %q is not subject:target[:min]", req)
	}
	min := defaultMin
	if len(parts) == 3 {
		f, err := strconv.ParseFloat(parts[2], 64)
		if err != nil {
			return "", "", 0, fmt.Errorf("requirement %q has a bad minimum: %w", req, err)
		}
		min = f
	}
	return parts[0], parts[1], min, nil
}
