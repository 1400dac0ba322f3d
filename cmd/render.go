/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>

*/
package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/template"

	"github.com/jfmyers9/crates/internal/catalog"
	"github.com/jfmyers9/crates/pkg/discogs"
	"github.com/mattn/go-runewidth"
	"gopkg.in/yaml.v3"
)

// renderOptions controls how an entity is printed
type renderOptions struct {
	Format string // Go template over the raw payload, "" for the summary line
	Field  string // Print only this field
	Output string // text, json or yaml
	Width  int    // Pad or truncate text lines to this width, 0 disables
}

// renderEntity writes e to w according to opts
func renderEntity(w io.Writer, e *discogs.Entity, opts renderOptions) error {
	var value any = e
	if opts.Field != "" {
		v, err := e.Get(opts.Field)
		if err != nil {
			return err
		}
		value = v
	}

	switch opts.Output {
	case "", "text":
		return writeText(w, value, opts)
	case "json":
		return writeJSON(w, catalog.Plain(value))
	case "yaml":
		return writeYAML(w, catalog.Plain(value))
	default:
		return fmt.Errorf("unknown output %q (want text, json or yaml)", opts.Output)
	}
}

// writeText prints one line per entity, or the formatted scalar value
func writeText(w io.Writer, value any, opts renderOptions) error {
	var lines []string
	switch v := value.(type) {
	case *discogs.Entity:
		line, err := formatEntity(v, opts.Format)
		if err != nil {
			return err
		}
		lines = append(lines, line)
	case []*discogs.Entity:
		for _, child := range v {
			line, err := formatEntity(child, opts.Format)
			if err != nil {
				return err
			}
			lines = append(lines, line)
		}
	default:
		lines = append(lines, catalog.FormatValue(v))
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(w, padToWidth(line, opts.Width)); err != nil {
			return err
		}
	}
	return nil
}

// templateFuncs are available to --format templates
var templateFuncs = template.FuncMap{
	"value": catalog.FormatValue,
	"join": func(v any, sep string) string {
		items, ok := v.([]any)
		if !ok {
			return catalog.FormatValue(v)
		}
		strs := make([]string, len(items))
		for i, item := range items {
			strs[i] = catalog.FormatValue(item)
		}
		return strings.Join(strs, sep)
	},
}

// formatEntity applies the template to the entity payload.
// An empty template yields the entity summary.
func formatEntity(e *discogs.Entity, templateStr string) (string, error) {
	if templateStr == "" {
		return e.String(), nil
	}

	tmpl, err := template.New("output").
		Funcs(templateFuncs).
		Option("missingkey=error").
		Parse(templateStr)
	if err != nil {
		return "", fmt.Errorf("invalid template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, map[string]any(e.Payload())); err != nil {
		return "", fmt.Errorf("template execution failed: %w", err)
	}

	return buf.String(), nil
}

func writeJSON(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func writeYAML(w io.Writer, data any) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	defer func() { _ = encoder.Close() }()
	return encoder.Encode(data)
}

// padToWidth pads or truncates text to a fixed display width.
// Width is measured in display columns, accounting for Unicode characters.
// If width <= 0, returns text unchanged.
// If text is longer than width, truncates with "..." suffix.
func padToWidth(text string, width int) string {
	if width <= 0 {
		return text
	}

	currentWidth := runewidth.StringWidth(text)

	if currentWidth > width {
		ellipsis := "..."
		ellipsisWidth := runewidth.StringWidth(ellipsis)

		if width <= ellipsisWidth {
			return runewidth.Truncate(ellipsis, width, "")
		}

		result := runewidth.Truncate(text, width-ellipsisWidth, "") + ellipsis

		// Wide runes can leave the result a column short
		if resultWidth := runewidth.StringWidth(result); resultWidth < width {
			return result + strings.Repeat(" ", width-resultWidth)
		}
		return result
	} else if currentWidth < width {
		return text + strings.Repeat(" ", width-currentWidth)
	}

	return text
}
