// Copyright (C) 2025 Aleutian AI (jinterlante@aleutian.ai)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.
//
// NOTE: This work is subject to additional terms under AGPL v3 Section 7.
// See the NOTICE.txt file for details regarding AI system attribution.

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"maps"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/AleutianAI/treequery/services/lint/inspect"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

func validFormat(format string) bool {
	switch format {
	case formatText, formatJSON, formatYAML:
		return true
	}
	return false
}

// render writes run to w in the requested format.
func render(w io.Writer, format string, run *inspect.RunReport, color bool) error {
	switch format {
	case formatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(run)
	case formatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(run); err != nil {
			return err
		}
		return enc.Close()
	case formatText:
		_, err := io.WriteString(w, renderText(run, newStyles(color)))
		return err
	}
	return fmt.Errorf("unknown format %q", format)
}

type styles struct {
	file    lipgloss.Style
	section lipgloss.Style
	warn    lipgloss.Style
	dim     lipgloss.Style
}

func newStyles(color bool) styles {
	if !color {
		plain := lipgloss.NewStyle()
		return styles{file: plain, section: plain, warn: plain, dim: plain}
	}
	return styles{
		file:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39")),
		section: lipgloss.NewStyle().Bold(true),
		warn:    lipgloss.NewStyle().Foreground(lipgloss.Color("214")),
		dim:     lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
	}
}

func renderText(run *inspect.RunReport, st styles) string {
	var sb strings.Builder

	for _, f := range run.Files {
		sb.WriteString(st.file.Render(f.Path))
		sb.WriteString(st.dim.Render(fmt.Sprintf("  (%d nodes)", f.NodeCount)))
		sb.WriteString("\n")

		for _, e := range f.SyntaxErrors {
			sb.WriteString("  " + st.warn.Render(e) + "\n")
		}

		if len(f.Calls) > 0 {
			sb.WriteString("  " + st.section.Render("calls") + "\n")
			for _, c := range f.Calls {
				fmt.Fprintf(&sb, "    %d: %s", c.Line, strings.Join(c.Callee, "."))
				if len(c.Args) > 0 {
					fmt.Fprintf(&sb, " %v", c.Args)
				}
				if c.InAssignmentLeft {
					sb.WriteString(st.dim.Render(" (assignment target)"))
				}
				sb.WriteString("\n")
				for _, path := range slices.Sorted(maps.Keys(c.Properties)) {
					fmt.Fprintf(&sb, "      %s = %v\n", path, c.Properties[path])
				}
			}
		}

		if len(f.Assignments) > 0 {
			sb.WriteString("  " + st.section.Render("assignments") + "\n")
			for _, a := range f.Assignments {
				fmt.Fprintf(&sb, "    %d: %s %s\n", a.Line, a.Target, a.Operator)
			}
		}

		if len(f.Bindings) > 0 {
			sb.WriteString("  " + st.section.Render("bindings") + "\n")
			for _, b := range f.Bindings {
				fmt.Fprintf(&sb, "    %d: %s -> %s\n", b.Line, b.Object, strings.Join(b.Names, ", "))
			}
		}

		if len(f.Methods) > 0 {
			sb.WriteString("  " + st.section.Render("methods") + "\n")
			for _, m := range f.Methods {
				name := m.Name
				if m.Class != "" {
					name = m.Class + "." + m.Name
				}
				fmt.Fprintf(&sb, "    %d: %s (%d lines)", m.Line, name, m.Size)
				if m.Empty {
					sb.WriteString(st.warn.Render(" empty"))
				}
				sb.WriteString("\n")
			}
		}

		for _, v := range f.OrderViolations {
			sb.WriteString("  " + st.warn.Render(fmt.Sprintf(
				"%d: %s: %s (%s) should come after %s (%s)",
				v.Line, v.Container, v.Property, v.Kind, v.Before, v.BeforeKind,
			)) + "\n")
		}
	}

	for _, fail := range run.Failures {
		sb.WriteString(st.warn.Render(fmt.Sprintf("%s: %s", fail.Path, fail.Error)) + "\n")
	}
	return sb.String()
}
