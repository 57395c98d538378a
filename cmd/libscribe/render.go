package main

import (
	"fmt"
	"strings"
	"time"

	"libscribe-hq/libscribe/pkg/cli"
	"libscribe-hq/libscribe/pkg/iec/ast"
	iecerrors "libscribe-hq/libscribe/pkg/iec/errors"
)

// Text implements cli.Texter.
func (r *buildResult) Text(s *cli.Styles) string {
	var sb strings.Builder
	lib := r.Library

	fmt.Fprintf(&sb, "%s %s\n", s.Title.Render(lib.Name), lib.Version)
	if lib.Description != "" {
		fmt.Fprintf(&sb, "%s\n", s.Muted.Render(lib.Description))
	}
	writeStats(&sb, s, lib.Stats())
	if len(lib.Dependencies) > 0 {
		deps := make([]string, len(lib.Dependencies))
		for i, d := range lib.Dependencies {
			deps[i] = d.ObjectName
		}
		fmt.Fprintf(&sb, "  dependencies: %s\n", strings.Join(deps, ", "))
	}
	fmt.Fprintf(&sb, "  files: %d, build %s\n", len(r.Report.Files), r.Report.BuildID)

	if len(lib.Functions) > 0 {
		fmt.Fprintf(&sb, "\n%s\n", s.Heading.Render("Functions"))
		for _, f := range lib.Functions {
			fmt.Fprintf(&sb, "  %s(%s) : %s\n", s.Name.Render(f.Name), params(f.Inputs, f.InOuts), typeText(f.ReturnType))
		}
	}
	if len(lib.FunctionBlocks) > 0 {
		fmt.Fprintf(&sb, "\n%s\n", s.Heading.Render("Function blocks"))
		for _, fb := range lib.FunctionBlocks {
			fmt.Fprintf(&sb, "  %s(%s)", s.Name.Render(fb.Name), params(fb.Inputs, fb.InOuts))
			if len(fb.Outputs) > 0 {
				fmt.Fprintf(&sb, " => %s", params(fb.Outputs, nil))
			}
			sb.WriteString("\n")
		}
	}
	if len(lib.Structures) > 0 {
		fmt.Fprintf(&sb, "\n%s\n", s.Heading.Render("Structures"))
		for _, st := range lib.Structures {
			fmt.Fprintf(&sb, "  %s { %s }\n", s.Name.Render(st.Name), params(st.Members, nil))
		}
	}
	if len(lib.Enumerations) > 0 {
		fmt.Fprintf(&sb, "\n%s\n", s.Heading.Render("Enumerations"))
		for _, e := range lib.Enumerations {
			names := make([]string, len(e.Literals))
			for i, l := range e.Literals {
				names[i] = l.Name
				if l.Value != "" {
					names[i] += " := " + l.Value
				}
			}
			fmt.Fprintf(&sb, "  %s ( %s )\n", s.Name.Render(e.Name), strings.Join(names, ", "))
		}
	}
	if len(lib.Constants) > 0 {
		fmt.Fprintf(&sb, "\n%s\n", s.Heading.Render("Constants"))
		for _, c := range lib.Constants {
			fmt.Fprintf(&sb, "  %s : %s", s.Name.Render(c.Name), typeText(c.Type))
			if c.Default != "" {
				fmt.Fprintf(&sb, " := %s", c.Default)
			}
			sb.WriteString("\n")
		}
	}

	writeFindings(&sb, s, r.Findings)
	return sb.String()
}

func writeStats(sb *strings.Builder, s *cli.Styles, st ast.Stats) {
	fmt.Fprintf(sb, "  %s %d functions, %d function blocks, %d structures, %d enumerations, %d constants\n",
		s.Muted.Render("declarations:"),
		st.Functions, st.FunctionBlocks, st.Structures, st.Enumerations, st.Constants)
}

func params(groups ...[]*ast.Variable) string {
	var parts []string
	for _, vars := range groups {
		for _, v := range vars {
			parts = append(parts, fmt.Sprintf("%s : %s", v.Name, typeText(v.Type)))
		}
	}
	return strings.Join(parts, "; ")
}

func typeText(t ast.Type) string {
	if t == nil {
		return "?"
	}
	return t.String()
}

func writeFindings(sb *strings.Builder, s *cli.Styles, findings []*iecerrors.Error) {
	if len(findings) == 0 {
		return
	}
	fmt.Fprintf(sb, "\n%s\n", s.Heading.Render("Findings"))
	for _, f := range findings {
		fmt.Fprintf(sb, "  %s [%s] %s", s.Severity(string(f.Severity)), f.Type, f.Message)
		if f.Location.IsValid() {
			fmt.Fprintf(sb, " %s", s.Muted.Render("("+f.Location.String()+")"))
		}
		sb.WriteString("\n")
		if f.Suggestion != "" {
			fmt.Fprintf(sb, "    %s\n", s.Muted.Render("suggestion: "+f.Suggestion))
		}
	}
}

// Text implements cli.Texter.
func (r *lintReport) Text(s *cli.Styles) string {
	var sb strings.Builder
	for _, res := range r.Results {
		if res.Errors == 0 && res.Warnings == 0 {
			fmt.Fprintf(&sb, "%s %s\n", s.OK.Render("✓"), res.Library)
			continue
		}
		mark := s.Warning.Render("⚠")
		if res.Errors > 0 {
			mark = s.Error.Render("✗")
		}
		fmt.Fprintf(&sb, "%s %s: %d error(s), %d warning(s)\n", mark, res.Library, res.Errors, res.Warnings)
		var inner strings.Builder
		writeFindings(&inner, s, res.Findings)
		sb.WriteString(strings.TrimPrefix(inner.String(), "\n"))
	}

	fmt.Fprintf(&sb, "\nSummary:\n  %d librar%s, %d error(s), %d warning(s)\n",
		len(r.Results), plural(len(r.Results), "y", "ies"), r.Errors, r.Warnings)
	if r.Strict && r.Warnings > 0 {
		sb.WriteString("  Strict mode enabled: treating warnings as errors\n")
	}
	return sb.String()
}

// Text implements cli.Texter.
func (r *searchResult) Text(s *cli.Styles) string {
	var sb strings.Builder
	for _, lib := range r.Libraries {
		fmt.Fprintf(&sb, "%s %s %s\n", s.Name.Render(lib.Name), lib.Version, s.Muted.Render(lib.Root))
		writeStats(&sb, s, lib.Stats)
	}
	for _, sym := range r.Symbols {
		fmt.Fprintf(&sb, "%-14s %s.%s", sym.Kind, sym.Library, s.Name.Render(sym.Name))
		if sym.Type != "" {
			fmt.Fprintf(&sb, " : %s", sym.Type)
		}
		if sym.Description != "" {
			fmt.Fprintf(&sb, "  %s", s.Muted.Render(sym.Description))
		}
		sb.WriteString("\n")
	}
	if len(r.Libraries) == 0 && len(r.Symbols) == 0 {
		sb.WriteString(s.Muted.Render("no matches"))
	}
	return sb.String()
}

// Text implements cli.Texter.
func (r *fetchResult) Text(s *cli.Styles) string {
	var sb strings.Builder
	if r.Commit != nil {
		fmt.Fprintf(&sb, "%s %s %s\n", s.Title.Render(shortSHA(r.Commit.SHA)), r.Commit.Branch, r.Commit.Message)
	}
	fmt.Fprintf(&sb, "  checked out in %s\n", r.LocalPath)
	if r.Pull != nil && r.Pull.HadChanges {
		fmt.Fprintf(&sb, "  %d changed file(s) since %s\n", len(r.Pull.ChangedFiles), shortSHA(r.Pull.FromSHA))
	}
	fmt.Fprintf(&sb, "  %d successful, %d failed pull(s), last took %s\n",
		r.Metrics.SuccessfulPulls, r.Metrics.FailedPulls, r.Metrics.PullDuration.Round(time.Millisecond))
	if len(r.History) > 0 {
		fmt.Fprintf(&sb, "  history:\n")
		for _, c := range r.History {
			fmt.Fprintf(&sb, "    %s %s %s\n", shortSHA(c.SHA), c.Timestamp.Format("2006-01-02"), firstLine(c.Message))
		}
	}
	fmt.Fprintf(&sb, "  %d library folder(s)\n", len(r.Libraries))
	for _, dir := range r.Libraries {
		fmt.Fprintf(&sb, "    %s\n", dir)
	}
	return sb.String()
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}

func shortSHA(sha string) string {
	if len(sha) > 8 {
		return sha[:8]
	}
	return sha
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
