// Package console prints generator progress and results to the terminal.
package console

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alecthomas/chroma/quick"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/termenv"

	"github.com/unkn0wn-root/pmgen/internal/postman"
)

type Printer struct {
	out    io.Writer
	quiet  bool
	color  bool
	title  lipgloss.Style
	ok     lipgloss.Style
	dim    lipgloss.Style
	warn   lipgloss.Style
	copyFn func(string) error
}

type Option func(*Printer)

func Quiet(q bool) Option {
	return func(p *Printer) {
		p.quiet = q
	}
}

// WithColorProfile forces a colour profile instead of detecting it from out.
func WithColorProfile(profile termenv.Profile) Option {
	return func(p *Printer) {
		p.color = profile != termenv.Ascii
		p.applyProfile(profile)
	}
}

func withClipboard(fn func(string) error) Option {
	return func(p *Printer) {
		p.copyFn = fn
	}
}

func New(out io.Writer, opts ...Option) *Printer {
	if out == nil {
		out = os.Stdout
	}
	p := &Printer{out: out, copyFn: clipboard.WriteAll}
	profile := termenv.NewOutput(out, termenv.WithColorCache(true)).EnvColorProfile()
	p.color = profile != termenv.Ascii
	p.applyProfile(profile)
	for _, opt := range opts {
		if opt != nil {
			opt(p)
		}
	}
	return p
}

func (p *Printer) applyProfile(profile termenv.Profile) {
	r := lipgloss.NewRenderer(p.out)
	r.SetColorProfile(profile)
	p.title = r.NewStyle().Bold(true)
	p.ok = r.NewStyle().Foreground(lipgloss.Color("10"))
	p.dim = r.NewStyle().Foreground(lipgloss.Color("8"))
	p.warn = r.NewStyle().Foreground(lipgloss.Color("11"))
}

// FolderAdded is the assembler progress callback.
func (p *Printer) FolderAdded(folder string, total int) {
	if p.quiet {
		return
	}
	fmt.Fprintf(p.out, "%s Created %s folder\n", p.ok.Render("✓"), folder)
	fmt.Fprintf(p.out, "  %s\n", p.dim.Render(fmt.Sprintf("Total items so far: %d", total)))
}

func (p *Printer) Infof(format string, args ...any) {
	if p.quiet {
		return
	}
	fmt.Fprintf(p.out, format+"\n", args...)
}

func (p *Printer) Warnf(format string, args ...any) {
	fmt.Fprintln(p.out, p.warn.Render(fmt.Sprintf(format, args...)))
}

// Summary prints one aligned row per folder with its request count.
func (p *Printer) Summary(c *postman.Collection) {
	if p.quiet || c == nil {
		return
	}
	width := 0
	for _, f := range c.Item {
		if w := runewidth.StringWidth(f.Name); w > width {
			width = w
		}
	}
	fmt.Fprintln(p.out, p.title.Render(c.Info.Name))
	total := 0
	for _, f := range c.Item {
		total += len(f.Item)
		fmt.Fprintf(p.out, "  %s  %3d\n", runewidth.FillRight(f.Name, width), len(f.Item))
	}
	fmt.Fprintf(p.out, "  %s  %3d\n", runewidth.FillRight("", width), total)
}

// Highlight writes JSON source, coloured when the output supports it.
func (p *Printer) Highlight(src []byte) error {
	if !p.color {
		_, err := p.out.Write(src)
		return err
	}
	return quick.Highlight(p.out, string(src), "json", "terminal256", "monokai")
}

func (p *Printer) Copy(src []byte) error {
	if p.copyFn == nil {
		return fmt.Errorf("clipboard unavailable")
	}
	return p.copyFn(string(src))
}

// Diff prints a unified diff, colouring added and removed lines.
func (p *Printer) Diff(diff string) {
	for _, line := range strings.SplitAfter(diff, "\n") {
		if line == "" {
			continue
		}
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			fmt.Fprint(p.out, p.title.Render(strings.TrimSuffix(line, "\n"))+"\n")
		case strings.HasPrefix(line, "+"):
			fmt.Fprint(p.out, p.ok.Render(strings.TrimSuffix(line, "\n"))+"\n")
		case strings.HasPrefix(line, "-"):
			fmt.Fprint(p.out, p.warn.Render(strings.TrimSuffix(line, "\n"))+"\n")
		default:
			fmt.Fprint(p.out, line)
		}
	}
}
