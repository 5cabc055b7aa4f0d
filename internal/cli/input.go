// Package cli runs the interactive title finder, for trying out dictionaries
// and debugging matches by hand.
package cli

import (
	"bufio"
	"errors"
	"io"
	"os"
	"strings"
	"time"

	"github.com/bastiangx/titleserve/internal/utils"
	"github.com/bastiangx/titleserve/pkg/finder"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

var (
	titleStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("75"))
	spanStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("75"))
	dimStyle   = lipgloss.NewStyle().Faint(true)
)

const helpText = `commands:
  :raw            toggle longest match resolution
  :lookup PREFIX  complete a partial title
  :info           show finder statistics
  :reload         rebuild the finder
  :help           show this help
  :q              quit
anything else is scanned for job titles`

// InputHandler reads lines and prints the titles found in them
type InputHandler struct {
	runtime      *finder.Runtime
	raw          bool
	showOffsets  bool
	lookupLimit  int
	requestCount int
	out          *log.Logger
}

// NewInputHandler creates a handler. resolveLongest sets the initial mode,
// which :raw toggles.
func NewInputHandler(rt *finder.Runtime, resolveLongest, showOffsets bool, lookupLimit int) *InputHandler {
	return &InputHandler{
		runtime:     rt,
		raw:         !resolveLongest,
		showOffsets: showOffsets,
		lookupLimit: lookupLimit,
	}
}

// Start runs the loop on stdin until EOF or :q.
func (h *InputHandler) Start() error {
	return h.Run(os.Stdin, os.Stderr)
}

// Run reads commands and text from r and prints results to w.
func (h *InputHandler) Run(r io.Reader, w io.Writer) error {
	h.out = log.NewWithOptions(w, log.Options{ReportTimestamp: false})
	h.out.Print("TitleServe CLI")
	h.out.Print("type a sentence and press Enter to find job titles (:help for commands):")

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64<<10), 1<<20)
	for {
		h.out.Print("> ")
		if !scanner.Scan() {
			return scanner.Err()
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		if err := h.handleInput(line); err != nil {
			if errors.Is(err, errQuit) {
				return nil
			}
			return err
		}
	}
}

var errQuit = errors.New("quit")

// handleInput runs a command or scans line for titles
func (h *InputHandler) handleInput(line string) error {
	h.requestCount++
	if !strings.HasPrefix(line, ":") {
		h.find(line)
		return nil
	}

	cmd, arg, _ := strings.Cut(line[1:], " ")
	switch strings.ToLower(cmd) {
	case "q", "quit", "exit":
		return errQuit
	case "raw":
		h.raw = !h.raw
		h.out.Printf("raw mode: %v", h.raw)
	case "lookup", "l":
		h.lookup(strings.TrimSpace(arg))
	case "info":
		h.info()
	case "reload":
		if err := h.runtime.Reload(); err != nil {
			h.out.Errorf("Reload failed: %v", err)
			return nil
		}
		h.out.Printf("reloaded: %s patterns", utils.FormatWithCommas(h.runtime.Info().Patterns))
	case "help", "h", "?":
		h.out.Print(helpText)
	default:
		h.out.Errorf("Unknown command: %s (:help lists commands)", cmd)
	}
	return nil
}

func (h *InputHandler) find(text string) {
	start := time.Now()
	matches, err := h.runtime.Current().FindAll(text, !h.raw)
	if err != nil {
		h.out.Errorf("Cannot scan input: %v", err)
		return
	}
	log.Debugf("Took [ %v ] for %d bytes", time.Since(start), len(text))

	if len(matches) == 0 {
		h.out.Warn("No job titles found")
		return
	}

	spans := make([]utils.Span, len(matches))
	for i, m := range matches {
		spans[i] = utils.Span{Start: m.Start, End: m.End}
	}
	h.out.Printf("Found %d titles:", len(matches))
	h.out.Print(utils.Highlight(text, spans, func(s string) string { return spanStyle.Render(s) }))
	for i, m := range matches {
		if h.showOffsets {
			h.out.Printf("%2d. %-40s %s", i+1, titleStyle.Render(m.Text), dimStyle.Render(offsets(m)))
		} else {
			h.out.Printf("%2d. %s", i+1, titleStyle.Render(m.Text))
		}
	}
}

func offsets(m finder.Match) string {
	var sb strings.Builder
	sb.WriteByte('[')
	sb.WriteString(utils.FormatWithCommas(m.Start))
	sb.WriteByte(':')
	sb.WriteString(utils.FormatWithCommas(m.End))
	sb.WriteByte(']')
	return sb.String()
}

func (h *InputHandler) lookup(prefix string) {
	if prefix == "" {
		h.out.Error("Usage: :lookup PREFIX")
		return
	}
	suggestions := h.runtime.Current().Lookup(prefix, h.lookupLimit)
	if len(suggestions) == 0 {
		h.out.Warnf("No titles start with '%s'", prefix)
		return
	}
	h.out.Printf("Found %d titles for prefix '%s':", len(suggestions), prefix)
	for _, s := range suggestions {
		h.out.Printf("%2d. %s", s.Rank, titleStyle.Render(s.Title))
	}
}

func (h *InputHandler) info() {
	info := h.runtime.Info()
	h.out.Print("finder",
		"patterns", utils.FormatWithCommas(info.Patterns),
		"states", utils.FormatWithCommas(info.States),
		"backend", info.Backend,
		"ignoreCase", info.IgnoreCase,
		"builds", info.Builds,
		"requests", h.requestCount,
	)
}
