package main

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"chatty/render"
)

// Indicator resolution in pixels; two pixel rows per terminal row.
const (
	tuiCols = render.Width / 2
	tuiRows = render.Height / 2
)

type frameMsg render.Frame

// InfoMsg updates the static lines under the indicator.
type InfoMsg struct {
	Engine string
	Device string
}

type tuiModel struct {
	frames <-chan render.Frame
	frame  render.Frame
	info   InfoMsg
	width  int
	height int
	styles map[[2]string]lipgloss.Style
}

func NewTUIProgram(frames <-chan render.Frame, info InfoMsg) *tea.Program {
	m := tuiModel{
		frames: frames,
		info:   info,
		styles: make(map[[2]string]lipgloss.Style),
	}
	return tea.NewProgram(m, tea.WithAltScreen())
}

// waitFrame blocks on the mailbox; the scheduler never waits on us.
func waitFrame(frames <-chan render.Frame) tea.Cmd {
	return func() tea.Msg {
		f, ok := <-frames
		if !ok {
			return tea.Quit()
		}
		return frameMsg(f)
	}
}

func (m tuiModel) Init() tea.Cmd {
	return waitFrame(m.frames)
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			return m, tea.Quit
		}

	case frameMsg:
		m.frame = render.Frame(msg)
		return m, waitFrame(m.frames)

	case InfoMsg:
		m.info = msg
	}
	return m, nil
}

func (m tuiModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(m.indicator())

	status := lipgloss.NewStyle().
		Foreground(lipgloss.Color(m.frame.Status.Color)).
		Bold(true).
		Render(m.frame.Status.Text)
	b.WriteString(status + "\n")

	if m.frame.Text != "" {
		wrap := max(m.width-2, 10)
		textStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("#ffffff"))
		b.WriteString("\n")
		for _, line := range wrapText(m.frame.Text, wrap) {
			b.WriteString(textStyle.Render(line) + "\n")
		}
	}

	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString("\n")
	if m.info.Engine != "" {
		b.WriteString(dim.Render("engine: "+m.info.Engine) + "\n")
	}
	if m.info.Device != "" {
		b.WriteString(dim.Render("mic: "+m.info.Device) + "\n")
	}

	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("239"))
	boldStyle := helpStyle.Bold(true)
	b.WriteString(boldStyle.Render("Ctrl") + helpStyle.Render(" record  ") +
		boldStyle.Render("Ctrl+M") + helpStyle.Render(" visual  ") +
		boldStyle.Render("Esc") + helpStyle.Render(" clear  ") +
		helpStyle.Render("chatty "+version))

	return lipgloss.NewStyle().Width(m.width).Height(m.height).Render(b.String())
}

// indicator renders the frame with half blocks, two pixels per cell.
func (m tuiModel) indicator() string {
	r := render.Rasterize(m.frame, tuiCols, tuiRows)
	var out strings.Builder
	for cy := 0; cy < tuiRows/2; cy++ {
		for cx := 0; cx < tuiCols; cx++ {
			top := r.At(cx, cy*2)
			bot := r.At(cx, cy*2+1)
			switch {
			case top == "" && bot == "":
				out.WriteString(" ")
			case top == bot:
				out.WriteString(m.style(top, "").Render("█"))
			case bot == "":
				out.WriteString(m.style(top, "").Render("▀"))
			case top == "":
				out.WriteString(m.style(bot, "").Render("▄"))
			default:
				out.WriteString(m.style(top, bot).Render("▀"))
			}
		}
		out.WriteString("\n")
	}
	return out.String()
}

// style caches one lipgloss style per fg/bg pair; the palette is tiny.
func (m tuiModel) style(fg, bg string) lipgloss.Style {
	key := [2]string{fg, bg}
	if s, ok := m.styles[key]; ok {
		return s
	}
	s := lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
	if bg != "" {
		s = s.Background(lipgloss.Color(bg))
	}
	m.styles[key] = s
	return s
}

func wrapText(text string, width int) []string {
	if len(text) == 0 {
		return []string{""}
	}
	if width <= 0 {
		width = 1
	}

	var lines []string
	for len(text) > width {
		splitAt := width
		for i := width; i > 0; i-- {
			if text[i] == ' ' {
				splitAt = i
				break
			}
		}
		lines = append(lines, text[:splitAt])
		text = strings.TrimLeft(text[splitAt:], " ")
	}
	if len(text) > 0 {
		lines = append(lines, text)
	}
	return lines
}
