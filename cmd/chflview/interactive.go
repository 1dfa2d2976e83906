package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	chemfiles "github.com/chemfiles/chemfiles.go"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

// frameData is everything the browser shows for one frame, decoded up
// front so View never crosses the engine boundary.
type frameData struct {
	index     uint64
	step      uint64
	size      uint64
	bonds     uint64
	cellShape chemfiles.CellShape
	lengths   [3]float64
	volume    float64
	atoms     []atomRow
}

type atomRow struct {
	name     string
	atomType string
	position [3]float64
}

type browserModel struct {
	wasmFile string
	file     string
	format   string

	traj    *chemfiles.Trajectory
	nsteps  uint64
	current uint64
	frame   *frameData
	table   viewport.Model
	width   int
	height  int
	ready   bool
	err     error
}

type loadedMsg struct {
	err    error
	traj   *chemfiles.Trajectory
	nsteps uint64
}

type frameMsg struct {
	err   error
	frame *frameData
}

func newBrowserModel(wasmFile, file, format string) *browserModel {
	return &browserModel{wasmFile: wasmFile, file: file, format: format}
}

func (m *browserModel) Init() tea.Cmd {
	return m.load
}

func (m *browserModel) load() tea.Msg {
	traj, err := openTrajectory(context.Background(), m.wasmFile, m.file, m.format)
	if err != nil {
		return loadedMsg{err: err}
	}
	nsteps, err := traj.Nsteps()
	if err != nil {
		traj.Close()
		return loadedMsg{err: err}
	}
	return loadedMsg{traj: traj, nsteps: nsteps}
}

func (m *browserModel) readFrame(index uint64) tea.Cmd {
	return func() tea.Msg {
		frame, err := chemfiles.NewFrame()
		if err != nil {
			return frameMsg{err: err}
		}
		defer frame.Release()

		if err := m.traj.ReadStep(index, frame); err != nil {
			return frameMsg{err: err}
		}
		data, err := decodeFrame(frame, index)
		if err != nil {
			return frameMsg{err: err}
		}
		return frameMsg{frame: data}
	}
}

func decodeFrame(frame *chemfiles.Frame, index uint64) (*frameData, error) {
	data := &frameData{index: index}

	var err error
	if data.size, err = frame.Size(); err != nil {
		return nil, err
	}
	if data.step, err = frame.Step(); err != nil {
		return nil, err
	}

	cell, err := frame.Cell()
	if err != nil {
		return nil, err
	}
	defer cell.Release()
	if data.cellShape, err = cell.Shape(); err != nil {
		return nil, err
	}
	if data.lengths, err = cell.Lengths(); err != nil {
		return nil, err
	}
	if data.volume, err = cell.Volume(); err != nil {
		return nil, err
	}

	topology, err := frame.Topology()
	if err != nil {
		return nil, err
	}
	defer topology.Release()
	if data.bonds, err = topology.BondsCount(); err != nil {
		return nil, err
	}

	positions, err := frame.Positions()
	if err != nil {
		return nil, err
	}
	data.atoms = make([]atomRow, len(positions))
	for i := range positions {
		atom, err := frame.Atom(uint64(i))
		if err != nil {
			return nil, err
		}
		row := atomRow{position: positions[i]}
		if row.name, err = atom.Name(); err != nil {
			atom.Release()
			return nil, err
		}
		if row.atomType, err = atom.Type(); err != nil {
			atom.Release()
			return nil, err
		}
		if err := atom.Release(); err != nil {
			return nil, err
		}
		data.atoms[i] = row
	}
	return data, nil
}

func (m *browserModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c", "q":
			if m.traj != nil {
				m.traj.Close()
			}
			chemfiles.Teardown(context.Background())
			return m, tea.Quit

		case "right", "l", "n":
			if m.traj != nil && m.current+1 < m.nsteps {
				m.current++
				return m, m.readFrame(m.current)
			}

		case "left", "h", "p":
			if m.traj != nil && m.current > 0 {
				m.current--
				return m, m.readFrame(m.current)
			}

		case "g":
			if m.traj != nil && m.current != 0 {
				m.current = 0
				return m, m.readFrame(0)
			}

		case "G":
			if m.traj != nil && m.nsteps > 0 && m.current != m.nsteps-1 {
				m.current = m.nsteps - 1
				return m, m.readFrame(m.current)
			}
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		headerHeight := 7
		if !m.ready {
			m.table = viewport.New(msg.Width, msg.Height-headerHeight)
			m.ready = true
		} else {
			m.table.Width = msg.Width
			m.table.Height = msg.Height - headerHeight
		}
		if m.frame != nil {
			m.table.SetContent(renderAtoms(m.frame))
		}

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.traj = msg.traj
		m.nsteps = msg.nsteps
		return m, m.readFrame(0)

	case frameMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.frame = msg.frame
		if m.ready {
			m.table.SetContent(renderAtoms(m.frame))
			m.table.GotoTop()
		}
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m *browserModel) View() string {
	if m.err != nil {
		return errorStyle.Render(fmt.Sprintf("Error: %v", m.err)) +
			"\n\n" + helpStyle.Render("q quit")
	}
	if m.frame == nil || !m.ready {
		return "Loading trajectory..."
	}

	var b strings.Builder
	f := m.frame

	b.WriteString(titleStyle.Render("chflview"))
	b.WriteString(" ")
	b.WriteString(m.file)
	b.WriteString("\n\n")

	b.WriteString(labelStyle.Render("frame "))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%d/%d", f.index+1, m.nsteps)))
	b.WriteString(labelStyle.Render("  step "))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%d", f.step)))
	b.WriteString(labelStyle.Render("  atoms "))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%d", f.size)))
	b.WriteString(labelStyle.Render("  bonds "))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%d", f.bonds)))
	b.WriteString("\n")

	b.WriteString(labelStyle.Render("cell  "))
	b.WriteString(valueStyle.Render(fmt.Sprintf("%s [%.3f %.3f %.3f] volume %.3f",
		f.cellShape, f.lengths[0], f.lengths[1], f.lengths[2], f.volume)))
	b.WriteString("\n\n")

	b.WriteString(m.table.View())
	b.WriteString("\n")
	b.WriteString(helpStyle.Render("←/→ frame • ↑/↓ scroll • g/G first/last • q quit"))
	return b.String()
}

func renderAtoms(f *frameData) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%-6s %-6s %-6s %12s %12s %12s\n", "index", "name", "type", "x", "y", "z")
	for i, a := range f.atoms {
		fmt.Fprintf(&b, "%-6d %-6s %-6s %12.6f %12.6f %12.6f\n",
			i, a.name, a.atomType, a.position[0], a.position[1], a.position[2])
	}
	return b.String()
}

func runInteractive(wasmFile, file, format string) error {
	p := tea.NewProgram(newBrowserModel(wasmFile, file, format), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
