// Package visualization renders the post workflow as a Graphviz diagram
package visualization

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/anggasct/post"
)

// DOTGenerator generates Graphviz DOT format representations of the workflow
type DOTGenerator struct {
	states      []string
	transitions []post.Transition
	options     DOTOptions
}

// DOTOptions configures the DOT generation
type DOTOptions struct {
	ShowSelfLoops   bool
	RankDirection   string // "TB", "LR", "BT", "RL"
	NodeShape       string
	TransitionStyle string
	SelfLoopStyle   string
}

// DefaultDOTOptions returns sensible default options for DOT generation
func DefaultDOTOptions() DOTOptions {
	return DOTOptions{
		ShowSelfLoops:   false,
		RankDirection:   "LR",
		NodeShape:       "box",
		TransitionStyle: "solid",
		SelfLoopStyle:   "dashed",
	}
}

// NewDOTGenerator creates a new DOT generator for the post workflow
func NewDOTGenerator(options ...DOTOptions) *DOTGenerator {
	opts := DefaultDOTOptions()
	if len(options) > 0 {
		opts = options[0]
	}

	return &DOTGenerator{
		states:      post.StateNames(),
		transitions: post.Workflow(),
		options:     opts,
	}
}

// Generate creates a DOT representation of the workflow
func (g *DOTGenerator) Generate() (string, error) {
	var dot strings.Builder

	dot.WriteString("digraph PostWorkflow {\n")
	dot.WriteString(fmt.Sprintf("  rankdir=%s;\n", g.options.RankDirection))
	dot.WriteString(fmt.Sprintf("  node [shape=%s];\n", g.options.NodeShape))
	dot.WriteString("  edge [fontsize=10];\n\n")

	g.generateStates(&dot)

	if err := g.generateTransitions(&dot); err != nil {
		return "", fmt.Errorf("failed to generate transitions: %w", err)
	}

	dot.WriteString("}\n")

	return dot.String(), nil
}

// generateStates generates DOT nodes for all states
func (g *DOTGenerator) generateStates(dot *strings.Builder) {
	dot.WriteString("  // States\n")

	for _, state := range g.states {
		shape := g.options.NodeShape
		fillColor := "lightblue"
		label := state

		switch {
		case state == post.InitialState():
			fillColor = "lightgreen"
			label += "\\n(initial)"
		case post.IsFinal(state):
			shape = "doublecircle"
			fillColor = "lightcoral"
		}

		dot.WriteString(fmt.Sprintf("  \"%s\" [shape=%s style=\"filled\" fillcolor=%s label=\"%s\"];\n",
			state, shape, fillColor, label))
	}

	dot.WriteString("\n")
}

// generateTransitions generates DOT edges for all transitions
func (g *DOTGenerator) generateTransitions(dot *strings.Builder) error {
	known := make(map[string]bool, len(g.states))
	for _, state := range g.states {
		known[state] = true
	}

	dot.WriteString("  // Transitions\n")

	for _, t := range g.transitions {
		if !known[t.SourceState] || !known[t.TargetState] {
			return fmt.Errorf("transition %s -> %s on %s references an unknown state",
				t.SourceState, t.TargetState, t.EventName)
		}

		style := g.options.TransitionStyle
		if t.IsSelfLoop() {
			if !g.options.ShowSelfLoops {
				continue
			}
			style = g.options.SelfLoopStyle
		}

		dot.WriteString(fmt.Sprintf("  \"%s\" -> \"%s\" [label=\"%s\" style=%s];\n",
			t.SourceState, t.TargetState, t.EventName, style))
	}

	return nil
}

// GenerateToFile writes the DOT representation to a file
func (g *DOTGenerator) GenerateToFile(filename string) error {
	content, err := g.Generate()
	if err != nil {
		return err
	}

	return os.WriteFile(filename, []byte(content), 0644)
}

// GenerateSVG renders the workflow to SVG by calling the Graphviz dot command
func (g *DOTGenerator) GenerateSVG() (string, error) {
	dotContent, err := g.Generate()
	if err != nil {
		return "", err
	}

	cmd := exec.Command("dot", "-Tsvg")
	cmd.Stdin = strings.NewReader(dotContent)

	var out bytes.Buffer
	cmd.Stdout = &out

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("failed to execute dot command: %w (make sure Graphviz is installed)", err)
	}

	return out.String(), nil
}
