package cli

import (
	"context"
	"fmt"
	"math"
	"mime"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/DanBrus/IB-frontend/application/services"
	"github.com/DanBrus/IB-frontend/domain/core/valueobjects"
	"github.com/DanBrus/IB-frontend/domain/interaction"
	"github.com/DanBrus/IB-frontend/domain/versioning"
	"github.com/DanBrus/IB-frontend/pkg/errors"
	"go.uber.org/zap"
)

var (
	releaseEvent interaction.Event = interaction.PointerRelease{}
	leaveEvent   interaction.Event = interaction.PointerLeave{}
)

func usage(command string) error {
	return errors.NewValidationError("usage: " + commandHelp[command].Syntax)
}

func parseFloats(args []string, n int) ([]float64, error) {
	if len(args) != n {
		return nil, fmt.Errorf("expected %d numbers, got %d", n, len(args))
	}
	out := make([]float64, n)
	for i, a := range args {
		v, err := strconv.ParseFloat(a, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("invalid number %q", a)
		}
		out[i] = v
	}
	return out, nil
}

func parseNodeID(args []string) (int, error) {
	if len(args) != 1 {
		return 0, errors.NewValidationError("a node id is required")
	}
	id, err := strconv.Atoi(strings.TrimPrefix(args[0], "#"))
	if err != nil {
		return 0, errors.NewValidationError(fmt.Sprintf("invalid node id %q", args[0]))
	}
	return id, nil
}

// dispatch feeds ev to the session and reports what took effect
func (c *CLI) dispatch(ev interaction.Event) {
	for _, effect := range c.session.Dispatch(ev) {
		fmt.Fprintln(c.out, describeEffect(effect))
	}
}

// dispatchQuiet feeds ev to the session without echoing anything
func (c *CLI) dispatchQuiet(ev interaction.Event) error {
	c.session.Dispatch(ev)
	return nil
}

func describeEffect(effect interaction.Effect) string {
	switch e := effect.(type) {
	case interaction.AddNode:
		return fmt.Sprintf("Added node at (%g, %g)", e.X, e.Y)
	case interaction.DeleteNode:
		return fmt.Sprintf("Deleted node #%d", e.ID)
	case interaction.SelectNode:
		return fmt.Sprintf("Selected node #%d", e.ID)
	case interaction.AddEdge:
		return fmt.Sprintf("Connected #%d and #%d", e.A, e.B)
	case interaction.DeleteEdge:
		return fmt.Sprintf("Disconnected #%d and #%d", e.A, e.B)
	case interaction.MoveNode:
		return fmt.Sprintf("Moved node #%d to (%g, %g)", e.ID, e.X, e.Y)
	default:
		return effect.EffectType()
	}
}

func (c *CLI) handleShow(args []string) error {
	Render(c.out, c.layout, c.view())
	return nil
}

func (c *CLI) handleMode(args []string) error {
	if len(args) != 1 {
		return usage("mode")
	}
	mode, err := interaction.ParseMode(args[0])
	if err != nil {
		return errors.NewValidationError(err.Error())
	}
	c.session.Dispatch(interaction.ToggleMode{Mode: mode})
	RenderToolbar(c.out, c.session.State())
	return nil
}

func (c *CLI) handleClick(args []string) error {
	id, err := parseNodeID(args)
	if err != nil {
		return err
	}
	if _, ok := c.session.Node(id); !ok {
		return errors.NewNotFoundError(fmt.Sprintf("node #%d", id))
	}
	c.dispatch(interaction.NodeClick{NodeID: id})
	if pending := c.session.State().Pending; pending != nil {
		fmt.Fprintf(c.out, "First node #%d chosen, click the second node\n", *pending)
	}
	return nil
}

// handlePress hit-tests the pointer against the cards: a card press carries
// the card position so idle mode can start a drag.
func (c *CLI) handlePress(args []string) error {
	xy, err := parseFloats(args, 2)
	if err != nil {
		return errors.NewValidationError(err.Error())
	}
	x, y := xy[0], xy[1]

	graph := c.session.Graph()
	id, hit := c.layout.HitTest(graph, x, y)
	if !hit {
		c.dispatch(interaction.CanvasClick{X: x, Y: y})
		return nil
	}

	node, _ := graph.Node(id)
	c.dispatch(interaction.NodePress{
		NodeID:   id,
		NodeX:    node.Position().X(),
		NodeY:    node.Position().Y(),
		PointerX: x,
		PointerY: y,
	})
	if c.session.State().Dragging() {
		fmt.Fprintf(c.out, "Dragging node #%d\n", id)
	}
	return nil
}

func (c *CLI) handleMove(args []string) error {
	xy, err := parseFloats(args, 2)
	if err != nil {
		return errors.NewValidationError(err.Error())
	}
	c.dispatch(interaction.PointerMove{X: xy[0], Y: xy[1]})
	return nil
}

func (c *CLI) handleSheet(args []string) error {
	id, err := parseNodeID(args)
	if err != nil {
		return err
	}
	node, ok := c.session.Node(id)
	if !ok {
		return errors.NewNotFoundError(fmt.Sprintf("node #%d", id))
	}

	c.mu.Lock()
	c.sheets[id] = !c.sheets[id]
	open := c.sheets[id]
	c.mu.Unlock()

	if open {
		fmt.Fprintf(c.out, "#%d %s\n%s\n", id, node.Name(), orDash(node.Description()))
	}
	return nil
}

func (c *CLI) handleVersions(args []string) error {
	current := c.session.CurrentVersion()
	versions := c.session.Versions()
	if len(versions) == 0 {
		fmt.Fprintln(c.out, "No versions.")
		return nil
	}
	for _, v := range versions {
		marker := " "
		if v.ID == current {
			marker = "*"
		}
		fmt.Fprintf(c.out, "%s %-12s %-20s %s\n", marker, v.ID, v.Name, v.Description)
	}
	return nil
}

func (c *CLI) handleSwitch(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("switch")
	}
	if err := c.session.SwitchVersion(ctx, args[0]); err != nil {
		return c.superseded(err)
	}
	c.resetSheets()
	fmt.Fprintf(c.out, "Switched to %s\n", c.session.CurrentVersion())
	return nil
}

func (c *CLI) handleCreate(ctx context.Context, args []string) error {
	if len(args) != 3 {
		return usage("create")
	}
	input := versioning.NewVersion{Version: args[0], Name: args[1], Description: args[2]}
	if err := c.session.CreateVersion(ctx, input); err != nil {
		if services.IsStaleLoad(err) {
			fmt.Fprintf(c.out, "Created %s\n", input.Version)
		}
		return c.superseded(err)
	}
	c.resetSheets()
	fmt.Fprintf(c.out, "Created and switched to %s\n", c.session.CurrentVersion())
	return nil
}

func (c *CLI) handleDelete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return usage("delete")
	}
	before := c.session.CurrentVersion()
	if err := c.session.DeleteVersion(ctx, args[0]); err != nil {
		if services.IsStaleLoad(err) {
			fmt.Fprintf(c.out, "Deleted %s\n", args[0])
		}
		return c.superseded(err)
	}
	fmt.Fprintf(c.out, "Deleted %s\n", args[0])
	if after := c.session.CurrentVersion(); after != before {
		c.resetSheets()
		fmt.Fprintf(c.out, "Switched to %s\n", after)
	}
	return nil
}

func (c *CLI) handlePublish(ctx context.Context, args []string) error {
	confirm := c.confirm
	if len(args) == 1 && (args[0] == "-y" || args[0] == "--yes") {
		confirm = func(string) bool { return true }
	}

	published, err := c.session.Publish(ctx, confirm)
	if err != nil {
		return err
	}
	if !published {
		fmt.Fprintln(c.out, "Not published.")
		return nil
	}
	fmt.Fprintf(c.out, "Published %s\n", c.session.CurrentVersion())
	return nil
}

// confirm asks the publish question on the terminal
func (c *CLI) confirm(version string) bool {
	fmt.Fprintln(c.out, services.PublishWarning(version))
	c.rl.SetPrompt("[y/N] ")
	defer c.rl.SetPrompt(c.Prompt)

	answer, err := c.rl.Readline()
	if err != nil {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

func (c *CLI) handleDiff(args []string) error {
	diff := c.session.Diff()
	if diff.IsEmpty() {
		fmt.Fprintln(c.out, "No unsaved changes.")
		return nil
	}
	fmt.Fprintln(c.out, diff.Summary())
	return nil
}

func (c *CLI) handleReload(ctx context.Context, args []string) error {
	if err := c.session.Open(ctx); err != nil {
		return c.superseded(err)
	}
	c.resetSheets()
	fmt.Fprintf(c.out, "Loaded %s\n", orDash(c.session.CurrentVersion()))
	return nil
}

func (c *CLI) handleName(args []string) error {
	if len(args) == 0 {
		return usage("name")
	}
	return c.inspector.SetName(strings.Join(args, " "))
}

func (c *CLI) handleDescription(args []string) error {
	return c.inspector.SetDescription(strings.Join(args, " "))
}

func (c *CLI) handleType(args []string) error {
	if len(args) != 1 {
		return usage("type")
	}
	nodeType := valueobjects.ParseNodeType(args[0])
	if args[0] == "-" {
		nodeType = valueobjects.NodeTypeNone
	}
	if !nodeType.IsZero() && !nodeType.IsKnown() {
		c.logger.Debug("Unknown node type kept", zap.String("type", nodeType.String()))
	}
	return c.inspector.SetType(nodeType)
}

func (c *CLI) handleImage(args []string) error {
	if len(args) != 1 {
		return usage("image")
	}
	path := args[0]
	data, err := os.ReadFile(path)
	if err != nil {
		return errors.NewValidationError(fmt.Sprintf("cannot read %s", path)).WithCause(err)
	}
	contentType := mime.TypeByExtension(strings.ToLower(filepath.Ext(path)))
	if err := c.inspector.LoadImage(filepath.Base(path), contentType, data); err != nil {
		return err
	}
	RenderInspector(c.out, c.inspector.View())
	return nil
}

func (c *CLI) handleCrop(args []string) error {
	if len(args) != 3 {
		return usage("crop")
	}
	values := make([]int, 3)
	for i, a := range args {
		v, err := strconv.Atoi(a)
		if err != nil {
			return errors.NewValidationError(fmt.Sprintf("invalid number %q", a))
		}
		values[i] = v
	}
	return c.inspector.SetCrop(values[0], values[1], values[2])
}

func (c *CLI) handleZoom(args []string) error {
	z, err := parseFloats(args, 1)
	if err != nil {
		return errors.NewValidationError(err.Error())
	}
	return c.inspector.SetZoom(z[0])
}

func (c *CLI) handleApply(args []string) error {
	if err := c.inspector.ApplyCrop(); err != nil {
		return err
	}
	fmt.Fprintln(c.out, "Crop applied.")
	return nil
}

func (c *CLI) handleSave(ctx context.Context, args []string) error {
	if err := c.inspector.Save(ctx); err != nil {
		return err
	}
	view := c.inspector.View()
	fmt.Fprintf(c.out, "Saved node #%d\n", view.NodeID)
	return nil
}

// superseded swallows ErrStaleLoad: a newer load owns the board and has
// already reported itself
func (c *CLI) superseded(err error) error {
	if services.IsStaleLoad(err) {
		c.logger.Debug("Board load superseded", zap.Error(err))
		return nil
	}
	return err
}

func (c *CLI) resetSheets() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sheets = make(map[int]bool)
}
