// Package cli is the terminal board workspace: a readline REPL that feeds
// toolbar, pointer and dialog commands into the board session.
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/DanBrus/IB-frontend/application/ports"
	"github.com/DanBrus/IB-frontend/application/services"
	"github.com/DanBrus/IB-frontend/domain/layout"
	"github.com/DanBrus/IB-frontend/pkg/errors"
	"github.com/chzyer/readline"
	"go.uber.org/zap"
)

// ErrExit is returned by Run when the user asks to leave
var ErrExit = fmt.Errorf("exit requested: %w", io.EOF)

// LineReader is the part of *readline.Instance the workspace uses
type LineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
}

// CLI is the board workspace
type CLI struct {
	session   *services.BoardSession
	inspector *services.Inspector
	images    ports.ImageUploader
	layout    *layout.Layout
	rl        LineReader
	out       io.Writer
	logger    *zap.Logger

	mu     sync.Mutex
	sheets map[int]bool

	Prompt string
}

// NewCLI creates a workspace over an opened or unopened session
func NewCLI(
	session *services.BoardSession,
	inspector *services.Inspector,
	images ports.ImageUploader,
	l *layout.Layout,
	rl LineReader,
	out io.Writer,
	logger *zap.Logger,
) *CLI {
	return &CLI{
		session:   session,
		inspector: inspector,
		images:    images,
		layout:    l,
		rl:        rl,
		out:       out,
		logger:    logger,
		sheets:    make(map[int]bool),
		Prompt:    "board> ",
	}
}

// Run reads and executes one line. Command failures are printed and do not
// end the loop; only readline errors and ErrExit are returned.
func (c *CLI) Run(ctx context.Context) error {
	line, err := c.rl.Readline()
	if err != nil {
		return err
	}

	line = strings.TrimSpace(line)
	if len(line) == 0 {
		return nil
	}

	args := ParseArgs(line)
	if err := c.ExecuteCommand(ctx, args); err != nil {
		if err == ErrExit {
			return err
		}
		if errors.IsAppError(err) {
			c.logger.Debug("Command failed", zap.String("command", args[0]), zap.Error(err))
		} else {
			c.logger.Warn("Command failed unexpectedly", zap.String("command", args[0]), zap.Error(err))
		}
		fmt.Fprintf(c.out, "Error: %s\n", errors.UserMessage(err))
	}
	c.UpdatePrompt()
	return nil
}

// Loop runs until exit, EOF or ctx is done. Interrupts only print a hint.
func (c *CLI) Loop(ctx context.Context) error {
	c.UpdatePrompt()
	for {
		if ctx.Err() != nil {
			return ctx.Err()
		}
		err := c.Run(ctx)
		switch {
		case err == nil:
		case err == readline.ErrInterrupt:
			fmt.Fprintln(c.out, "Use 'exit' or 'quit' to exit the program.")
		case err == ErrExit || err == io.EOF:
			return nil
		default:
			return err
		}
	}
}

// UpdatePrompt shows the current version and unsaved marker in the prompt
func (c *CLI) UpdatePrompt() {
	version := c.session.CurrentVersion()
	if version == "" {
		version = "-"
	}
	if c.session.Dirty() {
		version += "*"
	}
	c.Prompt = fmt.Sprintf("board[%s]> ", version)
	c.rl.SetPrompt(c.Prompt)
}

// ParseArgs splits a line on spaces, keeping double-quoted runs together
func ParseArgs(input string) []string {
	var args []string
	var currentArg strings.Builder
	inQuotes := false
	quoted := false

	for _, char := range input {
		switch char {
		case '"':
			inQuotes = !inQuotes
			quoted = true
		case ' ', '\t':
			if !inQuotes {
				if currentArg.Len() > 0 || quoted {
					args = append(args, currentArg.String())
					currentArg.Reset()
					quoted = false
				}
			} else {
				currentArg.WriteRune(char)
			}
		default:
			currentArg.WriteRune(char)
		}
	}

	if currentArg.Len() > 0 || quoted {
		args = append(args, currentArg.String())
	}

	return args
}

// ExecuteCommand runs one parsed command
func (c *CLI) ExecuteCommand(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return errors.NewValidationError("no command provided")
	}

	switch strings.ToLower(args[0]) {
	case "show", "ls":
		return c.handleShow(args[1:])
	case "mode", "tool":
		return c.handleMode(args[1:])
	case "click":
		return c.handleClick(args[1:])
	case "press":
		return c.handlePress(args[1:])
	case "move":
		return c.handleMove(args[1:])
	case "release":
		return c.dispatchQuiet(releaseEvent)
	case "leave":
		return c.dispatchQuiet(leaveEvent)
	case "sheet":
		return c.handleSheet(args[1:])
	case "versions":
		return c.handleVersions(args[1:])
	case "switch":
		return c.handleSwitch(ctx, args[1:])
	case "create":
		return c.handleCreate(ctx, args[1:])
	case "delete":
		return c.handleDelete(ctx, args[1:])
	case "publish":
		return c.handlePublish(ctx, args[1:])
	case "diff":
		return c.handleDiff(args[1:])
	case "reload":
		return c.handleReload(ctx, args[1:])
	case "inspect":
		RenderInspector(c.out, c.inspector.View())
		return nil
	case "name":
		return c.handleName(args[1:])
	case "desc":
		return c.handleDescription(args[1:])
	case "type":
		return c.handleType(args[1:])
	case "image":
		return c.handleImage(args[1:])
	case "crop":
		return c.handleCrop(args[1:])
	case "zoom":
		return c.handleZoom(args[1:])
	case "apply":
		return c.handleApply(args[1:])
	case "save":
		return c.handleSave(ctx, args[1:])
	case "help":
		c.printHelp(args[1:])
		return nil
	case "exit", "quit":
		fmt.Fprintln(c.out, "Exiting...")
		return ErrExit
	default:
		return errors.NewValidationError(fmt.Sprintf("unknown command: %s", args[0]))
	}
}

// view captures the current session state for rendering
func (c *CLI) view() BoardView {
	c.mu.Lock()
	sheets := make(map[int]bool, len(c.sheets))
	for id, open := range c.sheets {
		sheets[id] = open
	}
	c.mu.Unlock()

	return BoardView{
		Version:    c.session.CurrentVersion(),
		Versions:   c.session.Versions(),
		Dirty:      c.session.Dirty(),
		Publishing: c.session.Publishing(),
		State:      c.session.State(),
		Graph:      c.session.Graph(),
		Sheets:     sheets,
		ImageURL:   c.images.ImageURL,
	}
}

func (c *CLI) printHelp(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(c.out, "Available commands:")
		for _, name := range helpOrder {
			fmt.Fprintf(c.out, "  %-40s %s\n", commandHelp[name].Syntax, commandHelp[name].Description)
		}
		fmt.Fprintln(c.out, "\nUse 'help <command>' for more information about a specific command.")
		return
	}
	if help, ok := commandHelp[args[0]]; ok {
		fmt.Fprintf(c.out, "Syntax: %s\nDescription: %s\n", help.Syntax, help.Description)
		return
	}
	fmt.Fprintf(c.out, "Unknown command: %s\n", args[0])
}

var helpOrder = []string{
	"show", "mode", "click", "press", "move", "release", "leave", "sheet",
	"versions", "switch", "create", "delete", "publish", "diff", "reload",
	"inspect", "name", "desc", "type", "image", "crop", "zoom", "apply", "save",
	"help", "exit",
}

// commandInfo documents one command
type commandInfo struct {
	Syntax      string
	Description string
}

// commandHelp contains syntax and help text for each command.
var commandHelp = map[string]commandInfo{
	"show":     {"show", "draw the board"},
	"mode":     {"mode <tool>", "toggle a toolbar tool (add-node, delete-node, edit-node, add-edge, delete-edge)"},
	"click":    {"click <node id>", "click a node card"},
	"press":    {"press <x> <y>", "press the pointer; on a card this starts a drag in idle mode, on empty canvas it is a canvas click"},
	"move":     {"move <x> <y>", "move the pointer"},
	"release":  {"release", "release the pointer"},
	"leave":    {"leave", "pointer leaves the canvas"},
	"sheet":    {"sheet <node id>", "toggle the description sheet of a card"},
	"versions": {"versions", "list versions"},
	"switch":   {"switch <version>", "load another version, discarding unsaved changes"},
	"create":   {"create <version> <name> <description>", "create a version and switch to it"},
	"delete":   {"delete <version>", "delete a version other than the active one"},
	"publish":  {"publish [-y]", "overwrite the current version on the server with the board"},
	"diff":     {"diff", "summarize unsaved changes"},
	"reload":   {"reload", "reload versions and the active board, discarding unsaved changes"},
	"inspect":  {"inspect", "show the node inspector"},
	"name":     {"name <text>", "edit the selected node's name"},
	"desc":     {"desc <text>", "edit the selected node's description"},
	"type":     {"type <person|artifact|location|note|->", "edit the selected node's type"},
	"image":    {"image <file>", "load a PNG or JPEG for the selected node"},
	"crop":     {"crop <x> <y> <size>", "place the square crop on the loaded image"},
	"zoom":     {"zoom <1..3>", "zoom into the crop"},
	"apply":    {"apply", "render the crop to a 512x512 PNG"},
	"save":     {"save", "upload the image if changed and save the node"},
	"help":     {"help [command]", "show help"},
	"exit":     {"exit", "leave the workspace"},
}
