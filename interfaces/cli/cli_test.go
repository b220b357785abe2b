package cli

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/DanBrus/IB-frontend/application/services"
	"github.com/DanBrus/IB-frontend/domain/core/aggregates"
	"github.com/DanBrus/IB-frontend/domain/core/entities"
	"github.com/DanBrus/IB-frontend/domain/core/valueobjects"
	"github.com/DanBrus/IB-frontend/domain/interaction"
	"github.com/DanBrus/IB-frontend/domain/layout"
	"github.com/DanBrus/IB-frontend/domain/versioning"
	"github.com/DanBrus/IB-frontend/infrastructure/filestore"
	"github.com/DanBrus/IB-frontend/infrastructure/graphstore"
	"github.com/DanBrus/IB-frontend/infrastructure/persistence/memory"
	"github.com/DanBrus/IB-frontend/infrastructure/remote"
	"github.com/DanBrus/IB-frontend/interfaces/http/rest"
	"github.com/DanBrus/IB-frontend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type scriptReader struct {
	lines   []string
	prompts []string
}

func (r *scriptReader) Readline() (string, error) {
	if len(r.lines) == 0 {
		return "", io.EOF
	}
	line := r.lines[0]
	r.lines = r.lines[1:]
	return line, nil
}

func (r *scriptReader) SetPrompt(prompt string) {
	r.prompts = append(r.prompts, prompt)
}

type workspace struct {
	cli    *CLI
	reader *scriptReader
	out    *bytes.Buffer
	boards *memory.BoardStore
}

func newWorkspace(t *testing.T, lines ...string) *workspace {
	t.Helper()
	logger := zap.NewNop()
	boards := memory.NewBoardStore(memory.DefaultVersion)
	router := rest.NewRouter(boards, memory.NewImageStore(), "", nil, errors.NewErrorHandler(logger, false), logger)

	graphServer := httptest.NewServer(router.GraphService())
	t.Cleanup(graphServer.Close)
	fileServer := httptest.NewServer(router.FileService())
	t.Cleanup(fileServer.Close)

	store := graphstore.NewClient(remote.NewClient("graph", graphServer.URL, nil, nil, nil, logger))
	images := filestore.NewClient(remote.NewClient("file", fileServer.URL, nil, nil, nil, logger))
	session := services.NewBoardSession(store, nil, logger)
	inspector := services.NewInspector(images, session, nil, nil, logger)
	session.AttachInspector(inspector)
	require.NoError(t, session.Open(context.Background()))

	reader := &scriptReader{lines: lines}
	out := &bytes.Buffer{}
	return &workspace{
		cli:    NewCLI(session, inspector, images, layout.New(nil), reader, out, logger),
		reader: reader,
		out:    out,
		boards: boards,
	}
}

func TestParseArgs(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"show", []string{"show"}},
		{"press 10  20", []string{"press", "10", "20"}},
		{`create v2 "Second draft" "with notes"`, []string{"create", "v2", "Second draft", "with notes"}},
		{`desc ""`, []string{"desc", ""}},
		{"name\tSuspect", []string{"name", "Suspect"}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseArgs(tt.input))
		})
	}
}

func TestCLI_BuildDragAndPublish(t *testing.T) {
	w := newWorkspace(t,
		"mode add-node",
		"press 10 20",
		"mode add-node",
		"press 300 20",
		"mode add-edge",
		"click 1",
		"click 2",
		"press 20 30",
		"move 50 60",
		"release",
		"publish",
		"y",
		"exit",
	)

	require.NoError(t, w.cli.Loop(context.Background()))

	output := w.out.String()
	assert.Contains(t, output, "Added node at (10, 20)")
	assert.Contains(t, output, "Added node at (300, 20)")
	assert.Contains(t, output, "First node #1 chosen")
	assert.Contains(t, output, "Connected #1 and #2")
	assert.Contains(t, output, "Dragging node #1")
	assert.Contains(t, output, "Moved node #1 to (40, 50)")
	assert.Contains(t, output, services.PublishWarning("v1"))
	assert.Contains(t, output, "Published v1")

	stored, err := w.boards.GetBoard(context.Background(), "v1")
	require.NoError(t, err)
	assert.Equal(t, 2, stored.NodeCount())
	assert.Equal(t, 1, stored.EdgeCount())
	node, ok := stored.Node(1)
	require.True(t, ok)
	assert.Equal(t, valueobjects.NewPosition(40, 50), node.Position())

	assert.Contains(t, w.reader.prompts, "board[v1*]> ")
	assert.Equal(t, "board[v1]> ", w.cli.Prompt)
}

func TestCLI_PublishDeclined(t *testing.T) {
	w := newWorkspace(t, "mode add-node", "press 0 0", "publish", "n")

	require.NoError(t, w.cli.Loop(context.Background()))

	assert.Contains(t, w.out.String(), "Not published.")
	stored, err := w.boards.GetBoard(context.Background(), "v1")
	require.NoError(t, err)
	assert.Zero(t, stored.NodeCount())
}

func TestCLI_VersionCommands(t *testing.T) {
	w := newWorkspace(t,
		`create v2 "Second" "A second board"`,
		"versions",
		"delete v1",
		"switch v1",
		"delete v2",
		"versions",
	)

	require.NoError(t, w.cli.Loop(context.Background()))

	output := w.out.String()
	assert.Contains(t, output, "Created and switched to v2")
	assert.Contains(t, output, "* v2")
	assert.Contains(t, output, "Error: cannot delete the active version")
	assert.Contains(t, output, "Switched to v1")
	assert.Contains(t, output, "Deleted v2")

	versions, _ := w.boards.ListVersions(context.Background())
	assert.Equal(t, []versioning.Version{memory.DefaultVersion}, versions)
}

func TestCLI_CreateWithThreeArguments(t *testing.T) {
	w := newWorkspace(t, "create v 2 x")

	require.NoError(t, w.cli.Loop(context.Background()))

	assert.Contains(t, w.out.String(), "Created and switched to v")
	assert.NotContains(t, w.out.String(), "Error:")
	assert.Equal(t, "v", w.cli.session.CurrentVersion())
}

func TestCLI_NonFiniteInputKeepsBoardPublishable(t *testing.T) {
	w := newWorkspace(t,
		"mode add-node",
		"press NaN 10",
		"press 10 10",
		"press 15 15",
		"move Inf 40",
		"release",
		"publish -y",
		"diff",
	)

	require.NoError(t, w.cli.Loop(context.Background()))

	output := w.out.String()
	assert.NotContains(t, output, "(NaN")
	assert.Contains(t, output, "Added node at (10, 10)")
	assert.Contains(t, output, "Published v1")
	assert.Contains(t, output, "No unsaved changes.")
	assert.False(t, w.cli.session.Dirty())

	stored, err := w.boards.GetBoard(context.Background(), "v1")
	require.NoError(t, err)
	require.Equal(t, 1, stored.NodeCount())
	assert.True(t, stored.Nodes()[0].Position().Equals(valueobjects.NewPosition(10, 10)))
}

func TestCLI_SupersededLoadIsSilent(t *testing.T) {
	w := newWorkspace(t)

	assert.NoError(t, w.cli.superseded(fmt.Errorf("switch: %w", services.ErrStaleLoad)))

	other := errors.NewValidationError("version is required")
	assert.Equal(t, other, w.cli.superseded(other))
}

func TestCLI_InspectorSave(t *testing.T) {
	w := newWorkspace(t,
		"mode add-node",
		"press 0 0",
		"name Suspect",
		"mode edit-node",
		"click 1",
		`name "Main suspect"`,
		"desc Seen at the docks",
		"type person",
		"save",
		"inspect",
		"sheet 1",
		"show",
	)

	require.NoError(t, w.cli.Loop(context.Background()))

	output := w.out.String()
	assert.Contains(t, output, "Error: no node selected")
	assert.Contains(t, output, "Selected node #1")
	assert.Contains(t, output, "Saved node #1")
	assert.Contains(t, output, "Seen at the docks")
	assert.Contains(t, output, "Main suspect")
	assert.Contains(t, output, "person")

	node, ok := w.cli.session.Node(1)
	require.True(t, ok)
	assert.Equal(t, "Main suspect", node.Name())
	assert.Equal(t, valueobjects.NodeTypePerson, node.Type())
}

func TestCLI_Errors(t *testing.T) {
	tests := []struct {
		line string
		want string
	}{
		{"bogus", "Error: unknown command: bogus"},
		{"mode sideways", `Error: unknown mode "sideways"`},
		{"click 9", "Error: node #9 not found"},
		{"press x 1", `Error: invalid number "x"`},
		{"switch", "Error: usage: switch <version>"},
		{"create v 2", "Error: usage: create <version> <name> <description>"},
		{"press NaN 10", `Error: invalid number "NaN"`},
		{"move 1 +Inf", `Error: invalid number "+Inf"`},
		{"zoom inf", `Error: invalid number "inf"`},
		{"zoom 5", "Error: zoom must be between 1 and 3"},
		{"apply", "Error: no image loaded"},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			w := newWorkspace(t, tt.line)
			require.NoError(t, w.cli.Loop(context.Background()))
			assert.Contains(t, w.out.String(), tt.want)
		})
	}
}

func TestRender(t *testing.T) {
	g := aggregates.NewGraph()
	g.AddNode(valueobjects.NewPosition(0, 0))
	g.AddNode(valueobjects.NewPosition(200, 0))
	g.AddEdge(1, 2)
	imageRef := "img-7"
	g.PatchNode(2, entities.NodePatch{Name: "Knife", ImageRef: &imageRef})
	selected := 1

	var out bytes.Buffer
	Render(&out, layout.New(nil), BoardView{
		Version:  "v1",
		Versions: []versioning.Version{{ID: "v1", Name: "Main"}},
		Dirty:    true,
		State:    interaction.State{Mode: interaction.ModeEditNode, Selected: &selected},
		Graph:    g,
		Sheets:   map[int]bool{1: true},
		ImageURL: func(id string) string { return "http://files/res/" + id },
	})

	text := out.String()
	lines := strings.Split(text, "\n")
	assert.Equal(t, "Version: v1 (Main) *unsaved", lines[0])
	assert.Contains(t, lines[1], "[edit-node]")
	assert.Contains(t, lines[1], "selected: #1")
	assert.Contains(t, text, "Node 1")
	assert.Contains(t, text, "Knife")
	assert.Contains(t, text, "(no description)")
	assert.Contains(t, text, "http://files/res/img-7")
	assert.Contains(t, text, "1 -- 2")
	assert.Contains(t, text, "(80, 7)")
	assert.Contains(t, text, "(280, 7)")
}

func TestRender_Empty(t *testing.T) {
	var out bytes.Buffer
	Render(&out, layout.New(nil), BoardView{Graph: aggregates.NewGraph(), State: interaction.NewState()})

	text := out.String()
	assert.Contains(t, text, "Version: (none)")
	assert.Contains(t, text, "No nodes.")
	assert.Contains(t, text, "No edges.")
}

func TestRenderHeader(t *testing.T) {
	tests := []struct {
		name string
		view BoardView
		want string
	}{
		{"clean", BoardView{Version: "v1"}, "Version: v1\n"},
		{"named dirty", BoardView{Version: "v1", Versions: []versioning.Version{{ID: "v1", Name: "Main"}}, Dirty: true}, "Version: v1 (Main) *unsaved\n"},
		{"publishing", BoardView{Version: "v2", Dirty: true, Publishing: true}, "Version: v2 *unsaved (publishing)\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var out bytes.Buffer
			RenderHeader(&out, tt.view)
			assert.Equal(t, tt.want, out.String())
		})
	}
}
