package services

import (
	"context"
	stderrors "errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/DanBrus/IB-frontend/application/ports"
	"github.com/DanBrus/IB-frontend/domain/core/aggregates"
	"github.com/DanBrus/IB-frontend/domain/core/entities"
	"github.com/DanBrus/IB-frontend/domain/core/valueobjects"
	"github.com/DanBrus/IB-frontend/domain/interaction"
	"github.com/DanBrus/IB-frontend/domain/versioning"
	"github.com/DanBrus/IB-frontend/pkg/errors"
	"github.com/DanBrus/IB-frontend/pkg/observability"
	"go.uber.org/zap"
)

// ErrStaleLoad is returned when a newer load or switch started while this
// one was in flight. Nothing from the stale load was committed.
var ErrStaleLoad = stderrors.New("board load superseded")

// IsStaleLoad reports whether err means the load was superseded
func IsStaleLoad(err error) bool {
	return stderrors.Is(err, ErrStaleLoad)
}

// ConfirmFunc is asked before a publish overwrites the given version
type ConfirmFunc func(version string) bool

// PublishWarning is the confirmation text shown before a publish
func PublishWarning(version string) string {
	return fmt.Sprintf("Publishing overwrites the data of version %q on the server. This cannot be undone. Continue?", version)
}

// BoardSession is the board screen: it owns the version list, the draft
// graph of the displayed version, the published snapshot and the
// interaction state. Network calls run outside the lock; results are
// committed only if the caller's context is still live and no newer load
// has started.
type BoardSession struct {
	store     ports.GraphStore
	inspector *Inspector
	metrics   *observability.Collector
	logger    *zap.Logger

	mu         sync.Mutex
	versions   []versioning.Version
	current    string
	draft      *aggregates.Graph
	snapshot   *versioning.Snapshot
	state      interaction.State
	generation uint64

	versionBusy atomic.Bool
	publishing  atomic.Bool
}

// NewBoardSession creates an empty session; call Open to load the board
func NewBoardSession(
	store ports.GraphStore,
	metrics *observability.Collector,
	logger *zap.Logger,
) *BoardSession {
	return &BoardSession{
		store:   store,
		metrics: metrics,
		logger:  logger,
		draft:   aggregates.NewGraph(),
		state:   interaction.NewState(),
	}
}

// AttachInspector binds the node inspector to this session's selection
func (s *BoardSession) AttachInspector(inspector *Inspector) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inspector = inspector
	s.syncInspectorLocked()
}

// Open loads the version list, the backend's active version and its graph.
// With no versions at all the board is empty and has no current version.
func (s *BoardSession) Open(ctx context.Context) error {
	gen := s.beginLoad()

	versions, err := s.store.ListVersions(ctx)
	if err != nil {
		return s.fetchError(ctx, "failed to load versions", err)
	}

	active, err := s.store.ActiveVersion(ctx)
	if err != nil {
		return s.fetchError(ctx, "failed to load active version", err)
	}

	target := versioning.PickVersion(versions, active)
	graph, err := s.fetchBoard(ctx, target)
	if err != nil {
		return err
	}

	return s.commit(ctx, gen, versions, target, graph)
}

// SwitchVersion replaces the draft with the stored graph of version.
// Unpublished edits are discarded. ErrStaleLoad means a later load won.
func (s *BoardSession) SwitchVersion(ctx context.Context, version string) error {
	if version == "" {
		return errors.NewValidationError("version is required")
	}

	gen := s.beginLoad()
	graph, err := s.fetchBoard(ctx, version)
	if err != nil {
		return err
	}

	return s.commit(ctx, gen, nil, version, graph)
}

// CreateVersion validates input locally, creates the version, refreshes the
// list and switches to the new version.
func (s *BoardSession) CreateVersion(ctx context.Context, input versioning.NewVersion) error {
	trimmed, err := input.Validate()
	if err != nil {
		return err
	}

	if !s.versionBusy.CompareAndSwap(false, true) {
		return errors.NewBusyError("version change")
	}
	defer s.versionBusy.Store(false)

	s.logger.Info("Creating version", zap.String("version", trimmed.Version))

	if err := s.store.CreateVersion(ctx, trimmed.ToVersion()); err != nil {
		return s.fetchError(ctx, "failed to create version", err)
	}

	gen := s.beginLoad()
	versions, err := s.store.ListVersions(ctx)
	if err != nil {
		return s.fetchError(ctx, "failed to load versions", err)
	}

	graph, err := s.fetchBoard(ctx, trimmed.Version)
	if err != nil {
		return err
	}

	return s.commit(ctx, gen, versions, trimmed.Version, graph)
}

// DeleteVersion deletes version unless the backend reports it active. If
// the displayed version disappears, the board falls back to the active
// version, then the first listed one, then an empty board.
func (s *BoardSession) DeleteVersion(ctx context.Context, version string) error {
	if version == "" {
		return errors.NewValidationError("version is required")
	}

	if !s.versionBusy.CompareAndSwap(false, true) {
		return errors.NewBusyError("version change")
	}
	defer s.versionBusy.Store(false)

	active, err := s.store.ActiveVersion(ctx)
	if err != nil {
		return s.fetchError(ctx, "failed to load active version", err)
	}
	if active == version {
		return errors.NewActiveVersionError(version)
	}

	s.logger.Info("Deleting version", zap.String("version", version))

	if err := s.store.DeleteVersion(ctx, version); err != nil {
		return s.fetchError(ctx, "failed to delete version", err)
	}

	gen := s.beginLoad()
	versions, err := s.store.ListVersions(ctx)
	if err != nil {
		return s.fetchError(ctx, "failed to load versions", err)
	}

	current := s.CurrentVersion()
	if current != "" && versioning.Contains(versions, current) {
		s.mu.Lock()
		defer s.mu.Unlock()
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if gen != s.generation {
			s.logger.Debug("Discarding stale version list", zap.String("deleted", version))
			return ErrStaleLoad
		}
		s.versions = versions
		return nil
	}

	target := versioning.PickVersion(versions, active)
	graph, err := s.fetchBoard(ctx, target)
	if err != nil {
		return err
	}

	return s.commit(ctx, gen, versions, target, graph)
}

// Publish overwrites the current version on the server with the draft.
// It returns false without error when the user declines or another
// publish is still running.
func (s *BoardSession) Publish(ctx context.Context, confirm ConfirmFunc) (bool, error) {
	s.mu.Lock()
	version := s.current
	graph := s.draft.Clone()
	s.mu.Unlock()

	if version == "" {
		return false, errors.NewValidationError("no version to publish to").WithCode(errors.CodeNoVersion)
	}

	if !s.publishing.CompareAndSwap(false, true) {
		s.logger.Debug("Publish ignored, another publish is in flight")
		return false, nil
	}
	defer s.publishing.Store(false)

	if confirm == nil || !confirm(version) {
		return false, nil
	}

	s.logger.Info("Publishing board",
		zap.String("version", version),
		zap.Int("nodes", graph.NodeCount()),
		zap.Int("edges", graph.EdgeCount()),
	)

	if err := s.store.PutBoard(ctx, version, graph); err != nil {
		return false, s.fetchError(ctx, "failed to publish board", err)
	}

	snapshot, err := versioning.NewSnapshot(version, graph)
	if err != nil {
		return true, errors.Wrap(err, "published, but the snapshot could not be taken")
	}

	s.mu.Lock()
	if s.current == version {
		s.snapshot = snapshot
	}
	s.mu.Unlock()

	s.logger.Info("Board published",
		zap.String("version", version),
		zap.String("checksum", snapshot.Checksum()),
		zap.Time("published_at", snapshot.TakenAt()),
	)
	s.metrics.CountPublish()
	return true, nil
}

// Dispatch feeds one board event through the interaction state machine and
// applies the resulting effects to the draft. It returns the effects that
// took effect: graph changes and selections.
func (s *BoardSession) Dispatch(ev interaction.Event) []interaction.Effect {
	s.mu.Lock()
	defer s.mu.Unlock()

	prevSelected := s.state.Selected
	next, effects := interaction.Transition(s.state, ev)
	s.state = next

	applied := make([]interaction.Effect, 0, len(effects))
	for _, effect := range effects {
		if s.applyLocked(effect) {
			applied = append(applied, effect)
			s.metrics.CountEffect(effect.EffectType())
		}
	}

	if !sameSelection(prevSelected, s.state.Selected) {
		s.syncInspectorLocked()
	}
	s.metrics.SetBoardSize(s.draft.NodeCount(), s.draft.EdgeCount())

	return applied
}

func (s *BoardSession) applyLocked(effect interaction.Effect) bool {
	switch e := effect.(type) {
	case interaction.AddNode:
		position := valueobjects.NewPosition(e.X, e.Y)
		if !position.IsFinite() {
			s.logger.Debug("Dropping node with non-finite position", zap.Stringer("position", position))
			return false
		}
		node := s.draft.AddNode(position)
		s.logger.Debug("Node added", zap.Int("nodeID", node.ID()))
		return true
	case interaction.DeleteNode:
		removed, ok := s.draft.RemoveNode(e.ID)
		if ok {
			s.logger.Debug("Node deleted", zap.Int("nodeID", e.ID), zap.Int("edgesRemoved", len(removed)))
		}
		return ok
	case interaction.SelectNode:
		_, ok := s.draft.Node(e.ID)
		return ok
	case interaction.AddEdge:
		_, ok := s.draft.AddEdge(e.A, e.B)
		return ok
	case interaction.DeleteEdge:
		_, ok := s.draft.RemoveEdgeBetween(e.A, e.B)
		return ok
	case interaction.MoveNode:
		position := valueobjects.NewPosition(e.X, e.Y)
		if !position.IsFinite() {
			return false
		}
		return s.draft.MoveNode(e.ID, position)
	}
	return false
}

// PatchNode applies an inspector save to the draft
func (s *BoardSession) PatchNode(id int, patch entities.NodePatch) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.draft.PatchNode(id, patch) {
		return errors.NewNotFoundError(fmt.Sprintf("node %d", id))
	}
	return nil
}

// Node returns a copy of one draft node
func (s *BoardSession) Node(id int) (*entities.Node, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	node, ok := s.draft.Node(id)
	if !ok {
		return nil, false
	}
	return node.Clone(), true
}

// Graph returns a copy of the draft
func (s *BoardSession) Graph() *aggregates.Graph {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft.Clone()
}

// State returns the interaction state
func (s *BoardSession) State() interaction.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state.Clone()
}

// Versions returns the last fetched version list
func (s *BoardSession) Versions() []versioning.Version {
	s.mu.Lock()
	defer s.mu.Unlock()
	versions := make([]versioning.Version, len(s.versions))
	copy(versions, s.versions)
	return versions
}

// CurrentVersion returns the displayed version, or "" for an empty board
func (s *BoardSession) CurrentVersion() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current
}

// Diff compares the draft with the published snapshot
func (s *BoardSession) Diff() versioning.GraphDiff {
	s.mu.Lock()
	defer s.mu.Unlock()
	return versioning.Diff(s.publishedLocked(), s.draft)
}

// Dirty reports whether the draft has unpublished changes
func (s *BoardSession) Dirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snapshot == nil {
		return s.draft.NodeCount() > 0 || s.draft.EdgeCount() > 0
	}
	return !s.snapshot.Matches(s.draft)
}

// Publishing reports whether a publish is in flight
func (s *BoardSession) Publishing() bool {
	return s.publishing.Load()
}

func (s *BoardSession) publishedLocked() *aggregates.Graph {
	if s.snapshot == nil {
		return aggregates.NewGraph()
	}
	return s.snapshot.Graph()
}

// beginLoad starts a new load generation; older loads will not commit
func (s *BoardSession) beginLoad() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.generation++
	return s.generation
}

func (s *BoardSession) fetchBoard(ctx context.Context, version string) (*aggregates.Graph, error) {
	if version == "" {
		return aggregates.NewGraph(), nil
	}
	graph, err := s.store.GetBoard(ctx, version)
	if err != nil {
		return nil, s.fetchError(ctx, fmt.Sprintf("failed to load board %q", version), err)
	}
	return graph, nil
}

// commit installs a freshly loaded board. A nil versions list keeps the
// current one.
func (s *BoardSession) commit(
	ctx context.Context,
	gen uint64,
	versions []versioning.Version,
	version string,
	graph *aggregates.Graph,
) error {
	snapshot, err := versioning.NewSnapshot(version, graph)
	if err != nil {
		return errors.Wrapf(err, "failed to snapshot board %q", version)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	if gen != s.generation {
		s.logger.Debug("Discarding stale board load", zap.String("version", version))
		return ErrStaleLoad
	}

	if versions != nil {
		s.versions = versions
	}
	s.current = version
	s.draft = graph
	s.snapshot = snapshot
	s.state = interaction.NewState()
	s.syncInspectorLocked()
	s.metrics.SetBoardSize(graph.NodeCount(), graph.EdgeCount())

	s.logger.Info("Board loaded",
		zap.String("version", version),
		zap.String("checksum", snapshot.Checksum()),
		zap.Int("nodes", graph.NodeCount()),
		zap.Int("edges", graph.EdgeCount()),
	)
	return nil
}

// fetchError prefers the context's error, so a cancelled load reports
// cancellation rather than a transport failure
func (s *BoardSession) fetchError(ctx context.Context, message string, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	s.logger.Warn(message, zap.Error(err))
	return fmt.Errorf("%s: %w", message, err)
}

func (s *BoardSession) syncInspectorLocked() {
	if s.inspector == nil {
		return
	}
	if s.state.Selected == nil {
		s.inspector.bind(nil)
		return
	}
	node, ok := s.draft.Node(*s.state.Selected)
	if !ok {
		s.inspector.bind(nil)
		return
	}
	s.inspector.bind(node.Clone())
}

func sameSelection(a, b *int) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}
