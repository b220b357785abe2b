package services

import (
	"context"
	"image"
	"sync"
	"sync/atomic"

	"github.com/DanBrus/IB-frontend/application/ports"
	"github.com/DanBrus/IB-frontend/domain/config"
	"github.com/DanBrus/IB-frontend/domain/core/entities"
	"github.com/DanBrus/IB-frontend/domain/core/valueobjects"
	"github.com/DanBrus/IB-frontend/pkg/errors"
	"github.com/DanBrus/IB-frontend/pkg/observability"
	"go.uber.org/zap"
)

// NodePatcher receives inspector saves
type NodePatcher interface {
	PatchNode(id int, patch entities.NodePatch) error
}

// InspectorView is a read-only copy of the inspector state
type InspectorView struct {
	NodeID       int
	Selected     bool
	Name         string
	Description  string
	Type         valueobjects.NodeType
	ImageURL     string
	ImageChanged bool
	CropApplied  bool
	Crop         image.Rectangle
	Zoom         float64
	Saving       bool
}

// Inspector edits the selected node. Its draft resets whenever the
// selected node changes.
type Inspector struct {
	uploader ports.ImageUploader
	patcher  NodePatcher
	cfg      *config.DomainConfig
	metrics  *observability.Collector
	logger   *zap.Logger

	mu          sync.Mutex
	nodeID      *int
	name        string
	description string
	nodeType    valueobjects.NodeType
	imageRef    string

	source       image.Image
	crop         image.Rectangle
	zoom         float64
	pending      []byte
	imageChanged bool

	saving atomic.Bool
}

// NewInspector creates an inspector with nothing selected
func NewInspector(
	uploader ports.ImageUploader,
	patcher NodePatcher,
	cfg *config.DomainConfig,
	metrics *observability.Collector,
	logger *zap.Logger,
) *Inspector {
	if cfg == nil {
		cfg = config.DefaultDomainConfig()
	}
	return &Inspector{
		uploader: uploader,
		patcher:  patcher,
		cfg:      cfg,
		metrics:  metrics,
		logger:   logger,
		zoom:     cfg.MinCropZoom,
	}
}

// bind follows the board selection. Re-binding the same node keeps the draft.
func (i *Inspector) bind(node *entities.Node) {
	i.mu.Lock()
	defer i.mu.Unlock()

	if node != nil && i.nodeID != nil && *i.nodeID == node.ID() {
		return
	}

	i.resetImageLocked()
	if node == nil {
		i.nodeID = nil
		i.name, i.description, i.nodeType, i.imageRef = "", "", valueobjects.NodeTypeNone, ""
		return
	}

	id := node.ID()
	i.nodeID = &id
	i.name = node.Name()
	i.description = node.Description()
	i.nodeType = node.Type()
	i.imageRef = node.ImageRef()
}

func (i *Inspector) resetImageLocked() {
	i.source = nil
	i.crop = image.Rectangle{}
	i.zoom = i.cfg.MinCropZoom
	i.pending = nil
	i.imageChanged = false
}

// View returns the current inspector state
func (i *Inspector) View() InspectorView {
	i.mu.Lock()
	defer i.mu.Unlock()

	v := InspectorView{
		Selected:     i.nodeID != nil,
		Name:         i.name,
		Description:  i.description,
		Type:         i.nodeType,
		ImageURL:     i.uploader.ImageURL(i.imageRef),
		ImageChanged: i.imageChanged,
		CropApplied:  i.pending != nil,
		Crop:         i.effectiveCropLocked(),
		Zoom:         i.zoom,
		Saving:       i.saving.Load(),
	}
	if i.nodeID != nil {
		v.NodeID = *i.nodeID
	}
	return v
}

// SetName edits the draft name. It is clamped on save.
func (i *Inspector) SetName(name string) error {
	return i.edit(func() { i.name = name })
}

// SetDescription edits the draft description
func (i *Inspector) SetDescription(description string) error {
	return i.edit(func() { i.description = description })
}

// SetType edits the draft node type
func (i *Inspector) SetType(nodeType valueobjects.NodeType) error {
	return i.edit(func() { i.nodeType = nodeType })
}

func (i *Inspector) edit(apply func()) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.nodeID == nil {
		return errNoSelection()
	}
	apply()
	return nil
}

// LoadImage accepts a PNG or JPEG file as the new node image. The crop
// area starts as the largest centred square.
func (i *Inspector) LoadImage(filename, contentType string, data []byte) error {
	mediaType := DetectImageType(contentType, data)
	if !i.cfg.IsAllowedImageType(mediaType) {
		return errors.NewValidationError("only PNG and JPEG images are supported").
			WithCode(errors.CodeUnsupportedImage).
			WithDetails(map[string]interface{}{"filename": filename, "content_type": mediaType})
	}

	img, err := DecodeImage(data)
	if err != nil {
		return errors.NewValidationError("the image could not be read").
			WithCode(errors.CodeUnsupportedImage).
			WithCause(err)
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	if i.nodeID == nil {
		return errNoSelection()
	}

	i.resetImageLocked()
	i.source = img
	i.crop = CenteredSquare(img.Bounds())
	i.imageChanged = true

	i.logger.Debug("Image loaded",
		zap.String("filename", filename),
		zap.String("contentType", mediaType),
		zap.Int("width", img.Bounds().Dx()),
		zap.Int("height", img.Bounds().Dy()),
	)
	return nil
}

// SetCrop moves and resizes the square crop area, clamped to the image.
// A previously applied crop must be applied again.
func (i *Inspector) SetCrop(x, y, size int) error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.source == nil {
		return errors.NewValidationError("no image loaded")
	}
	i.crop = ClampSquare(i.source.Bounds(), x, y, size)
	i.pending = nil
	return nil
}

// SetZoom narrows the crop area around its centre
func (i *Inspector) SetZoom(zoom float64) error {
	if zoom < i.cfg.MinCropZoom || zoom > i.cfg.MaxCropZoom {
		return errors.NewValidationError("zoom must be between 1 and 3").
			WithDetails(map[string]interface{}{"min": i.cfg.MinCropZoom, "max": i.cfg.MaxCropZoom})
	}

	i.mu.Lock()
	defer i.mu.Unlock()
	if i.source == nil {
		return errors.NewValidationError("no image loaded")
	}
	i.zoom = zoom
	i.pending = nil
	return nil
}

func (i *Inspector) effectiveCropLocked() image.Rectangle {
	if i.source == nil {
		return image.Rectangle{}
	}
	return ZoomSquare(i.crop, i.zoom)
}

// ApplyCrop renders the crop area into the square PNG that Save uploads
func (i *Inspector) ApplyCrop() error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.source == nil {
		return errors.NewValidationError("no image loaded")
	}

	blob, err := RenderSquarePNG(i.source, i.effectiveCropLocked(), i.cfg.ImageSize)
	if err != nil {
		return errors.NewInternalError("failed to crop image").WithCause(err)
	}
	i.pending = blob
	return nil
}

// Save uploads a changed image first, then patches the node. Without an
// image change the patch leaves the node's image alone.
func (i *Inspector) Save(ctx context.Context) error {
	i.mu.Lock()
	if i.nodeID == nil {
		i.mu.Unlock()
		return errNoSelection()
	}
	if !i.saving.CompareAndSwap(false, true) {
		i.mu.Unlock()
		return errors.NewBusyError("save")
	}
	if i.imageChanged && i.pending == nil {
		i.saving.Store(false)
		i.mu.Unlock()
		return errors.NewValidationError("apply the crop first").WithCode(errors.CodeCropNotApplied)
	}

	id := *i.nodeID
	nodeType := i.nodeType
	patch := entities.NodePatch{
		Name:        entities.ClampName(i.name, i.cfg.MaxNodeNameLength),
		Description: i.description,
		Type:        &nodeType,
	}
	imageChanged := i.imageChanged
	blob := i.pending
	i.mu.Unlock()

	defer i.saving.Store(false)

	var imageRef string
	if imageChanged {
		result, err := i.uploader.Upload(ctx, i.cfg.DefaultImageName, blob)
		if err != nil {
			i.logger.Warn("Image upload failed", zap.Int("nodeID", id), zap.Error(err))
			return err
		}
		i.metrics.CountUpload()
		imageRef = result.ID
		patch.ImageRef = &imageRef
	}

	if err := i.patcher.PatchNode(id, patch); err != nil {
		return err
	}

	i.mu.Lock()
	if i.nodeID != nil && *i.nodeID == id {
		i.name = patch.Name
		if imageChanged {
			i.imageRef = imageRef
			i.resetImageLocked()
		}
	}
	i.mu.Unlock()

	i.logger.Info("Node saved", zap.Int("nodeID", id), zap.Bool("imageChanged", imageChanged))
	return nil
}

func errNoSelection() error {
	return errors.NewValidationError("no node selected")
}
