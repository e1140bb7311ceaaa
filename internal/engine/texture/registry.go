package texture

import (
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/stilllife/internal/logger"
)

// MaxUnits is the number of texture units the scene shader can sample from.
const MaxUnits = 16

// NotFound is the slot returned for a tag that was never loaded. Submitting it
// as a sampler unit means "no texture".
const NotFound = -1

var (
	// ErrDuplicateTag reports a load under a tag that is already registered.
	ErrDuplicateTag = errors.New("texture: duplicate tag")

	// ErrTooManyTextures reports a load past MaxUnits entries.
	ErrTooManyTextures = errors.New("texture: all texture units in use")
)

// Device uploads decoded images to the GPU and manages texture units.
type Device interface {
	// Upload creates a 2D texture with repeat wrapping, linear filtering and
	// mipmaps, and returns its handle.
	Upload(img *Image) (uint32, error)
	// Bind attaches handle to texture unit unit.
	Bind(unit int, handle uint32)
	// Delete frees the given textures.
	Delete(handles []uint32)
}

// Entry is one registered texture. Its index in the registry is its slot.
type Entry struct {
	Tag      string
	Path     string
	Handle   uint32
	Width    int
	Height   int
	Channels int
}

// Registry holds the scene's textures in load order. Slot i is bound to
// texture unit i.
type Registry struct {
	device  Device
	opts    DecodeOptions
	entries []Entry
}

// NewRegistry creates an empty registry uploading through device.
func NewRegistry(device Device, opts DecodeOptions) *Registry {
	return &Registry{
		device:  device,
		opts:    opts,
		entries: make([]Entry, 0, MaxUnits),
	}
}

// Load decodes the image at path, uploads it and registers it under tag.
// On any error the registry is left unchanged.
func (r *Registry) Load(path, tag string) error {
	if err := r.checkTag(tag); err != nil {
		logger.Warn("texture rejected", zap.String("path", path), zap.String("tag", tag), zap.Error(err))
		return err
	}

	img, err := DecodeFile(path, r.opts)
	if err != nil {
		logger.Warn("could not load texture", zap.String("path", path), zap.String("tag", tag), zap.Error(err))
		return fmt.Errorf("loading %s: %w", path, err)
	}

	if err := r.add(img, path, tag); err != nil {
		logger.Warn("could not upload texture", zap.String("path", path), zap.String("tag", tag), zap.Error(err))
		return fmt.Errorf("uploading %s: %w", path, err)
	}
	return nil
}

// Add registers an already decoded image under tag.
func (r *Registry) Add(img *Image, tag string) error {
	if err := r.checkTag(tag); err != nil {
		return err
	}
	if img.Channels != 3 && img.Channels != 4 {
		return fmt.Errorf("%w: %d", ErrUnsupportedFormat, img.Channels)
	}
	return r.add(img, "", tag)
}

func (r *Registry) checkTag(tag string) error {
	if _, ok := r.SlotOf(tag); ok {
		return fmt.Errorf("%w: %q", ErrDuplicateTag, tag)
	}
	if len(r.entries) >= MaxUnits {
		return fmt.Errorf("%w: %d", ErrTooManyTextures, MaxUnits)
	}
	return nil
}

func (r *Registry) add(img *Image, path, tag string) error {
	handle, err := r.device.Upload(img)
	if err != nil {
		return err
	}

	r.entries = append(r.entries, Entry{
		Tag:      tag,
		Path:     path,
		Handle:   handle,
		Width:    img.Width,
		Height:   img.Height,
		Channels: img.Channels,
	})

	logger.Info("texture loaded",
		zap.String("tag", tag),
		zap.String("path", path),
		zap.Int("width", img.Width),
		zap.Int("height", img.Height),
		zap.Int("channels", img.Channels),
		zap.Int("slot", len(r.entries)-1),
	)
	return nil
}

// BindAll binds every texture to the unit equal to its slot, in load order.
// Call once after all loads and before drawing textured objects.
func (r *Registry) BindAll() {
	for i, e := range r.entries {
		r.device.Bind(i, e.Handle)
	}
}

// SlotOf returns the slot of the first texture registered under tag.
// Unknown tags return NotFound and false.
func (r *Registry) SlotOf(tag string) (int, bool) {
	for i, e := range r.entries {
		if e.Tag == tag {
			return i, true
		}
	}
	return NotFound, false
}

// HandleOf returns the GPU handle registered under tag.
func (r *Registry) HandleOf(tag string) (uint32, bool) {
	if i, ok := r.SlotOf(tag); ok {
		return r.entries[i].Handle, true
	}
	return 0, false
}

// Len returns the number of registered textures.
func (r *Registry) Len() int {
	return len(r.entries)
}

// Entries returns a copy of the registered textures in slot order.
func (r *Registry) Entries() []Entry {
	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// ReleaseAll deletes every GPU texture and empties the registry.
// Calling it again is a no-op.
func (r *Registry) ReleaseAll() {
	if len(r.entries) == 0 {
		return
	}
	handles := make([]uint32, len(r.entries))
	for i, e := range r.entries {
		handles[i] = e.Handle
	}
	r.device.Delete(handles)
	logger.Debug("textures released", zap.Int("count", len(handles)))
	r.entries = r.entries[:0]
}
