package scene

import (
	"errors"
	"fmt"
	"path/filepath"

	"go.uber.org/multierr"

	"github.com/Faultbox/stilllife/internal/engine/texture"
)

// ErrInvalidScript marks every problem Validate reports.
var ErrInvalidScript = errors.New("invalid scene script")

func problem(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidScript, fmt.Sprintf(format, args...))
}

// Validate checks a script before any GPU work: texture tags are unique and
// fit the texture units, lights fit the shader, and every step names a known
// primitive, texture and material and sets exactly one of color or texture.
// All problems are reported; use multierr.Errors to list them.
func Validate(s *Script) error {
	var err error

	textures := make(map[string]bool, len(s.Textures))
	for i, t := range s.Textures {
		switch {
		case t.Tag == "":
			err = multierr.Append(err, problem("texture %d has no tag", i))
		case textures[t.Tag]:
			err = multierr.Append(err, problem("texture tag %q defined twice", t.Tag))
		}
		if t.Path == "" {
			err = multierr.Append(err, problem("texture %q has no path", t.Tag))
		}
		textures[t.Tag] = true
	}
	if len(s.Textures) > texture.MaxUnits {
		err = multierr.Append(err, problem("%d textures, at most %d texture units", len(s.Textures), texture.MaxUnits))
	}

	materials := make(map[string]bool, len(s.Materials))
	for i, m := range s.Materials {
		if m.Tag == "" {
			err = multierr.Append(err, problem("material %d has no tag", i))
		}
		materials[m.Tag] = true
	}

	if lerr := s.Lights.Validate(); lerr != nil {
		err = multierr.Append(err, problem("lights: %v", lerr))
	}

	for i, st := range s.Steps {
		err = multierr.Append(err, validateStep(i, st, textures, materials))
	}
	return err
}

func validateStep(i int, st Step, textures, materials map[string]bool) error {
	var err error
	at := st.label(i)

	if !st.Primitive.Valid() {
		err = multierr.Append(err, problem("%s: unknown primitive %q", at, st.Primitive))
	} else if st.Caps != nil && !st.Primitive.HasCaps() {
		err = multierr.Append(err, problem("%s: caps set on %s, which has none", at, st.Primitive))
	}

	switch {
	case st.Texture != "" && st.Color != nil:
		err = multierr.Append(err, problem("%s: sets both color and texture", at))
	case st.Texture == "" && st.Color == nil:
		err = multierr.Append(err, problem("%s: sets neither color nor texture", at))
	case st.Texture != "" && !textures[st.Texture]:
		err = multierr.Append(err, problem("%s: unknown texture %q", at, st.Texture))
	}

	if st.Color != nil {
		for _, c := range st.Color {
			if c < 0 || c > 1 {
				err = multierr.Append(err, problem("%s: color %v outside [0,1]", at, *st.Color))
				break
			}
		}
	}
	if st.Material != "" && !materials[st.Material] {
		err = multierr.Append(err, problem("%s: unknown material %q", at, st.Material))
	}
	for _, v := range st.Scale {
		if v == 0 {
			err = multierr.Append(err, problem("%s: zero scale %v", at, st.Scale))
			break
		}
	}
	return err
}

// TexturePath resolves a texture source against dir.
func TexturePath(dir string, src TextureSource) string {
	if filepath.IsAbs(src.Path) {
		return src.Path
	}
	return filepath.Join(dir, src.Path)
}

// CheckTextures decodes every texture the script names without touching the
// GPU, reporting files that are missing or in an unsupported format.
func CheckTextures(s *Script, dir string) error {
	var err error
	for _, src := range s.Textures {
		if _, derr := texture.DecodeFile(TexturePath(dir, src), texture.DefaultDecodeOptions()); derr != nil {
			err = multierr.Append(err, fmt.Errorf("texture %q: %w", src.Tag, derr))
		}
	}
	return err
}
