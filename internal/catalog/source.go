package catalog

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"os"
	"slices"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"barrierfree/internal/models"
)

// Source is the data-access boundary for catalog records. Implementations
// return records in authoring order and must not hand out slices that alias
// their own storage.
type Source interface {
	Videos(ctx context.Context) ([]models.Video, error)
	Documents(ctx context.Context) ([]models.Document, error)
}

//go:embed seed.yaml
var seedYAML []byte

// Definition is the on-disk shape of a catalog file.
type Definition struct {
	Videos    []models.Video    `yaml:"videos" validate:"dive"`
	Documents []models.Document `yaml:"documents" validate:"dive"`
}

// Static is an immutable in-memory Source built once from a Definition.
type Static struct {
	videos    []models.Video
	documents []models.Document
}

var validate = validator.New(validator.WithRequiredStructEnabled())

// Default returns the catalog shipped with the binary.
func Default() (*Static, error) {
	return Load(bytes.NewReader(seedYAML))
}

// LoadFile reads and validates a catalog definition from path.
func LoadFile(path string) (*Static, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open catalog %s: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}

// Load decodes a YAML catalog definition and validates every record.
// Unknown fields, invalid records and duplicate ids are all rejected.
func Load(r io.Reader) (*Static, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var def Definition
	if err := dec.Decode(&def); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	return New(def)
}

// New validates def and returns a Static source holding a private copy of it.
func New(def Definition) (*Static, error) {
	if err := Validate(def); err != nil {
		return nil, err
	}
	return &Static{
		videos:    cloneVideos(def.Videos),
		documents: slices.Clone(def.Documents),
	}, nil
}

// Validate checks struct constraints on every record and id uniqueness
// within each kind. All problems are reported together.
func Validate(def Definition) error {
	var errs []error

	if err := validate.Struct(def); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			for _, fe := range verrs {
				errs = append(errs, fmt.Errorf("%s: failed %q", fe.Namespace(), fe.Tag()))
			}
		} else {
			errs = append(errs, fmt.Errorf("validate catalog: %w", err))
		}
	}

	errs = append(errs, duplicateIDs("videos", def.Videos)...)
	errs = append(errs, duplicateIDs("documents", def.Documents)...)

	if len(errs) > 0 {
		return fmt.Errorf("invalid catalog: %w", errors.Join(errs...))
	}
	return nil
}

func duplicateIDs[T models.Record](kind string, items []T) []error {
	var errs []error
	seen := make(map[int]bool, len(items))
	for _, item := range items {
		id := item.Common().ID
		if seen[id] {
			errs = append(errs, fmt.Errorf("%s: duplicate id %d", kind, id))
			continue
		}
		seen[id] = true
	}
	return errs
}

// Videos implements Source.
func (s *Static) Videos(context.Context) ([]models.Video, error) {
	return cloneVideos(s.videos), nil
}

// Documents implements Source.
func (s *Static) Documents(context.Context) ([]models.Document, error) {
	return slices.Clone(s.documents), nil
}

// cloneVideos deep-copies videos so presentation pointers are not shared.
func cloneVideos(in []models.Video) []models.Video {
	out := slices.Clone(in)
	for i := range out {
		if p := out[i].Presentation; p != nil {
			cp := *p
			cp.Attachments = slices.Clone(p.Attachments)
			out[i].Presentation = &cp
		}
	}
	return out
}
