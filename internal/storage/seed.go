package storage

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"
)

//go:embed fixtures/demo.yaml
var demoFixtures []byte

// Fixtures is a complete dataset that can be loaded into any Storage.
type Fixtures struct {
	Projects       []ProjectInput     `yaml:"projects"`
	Gallery        []GalleryItemInput `yaml:"gallery"`
	CV             *CVFixture         `yaml:"cv"`
	Writings       []WritingInput     `yaml:"writings"`
	Albums         []AlbumFixture     `yaml:"albums"`
	Tags           []TagInput         `yaml:"tags"`
	PhotoLocations []string           `yaml:"photoLocations"`
	PhotoDevices   []string           `yaml:"photoDevices"`
}

// CVFixture carries the free-form CV sections as YAML values.
type CVFixture struct {
	CVInput    `yaml:",inline"`
	Experience []map[string]any `yaml:"experience"`
	Education  []map[string]any `yaml:"education"`
}

// AlbumFixture references its writings by title.
type AlbumFixture struct {
	AlbumInput `yaml:",inline"`
	Writings   []string `yaml:"writings"`
}

// SeedSummary counts the records created by Seed.
type SeedSummary struct {
	Projects  int
	Gallery   int
	CV        int
	Writings  int
	Albums    int
	Tags      int
	Locations int
	Devices   int
}

// ParseFixtures decodes a YAML dataset.
func ParseFixtures(data []byte) (Fixtures, error) {
	var fx Fixtures
	if err := yaml.Unmarshal(data, &fx); err != nil {
		return Fixtures{}, fmt.Errorf("parse fixtures: %w", err)
	}
	return fx, nil
}

// DemoFixtures returns the built-in demo dataset.
func DemoFixtures() (Fixtures, error) {
	return ParseFixtures(demoFixtures)
}

// IsEmpty reports whether the store holds no projects, gallery items or writings.
func IsEmpty(ctx context.Context, s Storage) (bool, error) {
	projects, err := s.ListProjects(ctx, Filter{})
	if err != nil {
		return false, err
	}
	gallery, err := s.ListGalleryItems(ctx, Filter{})
	if err != nil {
		return false, err
	}
	writings, err := s.ListWritings(ctx, Filter{})
	if err != nil {
		return false, err
	}
	return len(projects) == 0 && len(gallery) == 0 && len(writings) == 0, nil
}

// Seed loads fx into s. Albums are created after writings so that writing
// titles can be resolved to ids.
func Seed(ctx context.Context, s Storage, fx Fixtures) (SeedSummary, error) {
	var sum SeedSummary

	for _, in := range fx.Projects {
		if _, err := s.CreateProject(ctx, in); err != nil {
			return sum, fmt.Errorf("seed project %q: %w", in.Title, err)
		}
		sum.Projects++
	}

	for _, in := range fx.Gallery {
		if _, err := s.CreateGalleryItem(ctx, in); err != nil {
			return sum, fmt.Errorf("seed gallery item %q: %w", in.Title, err)
		}
		sum.Gallery++
	}

	if fx.CV != nil {
		in := fx.CV.CVInput
		var err error
		if in.Experience, err = toJSON(fx.CV.Experience); err != nil {
			return sum, err
		}
		if in.Education, err = toJSON(fx.CV.Education); err != nil {
			return sum, err
		}
		if _, err := s.CreateCVData(ctx, in); err != nil {
			return sum, fmt.Errorf("seed cv: %w", err)
		}
		sum.CV++
	}

	writingIDs := make(map[string]uint, len(fx.Writings))
	for _, in := range fx.Writings {
		w, err := s.CreateWriting(ctx, in)
		if err != nil {
			return sum, fmt.Errorf("seed writing %q: %w", in.Title, err)
		}
		writingIDs[w.Title] = w.ID
		sum.Writings++
	}

	for _, af := range fx.Albums {
		in := af.AlbumInput
		for _, title := range af.Writings {
			id, ok := writingIDs[title]
			if !ok {
				return sum, fmt.Errorf("seed album %q: unknown writing %q", in.Title, title)
			}
			in.WritingIDs = append(in.WritingIDs, id)
		}
		if _, err := s.CreateAlbum(ctx, in); err != nil {
			return sum, fmt.Errorf("seed album %q: %w", in.Title, err)
		}
		sum.Albums++
	}

	for _, in := range fx.Tags {
		if _, err := s.CreateTag(ctx, in); err != nil {
			return sum, fmt.Errorf("seed tag %q: %w", in.Name, err)
		}
		sum.Tags++
	}

	for _, name := range fx.PhotoLocations {
		if _, err := s.CreatePhotoLocation(ctx, NameInput{Name: name}); err != nil {
			return sum, fmt.Errorf("seed photo location %q: %w", name, err)
		}
		sum.Locations++
	}

	for _, name := range fx.PhotoDevices {
		if _, err := s.CreatePhotoDevice(ctx, NameInput{Name: name}); err != nil {
			return sum, fmt.Errorf("seed photo device %q: %w", name, err)
		}
		sum.Devices++
	}

	return sum, nil
}

func toJSON(v []map[string]any) (datatypes.JSON, error) {
	if v == nil {
		return nil, nil
	}
	data, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode cv section: %w", err)
	}
	return datatypes.JSON(data), nil
}
