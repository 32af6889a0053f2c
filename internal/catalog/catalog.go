package catalog

import (
	"errors"
	"fmt"
	"path/filepath"

	"hatecrimes/internal/config"
	"hatecrimes/internal/util"
)

const (
	NameDivision         = "Division"
	NameLocationType     = "Location_type"
	NamePrimaryOffence   = "Primary_Offence"
	NameNeighbourhood158 = "Neighbourhood_158"
)

// ErrEmptyCatalog is returned for a catalog source that lists no values.
var ErrEmptyCatalog = errors.New("catalog is empty")

// CatalogError reports a catalog that could not be loaded. It is fatal: no
// validation runs against a partial set of catalogs.
type CatalogError struct {
	Catalog string
	Path    string
	Err     error
}

func (e *CatalogError) Error() string {
	return fmt.Sprintf("load catalog %s from %s: %v", e.Catalog, e.Path, e.Err)
}

func (e *CatalogError) Unwrap() error { return e.Err }

// Catalogs holds the four reference sets shared by every validation call.
// Nothing mutates it after Load returns.
type Catalogs struct {
	Division         *ReferenceSet
	LocationType     *ReferenceSet
	PrimaryOffence   *ReferenceSet
	Neighbourhood158 *ReferenceSet
}

type Paths struct {
	Division         string
	LocationType     string
	PrimaryOffence   string
	Neighbourhood158 string
}

func PathsFromConfig(cfg config.Config) Paths {
	resolve := func(p string) string {
		if p == "" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(cfg.CatalogDir, p)
	}
	return Paths{
		Division:         resolve(cfg.CatalogDivision),
		LocationType:     resolve(cfg.CatalogLocationType),
		PrimaryOffence:   resolve(cfg.CatalogPrimaryOffence),
		Neighbourhood158: resolve(cfg.CatalogNeighbourhood),
	}
}

// Load reads all four catalogs and stops at the first failure.
func Load(paths Paths) (*Catalogs, error) {
	division, err := loadSet(NameDivision, paths.Division, nil)
	if err != nil {
		return nil, err
	}
	locationType, err := loadSet(NameLocationType, paths.LocationType, nil)
	if err != nil {
		return nil, err
	}
	primaryOffence, err := loadSet(NamePrimaryOffence, paths.PrimaryOffence, nil)
	if err != nil {
		return nil, err
	}
	neighbourhood, err := loadSet(NameNeighbourhood158, paths.Neighbourhood158, util.NormalizeNeighbourhood)
	if err != nil {
		return nil, err
	}
	return &Catalogs{
		Division:         division,
		LocationType:     locationType,
		PrimaryOffence:   primaryOffence,
		Neighbourhood158: neighbourhood,
	}, nil
}

// New builds catalogs from in-memory lists, normalizing neighbourhoods the
// same way Load does.
func New(division, locationType, primaryOffence, neighbourhood []string) *Catalogs {
	return &Catalogs{
		Division:         NewReferenceSet(NameDivision, division, nil),
		LocationType:     NewReferenceSet(NameLocationType, locationType, nil),
		PrimaryOffence:   NewReferenceSet(NamePrimaryOffence, primaryOffence, nil),
		Neighbourhood158: NewReferenceSet(NameNeighbourhood158, neighbourhood, util.NormalizeNeighbourhood),
	}
}

func loadSet(name, path string, normalize func(string) string) (*ReferenceSet, error) {
	if path == "" {
		return nil, &CatalogError{Catalog: name, Path: path, Err: errors.New("no path configured")}
	}
	values, err := LoadFile(path)
	if err != nil {
		return nil, &CatalogError{Catalog: name, Path: path, Err: err}
	}
	if len(values) == 0 {
		return nil, &CatalogError{Catalog: name, Path: path, Err: ErrEmptyCatalog}
	}
	return NewReferenceSet(name, values, normalize), nil
}
