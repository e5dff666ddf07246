// Package catalogfile reads the TOML seed file listing resources to create:
//
//	[[parking]]
//	name = "Central Parking"
//	address = "1 Main Street"
//	unit_price = "1500"
//	rows = 4
//	cols = 3
//
//	[[ev]]
//	name = "Riverside Chargers"
//	address = "9 River Road"
package catalogfile

import (
	"io"
	"sort"
	"strings"

	"slot-reservation/internal/domain/resource"
	"slot-reservation/internal/pkg/errs"

	"github.com/BurntSushi/toml"
	"github.com/shopspring/decimal"
)

var ErrUnknownKeys = errs.Define("catalog file has unknown keys", errs.ErrValidation)

type Entry struct {
	Name           string   `toml:"name"`
	Address        string   `toml:"address"`
	Description    string   `toml:"description"`
	OperatingHours string   `toml:"operating_hours"`
	ImageURL       string   `toml:"image_url"`
	Latitude       *float64 `toml:"latitude"`
	Longitude      *float64 `toml:"longitude"`
	// UnitPrice is a string so prices keep their exact decimal value.
	UnitPrice  string `toml:"unit_price"`
	EVCharging bool   `toml:"ev_charging"`
	Rows       int    `toml:"rows"`
	Cols       int    `toml:"cols"`
	TotalSlots int    `toml:"total_slots"`
}

type File struct {
	Parking []Entry `toml:"parking"`
	EV      []Entry `toml:"ev"`
}

// Item is one resource to create, in file order with parking first.
type Item struct {
	Type       resource.Type
	Descriptor resource.Descriptor
}

func Load(path string) ([]Item, error) {
	var f File
	md, err := toml.DecodeFile(path, &f)
	if err != nil {
		return nil, errs.Wrapf(err, "decode %s", path)
	}
	return f.items(md)
}

func Parse(r io.Reader) ([]Item, error) {
	var f File
	md, err := toml.NewDecoder(r).Decode(&f)
	if err != nil {
		return nil, errs.Wrap(err, "decode catalog")
	}
	return f.items(md)
}

func (f File) items(md toml.MetaData) ([]Item, error) {
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return nil, errs.Wrapf(ErrUnknownKeys, "%s", strings.Join(keys, ", "))
	}

	items := make([]Item, 0, len(f.Parking)+len(f.EV))
	for _, group := range []struct {
		t       resource.Type
		entries []Entry
	}{{resource.TypeParking, f.Parking}, {resource.TypeEV, f.EV}} {
		for i, e := range group.entries {
			d, err := e.Descriptor()
			if err != nil {
				return nil, errs.Wrapf(err, "%s[%d]", group.t, i)
			}
			items = append(items, Item{Type: group.t, Descriptor: d})
		}
	}
	return items, nil
}

func (e Entry) Descriptor() (resource.Descriptor, error) {
	d := resource.Descriptor{
		Name:           e.Name,
		Address:        e.Address,
		Description:    e.Description,
		OperatingHours: e.OperatingHours,
		ImageURL:       e.ImageURL,
		Latitude:       e.Latitude,
		Longitude:      e.Longitude,
		EVCharging:     e.EVCharging,
		Rows:           e.Rows,
		Cols:           e.Cols,
		TotalSlots:     e.TotalSlots,
	}
	if e.UnitPrice != "" {
		price, err := decimal.NewFromString(e.UnitPrice)
		if err != nil {
			return resource.Descriptor{}, errs.Wrapf(err, "unit_price %q", e.UnitPrice)
		}
		d.UnitPrice = &price
	}
	return d, nil
}
