package series

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/viper"
)

// Catalog maps BLS series identifiers to display names. Unknown
// identifiers pass through verbatim so newly published series survive a
// parse without code changes.
type Catalog struct {
	names map[string]string
}

var defaultNames = map[string]string{
	"LNS14000000":   NameUnemployment,
	"CES0000000001": NameEmployment,
	"CUUR0000SA0":   NameCPI,
	"CES0500000003": NameHourlyEarnings,
	"CES0500000002": NameHoursWorked,
}

// DefaultCatalog returns the built-in five-series catalog.
func DefaultCatalog() *Catalog {
	names := make(map[string]string, len(defaultNames))
	for id, name := range defaultNames {
		names[id] = name
	}
	return &Catalog{names: names}
}

// LoadCatalog starts from the built-in catalog and applies entries from
// the yaml file at path (`series: {ID: Display Name}`). An empty path
// returns the built-in catalog unchanged. Display names must stay
// unique: the snapshot uses them as column headers.
func LoadCatalog(path string) (*Catalog, error) {
	cat := DefaultCatalog()
	if strings.TrimSpace(path) == "" {
		return cat, nil
	}
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading series catalog failed (%s): %w", path, err)
	}
	for id, name := range v.GetStringMapString("series") {
		id = strings.TrimSpace(id)
		name = strings.TrimSpace(name)
		if id == "" || name == "" {
			continue
		}
		// viper lowercases map keys; BLS ids are upper case.
		cat.names[strings.ToUpper(id)] = name
	}
	if err := cat.checkCollisions(); err != nil {
		return nil, err
	}
	return cat, nil
}

func (c *Catalog) checkCollisions() error {
	seen := make(map[string]string, len(c.names))
	for id, name := range c.names {
		if prev, ok := seen[name]; ok {
			return fmt.Errorf("series catalog: %q and %q share display name %q", prev, id, name)
		}
		seen[name] = id
	}
	return nil
}

// DisplayName resolves id to its display name, or returns id itself
// when the catalog does not know it.
func (c *Catalog) DisplayName(id string) string {
	if name, ok := c.names[id]; ok {
		return name
	}
	return id
}

// IDs returns the catalog's series identifiers in stable order, ready
// for a fetch request.
func (c *Catalog) IDs() []string {
	ids := make([]string, 0, len(c.names))
	for id := range c.names {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Columns returns the display names in the snapshot's column order
// (alphabetical, matching how the table has always been published).
func (c *Catalog) Columns() []string {
	cols := make([]string, 0, len(c.names))
	for _, name := range c.names {
		cols = append(cols, name)
	}
	sort.Strings(cols)
	return cols
}
