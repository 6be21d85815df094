// Package material stores acoustic material properties keyed by name. The
// default database ships embedded in the binary; user-defined materials live
// in an optional CSV overlay file with the same columns.
package material

import (
	_ "embed"
	"encoding/csv"
	"fmt"
	"io"
	"math"
	"os"
	"sort"
	"strconv"
	"strings"
)

//go:embed database.csv
var defaultDatabase string

// Properties holds the acoustic parameters of one material. Attenuation
// follows the power law α(f) = a·f^b with f in MHz and α in Np/m.
type Properties struct {
	Name              string
	Density           float64 // kg/m³
	SpeedOfSound      float64 // m/s
	AttenuationCoeffA float64 // Np/m/MHz^b
	AttenuationPowB   float64
}

// Attenuation returns the attenuation α = a·f^b in Np/m for a frequency in
// MHz.
func (p Properties) Attenuation(freqMHz float64) float64 {
	return p.AttenuationCoeffA * math.Pow(freqMHz, p.AttenuationPowB)
}

// Wavenumber returns the complex wavenumber 2πf/c + iα for a frequency in
// Hz.
func (p Properties) Wavenumber(freqHz float64) complex128 {
	return complex(2*math.Pi*freqHz/p.SpeedOfSound, p.Attenuation(freqHz/1e6))
}

// Database combines the embedded default material table with an optional
// user-defined CSV overlay. Lookups are case-insensitive.
type Database struct {
	userPath  string
	materials map[string]Properties // keyed by lowercase name
	names     []string
}

// Open loads the default database plus, when userPath is non-empty and the
// file exists, the user-defined overlay. A user-defined material may not
// shadow a default one.
func Open(userPath string) (*Database, error) {
	db := &Database{userPath: userPath, materials: make(map[string]Properties)}
	defaults, err := parseCSV(strings.NewReader(defaultDatabase))
	if err != nil {
		return nil, fmt.Errorf("embedded material database: %w", err)
	}
	for _, p := range defaults {
		db.insert(p)
	}
	if userPath != "" {
		f, err := os.Open(userPath)
		if err == nil {
			defer f.Close()
			user, err := parseCSV(f)
			if err != nil {
				return nil, fmt.Errorf("user-defined material database %s: %w", userPath, err)
			}
			for _, p := range user {
				if _, exists := db.materials[strings.ToLower(p.Name)]; exists {
					return nil, fmt.Errorf("material %q defined in both default and user-defined databases", p.Name)
				}
				db.insert(p)
			}
		} else if !os.IsNotExist(err) {
			return nil, err
		}
	}
	sort.Strings(db.names)
	return db, nil
}

func (db *Database) insert(p Properties) {
	db.materials[strings.ToLower(p.Name)] = p
	db.names = append(db.names, p.Name)
}

// Get looks up a material by name, case-insensitively.
func (db *Database) Get(name string) (Properties, error) {
	p, ok := db.materials[strings.ToLower(name)]
	if !ok {
		return Properties{}, fmt.Errorf("material %q is not in the database", name)
	}
	return p, nil
}

// Names returns all known material names in sorted order.
func (db *Database) Names() []string {
	return append([]string(nil), db.names...)
}

// Add registers a new user-defined material and appends it to the overlay
// file. A material whose name already exists in either database is rejected.
func (db *Database) Add(p Properties) error {
	if p.Name == "" {
		return fmt.Errorf("material name must not be empty")
	}
	if _, exists := db.materials[strings.ToLower(p.Name)]; exists {
		return fmt.Errorf("a material named %q already exists in the database", p.Name)
	}
	if db.userPath == "" {
		return fmt.Errorf("database was opened without a user-defined overlay file")
	}
	f, err := os.OpenFile(db.userPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()
	info, err := f.Stat()
	if err != nil {
		return err
	}
	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(csvHeader); err != nil {
			return err
		}
	}
	record := []string{
		p.Name,
		strconv.FormatFloat(p.Density, 'g', -1, 64),
		strconv.FormatFloat(p.SpeedOfSound, 'g', -1, 64),
		strconv.FormatFloat(p.AttenuationCoeffA, 'g', -1, 64),
		strconv.FormatFloat(p.AttenuationPowB, 'g', -1, 64),
	}
	if err := w.Write(record); err != nil {
		return err
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}
	db.insert(p)
	sort.Strings(db.names)
	return nil
}

// Load looks up a material in the default database only.
func Load(name string) (Properties, error) {
	db, err := Open("")
	if err != nil {
		return Properties{}, err
	}
	return db.Get(name)
}

var csvHeader = []string{"name", "density", "speed_of_sound", "attenuation_coeff_a", "attenuation_pow_b"}

func parseCSV(r io.Reader) ([]Properties, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	records, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("empty material table")
	}
	var out []Properties
	for i, rec := range records {
		if i == 0 && strings.EqualFold(rec[0], csvHeader[0]) {
			continue
		}
		if len(rec) != len(csvHeader) {
			return nil, fmt.Errorf("row %d has %d columns, want %d", i+1, len(rec), len(csvHeader))
		}
		var vals [4]float64
		for j := 0; j < 4; j++ {
			vals[j], err = strconv.ParseFloat(rec[j+1], 64)
			if err != nil {
				return nil, fmt.Errorf("row %d column %s: %w", i+1, csvHeader[j+1], err)
			}
		}
		out = append(out, Properties{
			Name:              rec[0],
			Density:           vals[0],
			SpeedOfSound:      vals[1],
			AttenuationCoeffA: vals[2],
			AttenuationPowB:   vals[3],
		})
	}
	return out, nil
}
