package hierarchy

import (
	"sort"
	"strconv"
	"strings"

	"hr-timesheet-backend/internal/model"
)

const (
	SectionPrefix = "SECTION:"
	DeptPrefix    = "DEPT:"
)

func SectionToken(sectionCode string) string { return SectionPrefix + sectionCode }

func DeptToken(id uint) string { return DeptPrefix + strconv.FormatUint(uint64(id), 10) }

// Entry is a department with its code decoded once at catalog load.
type Entry struct {
	ID        uint
	FactoryID uint
	Code      string
	Name      string
	Parsed    DeptCode
}

// Option is one item of the section/department dropdown.
type Option struct {
	Token         string `json:"token"`
	Type          string `json:"type"`
	Label         string `json:"label"`
	SectionCode   string `json:"section_code,omitempty"`
	DepartmentIDs []uint `json:"department_ids"`
}

// Catalog is an immutable snapshot of departments and kips. Build a new one
// whenever the underlying tables change.
type Catalog struct {
	entries []Entry
	byID    map[uint]int
	kips    map[uint]model.Kip
}

func NewCatalog(departments []model.Department, kips []model.Kip, matrixFactoryIDs []uint) *Catalog {
	matrix := make(map[uint]bool, len(matrixFactoryIDs))
	for _, id := range matrixFactoryIDs {
		matrix[id] = true
	}

	c := &Catalog{
		entries: make([]Entry, 0, len(departments)),
		byID:    make(map[uint]int, len(departments)),
		kips:    make(map[uint]model.Kip, len(kips)),
	}
	for _, d := range departments {
		c.entries = append(c.entries, Entry{
			ID:        d.ID,
			FactoryID: d.FactoryID,
			Code:      d.Code,
			Name:      d.Name,
			Parsed:    ParseCode(d.FactoryID, d.Code, matrix[d.FactoryID]),
		})
	}
	sort.Slice(c.entries, func(i, j int) bool { return c.entries[i].ID < c.entries[j].ID })
	for i, e := range c.entries {
		c.byID[e.ID] = i
	}
	for _, k := range kips {
		c.kips[k.ID] = k
	}
	return c
}

func (c *Catalog) Lookup(departmentID uint) (Entry, bool) {
	i, ok := c.byID[departmentID]
	if !ok {
		return Entry{}, false
	}
	return c.entries[i], true
}

// Options lists the dropdown for a factory: one SECTION option per distinct
// section (matrix factories only), then one DEPT option per plain department.
func (c *Catalog) Options(factoryID uint) []Option {
	sections := make(map[string][]uint)
	var plain []Entry
	for _, e := range c.entries {
		if e.FactoryID != factoryID {
			continue
		}
		if e.Parsed.Kind == ShiftInstance {
			sections[e.Parsed.SectionCode] = append(sections[e.Parsed.SectionCode], e.ID)
			continue
		}
		plain = append(plain, e)
	}

	codes := make([]string, 0, len(sections))
	for code := range sections {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	out := make([]Option, 0, len(codes)+len(plain))
	for _, code := range codes {
		out = append(out, Option{
			Token:         SectionToken(code),
			Type:          ShiftInstance.String(),
			Label:         "Tổ " + code,
			SectionCode:   code,
			DepartmentIDs: sections[code],
		})
	}
	sort.SliceStable(plain, func(i, j int) bool { return plain[i].Name < plain[j].Name })
	for _, e := range plain {
		out = append(out, Option{
			Token:         DeptToken(e.ID),
			Type:          "DEPT",
			Label:         e.Name,
			DepartmentIDs: []uint{e.ID},
		})
	}
	return out
}

// Resolve expands a selection into the sorted, de-duplicated department ids
// to query. DEPT tokens pass through untouched by the shift filter; SECTION
// tokens expand to the section's shift instances in factoryID, narrowed to
// the shifts whose numbers appear in the selected kips' names (no kips or
// no digits means every shift). Unknown or malformed tokens are ignored.
func (c *Catalog) Resolve(factoryID *uint, tokens []string, kipIDs []uint) []uint {
	if factoryID == nil || len(tokens) == 0 {
		return []uint{}
	}

	targetDigits := make(map[string]bool)
	for _, id := range kipIDs {
		if k, ok := c.kips[id]; ok {
			if d := ShiftDigits(k.Name); d != "" {
				targetDigits[d] = true
			}
		}
	}

	set := make(map[uint]struct{})
	for _, raw := range tokens {
		token := strings.TrimSpace(raw)
		switch {
		case strings.HasPrefix(token, DeptPrefix):
			id, err := strconv.ParseUint(strings.TrimPrefix(token, DeptPrefix), 10, 64)
			if err == nil && id > 0 {
				set[uint(id)] = struct{}{}
			}
		case strings.HasPrefix(token, SectionPrefix):
			section := strings.TrimPrefix(token, SectionPrefix)
			if section == "" {
				continue
			}
			for _, e := range c.entries {
				if e.FactoryID != *factoryID || e.Parsed.Kind != ShiftInstance || e.Parsed.SectionCode != section {
					continue
				}
				if len(targetDigits) == 0 || targetDigits[e.Parsed.ShiftDigits] {
					set[e.ID] = struct{}{}
				}
			}
		}
	}

	out := make([]uint, 0, len(set))
	for id := range set {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}
