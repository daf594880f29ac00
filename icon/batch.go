package icon

import "context"

// BatchDefaults are request fields applied to every entry unless the entry
// overrides them.
type BatchDefaults struct {
	Color        string
	Gradient     *Gradient
	Size         *int
	Format       Format
	BgColor      string
	BgGradient   *Gradient
	BorderRadius int
	OutlineWidth int
	OutlineColor string
	Animation    string
}

// BatchOverrides marks fields the entry set explicitly, including to their
// zero value. A marked field keeps the entry's value even when it is empty,
// so an entry can switch a default decoration off.
type BatchOverrides struct {
	Paint        bool
	Background   bool
	BorderRadius bool
	OutlineWidth bool
	Animation    bool
}

// BatchEntry is one icon in a batch: a name, a request, and which fields
// the entry set explicitly (so zero values from defaults are not clobbered).
type BatchEntry struct {
	Name      string
	Request   Request
	Overrides BatchOverrides
}

// BatchRequest generates a list of icons with shared defaults.
type BatchRequest struct {
	Defaults BatchDefaults
	Entries  []BatchEntry
}

// BatchResult records one entry's outcome. Err is nil on success.
type BatchResult struct {
	Name   string
	Path   string
	Format Format
	Err    error
}

// Batch generates every entry in order. A failed entry records its error
// and processing continues; results come back in input order.
func (g *Generator) Batch(ctx context.Context, batch BatchRequest) []BatchResult {
	results := make([]BatchResult, 0, len(batch.Entries))
	for _, entry := range batch.Entries {
		req := mergeDefaults(entry.Request, batch.Defaults, entry.Overrides)
		if req.OutputName == "" {
			req.OutputName = entry.Name
		}
		res, err := g.Generate(ctx, req)
		if err != nil {
			g.logger.Error("batch entry failed", "name", entry.Name, "error", err)
			results = append(results, BatchResult{Name: entry.Name, Format: req.format(), Err: err})
			continue
		}
		results = append(results, BatchResult{Name: res.Name, Path: res.Path, Format: res.Format})
	}
	return results
}

// mergeDefaults fills unset request fields from the batch defaults. A color
// or gradient set on the entry suppresses both default paint fields, and
// likewise for the background pair, so an entry can switch paint kinds.
// Fields marked in the overrides keep the entry's value even when zero.
func mergeDefaults(req Request, d BatchDefaults, o BatchOverrides) Request {
	if !o.Paint && req.Color == "" && req.Gradient == nil {
		req.Color = d.Color
		req.Gradient = d.Gradient
	}
	if !o.Background && req.BgColor == "" && req.BgGradient == nil {
		req.BgColor = d.BgColor
		req.BgGradient = d.BgGradient
	}
	if req.Size == nil {
		req.Size = d.Size
	}
	if req.Format == "" {
		req.Format = d.Format
	}
	if !o.BorderRadius && req.BorderRadius == 0 {
		req.BorderRadius = d.BorderRadius
	}
	if !o.OutlineWidth && req.OutlineWidth == 0 {
		req.OutlineWidth = d.OutlineWidth
	}
	if req.OutlineColor == "" {
		req.OutlineColor = d.OutlineColor
	}
	if !o.Animation && req.Animation == "" {
		req.Animation = d.Animation
	}
	return req
}
