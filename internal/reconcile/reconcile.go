package reconcile

import (
	"fmt"
	"sort"

	"artcat/internal/catalog"
	"artcat/internal/logger"
)

var log = logger.ForComponent("reconcile")

type Stats struct {
	Inserted int
	Merged   int
	Aliased  int
	Deduped  int
}

// Result is the reconciled table plus the merge warnings produced
// along the way.
type Result struct {
	Table    []catalog.Record
	Warnings []string
	Stats    Stats
}

// Reconcile merges one scan's candidates into a prior table. Candidate
// non-empty fields win; fields empty in the candidate keep the prior
// value, so a re-scan refreshes without erasing curated data. Prior
// records that receive no candidate are retained. localOrigin names
// the default origin the alias rule applies to.
func Reconcile(prior, candidates []catalog.Record, localOrigin string) Result {
	var result Result

	table := make([]catalog.Record, len(prior))
	copy(table, prior)

	index := make(map[catalog.Key]int, len(table))
	for i, rec := range table {
		index[rec.Key()] = i
	}

	for _, cand := range candidates {
		key := cand.Key()
		if at, ok := index[key]; ok {
			table[at] = merge(table[at], cand)
			result.Stats.Merged++
		} else {
			index[key] = len(table)
			table = append(table, cand)
			result.Stats.Inserted++
		}
	}

	table = applyAliasRule(table, localOrigin, &result.Stats)
	table = dedupe(table, &result)

	sort.SliceStable(table, func(i, j int) bool {
		a, b := table[i], table[j]
		if a.Kind != b.Kind {
			return a.Kind < b.Kind
		}
		if a.Origin != b.Origin {
			return a.Origin < b.Origin
		}
		if a.Category != b.Category {
			return a.Category < b.Category
		}
		return a.Name < b.Name
	})

	result.Table = table
	log.Info("reconciled",
		"inserted", result.Stats.Inserted,
		"merged", result.Stats.Merged,
		"aliased", result.Stats.Aliased,
		"deduped", result.Stats.Deduped)
	return result
}

// merge prefers the candidate's non-empty fields and keeps the prior
// value everywhere the candidate is silent.
func merge(prior, cand catalog.Record) catalog.Record {
	out := prior

	if cand.Category != "" {
		out.Category = cand.Category
	}
	if cand.Description != "" {
		out.Description = cand.Description
	}
	if cand.Status != "" {
		out.Status = cand.Status
	}
	if cand.SourcePath != "" {
		out.SourcePath = cand.SourcePath
	}
	if cand.Created != "" {
		out.Created = cand.Created
	}
	if cand.Updated != "" {
		out.Updated = cand.Updated
	}

	return out
}

// applyAliasRule demotes local-origin commands shadowed by the same
// command under another origin: status becomes alias, the category is
// taken from the shadowing record, and an empty description is
// synthesized from it. A generic record duplicating a specific one
// must not count as distinct functionality.
func applyAliasRule(table []catalog.Record, localOrigin string, stats *Stats) []catalog.Record {
	for i, rec := range table {
		if rec.Kind != catalog.KindCommand || rec.Origin != localOrigin {
			continue
		}

		shadow, ok := findShadowing(table, rec.Name, localOrigin)
		if !ok {
			continue
		}

		if rec.Status != catalog.StatusAlias {
			stats.Aliased++
		}
		rec.Status = catalog.StatusAlias
		rec.Category = shadow.Category

		if rec.Description == "" {
			if shadow.Description != "" {
				rec.Description = fmt.Sprintf("Alias for %s - %s", shadow.Origin, shadow.Description)
			} else {
				rec.Description = fmt.Sprintf("Alias for %s command", shadow.Origin)
			}
		}

		table[i] = rec
	}

	return table
}

func findShadowing(table []catalog.Record, name, localOrigin string) (catalog.Record, bool) {
	for _, rec := range table {
		if rec.Kind == catalog.KindCommand && rec.Name == name && rec.Origin != localOrigin {
			return rec, true
		}
	}
	return catalog.Record{}, false
}

// dedupe enforces one record per identity key; when two independently
// built tables collide, the later record in iteration order wins.
func dedupe(table []catalog.Record, result *Result) []catalog.Record {
	last := make(map[catalog.Key]int, len(table))
	for i, rec := range table {
		if prev, ok := last[rec.Key()]; ok {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("duplicate key %s/%s/%s: row %d superseded by row %d",
					rec.Kind, rec.Origin, rec.Name, prev, i))
			result.Stats.Deduped++
		}
		last[rec.Key()] = i
	}

	if result.Stats.Deduped == 0 {
		return table
	}

	out := make([]catalog.Record, 0, len(last))
	for i, rec := range table {
		if last[rec.Key()] == i {
			out = append(out, rec)
		}
	}
	return out
}
