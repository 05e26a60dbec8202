package lifecycle

import (
	"strings"

	"tujitume_backend/internal/models"
)

type SortBy string
type SortOrder string

const (
	SortByCreatedAt SortBy = "created_at"
	SortByBudget    SortBy = "budget"

	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"

	DefaultLimit = 100
	MaxLimit     = 100
)

// GigFilter - конъюнкция условий выборки гигов. Пустые поля не фильтруют.
type GigFilter struct {
	BudgetType *models.BudgetType
	Skills     []string // гиг подходит, если пересекается хотя бы по одному навыку
	Search     string   // подстрока без учета регистра в title, description или location
}

// ListParams - параметры ListGigs
type ListParams struct {
	Filter    GigFilter
	SortBy    SortBy
	SortOrder SortOrder
	Skip      int
	Limit     *int
}

// Normalize приводит параметры к допустимым: сортировка по умолчанию
// created_at desc, skip >= 0, limit в [1, MaxLimit] (по умолчанию DefaultLimit).
func (p ListParams) Normalize() ListParams {
	out := p

	switch SortBy(strings.ToLower(string(p.SortBy))) {
	case SortByBudget:
		out.SortBy = SortByBudget
	default:
		out.SortBy = SortByCreatedAt
	}

	switch SortOrder(strings.ToLower(string(p.SortOrder))) {
	case SortAsc:
		out.SortOrder = SortAsc
	default:
		out.SortOrder = SortDesc
	}

	if out.Skip < 0 {
		out.Skip = 0
	}

	limit := DefaultLimit
	if p.Limit != nil {
		limit = *p.Limit
		if limit < 1 {
			limit = 1
		}
		if limit > MaxLimit {
			limit = MaxLimit
		}
	}
	out.Limit = &limit

	out.Filter.Search = strings.TrimSpace(p.Filter.Search)
	out.Filter.Skills = normalizeSkills(p.Filter.Skills)
	if p.Filter.BudgetType != nil && *p.Filter.BudgetType == "" {
		out.Filter.BudgetType = nil
	}
	return out
}

// LimitValue - limit после Normalize
func (p ListParams) LimitValue() int {
	if p.Limit == nil {
		return DefaultLimit
	}
	return *p.Limit
}

// Matches - тот же предикат, что репозиторий выражает в SQL
func (f GigFilter) Matches(g *models.Gig) bool {
	if f.BudgetType != nil {
		if g.BudgetType == nil || *g.BudgetType != *f.BudgetType {
			return false
		}
	}

	if len(f.Skills) > 0 && !intersects(g.SkillsRequired, f.Skills) {
		return false
	}

	if f.Search != "" {
		needle := strings.ToLower(f.Search)
		location := ""
		if g.Location != nil {
			location = *g.Location
		}
		if !strings.Contains(strings.ToLower(g.Title), needle) &&
			!strings.Contains(strings.ToLower(g.Description), needle) &&
			!strings.Contains(strings.ToLower(location), needle) {
			return false
		}
	}
	return true
}

func intersects(have, want []string) bool {
	set := make(map[string]struct{}, len(have))
	for _, s := range have {
		set[s] = struct{}{}
	}
	for _, s := range want {
		if _, ok := set[s]; ok {
			return true
		}
	}
	return false
}

// normalizeSkills убирает пробелы, пустые значения и дубликаты, сохраняя порядок
func normalizeSkills(skills []string) []string {
	if len(skills) == 0 {
		return nil
	}
	seen := make(map[string]struct{}, len(skills))
	out := make([]string, 0, len(skills))
	for _, s := range skills {
		for _, part := range strings.Split(s, ",") {
			p := strings.TrimSpace(part)
			if p == "" {
				continue
			}
			if _, dup := seen[p]; dup {
				continue
			}
			seen[p] = struct{}{}
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}
