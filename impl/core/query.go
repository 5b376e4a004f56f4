package core

import (
	"SchoolQL/entity"
	"sort"
	"strings"
)

// sortValue is the comparable form of a top-level school field. Fields that
// cannot be sorted on resolve to the zero value, so they never reorder.
type sortValue struct {
	num     int
	str     string
	numeric bool
}

func fieldValue(s *entity.School, field string) sortValue {
	switch field {
	case "id":
		return sortValue{num: s.ID, numeric: true}
	case "school_name":
		return sortValue{str: s.Name}
	case "school_population":
		return sortValue{num: s.Population, numeric: true}
	case "status":
		return sortValue{str: string(s.Status)}
	default:
		return sortValue{}
	}
}

func (a sortValue) less(b sortValue) bool {
	if a.numeric && b.numeric {
		return a.num < b.num
	}
	return a.str < b.str
}

// parseSortBy splits "-field" into ("field", true).
func parseSortBy(sortBy string) (string, bool) {
	if strings.HasPrefix(sortBy, "-") {
		return sortBy[1:], true
	}
	return sortBy, false
}

// SortSchools orders schools in place by a top-level field. A leading "-"
// means descending. Equal values keep their relative order in both
// directions.
func SortSchools(schools []entity.School, sortBy string) {
	if sortBy == "" {
		return
	}
	field, desc := parseSortBy(sortBy)
	sort.SliceStable(schools, func(i, j int) bool {
		a := fieldValue(&schools[i], field)
		b := fieldValue(&schools[j], field)
		if desc {
			return b.less(a)
		}
		return a.less(b)
	})
}

// FilterByName keeps schools whose name contains name, ignoring case.
func FilterByName(schools []entity.School, name string) []entity.School {
	needle := strings.ToLower(name)
	matched := make([]entity.School, 0, len(schools))
	for _, s := range schools {
		if strings.Contains(strings.ToLower(s.Name), needle) {
			matched = append(matched, s)
		}
	}
	return matched
}

// Paginate drops offset records and keeps at most limit of the rest.
// Negative values count as zero.
func Paginate(schools []entity.School, offset, limit *int) []entity.School {
	if offset != nil {
		n := max(*offset, 0)
		if n >= len(schools) {
			return []entity.School{}
		}
		schools = schools[n:]
	}
	if limit != nil {
		n := max(*limit, 0)
		if n < len(schools) {
			schools = schools[:n]
		}
	}
	return schools
}

// ApplyQuery runs filter, sort and pagination in that order over a copy of
// schools.
func ApplyQuery(schools []entity.School, q entity.ListQuery) []entity.School {
	result := make([]entity.School, len(schools))
	copy(result, schools)

	if q.Name != nil {
		result = FilterByName(result, *q.Name)
	}
	if q.SortBy != nil {
		SortSchools(result, *q.SortBy)
	}
	return Paginate(result, q.Offset, q.Limit)
}

// FindByID returns the index of the school with id, or -1.
func FindByID(schools []entity.School, id int) int {
	for i := range schools {
		if schools[i].ID == id {
			return i
		}
	}
	return -1
}
