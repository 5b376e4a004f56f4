package core

import (
	"SchoolQL/entity"
)

// NextID assigns ids by collection size. It holds only while the collection
// never shrinks; records are deactivated, never removed.
func NextID(schools []entity.School) int {
	return len(schools) + 1
}

// CreateSchool appends a new school and returns the new collection and record.
func CreateSchool(schools []entity.School, in entity.SchoolInput) ([]entity.School, entity.School) {
	status := in.Status
	if status == "" {
		status = entity.StatusActive
	}
	school := entity.School{
		ID:         NextID(schools),
		Name:       in.Name,
		Population: in.Population,
		Address:    in.Address,
		Status:     status,
	}
	next := make([]entity.School, 0, len(schools)+1)
	next = append(next, schools...)
	next = append(next, school)
	return next, school
}

// ApplyUpdate overwrites only the fields marked as set.
func ApplyUpdate(school entity.School, upd entity.SchoolUpdate) entity.School {
	if v, ok := upd.Name.Get(); ok {
		school.Name = v
	}
	if v, ok := upd.Population.Get(); ok {
		school.Population = v
	}
	if v, ok := upd.Address.Get(); ok {
		school.Address = v
	}
	if v, ok := upd.Status.Get(); ok {
		school.Status = v
	}
	return school
}

// UpdateSchool merges upd into the school with id.
func UpdateSchool(schools []entity.School, id int, upd entity.SchoolUpdate) ([]entity.School, entity.School, error) {
	return replaceByID(schools, id, func(s entity.School) entity.School {
		return ApplyUpdate(s, upd)
	})
}

// DeactivateSchool marks the school with id INACTIVE. It never removes the
// record and succeeds for an already inactive school.
func DeactivateSchool(schools []entity.School, id int) ([]entity.School, entity.School, error) {
	return replaceByID(schools, id, func(s entity.School) entity.School {
		s.Status = entity.StatusInactive
		return s
	})
}

func replaceByID(schools []entity.School, id int, fn func(entity.School) entity.School) ([]entity.School, entity.School, error) {
	idx := FindByID(schools, id)
	if idx < 0 {
		return schools, entity.School{}, entity.ErrNotFound
	}
	next := make([]entity.School, len(schools))
	copy(next, schools)
	next[idx] = fn(next[idx])
	return next, next[idx], nil
}
