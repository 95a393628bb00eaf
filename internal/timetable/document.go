package timetable

// document mirrors the on-disk layout. Pointers distinguish a missing key
// from an empty value.
type document struct {
	Class      []classRecord      `toml:"class" yaml:"class" validate:"dive"`
	Assignment []assignmentRecord `toml:"assignment" yaml:"assignment" validate:"dive"`
	Format     *formatRecord      `toml:"format" yaml:"format" validate:"required"`
}

type classRecord struct {
	Name      *string `toml:"name" yaml:"name" validate:"required,min=1"`
	Day       *string `toml:"day" yaml:"day" validate:"required"`
	StartTime *string `toml:"start_time" yaml:"start_time" validate:"required"`
	EndTime   *string `toml:"end_time" yaml:"end_time" validate:"required"`
	Location  *string `toml:"location" yaml:"location" validate:"required"`
}

type assignmentRecord struct {
	Name    *string `toml:"name" yaml:"name" validate:"required,min=1"`
	Points  *string `toml:"points" yaml:"points" validate:"required"`
	DueDate *string `toml:"due_date" yaml:"due_date" validate:"required"`
}

type formatRecord struct {
	InClassFormat           *string `toml:"in_class_format" yaml:"in_class_format" validate:"required"`
	NextClassFormat         *string `toml:"next_class_format" yaml:"next_class_format" validate:"required"`
	AssignmentFormat        *string `toml:"assignment_format" yaml:"assignment_format" validate:"required"`
	AssignmentOverdueFormat *string `toml:"assignment_overdue_format" yaml:"assignment_overdue_format" validate:"required"`
	AssignmentTimeFormat    *string `toml:"assignment_time_format" yaml:"assignment_time_format" validate:"required"`
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}
