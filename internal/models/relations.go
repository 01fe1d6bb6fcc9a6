package models

import "github.com/noah-isme/univ-api/pkg/relation"

// Back-reference columns kept in step with the owning side.
var (
	// ProgramCoursesMirror is programs.courses, maintained when a course's programs change.
	ProgramCoursesMirror = relation.Mirror{Name: "program.courses", Table: "programs", Column: "course_ids"}
	// CourseProgramsMirror is courses.programs, maintained when a program's courses change.
	CourseProgramsMirror = relation.Mirror{Name: "course.programs", Table: "courses", Column: "program_ids"}
	// CollegeDepartmentsMirror is colleges.departments, maintained from department.college.
	CollegeDepartmentsMirror = relation.Mirror{Name: "college.departments", Table: "colleges", Column: "department_ids"}

	CoursePrerequisitesMirror = relation.Mirror{Name: "course.prerequisites", Table: "courses", Column: "prerequisite_ids"}
	DepartmentCoursesMirror   = relation.Mirror{Name: "department.courses", Table: "departments", Column: "course_ids"}
	AdminUnitStaffMirror      = relation.Mirror{Name: "admin_unit.staff", Table: "admin_units", Column: "staff_ids"}
)

// Mirrors pulled when the owner is deleted.
var (
	CourseDeleteMirrors     = []relation.Mirror{ProgramCoursesMirror, CoursePrerequisitesMirror, DepartmentCoursesMirror}
	ProgramDeleteMirrors    = []relation.Mirror{CourseProgramsMirror}
	DepartmentDeleteMirrors = []relation.Mirror{CollegeDepartmentsMirror}
	UserDeleteMirrors       = []relation.Mirror{AdminUnitStaffMirror}
)
