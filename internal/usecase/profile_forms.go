package usecase

import (
	"strings"

	"job-connect/internal/domain/profile"
	"job-connect/internal/pkg/validation"
)

const msgEndBeforeStart = "End date must be on or after the start date."

type ExperienceFields struct {
	Title       string `json:"title" validate:"notblank,max=255"`
	Company     string `json:"company" validate:"notblank,max=255"`
	StartDate   string `json:"start_date" validate:"notblank,date"`
	EndDate     string `json:"end_date" validate:"date"`
	Description string `json:"description"`
}

func (f ExperienceFields) IsBlank() bool {
	return blank(f.Title, f.Company, f.StartDate, f.EndDate, f.Description)
}

func (f ExperienceFields) Validate() validation.Errors {
	errs := validation.Struct(f)
	if !errs.Empty() {
		return errs
	}
	start, _ := validation.ParseDate(f.StartDate)
	end, _ := validation.ParseDate(f.EndDate)
	if start != nil && end != nil && end.Before(*start) {
		errs.Add("end_date", msgEndBeforeStart)
	}
	return errs
}

func (f ExperienceFields) apply(e *profile.Experience) {
	start, _ := validation.ParseDate(f.StartDate)
	end, _ := validation.ParseDate(f.EndDate)
	e.Title = strings.TrimSpace(f.Title)
	e.Company = strings.TrimSpace(f.Company)
	if start != nil {
		e.StartDate = *start
	}
	e.EndDate = end
	e.Description = strings.TrimSpace(f.Description)
}

type EducationFields struct {
	Degree         string `json:"degree" validate:"notblank,max=255"`
	Institution    string `json:"institution" validate:"notblank,max=255"`
	GraduationDate string `json:"graduation_date" validate:"date"`
	Major          string `json:"major" validate:"max=255"`
}

func (f EducationFields) IsBlank() bool {
	return blank(f.Degree, f.Institution, f.GraduationDate, f.Major)
}

func (f EducationFields) Validate() validation.Errors {
	return validation.Struct(f)
}

func (f EducationFields) apply(e *profile.Education) {
	grad, _ := validation.ParseDate(f.GraduationDate)
	e.Degree = strings.TrimSpace(f.Degree)
	e.Institution = strings.TrimSpace(f.Institution)
	e.GraduationDate = grad
	e.Major = strings.TrimSpace(f.Major)
}

func blank(values ...string) bool {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}
