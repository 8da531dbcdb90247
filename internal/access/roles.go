package access

import "job-connect/internal/domain/account"

const (
	APIPrefix = "/api/v1"
	LoginPath = APIPrefix + "/auth/login"
)

// Definition is the static, per-role navigation data.
type Definition struct {
	Role              account.Role
	Label             string
	ProfileCreatePath string
	ProfileViewPath   string
	DashboardPath     string
}

var definitions = map[account.Role]Definition{
	account.RoleApplicant: {
		Role:              account.RoleApplicant,
		Label:             "Applicant",
		ProfileCreatePath: APIPrefix + "/applicant/profile/create",
		ProfileViewPath:   APIPrefix + "/applicant/profile",
		DashboardPath:     APIPrefix + "/applicant/applications",
	},
	account.RoleRecruiter: {
		Role:              account.RoleRecruiter,
		Label:             "Recruiter",
		ProfileCreatePath: APIPrefix + "/recruiter/profile/create",
		ProfileViewPath:   APIPrefix + "/recruiter/profile",
		DashboardPath:     APIPrefix + "/recruiter/dashboard",
	},
}

func DefinitionFor(role account.Role) (Definition, bool) {
	d, ok := definitions[role]
	return d, ok
}

// Definitions returns every role definition in a fixed order.
func Definitions() []Definition {
	return []Definition{definitions[account.RoleApplicant], definitions[account.RoleRecruiter]}
}

// OnboardingPath is where an actor without a profile is sent.
func OnboardingPath(role account.Role) string {
	if d, ok := definitions[role]; ok {
		return d.ProfileCreatePath
	}
	return LoginPath
}

// DashboardPath is the landing page after login.
func DashboardPath(role account.Role) string {
	if d, ok := definitions[role]; ok {
		return d.DashboardPath
	}
	return LoginPath
}
