package seeder

// Defaults returns the seeders for c. The demo seeder runs only when asked
// for and when the catalog has a demo section.
func Defaults(c Catalog, withDemo bool) []Seeder {
	out := []Seeder{SkillsSeeder{Skills: c.Skills}}
	if withDemo && c.Demo != nil {
		out = append(out, DemoSeeder{Demo: *c.Demo})
	}
	return out
}
