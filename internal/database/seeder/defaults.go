package seeder

// DemoPassword is the password every seeded account logs in with.
const DemoPassword = "joinup-demo"

func Defaults() []Seeder {
	return []Seeder{
		StudentsSeeder{},
		ProjectsSeeder{},
	}
}
