package scoring

// RoleProfile is a target role and the skill terms that describe it.
type RoleProfile struct {
	Name   string
	Skills []string
}

// DefaultProfiles returns the built-in ideal-role table. Order matters: it
// breaks ties for the best-fit role.
func DefaultProfiles() []RoleProfile {
	return []RoleProfile{
		{
			Name:   "Data Analyst",
			Skills: []string{"python", "sql", "pandas", "data visualization", "matplotlib", "excel"},
		},
		{
			Name:   "Machine Learning Engineer",
			Skills: []string{"machine learning", "scikit-learn", "tensorflow", "pytorch", "mlops"},
		},
		{
			Name:   "Full Stack Developer",
			Skills: []string{"react", "javascript", "flask", "fastapi", "node.js", "docker"},
		},
		{
			Name:   "Data Engineer",
			Skills: []string{"spark", "airflow", "hadoop", "aws", "gcp", "etl", "data pipeline"},
		},
	}
}
