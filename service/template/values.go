package template

// Values maps template variable names to the strings substituted into the
// rendered project.
type Values map[string]string

// RepoNameKey is the template variable that names the generated repository
// and therefore its output directory.
const RepoNameKey = "repo_name"

// Merge returns a fresh map holding v overlaid with overrides. Both inputs
// are copied defensively so later mutation by one session never affects
// another.
func (v Values) Merge(overrides Values) Values {
	merged := make(Values, len(v)+len(overrides))
	for k, val := range v {
		merged[k] = val
	}
	for k, val := range overrides {
		merged[k] = val
	}
	return merged
}

// RepoName returns the repository name variable or empty string.
func (v Values) RepoName() string {
	return v[RepoNameKey]
}
