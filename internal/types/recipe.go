package types

// RecipeDetail holds the fields extracted from one recipe page.
type RecipeDetail struct {
	URL          string   `json:"url"`
	Author       string   `json:"author"`
	Ingredients  []string `json:"ingredients"`
	Instructions []string `json:"instructions"`
}

// Flatten returns the detail as one ordered list: author, then ingredients,
// then instructions.
func (d *RecipeDetail) Flatten() []string {
	out := make([]string, 0, 1+len(d.Ingredients)+len(d.Instructions))
	out = append(out, d.Author)
	out = append(out, d.Ingredients...)
	out = append(out, d.Instructions...)
	return out
}

// LinkResult is the outcome of one link collector.
// Err != nil means collection stopped early and Links holds what was gathered
// before the failure.
type LinkResult struct {
	Source string
	Links  []string
	Pages  int
	Err    error
}

// OK reports whether the collector finished without error.
func (r LinkResult) OK() bool { return r.Err == nil }

// DetailResult is the outcome of a detail extraction.
// Detail is nil whenever Err is set.
type DetailResult struct {
	URL    string
	Detail *RecipeDetail
	Err    error
}

// OK reports whether the extraction succeeded.
func (r DetailResult) OK() bool { return r.Err == nil && r.Detail != nil }
