package types

// RunRequest is the body the client posts to the gateway for one run.
// Guidance travels as user_prompt, which is the name the backend expects.
type RunRequest struct {
	URL      string `json:"url"`
	Guidance string `json:"user_prompt"`
}

// RunResult is the process response shape shared by the backend, the
// gateway and the client. Document and Titles are only meaningful when OK
// is true; Error only when it is false.
type RunResult struct {
	OK       bool     `json:"ok"`
	Document string   `json:"press_release,omitempty"`
	Titles   []string `json:"title_options,omitempty"`
	Error    string   `json:"error,omitempty"`
}
