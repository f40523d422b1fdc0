package digest

// Result is the terminal outcome of summarizing one article.
//
// Summarization never surfaces an error to the orchestrator: after the retry
// budget is spent the failure becomes a value carrying a user-facing message,
// so the pipeline always emits a complete digest record. Internal code checks
// OK() instead of matching on message strings.
type Result struct {
	// Text holds the generated summary when the summarization succeeded.
	Text string

	// Reason holds the user-facing failure message when it did not.
	Reason string
}

// OKResult wraps a successful summary.
func OKResult(text string) Result {
	return Result{Text: text}
}

// FailedResult wraps a terminal failure with its user-facing message.
func FailedResult(reason string) Result {
	return Result{Reason: reason}
}

// OK reports whether the summarization produced a genuine summary.
func (r Result) OK() bool {
	return r.Reason == ""
}

// Message returns the text to render into the digest: the summary on
// success, the failure message otherwise.
func (r Result) Message() string {
	if r.OK() {
		return r.Text
	}
	return r.Reason
}
