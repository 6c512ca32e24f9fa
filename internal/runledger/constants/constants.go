package constants

const (
	// RunsCollection is the collection/table holding one entry per
	// completed seeding run.
	RunsCollection = "import_runs"
)
