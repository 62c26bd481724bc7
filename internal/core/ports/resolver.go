package ports

// EntryResolver resolves configured entry patterns to files.
//
//go:generate go run go.uber.org/mock/mockgen -source=resolver.go -destination=mocks/mock_resolver.go -package=mocks
type EntryResolver interface {
	// ResolveEntries expands files, globs and directories relative to root into
	// a sorted, de-duplicated list of absolute paths. Files matching an ignore
	// pattern are skipped.
	ResolveEntries(patterns []string, root string, ignores []string) ([]string, error)
}
