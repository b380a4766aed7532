package ports

// MetricsPort exports the metrics collected while running queries.
type MetricsPort interface {
	WriteTextfile(path string) error
}
